package render

// O atlas é amostrado no centro de um texel por material: texture0 é a cor
// base, texture1 o emissivo e texture2 o metallic-roughness (G=roughness,
// B=metallic).
const terrainVertexShader = `
#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;

uniform mat4 mvp;
uniform mat4 matModel;

out vec2 fragTexCoord;
out vec3 fragNormal;
out vec3 fragWorldPos;

void main()
{
    fragTexCoord = vertexTexCoord;
    fragNormal = normalize(mat3(matModel) * vertexNormal);
    fragWorldPos = vec3(matModel * vec4(vertexPosition, 1.0));
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const terrainFragmentShader = `
#version 330

in vec2 fragTexCoord;
in vec3 fragNormal;
in vec3 fragWorldPos;

uniform sampler2D texture0;
uniform sampler2D texture1;
uniform sampler2D texture2;
uniform vec4 colDiffuse;
uniform vec3 sunDir;
uniform vec3 camPos;

out vec4 finalColor;

void main()
{
    vec4 base = texture(texture0, fragTexCoord) * colDiffuse;
    vec3 emissive = texture(texture1, fragTexCoord).rgb;
    vec4 mr = texture(texture2, fragTexCoord);
    float roughness = max(mr.g, 0.04);
    float metallic = mr.b;

    vec3 n = normalize(fragNormal);
    vec3 l = normalize(-sunDir);
    vec3 v = normalize(camPos - fragWorldPos);
    vec3 h = normalize(l + v);

    float diffuse = max(dot(n, l), 0.0);
    float shininess = mix(256.0, 4.0, roughness);
    float spec = pow(max(dot(n, h), 0.0), shininess) * (1.0 - roughness);
    vec3 specColor = mix(vec3(0.04), base.rgb, metallic);

    vec3 ambient = base.rgb * 0.25;
    vec3 color = ambient + base.rgb * diffuse * (1.0 - metallic * 0.5) + specColor * spec + emissive;
    finalColor = vec4(color, base.a);
}
`
