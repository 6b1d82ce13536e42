package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"image"
	"log"
	"unsafe"

	"Solstice/shared/meshing"
	"Solstice/shared/physics"
	"Solstice/shared/worldgen"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer desenha a malha única do terreno com o material do atlas.
type Renderer struct {
	Shader rl.Shader

	sunDirLoc int32
	camPosLoc int32

	model    rl.Model
	loaded   bool
	textures []rl.Texture2D

	Vertices int
}

// NewRenderer compila o shader do terreno. Precisa de uma janela aberta.
func NewRenderer() *Renderer {
	r := &Renderer{}
	if rl.IsWindowReady() {
		r.Shader = rl.LoadShaderFromMemory(terrainVertexShader, terrainFragmentShader)
		r.sunDirLoc = rl.GetShaderLocation(r.Shader, "sunDir")
		r.camPosLoc = rl.GetShaderLocation(r.Shader, "camPos")
		rl.SetShaderValue(r.Shader, r.sunDirLoc, []float32{-0.4, -1.0, -0.3}, rl.ShaderUniformVec3)
	}
	return r
}

// Upload envia a saída da geração para a GPU.
func (r *Renderer) Upload(out *worldgen.Output) {
	r.Unload()
	if out.Mesh.IsEmpty() {
		log.Printf("[Renderer] Malha vazia, nada a enviar")
		return
	}

	flat := out.Mesh.Flatten()
	mesh := r.geometryToMesh(flat)
	rl.UploadMesh(&mesh, false)
	r.model = rl.LoadModelFromMesh(mesh)
	r.loaded = true
	r.Vertices = flat.VertexCount()

	mat := out.Material
	base := r.loadAtlasTexture(mat.BaseColorTexture)
	emissive := r.loadAtlasTexture(mat.EmissiveTexture)
	mr := r.loadAtlasTexture(mat.MetallicRoughnessTexture)

	if r.model.MaterialCount > 0 {
		materials := unsafe.Slice(r.model.Materials, r.model.MaterialCount)
		materials[0].Shader = r.Shader
		rl.SetMaterialTexture(&materials[0], rl.MapDiffuse, base)
		rl.SetMaterialTexture(&materials[0], rl.MapMetalness, emissive)
		rl.SetMaterialTexture(&materials[0], rl.MapNormal, mr)
	}
	log.Printf("[Renderer] Terreno enviado: %d vértices, atlas com %d materiais", r.Vertices, len(out.Materials))
}

func (r *Renderer) loadAtlasTexture(img *image.NRGBA) rl.Texture2D {
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	rl.SetTextureFilter(tex, rl.FilterPoint)
	r.textures = append(r.textures, tex)
	return tex
}

func (r *Renderer) geometryToMesh(data meshing.GeometryData) rl.Mesh {
	var mesh rl.Mesh
	vCount := int32(data.VertexCount())
	mesh.VertexCount = vCount
	mesh.TriangleCount = vCount / 3

	if len(data.Vertices) > 0 {
		mesh.Vertices = (*float32)(copyToC(unsafe.Pointer(&data.Vertices[0]), len(data.Vertices)*4))
	}
	if len(data.Normals) > 0 {
		mesh.Normals = (*float32)(copyToC(unsafe.Pointer(&data.Normals[0]), len(data.Normals)*4))
	}
	if len(data.UVs) > 0 {
		mesh.Texcoords = (*float32)(copyToC(unsafe.Pointer(&data.UVs[0]), len(data.UVs)*4))
	}
	return mesh
}

// copyToC copia o buffer para memória C, que o raylib libera ao descarregar o modelo.
func copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	copy(unsafe.Slice((*byte)(ptr), size), unsafe.Slice((*byte)(data), size))
	return ptr
}

// Draw desenha o terreno.
func (r *Renderer) Draw(cam rl.Camera3D) {
	if !r.loaded {
		return
	}
	rl.SetShaderValue(r.Shader, r.camPosLoc, []float32{cam.Position.X, cam.Position.Y, cam.Position.Z}, rl.ShaderUniformVec3)
	rl.DrawModel(r.model, rl.Vector3{}, 1.0, rl.White)
}

// DrawColliders desenha a caixa envolvente de cada colisor registrado.
func (r *Renderer) DrawColliders(world *physics.StaticWorld) {
	for i, reg := range world.Registrations() {
		b := reg.Bounds
		c := b.Center()
		s := b.Size()
		color := rl.Orange
		if i%2 == 1 {
			color = rl.Gold
		}
		rl.DrawCubeWires(rl.Vector3{X: c.X(), Y: c.Y(), Z: c.Z()}, s.X(), s.Y(), s.Z(), color)
	}
}

// Unload libera o modelo e as texturas da GPU.
func (r *Renderer) Unload() {
	if r.loaded {
		rl.UnloadModel(r.model)
		r.loaded = false
	}
	for _, tex := range r.textures {
		rl.UnloadTexture(tex)
	}
	r.textures = nil
	r.Vertices = 0
}

// DrawWires desenha as arestas dos triângulos do terreno.
func (r *Renderer) DrawWires() {
	if !r.loaded {
		return
	}
	rl.DrawModelWires(r.model, rl.Vector3{}, 1.0, rl.NewColor(255, 255, 255, 60))
}
