package util

// Lerp realiza interpolação linear entre dois floats.
func Lerp(start, end, amount float32) float32 {
	return start + amount*(end-start)
}

// InCircle verifica se (x,z) está dentro do círculo de raio r centrado em (cx,cz).
func InCircle(x, z, cx, cz, r int) bool {
	dx := x - cx
	dz := z - cz
	return dx*dx+dz*dz <= r*r
}
