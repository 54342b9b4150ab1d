package mesh

import "github.com/Faultbox/crashsim/pkg/math"

type boxFace struct {
	normal, u, v math.Vec3
}

// u x v == normal so triangles wind counter-clockwise seen from outside.
var boxFaces = [6]boxFace{
	{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
	{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
	{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
	{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
	{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
}

// NewBox builds a box centered at the origin with each face subdivided
// into segments x segments quads. Faces do not share vertices.
func NewBox(name string, size math.Vec3, segments int) *Mesh {
	if segments < 1 {
		segments = 1
	}
	row := segments + 1
	half := size.Scale(0.5)

	vertices := make([]math.Vec3, 0, 6*row*row)
	indices := make([]uint32, 0, 6*segments*segments*6)

	for _, f := range boxFaces {
		base := uint32(len(vertices))
		center := f.normal.Mul(half)
		u := f.u.Mul(size)
		v := f.v.Mul(size)

		for j := 0; j <= segments; j++ {
			tv := float32(j)/float32(segments) - 0.5
			for i := 0; i <= segments; i++ {
				tu := float32(i)/float32(segments) - 0.5
				vertices = append(vertices, center.Add(u.Scale(tu)).Add(v.Scale(tv)))
			}
		}

		for j := 0; j < segments; j++ {
			for i := 0; i < segments; i++ {
				i0 := base + uint32(j*row+i)
				i1 := i0 + 1
				i2 := i0 + uint32(row)
				i3 := i2 + 1
				indices = append(indices, i0, i1, i3, i0, i3, i2)
			}
		}
	}

	return New(name, vertices, indices)
}
