package mesh

import "github.com/Faultbox/crashsim/pkg/math"

// New creates a mesh from vertex positions and triangle indices and computes its bounds.
func New(name string, vertices []math.Vec3, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	m.RecalculateBounds()
	return m
}

// SetVertices replaces the vertex buffer and marks the mesh as modified.
// Bounds are not updated; call RecalculateBounds afterwards.
func (m *Mesh) SetVertices(vertices []math.Vec3) {
	m.Vertices = vertices
	m.version++
}

// Version returns a counter that changes whenever the vertex buffer is written back.
func (m *Mesh) Version() uint64 {
	return m.version
}

// RecalculateBounds recomputes the bounding box from the current vertices.
// An empty mesh gets zero bounds.
func (m *Mesh) RecalculateBounds() {
	if len(m.Vertices) == 0 {
		m.Bounds = Bounds{}
		return
	}

	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		updateBounds(&b, v)
	}
	m.Bounds = b
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Name:     m.Name,
		Vertices: make([]math.Vec3, len(m.Vertices)),
		Indices:  make([]uint32, len(m.Indices)),
		Bounds:   m.Bounds,
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Indices, m.Indices)
	return c
}

// Normals computes smooth per-vertex normals from the triangle list.
// Vertices sharing a position get the same normal so split seams shade evenly.
func (m *Mesh) Normals() []math.Vec3 {
	normals := make([]math.Vec3, len(m.Vertices))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if int(a) >= len(m.Vertices) || int(b) >= len(m.Vertices) || int(c) >= len(m.Vertices) {
			continue
		}
		// Unnormalized cross product weights by triangle area
		e1 := m.Vertices[b].Sub(m.Vertices[a])
		e2 := m.Vertices[c].Sub(m.Vertices[a])
		n := e1.Cross(e2)
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}

	smoothSharedPositions(m.Vertices, normals)

	for i, n := range normals {
		if n.LengthSqr() < 1e-12 {
			normals[i] = math.Up
			continue
		}
		normals[i] = n.Normalize()
	}
	return normals
}

// smoothSharedPositions sums normals of vertices at the same quantized position.
func smoothSharedPositions(vertices, normals []math.Vec3) {
	const epsilon float32 = 0.0001

	posMap := make(map[[3]int32][]int)
	for i, v := range vertices {
		key := [3]int32{
			int32(v.X / epsilon),
			int32(v.Y / epsilon),
			int32(v.Z / epsilon),
		}
		posMap[key] = append(posMap[key], i)
	}

	for _, idxs := range posMap {
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(normals[idx])
		}
		for _, idx := range idxs {
			normals[idx] = sum
		}
	}
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}
