// Package mesh provides deformable triangle meshes and procedural builders.
package mesh

import "github.com/Faultbox/crashsim/pkg/math"

// Bounds holds an axis-aligned bounding box in mesh local space.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the box center.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b Bounds) Contains(p math.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Mesh is an indexed triangle mesh whose vertex positions may be modified in place.
// Vertices are in the local space of the node the mesh is attached to.
type Mesh struct {
	Name     string
	Vertices []math.Vec3
	Indices  []uint32
	Bounds   Bounds

	// version increments on every vertex write-back so GPU copies can resync
	version uint64
}
