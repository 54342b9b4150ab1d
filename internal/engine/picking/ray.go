// Package picking provides ray casting against meshes for mouse interaction.
package picking

import (
	gomath "math"

	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay converts pixel coordinates into a world-space ray for a
// perspective camera with vertical field of view fovY (radians) and the
// given view matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH, fovY float32, view math.Mat4) Ray {
	// Normalized device coords, Y up
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	// Rows of the view rotation are the camera basis.
	right := math.Vec3{X: view[0], Y: view[4], Z: view[8]}
	up := math.Vec3{X: view[1], Y: view[5], Z: view[9]}
	back := math.Vec3{X: view[2], Y: view[6], Z: view[10]}
	eye := right.Scale(view[12]).Add(up.Scale(view[13])).Add(back.Scale(view[14])).Scale(-1)

	tanHalf := float32(gomath.Tan(float64(fovY) / 2))
	aspect := viewportW / viewportH
	dir := back.Scale(-1).
		Add(right.Scale(ndcX * tanHalf * aspect)).
		Add(up.Scale(ndcY * tanHalf))

	return Ray{Origin: eye, Direction: dir.Normalize()}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if gomath.Abs(float64(r.Direction.Y)) < 0.001 {
		return 0, 0, false
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false
	}

	p := r.At(t)
	return p.X, p.Z, true
}

// IntersectBounds tests the ray against an axis-aligned box using the slab
// method. If the ray starts inside the box, the exit distance is returned.
func (r Ray) IntersectBounds(b mesh.Bounds) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// PickMesh casts the ray against the bounds of a mesh in its node's space and
// returns the world-space hit point.
func PickMesh(r Ray, ref scene.MeshRef) (math.Vec3, bool) {
	inv := ref.Node.WorldRotation().Inverse()
	scale := ref.Node.LossyScale()
	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return math.Vec3{}, false
	}
	unscale := math.Vec3{X: 1 / scale.X, Y: 1 / scale.Y, Z: 1 / scale.Z}

	local := Ray{
		Origin:    inv.Rotate(r.Origin.Sub(ref.Node.WorldPosition())).Mul(unscale),
		Direction: inv.Rotate(r.Direction).Mul(unscale),
	}
	// Distances along the unnormalized local ray map to the same world point.
	t, ok := local.IntersectBounds(ref.Mesh.Bounds)
	if !ok {
		return math.Vec3{}, false
	}
	return ref.Node.LocalToWorld(local.At(t)), true
}
