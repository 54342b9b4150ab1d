package damage

import (
	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/pkg/math"
)

// Result summarizes one deformation pass.
type Result struct {
	MeshesTouched   int     // Meshes with at least one moved vertex
	VerticesMoved   int     // Vertices inside the influence radius with non-zero displacement
	MaxDisplacement float32 // Largest single-vertex displacement applied
}

// Deformer displaces the vertices of registered meshes around an impact point.
// It is not safe for concurrent use; all calls must come from the thread
// delivering collision callbacks.
type Deformer struct {
	cfg      Config
	owner    *scene.Node
	surfaces []scene.MeshRef
	sqrRange float32

	// Rest positions, kept only when cumulative displacement is capped
	rest map[*mesh.Mesh][]math.Vec3
}

// NewDeformer creates a deformer for the given owner and surfaces.
func NewDeformer(cfg Config, owner *scene.Node, surfaces []scene.MeshRef) *Deformer {
	d := &Deformer{
		cfg:      cfg,
		owner:    owner,
		surfaces: surfaces,
	}
	d.SetDestructionRadius(cfg.DestructionRadius)

	if cfg.MaxCumulativeDisplacement > 0 {
		d.rest = make(map[*mesh.Mesh][]math.Vec3, len(surfaces))
		for _, s := range surfaces {
			rest := make([]math.Vec3, len(s.Mesh.Vertices))
			copy(rest, s.Mesh.Vertices)
			d.rest[s.Mesh] = rest
		}
	}
	return d
}

// SetDestructionRadius changes the influence radius and its cached square.
func (d *Deformer) SetDestructionRadius(radius float32) {
	d.cfg.DestructionRadius = radius
	d.sqrRange = radius * radius
}

// DestructionRadius returns the current influence radius.
func (d *Deformer) DestructionRadius() float32 {
	return d.cfg.DestructionRadius
}

// Deform pushes every vertex within DestructionRadius of origin. The push
// falls off with squared distance and is scaled by force, which is clamped
// to [0,1]. Deformation accumulates across calls.
func (d *Deformer) Deform(origin math.Vec3, force float32) Result {
	force = math.Clamp01(force)

	var res Result
	ownerPos := d.owner.WorldPosition()
	ownerScale := d.owner.Transform.LocalScale
	toLocal := d.owner.WorldRotation().Inverse()

	for _, s := range d.surfaces {
		vertices := s.Mesh.Vertices
		meshPos := s.Node.WorldPosition()
		meshRot := s.Node.WorldRotation()
		rest := d.rest[s.Mesh]
		moved := 0

		for i := range vertices {
			world := meshPos.Add(meshRot.Rotate(vertices[i].Mul(ownerScale)))
			toImpact := world.Sub(origin)
			toCenter := ownerPos.Sub(world)
			toCenter.Y = 0

			sqrDist := toImpact.LengthSqr()
			if sqrDist >= d.sqrRange {
				continue
			}

			moveDelta := falloff(force, sqrDist, d.sqrRange, d.cfg.MaxVertexMove)
			if moveDelta == 0 {
				continue
			}

			move := toImpact.Slerp(toCenter, d.cfg.BlendFactor).Normalize().Scale(moveDelta)
			vertices[i] = vertices[i].Add(toLocal.Rotate(move))

			if rest != nil && i < len(rest) {
				vertices[i] = clampOffset(rest[i], vertices[i], d.cfg.MaxCumulativeDisplacement)
			}

			moved++
			if moveDelta > res.MaxDisplacement {
				res.MaxDisplacement = moveDelta
			}
		}

		s.Mesh.SetVertices(vertices)
		s.Mesh.RecalculateBounds()

		if moved > 0 {
			res.MeshesTouched++
			res.VerticesMoved += moved
		}
	}
	return res
}

// falloff returns the displacement for a vertex at squared distance sqrDist
// from the impact. It decreases linearly in squared distance, reaching zero
// at the edge of the influence radius.
func falloff(force, sqrDist, sqrRange, maxMove float32) float32 {
	if sqrRange <= 0 {
		return 0
	}
	normalized := math.Clamp01(sqrDist / sqrRange)
	return force * (1 - normalized) * maxMove
}

// clampOffset limits v to within limit of rest.
func clampOffset(rest, v math.Vec3, limit float32) math.Vec3 {
	offset := v.Sub(rest)
	if offset.LengthSqr() <= limit*limit {
		return v
	}
	return rest.Add(offset.Normalize().Scale(limit))
}
