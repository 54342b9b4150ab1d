package damage

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/pkg/math"
)

const epsilon = 0.0001

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) <= epsilon
}

func assertVec(t *testing.T, what string, got, want math.Vec3) {
	t.Helper()
	if got.Distance(want) > epsilon {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

// pointMesh creates a mesh with the given vertices and no triangles.
func pointMesh(name string, vertices ...math.Vec3) *mesh.Mesh {
	v := make([]math.Vec3, len(vertices))
	copy(v, vertices)
	return mesh.New(name, v, nil)
}

// ownerWith creates an owner node at the origin carrying the given meshes.
func ownerWith(meshes ...*mesh.Mesh) *scene.Node {
	owner := scene.NewNode("car")
	for _, m := range meshes {
		owner.AttachMesh(m)
	}
	return owner
}

func radialConfig() Config {
	return Config{
		MaxVertexMove:         1,
		MaxCollisionPower:     50,
		MaxLateralSpeedWeight: 0.5,
		DestructionRadius:     1,
		BlendFactor:           0,
	}
}
