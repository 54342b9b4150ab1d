package damage

import (
	"testing"

	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/pkg/math"
)

func TestRegistryExplicitListWins(t *testing.T) {
	body := pointMesh("body", math.Vec3{})
	hood := pointMesh("hood", math.Vec3{})
	owner := ownerWith(body, hood)

	explicit := []scene.MeshRef{{Node: owner, Mesh: hood}}
	called := false
	r := NewRegistry(owner, explicit, func(*scene.Node) []scene.MeshRef {
		called = true
		return nil
	})

	if called {
		t.Error("discovery should not run when an explicit list is given")
	}
	if r.Len() != 1 || r.Surfaces()[0].Mesh != hood {
		t.Errorf("Surfaces() = %+v, want only hood", r.Surfaces())
	}

	// The registry keeps its own copy of the list
	explicit[0].Mesh = body
	if r.Surfaces()[0].Mesh != hood {
		t.Error("registry aliases the caller's slice")
	}
}

func TestRegistryDefaultDiscovery(t *testing.T) {
	owner := ownerWith(pointMesh("body", math.Vec3{}, math.Vec3{X: 1}))
	child := scene.NewNode("door")
	child.AttachMesh(pointMesh("door", math.Vec3{}))
	owner.AddChild(child)

	r := NewRegistry(owner, nil, nil)
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if r.VertexCount() != 3 {
		t.Errorf("VertexCount() = %d, want 3", r.VertexCount())
	}
}

func TestRegistryCustomDiscovery(t *testing.T) {
	owner := ownerWith(pointMesh("body", math.Vec3{}))
	panel := pointMesh("panel", math.Vec3{})

	calls := 0
	r := NewRegistry(owner, nil, func(n *scene.Node) []scene.MeshRef {
		calls++
		return []scene.MeshRef{{Node: n, Mesh: panel}}
	})

	if calls != 1 {
		t.Errorf("discover called %d times, want 1", calls)
	}
	if r.Surfaces()[0].Mesh != panel {
		t.Error("custom discovery result not used")
	}
}
