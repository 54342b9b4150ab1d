package damage

import "github.com/Faultbox/crashsim/internal/engine/scene"

// DiscoverFunc finds the meshes a deformer may modify under owner.
type DiscoverFunc func(owner *scene.Node) []scene.MeshRef

// Registry is the fixed set of meshes one owner is allowed to deform.
type Registry struct {
	surfaces []scene.MeshRef
}

// NewRegistry resolves the deformable meshes once. A non-empty explicit
// list is used as given; otherwise discover is run on owner, defaulting to
// scene.CollectMeshes. Later hierarchy changes are not observed.
func NewRegistry(owner *scene.Node, explicit []scene.MeshRef, discover DiscoverFunc) *Registry {
	if len(explicit) > 0 {
		surfaces := make([]scene.MeshRef, len(explicit))
		copy(surfaces, explicit)
		return &Registry{surfaces: surfaces}
	}
	if discover == nil {
		discover = scene.CollectMeshes
	}
	return &Registry{surfaces: discover(owner)}
}

// Surfaces returns the resolved meshes in resolution order.
func (r *Registry) Surfaces() []scene.MeshRef {
	return r.surfaces
}

// Len returns the number of registered meshes.
func (r *Registry) Len() int {
	return len(r.surfaces)
}

// VertexCount returns the total number of vertices across all meshes.
func (r *Registry) VertexCount() int {
	n := 0
	for _, s := range r.surfaces {
		n += len(s.Mesh.Vertices)
	}
	return n
}
