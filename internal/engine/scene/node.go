package scene

import (
	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/pkg/math"
)

// Transform is a position, rotation and scale relative to the parent node.
type Transform struct {
	Position   math.Vec3
	Rotation   math.Quat
	LocalScale math.Vec3
}

// IdentityTransform returns a transform with no offset, no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation:   math.QuatIdentity(),
		LocalScale: math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Node is an element of the scene hierarchy. It may carry meshes and children.
type Node struct {
	Name      string
	Transform Transform
	Meshes    []*mesh.Mesh

	parent   *Node
	children []*Node
}

// MeshRef pairs a mesh with the node it is attached to.
type MeshRef struct {
	Node *Node
	Mesh *mesh.Mesh
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: IdentityTransform(),
	}
}

// AddChild attaches child to n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// AttachMesh adds a mesh to this node.
func (n *Node) AttachMesh(m *mesh.Mesh) {
	n.Meshes = append(n.Meshes, m)
}

// Parent returns the parent node or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children.
func (n *Node) Children() []*Node {
	return n.children
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	if n.parent == nil {
		return n.Transform.Position
	}
	p := n.parent
	offset := n.Transform.Position.Mul(p.LossyScale())
	return p.WorldPosition().Add(p.WorldRotation().Rotate(offset))
}

// WorldRotation returns the accumulated rotation from the root.
func (n *Node) WorldRotation() math.Quat {
	if n.parent == nil {
		return n.Transform.Rotation
	}
	return n.parent.WorldRotation().Mul(n.Transform.Rotation)
}

// LossyScale approximates the world scale as the product of local scales.
// It ignores skew introduced by rotated non-uniform parents.
func (n *Node) LossyScale() math.Vec3 {
	if n.parent == nil {
		return n.Transform.LocalScale
	}
	return n.parent.LossyScale().Mul(n.Transform.LocalScale)
}

// SetWorldPose places the node at a world position and rotation,
// converting into the parent's space.
func (n *Node) SetWorldPose(position math.Vec3, rotation math.Quat) {
	if n.parent == nil {
		n.Transform.Position = position
		n.Transform.Rotation = rotation
		return
	}

	inv := n.parent.WorldRotation().Inverse()
	local := inv.Rotate(position.Sub(n.parent.WorldPosition()))
	scale := n.parent.LossyScale()
	n.Transform.Position = math.Vec3{
		X: safeDiv(local.X, scale.X),
		Y: safeDiv(local.Y, scale.Y),
		Z: safeDiv(local.Z, scale.Z),
	}
	n.Transform.Rotation = inv.Mul(rotation)
}

// LocalToWorld transforms a point from this node's space into world space.
func (n *Node) LocalToWorld(p math.Vec3) math.Vec3 {
	return n.WorldPosition().Add(n.WorldRotation().Rotate(p.Mul(n.LossyScale())))
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// CollectMeshes returns every mesh attached to root or any descendant,
// in depth-first order.
func CollectMeshes(root *Node) []MeshRef {
	var refs []MeshRef
	root.Walk(func(n *Node) bool {
		for _, m := range n.Meshes {
			refs = append(refs, MeshRef{Node: n, Mesh: m})
		}
		return true
	})
	return refs
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}
