// Package scenario loads scripted collision sequences and replays them
// through the damage controller without a physics engine.
package scenario

import (
	"errors"
	"fmt"
	"io"
	gomath "math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/crashsim/internal/damage"
	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/internal/physics"
	"github.com/Faultbox/crashsim/pkg/math"
)

// ErrNoEvents is returned for a scenario without collisions.
var ErrNoEvents = errors.New("scenario has no collisions")

// Scenario describes a car body and the collisions applied to it.
type Scenario struct {
	Name   string        `yaml:"name"`
	Damage damage.Config `yaml:"damage"`
	Owner  OwnerSpec     `yaml:"owner"`
	Body   BodySpec      `yaml:"body"`
	Events []Event       `yaml:"collisions"`
}

// OwnerSpec places the damage owner in the world.
type OwnerSpec struct {
	Position  math.Vec3 `yaml:"position"`
	RotationY float32   `yaml:"rotation_y"` // Degrees about +Y
	Scale     math.Vec3 `yaml:"scale"`
}

// BodySpec is the procedurally generated body mesh.
type BodySpec struct {
	Size     math.Vec3 `yaml:"size"`
	Segments int       `yaml:"segments"`
	// Offset attaches the body to a child node at this local position
	// instead of the owner itself.
	Offset *math.Vec3 `yaml:"offset,omitempty"`
}

// Event is one scripted collision, optionally repeated.
type Event struct {
	physics.Collision `yaml:",inline"`
	Repeat            int `yaml:"repeat"`
}

// Default returns a scenario with the stock damage tuning, an upright
// owner at the origin and a car-sized box body.
func Default() *Scenario {
	return &Scenario{
		Name:   "unnamed",
		Damage: damage.DefaultConfig(),
		Owner:  OwnerSpec{Scale: math.Vec3{X: 1, Y: 1, Z: 1}},
		Body: BodySpec{
			Size:     math.Vec3{X: 2.4, Y: 1.2, Z: 4.4},
			Segments: 8,
		},
	}
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario over the defaults and validates it.
func Parse(r io.Reader) (*Scenario, error) {
	s := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the scenario can be built and run.
func (s *Scenario) Validate() error {
	if err := s.Damage.Validate(); err != nil {
		return err
	}
	if s.Body.Segments < 1 {
		return fmt.Errorf("body segments must be at least 1, got %d", s.Body.Segments)
	}
	if s.Body.Size.X <= 0 || s.Body.Size.Y <= 0 || s.Body.Size.Z <= 0 {
		return fmt.Errorf("body size must be positive, got %v", s.Body.Size)
	}
	if len(s.Events) == 0 {
		return ErrNoEvents
	}
	for i, e := range s.Events {
		if e.Repeat < 0 {
			return fmt.Errorf("collision %d: repeat must not be negative", i)
		}
	}
	return nil
}

// Build creates the owner node and the body mesh described by the scenario.
func (s *Scenario) Build() (*scene.Node, *mesh.Mesh) {
	owner := scene.NewNode(s.Name)
	owner.Transform.Position = s.Owner.Position
	owner.Transform.Rotation = s.OwnerRotation()
	owner.Transform.LocalScale = s.Owner.Scale

	body := mesh.NewBox("body", s.Body.Size, s.Body.Segments)
	if s.Body.Offset == nil {
		owner.AttachMesh(body)
		return owner, body
	}

	child := scene.NewNode("body")
	child.Transform.Position = *s.Body.Offset
	child.AttachMesh(body)
	owner.AddChild(child)
	return owner, body
}

// OwnerRotation returns the owner's rotation about +Y.
func (s *Scenario) OwnerRotation() math.Quat {
	return math.QuatFromAxisAngle(math.Up, s.Owner.RotationY*gomath.Pi/180)
}

// Collisions returns every collision in delivery order with repeats expanded.
func (s *Scenario) Collisions() []physics.Collision {
	var out []physics.Collision
	for _, e := range s.Events {
		for n := max(e.Repeat, 1); n > 0; n-- {
			out = append(out, e.Collision)
		}
	}
	return out
}

// Retarget moves a collision authored against the scenario owner onto an
// owner at position and rotation, keeping it fixed in the owner's frame.
// Owner scale is not applied.
func (s *Scenario) Retarget(c physics.Collision, position math.Vec3, rotation math.Quat) physics.Collision {
	delta := rotation.Mul(s.OwnerRotation().Inverse())

	out := physics.Collision{
		RelativeVelocity: delta.Rotate(c.RelativeVelocity),
		Contacts:         make([]physics.Contact, len(c.Contacts)),
	}
	for i, ct := range c.Contacts {
		out.Contacts[i] = physics.Contact{
			Point:  position.Add(delta.Rotate(ct.Point.Sub(s.Owner.Position))),
			Normal: delta.Rotate(ct.Normal),
		}
	}
	return out
}
