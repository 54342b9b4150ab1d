package physics

import (
	"github.com/Faultbox/crashsim/pkg/math"
)

// ArenaConfig describes the walled test ground.
type ArenaConfig struct {
	HalfWidth       float32 `yaml:"half_width"`       // Walls at x = ±HalfWidth
	HalfLength      float32 `yaml:"half_length"`      // Walls at z = ±HalfLength
	WallRestitution float32 `yaml:"wall_restitution"` // 0 sticks, 1 bounces fully
	FixedStep       float32 `yaml:"fixed_step"`       // Seconds per physics step
	MaxSteps        int     `yaml:"max_steps"`        // Step cap per Advance call
}

// DefaultArenaConfig returns a 60x80 m arena stepped at 50 Hz.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		HalfWidth:       30,
		HalfLength:      40,
		WallRestitution: 0.3,
		FixedStep:       0.02,
		MaxSteps:        8,
	}
}

// Wall is an infinite vertical plane. Points p with p·Normal + Offset >= 0
// are inside the arena.
type Wall struct {
	Name   string
	Normal math.Vec3 // Unit, facing into the arena
	Offset float32
}

// Distance returns the signed distance of p from the wall, positive inside.
func (w Wall) Distance(p math.Vec3) float32 {
	return p.Dot(w.Normal) + w.Offset
}

// Arena steps a single body against four walls and reports wall hits.
type Arena struct {
	cfg   ArenaConfig
	body  *Body
	walls []Wall

	// OnCollision is called once per wall contact while the body is moving
	// into the wall.
	OnCollision func(Collision)
	// BeforeStep runs before each fixed step. Drivers push actuator input here.
	BeforeStep func(dt float32)

	accumulator float32
	steps       uint64
}

// NewArena creates an arena around body.
func NewArena(cfg ArenaConfig, body *Body) *Arena {
	return &Arena{
		cfg:  cfg,
		body: body,
		walls: []Wall{
			{Name: "east", Normal: math.Vec3{X: -1}, Offset: cfg.HalfWidth},
			{Name: "west", Normal: math.Vec3{X: 1}, Offset: cfg.HalfWidth},
			{Name: "north", Normal: math.Vec3{Z: -1}, Offset: cfg.HalfLength},
			{Name: "south", Normal: math.Vec3{Z: 1}, Offset: cfg.HalfLength},
		},
	}
}

// Body returns the simulated body.
func (a *Arena) Body() *Body {
	return a.body
}

// Walls returns the arena walls.
func (a *Arena) Walls() []Wall {
	return a.walls
}

// Config returns the arena configuration.
func (a *Arena) Config() ArenaConfig {
	return a.cfg
}

// Steps returns how many fixed steps have run.
func (a *Arena) Steps() uint64 {
	return a.steps
}

// Advance accumulates frame time and runs as many fixed steps as fit,
// up to MaxSteps. Leftover time beyond the cap is dropped. Returns the
// number of steps run.
func (a *Arena) Advance(frameDt float32) int {
	step := a.cfg.FixedStep
	if step <= 0 {
		return 0
	}
	a.accumulator += frameDt

	n := 0
	for a.accumulator >= step {
		if a.cfg.MaxSteps > 0 && n >= a.cfg.MaxSteps {
			a.accumulator = 0
			break
		}
		a.Step(step)
		a.accumulator -= step
		n++
	}
	return n
}

// Step runs one physics step of dt seconds.
func (a *Arena) Step(dt float32) {
	if a.BeforeStep != nil {
		a.BeforeStep(dt)
	}
	a.body.integrate(dt)
	for _, w := range a.walls {
		a.resolve(w)
	}
	a.steps++
}

// resolve pushes the body out of w and reflects its velocity. A collision
// is reported only while the body approaches the wall.
func (a *Arena) resolve(w Wall) {
	b := a.body

	deepest := math.Vec3{}
	depth := float32(0)
	for _, c := range b.Corners() {
		if d := -w.Distance(c); d > depth {
			depth = d
			deepest = c
		}
	}
	if depth <= 0 {
		return
	}

	vn := b.Velocity.Dot(w.Normal)
	if vn < 0 && a.OnCollision != nil {
		point := deepest.Add(w.Normal.Scale(depth))
		point.Y = b.Position.Y
		a.OnCollision(Collision{
			RelativeVelocity: b.Velocity,
			Contacts:         []Contact{{Point: point, Normal: w.Normal}},
		})
	}

	b.Position = b.Position.Add(w.Normal.Scale(depth))
	if vn < 0 {
		b.Velocity = b.Velocity.Sub(w.Normal.Scale((1 + a.cfg.WallRestitution) * vn))
	}
}
