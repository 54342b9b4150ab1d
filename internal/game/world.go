package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/crashsim/internal/config"
	"github.com/Faultbox/crashsim/internal/damage"
	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/internal/logger"
	"github.com/Faultbox/crashsim/internal/physics"
	"github.com/Faultbox/crashsim/internal/scenario"
	"github.com/Faultbox/crashsim/internal/vehicle"
	"github.com/Faultbox/crashsim/pkg/math"
)

// ImpactEvent is an applied deformation waiting to be presented.
type ImpactEvent struct {
	Impact damage.Impact
	Result damage.Result
}

// World is the headless simulation: one car in the arena, wired from the
// driver input through the wheel actuators, arena physics and damage model.
type World struct {
	Arena  *physics.Arena
	Body   *physics.Body
	Car    *vehicle.Controller
	Damage *damage.Controller

	Root     *scene.Node // Car root, owner of the damage model
	BodyMesh *mesh.Mesh
	Wheels   [4]*scene.Node

	rest    []math.Vec3
	impacts []ImpactEvent
}

// NewWorld builds the car and arena from cfg.
func NewWorld(cfg *config.Config) *World {
	w := &World{
		Body: physics.NewBody(cfg.Body, 0, 0),
		Root: scene.NewNode("car"),
	}
	w.Arena = physics.NewArena(cfg.Arena, w.Body)

	size := cfg.Body.HalfExtents.Scale(2)
	w.BodyMesh = mesh.NewBox("body", size, cfg.Graphics.BodySegments)
	w.Root.AttachMesh(w.BodyMesh)
	w.rest = w.BodyMesh.Clone().Vertices

	// Wheels hang off the car root for rendering but are kept out of the
	// damage registry by listing the body explicitly.
	r := cfg.Body.WheelRadius
	wheelMesh := mesh.NewBox("wheel", math.Vec3{X: 0.3, Y: 2 * r, Z: 2 * r}, 1)
	var infos [4]vehicle.WheelInfo
	for i := range w.Wheels {
		n := scene.NewNode(wheelNames[i])
		n.AttachMesh(wheelMesh)
		w.Root.AddChild(n)
		w.Wheels[i] = n
		infos[i] = vehicle.WheelInfo{Visual: n, Collider: w.Body.Wheel(i)}
	}
	w.Car = vehicle.NewController(cfg.Vehicle, infos[0], infos[1], infos[2], infos[3])

	w.Damage = damage.NewController(cfg.Damage, w.Root, damage.Options{
		Meshes: []scene.MeshRef{{Node: w.Root, Mesh: w.BodyMesh}},
		OnImpact: func(imp damage.Impact, res damage.Result) {
			w.impacts = append(w.impacts, ImpactEvent{Impact: imp, Result: res})
		},
	})

	w.Arena.BeforeStep = func(float32) { w.Car.FixedUpdate() }
	w.Arena.OnCollision = func(c physics.Collision) {
		w.syncRoot()
		w.Damage.OnCollision(c)
	}

	w.Damage.Initialize()
	w.syncRoot()
	w.Car.UpdateVisualWheels()
	return w
}

var wheelNames = [4]string{"wheel_fl", "wheel_fr", "wheel_bl", "wheel_br"}

// Update applies frame input and advances physics by dt seconds of wall
// time. Returns the number of fixed steps run.
func (w *World) Update(axes vehicle.Axes, dt float32) int {
	w.Car.Update(axes)
	steps := w.Arena.Advance(dt)
	step := w.Arena.Config().FixedStep
	for i := 0; i < steps; i++ {
		w.Damage.OnPhysicsStep(step)
	}
	w.syncRoot()
	w.Car.UpdateVisualWheels()
	return steps
}

// Dent deforms the body directly at a world point, the way a collision
// with the given force would.
func (w *World) Dent(point math.Vec3, force float32) damage.Result {
	w.syncRoot()
	return w.Damage.Deform(point, force)
}

// Replay delivers a scenario's collisions to the car, moved into the car's
// current frame. The car's own damage tuning applies. Returns how many
// collisions deformed the body.
func (w *World) Replay(s *scenario.Scenario) int {
	w.syncRoot()
	pos, rot := w.Root.WorldPosition(), w.Root.WorldRotation()

	applied := 0
	for _, c := range s.Collisions() {
		if w.Damage.OnCollision(s.Retarget(c, pos, rot)) {
			applied++
		}
	}
	logger.Info("scenario replayed",
		zap.String("scenario", s.Name),
		zap.Int("collisions", len(s.Collisions())),
		zap.Int("applied", applied),
	)
	return applied
}

// DrainImpacts returns and clears the impacts applied since the last call.
func (w *World) DrainImpacts() []ImpactEvent {
	out := w.impacts
	w.impacts = nil
	return out
}

// Reset puts the car back at the arena center with an undamaged body.
func (w *World) Reset() {
	w.Body.Position.X, w.Body.Position.Z = 0, 0
	w.Body.Velocity = math.Vec3{}
	w.Body.Yaw = 0

	vertices := make([]math.Vec3, len(w.rest))
	copy(vertices, w.rest)
	w.BodyMesh.SetVertices(vertices)
	w.BodyMesh.RecalculateBounds()

	w.syncRoot()
	w.Car.UpdateVisualWheels()
	logger.Info("car reset", zap.Int("impacts", w.Damage.Stats().Applied))
}

// MaxDent returns the largest vertex displacement from the undamaged body.
func (w *World) MaxDent() float32 {
	var d float32
	for i, v := range w.BodyMesh.Vertices {
		d = max(d, v.Distance(w.rest[i]))
	}
	return d
}

// syncRoot copies the physics pose onto the car's scene node.
func (w *World) syncRoot() {
	w.Root.SetWorldPose(w.Body.Position, w.Body.Rotation())
}
