package game

import (
	"path/filepath"
	"testing"

	"github.com/Faultbox/crashsim/internal/config"
	"github.com/Faultbox/crashsim/internal/scenario"
	"github.com/Faultbox/crashsim/internal/vehicle"
	"github.com/Faultbox/crashsim/pkg/math"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-3 && d > -1e-3
}

func TestNewWorldWiring(t *testing.T) {
	w := NewWorld(config.Default())

	if !w.Damage.Initialized() {
		t.Fatal("damage controller not initialized")
	}
	surfaces := w.Damage.Surfaces()
	if len(surfaces) != 1 || surfaces[0].Mesh != w.BodyMesh {
		t.Fatalf("surfaces = %d, want only the body mesh", len(surfaces))
	}
	if got := len(w.Root.Children()); got != 4 {
		t.Errorf("root children = %d, want 4 wheels", got)
	}

	// Front left hub sits at +X, front of the car, below the body center.
	cfg := config.Default().Body
	fl := w.Wheels[0].WorldPosition()
	want := w.Body.Position.Add(math.Vec3{X: cfg.Track / 2, Y: -cfg.HalfExtents.Y, Z: cfg.Wheelbase / 2})
	if !near(fl.X, want.X) || !near(fl.Y, want.Y) || !near(fl.Z, want.Z) {
		t.Errorf("front left wheel = %+v, want %+v", fl, want)
	}
	if w.MaxDent() != 0 {
		t.Errorf("fresh body dent = %v, want 0", w.MaxDent())
	}
}

func TestWorldWallImpact(t *testing.T) {
	w := NewWorld(config.Default())
	w.Body.Position.Z = 38
	w.Body.Velocity = math.Vec3{Z: 10}

	w.Update(vehicle.Axes{}, 0.1)

	impacts := w.DrainImpacts()
	if len(impacts) == 0 {
		t.Fatal("no impact from north wall")
	}
	for _, ev := range impacts {
		if ev.Impact.Force <= 0 || ev.Impact.Force > 1 {
			t.Errorf("force = %v, want in (0,1]", ev.Impact.Force)
		}
		if ev.Result.VerticesMoved == 0 {
			t.Error("impact moved no vertices")
		}
	}
	if len(w.DrainImpacts()) != 0 {
		t.Error("DrainImpacts did not clear the queue")
	}

	if w.MaxDent() <= 0 {
		t.Error("body not dented")
	}
	if front := w.Body.Position.Z + w.Body.Config().HalfExtents.Z; front > 40+1e-3 {
		t.Errorf("body front z = %v, still inside the wall", front)
	}
	if w.Body.Velocity.Z >= 0 {
		t.Errorf("velocity z = %v, want bounced back", w.Body.Velocity.Z)
	}
	if w.Damage.Stats().Applied != len(impacts) {
		t.Errorf("applied = %d, impacts = %d", w.Damage.Stats().Applied, len(impacts))
	}
}

func TestWorldUpdateSyncsRoot(t *testing.T) {
	w := NewWorld(config.Default())

	steps := 0
	for i := 0; i < 10; i++ {
		steps += w.Update(vehicle.Axes{Vertical: 1}, 0.05)
	}
	if steps == 0 {
		t.Fatal("no physics steps ran")
	}
	if got := w.Damage.Stats().Steps; got != steps {
		t.Errorf("damage steps = %d, want %d", got, steps)
	}
	if w.Body.Position.Z <= 0 {
		t.Errorf("body z = %v, want moved forward", w.Body.Position.Z)
	}

	root := w.Root.WorldPosition()
	if root != w.Body.Position {
		t.Errorf("root = %+v, body = %+v", root, w.Body.Position)
	}
	if w.Body.Wheel(2).MotorTorque() != config.Default().Vehicle.Motor {
		t.Errorf("rear motor = %v", w.Body.Wheel(2).MotorTorque())
	}
}

func TestWorldReset(t *testing.T) {
	w := NewWorld(config.Default())
	w.Body.Position.Z = 38
	w.Body.Velocity = math.Vec3{Z: 10}
	w.Update(vehicle.Axes{}, 0.1)
	if w.MaxDent() == 0 {
		t.Fatal("setup: body not dented")
	}
	w.Body.Yaw = 0.2
	version := w.BodyMesh.Version()

	w.Reset()

	if w.MaxDent() != 0 {
		t.Errorf("dent after reset = %v, want 0", w.MaxDent())
	}
	if w.BodyMesh.Version() == version {
		t.Error("mesh version unchanged, renderer would keep the dented buffer")
	}
	if w.Body.Position.X != 0 || w.Body.Position.Z != 0 || w.Body.Yaw != 0 {
		t.Errorf("body pose = %+v yaw %v, want spawn", w.Body.Position, w.Body.Yaw)
	}
	if w.Body.Velocity != (math.Vec3{}) {
		t.Errorf("velocity = %+v, want zero", w.Body.Velocity)
	}
	if got := w.Root.WorldPosition(); got != w.Body.Position {
		t.Errorf("root = %+v, want %+v", got, w.Body.Position)
	}
	size := w.BodyMesh.Bounds.Size()
	if !near(size.Z, 2*w.Body.Config().HalfExtents.Z) {
		t.Errorf("bounds z size = %v after reset", size.Z)
	}
}

func TestWorldDent(t *testing.T) {
	w := NewWorld(config.Default())
	front := w.Body.Position.Add(math.Vec3{X: 0.05, Y: 0.05, Z: w.Body.Config().HalfExtents.Z})

	res := w.Dent(front, 1)
	if res.VerticesMoved == 0 {
		t.Fatal("dent moved no vertices")
	}
	if got := w.MaxDent(); !near(got, res.MaxDisplacement) {
		t.Errorf("MaxDent = %v, want %v", got, res.MaxDisplacement)
	}
	if len(w.DrainImpacts()) != 0 {
		t.Error("direct dent should not queue a collision impact")
	}
	if w.Damage.Stats().Applied != 1 {
		t.Errorf("applied = %d, want 1", w.Damage.Stats().Applied)
	}
}

func TestWorldReplayScenario(t *testing.T) {
	s, err := scenario.Load(filepath.Join("..", "scenario", "testdata", "side_swipe.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	w := NewWorld(config.Default())
	w.Body.Position = math.Vec3{X: 5, Y: w.Body.Position.Y, Z: -3}
	w.Body.Yaw = 1.2

	applied := w.Replay(s)
	if applied != 4 {
		t.Errorf("applied = %d, want 4 (the pivot scrape is gated)", applied)
	}
	if got := len(w.DrainImpacts()); got != applied {
		t.Errorf("queued impacts = %d, want %d", got, applied)
	}
	if w.MaxDent() <= 0 {
		t.Error("replay left the body undented")
	}
}
