package vehicle

import (
	"testing"

	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/pkg/math"
)

type fakeWheel struct {
	motor, steer, brake float32
	pos                 math.Vec3
	rot                 math.Quat
}

func (w *fakeWheel) SetMotorTorque(t float32) { w.motor = t }
func (w *fakeWheel) SetSteerAngle(d float32)  { w.steer = d }
func (w *fakeWheel) SetBrakeTorque(t float32) { w.brake = t }
func (w *fakeWheel) WorldPose() (math.Vec3, math.Quat) {
	return w.pos, w.rot
}

func newTestCar() (*Controller, [4]*fakeWheel) {
	var fakes [4]*fakeWheel
	var infos [4]WheelInfo
	for i := range fakes {
		fakes[i] = &fakeWheel{rot: math.QuatIdentity()}
		infos[i] = WheelInfo{Visual: scene.NewNode("wheel"), Collider: fakes[i]}
	}
	return NewController(DefaultConfig(), infos[0], infos[1], infos[2], infos[3]), fakes
}

func TestFixedUpdateDrive(t *testing.T) {
	c, w := newTestCar()
	c.Update(Axes{Vertical: 0.5, Horizontal: -1})
	c.FixedUpdate()

	fl, fr, bl, br := w[0], w[1], w[2], w[3]
	if fl.steer != -50 || fr.steer != -50 {
		t.Errorf("front steer = %v/%v, want -50", fl.steer, fr.steer)
	}
	if bl.steer != 0 || br.steer != 0 {
		t.Error("rear wheels should not steer")
	}
	if bl.motor != 400 || br.motor != 400 {
		t.Errorf("rear motor = %v/%v, want 400", bl.motor, br.motor)
	}
	if fl.motor != 0 || fr.motor != 0 {
		t.Error("front wheels should not be driven")
	}
	for i, f := range w {
		if f.brake != 0 {
			t.Errorf("wheel %d brake = %v without brake input", i, f.brake)
		}
	}
}

func TestFixedUpdateBrake(t *testing.T) {
	c, w := newTestCar()

	c.Update(Axes{Brake: true})
	c.FixedUpdate()
	for i, f := range w {
		if f.brake != 440 {
			t.Errorf("wheel %d brake = %v, want 440", i, f.brake)
		}
	}

	c.Update(Axes{})
	c.FixedUpdate()
	for i, f := range w {
		if f.brake != 0 {
			t.Errorf("wheel %d brake = %v after release, want 0", i, f.brake)
		}
	}
}

func TestFixedUpdateNitro(t *testing.T) {
	c, w := newTestCar()
	c.Update(Axes{Vertical: 1, Nitro: true})
	c.FixedUpdate()

	if w[2].motor != 10000 || w[3].motor != 10000 {
		t.Errorf("nitro motor = %v/%v, want 10000", w[2].motor, w[3].motor)
	}
}

func TestUpdateClampsAxes(t *testing.T) {
	c, _ := newTestCar()
	c.Update(Axes{Vertical: 3, Horizontal: -7})

	got := c.Axes()
	if got.Vertical != 1 || got.Horizontal != -1 {
		t.Errorf("Axes() = %+v, want clamped to [-1,1]", got)
	}
}

func TestUpdateVisualWheels(t *testing.T) {
	c, w := newTestCar()
	w[0].pos = math.Vec3{X: 1, Y: 0.3, Z: 2}
	w[0].rot = math.QuatFromAxisAngle(math.Up, 0.4)

	c.FixedUpdate()

	if got := c.FL.Visual.WorldPosition(); got != w[0].pos {
		t.Errorf("visual wheel position = %v, want %v", got, w[0].pos)
	}
	if got := c.FL.Visual.WorldRotation(); got != w[0].rot {
		t.Errorf("visual wheel rotation = %v, want %v", got, w[0].rot)
	}
}
