// Package vehicle maps driver input onto the wheel actuators of a four-wheeled car.
package vehicle

import (
	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/pkg/math"
)

// Wheel is a wheel actuator provided by the physics engine.
type Wheel interface {
	SetMotorTorque(torque float32)
	SetSteerAngle(degrees float32)
	SetBrakeTorque(torque float32)
	// WorldPose returns the wheel's simulated world position and rotation.
	WorldPose() (math.Vec3, math.Quat)
}

// WheelInfo pairs a physics wheel with the scene node that draws it.
type WheelInfo struct {
	Visual   *scene.Node
	Collider Wheel
}

// Config holds drivetrain tuning.
type Config struct {
	Motor      float32    `yaml:"motor"`       // Rear wheel torque at full throttle
	MotorNitro float32    `yaml:"motor_nitro"` // Rear wheel torque while nitro is held
	Steer      float32    `yaml:"steer"`       // Front wheel steer angle at full lock, degrees
	Brake      float32    `yaml:"brake"`       // Brake torque applied to all wheels
	Axis       AxisConfig `yaml:"axis"`
}

// DefaultConfig returns the stock drivetrain.
func DefaultConfig() Config {
	return Config{
		Motor:      800,
		MotorNitro: 10000,
		Steer:      50,
		Brake:      440,
		Axis:       DefaultAxisConfig(),
	}
}

// Axes is one frame of driver input.
type Axes struct {
	Vertical   float32 // Throttle, -1 (reverse) to 1 (forward)
	Horizontal float32 // Steering, -1 (left) to 1 (right)
	Brake      bool
	Nitro      bool
}

// Controller drives a rear-wheel-drive, front-steered car.
type Controller struct {
	cfg Config

	FL, FR, BL, BR WheelInfo

	axes Axes
}

// NewController creates a controller for the four given wheels.
func NewController(cfg Config, fl, fr, bl, br WheelInfo) *Controller {
	return &Controller{
		cfg: cfg,
		FL:  fl,
		FR:  fr,
		BL:  bl,
		BR:  br,
	}
}

// Update stores the latest input. Call once per rendered frame.
func (c *Controller) Update(axes Axes) {
	axes.Vertical = math.Clamp(axes.Vertical, -1, 1)
	axes.Horizontal = math.Clamp(axes.Horizontal, -1, 1)
	c.axes = axes
}

// Axes returns the input applied on the next FixedUpdate.
func (c *Controller) Axes() Axes {
	return c.axes
}

// FixedUpdate pushes the stored input to the wheel actuators and syncs the
// visual wheels. Call once per physics step, before the step runs.
func (c *Controller) FixedUpdate() {
	var brake float32
	if c.axes.Brake {
		brake = c.cfg.Brake
	}
	for _, w := range c.Wheels() {
		w.Collider.SetBrakeTorque(brake)
	}

	steer := c.axes.Horizontal * c.cfg.Steer
	c.FL.Collider.SetSteerAngle(steer)
	c.FR.Collider.SetSteerAngle(steer)

	motor := c.cfg.Motor
	if c.axes.Nitro {
		motor = c.cfg.MotorNitro
	}
	c.BL.Collider.SetMotorTorque(c.axes.Vertical * motor)
	c.BR.Collider.SetMotorTorque(c.axes.Vertical * motor)

	c.UpdateVisualWheels()
}

// UpdateVisualWheels copies each collider's simulated pose onto its visual node.
func (c *Controller) UpdateVisualWheels() {
	for _, w := range c.Wheels() {
		if w.Visual == nil {
			continue
		}
		pos, rot := w.Collider.WorldPose()
		w.Visual.SetWorldPose(pos, rot)
	}
}

// Wheels returns the wheels in FL, FR, BL, BR order.
func (c *Controller) Wheels() [4]WheelInfo {
	return [4]WheelInfo{c.FL, c.FR, c.BL, c.BR}
}
