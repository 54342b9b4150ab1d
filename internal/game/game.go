// Package game runs the interactive crash simulator: a drivable car in a
// walled arena whose body dents on every wall hit.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/crashsim/internal/config"
	"github.com/Faultbox/crashsim/internal/engine/audio"
	"github.com/Faultbox/crashsim/internal/engine/camera"
	"github.com/Faultbox/crashsim/internal/engine/debug"
	"github.com/Faultbox/crashsim/internal/engine/input"
	"github.com/Faultbox/crashsim/internal/engine/lighting"
	"github.com/Faultbox/crashsim/internal/engine/picking"
	"github.com/Faultbox/crashsim/internal/engine/renderer"
	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/internal/engine/window"
	"github.com/Faultbox/crashsim/internal/logger"
	"github.com/Faultbox/crashsim/internal/scenario"
	"github.com/Faultbox/crashsim/pkg/math"
)

const (
	title = "CrashSim"
	fovY  = 1.0
	// Force of a dent stamped with the right mouse button.
	clickForce = 0.5
)

var (
	bodyColor   = math.Vec3{X: 0.75, Y: 0.12, Z: 0.1}
	wheelColor  = math.Vec3{X: 0.12, Y: 0.12, Z: 0.12}
	boundsColor = math.Vec3{X: 0.2, Y: 0.9, Z: 0.3}
)

// Game is the simulator instance.
type Game struct {
	config  *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager

	world  *World
	driver *input.Driver
	chase  *camera.ChaseCamera
	orbit  *camera.OrbitCamera

	orbiting   bool
	dragging   bool
	showBounds bool
	screenshot *debug.ScreenshotCapture

	// Scenario paths chosen in the file dialog, consumed on the main thread.
	pendingScenario chan string
}

// New creates the window, renderer and audio, then builds the world.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing simulator",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	g := &Game{
		config:     cfg,
		input:      input.New(),
		audio:      audio.New(),
		world:      NewWorld(cfg),
		driver:     input.NewDriver(cfg.Vehicle.Axis, input.DefaultBindings()),
		chase:      camera.NewChaseCamera(),
		orbit:      camera.NewOrbitCamera(),
		showBounds: cfg.Debug.ShowBounds,
		screenshot: debug.NewScreenshotCapture("screenshots", "crashsim"),

		pendingScenario: make(chan string, 1),
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The GL context must exist before the renderer loads functions.
	w, h := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:    w,
		Height:   h,
		FovY:     fovY,
		LightDir: lighting.LightDirection(cfg.Graphics.SunAzimuth, cfg.Graphics.SunElevation),
	})
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to create renderer: %w", err), g.window.Close())
	}

	if err := g.screenshot.SetFormat(cfg.Debug.ScreenshotFormat); err != nil {
		logger.Warn("keeping png screenshots", zap.Error(err))
	}

	// Audio init failure is not fatal.
	if err := g.audio.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
	}
	g.audio.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	g.audio.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	g.audio.SetMuted(cfg.Audio.Muted)

	logger.Info("simulator initialized",
		zap.Int("body_vertices", len(g.world.BodyMesh.Vertices)),
		zap.Float32("destruction_radius", cfg.Damage.DestructionRadius),
	)
	return g, nil
}

// Run drives the main loop until the window closes or Escape is pressed.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	fps := 0

	var frameBudget time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	logger.Info("starting simulation loop")

	for g.running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart

		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		g.update(dt)
		if err := g.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			fps = frameCount
			frameCount = 0
			fpsTimer = time.Now()
			g.updateTitle(fps)
		}

		if frameBudget > 0 {
			if spent := time.Since(frameStart); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

// Close releases audio, GPU and window resources.
func (g *Game) Close() error {
	logger.Info("closing simulator", zap.Any("damage", g.world.Damage.Stats()))

	var err error
	if g.audio != nil {
		err = multierr.Append(err, g.audio.Close())
	}
	if g.renderer != nil {
		err = multierr.Append(err, g.renderer.Close())
	}
	if g.window != nil {
		err = multierr.Append(err, g.window.Close())
	}
	return err
}

func (g *Game) handleEvents() {
	for _, e := range g.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			w, h := g.window.DrawableSize()
			g.renderer.Resize(w, h)

		case input.EventKeyDown:
			g.handleKey(e.Key)

		case input.EventMouseDown:
			switch e.Button {
			case sdl.BUTTON_LEFT:
				g.dragging = true
			case sdl.BUTTON_RIGHT:
				g.stampDent(e.MouseX, e.MouseY)
			}
		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				g.dragging = false
			}
		case input.EventMouseMove:
			if g.dragging && g.orbiting {
				g.orbit.HandleDrag(float32(e.RelX), float32(e.RelY))
			}
		case input.EventMouseWheel:
			if g.orbiting {
				g.orbit.HandleZoom(float32(e.Wheel))
			} else {
				g.chase.HandleZoom(float32(e.Wheel))
			}
		}
	}
}

func (g *Game) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		g.running = false
	case sdl.SCANCODE_R:
		g.world.Reset()
		g.driver.Reset()
	case sdl.SCANCODE_C:
		g.orbiting = !g.orbiting
		if g.orbiting {
			b := g.world.BodyMesh.Bounds
			g.orbit.FitToBounds(b.Min, b.Max)
		}
	case sdl.SCANCODE_F3:
		g.showBounds = !g.showBounds
	case sdl.SCANCODE_F5:
		g.openScenarioDialog()
	case sdl.SCANCODE_F12:
		g.captureScreenshot()
	}
}

// openScenarioDialog asks for a scenario file without blocking the loop.
// The chosen path is replayed on the main thread by update.
func (g *Game) openScenarioDialog() {
	go func() {
		path, err := dialog.File().
			Filter("Crash scenarios", "yaml", "yml").
			Filter("All Files", "*").
			Title("Replay crash scenario").
			Load()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case g.pendingScenario <- path:
		default:
			logger.Warn("scenario already pending, ignoring", zap.String("path", path))
		}
	}()
}

func (g *Game) replayPending() {
	select {
	case path := <-g.pendingScenario:
		s, err := scenario.Load(path)
		if err != nil {
			logger.Error("failed to load scenario", zap.Error(err))
			return
		}
		g.world.Replay(s)
	default:
	}
}

// stampDent casts a ray from the cursor and dents the body where it hits.
func (g *Game) stampDent(mouseX, mouseY int) {
	ww, wh := g.window.Size()
	ray := picking.ScreenToRay(float32(mouseX), float32(mouseY), float32(ww), float32(wh), fovY, g.view())

	point, ok := picking.PickMesh(ray, scene.MeshRef{Node: g.world.Root, Mesh: g.world.BodyMesh})
	if !ok {
		return
	}
	res := g.world.Dent(point, clickForce)
	logger.Debug("manual dent",
		zap.Float32("x", point.X), zap.Float32("y", point.Y), zap.Float32("z", point.Z),
		zap.Int("vertices", res.VerticesMoved),
	)
	g.playImpact(clickForce)
}

func (g *Game) playImpact(force float32) {
	if !g.audio.IsInitialized() {
		return
	}
	if err := g.audio.PlayImpact(force); err != nil {
		logger.Warn("impact sound failed", zap.Error(err))
	}
}

func (g *Game) view() math.Mat4 {
	if g.orbiting {
		return g.orbit.ViewMatrix()
	}
	return g.chase.ViewMatrix(g.world.Body.Position)
}

func (g *Game) update(dt float32) {
	g.replayPending()

	axes := g.driver.Axes(g.input.Keyboard(), dt)
	g.world.Update(axes, dt)

	for _, ev := range g.world.DrainImpacts() {
		logger.Info("impact",
			zap.Float32("force", ev.Impact.Force),
			zap.Int("vertices", ev.Result.VerticesMoved),
			zap.Float32("max_move", ev.Result.MaxDisplacement),
		)
		g.playImpact(ev.Impact.Force)
	}

	g.chase.Follow(g.world.Body.Yaw, dt)
	g.orbit.Center = g.world.Body.Position
}

func (g *Game) render() error {
	g.renderer.Begin()

	g.renderer.SetView(g.view())

	arena := g.world.Arena.Config()
	g.renderer.DrawArena(arena.HalfWidth, arena.HalfLength)

	body := scene.MeshRef{Node: g.world.Root, Mesh: g.world.BodyMesh}
	g.renderer.DrawMesh(body, bodyColor)
	for _, n := range g.world.Wheels {
		for _, m := range n.Meshes {
			g.renderer.DrawMesh(scene.MeshRef{Node: n, Mesh: m}, wheelColor)
		}
	}
	if g.showBounds {
		g.renderer.DrawBounds(body, boundsColor)
	}

	g.renderer.End()
	return nil
}

func (g *Game) updateTitle(fps int) {
	if !g.config.Debug.ShowFPS {
		return
	}
	stats := g.world.Damage.Stats()
	g.window.SetTitle(fmt.Sprintf("%s | %d fps | %.1f m/s | %d impacts | dent %.2f",
		title, fps, g.world.Body.ForwardSpeed(), stats.Applied, g.world.MaxDent()))
}

func (g *Game) captureScreenshot() {
	w, h := g.window.DrawableSize()
	path, err := g.screenshot.CaptureFromPixels(g.renderer.ReadPixels(w, h), w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
