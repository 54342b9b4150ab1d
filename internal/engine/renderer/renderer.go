// Package renderer draws deformable meshes, debug lines and the arena with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/crashsim/internal/engine/debug"
	"github.com/Faultbox/crashsim/internal/engine/lighting"
	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/internal/engine/shader"
	"github.com/Faultbox/crashsim/internal/logger"
	"github.com/Faultbox/crashsim/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FovY   float32 // Vertical field of view, radians
	Near   float32
	Far    float32
	// LightDir is the direction sunlight travels. Zero picks a default.
	LightDir math.Vec3
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	meshProgram *shader.Program
	lineProgram *shader.Program

	meshes map[*mesh.Mesh]*meshBuffer
	lines  *lineBuffer

	view, proj math.Mat4
	lightDir   math.Vec3
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config) (*Renderer, error) {
	if cfg.FovY == 0 {
		cfg.FovY = 1.0
	}
	if cfg.Near == 0 {
		cfg.Near = 0.1
	}
	if cfg.Far == 0 {
		cfg.Far = 500
	}
	if cfg.LightDir.LengthSqr() == 0 {
		cfg.LightDir = lighting.LightDirection(50, 60)
	}

	r := &Renderer{
		config:   cfg,
		meshes:   make(map[*mesh.Mesh]*meshBuffer),
		view:     math.Identity(),
		lightDir: cfg.LightDir.Normalize(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.meshProgram, err = shader.NewProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.lineProgram, err = shader.NewProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		r.meshProgram.Delete()
		return nil, fmt.Errorf("line shader: %w", err)
	}
	r.lines = newLineBuffer()

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() error {
	logger.Debug("closing renderer", zap.Int("meshes", len(r.meshes)))
	for m, buf := range r.meshes {
		buf.delete()
		delete(r.meshes, m)
	}
	if r.lines != nil {
		r.lines.delete()
	}
	r.meshProgram.Delete()
	r.lineProgram.Delete()
	return nil
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.proj = math.Perspective(r.config.FovY, float32(width)/float32(height), r.config.Near, r.config.Far)
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// SetView sets the camera view matrix for the following draws.
func (r *Renderer) SetView(view math.Mat4) {
	r.view = view
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawMesh draws a mesh with the world transform of its node, re-uploading
// vertex data when the mesh changed since the last draw.
func (r *Renderer) DrawMesh(ref scene.MeshRef, color math.Vec3) {
	buf, ok := r.meshes[ref.Mesh]
	if !ok {
		buf = newMeshBuffer(ref.Mesh)
		r.meshes[ref.Mesh] = buf
		logger.Debug("mesh uploaded",
			zap.String("mesh", ref.Mesh.Name),
			zap.Int("vertices", len(ref.Mesh.Vertices)),
		)
	} else {
		buf.sync(ref.Mesh)
	}

	p := r.meshProgram
	p.Use()
	p.SetMat4("uModel", modelMatrix(ref.Node))
	p.SetMat4("uView", r.view)
	p.SetMat4("uProj", r.proj)
	p.SetVec3("uLightDir", r.lightDir)
	p.SetVec3("uColor", color)
	buf.draw()
}

// DrawBounds draws the wireframe of a mesh's current bounds.
func (r *Renderer) DrawBounds(ref scene.MeshRef, color math.Vec3) {
	r.DrawLines(debug.BoundsWireframe(ref.Mesh.Bounds, 0.01), modelMatrix(ref.Node), color)
}

// DrawLines draws line segments given as xyz pairs.
func (r *Renderer) DrawLines(vertices []float32, model math.Mat4, color math.Vec3) {
	if len(vertices) < 6 {
		return
	}
	p := r.lineProgram
	p.Use()
	p.SetMat4("uMVP", r.proj.Mul(r.view).Mul(model))
	p.SetVec3("uColor", color)
	r.lines.draw(vertices)
}

// DrawArena draws the ground grid and the wall outline.
func (r *Renderer) DrawArena(halfWidth, halfLength float32) {
	r.DrawLines(GridLines(halfWidth, halfLength, 2), math.Identity(), math.Vec3{X: 0.25, Y: 0.27, Z: 0.3})
	r.DrawLines(WallLines(halfWidth, halfLength, 1.5), math.Identity(), math.Vec3{X: 0.85, Y: 0.55, Z: 0.1})
}

// ReadPixels reads the current framebuffer as bottom-up RGBA.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// modelMatrix builds the node's world matrix.
func modelMatrix(n *scene.Node) math.Mat4 {
	if n == nil {
		return math.Identity()
	}
	return math.TRS(n.WorldPosition(), n.WorldRotation(), n.LossyScale())
}
