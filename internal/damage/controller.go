package damage

import (
	"go.uber.org/zap"

	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/internal/logger"
	"github.com/Faultbox/crashsim/internal/physics"
	"github.com/Faultbox/crashsim/pkg/math"
)

// Options contains optional controller wiring.
type Options struct {
	// Meshes, when non-empty, is the exact set of meshes to deform.
	Meshes []scene.MeshRef
	// Discover finds meshes when Meshes is empty. Defaults to scene.CollectMeshes.
	Discover DiscoverFunc
	// OnImpact is called after every applied deformation.
	OnImpact func(Impact, Result)
}

// Stats counts controller activity since Initialize.
type Stats struct {
	Steps           int     // Physics steps observed
	SimTime         float32 // Accumulated physics time in seconds
	Collisions      int     // Collision callbacks received
	Ignored         int     // Collisions without contacts or too close to the pivot
	Applied         int     // Collisions that ran a deformation pass
	VerticesMoved   int     // Total vertex displacements applied
	MaxDisplacement float32 // Largest single-vertex displacement seen
}

// Controller hosts the damage model for one owner node. The host drives it
// through Initialize, OnPhysicsStep and OnCollision from a single goroutine.
type Controller struct {
	cfg   Config
	owner *scene.Node
	opts  Options

	registry *Registry
	deformer *Deformer
	stats    Stats
}

// NewController creates an uninitialized controller.
func NewController(cfg Config, owner *scene.Node, opts Options) *Controller {
	return &Controller{
		cfg:   cfg,
		owner: owner,
		opts:  opts,
	}
}

// Initialize resolves the deformable meshes. Only the first call has an effect.
func (c *Controller) Initialize() {
	if c.registry != nil {
		return
	}

	c.registry = NewRegistry(c.owner, c.opts.Meshes, c.opts.Discover)
	c.deformer = NewDeformer(c.cfg, c.owner, c.registry.Surfaces())

	logger.Info("damage controller initialized",
		zap.String("owner", c.owner.Name),
		zap.Int("meshes", c.registry.Len()),
		zap.Int("vertices", c.registry.VertexCount()),
		zap.Float32("radius", c.cfg.DestructionRadius),
		zap.Bool("explicit", len(c.opts.Meshes) > 0),
	)
}

// Initialized reports whether Initialize has run.
func (c *Controller) Initialized() bool {
	return c.registry != nil
}

// OnPhysicsStep records a fixed physics step of dt seconds.
func (c *Controller) OnPhysicsStep(dt float32) {
	c.stats.Steps++
	c.stats.SimTime += dt
}

// OnCollision evaluates a collision and deforms the registered meshes when
// the impact passes the gate. It reports whether a deformation pass ran.
func (c *Controller) OnCollision(col physics.Collision) bool {
	if c.registry == nil {
		logger.Warn("collision before damage controller initialized", zap.String("owner", c.owner.Name))
		return false
	}
	c.stats.Collisions++

	impact, ok := Evaluate(c.cfg, c.owner.WorldPosition(), col)
	if !ok {
		c.stats.Ignored++
		logger.Debug("collision ignored",
			zap.String("owner", c.owner.Name),
			zap.Int("contacts", len(col.Contacts)),
			zap.Float32("offset", impact.Origin.Length()),
		)
		return false
	}

	res := c.Deform(impact.Point, impact.Force)

	logger.Debug("impact applied",
		zap.String("owner", c.owner.Name),
		zap.Float32("magnitude", impact.Magnitude),
		zap.Float32("force", impact.Force),
		zap.Int("vertices", res.VerticesMoved),
		zap.Float32("max_move", res.MaxDisplacement),
	)

	if c.opts.OnImpact != nil {
		c.opts.OnImpact(impact, res)
	}
	return true
}

// Deform runs one deformation pass directly, bypassing impact evaluation.
func (c *Controller) Deform(origin math.Vec3, force float32) Result {
	if c.deformer == nil {
		return Result{}
	}

	res := c.deformer.Deform(origin, force)
	c.stats.Applied++
	c.stats.VerticesMoved += res.VerticesMoved
	if res.MaxDisplacement > c.stats.MaxDisplacement {
		c.stats.MaxDisplacement = res.MaxDisplacement
	}
	return res
}

// SetDestructionRadius changes the influence radius after initialization.
func (c *Controller) SetDestructionRadius(radius float32) {
	c.cfg.DestructionRadius = radius
	if c.deformer != nil {
		c.deformer.SetDestructionRadius(radius)
	}
}

// Surfaces returns the resolved meshes, or nil before Initialize.
func (c *Controller) Surfaces() []scene.MeshRef {
	if c.registry == nil {
		return nil
	}
	return c.registry.Surfaces()
}

// Owner returns the node the damage is anchored to.
func (c *Controller) Owner() *scene.Node {
	return c.owner
}

// Config returns the active configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// Stats returns a copy of the activity counters.
func (c *Controller) Stats() Stats {
	return c.stats
}
