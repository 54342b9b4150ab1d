package scenario

import (
	"github.com/Faultbox/crashsim/internal/damage"
	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/internal/engine/scene"
	"github.com/Faultbox/crashsim/pkg/math"
)

// EventResult is the outcome of one collision.
type EventResult struct {
	Index   int // Position in the scenario's collision list
	Pass    int // Repeat number, starting at 0
	Applied bool
	Impact  damage.Impact
	Result  damage.Result
}

// Report is the outcome of a whole run.
type Report struct {
	Name   string
	Owner  *scene.Node
	Mesh   *mesh.Mesh
	Rest   []math.Vec3 // Body vertices before the first collision
	Events []EventResult
	Stats  damage.Stats
}

// MaxDent returns the largest distance any vertex ended up from its rest position.
func (r *Report) MaxDent() float32 {
	var d float32
	for i, v := range r.Mesh.Vertices {
		d = max(d, v.Distance(r.Rest[i]))
	}
	return d
}

// Run builds the scenario and feeds every collision to a fresh damage
// controller. A collision with Repeat n is delivered n times (once when 0).
func Run(s *Scenario) *Report {
	owner, body := s.Build()
	rep := &Report{
		Name:  s.Name,
		Owner: owner,
		Mesh:  body,
		Rest:  body.Clone().Vertices,
	}

	var last *EventResult
	ctrl := damage.NewController(s.Damage, owner, damage.Options{
		OnImpact: func(imp damage.Impact, res damage.Result) {
			last.Impact = imp
			last.Result = res
		},
	})
	ctrl.Initialize()

	for i, e := range s.Events {
		n := max(e.Repeat, 1)
		for pass := 0; pass < n; pass++ {
			rep.Events = append(rep.Events, EventResult{Index: i, Pass: pass})
			last = &rep.Events[len(rep.Events)-1]
			last.Applied = ctrl.OnCollision(e.Collision)
			if !last.Applied {
				last.Impact, _ = damage.Evaluate(s.Damage, owner.WorldPosition(), e.Collision)
			}
		}
	}

	rep.Stats = ctrl.Stats()
	return rep
}
