// Package inspect draws a deformed mesh in the terminal, shading each
// vertex by how far it has moved from its rest position.
package inspect

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/pkg/math"
)

// Projection selects which plane the mesh is flattened onto.
type Projection int

const (
	Top   Projection = iota // X right, Z up
	Side                    // Z right, Y up
	Front                   // X right, Y up
)

func (p Projection) String() string {
	switch p {
	case Top:
		return "top"
	case Side:
		return "side"
	case Front:
		return "front"
	}
	return fmt.Sprintf("projection(%d)", int(p))
}

func (p Projection) project(v math.Vec3) math.Vec2 {
	switch p {
	case Side:
		return math.Vec2{X: v.Z, Y: v.Y}
	case Front:
		return math.Vec2{X: v.X, Y: v.Y}
	default:
		return v.XZ()
	}
}

// Dent thresholds for shading, in mesh units.
const (
	LightDent = 0.02
	HeavyDent = 0.15
)

// View is a mesh plus the rest positions it is compared against.
type View struct {
	Mesh       *mesh.Mesh
	Rest       []math.Vec3 // Same length as Mesh.Vertices; nil shows no dents
	Projection Projection
	Title      string
}

// Cell is one plotted screen cell.
type Cell struct {
	Rune  rune
	Dent  float32 // Largest displacement among vertices in the cell
	Count int
}

// Raster is a grid of plotted cells, row 0 at the top.
type Raster struct {
	Width, Height int
	Cells         []Cell
	MaxDent       float32
}

// At returns the cell at column x, row y.
func (r *Raster) At(x, y int) Cell {
	return r.Cells[y*r.Width+x]
}

// Rasterize plots every vertex of the view into a width x height grid,
// fitting the rest and current shape with a one-cell margin.
func Rasterize(v View, width, height int) *Raster {
	r := &Raster{Width: width, Height: height, Cells: make([]Cell, width*height)}
	if v.Mesh == nil || len(v.Mesh.Vertices) == 0 || width < 3 || height < 3 {
		return r
	}

	lo := v.Projection.project(v.Mesh.Vertices[0])
	hi := lo
	grow := func(p math.Vec2) {
		lo, hi = lo.Min(p), hi.Max(p)
	}
	for _, p := range v.Mesh.Vertices {
		grow(v.Projection.project(p))
	}
	for _, p := range v.Rest {
		grow(v.Projection.project(p))
	}

	// Terminal cells are about twice as tall as wide.
	span := hi.Sub(lo).Max(math.Vec2{X: 1e-6, Y: 1e-6})
	spanX, spanY := span.X, span.Y
	scale := min(float32(width-2)/spanX, float32(height-2)/spanY*2)
	offX := (float32(width) - spanX*scale) / 2
	offY := (float32(height) - spanY*scale/2) / 2

	for i, p := range v.Mesh.Vertices {
		q := v.Projection.project(p)
		x := int(offX + (q.X-lo.X)*scale)
		y := height - 1 - int(offY+(q.Y-lo.Y)*scale/2)
		x = clampInt(x, 0, width-1)
		y = clampInt(y, 0, height-1)

		var dent float32
		if i < len(v.Rest) {
			dent = p.Distance(v.Rest[i])
		}
		c := &r.Cells[y*width+x]
		c.Count++
		c.Dent = max(c.Dent, dent)
		c.Rune = dentRune(c.Dent)
		r.MaxDent = max(r.MaxDent, dent)
	}
	return r
}

func dentRune(d float32) rune {
	switch {
	case d >= HeavyDent:
		return '#'
	case d >= LightDent:
		return 'o'
	default:
		return '.'
	}
}

func dentStyle(d float32) tcell.Style {
	switch {
	case d >= HeavyDent:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	case d >= LightDent:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Draw renders the view onto the screen with a status line at the bottom.
func Draw(s tcell.Screen, v View) {
	s.Clear()
	w, h := s.Size()
	if h < 2 {
		return
	}

	r := Rasterize(v, w, h-1)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := r.At(x, y)
			if c.Count == 0 {
				continue
			}
			s.SetContent(x, y, c.Rune, nil, dentStyle(c.Dent))
		}
	}

	status := fmt.Sprintf(" %s  [%s]  max dent %.3f  t/s/f view  q quit", v.Title, v.Projection, r.MaxDent)
	if v.Mesh != nil {
		b := v.Mesh.Bounds
		status += fmt.Sprintf("  bounds (%.2f %.2f %.2f)-(%.2f %.2f %.2f)",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}
	drawText(s, 0, h-1, tcell.StyleDefault.Reverse(true), status)
	s.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// Run draws the view and handles keys until the user quits.
// t, s and f switch projections; q, Esc and Ctrl-C quit.
func Run(s tcell.Screen, v View) {
	Draw(s, v)
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.Sync()
			Draw(s, v)
		case *tcell.EventKey:
			if handleKey(ev.Key(), ev.Rune(), &v) {
				return
			}
			Draw(s, v)
		}
	}
}

// handleKey applies a key press to the view and reports whether to quit.
func handleKey(key tcell.Key, r rune, v *View) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch r {
		case 'q':
			return true
		case 't':
			v.Projection = Top
		case 's':
			v.Projection = Side
		case 'f':
			v.Projection = Front
		}
	}
	return false
}
