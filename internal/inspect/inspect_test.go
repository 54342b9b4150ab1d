package inspect

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/crashsim/internal/engine/mesh"
	"github.com/Faultbox/crashsim/pkg/math"
)

func dentedBox() View {
	m := mesh.NewBox("body", math.Vec3{X: 2, Y: 1, Z: 4}, 2)
	rest := m.Clone().Vertices
	m.Vertices[0] = m.Vertices[0].Add(math.Vec3{X: 0.5})
	m.RecalculateBounds()
	return View{Mesh: m, Rest: rest, Title: "body"}
}

func TestRasterizeUndamaged(t *testing.T) {
	m := mesh.NewBox("body", math.Vec3{X: 2, Y: 1, Z: 4}, 2)
	r := Rasterize(View{Mesh: m, Rest: m.Clone().Vertices}, 40, 20)

	if r.MaxDent != 0 {
		t.Errorf("MaxDent = %v, want 0", r.MaxDent)
	}
	plotted := 0
	for _, c := range r.Cells {
		if c.Count > 0 {
			plotted += c.Count
			if c.Rune != '.' {
				t.Errorf("undamaged cell rune = %q, want '.'", c.Rune)
			}
		}
	}
	if plotted != len(m.Vertices) {
		t.Errorf("plotted %d vertices, want %d", plotted, len(m.Vertices))
	}
}

func TestRasterizeDent(t *testing.T) {
	r := Rasterize(dentedBox(), 40, 20)

	if r.MaxDent < 0.499 || r.MaxDent > 0.501 {
		t.Errorf("MaxDent = %v, want 0.5", r.MaxDent)
	}
	heavy := 0
	for _, c := range r.Cells {
		if c.Rune == '#' {
			heavy++
		}
	}
	if heavy == 0 {
		t.Error("expected a heavy dent cell")
	}
}

func TestRasterizeDegenerate(t *testing.T) {
	tests := []struct {
		name string
		view View
		w, h int
	}{
		{"nil mesh", View{}, 10, 10},
		{"empty mesh", View{Mesh: mesh.New("e", nil, nil)}, 10, 10},
		{"tiny screen", dentedBox(), 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rasterize(tt.view, tt.w, tt.h)
			for _, c := range r.Cells {
				if c.Count != 0 {
					t.Fatal("expected nothing plotted")
				}
			}
		})
	}
}

func TestProjectionPlanes(t *testing.T) {
	v := math.Vec3{X: 1, Y: 2, Z: 3}
	tests := []struct {
		p    Projection
		want math.Vec2
		name string
	}{
		{Top, math.Vec2{X: 1, Y: 3}, "top"},
		{Side, math.Vec2{X: 3, Y: 2}, "side"},
		{Front, math.Vec2{X: 1, Y: 2}, "front"},
	}
	for _, tt := range tests {
		if got := tt.p.project(v); got != tt.want {
			t.Errorf("%s.project = %v, want %v", tt.p, got, tt.want)
		}
		if tt.p.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.p.String(), tt.name)
		}
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		key      tcell.Key
		r        rune
		quit     bool
		wantProj Projection
	}{
		{tcell.KeyRune, 's', false, Side},
		{tcell.KeyRune, 'f', false, Front},
		{tcell.KeyRune, 't', false, Top},
		{tcell.KeyRune, 'x', false, Top},
		{tcell.KeyRune, 'q', true, Top},
		{tcell.KeyEscape, 0, true, Top},
		{tcell.KeyCtrlC, 0, true, Top},
	}
	for _, tt := range tests {
		v := View{}
		if got := handleKey(tt.key, tt.r, &v); got != tt.quit {
			t.Errorf("handleKey(%v, %q) quit = %v, want %v", tt.key, tt.r, got, tt.quit)
		}
		if v.Projection != tt.wantProj {
			t.Errorf("handleKey(%v, %q) projection = %v, want %v", tt.key, tt.r, v.Projection, tt.wantProj)
		}
	}
}

func TestDrawToScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	screen.Init()
	defer screen.Fini()
	screen.SetSize(60, 16)

	Draw(screen, dentedBox())

	var status strings.Builder
	for x := 0; x < 60; x++ {
		mainc, _, _, _ := screen.GetContent(x, 15)
		status.WriteRune(mainc)
	}
	if !strings.Contains(status.String(), "[top]") {
		t.Errorf("status line %q missing projection", status.String())
	}

	found := false
	for y := 0; y < 15 && !found; y++ {
		for x := 0; x < 60; x++ {
			mainc, _, style, _ := screen.GetContent(x, y)
			if mainc == '#' {
				fg, _, _ := style.Decompose()
				if fg != tcell.ColorRed {
					t.Errorf("heavy dent color = %v, want red", fg)
				}
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("dent not drawn on screen")
	}
}
