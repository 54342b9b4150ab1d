package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Faultbox/crashsim/pkg/math"
)

func TestRecalculateBounds(t *testing.T) {
	m := New("tri", []math.Vec3{
		{X: -1, Y: 0, Z: 2},
		{X: 3, Y: -2, Z: 0},
		{X: 0, Y: 5, Z: -4},
	}, []uint32{0, 1, 2})

	want := Bounds{Min: math.Vec3{X: -1, Y: -2, Z: -4}, Max: math.Vec3{X: 3, Y: 5, Z: 2}}
	if m.Bounds != want {
		t.Errorf("Bounds = %+v, want %+v", m.Bounds, want)
	}

	m.Vertices[0].X = -10
	m.RecalculateBounds()
	if m.Bounds.Min.X != -10 {
		t.Errorf("Bounds.Min.X after edit = %v, want -10", m.Bounds.Min.X)
	}
}

func TestRecalculateBoundsEmpty(t *testing.T) {
	m := New("empty", nil, nil)
	if m.Bounds != (Bounds{}) {
		t.Errorf("empty mesh bounds = %+v, want zero", m.Bounds)
	}
}

func TestSetVerticesBumpsVersion(t *testing.T) {
	m := NewBox("box", math.Vec3{X: 1, Y: 1, Z: 1}, 1)
	before := m.Version()
	m.SetVertices(m.Vertices)
	if m.Version() == before {
		t.Error("SetVertices should change Version()")
	}
}

func TestClone(t *testing.T) {
	m := NewBox("box", math.Vec3{X: 1, Y: 1, Z: 1}, 1)
	c := m.Clone()
	c.Vertices[0] = math.Vec3{X: 100}
	if m.Vertices[0] == c.Vertices[0] {
		t.Error("Clone shares vertex storage with the original")
	}
	if c.Name != m.Name || len(c.Indices) != len(m.Indices) {
		t.Error("Clone did not copy name or indices")
	}
}

func TestNewBox(t *testing.T) {
	tests := []struct {
		segments  int
		wantVerts int
		wantTris  int
	}{
		{1, 24, 12},
		{2, 54, 48},
		{4, 150, 192},
		{0, 24, 12}, // clamped to 1
	}

	size := math.Vec3{X: 2, Y: 1, Z: 4}
	for _, tt := range tests {
		m := NewBox("body", size, tt.segments)
		if len(m.Vertices) != tt.wantVerts {
			t.Errorf("segments=%d: %d vertices, want %d", tt.segments, len(m.Vertices), tt.wantVerts)
		}
		if len(m.Indices)/3 != tt.wantTris {
			t.Errorf("segments=%d: %d triangles, want %d", tt.segments, len(m.Indices)/3, tt.wantTris)
		}
		want := Bounds{Min: size.Scale(-0.5), Max: size.Scale(0.5)}
		if m.Bounds != want {
			t.Errorf("segments=%d: bounds %+v, want %+v", tt.segments, m.Bounds, want)
		}
	}
}

func TestBoxNormalsPointOutward(t *testing.T) {
	m := NewBox("body", math.Vec3{X: 2, Y: 2, Z: 2}, 2)
	normals := m.Normals()

	for i, v := range m.Vertices {
		if normals[i].Dot(v) <= 0 {
			t.Fatalf("vertex %d at %v has inward normal %v", i, v, normals[i])
		}
	}

	// Center of the +Y face
	top := 2*9 + 4
	if got := normals[top]; got.Distance(math.Up) > 0.0001 {
		t.Errorf("top face center normal = %v, want %v", got, math.Up)
	}
}

func TestBoundsHelpers(t *testing.T) {
	b := Bounds{Min: math.Vec3{X: -1, Y: 0, Z: -2}, Max: math.Vec3{X: 1, Y: 2, Z: 2}}
	if got := b.Center(); got != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("Center() = %v", got)
	}
	if got := b.Size(); got != (math.Vec3{X: 2, Y: 2, Z: 4}) {
		t.Errorf("Size() = %v", got)
	}
	if !b.Contains(math.Vec3{X: 1, Y: 2, Z: 2}) {
		t.Error("Contains should include the max corner")
	}
	if b.Contains(math.Vec3{X: 0, Y: 3, Z: 0}) {
		t.Error("Contains should reject points above the box")
	}
}

func TestWriteOBJ(t *testing.T) {
	m := NewBox("car_body", math.Vec3{X: 1, Y: 1, Z: 1}, 1)

	var buf bytes.Buffer
	if err := m.WriteOBJ(&buf); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	var objects, verts, normals, faces int
	for _, line := range strings.Split(buf.String(), "\n") {
		switch {
		case strings.HasPrefix(line, "o "):
			objects++
		case strings.HasPrefix(line, "v "):
			verts++
		case strings.HasPrefix(line, "vn "):
			normals++
		case strings.HasPrefix(line, "f "):
			faces++
		}
	}

	if objects != 1 || verts != 24 || normals != 24 || faces != 12 {
		t.Errorf("obj counts: o=%d v=%d vn=%d f=%d, want 1/24/24/12", objects, verts, normals, faces)
	}
	if !strings.Contains(buf.String(), "f 1//1 2//2 4//4") {
		t.Error("first face should reference 1-based indices")
	}
}
