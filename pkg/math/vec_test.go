package math

import (
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2MinMax(t *testing.T) {
	a := Vec2{1, -2}
	b := Vec2{-3, 4}
	if got, want := a.Min(b), (Vec2{-3, -2}); got != want {
		t.Errorf("Vec2.Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec2{1, 4}); got != want {
		t.Errorf("Vec2.Max() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Mul(t *testing.T) {
	got := Vec3{1, 2, 3}.Mul(Vec3{2, 0.5, -1})
	want := Vec3{2, 1, -3}
	if got != want {
		t.Errorf("Vec3.Mul() = %v, want %v", got, want)
	}
}

func TestVec3LengthSqr(t *testing.T) {
	if got := (Vec3{1, 2, 2}).LengthSqr(); got != 9 {
		t.Errorf("Vec3.LengthSqr() = %v, want 9", got)
	}
}

func TestVec3Slerp(t *testing.T) {
	x := Vec3{2, 0, 0}
	z := Vec3{0, 0, 4}

	tests := []struct {
		name string
		a, b Vec3
		t    float32
		want Vec3
	}{
		{"t=0 returns a", x, z, 0, x},
		{"t=1 returns b", x, z, 1, z},
		{"halfway rotates 45 degrees", x, z, 0.5, Vec3{2.1213, 0, 2.1213}},
		{"zero target lerps", x, Vec3{}, 0.5, Vec3{1, 0, 0}},
		{"parallel keeps direction", x, Vec3{6, 0, 0}, 0.5, Vec3{4, 0, 0}},
		{"t clamps above 1", x, z, 3, z},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Slerp(tt.b, tt.t)
			if got.Distance(tt.want) > 0.001 {
				t.Errorf("Slerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}

func TestVec3SlerpOpposite(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{-1, 0, 0}
	got := a.Slerp(b, 0.5)

	// Halfway between opposite unit vectors is some perpendicular unit vector
	if d := got.Dot(a); abs(d) > 0.001 {
		t.Errorf("Slerp of opposite vectors should be perpendicular, dot = %v", d)
	}
	if l := got.Length(); abs(l-1) > 0.001 {
		t.Errorf("Slerp of opposite unit vectors should be unit length, got %v", l)
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		v, want float32
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{7, 1},
	}

	for _, tt := range tests {
		if got := Clamp01(tt.v); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		current, target, delta, want float32
	}{
		{0, 1, 0.25, 0.25},
		{0.9, 1, 0.25, 1},
		{0, -1, 0.5, -0.5},
		{-0.1, 0, 0.5, 0},
	}

	for _, tt := range tests {
		if got := MoveTowards(tt.current, tt.target, tt.delta); abs(got-tt.want) > 1e-6 {
			t.Errorf("MoveTowards(%v, %v, %v) = %v, want %v", tt.current, tt.target, tt.delta, got, tt.want)
		}
	}
}
