package math

import (
	"math"
	"testing"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	// Addition
	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	// Subtraction
	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	// Scalar multiplication
	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}

	dot := v1.Dot(v2)
	expectedDot := float32(32) // 1*4 + 2*5 + 3*6
	if dot != expectedDot {
		t.Errorf("Dot: expected %v, got %v", expectedDot, dot)
	}

	// Right x Up = Front in a right-handed system
	cross := Vec3Right.Cross(Vec3Up)
	if cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := NewVec3(3, 0, 0)
	normalized := v.Normalize()
	expected := NewVec3(1, 0, 0)

	if normalized != expected {
		t.Errorf("Normalize: expected %v, got %v", expected, normalized)
	}

	length := normalized.Length()
	if math.Abs(float64(length-1)) > 0.0001 {
		t.Errorf("Normalize: expected length 1, got %v", length)
	}

	if Vec3Zero.Normalize() != Vec3Zero {
		t.Errorf("Normalize: zero vector should stay zero")
	}
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			if m[i][j] != expected {
				t.Errorf("Identity: expected [%d][%d] = %v, got %v", i, j, expected, m[i][j])
			}
		}
	}
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	if m.Translation() != translation {
		t.Errorf("Translation: expected %v, got %v", translation, m.Translation())
	}

	point := NewVec4(0, 0, 0, 1)
	result := point.MulMat(m)
	if result.ToVec3() != translation {
		t.Errorf("Translation: expected %v, got %v", translation, result.ToVec3())
	}

	// Directions ignore translation
	if dir := m.MulDir(Vec3Up); dir != Vec3Up {
		t.Errorf("MulDir: expected %v, got %v", Vec3Up, dir)
	}
}

func TestMat4RotationY(t *testing.T) {
	m := Mat4RotationY(float32(math.Pi / 2))
	result := m.MulVec3(Vec3Right)

	expected := NewVec3(0, 0, -1)
	if !result.ApproxEqual(expected, 0.0001) {
		t.Errorf("RotationY: expected %v, got %v", expected, result)
	}
}

func TestMat4RotationEulerOrder(t *testing.T) {
	// Y is applied before X: Right -> -Z -> Up
	m := Mat4Rotation(NewVec3(math.Pi/2, math.Pi/2, 0))
	result := m.MulVec3(Vec3Right)

	if !result.ApproxEqual(Vec3Up, 0.0001) {
		t.Errorf("Rotation: expected %v, got %v", Vec3Up, result)
	}
}

func TestMat4Compose(t *testing.T) {
	m := Mat4Compose(NewVec3(1, 0, 0), NewVec3(0, math.Pi/2, 0), Splat(2))
	result := m.MulVec3(Vec3Right)

	// scaled to (2,0,0), rotated to (0,0,-2), moved to (1,0,-2)
	expected := NewVec3(1, 0, -2)
	if !result.ApproxEqual(expected, 0.0001) {
		t.Errorf("Compose: expected %v, got %v", expected, result)
	}
}

func TestMat4Perspective(t *testing.T) {
	fov := float32(math.Pi / 4)
	near := float32(0.1)
	far := float32(100.0)

	wide := Mat4Perspective(fov, 16.0/9.0, near, far)
	square := Mat4Perspective(fov, 1, near, far)

	if wide[0][0] >= square[0][0] {
		t.Errorf("Perspective: wider aspect should shrink X scale, got %v >= %v", wide[0][0], square[0][0])
	}
	if wide[1][1] != square[1][1] {
		t.Errorf("Perspective: Y scale should not depend on aspect, got %v and %v", wide[1][1], square[1][1])
	}

	// A point on the near plane maps to depth -1
	p := wide.MulVec3(NewVec3(0, 0, -near))
	if math.Abs(float64(p.Z+1)) > 0.0001 {
		t.Errorf("Perspective: expected near depth -1, got %v", p.Z)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	// The view matrix should transform the eye position to origin
	result := m.MulVec3(eye)
	if !result.ApproxEqual(Vec3Zero, 0.001) {
		t.Errorf("LookAt: expected eye to transform to origin, got %v", result)
	}

	// The target sits straight ahead on -Z
	ahead := m.MulVec3(Vec3Zero)
	if !ahead.ApproxEqual(NewVec3(0, 0, -5), 0.001) {
		t.Errorf("LookAt: expected target at (0,0,-5), got %v", ahead)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4RotationY(1)

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
