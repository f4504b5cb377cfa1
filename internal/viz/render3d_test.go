package viz

import "testing"

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera()

	x, y, _, visible := cam.Project(Vec3{}, 80, 64)
	if !visible {
		t.Fatal("origin should be visible")
	}
	if x != 40 || y != 32 {
		t.Errorf("origin projected to (%d,%d), want (40,32)", x, y)
	}
}

func TestCameraProjectDirections(t *testing.T) {
	cam := NewCamera()

	x, y, _, visible := cam.Project(Vec3{0, 0.5, 0}, 80, 64)
	if !visible {
		t.Fatal("point should be visible")
	}
	if x != 40 {
		t.Errorf("point on the y-axis moved horizontally: x=%d", x)
	}
	if y >= 32 {
		t.Errorf("point above center projected at or below it: y=%d", y)
	}

	x, _, _, _ = cam.Project(Vec3{0.5, 0, 0}, 80, 64)
	if x <= 40 {
		t.Errorf("point right of center projected at or left of it: x=%d", x)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	cam := NewCamera()

	// past the near plane (Dist 5)
	if _, _, _, visible := cam.Project(Vec3{0, 0, 6}, 80, 64); visible {
		t.Error("point behind the camera reported visible")
	}
}

func TestRender3DNilSafe(t *testing.T) {
	// must not panic
	Render3D(nil, NewWireframe(), NewCamera())
	Render3D(NewCanvas(4, 4), nil, NewCamera())
	Render3D(NewCanvas(4, 4), NewWireframe(), nil)
}

func TestRender3DDrawsVisibleEdges(t *testing.T) {
	c := NewCanvas(20, 10)
	wf := NewWireframe()
	wf.AddEdge(Vec3{-0.5, 0, 0}, Vec3{0.5, 0, 0})

	Render3D(c, wf, NewCamera())

	lit := 0
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("visible edge drew nothing")
	}
}
