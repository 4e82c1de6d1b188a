package axiom

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 100, H: 50}
	if !r.Contains(10, 10) {
		t.Error("expected top-left corner to be contained")
	}
	if r.Contains(110, 10) {
		t.Error("expected the right edge to be exclusive")
	}
	if r.Contains(9, 10) {
		t.Error("expected a point left of the rect to be excluded")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 100, H: 100}
	b := Rect{X: 50, Y: 50, W: 100, H: 100}
	c := Rect{X: 200, Y: 200, W: 10, H: 10}
	if !a.Intersects(b) {
		t.Error("expected overlapping rects to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected disjoint rects to not intersect")
	}
}

func TestRectEmpty(t *testing.T) {
	if (Rect{W: 10, H: 10}).Empty() {
		t.Error("expected a positive-area rect to not be empty")
	}
	if !(Rect{W: 0, H: 10}).Empty() {
		t.Error("expected a zero-width rect to be empty")
	}
	if !(Rect{W: -5, H: 10}).Empty() {
		t.Error("expected a negative-width rect to be empty")
	}
}

func TestRectInsetClampsAtZero(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 100, H: 100}
	got := r.Inset(10, 10, 10, 10)
	want := Rect{X: 10, Y: 10, W: 80, H: 80}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	clamped := r.Inset(60, 60, 0, 0)
	if clamped.H != 0 {
		t.Errorf("expected height to clamp to 0, got %d", clamped.H)
	}
}

func TestInsetApply(t *testing.T) {
	i := Inset{Top: 5, Bottom: 5, Left: 5, Right: 5}
	r := Rect{X: 0, Y: 0, W: 200, H: 200}
	got := i.Apply(r)
	want := Rect{X: 5, Y: 5, W: 190, H: 190}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSplitDirectionString(t *testing.T) {
	if SplitHorizontal.String() != "horizontal" {
		t.Error("expected SplitHorizontal to stringify as horizontal")
	}
	if SplitVertical.String() != "vertical" {
		t.Error("expected SplitVertical to stringify as vertical")
	}
}

func TestSplitByRatioHorizontalGapExact(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 1000, H: 500}
	first, second := SplitByRatio(r, SplitHorizontal, 0.5, 10)

	if first.Y != r.Y || first.H != r.H || second.Y != r.Y || second.H != r.H {
		t.Errorf("expected both children to span the full height, got first=%+v second=%+v", first, second)
	}
	gap := second.X - (first.X + first.W)
	if gap != 10 {
		t.Errorf("expected a 10px gap between children, got %d", gap)
	}
	if first.X+first.W > second.X {
		t.Error("expected children to not overlap")
	}
}

func TestSplitByRatioVerticalGapExact(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 500, H: 1000}
	first, second := SplitByRatio(r, SplitVertical, 0.3, 8)

	gap := second.Y - (first.Y + first.H)
	if gap != 8 {
		t.Errorf("expected an 8px gap between children, got %d", gap)
	}
	if first.W != r.W || second.W != r.W {
		t.Error("expected both children to span the full width")
	}
}

func TestSplitByRatioClampsNegativeSizes(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 5, H: 100}
	first, second := SplitByRatio(r, SplitHorizontal, 0.5, 50)
	if first.W < 0 || second.W < 0 {
		t.Errorf("expected sizes to clamp at zero, got first=%+v second=%+v", first, second)
	}
}

func TestDirectionAxis(t *testing.T) {
	if DirLeft.Axis() != SplitHorizontal || DirRight.Axis() != SplitHorizontal {
		t.Error("expected left/right to map to the horizontal axis")
	}
	if DirUp.Axis() != SplitVertical || DirDown.Axis() != SplitVertical {
		t.Error("expected up/down to map to the vertical axis")
	}
}

func TestDirectionIsForward(t *testing.T) {
	if !DirRight.IsForward() || !DirDown.IsForward() {
		t.Error("expected right/down to be forward directions")
	}
	if DirLeft.IsForward() || DirUp.IsForward() {
		t.Error("expected left/up to not be forward directions")
	}
}
