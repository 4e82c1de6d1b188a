package axiom

import (
	"testing"
	"time"
)

func TestNextPowerOfTwoEffects(t *testing.T) {
	cases := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {100, 128}, {128, 128}, {129, 256},
	}
	for _, c := range cases {
		if got := nextPowerOfTwo(c.in); got != c.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestEffectsPoolAcquireRoundsUpToPow2(t *testing.T) {
	p := newEffectsPool()
	img := p.acquire(100, 50)
	defer p.release(img)

	b := img.Bounds()
	if b.Dx() != 128 || b.Dy() != 64 {
		t.Errorf("bounds = %dx%d, want 128x64", b.Dx(), b.Dy())
	}
}

func TestEffectsPoolReleaseAndReacquireReusesImage(t *testing.T) {
	p := newEffectsPool()
	img1 := p.acquire(64, 64)
	p.release(img1)

	img2 := p.acquire(64, 64)
	if img1 != img2 {
		t.Error("expected the released image to be reused on the next acquire of the same size")
	}
	p.release(img2)
}

func TestEffectsPoolReleaseNilNoPanic(t *testing.T) {
	p := newEffectsPool()
	p.release(nil)
}

func TestEnsureEffectsIsIdempotent(t *testing.T) {
	c := NewEffectsController(nil)
	win := NewWindow("a", "A", "a")
	win.Geometry = Rect{W: 200, H: 100}

	b1 := c.EnsureEffects(win)
	b2 := c.EnsureEffects(win)
	if b1 != b2 {
		t.Error("expected EnsureEffects to return the same block on repeated calls")
	}
	if win.Effects != b1 {
		t.Error("expected win.Effects to be set to the created block")
	}
}

func TestApplyRuleOverridesDisablesIndependently(t *testing.T) {
	c := NewEffectsController(nil)
	winA := NewWindow("a", "A", "a")
	winB := NewWindow("b", "B", "b")

	c.ApplyRuleOverrides(winA, true, false, false)
	c.ApplyRuleOverrides(winB, false, false, false)

	if winA.Effects.shadowCfg.Enabled {
		t.Error("expected shadow disabled on winA")
	}
	if !winB.Effects.shadowCfg.Enabled {
		t.Error("expected winB's shadow untouched by winA's override")
	}
}

func TestUpdateGeometryMarksDirtyOnResize(t *testing.T) {
	c := NewEffectsController(nil)
	win := NewWindow("a", "A", "a")
	win.Geometry = Rect{W: 200, H: 100}
	b := c.EnsureEffects(win)
	b.blur.needsUpdate = false
	b.shadow.needsUpdate = false

	win.Geometry = Rect{W: 300, H: 150}
	c.UpdateGeometry(win)

	if !b.blur.needsUpdate {
		t.Error("expected blur marked dirty after a geometry resize")
	}
	if !b.shadow.needsUpdate {
		t.Error("expected shadow marked dirty after a geometry resize")
	}
}

func TestUpdateGeometryNoOpWhenUnchanged(t *testing.T) {
	c := NewEffectsController(nil)
	win := NewWindow("a", "A", "a")
	win.Geometry = Rect{W: 200, H: 100}
	b := c.EnsureEffects(win)
	b.blur.needsUpdate = false
	b.shadow.needsUpdate = false

	c.UpdateGeometry(win)

	if b.blur.needsUpdate || b.shadow.needsUpdate {
		t.Error("expected no dirty flags set when geometry did not change")
	}
}

func TestShouldUpdateThrottlesToFrameInterval(t *testing.T) {
	c := NewEffectsController(nil)
	win := NewWindow("a", "A", "a")
	b := c.EnsureEffects(win)
	now := time.Now()
	b.LastFrameTime = now

	if c.ShouldUpdate(win, now.Add(5*time.Millisecond)) {
		t.Error("expected ShouldUpdate to be false before the throttle interval elapses")
	}
	if !c.ShouldUpdate(win, now.Add(17*time.Millisecond)) {
		t.Error("expected ShouldUpdate to be true once the throttle interval has elapsed")
	}
}

func TestShouldUpdateFalseForUnknownWindow(t *testing.T) {
	c := NewEffectsController(nil)
	win := NewWindow("a", "A", "a")
	if c.ShouldUpdate(win, time.Now()) {
		t.Error("expected ShouldUpdate to be false for a window with no effects block")
	}
}

func TestDestroyReleasesPoolResourcesAndClearsBlock(t *testing.T) {
	c := NewEffectsController(nil)
	win := NewWindow("a", "A", "a")
	win.Geometry = Rect{W: 64, H: 64}
	b := c.EnsureEffects(win)
	b.shadow.texture = c.pool.acquire(b.shadow.width, b.shadow.height)

	c.Destroy(win)

	if win.Effects != nil {
		t.Error("expected win.Effects to be cleared after Destroy")
	}
	if _, ok := c.blocks[win]; ok {
		t.Error("expected the controller to forget the window after Destroy")
	}
}

func TestRenderIfDirtySkipsWindowWithNoSceneNode(t *testing.T) {
	c := NewEffectsController(nil)
	win := NewWindow("a", "A", "a")
	win.Geometry = Rect{W: 64, H: 64}
	c.EnsureEffects(win)

	// win.node is nil, so the no-texture guard should keep RenderIfDirty
	// from attempting any shader work and from panicking.
	c.RenderIfDirty(win, time.Now())
}

func TestRenderIfDirtySkipsDisabledBlock(t *testing.T) {
	c := NewEffectsController(nil)
	win := NewWindow("a", "A", "a")
	win.Geometry = Rect{W: 64, H: 64}
	b := c.EnsureEffects(win)
	b.Enabled = false

	// Should return immediately without touching LastFrameTime.
	before := b.LastFrameTime
	c.RenderIfDirty(win, time.Now())
	if b.LastFrameTime != before {
		t.Error("expected a disabled effects block to be skipped entirely")
	}
}
