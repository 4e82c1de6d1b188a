package axiom

import (
	"testing"
	"time"
)

// fakeWindowAdapter records every signal delivered to it, for assertions
// without requiring a real downstream client protocol implementation.
type fakeWindowAdapter struct {
	configured  int
	lastX       int
	lastY       int
	lastW       int
	lastH       int
	maximized   []bool
	fullscreens []bool
	minimized   int
}

func (f *fakeWindowAdapter) Configure(win *Window, x, y, w, h int) {
	f.configured++
	f.lastX, f.lastY, f.lastW, f.lastH = x, y, w, h
}
func (f *fakeWindowAdapter) SignalMaximize(win *Window, maximized bool) {
	f.maximized = append(f.maximized, maximized)
}
func (f *fakeWindowAdapter) SignalFullscreen(win *Window, fullscreen bool) {
	f.fullscreens = append(f.fullscreens, fullscreen)
}
func (f *fakeWindowAdapter) SignalMinimize(win *Window) {
	f.minimized++
}

func newTestCompositor() (*Compositor, *Output, *Workspace) {
	c := NewCompositor(DefaultConfig(), &WillowSceneAdapter{})
	out := NewOutput("eDP-1", Rect{W: 1920, H: 1080})
	c.AddOutput(out)
	ws := c.AddWorkspace(1, "main", out)
	return c, out, ws
}

func TestHandleNewWindowInsertsAndFocuses(t *testing.T) {
	c, _, ws := newTestCompositor()
	win := NewWindow("term", "xterm", "term")

	if r := c.HandleNewWindow(ws, win); r != nil {
		t.Fatalf("unexpected error: %v", r)
	}
	if !ws.Layout.Tree.Contains(win) {
		t.Error("expected the new window to be tiled into the workspace's tree")
	}
	if ws.Focused() != win {
		t.Error("expected the new window to become focused")
	}
	if win.Effects == nil {
		t.Error("expected an effects block to be provisioned")
	}
	if win.node == nil {
		t.Error("expected a scene node to be created")
	}
}

func TestHandleNewWindowNilWorkspaceErrors(t *testing.T) {
	c, _, _ := newTestCompositor()
	win := NewWindow("a", "A", "a")
	if r := c.HandleNewWindow(nil, win); r == nil {
		t.Fatal("expected an error for a nil workspace")
	}
}

func TestHandleNewWindowAppliesMatchingRuleBeforeInsert(t *testing.T) {
	c, _, ws := newTestCompositor()
	win := NewWindow("", "Mpv", "video") // matches DefaultRules' "*mpv*" rule

	c.HandleNewWindow(ws, win)

	if win.Tiled {
		t.Error("expected the media-player rule to force floating")
	}
	if win.Geometry.W != SizeSmallWH[0] || win.Geometry.H != SizeSmallWH[1] {
		t.Errorf("expected the media-player rule's small size preset applied, got %+v", win.Geometry)
	}
	if !win.PictureInPicture {
		t.Error("expected the media-player rule to enable picture-in-picture")
	}
}

func TestHandleNewWindowRetargetsWorkspaceFromRule(t *testing.T) {
	c, out, ws1 := newTestCompositor()
	ws2 := c.AddWorkspace(2, "editor", out)
	_ = ws1

	win := NewWindow("", "VSCode", "code") // matches DefaultRules' "*code*" -> workspace 2

	c.HandleNewWindow(ws1, win)

	if win.Workspace != ws2 {
		t.Error("expected the editor rule to retarget the window onto workspace 2")
	}
	if ws2.Layout.Tree.Contains(win) {
		// tiled retarget happens before layout insertion, so it should be in ws2's tree
	} else {
		t.Error("expected the window to end up tiled into workspace 2's tree")
	}
	if ws1.Layout.Tree.Contains(win) {
		t.Error("expected the window to not remain in the original workspace's tree")
	}
}

func TestHandleWindowDestroyedTearsDownResources(t *testing.T) {
	c, _, ws := newTestCompositor()
	win := NewWindow("a", "A", "a")
	c.HandleNewWindow(ws, win)

	if r := c.HandleWindowDestroyed(win); r != nil {
		t.Fatalf("unexpected error: %v", r)
	}
	if ws.Layout.Tree.Contains(win) {
		t.Error("expected the window to be removed from the tree")
	}
	if win.Effects != nil {
		t.Error("expected effects to be torn down")
	}
	if win.node != nil {
		t.Error("expected the scene node to be destroyed and cleared")
	}
	if ws.Focused() == win {
		t.Error("expected focus to be cleared when the focused window is destroyed")
	}
}

func TestHandleWindowDestroyedNoWorkspaceErrors(t *testing.T) {
	c, _, _ := newTestCompositor()
	win := NewWindow("a", "A", "a")
	if r := c.HandleWindowDestroyed(win); r == nil {
		t.Fatal("expected an error destroying a window with no workspace")
	}
}

func TestHandleWorkspaceSwitchActivatesWorkspace(t *testing.T) {
	c, out, ws1 := newTestCompositor()
	ws2 := c.AddWorkspace(2, "two", out)

	if r := c.HandleWorkspaceSwitch(ws2); r != nil {
		t.Fatalf("unexpected error: %v", r)
	}
	if out.ActiveWorkspace() != ws2 {
		t.Error("expected ws2 to become the active workspace")
	}
	_ = ws1
}

func TestHandleFullscreenToggleSavesAndRestoresGeometry(t *testing.T) {
	c, _, ws := newTestCompositor()
	adapter := &fakeWindowAdapter{}
	c.SetWindowAdapter(adapter)

	win := NewWindow("a", "A", "a")
	win.Output = ws.Output
	win.Workspace = ws
	win.Geometry = Rect{X: 10, Y: 10, W: 300, H: 200}

	c.HandleFullscreenToggle(win)
	if !win.Fullscreen {
		t.Fatal("expected Fullscreen to be set")
	}
	if win.Geometry != win.Output.Rectangle {
		t.Errorf("expected geometry to cover the full output, got %+v", win.Geometry)
	}
	if len(adapter.fullscreens) != 1 || !adapter.fullscreens[0] {
		t.Error("expected SignalFullscreen(true) to be delivered")
	}

	c.HandleFullscreenToggle(win)
	if win.Fullscreen {
		t.Fatal("expected Fullscreen to be cleared")
	}
	if win.Geometry != (Rect{X: 10, Y: 10, W: 300, H: 200}) {
		t.Errorf("expected geometry restored to the saved value, got %+v", win.Geometry)
	}
	if len(adapter.fullscreens) != 2 || adapter.fullscreens[1] {
		t.Error("expected SignalFullscreen(false) to be delivered")
	}
}

func TestFrameTickRunsOverWindowWithSceneNode(t *testing.T) {
	c, _, ws := newTestCompositor()
	adapter := &fakeWindowAdapter{}
	c.SetWindowAdapter(adapter)

	win := NewWindow("a", "A", "a")
	c.HandleNewWindow(ws, win)

	before := adapter.configured
	c.FrameTick(time.Now(), 0.016)
	// recalculate() is called from HandleNewWindow already; FrameTick itself
	// does not call Configure unless a gap animation or tree animation is
	// in flight, so this only checks that a tick over a window with a scene
	// node runs without panicking.
	_ = before
}

func TestSwitchLayoutChangesActiveLayoutName(t *testing.T) {
	c, _, ws := newTestCompositor()
	if r := c.SwitchLayout(ws, "floating"); r != nil {
		t.Fatalf("unexpected error: %v", r)
	}
	if ws.Layout.LayoutName != "floating" {
		t.Errorf("LayoutName = %q, want floating", ws.Layout.LayoutName)
	}
}

func TestSwitchLayoutUnknownNameErrors(t *testing.T) {
	c, _, ws := newTestCompositor()
	if r := c.SwitchLayout(ws, "nonexistent"); r == nil {
		t.Fatal("expected an error switching to an unregistered layout")
	}
}

func TestLoadAndReloadRulesFileIntegration(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/rules.conf"
	writeFile(t, path, "[a]\nclass=*term*\npriority=1\n")

	c, _, _ := newTestCompositor()
	if r := c.LoadRulesFile(path); r != nil {
		t.Fatalf("unexpected error: %v", r)
	}
	if r := c.ReloadRules(); r != nil {
		t.Fatalf("unexpected error reloading an unchanged file: %v", r)
	}
}
