package axiom

// RenderHints are cosmetic hints a layout can request for a window's
// decoration, independent of geometry. The effects controller and any
// downstream renderer consult these but the layout never touches pixels
// itself.
type RenderHints struct {
	BorderGradient        bool
	ForceOpaque           bool
	DisableRoundedCorners bool
	CustomShadow          bool
	AlphaOverride         float64
}

// Layout is the trait every tiling algorithm implements, dispatched per
// workspace and per event. "dwindle" and "floating" have full
// implementations; the other names are registered with stub
// implementations that return NotSupported from mutating methods.
type Layout interface {
	Name() string

	OnEnable(ws *Workspace)
	OnDisable(ws *Workspace)

	OnWindowCreated(ws *Workspace, win *Window) *Result
	OnWindowCreatedTiling(ws *Workspace, win *Window) *Result
	OnWindowRemoved(ws *Workspace, win *Window) *Result
	OnWindowRemovedTiling(ws *Workspace, win *Window) *Result

	IsWindowTiled(win *Window) bool

	RecalculateMonitor(o *Output)
	RecalculateWorkspace(ws *Workspace)
	RecalculateWindow(win *Window)

	ResizeActiveWindow(ws *Workspace, win *Window, dx, dy int) *Result
	SwitchWindows(ws *Workspace, a, b *Window) *Result
	MoveWindowTo(ws *Workspace, win *Window, d Direction, silent bool) *Result
	AlterSplitRatio(ws *Workspace, win *Window, ratio float64, exact bool) *Result

	GetNextWindowCandidate(ws *Workspace, current *Window, reverse bool) *Window
	RequestRenderHints(win *Window) RenderHints
	PredictSizeForNewWindowTiled(ws *Workspace) (w, h int)
}

// Registry holds every registered Layout keyed by name, mirroring the
// example corpus's TilingEngine.algorithms map and
// registerBuiltinAlgorithms pattern.
type Registry struct {
	layouts map[string]Layout
}

// NewRegistry builds a Registry with the dwindle and floating layouts
// fully implemented and master/grid/spiral/custom registered as stubs.
func NewRegistry() *Registry {
	r := &Registry{layouts: make(map[string]Layout)}
	r.register(&dwindleLayout{})
	r.register(&floatingLayout{})
	for _, name := range []string{"master", "grid", "spiral", "custom"} {
		r.register(&stubLayout{name: name})
	}
	return r
}

func (r *Registry) register(l Layout) {
	r.layouts[l.Name()] = l
}

// Get returns the named layout, or false if no layout was registered
// under that name.
func (r *Registry) Get(name string) (Layout, bool) {
	l, ok := r.layouts[name]
	return l, ok
}

// Switch moves ws from its current layout to newName, calling OnDisable
// on the outgoing layout then OnEnable on the incoming one. Windows are
// not destroyed across the switch.
func (r *Registry) Switch(ws *Workspace, newName string) *Result {
	next, ok := r.Get(newName)
	if !ok {
		return Errorf(InvalidArgument, "Registry.Switch", "unknown layout %q", newName)
	}
	if current, ok := r.Get(ws.Layout.LayoutName); ok {
		current.OnDisable(ws)
	}
	ws.Layout.LayoutName = newName
	next.OnEnable(ws)
	return nil
}

// dwindleLayout implements Layout atop a workspace's *Tree (component B).
type dwindleLayout struct{}

func (*dwindleLayout) Name() string { return "dwindle" }

func (*dwindleLayout) OnEnable(ws *Workspace)  {}
func (*dwindleLayout) OnDisable(ws *Workspace) {}

func (d *dwindleLayout) OnWindowCreated(ws *Workspace, win *Window) *Result {
	if !win.Tiled {
		ws.addFloating(win)
		return nil
	}
	return d.OnWindowCreatedTiling(ws, win)
}

func (*dwindleLayout) OnWindowCreatedTiling(ws *Workspace, win *Window) *Result {
	if win.OverrideRedirect {
		return Errorf(InvalidArgument, "dwindleLayout.OnWindowCreatedTiling", "override-redirect windows are never tiled")
	}
	var dir *Direction
	res := ws.Layout.Tree.Insert(win, ws.Focused(), dir, ws.Layout.SplitRatio)
	if res != nil {
		return res
	}
	ws.windows = append(ws.windows, win)
	win.Workspace = ws
	return nil
}

func (d *dwindleLayout) OnWindowRemoved(ws *Workspace, win *Window) *Result {
	if !win.Tiled {
		ws.removeFloating(win)
		return nil
	}
	return d.OnWindowRemovedTiling(ws, win)
}

func (*dwindleLayout) OnWindowRemovedTiling(ws *Workspace, win *Window) *Result {
	res := ws.Layout.Tree.Remove(win)
	for i, w := range ws.windows {
		if w == win {
			ws.windows = append(ws.windows[:i], ws.windows[i+1:]...)
			break
		}
	}
	return res
}

func (*dwindleLayout) IsWindowTiled(win *Window) bool { return win.Tiled }

func (*dwindleLayout) RecalculateMonitor(o *Output) {
	for _, ws := range o.workspaces {
		recalculateWorkspaceGeometry(ws)
	}
}

func (*dwindleLayout) RecalculateWorkspace(ws *Workspace) {
	recalculateWorkspaceGeometry(ws)
}

func (*dwindleLayout) RecalculateWindow(win *Window) {
	if win.Workspace != nil {
		recalculateWorkspaceGeometry(win.Workspace)
	}
}

func (*dwindleLayout) ResizeActiveWindow(ws *Workspace, win *Window, dx, dy int) *Result {
	res := ws.Layout.Tree.Resize(win, dx, dy, ws.Layout.MinRatio, ws.Layout.MaxRatio)
	if res != nil {
		return res
	}
	recalculateWorkspaceGeometry(ws)
	return nil
}

func (*dwindleLayout) SwitchWindows(ws *Workspace, a, b *Window) *Result {
	res := ws.Layout.Tree.Swap(a, b)
	if res != nil {
		return res
	}
	recalculateWorkspaceGeometry(ws)
	return nil
}

func (*dwindleLayout) MoveWindowTo(ws *Workspace, win *Window, d Direction, silent bool) *Result {
	neighbor := ws.Layout.Tree.Directional(win, d)
	if neighbor == nil {
		return Errorf(NotSupported, "dwindleLayout.MoveWindowTo", "no neighbor in that direction")
	}
	res := ws.Layout.Tree.Swap(win, neighbor)
	if res != nil {
		return res
	}
	if !silent {
		recalculateWorkspaceGeometry(ws)
	}
	return nil
}

func (*dwindleLayout) AlterSplitRatio(ws *Workspace, win *Window, ratio float64, exact bool) *Result {
	var res *Result
	if exact {
		res = ws.Layout.Tree.Resize(win, 0, 0, ws.Layout.MinRatio, ws.Layout.MaxRatio)
	} else {
		dx := int(ratio * 100)
		res = ws.Layout.Tree.Resize(win, dx, dx, ws.Layout.MinRatio, ws.Layout.MaxRatio)
	}
	if res != nil {
		return res
	}
	recalculateWorkspaceGeometry(ws)
	return nil
}

func (*dwindleLayout) GetNextWindowCandidate(ws *Workspace, current *Window, reverse bool) *Window {
	return ws.Layout.Tree.Next(current, reverse)
}

func (*dwindleLayout) RequestRenderHints(win *Window) RenderHints {
	return RenderHints{AlphaOverride: -1}
}

func (*dwindleLayout) PredictSizeForNewWindowTiled(ws *Workspace) (int, int) {
	rect := ws.Output.ContentRect()
	if ws.TiledCount() == 0 {
		return rect.W, rect.H
	}
	// Roughly halve along whichever axis the next split would take,
	// matching the smart-split heuristic used by Insert.
	if rect.W > rect.H {
		return rect.W / 2, rect.H
	}
	return rect.W, rect.H / 2
}

// recalculateWorkspaceGeometry fetches ws's output content rect, applies
// the active gap state, and recalculates the dwindle tree.
func recalculateWorkspaceGeometry(ws *Workspace) {
	if ws.Output == nil {
		return
	}
	base := ws.Output.ContentRect()
	gs := ws.Output.gapState
	gv := GapValues{}
	skipOuter := false
	if gs != nil {
		gv = gs.currentValues()
		skipOuter = gs.shouldSkipOuter(ws)
	}
	ws.Layout.Tree.Recalculate(base, gv, skipOuter)
}

// floatingLayout places windows at their rule- or client-provided
// geometry and never touches the dwindle tree; floating windows are not
// in the tree at all.
type floatingLayout struct{}

func (*floatingLayout) Name() string { return "floating" }

func (*floatingLayout) OnEnable(ws *Workspace)  {}
func (*floatingLayout) OnDisable(ws *Workspace) {}

func (*floatingLayout) OnWindowCreated(ws *Workspace, win *Window) *Result {
	win.Tiled = false
	ws.addFloating(win)
	return nil
}

func (*floatingLayout) OnWindowCreatedTiling(ws *Workspace, win *Window) *Result {
	return Errorf(NotSupported, "floatingLayout.OnWindowCreatedTiling", "floating layout has no tiling tree")
}

func (*floatingLayout) OnWindowRemoved(ws *Workspace, win *Window) *Result {
	ws.removeFloating(win)
	return nil
}

func (*floatingLayout) OnWindowRemovedTiling(ws *Workspace, win *Window) *Result {
	return Errorf(NotSupported, "floatingLayout.OnWindowRemovedTiling", "floating layout has no tiling tree")
}

func (*floatingLayout) IsWindowTiled(win *Window) bool { return false }

func (*floatingLayout) RecalculateMonitor(o *Output)      {}
func (*floatingLayout) RecalculateWorkspace(ws *Workspace) {}
func (*floatingLayout) RecalculateWindow(win *Window)      {}

func (*floatingLayout) ResizeActiveWindow(ws *Workspace, win *Window, dx, dy int) *Result {
	win.Geometry.W += dx
	win.Geometry.H += dy
	if win.node != nil {
		win.node.Resize(float64(win.Geometry.W), float64(win.Geometry.H))
	}
	return nil
}

func (*floatingLayout) SwitchWindows(ws *Workspace, a, b *Window) *Result {
	a.Geometry, b.Geometry = b.Geometry, a.Geometry
	return nil
}

func (*floatingLayout) MoveWindowTo(ws *Workspace, win *Window, d Direction, silent bool) *Result {
	return Errorf(NotSupported, "floatingLayout.MoveWindowTo", "directional navigation has no meaning for floating windows")
}

func (*floatingLayout) AlterSplitRatio(ws *Workspace, win *Window, ratio float64, exact bool) *Result {
	return Errorf(NotSupported, "floatingLayout.AlterSplitRatio", "floating windows have no split ratio")
}

func (*floatingLayout) GetNextWindowCandidate(ws *Workspace, current *Window, reverse bool) *Window {
	all := ws.floatingWindows
	if len(all) == 0 {
		return nil
	}
	idx := -1
	for i, w := range all {
		if w == current {
			idx = i
			break
		}
	}
	if idx == -1 {
		return all[0]
	}
	if reverse {
		idx = (idx - 1 + len(all)) % len(all)
	} else {
		idx = (idx + 1) % len(all)
	}
	return all[idx]
}

func (*floatingLayout) RequestRenderHints(win *Window) RenderHints {
	return RenderHints{AlphaOverride: -1}
}

func (*floatingLayout) PredictSizeForNewWindowTiled(ws *Workspace) (int, int) {
	return SizeMediumWH[0], SizeMediumWH[1]
}

// stubLayout registers a named layout with no implementation yet; every
// mutating method reports NotSupported per the documented-sentinel
// handling policy.
type stubLayout struct{ name string }

func (s *stubLayout) Name() string { return s.name }

func (*stubLayout) OnEnable(ws *Workspace)  {}
func (*stubLayout) OnDisable(ws *Workspace) {}

func (s *stubLayout) OnWindowCreated(ws *Workspace, win *Window) *Result {
	return Errorf(NotSupported, "stubLayout.OnWindowCreated", "layout %q is not implemented", s.name)
}
func (s *stubLayout) OnWindowCreatedTiling(ws *Workspace, win *Window) *Result {
	return Errorf(NotSupported, "stubLayout.OnWindowCreatedTiling", "layout %q is not implemented", s.name)
}
func (s *stubLayout) OnWindowRemoved(ws *Workspace, win *Window) *Result {
	return Errorf(NotSupported, "stubLayout.OnWindowRemoved", "layout %q is not implemented", s.name)
}
func (s *stubLayout) OnWindowRemovedTiling(ws *Workspace, win *Window) *Result {
	return Errorf(NotSupported, "stubLayout.OnWindowRemovedTiling", "layout %q is not implemented", s.name)
}

func (*stubLayout) IsWindowTiled(win *Window) bool { return false }

func (*stubLayout) RecalculateMonitor(o *Output)      {}
func (*stubLayout) RecalculateWorkspace(ws *Workspace) {}
func (*stubLayout) RecalculateWindow(win *Window)      {}

func (s *stubLayout) ResizeActiveWindow(ws *Workspace, win *Window, dx, dy int) *Result {
	return Errorf(NotSupported, "stubLayout.ResizeActiveWindow", "layout %q is not implemented", s.name)
}
func (s *stubLayout) SwitchWindows(ws *Workspace, a, b *Window) *Result {
	return Errorf(NotSupported, "stubLayout.SwitchWindows", "layout %q is not implemented", s.name)
}
func (s *stubLayout) MoveWindowTo(ws *Workspace, win *Window, d Direction, silent bool) *Result {
	return Errorf(NotSupported, "stubLayout.MoveWindowTo", "layout %q is not implemented", s.name)
}
func (s *stubLayout) AlterSplitRatio(ws *Workspace, win *Window, ratio float64, exact bool) *Result {
	return Errorf(NotSupported, "stubLayout.AlterSplitRatio", "layout %q is not implemented", s.name)
}

func (*stubLayout) GetNextWindowCandidate(ws *Workspace, current *Window, reverse bool) *Window {
	return nil
}

func (*stubLayout) RequestRenderHints(win *Window) RenderHints {
	return RenderHints{AlphaOverride: -1}
}

func (*stubLayout) PredictSizeForNewWindowTiled(ws *Workspace) (int, int) {
	return 0, 0
}
