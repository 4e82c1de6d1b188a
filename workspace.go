package axiom

// Output is a physical monitor: a rectangle in global compositor space plus
// reserved-area insets for panels/bars, a display name, and a DPI value used
// by the smart-gaps density formula.
type Output struct {
	Name      string
	Rectangle Rect
	Reserved  Inset
	DPI       float64

	// workspaces attached to this output; exactly one is Active.
	workspaces []*Workspace
	active     *Workspace

	gapState *GapState
}

// NewOutput constructs an Output with a default DPI of 96 (the smart-gaps
// engine's density baseline.
func NewOutput(name string, rect Rect) *Output {
	o := &Output{Name: name, Rectangle: rect, DPI: 96}
	o.gapState = newGapState(o)
	return o
}

// ContentRect returns the output's rectangle with reserved-area insets
// subtracted.
func (o *Output) ContentRect() Rect {
	return o.Reserved.Apply(o.Rectangle)
}

// Attach adds w to this output's workspace list. If it is the first
// workspace attached, it becomes active.
func (o *Output) Attach(w *Workspace) {
	w.Output = o
	o.workspaces = append(o.workspaces, w)
	if o.active == nil {
		o.active = w
	}
}

// ActiveWorkspace returns the currently visible workspace on this output,
// or nil if none is attached.
func (o *Output) ActiveWorkspace() *Workspace {
	return o.active
}

// SwitchTo makes w the active (visible) workspace on its output. It is a
// no-op if w is not attached to this output.
func (o *Output) SwitchTo(w *Workspace) {
	for _, ws := range o.workspaces {
		if ws == w {
			o.active = w
			return
		}
	}
}

// LayoutData holds the per-workspace BSP tree and its bookkeeping. It is a
// type distinct from both Workspace and Layout (design note, Open
// Question 2): Workspace owns one LayoutData, and the dispatcher resolves
// a Layout trait implementation by name to operate on it.
type LayoutData struct {
	Tree         *Tree
	SplitRatio   float64 // default ratio applied to new internal nodes
	MinRatio     float64
	MaxRatio     float64
	LayoutName   string // which Layout implementation currently owns this data
	FocusedLeaf  *treeNode
}

// Workspace is a logical desktop attached to exactly one output at a time,
// owning one dwindle tree and a reference to its output's gap state.
type Workspace struct {
	ID     int
	Name   string
	Output *Output
	Layout *LayoutData

	windows         []*Window
	floatingWindows []*Window
	focused         *Window
}

// NewWorkspace constructs an empty workspace with a fresh dwindle tree
// defaulting to the dwindle layout.
func NewWorkspace(id int, name string, cfg *Config) *Workspace {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Workspace{
		ID:   id,
		Name: name,
		Layout: &LayoutData{
			Tree:       newTree(),
			SplitRatio: cfg.DefaultSplitRatio,
			MinRatio:   cfg.MinSplitRatio,
			MaxRatio:   cfg.MaxSplitRatio,
			LayoutName: "dwindle",
		},
	}
}

// Windows returns every window (tiled and floating) on this workspace.
func (w *Workspace) Windows() []*Window {
	all := make([]*Window, 0, len(w.windows)+len(w.floatingWindows))
	all = append(all, w.windows...)
	all = append(all, w.floatingWindows...)
	return all
}

// TiledCount returns the number of tiled windows on this workspace.
func (w *Workspace) TiledCount() int {
	return len(w.windows)
}

// FloatingCount returns the number of floating windows on this workspace.
func (w *Workspace) FloatingCount() int {
	return len(w.floatingWindows)
}

// HasFullscreen reports whether any window on this workspace is fullscreen.
func (w *Workspace) HasFullscreen() bool {
	for _, win := range w.Windows() {
		if win.Fullscreen {
			return true
		}
	}
	return false
}

// Focused returns the currently focused window on this workspace, or nil.
func (w *Workspace) Focused() *Window {
	return w.focused
}

// SetFocused records win as focused. win may be nil to clear focus.
func (w *Workspace) SetFocused(win *Window) {
	w.focused = win
}

// addFloating registers win as a floating (non-tiled) window.
func (w *Workspace) addFloating(win *Window) {
	win.Workspace = w
	win.Tiled = false
	w.floatingWindows = append(w.floatingWindows, win)
}

// removeFloating unregisters win from the floating list. No-op if absent.
func (w *Workspace) removeFloating(win *Window) {
	for i, fw := range w.floatingWindows {
		if fw == win {
			w.floatingWindows = append(w.floatingWindows[:i], w.floatingWindows[i+1:]...)
			return
		}
	}
}
