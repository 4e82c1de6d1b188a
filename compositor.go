package axiom

import "time"

var compositorLog = componentLogger("compositor")

// Compositor is the top-level orchestrator wiring the layout registry,
// rules manager, per-output gap state, and effects controller together
// behind a single cohesive operation surface. It runs on a single
// cooperative dispatch task and is deliberately NOT internally
// synchronized — unlike a multi-goroutine engine guarded by a
// sync.RWMutex, every exported method here assumes single-threaded,
// re-entrant-free callers.
type Compositor struct {
	Config *Config

	layouts *Registry
	rules   *RulesManager
	effects *EffectsController
	scene   SceneAdapter
	window  WindowAdapter

	outputs    []*Output
	workspaces []*Workspace
}

// NewCompositor wires a Compositor from a config and a scene adapter. The
// window adapter may be set later via SetWindowAdapter; it is optional
// (a headless compositor can operate without sending configure events).
func NewCompositor(cfg *Config, scene SceneAdapter) *Compositor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Compositor{
		Config:  cfg,
		layouts: NewRegistry(),
		rules:   NewRulesManager(),
		effects: NewEffectsController(scene),
		scene:   scene,
	}
}

// SetWindowAdapter attaches the adapter used to deliver configure and
// lifecycle signals to windows.
func (c *Compositor) SetWindowAdapter(a WindowAdapter) {
	c.window = a
}

// AddOutput registers an output with the compositor.
func (c *Compositor) AddOutput(o *Output) {
	c.outputs = append(c.outputs, o)
}

// AddWorkspace creates a workspace attached to output and registers it,
// and points output's gap state at the compositor's Config.
func (c *Compositor) AddWorkspace(id int, name string, output *Output) *Workspace {
	ws := NewWorkspace(id, name, c.Config)
	output.Attach(ws)
	if output.gapState != nil {
		output.gapState.SetConfig(c.Config)
	}
	c.workspaces = append(c.workspaces, ws)
	return ws
}

// WorkspaceByID returns the workspace with the given ID, or nil.
func (c *Compositor) WorkspaceByID(id int) *Workspace {
	for _, ws := range c.workspaces {
		if ws.ID == id {
			return ws
		}
	}
	return nil
}

// LoadRulesFile loads a rules file from disk, replacing the active rule
// set.
func (c *Compositor) LoadRulesFile(path string) *Result {
	return c.rules.Load(path)
}

// ReloadRules re-reads the previously loaded rules file, keeping the
// prior rule set in effect if the reload fails to parse.
func (c *Compositor) ReloadRules() *Result {
	return c.rules.ReloadRules()
}

// RulesStats exposes the rules engine's diagnostic counters.
func (c *Compositor) RulesStats() RuleStats {
	return c.rules.Stats
}

// HandleNewWindow inserts win into ws: it creates the window's scene
// node, applies any matching window rule (which may override tiling,
// position, size, opacity, or target workspace), inserts it into the
// active layout if still tiled, and lazily provisions its effects block.
func (c *Compositor) HandleNewWindow(ws *Workspace, win *Window) *Result {
	if ws == nil {
		return Errorf(InvalidArgument, "HandleNewWindow", "workspace is nil")
	}
	win.Workspace = ws
	win.Output = ws.Output
	win.Tiled = true

	if c.scene != nil {
		win.node = c.scene.CreateWindowNode(win.Geometry.W, win.Geometry.H)
	}

	c.rules.Apply(win)

	if r := c.rules.FindMatchingRule(win); r != nil && r.TargetWorkspaceID != 0 && r.TargetWorkspaceID != ws.ID {
		if target := c.WorkspaceByID(r.TargetWorkspaceID); target != nil {
			ws = target
			win.Workspace = ws
			win.Output = ws.Output
		}
	}

	layout, res := c.layoutFor(ws)
	if res != nil {
		return res
	}

	var insertRes *Result
	if win.Tiled {
		insertRes = layout.OnWindowCreatedTiling(ws, win)
	} else {
		insertRes = layout.OnWindowCreated(ws, win)
	}
	if insertRes != nil {
		return insertRes
	}

	ws.SetFocused(win)
	c.effects.EnsureEffects(win)
	c.recalculate(ws)
	return nil
}

// HandleWindowDestroyed removes win from its workspace's layout and
// tears down its effects and scene resources.
func (c *Compositor) HandleWindowDestroyed(win *Window) *Result {
	ws := win.Workspace
	if ws == nil {
		return Errorf(InvalidArgument, "HandleWindowDestroyed", "window has no workspace")
	}
	layout, res := c.layoutFor(ws)
	if res != nil {
		return res
	}
	var removeRes *Result
	if win.Tiled {
		removeRes = layout.OnWindowRemovedTiling(ws, win)
	} else {
		removeRes = layout.OnWindowRemoved(ws, win)
	}
	c.effects.Destroy(win)
	if c.scene != nil && win.node != nil {
		c.scene.DestroyNode(win.node)
		win.node = nil
	}
	if ws.Focused() == win {
		ws.SetFocused(nil)
	}
	if removeRes != nil {
		return removeRes
	}
	c.recalculate(ws)
	return nil
}

// HandleFocusChange records win as focused on its workspace.
func (c *Compositor) HandleFocusChange(ws *Workspace, win *Window) {
	ws.SetFocused(win)
}

// HandleWorkspaceSwitch makes ws the active workspace on its output.
func (c *Compositor) HandleWorkspaceSwitch(ws *Workspace) *Result {
	if ws.Output == nil {
		return Errorf(InvalidArgument, "HandleWorkspaceSwitch", "workspace %q has no output", ws.Name)
	}
	ws.Output.SwitchTo(ws)
	return nil
}

// HandleOutputChanged recomputes every workspace attached to o, e.g.
// after a resolution change or reserved-area update.
func (c *Compositor) HandleOutputChanged(o *Output) {
	for _, ws := range c.workspaces {
		if ws.Output == o {
			c.recalculate(ws)
		}
	}
}

// HandleFullscreenToggle toggles win's fullscreen state, saving or
// restoring its prior geometry.
func (c *Compositor) HandleFullscreenToggle(win *Window) {
	if !win.Fullscreen {
		win.SaveGeometry()
		win.Fullscreen = true
		if win.Output != nil {
			win.Geometry = win.Output.Rectangle
		}
	} else {
		win.Fullscreen = false
		win.Geometry = win.SavedGeometry
	}
	if win.Workspace != nil {
		c.recalculate(win.Workspace)
	}
	if c.window != nil {
		c.window.SignalFullscreen(win, win.Fullscreen)
	}
}

// FrameTick advances every workspace's gap animation and dwindle-tree
// geometry animation, and renders dirty effects for every window whose
// throttle window has elapsed. now should be a monotonically increasing
// timestamp (e.g. time.Now()); dt is the elapsed time since the previous
// tick.
func (c *Compositor) FrameTick(now time.Time, dt float32) {
	for _, ws := range c.workspaces {
		if ws.Output != nil && ws.Output.gapState != nil {
			if ws.Output.gapState.Step(dt) {
				c.recalculate(ws)
			}
		}
		if ws.Layout.Tree != nil {
			ws.Layout.Tree.Step(dt)
		}
		for _, win := range ws.Windows() {
			if win.node != nil {
				c.effects.UpdateGeometry(win)
				c.effects.RenderIfDirty(win, now)
			}
		}
	}
}

// layoutFor resolves ws's active Layout implementation by name.
func (c *Compositor) layoutFor(ws *Workspace) (Layout, *Result) {
	l, ok := c.layouts.Get(ws.Layout.LayoutName)
	if !ok {
		return nil, Errorf(InvalidArgument, "layoutFor", "unknown layout %q", ws.Layout.LayoutName)
	}
	return l, nil
}

// recalculate re-derives every tiled window's geometry on ws and pushes
// it to its scene node and window adapter.
func (c *Compositor) recalculate(ws *Workspace) {
	layout, res := c.layoutFor(ws)
	if res != nil {
		compositorLog.WithError(res).Error("recalculate: unresolved layout")
		return
	}
	if ws.Output != nil && ws.Output.gapState != nil {
		ws.Output.gapState.Update(BuildGapContext(ws), ws)
	}
	layout.RecalculateWorkspace(ws)
	if c.window == nil {
		return
	}
	for _, win := range ws.Windows() {
		g := win.Geometry
		c.window.Configure(win, g.X, g.Y, g.W, g.H)
	}
}

// SwitchLayout changes ws's active layout implementation by name.
func (c *Compositor) SwitchLayout(ws *Workspace, name string) *Result {
	if err := c.layouts.Switch(ws, name); err != nil {
		return err
	}
	c.recalculate(ws)
	return nil
}
