// Package axiom implements the core decision-making subsystems of a tiling
// Wayland compositor: the dwindle (binary-space-partition) tiling tree, a
// pluggable layout dispatcher, a glob-matching window-rules engine, an
// adaptive smart-gaps controller, and a realtime shadow/blur effects
// pipeline.
//
// The package does not render pixels, negotiate client protocols, or
// implement window decoration, input routing, or multi-seat arbitration.
// It is driven by a single cooperative dispatch task — a [Compositor] is
// not internally synchronized — and it instructs a downstream scene graph
// through the [SceneAdapter] contract instead of drawing anything itself.
//
// # Quick start
//
//	cfg := axiom.DefaultConfig()
//	c := axiom.NewCompositor(cfg, adapter)
//	output := axiom.NewOutput("eDP-1", axiom.Rect{W: 1920, H: 1080})
//	ws := c.AddWorkspace(1, "main", output)
//
//	win := axiom.NewWindow("firefox", "Firefox", "Mozilla Firefox")
//	c.HandleNewWindow(ws, win)
//	c.FrameTick(time.Now(), 0.016)
//
// # Window rules
//
// A rules file is a text, line-oriented format: a `[name]` line opens a
// rule, and subsequent `key=value` lines populate its matcher and
// actions. [Compositor.LoadRulesFile] parses it; [Compositor.ReloadRules]
// swaps the active rule set atomically, keeping the previous rules on a
// parse failure.
//
// # Effects
//
// Each window's shadow and two-pass Gaussian blur are rendered lazily as
// Kage shaders through [github.com/hajimehoshi/ebiten/v2], throttled to
// roughly 60 updates per second by [EffectsController.ShouldUpdate].
package axiom
