package axiom

import (
	"math"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var gapsLog = componentLogger("gaps")

// GapAdaptationMode selects which adaptive formula a profile uses to
// scale its base inner gap.
type GapAdaptationMode int

const (
	AdaptStatic GapAdaptationMode = iota
	AdaptByCount
	AdaptByDensity
	AdaptByFocus
	AdaptMixed
)

// EasingKind enumerates the interpolation curves a profile's animation
// may use.
type EasingKind int

const (
	EaseLinear EasingKind = iota
	EaseIn
	EaseOut
	EaseInOut
)

// tweenFunc maps an EasingKind onto the corresponding gween/ease curve.
func (k EasingKind) tweenFunc() ease.TweenFunc {
	switch k {
	case EaseIn:
		return ease.InQuad
	case EaseOut:
		return ease.OutQuad
	case EaseInOut:
		return ease.InOutQuad
	default:
		return ease.Linear
	}
}

// GapProfile is a named, scorable gap policy.
type GapProfile struct {
	Name    string
	Enabled bool

	Inner, Outer, Top, Bottom, Left, Right int

	AdaptationMode   GapAdaptationMode
	AdaptiveMin      float64
	AdaptiveMax      float64
	AdaptiveScale    float64
	AdaptiveThreshold float64

	MinWindows        int
	MaxWindows        int // 0 means unbounded
	FullscreenDisable bool
	FloatingOverride  bool
	WorkspacePattern  string
	OutputPattern     string

	AnimationEnabled    bool
	AnimationDurationMS int64
	Easing              EasingKind
}

// GapContext is the snapshot the profile scorer and adaptive formulas
// consume, rebuilt on every event that could affect gaps.
type GapContext struct {
	WindowCount     int
	TiledCount      int
	FloatingCount   int
	HasFullscreen   bool
	FocusedWindow   *Window
	ScreenWidth     int
	ScreenHeight    int
	Density         float64
}

// GapState holds an output's live gap values, its registered profiles,
// and any in-flight animation. All mutation happens on the compositor's
// single dispatch task; nothing here is
// synchronized.
type GapState struct {
	output *Output
	cfg    *Config

	profiles       []*GapProfile
	defaultProfile *GapProfile
	active         *GapProfile

	current GapValues

	animTweens [6]*gween.Tween
	animating  bool

	Stats struct {
		TotalAdaptations int
		ProfileSwitches  int
		AnimationFrames  int
	}
}

func newGapState(o *Output) *GapState {
	g := &GapState{output: o, cfg: DefaultConfig()}
	for _, p := range DefaultGapProfiles() {
		g.AddProfile(p)
	}
	return g
}

// SetConfig installs the compositor's live configuration, used for the
// smart_gaps/outer_gaps_smart/no_gaps_when_only knobs.
func (g *GapState) SetConfig(cfg *Config) {
	if cfg != nil {
		g.cfg = cfg
	}
}

// AddProfile registers a gap profile. The first profile added becomes the
// default if none has been set explicitly.
func (g *GapState) AddProfile(p *GapProfile) {
	g.profiles = append(g.profiles, p)
	if g.defaultProfile == nil {
		g.defaultProfile = p
	}
}

// SetDefaultProfile overrides which profile is used when none qualifies.
func (g *GapState) SetDefaultProfile(p *GapProfile) {
	g.defaultProfile = p
}

// ActiveProfile returns the profile currently selected for this output.
func (g *GapState) ActiveProfile() *GapProfile {
	return g.active
}

func (g *GapState) currentValues() GapValues {
	return g.current
}

// scoreProfile implements the profile-scoring table. qualifies is false when
// the window count falls outside the profile's [min_windows,
// max_windows] range.
func scoreProfile(p *GapProfile, ctx GapContext, ws *Workspace, output *Output) (score int, qualifies bool) {
	if ctx.WindowCount < p.MinWindows {
		return 0, false
	}
	if p.MaxWindows > 0 && ctx.WindowCount > p.MaxWindows {
		return 0, false
	}
	score = 10
	if p.AdaptationMode == AdaptByCount && ctx.TiledCount >= 3 {
		score += 5
	}
	if p.AdaptationMode == AdaptByDensity && ctx.Density != 96 {
		score += 5
	}
	if p.AdaptationMode == AdaptByFocus && ctx.FocusedWindow != nil {
		score += 5
	}
	if p.WorkspacePattern != "" && ws != nil && strings.Contains(strings.ToLower(ws.Name), strings.ToLower(p.WorkspacePattern)) {
		score += 3
	}
	if p.OutputPattern != "" && output != nil && strings.Contains(strings.ToLower(output.Name), strings.ToLower(p.OutputPattern)) {
		score += 3
	}
	return score, true
}

// SelectProfile picks the highest-scoring enabled profile for ctx, ties
// broken by registration order, falling back to the default profile if
// none qualifies.
func (g *GapState) SelectProfile(ctx GapContext, ws *Workspace) *GapProfile {
	best := g.defaultProfile
	bestScore := -1
	for _, p := range g.profiles {
		if !p.Enabled {
			continue
		}
		score, ok := scoreProfile(p, ctx, ws, g.output)
		if !ok {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = p
		}
	}
	if best != g.active {
		g.Stats.ProfileSwitches++
		gapsLog.WithField("profile", profileName(best)).Debug("active gap profile changed")
	}
	g.active = best
	return best
}

func profileName(p *GapProfile) string {
	if p == nil {
		return "<none>"
	}
	return p.Name
}

func adaptiveInnerByCount(p *GapProfile, ctx GapContext) float64 {
	g0 := float64(p.Inner)
	n := float64(ctx.TiledCount)
	if n <= p.AdaptiveThreshold {
		return g0
	}
	factor := math.Max(0.2, 1-0.1*p.AdaptiveScale*(n-p.AdaptiveThreshold))
	return clampFloat(g0*factor, p.AdaptiveMin, p.AdaptiveMax)
}

func adaptiveInnerByDensity(p *GapProfile, ctx GapContext) float64 {
	g0 := float64(p.Inner)
	rho := ctx.Density
	if rho == 0 {
		rho = 96
	}
	return clampFloat(g0*p.AdaptiveScale*96/rho, p.AdaptiveMin, p.AdaptiveMax)
}

func adaptiveInnerByFocus(p *GapProfile, ctx GapContext) float64 {
	g0 := float64(p.Inner)
	if ctx.FocusedWindow == nil {
		return g0
	}
	return clampFloat(g0*(1+0.2*p.AdaptiveScale), p.AdaptiveMin, p.AdaptiveMax)
}

// adaptiveInner implements the four adaptive-gap formulas.
func adaptiveInner(p *GapProfile, ctx GapContext) int {
	switch p.AdaptationMode {
	case AdaptByCount:
		return int(adaptiveInnerByCount(p, ctx))
	case AdaptByDensity:
		return int(adaptiveInnerByDensity(p, ctx))
	case AdaptByFocus:
		return int(adaptiveInnerByFocus(p, ctx))
	case AdaptMixed:
		return int((adaptiveInnerByCount(p, ctx) + adaptiveInnerByDensity(p, ctx)) / 2)
	default:
		return p.Inner
	}
}

// computeTargetValues derives the six gap dimensions for profile p under
// ctx, zeroing everything when fullscreen-disable applies.
func computeTargetValues(p *GapProfile, ctx GapContext) GapValues {
	if p == nil {
		return GapValues{}
	}
	if ctx.HasFullscreen && p.FullscreenDisable {
		return GapValues{}
	}
	return GapValues{
		Inner:  adaptiveInner(p, ctx),
		Outer:  p.Outer,
		Top:    p.Top,
		Bottom: p.Bottom,
		Left:   p.Left,
		Right:  p.Right,
	}
}

// Update rebuilds the gap context, selects a profile, computes its target
// values, applies the smart-gaps single-tile collapse, and either jumps
// straight to the target or starts an interpolation animation towards it
//. ws is the workspace whose pattern participates in
// scoring; it may be nil.
func (g *GapState) Update(ctx GapContext, ws *Workspace) {
	profile := g.SelectProfile(ctx, ws)
	target := computeTargetValues(profile, ctx)

	if g.cfg.SmartGaps && ctx.TiledCount <= 1 {
		target.Inner = 0
		if !g.cfg.OuterGapsSmart {
			// outer gaps remain at the profile's configured value
			target.Outer = profile.Outer
		} else {
			target.Outer, target.Top, target.Bottom, target.Left, target.Right = 0, 0, 0, 0, 0
		}
	}

	g.Stats.TotalAdaptations++

	if target == g.current {
		return
	}
	if profile != nil && profile.AnimationEnabled && profile.AnimationDurationMS > 0 {
		g.startAnimation(target, profile)
		return
	}
	g.current = target
}

// shouldSkipOuter reports whether Recalculate should omit outer-edge gaps
// entirely: either no_gaps_when_only (dwindle-level) or the
// smart-gaps single-tile collapse with outer_gaps_smart enabled
// applies.
func (g *GapState) shouldSkipOuter(ws *Workspace) bool {
	if ws == nil {
		return false
	}
	if g.cfg.NoGapsWhenOnly && ws.TiledCount() == 1 {
		return true
	}
	if g.cfg.SmartGaps && g.cfg.OuterGapsSmart && ws.TiledCount() <= 1 {
		return true
	}
	return false
}

func (g *GapState) startAnimation(target GapValues, profile *GapProfile) {
	from := g.current
	duration := float32(profile.AnimationDurationMS) / 1000
	fn := profile.Easing.tweenFunc()
	vals := [6][2]int{
		{from.Inner, target.Inner},
		{from.Outer, target.Outer},
		{from.Top, target.Top},
		{from.Bottom, target.Bottom},
		{from.Left, target.Left},
		{from.Right, target.Right},
	}
	for i, v := range vals {
		g.animTweens[i] = gween.New(float32(v[0]), float32(v[1]), duration, fn)
	}
	g.animating = true
}

// Step advances any in-flight gap animation by dt seconds, writing the
// interpolated values back into current. Returns whether an animation is
// still running.
func (g *GapState) Step(dt float32) bool {
	if !g.animating {
		return false
	}
	var out [6]int
	done := true
	for i, t := range g.animTweens {
		v, isDone := t.Update(dt)
		out[i] = int(v)
		if !isDone {
			done = false
		}
	}
	g.current = GapValues{Inner: out[0], Outer: out[1], Top: out[2], Bottom: out[3], Left: out[4], Right: out[5]}
	g.Stats.AnimationFrames++
	if done {
		g.animating = false
	}
	return g.animating
}

// BuildGapContext assembles a GapContext for ws at the current moment.
func BuildGapContext(ws *Workspace) GapContext {
	if ws == nil || ws.Output == nil {
		return GapContext{}
	}
	return GapContext{
		WindowCount:   len(ws.Windows()),
		TiledCount:    ws.TiledCount(),
		FloatingCount: ws.FloatingCount(),
		HasFullscreen: ws.HasFullscreen(),
		FocusedWindow: ws.Focused(),
		ScreenWidth:   ws.Output.Rectangle.W,
		ScreenHeight:  ws.Output.Rectangle.H,
		Density:       ws.Output.DPI,
	}
}

// DefaultGapProfiles returns the single built-in "default" profile,
// matching the inner/outer values used throughout the worked examples.
func DefaultGapProfiles() []*GapProfile {
	return []*GapProfile{
		{
			Name:           "default",
			Enabled:        true,
			Inner:          10,
			Outer:          5,
			AdaptationMode: AdaptStatic,
			AdaptiveMin:    0,
			AdaptiveMax:    40,
			AdaptiveScale:  1,
			MinWindows:     0,
			MaxWindows:     0,
		},
	}
}
