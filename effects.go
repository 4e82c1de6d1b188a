package axiom

import (
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

var effectsLog = componentLogger("effects")

// --- Kage shader sources -----------------------------------------------
// Both shaders use //kage:unit pixels like willow's filters. They work on
// premultiplied colour directly, with no un-premultiply step; the shadow
// shader returns a premultiplied tint.

const gaussianBlurShaderSrc = `//kage:unit pixels
package main

var Direction vec2
var Radius float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	var sum vec4
	var weightSum float
	sigma := Radius / 2.0
	for i := -8; i <= 8; i++ {
		w := exp(-float(i*i) / (2.0 * sigma * sigma))
		sum += imageSrc0At(src+Direction*float(i)) * w
		weightSum += w
	}
	return sum / weightSum
}
`

const shadowShaderSrc = `//kage:unit pixels
package main

var Color vec4
var Radius float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	var alpha float
	var weightSum float
	sigma := Radius / 2.0
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			w := exp(-float(dx*dx+dy*dy) / (2.0 * sigma * sigma))
			alpha += imageSrc0At(src + vec2(float(dx), float(dy))).a * w
			weightSum += w
		}
	}
	alpha /= weightSum
	return vec4(Color.rgb*Color.a*alpha, Color.a*alpha)
}
`

// Lazy shader compilation, no sync.Once: the core runs on a single
// dispatch task, matching willow's own "single-threaded" filter.go
// convention.
var (
	gaussianBlurShader *ebiten.Shader
	shadowShader       *ebiten.Shader
)

func ensureGaussianBlurShader() (*ebiten.Shader, error) {
	if gaussianBlurShader == nil {
		s, err := ebiten.NewShader([]byte(gaussianBlurShaderSrc))
		if err != nil {
			return nil, err
		}
		gaussianBlurShader = s
	}
	return gaussianBlurShader, nil
}

func ensureShadowShader() (*ebiten.Shader, error) {
	if shadowShader == nil {
		s, err := ebiten.NewShader([]byte(shadowShaderSrc))
		if err != nil {
			return nil, err
		}
		shadowShader = s
	}
	return shadowShader, nil
}

// --- pooled FBOs ---------------------------------------------------------

// effectsPool reuses *ebiten.Image render targets across windows, rounded
// up to the next power of two, exactly as willow's rendertarget.go
// renderTexturePool does for generic render-to-texture work.
type effectsPool struct {
	buckets map[uint64][]*ebiten.Image
}

func newEffectsPool() *effectsPool {
	return &effectsPool{buckets: make(map[uint64][]*ebiten.Image)}
}

func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(uint32(h))
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1),
// grounded directly on willow's rendertarget.go helper of the same name.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// acquire returns a cleared offscreen image with at least (w, h) pixels,
// rounded up to the next power of two, exactly as willow's
// renderTexturePool.Acquire does.
func (p *effectsPool) acquire(w, h int) *ebiten.Image {
	pw, ph := nextPowerOfTwo(w), nextPowerOfTwo(h)
	key := poolKey(pw, ph)
	if stack := p.buckets[key]; len(stack) > 0 {
		img := stack[len(stack)-1]
		p.buckets[key] = stack[:len(stack)-1]
		img.Clear()
		return img
	}
	return ebiten.NewImageWithOptions(image.Rect(0, 0, pw, ph), &ebiten.NewImageOptions{Unmanaged: true})
}

// release returns img to the pool for reuse on a later acquire of the
// same rounded size.
func (p *effectsPool) release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())
	p.buckets[key] = append(p.buckets[key], img)
}

// ShadowConfig holds the tunables for a window's drop shadow.
type ShadowConfig struct {
	OffsetX, OffsetY float64
	Radius           int
	Opacity          float64
	Color            Color
	Enabled          bool
}

// BlurConfig holds the tunables for a window's two-pass blur.
type BlurConfig struct {
	Radius    int
	Intensity float64
	Enabled   bool
}

// DefaultShadowConfig returns the default shadow tunables: offset 5x5,
// radius 10, opacity 0.5, color RGBA(0,0,0,128).
func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		OffsetX: 5, OffsetY: 5,
		Radius:  10,
		Opacity: 0.5,
		Color:   Color{R: 0, G: 0, B: 0, A: 128.0 / 255.0},
		Enabled: true,
	}
}

// DefaultBlurConfig returns the default blur tunables: radius 15, intensity 0.7.
func DefaultBlurConfig() BlurConfig {
	return BlurConfig{Radius: 15, Intensity: 0.7, Enabled: true}
}

// shadowResource is a window's shadow color texture + implicit
// framebuffer (an *ebiten.Image is directly drawable-to in Ebitengine, so
// no separate FBO handle is needed the way raw OpenGL requires).
type shadowResource struct {
	texture       *ebiten.Image
	width, height int
	needsUpdate   bool
	lastUpdate    time.Time
}

// blurResource is a window's two-pass blur textures.
type blurResource struct {
	texH, texV    *ebiten.Image
	width, height int
	needsUpdate   bool
}

// EffectsBlock is the per-window GPU resource set: a shadow, a two-pass
// blur, and the scene sub-tree that displays the shadow below the window.
type EffectsBlock struct {
	shadow *shadowResource
	blur   *blurResource

	shadowCfg ShadowConfig
	blurCfg   BlurConfig

	AnimationsEnabled bool
	Enabled           bool
	CurrentOpacity    float64
	LastFrameTime     time.Time

	shadowNode SceneNode // scene sibling placed below the window's node
}

// EffectsController owns every window's EffectsBlock and the pooled FBOs
// they draw into, and drives the per-frame update throttle.
type EffectsController struct {
	pool   *effectsPool
	blocks map[*Window]*EffectsBlock
	scene  SceneAdapter
}

// NewEffectsController builds a controller that creates scene nodes via
// adapter.
func NewEffectsController(adapter SceneAdapter) *EffectsController {
	return &EffectsController{
		pool:   newEffectsPool(),
		blocks: make(map[*Window]*EffectsBlock),
		scene:  adapter,
	}
}

// EnsureEffects lazily creates win's EffectsBlock on first use, sized to
// the window's current geometry plus blur radius padding for the shadow.
func (c *EffectsController) EnsureEffects(win *Window) *EffectsBlock {
	if b, ok := c.blocks[win]; ok {
		return b
	}
	shadowCfg := DefaultShadowConfig()
	blurCfg := DefaultBlurConfig()
	b := &EffectsBlock{
		shadowCfg:      shadowCfg,
		blurCfg:        blurCfg,
		Enabled:        true,
		CurrentOpacity: win.Opacity,
	}
	b.shadow = &shadowResource{
		width:       win.Geometry.W + 2*blurCfg.Radius,
		height:      win.Geometry.H + 2*blurCfg.Radius,
		needsUpdate: true,
	}
	b.blur = &blurResource{
		width:       win.Geometry.W,
		height:      win.Geometry.H,
		needsUpdate: true,
	}
	if c.scene != nil {
		rect := win.Geometry
		b.shadowNode = c.scene.CreateColoredRect(rect.W, rect.H, shadowCfg.Color)
		if win.node != nil {
			c.scene.PlaceBelow(b.shadowNode, win.node)
		}
	}
	win.Effects = b
	c.blocks[win] = b
	return b
}

// ApplyRuleOverrides sets disable_shadows/disable_blur/disable_animations
// on a local copy of win's effect config: re-enabling a feature on
// another window never affects this one.
func (c *EffectsController) ApplyRuleOverrides(win *Window, disableShadows, disableBlur, disableAnimations bool) {
	b := c.EnsureEffects(win)
	if disableShadows {
		b.shadowCfg.Enabled = false
	}
	if disableBlur {
		b.blurCfg.Enabled = false
	}
	if disableAnimations {
		b.AnimationsEnabled = false
	}
}

// MarkDirty flags win's shadow and blur as needing a re-render, e.g.
// after an explicit content change unrelated to a geometry resize.
func (c *EffectsController) MarkDirty(win *Window) {
	b, ok := c.blocks[win]
	if !ok {
		return
	}
	b.shadow.needsUpdate = true
	b.blur.needsUpdate = true
}

// UpdateGeometry repositions the shadow rectangle to win's new geometry
// plus its configured offset, and marks both resources dirty if the
// cached dimensions no longer match.
func (c *EffectsController) UpdateGeometry(win *Window) {
	b, ok := c.blocks[win]
	if !ok {
		return
	}
	rect := win.Geometry
	if b.shadowNode != nil {
		b.shadowNode.SetPosition(float64(rect.X)+b.shadowCfg.OffsetX, float64(rect.Y)+b.shadowCfg.OffsetY)
		b.shadowNode.Resize(float64(rect.W), float64(rect.H))
	}
	wantShadowW := rect.W + 2*b.blurCfg.Radius
	wantShadowH := rect.H + 2*b.blurCfg.Radius
	if b.shadow.width != wantShadowW || b.shadow.height != wantShadowH {
		b.shadow.width, b.shadow.height = wantShadowW, wantShadowH
		b.shadow.needsUpdate = true
	}
	if b.blur.width != rect.W || b.blur.height != rect.H {
		b.blur.width, b.blur.height = rect.W, rect.H
		b.blur.needsUpdate = true
	}
}

// throttleInterval is the ~60 fps cadence effects updates are limited to.
const throttleInterval = 16 * time.Millisecond

// ShouldUpdate is axiom_effects_should_update from the original: true iff
// at least 16ms have elapsed since win's effects last updated.
func (c *EffectsController) ShouldUpdate(win *Window, now time.Time) bool {
	b, ok := c.blocks[win]
	if !ok {
		return false
	}
	return now.Sub(b.LastFrameTime) >= throttleInterval
}

// RenderIfDirty performs the shadow and blur passes for win if its
// resources are dirty and the throttle allows it. On shader/FBO failure
// it downgrades the window to the no-effects path: the effects block
// stays present but Enabled is cleared, and the error is logged rather
// than propagated.
func (c *EffectsController) RenderIfDirty(win *Window, now time.Time) {
	b, ok := c.blocks[win]
	if !ok || !b.Enabled {
		return
	}
	if !c.ShouldUpdate(win, now) {
		return
	}
	b.LastFrameTime = now

	if win.node == nil {
		return
	}
	srcTex := win.node.Texture()
	if srcTex == nil {
		return
	}

	if b.shadowCfg.Enabled && b.shadow.needsUpdate {
		if err := c.renderShadow(b, srcTex); err != nil {
			effectsLog.WithError(err).WithField("window", win.Title).Warn("shadow render failed, disabling effects")
			b.Enabled = false
			return
		}
		b.shadow.needsUpdate = false
	}
	if b.blurCfg.Enabled && b.blur.needsUpdate {
		if err := c.renderBlur(b, srcTex); err != nil {
			effectsLog.WithError(err).WithField("window", win.Title).Warn("blur render failed, disabling effects")
			b.Enabled = false
			return
		}
		b.blur.needsUpdate = false
	}
}

func (c *EffectsController) renderShadow(b *EffectsBlock, src *ebiten.Image) error {
	shader, err := ensureShadowShader()
	if err != nil {
		return err
	}
	b.shadow.texture = c.pool.acquire(b.shadow.width, b.shadow.height)
	bounds := src.Bounds()
	var op ebiten.DrawRectShaderOptions
	op.Images[0] = src
	op.Uniforms = map[string]any{
		"Color":  [4]float32{float32(b.shadowCfg.Color.R), float32(b.shadowCfg.Color.G), float32(b.shadowCfg.Color.B), float32(b.shadowCfg.Color.A)},
		"Radius": float32(b.shadowCfg.Radius),
	}
	b.shadow.texture.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &op)
	return nil
}

// renderBlur performs the two-pass separable Gaussian blur: a horizontal
// pass reading src into blur_texture_h, then a vertical pass reading that
// into blur_texture_v.
func (c *EffectsController) renderBlur(b *EffectsBlock, src *ebiten.Image) error {
	shader, err := ensureGaussianBlurShader()
	if err != nil {
		return err
	}
	bounds := src.Bounds()
	b.blur.texH = c.pool.acquire(b.blur.width, b.blur.height)
	var hop ebiten.DrawRectShaderOptions
	hop.Images[0] = src
	hop.Uniforms = map[string]any{
		"Direction": [2]float32{1, 0},
		"Radius":    float32(b.blurCfg.Radius),
	}
	b.blur.texH.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &hop)

	b.blur.texV = c.pool.acquire(b.blur.width, b.blur.height)
	var vop ebiten.DrawRectShaderOptions
	vop.Images[0] = b.blur.texH
	vop.Uniforms = map[string]any{
		"Direction": [2]float32{0, 1},
		"Radius":    float32(b.blurCfg.Radius),
	}
	b.blur.texV.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &vop)
	return nil
}

// Destroy releases win's effects resources back to the pool and destroys
// its shadow scene node, called from window teardown.
func (c *EffectsController) Destroy(win *Window) {
	b, ok := c.blocks[win]
	if !ok {
		return
	}
	if b.shadow.texture != nil {
		c.pool.release(b.shadow.texture)
	}
	if b.blur.texH != nil {
		c.pool.release(b.blur.texH)
	}
	if b.blur.texV != nil {
		c.pool.release(b.blur.texV)
	}
	if b.shadowNode != nil && c.scene != nil {
		c.scene.DestroyNode(b.shadowNode)
	}
	delete(c.blocks, win)
	win.Effects = nil
}
