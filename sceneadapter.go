package axiom

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneNode is a handle into the downstream scene graph: create/destroy,
// set-position, place-below, set-enabled, create colored rectangle, and
// get-texture-for-surface all reduce to methods on a node plus the
// adapter that creates and reorders them.
type SceneNode interface {
	SetPosition(x, y float64)
	Resize(w, h float64)
	SetEnabled(enabled bool)
	SetColor(c Color)
	// Texture returns the opaque texture handle backing this node's
	// content, or nil if none has been captured yet.
	Texture() *ebiten.Image
}

// SceneAdapter is the scene-graph adapter the core consumes. WindowAdapter
// and OutputSource (below) round out the remaining external collaborator
// contracts.
type SceneAdapter interface {
	CreateWindowNode(w, h int) SceneNode
	CreateColoredRect(w, h int, c Color) SceneNode
	DestroyNode(n SceneNode)
	// PlaceBelow reorders n to sit immediately behind reference in
	// stacking order.
	PlaceBelow(n, reference SceneNode)
}

// WindowAdapter is the window/surface adapter contract: configure
// requests and lifecycle/maximize/fullscreen signals sent to the client.
type WindowAdapter interface {
	Configure(win *Window, x, y, w, h int)
	SignalMaximize(win *Window, maximized bool)
	SignalFullscreen(win *Window, fullscreen bool)
	SignalMinimize(win *Window)
}

// OutputSource is the output adapter contract: per-output rectangle,
// reserved-area insets, display name, and DPI.
type OutputSource interface {
	Outputs() []*Output
}

// sceneNode is a lean, flat scene-graph node: a positioned rectangle with
// a color or a captured content texture. Unlike willow's Node, it carries
// no parent/child hierarchy or transform stack — a compositor's windows
// and shadow rectangles sit at a single depth, ordered only by an
// explicit z-order list the adapter maintains, so no nested transform
// composition is needed.
type sceneNode struct {
	x, y, w, h float64
	color      Color
	enabled    bool

	rectImage *ebiten.Image // rebuilt lazily when size/color changes
	dirty     bool

	texture *ebiten.Image // captured window content, set by SetTexture
}

func (n *sceneNode) SetPosition(x, y float64) { n.x, n.y = x, y }

func (n *sceneNode) Resize(w, h float64) {
	if w == n.w && h == n.h {
		return
	}
	n.w, n.h = w, h
	n.dirty = true
}

func (n *sceneNode) SetEnabled(enabled bool) { n.enabled = enabled }

func (n *sceneNode) SetColor(c Color) {
	n.color = c
	n.dirty = true
}

func (n *sceneNode) SetTexture(t *ebiten.Image) { n.texture = t }

func (n *sceneNode) Texture() *ebiten.Image { return n.texture }

// WillowSceneAdapter is the default SceneAdapter, built by trimming
// willow's Node/Scene tree down to the single-depth z-order list a
// compositor scene actually needs: node creation (NewContainer/NewSprite
// in node.go), visibility and color setters (SetVisible/SetColor), and
// child reordering (AddChildAt) are all adapted from that source into
// plain slice operations here.
type WillowSceneAdapter struct {
	order []*sceneNode
}

// NewWillowSceneAdapter returns an empty adapter.
func NewWillowSceneAdapter() *WillowSceneAdapter {
	return &WillowSceneAdapter{}
}

func (a *WillowSceneAdapter) CreateWindowNode(w, h int) SceneNode {
	n := &sceneNode{w: float64(w), h: float64(h), color: Color{R: 1, G: 1, B: 1, A: 1}, enabled: true, dirty: true}
	a.order = append(a.order, n)
	return n
}

func (a *WillowSceneAdapter) CreateColoredRect(w, h int, c Color) SceneNode {
	n := &sceneNode{w: float64(w), h: float64(h), color: c, enabled: true, dirty: true}
	a.order = append(a.order, n)
	return n
}

func (a *WillowSceneAdapter) DestroyNode(sn SceneNode) {
	n, ok := sn.(*sceneNode)
	if !ok {
		return
	}
	for i, x := range a.order {
		if x == n {
			a.order = append(a.order[:i], a.order[i+1:]...)
			return
		}
	}
}

func (a *WillowSceneAdapter) PlaceBelow(sn, reference SceneNode) {
	n, ok := sn.(*sceneNode)
	if !ok {
		return
	}
	ref, ok := reference.(*sceneNode)
	if !ok {
		return
	}
	for i, x := range a.order {
		if x == n {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
	// Insert n immediately before ref: earlier in a.order draws first,
	// so "before" in the slice means "below" in stacking order.
	for i, x := range a.order {
		if x == ref {
			a.order = append(a.order[:i], append([]*sceneNode{n}, a.order[i:]...)...)
			return
		}
	}
	a.order = append(a.order, n)
}

// Draw renders every enabled node bottom-to-top into dst. This is the
// demo harness's responsibility, not the core's; it exists so cmd/axiomview can show
// the tiling engine's output without its own scene-graph implementation.
func (a *WillowSceneAdapter) Draw(dst *ebiten.Image) {
	for _, n := range a.order {
		if !n.enabled {
			continue
		}
		img := n.rectImage
		if img == nil || n.dirty {
			w, h := maxInt(int(n.w), 1), maxInt(int(n.h), 1)
			img = ebiten.NewImage(w, h)
			img.Fill(color.NRGBA{
				R: uint8(n.color.R * 255),
				G: uint8(n.color.G * 255),
				B: uint8(n.color.B * 255),
				A: uint8(n.color.A * 255),
			})
			n.rectImage = img
			n.dirty = false
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(n.x, n.y)
		dst.DrawImage(img, &op)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
