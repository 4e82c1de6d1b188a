package axiom

// Color is an RGBA color with components in [0, 1], matching the
// convention ebiten's ColorScale and DrawRectShader uniforms expect.
type Color struct {
	R, G, B, A float64
}

// ColorBlack is fully opaque black, the base tint for shadows.
var ColorBlack = Color{A: 1}

// ColorTransparent is fully transparent.
var ColorTransparent = Color{}
