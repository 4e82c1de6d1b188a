// Command axiomview drives a scripted sequence of Compositor operations and
// renders the resulting window rectangles with Ebitengine, so the dwindle
// tiling, rules, and smart-gaps engines can be watched working instead of
// read about.
package main

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	axiom "github.com/GeneticxCln/axiom-core"
)

// demoStep is one scripted action, fired once its delay since the previous
// step has elapsed.
type demoStep struct {
	after time.Duration
	run   func(*axiom.Compositor, *axiom.Workspace)
}

func newWindow(appID, class, title string) *axiom.Window {
	return axiom.NewWindow(appID, class, title)
}

func script() []demoStep {
	var windows []*axiom.Window
	return []demoStep{
		{after: 0, run: func(c *axiom.Compositor, ws *axiom.Workspace) {
			w := newWindow("firefox", "Firefox", "Mozilla Firefox")
			windows = append(windows, w)
			c.HandleNewWindow(ws, w)
		}},
		{after: time.Second, run: func(c *axiom.Compositor, ws *axiom.Workspace) {
			w := newWindow("alacritty", "Alacritty", "zsh")
			windows = append(windows, w)
			c.HandleNewWindow(ws, w)
		}},
		{after: time.Second, run: func(c *axiom.Compositor, ws *axiom.Workspace) {
			w := newWindow("code", "Code", "main.go - axiom")
			windows = append(windows, w)
			c.HandleNewWindow(ws, w)
		}},
		{after: 2 * time.Second, run: func(c *axiom.Compositor, ws *axiom.Workspace) {
			if len(windows) > 0 {
				c.HandleFullscreenToggle(windows[0])
			}
		}},
		{after: 2 * time.Second, run: func(c *axiom.Compositor, ws *axiom.Workspace) {
			if len(windows) > 0 {
				c.HandleFullscreenToggle(windows[0])
			}
		}},
		{after: time.Second, run: func(c *axiom.Compositor, ws *axiom.Workspace) {
			if len(windows) > 1 {
				c.HandleWindowDestroyed(windows[1])
			}
		}},
	}
}

// game implements ebiten.Game by driving the compositor's scripted steps
// and delegating drawing to the scene adapter, a thin game-shell-around-a-
// scene wiring.
type game struct {
	comp     *axiom.Compositor
	ws       *axiom.Workspace
	scene    *axiom.WillowSceneAdapter
	steps    []demoStep
	cursor   int
	waitedMS time.Duration
	lastTick time.Time
}

func newGame() *game {
	scene := axiom.NewWillowSceneAdapter()
	cfg := axiom.DefaultConfig()
	comp := axiom.NewCompositor(cfg, scene)

	output := axiom.NewOutput("DEMO-1", axiom.Rect{W: 1280, H: 720})
	comp.AddOutput(output)
	ws := comp.AddWorkspace(1, "main", output)

	return &game{
		comp:     comp,
		ws:       ws,
		scene:    scene,
		steps:    script(),
		lastTick: time.Now(),
	}
}

func (g *game) Update() error {
	now := time.Now()
	dt := now.Sub(g.lastTick)
	g.lastTick = now

	if g.cursor < len(g.steps) {
		g.waitedMS += dt
		step := g.steps[g.cursor]
		if g.waitedMS >= step.after {
			step.run(g.comp, g.ws)
			g.waitedMS = 0
			g.cursor++
		}
	}

	g.comp.FrameTick(now, float32(dt.Seconds()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 1280, 720
}

var bgColor = color{R: 0x20, G: 0x20, B: 0x28, A: 0xff}

// color is a tiny standalone RGBA literal so main.go does not need to pull
// in image/color just for a single fill value.
type color struct{ R, G, B, A uint8 }

func (c color) RGBA() (r, g, b, a uint32) {
	return uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101, uint32(c.A) * 0x101
}

func main() {
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("axiom-core demo: dwindle tiling + rules + smart gaps")

	if err := ebiten.RunGame(newGame()); err != nil {
		log.Fatal(err)
	}
}
