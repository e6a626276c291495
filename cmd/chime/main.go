// Command chime opens a playable ambient scene: click anywhere to strike a
// pentatonic bell tone and spawn a ripple. Tab leaves/enters the playable
// room (strikes are gated off elsewhere), D sends a dream token to the
// overlay, O toggles the overlay.
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lumenfield/chime"
)

const (
	windowW = 960
	windowH = 640

	sceneGarden = "garden"
	sceneMenu   = "menu"
)

var dreamTokens = []string{"lantern", "tide", "sparrow", "ember", "drift"}

// dreamOverlay is a minimal overlay collaborator: it fades a token in and
// back out on its own schedule.
type dreamOverlay struct {
	token   string
	alpha   float64
	fadeIn  bool
	visible bool
}

func (o *dreamOverlay) Notify(token string) {
	o.token = token
	o.fadeIn = true
}

func (o *dreamOverlay) SetVisible(visible bool) { o.visible = visible }

func (o *dreamOverlay) Teardown() {
	o.token = ""
	o.alpha = 0
	o.fadeIn = false
}

func (o *dreamOverlay) step() {
	if o.fadeIn {
		o.alpha += 0.02
		if o.alpha >= 1 {
			o.alpha = 1
			o.fadeIn = false
		}
	} else if o.alpha > 0 {
		o.alpha -= 0.005
	}
}

func (o *dreamOverlay) draw(dst *ebiten.Image, w int) {
	if !o.visible || o.alpha <= 0 || o.token == "" {
		return
	}
	ebitenutil.DebugPrintAt(dst, o.token, w/2-len(o.token)*3, 24)
}

type game struct {
	inst    *chime.Instrument
	overlay *dreamOverlay
	scene   string
	tokenIx int

	viewW, viewH int
}

func newGame() *game {
	g := &game{scene: sceneGarden}
	g.overlay = &dreamOverlay{visible: true}
	g.inst = chime.NewInstrument(
		chime.WithScene(sceneGarden, func() string { return g.scene }),
		chime.WithOverlay(g.overlay),
	)
	// The scene label in the top-left corner is a control, not a playable
	// surface.
	g.inst.RegisterRegion(0, 0, 160, 32)
	return g
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if g.scene == sceneGarden {
			g.scene = sceneMenu
		} else {
			g.scene = sceneGarden
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.inst.NotifyDream(dreamTokens[g.tokenIx%len(dreamTokens)])
		g.tokenIx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.overlay.SetVisible(!g.overlay.visible)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.inst.Strike(float64(mx), float64(my))
	}

	g.inst.Step()
	g.overlay.step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{10, 8, 24, 255})
	g.inst.Draw(screen)
	g.overlay.draw(screen, g.viewW)

	label := fmt.Sprintf("room: %s", g.scene)
	if g.scene != sceneGarden {
		label += " (muted)"
	}
	ebitenutil.DebugPrintAt(screen, label, 8, 8)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	s := ebiten.Monitor().DeviceScaleFactor()
	w := int(float64(outsideW) * s)
	h := int(float64(outsideH) * s)
	if w != g.viewW || h != g.viewH {
		g.viewW, g.viewH = w, h
		g.inst.SetViewport(float64(w), float64(h))
	}
	return w, h
}

func main() {
	g := newGame()
	defer g.inst.Teardown()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("chime")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
