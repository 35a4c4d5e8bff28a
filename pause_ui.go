package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// newPauseMenu builds the overlay shown while the simulation is frozen. No
// ticks reach the scheduler while the menu is up, so accumulated step time
// stays put until the game resumes.
func newPauseMenu(g *Game) *ebitenui.UI {
	face := ebtext.Face(ebtext.NewGoXFace(basicfont.Face7x13))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 200})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/2, baseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Paused", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(menuRowCentered()),
	))
	panel.AddChild(menuButton("Resume", &face, func() { g.paused = false }))
	panel.AddChild(menuButton("Quit", &face, func() { g.quit = true }))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// menuButton is a flat nine-slice button; no theme fonts are loaded, so the
// label uses the built-in basic face.
func menuButton(label string, face *ebtext.Face, onClick func()) *widget.Button {
	bg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: bg, Pressed: bg}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{
			Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		}),
		widget.ButtonOpts.WidgetOpts(menuRowCentered()),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { onClick() }),
	)
}

func menuRowCentered() widget.WidgetOpt {
	return widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})
}
