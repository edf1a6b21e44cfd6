package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/vrviewer/common"
	"github.com/milk9111/vrviewer/ecs/component"
	"github.com/milk9111/vrviewer/viewer"
	"golang.org/x/image/font/basicfont"
)

// FlatUI holds the desktop controls: the menu buttons, the scenario buttons
// and the always-visible immersive toggle. Apply shows exactly the group the
// current Visibility asks for.
type FlatUI struct {
	game *Game

	root      *widget.Container
	menu      *widget.Container
	scenario  *widget.Container
	switchBtn *widget.Button
	vrBtn     *widget.Button

	switchTarget viewer.State
}

func NewFlatUI(g *Game) *FlatUI {
	f := &FlatUI{game: g}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x66, B: 0x66, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(common.BaseWidth/6, 32),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}
	group := func() *widget.Container {
		return widget.NewContainer(
			widget.ContainerOpts.BackgroundImage(panelImg),
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(10),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
			)),
			widget.ContainerOpts.WidgetOpts(
				widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionEnd}),
			),
		)
	}
	selectAction := func(action component.ActionID) func() {
		return func() { g.session.Select(action) }
	}

	f.menu = group()
	f.menu.AddChild(button("View House", selectAction(component.ActionGoToScenarioA)))
	f.menu.AddChild(button("View Character", selectAction(component.ActionGoToScenarioB)))

	f.scenario = group()
	f.scenario.AddChild(button("Back to Menu", selectAction(component.ActionGoToMenu)))
	f.switchBtn = button("", func() { g.session.TransitionTo(f.switchTarget) })
	f.scenario.AddChild(f.switchBtn)

	f.vrBtn = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
		widget.ButtonOpts.Text("ENTER VR", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/10, 32),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.setPresenting(!g.session.Presenting())
		}),
	)

	f.root = widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	f.root.AddChild(f.menu)
	f.root.AddChild(f.scenario)
	f.root.AddChild(f.vrBtn)

	f.Apply(viewer.Reconcile(false, viewer.StateMenu))
	return f
}

func (f *FlatUI) UI() *ebitenui.UI {
	return &ebitenui.UI{Container: f.root}
}

// Apply is registered as the session's visibility observer.
func (f *FlatUI) Apply(v viewer.Visibility) {
	setVisible(f.menu, v.MenuControls)
	setVisible(f.scenario, v.ScenarioControls)

	f.switchTarget = v.SwitchTarget
	if text := f.switchBtn.Text(); text != nil {
		text.Label = v.SwitchLabel
	}
	if text := f.vrBtn.Text(); text != nil {
		if v.Presenting {
			text.Label = "EXIT VR"
		} else {
			text.Label = "ENTER VR"
		}
	}
	f.root.RequestRelayout()
}

func setVisible(c *widget.Container, visible bool) {
	if visible {
		c.GetWidget().Visibility = widget.Visibility_Show
	} else {
		c.GetWidget().Visibility = widget.Visibility_Hide
	}
	c.RequestRelayout()
}
