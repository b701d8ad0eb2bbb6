package main

import (
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs/component"
	"github.com/pkg/browser"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const popupFadeRate = 0.2

// PopupUI renders the stage card as a small panel anchored to the bottom of
// the screen, with buttons to open or copy the card's link.
type PopupUI struct {
	ui    *ebitenui.UI
	panel *widget.Container
	title *widget.Text
	body  *widget.Text
	open  *widget.Button
	copy  *widget.Button

	log          *zap.Logger
	link         string
	stage        int
	visible      bool
	alpha        float32
	layer        *ebiten.Image
	clipboardErr error

	openURL func(string) error
}

func NewPopupUI(log *zap.Logger) *PopupUI {
	p := &PopupUI{log: log, openURL: browser.OpenURL}
	p.clipboardErr = clipboard.Init()
	if p.clipboardErr != nil {
		log.Warn("clipboard unavailable", zap.Error(p.clipboardErr))
	}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x08, G: 0x0c, B: 0x1c, A: 220})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x2a, G: 0x4a, B: 0x6b, A: 0xff})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x3a, G: 0x66, B: 0x94, A: 0xff})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	p.title = widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xf5, G: 0xd3, B: 0x6b, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	p.body = widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	p.open = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnHover}),
		widget.ButtonOpts.Text("Open", &face, btnTextColor),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { p.openLink() }),
	)
	p.copy = widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnHover}),
		widget.ButtonOpts.Text("Copy link", &face, btnTextColor),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) { p.copyLink() }),
	)

	buttons := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	buttons.AddChild(p.open)
	buttons.AddChild(p.copy)

	p.panel = widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, 0),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
	)
	p.panel.AddChild(p.title)
	p.panel.AddChild(p.body)
	p.panel.AddChild(buttons)
	p.panel.GetWidget().Visibility = widget.Visibility_Hide

	// The margin keeps the panel clear of the bottom edge.
	margin := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Bottom: 40}),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionEnd,
		})),
	)
	margin.AddChild(p.panel)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(margin)
	p.ui = &ebitenui.UI{Container: root}
	return p
}

// Sync copies the popup component into the widgets.
func (p *PopupUI) Sync(popup *component.StagePopup) {
	if popup == nil {
		return
	}
	if popup.Visible == p.visible && popup.Stage == p.stage && popup.Card.Link == p.link {
		return
	}
	p.visible = popup.Visible
	p.stage = popup.Stage
	if !popup.Visible {
		return
	}
	p.title.Label = popup.Card.Title
	p.body.Label = popup.Card.Body
	p.link = popup.Card.Link
	p.panel.GetWidget().Visibility = widget.Visibility_Show
	if p.link == "" {
		p.open.GetWidget().Visibility = widget.Visibility_Hide
		p.copy.GetWidget().Visibility = widget.Visibility_Hide
	} else {
		p.open.GetWidget().Visibility = widget.Visibility_Show
		p.copy.GetWidget().Visibility = widget.Visibility_Show
	}
}

// Contains reports whether screen point x,y is over the panel while it
// accepts input. A panel fading out lets presses through to the island.
func (p *PopupUI) Contains(x, y int) bool {
	if p == nil || !p.interactive() {
		return false
	}
	return image.Pt(x, y).In(p.panel.GetWidget().Rect)
}

func (p *PopupUI) interactive() bool {
	return p.visible && p.alpha > 0
}

func (p *PopupUI) Update() {
	target := float32(0)
	if p.visible {
		target = 1
	}
	p.alpha = common.Approach(p.alpha, target, popupFadeRate, 0.01)
	if p.alpha == 0 {
		p.panel.GetWidget().Visibility = widget.Visibility_Hide
		return
	}
	if !p.interactive() {
		return
	}
	p.ui.Update()
}

func (p *PopupUI) Draw(screen *ebiten.Image) {
	if p.alpha == 0 {
		return
	}
	b := screen.Bounds()
	if p.layer == nil || p.layer.Bounds().Size() != b.Size() {
		if p.layer != nil {
			p.layer.Deallocate()
		}
		p.layer = ebiten.NewImage(b.Dx(), b.Dy())
	}
	p.layer.Clear()
	p.ui.Draw(p.layer)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(b.Min.X), float64(b.Min.Y))
	op.ColorScale.ScaleAlpha(p.alpha)
	screen.DrawImage(p.layer, op)
}

func (p *PopupUI) openLink() {
	if p.link == "" {
		return
	}
	if err := p.openURL(p.link); err != nil {
		p.log.Warn("open link failed", zap.String("url", p.link), zap.Error(err))
		return
	}
	p.log.Info("opened link", zap.String("url", p.link))
}

func (p *PopupUI) copyLink() {
	if p.link == "" {
		return
	}
	if p.clipboardErr != nil {
		p.log.Warn("copy link skipped", zap.Error(p.clipboardErr))
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(p.link))
	p.log.Info("copied link", zap.String("url", p.link))
}
