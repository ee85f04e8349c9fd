package ui

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/deck-mobile/internal/model"
)

// CardWidget shows a card in a stack. It can be tapped to open the card or
// dragged onto a stack tab to move it.
type CardWidget struct {
	widget.BaseWidget

	card model.Card

	// OnTapped is called for a tap or a drag shorter than TapSlop
	OnTapped func(card model.Card)
	// OnDragged is called with the absolute pointer position while dragging
	OnDragged func(card model.Card, pos fyne.Position)
	// OnDropped is called with the absolute position where the drag ended
	OnDropped func(card model.Card, pos fyne.Position)

	dragging  bool
	dragDelta fyne.Delta
	dragPos   fyne.Position
	origin    fyne.Position

	background *canvas.Rectangle
	title      *widget.Label
	meta       *widget.Label
}

// NewCardWidget creates a widget for card, using now to mark overdue cards
func NewCardWidget(card model.Card, now time.Time) *CardWidget {
	c := &CardWidget{
		card:       card,
		background: canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground)),
		title:      widget.NewLabel(card.GetDisplayTitle()),
		meta:       widget.NewLabel(""),
	}
	c.background.CornerRadius = theme.InputRadiusSize()
	c.title.TextStyle = fyne.TextStyle{Bold: true}
	c.title.Wrapping = fyne.TextWrapWord
	c.meta.SizeName = theme.SizeNameCaptionText

	var meta []string
	if card.DueDate != nil {
		meta = append(meta, IconDue+" "+card.GetDueString())
		if card.IsOverdue(now) {
			c.meta.Importance = widget.DangerImportance
		}
	}
	if card.CommentsUnread > 0 {
		meta = append(meta, IconComments)
	}
	for _, label := range card.Labels {
		meta = append(meta, label.Title)
	}
	if len(meta) > 0 {
		c.meta.SetText(strings.Join(meta, MiddleDotSeparator))
	} else {
		c.meta.Hide()
	}

	c.ExtendBaseWidget(c)
	return c
}

// Card returns the card shown
func (c *CardWidget) Card() model.Card {
	return c.card
}

// CreateRenderer implements fyne.Widget
func (c *CardWidget) CreateRenderer() fyne.WidgetRenderer {
	text := container.NewVBox(c.title, c.meta)
	return widget.NewSimpleRenderer(container.NewStack(c.background, container.NewPadded(text)))
}

// MinSize keeps cards comfortable to grab
func (c *CardWidget) MinSize() fyne.Size {
	return c.BaseWidget.MinSize().Max(fyne.NewSize(0, CardMinHeight))
}

// Tapped implements fyne.Tappable
func (c *CardWidget) Tapped(*fyne.PointEvent) {
	if c.OnTapped != nil {
		c.OnTapped(c.card)
	}
}

// Dragged implements fyne.Draggable
func (c *CardWidget) Dragged(e *fyne.DragEvent) {
	if !c.dragging {
		c.dragging = true
		c.origin = c.Position()
		c.dragDelta = fyne.Delta{}
		c.background.FillColor = theme.Color(theme.ColorNameHover)
		c.background.Refresh()
	}
	c.dragDelta = fyne.NewDelta(c.dragDelta.DX+e.Dragged.DX, c.dragDelta.DY+e.Dragged.DY)
	c.dragPos = e.AbsolutePosition

	c.Move(c.origin.Add(c.dragDelta))
	if c.OnDragged != nil {
		c.OnDragged(c.card, c.dragPos)
	}
}

// DragEnd implements fyne.Draggable
func (c *CardWidget) DragEnd() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.Move(c.origin)
	c.background.FillColor = theme.Color(theme.ColorNameInputBackground)
	c.background.Refresh()

	if IsTap(c.dragDelta) {
		if c.OnTapped != nil {
			c.OnTapped(c.card)
		}
		return
	}
	if c.OnDropped != nil {
		c.OnDropped(c.card, c.dragPos)
	}
}

// IsDragging reports whether a drag is in progress
func (c *CardWidget) IsDragging() bool {
	return c.dragging
}
