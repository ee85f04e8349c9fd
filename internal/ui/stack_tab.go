package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/deck-mobile/internal/model"
)

// StackTab is a tappable stack header that also accepts dropped cards
type StackTab struct {
	widget.BaseWidget

	StackID int

	selected bool
	hovered  bool
	onTapped func(stackID int)

	background *canvas.Rectangle
	underline  *canvas.Rectangle
	label      *widget.Label
}

// NewStackTab creates a tab for a stack
func NewStackTab(stack model.Stack, onTapped func(stackID int)) *StackTab {
	t := &StackTab{
		StackID:    stack.ID,
		onTapped:   onTapped,
		background: canvas.NewRectangle(theme.Color(theme.ColorNameBackground)),
		underline:  canvas.NewRectangle(theme.Color(theme.ColorNamePrimary)),
		label:      widget.NewLabel(fmt.Sprintf("%s (%d)", stack.Title, len(stack.Cards))),
	}
	t.label.Alignment = fyne.TextAlignCenter
	t.underline.SetMinSize(fyne.NewSize(StackTabMinW, 3))
	t.ExtendBaseWidget(t)
	t.applyState()
	return t
}

// CreateRenderer implements fyne.Widget
func (t *StackTab) CreateRenderer() fyne.WidgetRenderer {
	body := container.NewBorder(nil, t.underline, nil, nil, t.label)
	return widget.NewSimpleRenderer(container.NewStack(t.background, body))
}

// MinSize keeps tabs wide enough to hit while dragging
func (t *StackTab) MinSize() fyne.Size {
	return t.BaseWidget.MinSize().Max(fyne.NewSize(StackTabMinW, MinTouchTargetSize))
}

// Tapped selects the stack
func (t *StackTab) Tapped(*fyne.PointEvent) {
	if t.onTapped != nil {
		t.onTapped(t.StackID)
	}
}

// SetSelected marks the tab as the visible stack
func (t *StackTab) SetSelected(selected bool) {
	if t.selected == selected {
		return
	}
	t.selected = selected
	t.applyState()
	t.Refresh()
}

// SetHovered highlights the tab while a card is dragged over it
func (t *StackTab) SetHovered(hovered bool) {
	if t.hovered == hovered {
		return
	}
	t.hovered = hovered
	t.applyState()
	t.Refresh()
}

// IsSelected reports whether the tab is the visible stack
func (t *StackTab) IsSelected() bool {
	return t.selected
}

// IsHovered reports whether a card is dragged over the tab
func (t *StackTab) IsHovered() bool {
	return t.hovered
}

// Contains reports whether the absolute position pos lies on the tab,
// given the tab's absolute origin
func (t *StackTab) Contains(origin, pos fyne.Position) bool {
	size := t.Size()
	return pos.X >= origin.X && pos.X <= origin.X+size.Width &&
		pos.Y >= origin.Y && pos.Y <= origin.Y+size.Height
}

func (t *StackTab) applyState() {
	switch {
	case t.hovered:
		t.background.FillColor = theme.Color(theme.ColorNameHover)
	case t.selected:
		t.background.FillColor = theme.Color(theme.ColorNameSelection)
	default:
		t.background.FillColor = theme.Color(theme.ColorNameBackground)
	}
	t.label.TextStyle = fyne.TextStyle{Bold: t.selected}

	if t.selected {
		t.underline.Show()
	} else {
		t.underline.Hide()
	}
}
