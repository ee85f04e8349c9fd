package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/deck-mobile/internal/model"
)

func TestCardWidget_Tap(t *testing.T) {
	test.NewTempApp(t)

	var tapped []int
	cw := NewCardWidget(model.Card{ID: 7, Title: "Tap me"}, time.Now())
	cw.OnTapped = func(card model.Card) { tapped = append(tapped, card.ID) }
	w := test.NewWindow(cw)
	defer w.Close()

	test.Tap(cw)
	assert.Equal(t, []int{7}, tapped)
}

func TestCardWidget_DragReturnsToOrigin(t *testing.T) {
	test.NewTempApp(t)

	var dragged []fyne.Position
	var dropped fyne.Position
	cw := NewCardWidget(model.Card{ID: 7, Title: "Drag me"}, time.Now())
	cw.OnDragged = func(_ model.Card, pos fyne.Position) { dragged = append(dragged, pos) }
	cw.OnDropped = func(_ model.Card, pos fyne.Position) { dropped = pos }
	cw.Move(fyne.NewPos(10, 20))

	cw.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{AbsolutePosition: fyne.NewPos(30, 40)}, Dragged: fyne.NewDelta(20, 20)})
	assert.True(t, cw.IsDragging())
	assert.Equal(t, fyne.NewPos(30, 40), cw.Position())

	cw.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{AbsolutePosition: fyne.NewPos(60, 40)}, Dragged: fyne.NewDelta(30, 0)})
	assert.Equal(t, fyne.NewPos(60, 40), cw.Position())

	cw.DragEnd()
	assert.False(t, cw.IsDragging())
	assert.Equal(t, fyne.NewPos(10, 20), cw.Position())
	assert.Len(t, dragged, 2)
	assert.Equal(t, fyne.NewPos(60, 40), dropped)

	// A second DragEnd without a drag is ignored
	dropped = fyne.Position{}
	cw.DragEnd()
	assert.Equal(t, fyne.Position{}, dropped)
}

func TestCardWidget_Meta(t *testing.T) {
	test.NewTempApp(t)

	due := time.Date(2025, 3, 1, 8, 0, 0, 0, time.Local)
	card := model.Card{
		ID:             7,
		Title:          "With meta",
		DueDate:        &due,
		CommentsUnread: 2,
		Labels:         []model.Label{{Title: "bug"}},
	}

	cw := NewCardWidget(card, due.Add(-time.Hour))
	assert.Equal(t, IconDue+" 2025-03-01 08:00"+MiddleDotSeparator+IconComments+MiddleDotSeparator+"bug", cw.meta.Text)
	assert.Equal(t, widget.MediumImportance, cw.meta.Importance)

	overdue := NewCardWidget(card, due.Add(time.Hour))
	assert.Equal(t, widget.DangerImportance, overdue.meta.Importance)
}

func TestStackTab(t *testing.T) {
	test.NewTempApp(t)

	var selected int
	tab := NewStackTab(model.Stack{ID: 4, Title: "Doing", Cards: []model.Card{{ID: 1}}}, func(id int) { selected = id })
	assert.Equal(t, "Doing (1)", tab.label.Text)
	assert.False(t, tab.underline.Visible())

	tab.Tapped(&fyne.PointEvent{})
	assert.Equal(t, 4, selected)

	tab.SetSelected(true)
	assert.True(t, tab.IsSelected())
	assert.True(t, tab.underline.Visible())
	assert.True(t, tab.label.TextStyle.Bold)

	tab.Resize(fyne.NewSize(100, 40))
	origin := fyne.NewPos(200, 0)
	assert.True(t, tab.Contains(origin, fyne.NewPos(250, 20)))
	assert.False(t, tab.Contains(origin, fyne.NewPos(150, 20)))
	assert.False(t, tab.Contains(origin, fyne.NewPos(250, 60)))
}
