package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Screen is one page of the navigation stack
type Screen interface {
	Title() string
	Content() fyne.CanvasObject
}

// screenActions is implemented by screens with buttons on the right of the header
type screenActions interface {
	Actions() []fyne.CanvasObject
}

// screenLifecycle is implemented by screens that observe state while visible
type screenLifecycle interface {
	Shown()
	Hidden()
}

// screenCloser is implemented by screens reacting to being removed from the stack
type screenCloser interface {
	Closed()
}

// Navigator shows a stack of screens under a header with a back button
type Navigator struct {
	stack []Screen

	root    *fyne.Container
	body    *fyne.Container
	back    *widget.Button
	title   *widget.Label
	actions *fyne.Container
}

// NewNavigator creates an empty navigator
func NewNavigator() *Navigator {
	n := &Navigator{
		body:    container.NewStack(),
		title:   widget.NewLabel(""),
		actions: container.NewHBox(),
	}
	n.title.TextStyle = fyne.TextStyle{Bold: true}
	n.title.Truncation = fyne.TextTruncateEllipsis
	n.back = widget.NewButton(IconBack, func() { n.Pop() })
	n.back.Importance = widget.LowImportance
	n.back.Hide()

	header := container.NewBorder(nil, nil, n.back, n.actions, n.title)
	n.root = container.NewBorder(container.NewVBox(header, widget.NewSeparator()), nil, nil, nil, n.body)
	return n
}

// Container returns the canvas object to place in the window
func (n *Navigator) Container() fyne.CanvasObject {
	return n.root
}

// Push shows a screen on top of the current one
func (n *Navigator) Push(screen Screen) {
	if current := n.Current(); current != nil {
		hide(current)
	}
	n.stack = append(n.stack, screen)
	n.show(screen)
}

// Pop returns to the previous screen. The last screen is never popped.
func (n *Navigator) Pop() bool {
	if len(n.stack) < 2 {
		return false
	}
	top := n.stack[len(n.stack)-1]
	n.stack = n.stack[:len(n.stack)-1]
	hide(top)
	closeScreen(top)
	n.show(n.stack[len(n.stack)-1])
	return true
}

// Reset replaces the whole stack with a single screen
func (n *Navigator) Reset(screen Screen) {
	// Screens below the top were hidden when covered
	if current := n.Current(); current != nil {
		hide(current)
	}
	for i := len(n.stack) - 1; i >= 0; i-- {
		closeScreen(n.stack[i])
	}
	n.stack = []Screen{screen}
	n.show(screen)
}

// Current returns the visible screen, or nil
func (n *Navigator) Current() Screen {
	if len(n.stack) == 0 {
		return nil
	}
	return n.stack[len(n.stack)-1]
}

// Depth returns the number of screens on the stack
func (n *Navigator) Depth() int {
	return len(n.stack)
}

// RefreshHeader re-reads the title and actions of the current screen
func (n *Navigator) RefreshHeader() {
	screen := n.Current()
	if screen == nil {
		return
	}

	n.title.SetText(screen.Title())
	if len(n.stack) > 1 {
		n.back.Show()
	} else {
		n.back.Hide()
	}

	n.actions.Objects = nil
	if withActions, ok := screen.(screenActions); ok {
		n.actions.Objects = withActions.Actions()
	}
	n.actions.Refresh()
}

func (n *Navigator) show(screen Screen) {
	n.body.Objects = []fyne.CanvasObject{screen.Content()}
	n.body.Refresh()
	n.RefreshHeader()

	if lc, ok := screen.(screenLifecycle); ok {
		lc.Shown()
	}
}

func hide(screen Screen) {
	if lc, ok := screen.(screenLifecycle); ok {
		lc.Hidden()
	}
}

func closeScreen(screen Screen) {
	if c, ok := screen.(screenCloser); ok {
		c.Closed()
	}
}
