package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ToastKind selects the toast icon
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastError
)

// ShowToast shows a short message at the bottom of the window that hides
// itself after ToastAutoHide or when closed
func ShowToast(window fyne.Window, kind ToastKind, message string) *widget.PopUp {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord

	var toast *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		toast.Hide()
	})
	closeBtn.Importance = widget.LowImportance

	var leading fyne.CanvasObject
	if kind == ToastError {
		leading = widget.NewLabel(IconError)
	}
	content := container.NewBorder(nil, nil, leading, closeBtn, label)

	canvas := window.Canvas()
	toast = widget.NewPopUp(content, canvas)

	canvasSize := canvas.Size()
	width := ToastWidth
	if canvasSize.Width > 0 && canvasSize.Width-2*ToastMargin < width {
		width = canvasSize.Width - 2*ToastMargin
	}
	size := fyne.NewSize(width, ToastHeight)
	toast.Resize(size)
	toast.ShowAtPosition(fyne.NewPos(
		(canvasSize.Width-size.Width)/2,
		canvasSize.Height-size.Height-ToastMargin,
	))

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toast.Hide)
	})
	return toast
}
