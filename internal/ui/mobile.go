package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/deck-mobile/internal/platform"
)

// MobileUI provides mobile-specific UI enhancements
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile() || platform.IsMobileOS()
}

// CreateMobileEntry creates an entry field optimized for mobile
func (m *MobileUI) CreateMobileEntry(placeholder string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	return entry
}

// GetMobilePadding returns appropriate padding for mobile devices
func (m *MobileUI) GetMobilePadding() float32 {
	if !m.IsMobileDevice() {
		return 10
	}
	if m.IsLandscape() {
		return 12 // Keep vertical room for the card list
	}
	return 20 // Larger padding for mobile
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	orientation := fyne.CurrentDevice().Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// Padded surrounds content with the mobile padding
func (m *MobileUI) Padded(content fyne.CanvasObject) fyne.CanvasObject {
	return container.New(&paddingLayout{pad: m.GetMobilePadding()}, content)
}

// paddingLayout insets its single child by pad on every side
type paddingLayout struct {
	pad float32
}

func (p *paddingLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Move(fyne.NewPos(p.pad, p.pad))
		o.Resize(fyne.NewSize(size.Width-2*p.pad, size.Height-2*p.pad))
	}
}

func (p *paddingLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	minSize := fyne.NewSize(0, 0)
	for _, o := range objects {
		minSize = minSize.Max(o.MinSize())
	}
	return minSize.Add(fyne.NewSize(2*p.pad, 2*p.pad))
}
