package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
	IconError    = "❌"
	IconWarning  = "⚠"
	IconLanguage = "🌐"
	IconMenu     = "☰"
	IconRefresh  = "⟳"
	IconBack     = "‹"
	IconAdd      = "+"
	IconComments = "💬"
	IconDue      = "⏰"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	CardCountFormat    = "%d"
	UpdatedTimeFormat  = "15:04"
)

// Layout sizing
const (
	BoardSwatchSize float32 = 20
	CardMinHeight   float32 = 64
	StackTabMinW    float32 = 96

	// Touch target minimum size (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
)

// Drag and drop
const (
	// TapSlop bounds how far a card may travel on each axis and still count as a tap
	TapSlop float32 = 5
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 64
	ToastMargin   float32 = 20
	ToastAutoHide         = 4 * time.Second
)
