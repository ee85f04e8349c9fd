package platform

// Package platform contains OS-specific helpers: device detection and the
// system language used when the user keeps the "system" language setting.
