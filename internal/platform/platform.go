package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
	OSIOS     = "ios"
)

// IsAndroid reports whether the app runs on Android
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so
}

// IsMobileOS reports whether the app runs on a phone or tablet OS
func IsMobileOS() bool {
	return IsAndroid() || runtime.GOOS == OSIOS
}
