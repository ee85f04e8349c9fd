package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/deck-mobile/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyServer         = "server"
	KeyToken          = "token"
	KeyLanguage       = "app_language"
	KeyLastBoardID    = "last_board_id"
	KeyLastStackID    = "last_stack_id"
	KeyRequestTimeout = "request_timeout_seconds"
	KeyLastUser       = "last_user"
)

// Default values and limits
const (
	DefaultLanguage       = platform.LanguageSystem
	DefaultRequestTimeout = 30 * time.Second
	MinRequestTimeout     = 5 * time.Second
	MaxRequestTimeout     = 120 * time.Second
)

// Settings manages persistent application state on Fyne preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetServer returns the server of the saved session
func (s *Settings) GetServer() string {
	return s.app.Preferences().String(KeyServer)
}

// GetToken returns the token of the saved session
func (s *Settings) GetToken() string {
	return s.app.Preferences().String(KeyToken)
}

// SaveSession persists server and token
func (s *Settings) SaveSession(server, token string) {
	s.app.Preferences().SetString(KeyServer, server)
	s.app.Preferences().SetString(KeyToken, token)
}

// ClearSession forgets the saved session and the last viewed board
func (s *Settings) ClearSession() {
	prefs := s.app.Preferences()
	prefs.RemoveValue(KeyToken)
	prefs.RemoveValue(KeyLastBoardID)
	prefs.RemoveValue(KeyLastStackID)
	// The server address is kept to prefill the login form
}

// GetLastUser returns the user name last used to sign in
func (s *Settings) GetLastUser() string {
	return s.app.Preferences().String(KeyLastUser)
}

// SetLastUser remembers the user name used to sign in
func (s *Settings) SetLastUser(user string) {
	s.app.Preferences().SetString(KeyLastUser, user)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		platform.LanguageSystem: "System Default",
		"en":                    "English",
		"fr":                    "Français",
		"de":                    "Deutsch",
	}
}

// GetLastViewed returns the board and stack shown when the app was last used.
// Zero IDs mean nothing is recorded.
func (s *Settings) GetLastViewed() (boardID, stackID int) {
	prefs := s.app.Preferences()
	return prefs.Int(KeyLastBoardID), prefs.Int(KeyLastStackID)
}

// SetLastViewed records the board and stack currently shown
func (s *Settings) SetLastViewed(boardID, stackID int) {
	prefs := s.app.Preferences()
	prefs.SetInt(KeyLastBoardID, boardID)
	prefs.SetInt(KeyLastStackID, stackID)
}

// ClearLastViewed forgets the last viewed board
func (s *Settings) ClearLastViewed() {
	prefs := s.app.Preferences()
	prefs.RemoveValue(KeyLastBoardID)
	prefs.RemoveValue(KeyLastStackID)
}

// GetRequestTimeout returns the HTTP request timeout
func (s *Settings) GetRequestTimeout() time.Duration {
	seconds := s.app.Preferences().Int(KeyRequestTimeout)
	if seconds <= 0 {
		return DefaultRequestTimeout
	}
	return time.Duration(seconds) * time.Second
}

// SetRequestTimeout sets the HTTP request timeout, clamped to the allowed range
func (s *Settings) SetRequestTimeout(timeout time.Duration) {
	if timeout < MinRequestTimeout {
		timeout = MinRequestTimeout
	}
	if timeout > MaxRequestTimeout {
		timeout = MaxRequestTimeout
	}
	s.app.Preferences().SetInt(KeyRequestTimeout, int(timeout/time.Second))
}
