package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettingsDialog_LoadsCurrentValues(t *testing.T) {
	s, _ := newTestShared(t)
	s.settings.SetRequestTimeout(15 * time.Second)

	sd := NewSettingsDialog(s.settings, s.loc, s.window, nil)
	sd.Show()

	assert.Equal(t, "System default", sd.languageSelect.Selected)
	assert.Equal(t, "15 seconds", sd.timeoutSelect.Selected)
	assert.Len(t, sd.timeoutSelect.Options, len(timeoutChoices))
}

func TestSettingsDialog_UnlistedTimeoutIsNotSelected(t *testing.T) {
	s, _ := newTestShared(t)
	s.settings.SetRequestTimeout(45 * time.Second)

	sd := NewSettingsDialog(s.settings, s.loc, s.window, nil)
	sd.Show()

	assert.Empty(t, sd.timeoutSelect.Selected)
}

func TestSettingsDialog_Save(t *testing.T) {
	s, _ := newTestShared(t)

	var saved []bool
	sd := NewSettingsDialog(s.settings, s.loc, s.window, func(languageChanged bool) {
		saved = append(saved, languageChanged)
	})
	sd.Show()

	sd.languageSelect.SetSelected("Deutsch")
	sd.timeoutSelect.SetSelected("60 seconds")
	sd.onSave(true)

	assert.Equal(t, []bool{true}, saved)
	assert.Equal(t, "de", s.settings.GetLanguage())
	assert.Equal(t, "de", s.loc.GetCurrentLanguage())
	assert.Equal(t, 60*time.Second, s.settings.GetRequestTimeout())

	// Saving again without changing the language
	sd.timeoutSelect.SetSelected("5 seconds")
	sd.onSave(true)
	assert.Equal(t, []bool{true, false}, saved)
	assert.Equal(t, 5*time.Second, s.settings.GetRequestTimeout())
}

func TestSettingsDialog_Cancel(t *testing.T) {
	s, _ := newTestShared(t)

	called := false
	sd := NewSettingsDialog(s.settings, s.loc, s.window, func(bool) { called = true })
	sd.Show()

	sd.languageSelect.SetSelected("Français")
	sd.onSave(false)

	assert.False(t, called)
	assert.Equal(t, "system", s.settings.GetLanguage())
}
