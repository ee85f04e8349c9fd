package ui

import (
	"fmt"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/deck-mobile/internal/config"
	"github.com/ytget/deck-mobile/internal/platform"
)

// timeoutChoices are the request timeouts offered in the settings dialog
var timeoutChoices = []time.Duration{
	5 * time.Second,
	10 * time.Second,
	15 * time.Second,
	30 * time.Second,
	60 * time.Second,
	120 * time.Second,
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	loc      *Localization
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func(languageChanged bool)

	languageSelect *widget.Select
	timeoutSelect  *widget.Select

	languageCodes map[string]string // display name -> code
	timeouts      map[string]time.Duration
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, loc *Localization, onSaved func(languageChanged bool)) *SettingsDialog {
	sd := NewSettingsDialog(settings, loc, window, onSaved)
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, loc *Localization, window fyne.Window, onSaved func(languageChanged bool)) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		loc:      loc,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Language selection, system default first
	sd.languageCodes = map[string]string{
		sd.loc.GetText(KeySystemLanguage): platform.LanguageSystem,
	}
	languageOptions := []string{sd.loc.GetText(KeySystemLanguage)}
	named := []string{}
	for code, name := range sd.loc.GetAvailableLanguages() {
		sd.languageCodes[name] = code
		named = append(named, name)
	}
	sort.Strings(named)
	languageOptions = append(languageOptions, named...)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.timeouts = make(map[string]time.Duration, len(timeoutChoices))
	timeoutOptions := make([]string, 0, len(timeoutChoices))
	for _, choice := range timeoutChoices {
		label := sd.timeoutLabel(choice)
		sd.timeouts[label] = choice
		timeoutOptions = append(timeoutOptions, label)
	}
	sd.timeoutSelect = widget.NewSelect(timeoutOptions, nil)

	form := widget.NewForm(
		widget.NewFormItem(sd.loc.GetText(KeyLanguage), sd.languageSelect),
		widget.NewFormItem(sd.loc.GetText(KeyRequestTimeout), sd.timeoutSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.loc.GetText(KeySettings),
		sd.loc.GetText(KeySave),
		sd.loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
}

func (sd *SettingsDialog) timeoutLabel(d time.Duration) string {
	return fmt.Sprintf(sd.loc.GetText(KeyTimeoutSecondsFmt), int(d/time.Second))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
			break
		}
	}

	timeout := sd.timeoutLabel(sd.settings.GetRequestTimeout())
	if _, ok := sd.timeouts[timeout]; ok {
		sd.timeoutSelect.SetSelected(timeout)
	} else {
		sd.timeoutSelect.ClearSelected()
	}
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	languageChanged := false
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok && code != sd.settings.GetLanguage() {
		sd.settings.SetLanguage(code)
		sd.loc.SetLanguage(code)
		languageChanged = true
	}

	if timeout, ok := sd.timeouts[sd.timeoutSelect.Selected]; ok {
		sd.settings.SetRequestTimeout(timeout)
	}

	if sd.onSaved != nil {
		sd.onSaved(languageChanged)
	}
}
