package ui

import (
	"context"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/deck-mobile/internal/platform"
)

// AppMenu is the header menu of the board list: settings, language and logout
type AppMenu struct {
	*shared
	button *widget.Button
}

// NewAppMenu creates the app menu
func NewAppMenu(s *shared) *AppMenu {
	m := &AppMenu{shared: s}
	m.button = widget.NewButton(IconMenu, m.show)
	m.button.Importance = widget.LowImportance
	return m
}

// Button returns the header button opening the menu
func (m *AppMenu) Button() *widget.Button {
	return m.button
}

// Menu builds the menu items for the current language
func (m *AppMenu) Menu() *fyne.Menu {
	settingsItem := fyne.NewMenuItem(IconSettings+" "+m.loc.GetText(KeySettings), m.showSettings)

	languageItem := fyne.NewMenuItem(IconLanguage+" "+m.loc.GetText(KeyLanguage), nil)
	languageItem.ChildMenu = m.languageMenu()

	logoutItem := fyne.NewMenuItem(m.loc.GetText(KeyLogout), m.confirmLogout)

	return fyne.NewMenu("", settingsItem, languageItem, fyne.NewMenuItemSeparator(), logoutItem)
}

func (m *AppMenu) languageMenu() *fyne.Menu {
	current := m.settings.GetLanguage()

	systemItem := fyne.NewMenuItem(m.loc.GetText(KeySystemLanguage), func() {
		m.setLanguage(platform.LanguageSystem)
	})
	systemItem.Checked = current == platform.LanguageSystem
	items := []*fyne.MenuItem{systemItem}

	available := m.loc.GetAvailableLanguages()
	codes := make([]string, 0, len(available))
	for code := range available {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		langCode := code // Capture for closure
		item := fyne.NewMenuItem(available[code], func() {
			m.setLanguage(langCode)
		})
		item.Checked = current == code
		items = append(items, item)
	}
	return fyne.NewMenu(m.loc.GetText(KeyLanguage), items...)
}

func (m *AppMenu) show() {
	canvas := m.window.Canvas()
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(m.button)
	pos = pos.Add(fyne.NewPos(0, m.button.Size().Height))
	widget.ShowPopUpMenuAtPosition(m.Menu(), canvas, pos)
}

func (m *AppMenu) setLanguage(code string) {
	if code == m.settings.GetLanguage() {
		return
	}
	m.settings.SetLanguage(code)
	m.loc.SetLanguage(code)
	if m.changeLanguage != nil {
		m.changeLanguage()
	}
}

func (m *AppMenu) showSettings() {
	ShowSettingsDialog(m.window, m.settings, m.loc, func(languageChanged bool) {
		if languageChanged && m.changeLanguage != nil {
			m.changeLanguage()
		}
		m.showInfo(m.loc.GetText(KeySettingsSaved))
	})
}

func (m *AppMenu) confirmLogout() {
	dialog.ShowConfirm(m.loc.GetText(KeyLogout), m.loc.GetText(KeyLogoutConfirm), func(confirmed bool) {
		if confirmed {
			m.Logout()
		}
	}, m.window)
}

// Logout revokes the session. The screen switch follows the store session change.
func (m *AppMenu) Logout() {
	runAsync(m.shared, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, m.boards.Logout(ctx)
	}, func(_ struct{}, err error) {
		if err != nil {
			// The local session is gone either way
			m.logger.Warn("logout completed with remote error", zap.Error(err))
		}
	})
}
