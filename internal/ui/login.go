package ui

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LoginScreen asks for the server and the account to sign in with
type LoginScreen struct {
	*shared

	serverEntry   *widget.Entry
	userEntry     *widget.Entry
	passwordEntry *widget.Entry
	loginBtn      *widget.Button
	activity      *widget.Activity
	content       fyne.CanvasObject
}

// NewLoginScreen creates the sign-in screen, prefilled from the last session
func NewLoginScreen(s *shared) *LoginScreen {
	sc := &LoginScreen{shared: s}

	sc.serverEntry = sc.mobile.CreateMobileEntry("https://cloud.example.com")
	sc.serverEntry.SetText(sc.settings.GetServer())
	sc.userEntry = sc.mobile.CreateMobileEntry(sc.loc.GetText(KeyUser))
	sc.userEntry.SetText(sc.settings.GetLastUser())
	sc.passwordEntry = widget.NewPasswordEntry()
	sc.passwordEntry.SetPlaceHolder(sc.loc.GetText(KeyPassword))
	sc.passwordEntry.OnSubmitted = func(string) { sc.Submit() }

	sc.loginBtn = widget.NewButton(sc.loc.GetText(KeyLogin), sc.Submit)
	sc.loginBtn.Importance = widget.HighImportance
	sc.activity = widget.NewActivity()
	sc.activity.Hide()

	form := widget.NewForm(
		widget.NewFormItem(sc.loc.GetText(KeyServer), sc.serverEntry),
		widget.NewFormItem(sc.loc.GetText(KeyUser), sc.userEntry),
		widget.NewFormItem(sc.loc.GetText(KeyPassword), sc.passwordEntry),
	)

	items := []fyne.CanvasObject{}
	if logo, err := LoadLogoResource(); err == nil {
		image := canvas.NewImageFromResource(logo)
		image.SetMinSize(fyne.NewSize(64, 64))
		image.FillMode = canvas.ImageFillContain
		items = append(items, image)
	}
	items = append(items, form, sc.loginBtn, sc.activity)

	sc.content = sc.mobile.Padded(container.NewVBox(items...))
	return sc
}

// Title implements Screen
func (sc *LoginScreen) Title() string {
	return sc.loc.GetText(KeyAppTitle)
}

// Content implements Screen
func (sc *LoginScreen) Content() fyne.CanvasObject {
	return sc.content
}

// Submit signs in. The screen switch follows the store session change.
func (sc *LoginScreen) Submit() {
	server := sc.serverEntry.Text
	user := strings.TrimSpace(sc.userEntry.Text)
	password := sc.passwordEntry.Text

	sc.setBusy(true)
	runAsync(sc.shared, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, sc.boards.Login(ctx, server, user, password)
	}, func(_ struct{}, err error) {
		sc.setBusy(false)
		if err != nil {
			sc.showError(err)
			return
		}
		sc.settings.SetLastUser(user)
		sc.passwordEntry.SetText("")
	})
}

func (sc *LoginScreen) setBusy(busy bool) {
	if busy {
		sc.loginBtn.Disable()
		sc.activity.Show()
		sc.activity.Start()
		return
	}
	sc.loginBtn.Enable()
	sc.activity.Stop()
	sc.activity.Hide()
}
