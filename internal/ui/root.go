package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/ytget/deck-mobile/internal/board"
	"github.com/ytget/deck-mobile/internal/config"
	"github.com/ytget/deck-mobile/internal/logger"
	"github.com/ytget/deck-mobile/internal/store"
)

// Options tune how the UI runs work. Zero values are fine for the app.
type Options struct {
	Logger *zap.Logger

	// Async runs blocking work; defaults to a new goroutine
	Async func(func())
	// OnMain applies results on the UI goroutine; defaults to fyne.Do
	OnMain func(func())
}

// RootUI represents the main UI structure. It shows the sign-in screen
// without a session and the board list with one, switching whenever the
// session in the store changes.
type RootUI struct {
	*shared

	app           fyne.App
	authenticated bool
	unsubscribe   func()
	cancel        context.CancelFunc
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, st *store.Store, boards board.Manager, settings *config.Settings, opts Options) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())

	s := &shared{
		ctx:      ctx,
		window:   window,
		nav:      NewNavigator(),
		loc:      localization,
		store:    st,
		boards:   boards,
		settings: settings,
		mobile:   NewMobileUI(app),
		logger:   logger.OrNop(opts.Logger).Named("ui"),
		async:    opts.Async,
		onMain:   opts.OnMain,
	}
	if s.async == nil {
		s.async = func(f func()) { go f() }
	}
	if s.onMain == nil {
		s.onMain = fyne.Do
	}

	ui := &RootUI{
		shared: s,
		app:    app,
		cancel: cancel,
	}
	s.changeLanguage = ui.rebuild

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetContent(s.nav.Container())

	ui.authenticated = st.Session().IsAuthenticated()
	ui.showInitialScreen()

	ui.unsubscribe = st.Subscribe(func(event store.Event) {
		if event == store.EventSession {
			s.onMain(ui.syncSession)
		}
	})

	ui.logger.Info("ui started", zap.Bool("authenticated", ui.authenticated), zap.String("language", localization.GetCurrentLanguage()))
	return ui
}

// Navigator returns the screen stack
func (ui *RootUI) Navigator() *Navigator {
	return ui.nav
}

// Close stops observing the store and cancels running requests
func (ui *RootUI) Close() {
	if ui.unsubscribe != nil {
		ui.unsubscribe()
		ui.unsubscribe = nil
	}
	ui.cancel()
}

func (ui *RootUI) showInitialScreen() {
	if ui.authenticated {
		ui.nav.Reset(NewAllBoardsScreen(ui.shared))
		return
	}
	ui.nav.Reset(NewLoginScreen(ui.shared))
}

// syncSession switches between sign-in and boards when the session changes
func (ui *RootUI) syncSession() {
	authenticated := ui.store.Session().IsAuthenticated()
	if authenticated == ui.authenticated {
		return
	}
	ui.authenticated = authenticated
	ui.logger.Debug("session changed", zap.Bool("authenticated", authenticated))
	ui.showInitialScreen()
}

// rebuild recreates the screens after the language changed, keeping the open board
func (ui *RootUI) rebuild() {
	ui.window.SetTitle(ui.loc.GetText(KeyAppTitle))

	if !ui.authenticated {
		ui.nav.Reset(NewLoginScreen(ui.shared))
		return
	}

	boardID, stackID := ui.settings.GetLastViewed()
	boards := NewAllBoardsScreen(ui.shared)
	boards.loadedOnce = true
	ui.nav.Reset(boards)
	if boardID != 0 {
		if _, ok := ui.store.Board(boardID); ok {
			ui.nav.Push(NewBoardDetailsScreen(ui.shared, boardID, stackID))
		}
	}
}
