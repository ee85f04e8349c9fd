package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/deck-mobile/internal/board"
	"github.com/ytget/deck-mobile/internal/config"
	"github.com/ytget/deck-mobile/internal/deck"
	"github.com/ytget/deck-mobile/internal/logger"
	"github.com/ytget/deck-mobile/internal/store"
	"github.com/ytget/deck-mobile/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.deck-mobile"
	AppName = "Deck"

	WindowWidth  = 420
	WindowHeight = 780
)

func main() {
	boot, err := config.LoadBootstrap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&boot.Log)
	defer func() { _ = log.Sync() }()
	log.Info("starting", zap.String("app", AppName), zap.String("version", version))

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	st := store.New()
	restoreSession(st, settings, boot, log)

	client := deck.NewClient(
		func() deck.Credentials {
			session := st.Session()
			return deck.Credentials{Server: session.Server, Token: session.Token}
		},
		deck.WithTimeoutSource(settings.GetRequestTimeout),
		deck.WithLogger(log.Named("deck")),
	)

	boards := board.NewService(client, client, st, settings,
		board.WithLogger(log),
		board.WithPrefetchConcurrency(boot.PrefetchConcurrency),
	)

	// Create and setup UI
	root := ui.NewRootUI(myWindow, myApp, st, boards, settings, ui.Options{Logger: log})
	myWindow.SetOnClosed(root.Close)

	// Show and run
	myWindow.ShowAndRun()
}

// restoreSession signs in with the saved session, or with a token from the
// bootstrap configuration on first start
func restoreSession(st *store.Store, settings *config.Settings, boot *config.Bootstrap, log *zap.Logger) {
	if server, token := settings.GetServer(), settings.GetToken(); server != "" && token != "" {
		st.SetSession(server, token)
		return
	}

	if boot.Server == "" || boot.Token == "" {
		return
	}
	server, err := deck.NormalizeServerURL(boot.Server)
	if err != nil {
		log.Warn("ignoring configured server", zap.String("server", boot.Server), zap.Error(err))
		return
	}
	settings.SaveSession(server, boot.Token)
	st.SetSession(server, boot.Token)
}
