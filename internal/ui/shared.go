package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/ytget/deck-mobile/internal/board"
	"github.com/ytget/deck-mobile/internal/config"
	"github.com/ytget/deck-mobile/internal/store"
)

// shared holds what every screen needs
type shared struct {
	ctx      context.Context
	window   fyne.Window
	nav      *Navigator
	loc      *Localization
	store    *store.Store
	boards   board.Manager
	settings *config.Settings
	mobile   *MobileUI
	logger   *zap.Logger

	// async runs blocking work off the UI goroutine, onMain applies its result
	async  func(func())
	onMain func(func())

	// changeLanguage rebuilds the screens after the language setting changed
	changeLanguage func()
}

// runAsync calls work in the background and done with its result on the UI goroutine
func runAsync[T any](s *shared, work func(context.Context) (T, error), done func(T, error)) {
	s.async(func() {
		result, err := work(s.ctx)
		s.onMain(func() { done(result, err) })
	})
}

// observe subscribes to store changes and applies them on the UI goroutine
func (s *shared) observe(refresh func()) func() {
	return s.store.Subscribe(func(store.Event) {
		s.onMain(refresh)
	})
}

// showError reports a failed operation to the user
func (s *shared) showError(err error) {
	if err == nil {
		return
	}
	ShowToast(s.window, ToastError, s.loc.ErrorText(err))
}

// showInfo shows a neutral toast
func (s *shared) showInfo(message string) {
	ShowToast(s.window, ToastInfo, message)
}
