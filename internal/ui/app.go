// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the application root model: a thin switcher
// between the account flow views and the conversation view.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sophiachat/sophia-tui/internal/auth"
	chatsvc "github.com/sophiachat/sophia-tui/internal/chat"
	"github.com/sophiachat/sophia-tui/internal/format"
	authui "github.com/sophiachat/sophia-tui/internal/ui/auth"
	chatui "github.com/sophiachat/sophia-tui/internal/ui/chat"
	"github.com/sophiachat/sophia-tui/internal/ui/styles"
)

// view identifies which child model owns the screen.
type view int

const (
	viewAuth view = iota
	viewChat
)

// App is the root Bubble Tea model.
type App struct {
	view   view
	auth   *authui.Model
	chat   *chatui.Model
	store  *auth.Store
	logger *log.Logger

	width  int
	height int
}

// NewApp wires the child models together. The session store decides the
// initial view: an already-populated store skips straight to chat.
func NewApp(authSvc *auth.Service, chatSvc *chatsvc.Service, theme *styles.Theme, formatter *format.Formatter, logger *log.Logger) *App {
	store := authSvc.Store()
	app := &App{
		view:   viewAuth,
		auth:   authui.New(authSvc, theme, logger),
		chat:   chatui.New(chatSvc, store, theme, formatter, logger),
		store:  store,
		logger: logger,
	}
	if store.LoggedIn() {
		app.view = viewChat
	}
	return app
}

// SetShowTimestamps toggles per-message timestamps in the chat view.
func (a *App) SetShowTimestamps(show bool) {
	a.chat.SetShowTimestamps(show)
}

// SetSidebarWidth sets the preferred sidebar width in cells.
func (a *App) SetSidebarWidth(width int) {
	a.chat.SetSidebarWidth(width)
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	if a.view == viewChat {
		return a.chat.Init()
	}
	return a.auth.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Both children track the size so a view switch never renders
		// at a stale geometry.
		a.auth.Update(msg)
		a.chat.Update(msg)
		return a, nil

	case authui.AuthenticatedMsg:
		a.view = viewChat
		return a, a.chat.Init()

	case authui.CloseProfileMsg:
		a.view = viewChat
		return a, nil

	case chatui.UnauthorizedMsg:
		// The API client already cleared the store.
		a.view = viewAuth
		a.auth.ShowSessionExpired()
		return a, nil

	case chatui.LogoutRequestMsg:
		a.store.Logout()
		a.logger.Info("logged out")
		a.view = viewAuth
		return a, nil

	case chatui.ProfileRequestMsg:
		a.view = viewAuth
		a.auth.OpenProfile()
		return a, nil
	}

	if a.view == viewChat {
		_, cmd := a.chat.Update(msg)
		return a, cmd
	}
	_, cmd := a.auth.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if a.view == viewChat {
		return a.chat.View()
	}
	return a.auth.View()
}
