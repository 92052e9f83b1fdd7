// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarTitle        lipgloss.Style
	SessionItem         lipgloss.Style
	SessionItemSelected lipgloss.Style
	SessionPreview      lipgloss.Style
	SessionDate         lipgloss.Style
	SidebarEmpty        lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	MessageSender   lipgloss.Style
	MessageTime     lipgloss.Style
	MessagePending  lipgloss.Style

	// ==========================================================================
	// FORMATTED BLOCK STYLES
	// ==========================================================================

	BlockHeading    lipgloss.Style
	BlockSubheading lipgloss.Style
	BlockBullet     lipgloss.Style
	BlockKey        lipgloss.Style
	BlockValue      lipgloss.Style
	BlockImage      lipgloss.Style
	BlockItalic     lipgloss.Style
	Link            lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	AttachmentTag    lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormTitle    lipgloss.Style
	FormLabel    lipgloss.Style
	FormHint     lipgloss.Style
	FormFocused  lipgloss.Style
	FormBlurred  lipgloss.Style
	FormButton   lipgloss.Style
	FormButtonOn lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style
	Spinner       lipgloss.Style
	ErrorNotice   lipgloss.Style
	SuccessNotice lipgloss.Style
	InfoNotice    lipgloss.Style
	Suggestion    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Underline(true)

	t.SessionItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.SessionItemSelected = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.SessionPreview = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SessionDate = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.SidebarEmpty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Background(AssistantBubbleBg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.MessageSender = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)

	t.MessageTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.MessagePending = lipgloss.NewStyle().
		Foreground(Amber).
		Italic(true)

	// Formatted blocks
	t.BlockHeading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.BlockSubheading = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.BlockBullet = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.BlockKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.BlockValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)

	t.BlockImage = lipgloss.NewStyle().
		Foreground(Emerald).
		Italic(true)

	t.BlockItalic = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Link = lipgloss.NewStyle().
		Foreground(Cyan).
		Underline(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.AttachmentTag = lipgloss.NewStyle().
		Foreground(Emerald).
		Background(SurfaceDim).
		Padding(0, 1)

	// Forms
	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		MarginBottom(1)

	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FormFocused = lipgloss.NewStyle().
		Foreground(Cyan)

	t.FormBlurred = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FormButton = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 3)

	t.FormButtonOn = lipgloss.NewStyle().
		Foreground(Surface).
		Background(Purple).
		Bold(true).
		Padding(0, 3)

	// Status
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.ErrorNotice = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.SuccessNotice = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.InfoNotice = lipgloss.NewStyle().
		Foreground(Amber)

	t.Suggestion = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)
}
