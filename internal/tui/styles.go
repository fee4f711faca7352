// Package tui provides the interactive Bubble Tea table for browsing,
// filtering, paging, and selecting records.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
//
//nolint:gochecknoglobals // Shared style constants.
var (
	ColorHeader    = lipgloss.Color("39")
	ColorLabel     = lipgloss.Color("245")
	ColorHighlight = lipgloss.Color("212")
	ColorMuted     = lipgloss.Color("240")
)

// ViewState is the current mode of a model.
type ViewState int

const (
	// ViewStateList shows the page of rows and accepts navigation keys.
	ViewStateList ViewState = iota
	// ViewStateSearch routes keystrokes to the search input.
	ViewStateSearch
	// ViewStateQuitting renders nothing while the program exits.
	ViewStateQuitting
)

// Key bindings.
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keySpace    = " "
	keyNext     = "n"
	keyRight    = "right"
	keyPrev     = "p"
	keyLeft     = "left"
	keyFirst    = "g"
	keyLast     = "G"
	keyUp       = "up"
	keyK        = "k"
	keyDown     = "down"
	keyJ        = "j"
	keyPage     = "a"
	keyMatching = "A"
	keyClear    = "c"
	keyReset    = "r"
)

// Layout defaults.
const (
	defaultWidth         = 120
	defaultHeight        = 30
	maxColWidth          = 24
	minColWidth          = 4
	rowPrefixWidth       = 6 // "> [ ] "
	colGap               = 2
	chromeLines          = 10 // title, header, summary, and help lines around the rows
	minVisibleRows       = 1
	filterInputCharLimit = 100
	filterInputWidth     = 40
)
