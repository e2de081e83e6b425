// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// KeywordList displays the keyword list in application order.
type KeywordList struct {
	keywords []domain.Keyword
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewKeywordList creates a new keyword list component.
func NewKeywordList(s *styles.Styles) *KeywordList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &KeywordList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the keyword list.
func (l *KeywordList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *KeywordList) Update(msg tea.Msg) (*KeywordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the keyword list.
func (l *KeywordList) View() string {
	if len(l.keywords) == 0 {
		return l.styles.Muted.Render("No keywords yet. Press a to add one.")
	}

	enabled := len(domain.EnabledKeywords(l.keywords))
	header := l.styles.Subtitle.Render(
		fmt.Sprintf("Keywords (%d, %d enabled)", len(l.keywords), enabled))
	lines := make([]string, 0, len(l.keywords)+2)
	lines = append(lines, header, "")

	// One line per keyword; keep the selection in view.
	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.keywords) {
		end = len(l.keywords)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderKeyword(i, &l.keywords[i]))
	}

	return strings.Join(lines, "\n")
}

// renderKeyword formats one keyword row.
func (l *KeywordList) renderKeyword(index int, kw *domain.Keyword) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}
	check := "[x]"
	if !kw.Enabled {
		check = "[ ]"
	}

	text := kw.Text
	maxLen := l.width - 30
	if maxLen < 10 {
		maxLen = 10
	}
	if len([]rune(text)) > maxLen {
		text = string([]rune(text)[:maxLen-3]) + "..."
	}

	swatch := l.styles.Swatch(kw.Color, " "+text+" ")
	if !kw.Enabled {
		swatch = l.styles.Disabled.Render(" " + text + " ")
	}
	color := l.styles.Muted.Render(fmt.Sprintf("%s %s", domain.ColorName(kw.Color), kw.Color))

	prefix := fmt.Sprintf("%s%d. %s ", indicator, index+1, check)
	if index == l.selected {
		prefix = l.styles.Selected.Render(prefix)
	} else {
		prefix = l.styles.Normal.Render(prefix)
	}
	return prefix + swatch + "  " + color
}

// SetKeywords replaces the keywords, keeping the selection in range.
func (l *KeywordList) SetKeywords(keywords []domain.Keyword) {
	l.keywords = keywords
	if l.selected >= len(keywords) {
		l.selected = len(keywords) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// Keywords returns the current keywords.
func (l *KeywordList) Keywords() []domain.Keyword {
	return l.keywords
}

// Selected returns the index of the selected keyword.
func (l *KeywordList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *KeywordList) SetSelected(index int) {
	if index >= 0 && index < len(l.keywords) {
		l.selected = index
	}
}

// SelectID selects the keyword with id. It reports whether it was found.
func (l *KeywordList) SelectID(id string) bool {
	for i := range l.keywords {
		if l.keywords[i].ID == id {
			l.selected = i
			return true
		}
	}
	return false
}

// SelectedKeyword returns the selected keyword, or nil if the list is empty.
func (l *KeywordList) SelectedKeyword() *domain.Keyword {
	if l.selected < 0 || l.selected >= len(l.keywords) {
		return nil
	}
	kw := l.keywords[l.selected]
	return &kw
}

// MoveUp moves selection up.
func (l *KeywordList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *KeywordList) MoveDown() {
	if l.selected < len(l.keywords)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *KeywordList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *KeywordList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *KeywordList) Height() int {
	return l.height
}

// Count returns the number of keywords.
func (l *KeywordList) Count() int {
	return len(l.keywords)
}

// IsEmpty returns whether the list is empty.
func (l *KeywordList) IsEmpty() bool {
	return len(l.keywords) == 0
}
