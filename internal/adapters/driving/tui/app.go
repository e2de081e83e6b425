package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/views/colorpicker"
	"github.com/custodia-labs/hilite-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/hilite-cli/internal/core/domain"
)

// changesSubscribed carries the notifier channel once subscribed.
type changesSubscribed struct {
	ch  <-chan domain.KeywordChange
	err error
}

// App is the keyword manager following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	keywordList  *list.KeywordList
	keywordInput *input.KeywordInput
	statusBar    *status.Bar
	picker       *colorpicker.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// pickerReturn is the view shown when the colour picker closes.
	pickerReturn messages.ViewType

	// pickerTarget is the keyword being recoloured. When nil the picker
	// chooses pendingText's colour, or the default colour.
	pickerTarget *domain.Keyword

	// pendingText is new keyword text waiting for a colour.
	pendingText string

	// selectAfterLoad is the keyword ID to select once the list reloads.
	selectAfterLoad string

	changes <-chan domain.KeywordChange

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new keyword manager with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingKeywordService)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	h := help.New()
	h.ShowAll = true

	statusBar := status.NewBar(s, km)
	statusBar.SetListHints(true)

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         h,
		keywordList:  list.NewKeywordList(s),
		keywordInput: input.NewKeywordInput(s),
		statusBar:    statusBar,
		picker:       colorpicker.NewView(s),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewKeywords,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("hilite - Keywords"),
		a.loadKeywords(),
		a.subscribe(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case changesSubscribed:
		if msg.err != nil {
			a.setError(msg.err)
			return a, nil
		}
		a.changes = msg.ch
		return a, a.waitForChange()

	case messages.KeywordsChanged:
		a.setKeywords(msg.Change.New)
		return a, a.waitForChange()

	case messages.KeywordsLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, nil
		}
		a.setKeywords(msg.Keywords)
		return a, nil

	case messages.KeywordMutated:
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, a.loadKeywords()
		}
		a.err = nil
		a.statusBar.SetState(status.StateSuccess)
		a.statusBar.SetMessage(msg.Status)
		a.selectAfterLoad = msg.Select
		return a, a.loadKeywords()

	case messages.KeywordSubmitted:
		a.pendingText = msg.Text
		a.pickerTarget = nil
		return a, a.openPicker(fmt.Sprintf("Colour for %q", msg.Text), a.defaultColor(), messages.ViewKeywords)

	case messages.ColorRequested:
		title := "Default Colour"
		returnTo := a.currentView
		if msg.Keyword != nil {
			title = fmt.Sprintf("Colour for %q", msg.Keyword.Text)
		}
		a.pickerTarget = msg.Keyword
		a.pendingText = ""
		return a, a.openPicker(title, msg.Current, returnTo)

	case messages.ColorChosen:
		return a, a.applyColor(msg.Color)

	case messages.ColorCancelled:
		a.closePicker()
		return a, nil

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil
	}

	// Forward other messages to the active view.
	switch a.currentView {
	case messages.ViewAddKeyword:
		a.keywordInput, cmd = a.keywordInput.Update(msg)
	case messages.ViewColor:
		a.picker, cmd = a.picker.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewKeywords, messages.ViewHelp:
	}
	return a, cmd
}

// handleKey routes a key press to the active view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewKeywords:
		return a, a.handleListKey(msg)

	case messages.ViewAddKeyword:
		switch msg.Type {
		case tea.KeyEsc:
			a.keywordInput.Blur()
			a.currentView = messages.ViewKeywords
			return a, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(a.keywordInput.Value())
			if text == "" {
				a.setError(fmt.Errorf("keyword text is empty: %w", domain.ErrInvalidInput))
				return a, nil
			}
			a.keywordInput.Blur()
			return a, func() tea.Msg { return messages.KeywordSubmitted{Text: text} }
		default:
			a.keywordInput, cmd = a.keywordInput.Update(msg)
			return a, cmd
		}

	case messages.ViewColor:
		a.picker, cmd = a.picker.Update(msg)
		return a, cmd

	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if key.Matches(msg, a.keymap.Back, a.keymap.Help, a.keymap.Quit) {
			a.currentView = messages.ViewKeywords
		}
		return a, nil
	}
	return a, nil
}

// handleListKey handles keys on the keyword list.
func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	km := a.keymap
	selected := a.keywordList.SelectedKeyword()
	index := a.keywordList.Selected()

	switch {
	case key.Matches(msg, km.Quit):
		return tea.Quit
	case key.Matches(msg, km.Help):
		a.currentView = messages.ViewHelp
	case key.Matches(msg, km.Settings):
		return a.switchView(messages.ViewSettings)
	case key.Matches(msg, km.Reload):
		a.statusBar.Clear()
		return a.loadKeywords()
	case key.Matches(msg, km.Add):
		return a.switchView(messages.ViewAddKeyword)
	case key.Matches(msg, km.MoveUp):
		if selected != nil && index > 0 {
			return a.move(*selected, index-1)
		}
	case key.Matches(msg, km.MoveDown):
		if selected != nil && index < a.keywordList.Count()-1 {
			return a.move(*selected, index+1)
		}
	case key.Matches(msg, km.Up):
		a.keywordList.MoveUp()
	case key.Matches(msg, km.Down):
		a.keywordList.MoveDown()
	case key.Matches(msg, km.Toggle):
		if selected != nil {
			return a.toggle(*selected)
		}
	case key.Matches(msg, km.Color):
		if selected != nil {
			kw := *selected
			return func() tea.Msg {
				return messages.ColorRequested{Keyword: &kw, Current: kw.Color}
			}
		}
	case key.Matches(msg, km.Delete):
		if selected != nil {
			return a.remove(*selected)
		}
	}
	return nil
}

// switchView activates view, initialising it where needed.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.statusBar.SetListHints(view == messages.ViewKeywords)

	switch view {
	case messages.ViewKeywords:
		return a.loadKeywords()
	case messages.ViewAddKeyword:
		a.keywordInput.Reset()
		return tea.Batch(a.keywordInput.Init(), a.keywordInput.Focus())
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewColor, messages.ViewHelp:
	}
	return nil
}

func (a *App) openPicker(title, current string, returnTo messages.ViewType) tea.Cmd {
	a.picker.Open(title, current)
	a.pickerReturn = returnTo
	a.currentView = messages.ViewColor
	a.statusBar.SetListHints(false)
	return nil
}

func (a *App) closePicker() {
	a.currentView = a.pickerReturn
	a.statusBar.SetListHints(a.currentView == messages.ViewKeywords)
	a.pickerTarget = nil
	a.pendingText = ""
}

// applyColor uses a chosen colour for the picker's target.
func (a *App) applyColor(color string) tea.Cmd {
	target, text := a.pickerTarget, a.pendingText
	a.closePicker()

	switch {
	case text != "":
		return a.add(text, color)
	case target != nil:
		return a.setColor(*target, color)
	default:
		svc := a.ports.Settings
		return func() tea.Msg {
			return messages.SettingsSaved{Err: svc.SetDefaultColor(color)}
		}
	}
}

// Commands calling the keyword service.

func (a *App) loadKeywords() tea.Cmd {
	svc, ctx := a.ports.Keyword, a.ctx
	return func() tea.Msg {
		keywords, err := svc.List(ctx)
		return messages.KeywordsLoaded{Keywords: keywords, Err: err}
	}
}

func (a *App) add(text, color string) tea.Cmd {
	svc, ctx := a.ports.Keyword, a.ctx
	return func() tea.Msg {
		kw, err := svc.Add(ctx, text, color)
		if err != nil {
			return messages.KeywordMutated{Err: err}
		}
		return messages.KeywordMutated{
			Status: fmt.Sprintf("Added %q (%s)", kw.Text, domain.ColorName(kw.Color)),
			Select: kw.ID,
		}
	}
}

func (a *App) toggle(kw domain.Keyword) tea.Cmd {
	svc, ctx := a.ports.Keyword, a.ctx
	return func() tea.Msg {
		if err := svc.Toggle(ctx, kw.ID, !kw.Enabled); err != nil {
			return messages.KeywordMutated{Err: err}
		}
		verb := "Enabled"
		if kw.Enabled {
			verb = "Disabled"
		}
		return messages.KeywordMutated{Status: fmt.Sprintf("%s %q", verb, kw.Text), Select: kw.ID}
	}
}

func (a *App) setColor(kw domain.Keyword, color string) tea.Cmd {
	svc, ctx := a.ports.Keyword, a.ctx
	return func() tea.Msg {
		if err := svc.SetColor(ctx, kw.ID, color); err != nil {
			return messages.KeywordMutated{Err: err}
		}
		return messages.KeywordMutated{
			Status: fmt.Sprintf("%q is now %s", kw.Text, domain.ColorName(color)),
			Select: kw.ID,
		}
	}
}

func (a *App) remove(kw domain.Keyword) tea.Cmd {
	svc, ctx := a.ports.Keyword, a.ctx
	return func() tea.Msg {
		if err := svc.Delete(ctx, kw.ID); err != nil {
			return messages.KeywordMutated{Err: err}
		}
		return messages.KeywordMutated{Status: fmt.Sprintf("Removed %q", kw.Text)}
	}
}

func (a *App) move(kw domain.Keyword, index int) tea.Cmd {
	svc, ctx := a.ports.Keyword, a.ctx
	return func() tea.Msg {
		if err := svc.Move(ctx, kw.ID, index); err != nil {
			return messages.KeywordMutated{Err: err}
		}
		return messages.KeywordMutated{
			Status: fmt.Sprintf("Moved %q to position %d", kw.Text, index+1),
			Select: kw.ID,
		}
	}
}

// subscribe starts listening for edits made by other processes.
func (a *App) subscribe() tea.Cmd {
	notifier, ctx := a.ports.Changes, a.ctx
	if notifier == nil {
		return nil
	}
	return func() tea.Msg {
		ch, err := notifier.Subscribe(ctx)
		return changesSubscribed{ch: ch, err: err}
	}
}

// waitForChange blocks until the next change arrives.
func (a *App) waitForChange() tea.Cmd {
	ch := a.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return messages.KeywordsChanged{Change: change}
	}
}

func (a *App) setKeywords(keywords []domain.Keyword) {
	a.keywordList.SetKeywords(keywords)
	if a.selectAfterLoad != "" {
		a.keywordList.SelectID(a.selectAfterLoad)
		a.selectAfterLoad = ""
	}
	a.statusBar.SetKeywordCount(len(keywords))
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

func (a *App) defaultColor() string {
	cfg, err := a.ports.Settings.Get()
	if err != nil || cfg.Highlight.DefaultColor == "" {
		return domain.DefaultColor
	}
	return cfg.Highlight.DefaultColor
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewAddKeyword:
		body = a.keywordList.View() + "\n\n" + a.keywordInput.View()
	case messages.ViewColor:
		body = a.picker.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	case messages.ViewKeywords:
		body = a.keywordList.View()
	}

	header := a.styles.Title.Render("hilite") + a.styles.Muted.Render("  keyword manager")
	return header + "\n\n" + body + "\n\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Subtitle.Render("Keys") + "\n\n" +
		a.help.View(a.keymap) + "\n\n" +
		a.styles.Help.Render("Keywords apply top to bottom. Earlier keywords win where matches overlap.")
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Keywords returns the keywords shown in the list.
func (a *App) Keywords() []domain.Keyword {
	return a.keywordList.Keywords()
}

// SelectedKeyword returns the keyword under the cursor, or nil.
func (a *App) SelectedKeyword() *domain.Keyword {
	return a.keywordList.SelectedKeyword()
}

// StatusMessage returns the text shown in the status bar.
func (a *App) StatusMessage() string {
	return a.statusBar.Message()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// Header, spacing and status bar take six lines.
	a.keywordList.SetDimensions(width, height-6)
	a.keywordInput.SetWidth(width)
	a.statusBar.SetWidth(width)
	a.settingsView.SetDimensions(width, height)
	a.help.Width = width
}
