// Package display provides the terminal UI using Bubble Tea.
//
// One screen is rendered at a time, mirroring the controller's view
// state. Long operations (camera acquisition, detection, suggestion) run
// as commands so the event loop stays responsive; a periodic tick keeps
// the loading overlay and capture counter fresh.
package display

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/snapcook/snapcook/internal/app"
	"github.com/snapcook/snapcook/internal/domain"
)

// inputMode tracks what the shared text input is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputAddIngredient
	inputFilePath
)

// Model is the Bubble Tea model over the app controller.
type Model struct {
	ctrl *app.Controller
	ctx  context.Context

	input        textinput.Model
	mode         inputMode
	rosterCursor int
	recipeCursor int
	width        int
}

// NewModel creates the UI model.
func NewModel(ctx context.Context, ctrl *app.Controller) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Width = 40

	return Model{ctrl: ctrl, ctx: ctx, input: ti}
}

// Run starts the Bubble Tea event loop. Blocks until quit.
func Run(ctx context.Context, ctrl *app.Controller) error {
	p := tea.NewProgram(NewModel(ctx, ctrl), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ── Messages ─────────────────────────────────────────────────────

type refreshMsg struct{}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

// ── Commands ─────────────────────────────────────────────────────

func (m Model) cmdStartScan() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.StartScan(ctx)
		return refreshMsg{}
	}
}

func (m Model) cmdFinishCamera() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.FinishCamera(ctx)
		return refreshMsg{}
	}
}

func (m Model) cmdSuggest() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.RequestRecipes(ctx)
		return refreshMsg{}
	}
}

func (m Model) cmdIngestFile(path string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.IngestFile(ctx, path)
		return refreshMsg{}
	}
}

// ── Update ───────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		return m, tickCmd()

	case refreshMsg:
		m.clampCursors()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode != inputNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// The overlay is advisory: it does not cancel the in-flight call, and
	// new triggers are ignored while it is up.
	if loading, _ := m.ctrl.Loading(); loading {
		return m, nil
	}

	if m.mode != inputNone {
		return m.handleInputKey(msg)
	}

	switch m.ctrl.View() {
	case domain.ViewHome:
		return m.handleHomeKey(msg)
	case domain.ViewCamera:
		return m.handleCameraKey(msg)
	case domain.ViewIngredientRoster:
		return m.handleRosterKey(msg)
	case domain.ViewRecipeList:
		return m.handleRecipeListKey(msg)
	case domain.ViewRecipeDetail:
		if msg.Type == tea.KeyEsc || msg.String() == "b" {
			m.ctrl.Back()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = inputNone
		m.input.Reset()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = inputNone
		m.input.Reset()

		if value == "" {
			return m, nil
		}
		switch mode {
		case inputAddIngredient:
			m.ctrl.AddManual(value)
			return m, nil
		case inputFilePath:
			return m, m.cmdIngestFile(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		return m, m.cmdStartScan()
	case "f":
		m.mode = inputFilePath
		m.input.Placeholder = "path to an image file"
		m.input.Focus()
		return m, textinput.Blink
	case "m":
		m.mode = inputAddIngredient
		m.input.Placeholder = "ingredient name"
		m.input.Focus()
		return m, textinput.Blink
	case "d":
		m.ctrl.CyclePreference()
		return m, nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleCameraKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.CancelCamera()
		return m, nil
	case tea.KeyEnter:
		return m, m.cmdFinishCamera()
	case tea.KeySpace:
		m.ctrl.CaptureFrame()
		return m, nil
	}
	if msg.String() == "c" {
		m.ctrl.CaptureFrame()
	}
	return m, nil
}

func (m Model) handleRosterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.ctrl.Ingredients()

	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.Back()
		return m, nil
	case tea.KeyUp:
		if m.rosterCursor > 0 {
			m.rosterCursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.rosterCursor < len(items)-1 {
			m.rosterCursor++
		}
		return m, nil
	case tea.KeyEnter:
		return m, m.cmdSuggest()
	}

	switch msg.String() {
	case "a":
		m.mode = inputAddIngredient
		m.input.Placeholder = "ingredient name"
		m.input.Focus()
		return m, textinput.Blink
	case "x":
		if m.rosterCursor < len(items) {
			m.ctrl.RemoveIngredient(items[m.rosterCursor].ID)
			m.clampCursors()
		}
		return m, nil
	case "p":
		if m.rosterCursor < len(items) {
			m.ctrl.TogglePriority(items[m.rosterCursor].ID)
		}
		return m, nil
	case "d":
		m.ctrl.CyclePreference()
		return m, nil
	case "g":
		return m, m.cmdSuggest()
	}
	return m, nil
}

func (m Model) handleRecipeListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	recipes := m.ctrl.Recipes()

	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.Back()
		return m, nil
	case tea.KeyUp:
		if m.recipeCursor > 0 {
			m.recipeCursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.recipeCursor < len(recipes)-1 {
			m.recipeCursor++
		}
		return m, nil
	case tea.KeyEnter:
		m.ctrl.SelectRecipe(m.recipeCursor)
		return m, nil
	}
	return m, nil
}

func (m *Model) clampCursors() {
	if n := len(m.ctrl.Ingredients()); m.rosterCursor >= n && n > 0 {
		m.rosterCursor = n - 1
	} else if n == 0 {
		m.rosterCursor = 0
	}
	if n := len(m.ctrl.Recipes()); m.recipeCursor >= n && n > 0 {
		m.recipeCursor = n - 1
	} else if n == 0 {
		m.recipeCursor = 0
	}
}

// ── View ─────────────────────────────────────────────────────────

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(RenderBanner())
	b.WriteByte('\n')

	switch m.ctrl.View() {
	case domain.ViewHome:
		b.WriteString(m.viewHome())
	case domain.ViewCamera:
		b.WriteString(m.viewCamera())
	case domain.ViewIngredientRoster:
		b.WriteString(m.viewRoster())
	case domain.ViewRecipeList:
		b.WriteString(m.viewRecipeList())
	case domain.ViewRecipeDetail:
		b.WriteString(m.viewRecipeDetail())
	}

	if notice := m.ctrl.Notice(); notice != "" {
		b.WriteByte('\n')
		b.WriteString(noticeStyle.Render("  " + notice))
		b.WriteByte('\n')
	}

	if loading, status := m.ctrl.Loading(); loading {
		b.WriteByte('\n')
		b.WriteString(overlayStyle.Render("  " + status))
		b.WriteByte('\n')
	}

	if m.mode != inputNone {
		b.WriteByte('\n')
		b.WriteString("  " + m.input.View())
		b.WriteByte('\n')
	}

	return b.String()
}

func (m Model) viewHome() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("  What's in your kitchen?"))
	b.WriteString("\n\n")
	b.WriteString(primaryStyle.Render("  Point your camera at your ingredients and get recipe ideas."))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n", accentStyle.Render("  Dietary preference: "+m.ctrl.Preference().String()))
	b.WriteByte('\n')
	b.WriteString(keyHintStyle.Render("  s scan with camera   f image file   m add by hand   d diet   q quit"))
	b.WriteByte('\n')
	return b.String()
}

func (m Model) viewCamera() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("  Camera"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s\n", primaryStyle.Render(fmt.Sprintf("  Captured stills: %d", m.ctrl.CaptureCount())))
	b.WriteString(secondaryStyle.Render("  Frame each ingredient, then capture."))
	b.WriteString("\n\n")
	b.WriteString(keyHintStyle.Render("  space capture   enter finish   esc cancel"))
	b.WriteByte('\n')
	return b.String()
}

func (m Model) viewRoster() string {
	items := m.ctrl.Ingredients()

	var b strings.Builder
	b.WriteString(titleStyle.Render("  Your ingredients"))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(secondaryStyle.Render("  Nothing here yet. Scan or add by hand."))
		b.WriteByte('\n')
	}
	for i, ing := range items {
		cursor := "  "
		if i == m.rosterCursor {
			cursor = cursorStyle.Render("> ")
		}
		line := ing.Name
		style := primaryStyle
		if ing.IsPriority {
			line += "  (use soon)"
			style = priorityStyle
		}
		fmt.Fprintf(&b, "  %s%s\n", cursor, style.Render(line))
	}

	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s\n", accentStyle.Render("  Dietary preference: "+m.ctrl.Preference().String()))
	b.WriteByte('\n')
	b.WriteString(keyHintStyle.Render("  a add   x remove   p use-soon   d diet   enter suggest recipes   esc back"))
	b.WriteByte('\n')
	return b.String()
}

func (m Model) viewRecipeList() string {
	recipes := m.ctrl.Recipes()

	var b strings.Builder
	b.WriteString(titleStyle.Render("  Recipe ideas"))
	b.WriteString("\n\n")

	for i, r := range recipes {
		cursor := "  "
		if i == m.recipeCursor {
			cursor = cursorStyle.Render("> ")
		}
		tag := ""
		if r.FullySatisfiable() {
			tag = accentStyle.Render("  [ready to cook]")
		}
		fmt.Fprintf(&b, "  %s%s%s\n", cursor, primaryStyle.Render(r.Title), tag)
		fmt.Fprintf(&b, "    %s\n", secondaryStyle.Render(fmt.Sprintf("%s · %s", r.Difficulty, r.Time)))
	}

	b.WriteByte('\n')
	b.WriteString(keyHintStyle.Render("  up/down choose   enter open   esc back"))
	b.WriteByte('\n')
	return b.String()
}

func (m Model) viewRecipeDetail() string {
	r := m.ctrl.Selected()
	if r == nil {
		return secondaryStyle.Render("  No recipe selected.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("  " + r.Title))
	b.WriteString("\n\n")
	b.WriteString(primaryStyle.Render("  " + r.Description))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%s\n\n", secondaryStyle.Render(fmt.Sprintf("  %s · %s", r.Difficulty, r.Time)))

	b.WriteString(accentStyle.Render("  Uses: " + strings.Join(r.IngredientsUsed, ", ")))
	b.WriteByte('\n')
	if len(r.MissingIngredients) > 0 {
		b.WriteString(noticeStyle.Render("  Missing: " + strings.Join(r.MissingIngredients, ", ")))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	for i, step := range r.Steps {
		fmt.Fprintf(&b, "  %s %s\n",
			cursorStyle.Render(fmt.Sprintf("%d.", i+1)),
			primaryStyle.Render(step))
	}

	b.WriteByte('\n')
	b.WriteString(keyHintStyle.Render("  esc back"))
	b.WriteByte('\n')
	return b.String()
}
