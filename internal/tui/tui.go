package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aayushbajaj/jexi/internal/chef"
	"github.com/aayushbajaj/jexi/internal/dictionary"
	"github.com/aayushbajaj/jexi/internal/oven"
	"github.com/aayushbajaj/jexi/internal/storage"
	"github.com/aayushbajaj/jexi/pkg/stats"
)

const banner = `
     _           _
    (_)_____ __ (_)
    | / -_) \ / | |
   _/ \___/_\_\ |_|
  |__/`

const (
	preheatDelay = 1200 * time.Millisecond
	frameDelay   = 100 * time.Millisecond

	// maxQualityLines is how many checkpoint lines the baking view keeps.
	maxQualityLines = 10
)

var (
	quantumSymbols = []string{"▚", "▞", "▛", "▜", "▟", "▙"}
	spinnerFrames  = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	quantumStates  = []string{"α", "β", "γ", "δ"}
)

type State int

const (
	StatePick State = iota
	StateCount
	StatePreheat
	StateBaking
	StateDone
)

// Options configures a baking session.
type Options struct {
	Entries     []dictionary.Entry
	Count       int
	OutputPath  string
	Threshold   float64
	RepairLimit int

	// Store records session summaries; nil disables history.
	Store  *storage.Store
	Logger *slog.Logger

	// load reads a dictionary entry; replaced in tests.
	load func(dictionary.Entry) ([]string, error)
}

type Model struct {
	opts  Options
	state State

	query   string
	matches []int
	cursor  int

	countInput string
	count      int
	selected   dictionary.Entry
	chef       *chef.Chef

	cancel    context.CancelFunc
	events    chan tea.Msg
	started   time.Time
	last      oven.Progress
	quality   []oven.Progress
	frame     int
	cancelled bool

	result  *oven.Result
	genErr  error
	saveErr error
	week    []storage.DailyStats

	err      error
	showHelp bool
	width    int
	height   int
}

type preheatDoneMsg struct{}

type frameMsg time.Time

type progressMsg oven.Progress

type finishedMsg struct {
	result *oven.Result
	err    error
}

// EmbeddedEntry stands for the built-in pantry in the picker.
var EmbeddedEntry = dictionary.Entry{Name: dictionary.DefaultName}

func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.load == nil {
		opts.load = loadEntry
	}
	if opts.Threshold <= 0 {
		opts.Threshold = oven.DefaultThreshold
	}
	if len(opts.Entries) == 0 {
		opts.Entries = []dictionary.Entry{EmbeddedEntry}
	}
	opts.Count = oven.ClampCount(opts.Count)

	m := Model{opts: opts, state: StatePick}
	m.matches = filterEntries(opts.Entries, "")
	return m
}

func loadEntry(e dictionary.Entry) ([]string, error) {
	if e.Path == "" {
		return dictionary.Default(), nil
	}
	return dictionary.Load(e.Path)
}

// State returns the current screen.
func (m Model) State() State {
	return m.state
}

// Result returns the last finished session, or nil.
func (m Model) Result() *oven.Result {
	return m.result
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case preheatDoneMsg:
		if m.state != StatePreheat {
			return m, nil
		}
		return m.startBaking()

	case frameMsg:
		if m.state != StateBaking {
			return m, nil
		}
		m.frame++
		return m, frameTick()

	case progressMsg:
		p := oven.Progress(msg)
		m.last = p
		if p.Checkpoint {
			m.quality = append(m.quality, p)
			if len(m.quality) > maxQualityLines {
				m.quality = m.quality[1:]
			}
		}
		return m, waitForEvent(m.events)

	case finishedMsg:
		return m.finish(msg), nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.state == StateBaking {
			if m.cancelled {
				return m, tea.Quit
			}
			// First interrupt keeps what was baked so far.
			m.cancelled = true
			m.cancel()
			return m, nil
		}
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.state {
	case StatePick:
		return m.updatePick(msg)
	case StateCount:
		return m.updateCount(msg)
	case StateDone:
		switch msg.String() {
		case "enter", "y":
			return m.reset(), nil
		case "q", "n", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
	case tea.KeyBackspace:
		if len(m.query) > 0 {
			runes := []rune(m.query)
			m.query = string(runes[:len(runes)-1])
			m.refilter()
		}
	case tea.KeyEnter:
		if len(m.matches) == 0 {
			return m, nil
		}
		m.selected = m.opts.Entries[m.matches[m.cursor]]
		m.err = nil
		m.countInput = ""
		m.state = StateCount
	case tea.KeySpace:
		m.query += " "
		m.refilter()
	case tea.KeyRunes:
		if msg.String() == "?" && m.query == "" {
			m.showHelp = true
			return m, nil
		}
		m.query += string(msg.Runes)
		m.refilter()
	}
	return m, nil
}

func (m *Model) refilter() {
	m.matches = filterEntries(m.opts.Entries, m.query)
	m.cursor = 0
}

func (m Model) updateCount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = StatePick
		return m, nil
	case tea.KeyBackspace:
		if len(m.countInput) > 0 {
			m.countInput = m.countInput[:len(m.countInput)-1]
		}
		return m, nil
	case tea.KeyEnter:
		return m.prepare()
	case tea.KeyRunes:
		if msg.String() == "?" {
			m.showHelp = true
			return m, nil
		}
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' && len(m.countInput) < 6 {
				m.countInput += string(r)
			}
		}
	}
	return m, nil
}

// parseCount turns the typed count into a clamped value, falling back to def.
func parseCount(input string, def int) int {
	n, err := strconv.Atoi(input)
	if err != nil {
		return oven.ClampCount(def)
	}
	return oven.ClampCount(n)
}

// prepare loads the dictionary and builds the chef before preheating.
func (m Model) prepare() (tea.Model, tea.Cmd) {
	m.count = parseCount(m.countInput, m.opts.Count)

	items, err := m.opts.load(m.selected)
	if err != nil {
		m.err = err
		m.state = StatePick
		return m, nil
	}

	c, err := chef.New(items,
		chef.WithLogger(m.opts.Logger),
		chef.WithRepairLimit(m.opts.RepairLimit),
	)
	if err != nil {
		m.err = fmt.Errorf("%s: %w", m.selected.Name, err)
		m.state = StatePick
		return m, nil
	}

	m.opts.Logger.Info("session prepared", "dictionary", m.selected.Name, "ingredients", len(items), "count", m.count)
	m.chef = c
	m.state = StatePreheat
	return m, tea.Tick(preheatDelay, func(time.Time) tea.Msg { return preheatDoneMsg{} })
}

func (m Model) startBaking() (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan tea.Msg, 16)

	m.cancel = cancel
	m.events = events
	m.state = StateBaking
	m.started = time.Now()
	m.last = oven.Progress{Total: m.count}
	m.quality = nil
	m.cancelled = false

	c, count := m.chef, m.count
	opts := []oven.Option{
		oven.WithThreshold(m.opts.Threshold),
		oven.WithLogger(m.opts.Logger),
		oven.WithProgress(func(p oven.Progress) {
			select {
			case events <- progressMsg(p):
			case <-ctx.Done():
			}
		}),
	}
	go func() {
		res, err := oven.Generate(ctx, c, c.Scorer(), count, opts...)
		events <- finishedMsg{result: res, err: err}
	}()

	return m, tea.Batch(waitForEvent(events), frameTick())
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(frameDelay, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// finish saves the passwords, records the session and shows the summary.
func (m Model) finish(msg finishedMsg) Model {
	if m.cancel != nil {
		m.cancel()
	}
	m.state = StateDone
	m.result = msg.result
	m.genErr = msg.err
	if m.result == nil {
		m.result = &oven.Result{Requested: m.count}
	}
	if m.cancelled {
		m.result.Cancelled = true
	}

	m.saveErr = dictionary.Save(m.opts.OutputPath, m.result.Passwords)
	if m.saveErr != nil {
		m.opts.Logger.Error("saving passwords failed", "path", m.opts.OutputPath, "err", m.saveErr)
	}

	if m.opts.Store != nil {
		summary := stats.Summarize(m.result.Passwords, m.result.Scores)
		sess := &storage.Session{
			StartedAt:  m.started,
			Dictionary: m.selected.Name,
			Requested:  m.result.Requested,
			Generated:  len(m.result.Passwords),
			Cancelled:  m.result.Cancelled,
			AvgScore:   summary.AvgScore,
			Duration:   m.result.Duration,
		}
		if err := m.opts.Store.RecordSession(sess); err != nil {
			m.opts.Logger.Error("recording session failed", "err", err)
		} else if week, err := m.opts.Store.GetWeekStats(); err == nil {
			m.week = week
		}
	}

	m.opts.Logger.Info("session finished",
		"dictionary", m.selected.Name,
		"generated", len(m.result.Passwords),
		"cancelled", m.result.Cancelled,
		"err", m.genErr,
	)
	return m
}

// reset returns to the picker for another round.
func (m Model) reset() Model {
	next := New(m.opts)
	next.width, next.height = m.width, m.height
	return next
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(banner))
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(renderHelp())
		return b.String()
	}

	switch m.state {
	case StatePick:
		b.WriteString(m.viewPick())
	case StateCount:
		b.WriteString(m.viewCount())
	case StatePreheat:
		b.WriteString(spinnerStyle.Render("🌀 Quantum-AI core initializing..."))
	case StateBaking:
		b.WriteString(m.viewBaking())
	case StateDone:
		b.WriteString(m.viewDone())
	}

	return b.String()
}

func (m Model) viewPick() string {
	var b strings.Builder

	b.WriteString(searchBoxStyle.Render(labelStyle.Render("Dictionary: ") + m.query + "▏"))
	b.WriteString("\n")

	if len(m.matches) == 0 {
		b.WriteString(labelStyle.Render("  No dictionary matches"))
		b.WriteString("\n")
	}
	for i, idx := range m.matches {
		line := fmt.Sprintf(" [%d] %s ", idx+1, m.opts.Entries[idx].Name)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("›" + line))
		} else {
			b.WriteString(unselectedStyle.Render(" " + line))
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("type to filter • ↑/↓: move • enter: choose • ?: help • esc: exit"))
	return b.String()
}

func (m Model) viewCount() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Dictionary: "))
	b.WriteString(valueStyle.Render(m.selected.Name))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Number of passwords to bake (%d-%d): ", oven.MinCount, oven.MaxCount)))
	b.WriteString(m.countInput)
	b.WriteString("▏\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("empty = %d", m.opts.Count)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: bake • esc: back • ?: help"))
	return b.String()
}

func (m Model) viewBaking() string {
	var b strings.Builder

	elapsed := time.Since(m.started)
	speed := stats.Speed(m.last.Accepted, elapsed)
	quantum := fmt.Sprintf("%s %s",
		quantumSymbols[m.frame%len(quantumSymbols)],
		quantumStates[(m.frame/3)%len(quantumStates)],
	)

	b.WriteString(spinnerStyle.Render(spinnerFrames[m.frame%len(spinnerFrames)]))
	b.WriteString(" ")
	b.WriteString(labelStyle.Render("Baking: ["))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d/%d", m.last.Accepted, m.count)))
	b.WriteString(labelStyle.Render("] | "))
	b.WriteString(fmt.Sprintf("%.1f pwds/s", speed))
	b.WriteString(labelStyle.Render(" | Quantum-AI "))
	b.WriteString(spinnerStyle.Render(quantum))
	b.WriteString("\n\n")

	for _, q := range m.quality {
		b.WriteString(qualityStyle.Render(qualityLine(q)))
		b.WriteString("\n")
	}

	if m.cancelled {
		b.WriteString(errorStyle.Render("! Generation interrupted, finishing up..."))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("ctrl+c: stop and keep results"))
	return b.String()
}

func qualityLine(p oven.Progress) string {
	return fmt.Sprintf("AI Quality: %.1f/1.0 | Length: %d | Entropy: %d bits",
		p.Score, len([]rune(p.Password)), stats.EntropyBits(p.Password))
}

func (m Model) viewDone() string {
	var b strings.Builder
	res := m.result

	if res.Cancelled {
		b.WriteString(errorStyle.Render("! Generation interrupted !"))
		b.WriteString("\n")
	}
	if m.genErr != nil {
		b.WriteString(errorStyle.Render("Stopped early: " + m.genErr.Error()))
		b.WriteString("\n")
	}

	summary := stats.Summarize(res.Passwords, res.Scores)
	content := fmt.Sprintf(
		"%s %s\n%s %s\n%s %s\n%s %s",
		labelStyle.Render("Generated:"),
		valueStyle.Render(fmt.Sprintf("%d/%d", len(res.Passwords), res.Requested)),
		labelStyle.Render("Time:"),
		valueStyle.Render(fmt.Sprintf("%.2fs", res.Duration.Seconds())),
		labelStyle.Render("Avg quality:"),
		valueStyle.Render(fmt.Sprintf("%.2f", summary.AvgScore)),
		labelStyle.Render("Avg length:"),
		valueStyle.Render(fmt.Sprintf("%.1f", summary.AvgLength)),
	)
	b.WriteString(boxStyle.Render("✓ Baking complete\n\n" + content))
	b.WriteString("\n\n")

	for i, pw := range res.Passwords {
		if i == 5 {
			b.WriteString(labelStyle.Render(fmt.Sprintf("  ... and %d more", len(res.Passwords)-5)))
			b.WriteString("\n")
			break
		}
		b.WriteString("  ")
		b.WriteString(passwordStyle.Render(pw))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.saveErr != nil {
		b.WriteString(errorStyle.Render("Could not save passwords: " + m.saveErr.Error()))
	} else {
		b.WriteString(labelStyle.Render("🔐 Passwords saved to "))
		b.WriteString(valueStyle.Render(m.opts.OutputPath))
	}
	b.WriteString("\n")

	if len(m.week) > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Weekly baking:"))
		b.WriteString("\n")
		b.WriteString(renderWeeklyGraph(m.week))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: bake again • q: quit"))
	return b.String()
}

func renderWeeklyGraph(week []storage.DailyStats) string {
	var maxCount int64
	for _, d := range week {
		if d.Passwords > maxCount {
			maxCount = d.Passwords
		}
	}

	if maxCount == 0 {
		return "No passwords this week"
	}

	bars := []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	var graph strings.Builder

	for _, d := range week {
		idx := int(float64(d.Passwords) / float64(maxCount) * float64(len(bars)-1))
		if d.Passwords > 0 && idx == 0 {
			idx = 1
		}
		graph.WriteString(graphStyle.Render(bars[idx]))
		graph.WriteString(" ")
	}

	return graph.String()
}

func renderHelp() string {
	return boxStyle.Render(`JEXI Quantum-AI Password Generator - Help

Features:
  - Memorable word / number / symbol combos
  - Weak pattern detection and repair
  - Complexity scoring
  - Character n-gram similarity suggestions
  - Multi-dictionary support

Usage:
  1. Place .txt dictionaries in the dictionary folder
  2. Pick a dictionary (type to filter)
  3. Choose how many passwords to bake
  4. Watch the baking
  5. Find the results in the output file

Press any key to go back.`)
}
