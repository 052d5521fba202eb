package main

import (
	"fmt"
	"math/rand"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	recycler "github.com/grindlemire/go-recycler"
	"github.com/grindlemire/go-recycler/pkg/store"
)

const stateKey = "feed"

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	entryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// model hosts a ListView. It acts as the list's scroll surface: programmatic
// scrolls are applied by the list view itself.
type model struct {
	cfg   demoConfig
	items []item
	lv    *recycler.ListView[item]
	list  recycler.LayoutProvider
	grid  recycler.LayoutProvider
	state *store.Bolt

	useGrid    bool
	wantMore   bool
	restoredAt float64

	rows          []recycler.Row[item]
	width, height int
	err           error
}

func newModel(cfg demoConfig, opts ...recycler.Option) (*model, error) {
	m := &model{
		cfg:     cfg,
		items:   generateItems(0, cfg.Items),
		useGrid: cfg.Grid,
	}
	m.list, m.grid = feedLayouts(func() []item { return m.items }, cfg.Columns)

	opts = append([]recycler.Option{
		recycler.WithRenderAheadOffset(cfg.RenderAhead),
		recycler.WithEndReachedThreshold(1),
		recycler.WithOnEndReached(func() { m.wantMore = true }),
		recycler.WithOnRecreate(func(offset float64) { m.restoredAt = offset }),
	}, opts...)
	if cfg.DebugLog != "" {
		opts = append(opts, recycler.WithDebugLog(cfg.DebugLog))
	}
	if cfg.StatePath != "" {
		b, err := store.OpenBolt(cfg.StatePath)
		if err != nil {
			return nil, err
		}
		m.state = b
		opts = append(opts, recycler.WithContextStore(b, stateKey))
	}

	lv, err := recycler.NewListView(m.layoutProvider(), newFeed(m.items), m.collectRow, opts...)
	if err != nil {
		m.closeState()
		return nil, err
	}
	m.lv = lv
	return m, nil
}

func (m *model) layoutProvider() recycler.LayoutProvider {
	if m.useGrid {
		return m.grid
	}
	return m.list
}

func (m *model) collectRow(row recycler.Row[item]) {
	m.rows = append(m.rows, row)
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.err = m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if quit := m.handleKey(msg.String()); quit {
			return m, tea.Quit
		}
	}
	if m.err == nil {
		m.err = m.tick()
	}
	return m, nil
}

func (m *model) handleKey(key string) bool {
	page := float64(max(1, m.height-1))
	switch key {
	case "q", "ctrl+c", "esc":
		return true
	case "up", "k":
		m.lv.ScrollBy(-1, false)
	case "down", "j":
		m.lv.ScrollBy(1, false)
	case "pgup", "b":
		m.lv.ScrollBy(-page, false)
	case "pgdown", " ", "f":
		m.lv.ScrollBy(page, false)
	case "home":
		m.lv.ScrollToTop(false)
	case "end":
		m.err = m.lv.ScrollToEnd(false)
	case "g":
		m.useGrid = !m.useGrid
		m.err = m.lv.SetLayoutProvider(m.layoutProvider())
	case "a":
		m.err = m.appendPage()
	case "s":
		m.err = m.shuffle()
	}
	return false
}

// resize gives the list all lines but the status bar.
func (m *model) resize(width, height int) error {
	m.width, m.height = width, max(1, height-1)
	return m.lv.SetSize(recycler.Dimension{Width: float64(m.width), Height: float64(m.height)})
}

// tick runs the list's frame work, then any page load requested by
// OnEndReached during it.
func (m *model) tick() error {
	if _, err := m.lv.Tick(); err != nil {
		return err
	}
	if m.wantMore {
		m.wantMore = false
		return m.appendPage()
	}
	return nil
}

func (m *model) appendPage() error {
	m.items = append(m.items[:len(m.items):len(m.items)], generateItems(len(m.items), max(m.height, sectionSize))...)
	return m.lv.SetDataProvider(m.lv.DataProvider().CloneWithRows(m.items))
}

func (m *model) shuffle() error {
	next := append([]item(nil), m.items...)
	rand.Shuffle(len(next), func(i, j int) { next[i], next[j] = next[j], next[i] })
	m.items = next
	return m.lv.SetDataProvider(m.lv.DataProvider().CloneWithRows(next))
}

// View implements tea.Model.
func (m *model) View() string {
	if m.err != nil {
		return errorStyle.Render("error: "+m.err.Error()) + "\n"
	}
	if m.width == 0 {
		return ""
	}
	return m.frame() + "\n" + m.status()
}

type cell struct {
	x, width int
	text     string
	style    lipgloss.Style
}

// frame draws the rendered rows into the viewport lines.
func (m *model) frame() string {
	m.rows = m.rows[:0]
	if err := m.lv.Render(); err != nil {
		return errorStyle.Render("error: " + err.Error())
	}

	offset := m.lv.CurrentScrollOffset()
	viewport := recycler.NewRect(0, offset, float64(m.width), float64(m.height))
	lines := make([][]cell, m.height)
	for _, row := range m.rows {
		// Rows ahead of and behind the viewport are engaged but not drawn.
		if !row.Frame.Intersects(viewport) {
			continue
		}
		top := int(row.Frame.Y - offset)
		for dy := 0; dy < int(row.Frame.Height); dy++ {
			y := top + dy
			if y < 0 || y >= m.height {
				continue
			}
			lines[y] = append(lines[y], rowCell(row, dy))
		}
	}

	var sb strings.Builder
	for y, cells := range lines {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for _, c := range cells {
			if c.x > x {
				sb.WriteString(strings.Repeat(" ", c.x-x))
				x = c.x
			}
			sb.WriteString(c.style.Width(c.width).MaxWidth(c.width).Render(c.text))
			x += c.width
		}
	}
	return sb.String()
}

func rowCell(row recycler.Row[item], line int) cell {
	c := cell{x: int(row.Frame.X), width: max(1, int(row.Frame.Width)), style: entryStyle}
	switch {
	case row.Type == typeHeader && line == 0:
		c.text, c.style = row.Data.Title, headerStyle
	case row.Type == typeHeader:
		c.text, c.style = strings.Repeat("─", c.width), ruleStyle
	default:
		c.text = " " + row.Data.Title
	}
	return c
}

func (m *model) status() string {
	layoutName := "list"
	if m.useGrid {
		layoutName = "grid"
	}
	visible := m.lv.VisibleIndexes()
	first, last := 0, 0
	if len(visible) > 0 {
		first, last = visible[0], visible[len(visible)-1]
	}
	text := fmt.Sprintf(" %s  %d-%d of %d  slots %d", layoutName, first, last, len(m.items), len(m.lv.RenderStack()))
	if m.restoredAt > 0 {
		text += fmt.Sprintf("  resumed at %.0f", m.restoredAt)
	}
	return statusStyle.Width(max(1, m.width)).MaxWidth(max(1, m.width)).Render(text)
}

// close persists list state and releases the state file.
func (m *model) close() error {
	err := m.lv.Close()
	if cerr := m.closeState(); err == nil {
		err = cerr
	}
	return err
}

func (m *model) closeState() error {
	if m.state == nil {
		return nil
	}
	err := m.state.Close()
	m.state = nil
	return err
}
