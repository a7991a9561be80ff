// internal/tui/browse.go
// Package tui is a terminal browser for the plot: a method selector on the
// left, histograms and the highlighted point's tooltip on the right.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/snrplot/internal/dataset"
	"github.com/mwiater/snrplot/internal/logging"
	"github.com/mwiater/snrplot/internal/plot"
	"github.com/mwiater/snrplot/internal/util"
)

// focusArea is the pane receiving navigation keys.
type focusArea int

const (
	focusMethods focusArea = iota
	focusPoints
)

const (
	maxBarWidth   = 30
	maxMethodName = 24
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tooltipStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// methodItem is one selector option.
type methodItem struct {
	name  string
	count int
}

func (i methodItem) Title() string       { return util.TruncateRunes(i.name, maxMethodName) }
func (i methodItem) Description() string { return fmt.Sprintf("%d records", i.count) }
func (i methodItem) FilterValue() string { return i.name }

// model is the Bubble Tea state for the browser.
type model struct {
	renderer *plot.Renderer
	methods  list.Model
	viewport viewport.Model
	view     plot.View
	category string
	focus    focusArea
	cursor   int
	width    int
	height   int
}

func newModel(r *plot.Renderer) *model {
	records := r.Records()
	items := make([]list.Item, 0, len(r.Methods()))
	for _, m := range r.Methods() {
		items = append(items, methodItem{name: m, count: len(dataset.Filter(records, m))})
	}
	methods := list.New(items, list.NewDefaultDelegate(), 0, 0)
	methods.Title = "Method"
	methods.SetShowHelp(false)

	m := &model{
		renderer: r,
		methods:  methods,
		viewport: viewport.New(80, 20),
	}
	m.selectCategory(dataset.AllMethods)
	return m
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listWidth := msg.Width / 3
		m.methods.SetSize(listWidth, msg.Height-2)
		m.viewport.Width = msg.Width - listWidth - 4
		m.viewport.Height = msg.Height - 4
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// While the method filter is open every key is filter input.
		if m.methods.FilterState() != list.Filtering {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "tab":
				if m.focus == focusMethods {
					m.focus = focusPoints
				} else {
					m.focus = focusMethods
				}
				m.refreshDetail()
				return m, nil
			}
			if m.focus == focusPoints {
				return m, m.updatePoints(msg)
			}
		}
	}

	var cmd tea.Cmd
	m.methods, cmd = m.methods.Update(msg)
	if item, ok := m.methods.SelectedItem().(methodItem); ok && item.name != m.category {
		m.selectCategory(item.name)
	}
	return m, cmd
}

func (m *model) updatePoints(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.view.Points)-1 {
			m.cursor++
		}
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	m.refreshDetail()
	return nil
}

// selectCategory is the change handler: recompute the view and redraw.
func (m *model) selectCategory(category string) {
	m.category = category
	m.view = m.renderer.Update(category)
	m.cursor = 0
	logging.LogSelection("tui", "", category, map[string]int{"count": m.view.Count})
	m.refreshDetail()
}

func (m *model) refreshDetail() {
	content, tableStart := m.detailWithOffset()
	m.viewport.SetContent(content)
	if m.focus != focusPoints || len(m.view.Points) == 0 {
		return
	}
	row := tableStart + m.cursor
	switch {
	case row < m.viewport.YOffset:
		m.viewport.SetYOffset(row)
	case m.viewport.Height > 0 && row >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(row - m.viewport.Height + 1)
	}
}

// highlighted returns the tooltip of the point under the cursor.
func (m *model) highlighted() (plot.Tooltip, bool) {
	if len(m.view.Points) == 0 {
		return plot.Tooltip{}, false
	}
	return m.view.Points[m.cursor].Tooltip, true
}

func (m *model) detail() string {
	content, _ := m.detailWithOffset()
	return content
}

// detailWithOffset renders the right-hand pane and reports the line on which
// the point table's first row sits.
func (m *model) detailWithOffset() (string, int) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d records)\n", titleStyle.Render(m.category), m.view.Count)
	if m.focus == focusPoints {
		if tip, ok := m.highlighted(); ok {
			b.WriteString(tooltipStyle.Render(strings.Join(tip.Lines(), "\n")))
			b.WriteString("\n")
		} else {
			b.WriteString("no points\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(renderPane("SNR Distribution", m.view.SNR, m.renderer))
	b.WriteString("\n")
	b.WriteString(renderPane("SSIM Distribution", m.view.SSIM, m.renderer))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Points"))
	b.WriteString("\n")
	tableStart := strings.Count(b.String(), "\n")
	b.WriteString(m.pointTable())
	return b.String(), tableStart
}

// pointTable lists one tooltip line per point; the cursor row is marked when
// points have focus.
func (m *model) pointTable() string {
	if len(m.view.Points) == 0 {
		return helpStyle.Render("no points") + "\n"
	}
	var b strings.Builder
	for i, p := range m.view.Points {
		marker := "  "
		line := p.Tooltip.String()
		if m.focus == focusPoints && i == m.cursor {
			marker = "> "
			line = cursorStyle.Render(line)
		}
		b.WriteString(marker)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderPane draws one histogram pane as paired horizontal bars per bin.
func renderPane(title string, pane plot.Pane, r *plot.Renderer) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(pane.Series) == 0 {
		return b.String()
	}
	peak := pane.Y.Domain[1]
	decimals := 2
	if pane.Metric == "ssim" {
		decimals = 4
	}
	for i := range pane.Series[0].Bars {
		bar := pane.Series[0].Bars[i]
		fmt.Fprintf(&b, "[%.*f, %.*f) ", decimals, bar.X0, decimals, bar.X1)
		for _, serie := range pane.Series {
			count := serie.Bars[i].Count
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Color(serie.Group)))
			b.WriteString(style.Render(strings.Repeat("█", barLength(count, peak))))
			fmt.Fprintf(&b, " %d  ", count)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func barLength(count int, peak float64) int {
	if peak <= 0 || count <= 0 {
		return 0
	}
	n := int(float64(count) / peak * maxBarWidth)
	if n == 0 {
		n = 1
	}
	return n
}

func (m *model) View() string {
	help := helpStyle.Render("↑/↓ select • tab switch to points • q quit")
	if m.focus == focusPoints {
		help = helpStyle.Render("↑/↓ highlight point • tab back to methods • q quit")
	}
	right := lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), help)
	return lipgloss.JoinHorizontal(lipgloss.Top, m.methods.View(), "  ", right)
}

// Run starts the browser and blocks until the user quits.
func Run(r *plot.Renderer) error {
	p := tea.NewProgram(newModel(r), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
