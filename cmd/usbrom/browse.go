package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/ardnew/usbrom/config"
	"github.com/ardnew/usbrom/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

var errNoTerminal = errors.New("browse needs an interactive terminal")

func runBrowse(args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("browse", "[options]", stderr)
	var c common
	c.register(fs)
	configPath := fs.String("config", "", "configuration to browse (default: all defaults)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if !isTerminal(stdout) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return fail(stderr, errNoTerminal)
	}

	stop, err := c.start(stderr)
	if err != nil {
		return fail(stderr, err)
	}
	defer stop()

	var r *config.Resolved
	title := "defaults"
	if *configPath != "" {
		r, err = compile(*configPath, c.bounds)
		title = *configPath
	} else {
		r, err = config.Resolve(schema.Build(c.bounds), config.NewRaw())
	}
	if err != nil {
		return fail(stderr, err)
	}

	p := tea.NewProgram(newBrowseModel(title, optionRows(r)), tea.WithAltScreen(), tea.WithOutput(stdout))
	if _, err := p.Run(); err != nil {
		return fail(stderr, err)
	}
	return 0
}

// optionRow is one visible option and its resolved value.
type optionRow struct {
	id     string
	prompt string
	value  string
	help   string
}

// optionRows lists the options visible under r in schema order.
func optionRows(r *config.Resolved) []optionRow {
	var rows []optionRow
	_ = r.Tree().WalkVisible(r, func(o *schema.Option) error {
		v, ok := r.Lookup(o.ID)
		if !ok {
			return nil
		}
		prompt := o.Prompt
		if prompt == "" {
			prompt = o.Name
		}
		rows = append(rows, optionRow{id: o.ID, prompt: prompt, value: displayValue(v), help: o.Help})
		return nil
	})
	return rows
}

func displayValue(v config.Value) string {
	switch v.Kind {
	case schema.KindBool:
		if v.Int != 0 {
			return "y"
		}
		return "n"
	case schema.KindString:
		return strconv.Quote(v.Str)
	case schema.KindHex:
		return fmt.Sprintf("0x%x", v.Int)
	case schema.KindChoice:
		return v.Choice.String()
	default:
		return strconv.FormatInt(v.Int, 10)
	}
}

type browseModel struct {
	title    string
	rows     []optionRow
	matches  []int // indexes into rows passing the filter
	filter   textinput.Model
	selected int // index into matches
	offset   int // first match shown
	height   int // list lines that fit the window
	detail   bool
}

func newBrowseModel(title string, rows []optionRow) *browseModel {
	ti := textinput.New()
	ti.Placeholder = "jump to option"
	ti.Prompt = "/ "
	ti.Width = 40
	ti.Focus()

	m := &browseModel{title: title, rows: rows, filter: ti, height: 20}
	m.refilter()
	return m
}

func (m *browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(1, msg.Height-8)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if m.filter.Value() == "" {
				return m, tea.Quit
			}
			m.filter.SetValue("")
			m.refilter()
			return m, nil

		case "up", "ctrl+p":
			m.move(-1)
			return m, nil

		case "down", "ctrl+n":
			m.move(1)
			return m, nil

		case "pgup":
			m.move(-m.height)
			return m, nil

		case "pgdown":
			m.move(m.height)
			return m, nil

		case "enter":
			m.detail = !m.detail
			return m, nil
		}
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// refilter recomputes the matches for the current filter text, matching
// option ids and prompts without regard to case.
func (m *browseModel) refilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.matches = m.matches[:0]
	for i, r := range m.rows {
		if q == "" || strings.Contains(strings.ToLower(r.id), q) ||
			strings.Contains(strings.ToLower(r.prompt), q) {
			m.matches = append(m.matches, i)
		}
	}
	m.selected = 0
	m.offset = 0
}

func (m *browseModel) move(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.selected = max(0, min(len(m.matches)-1, m.selected+delta))
	m.scroll()
}

// scroll keeps the selection inside the visible window.
func (m *browseModel) scroll() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
}

// current returns the selected row, if any.
func (m *browseModel) current() (optionRow, bool) {
	if len(m.matches) == 0 {
		return optionRow{}, false
	}
	return m.rows[m.matches[m.selected]], true
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("USB Descriptors"))
	b.WriteString(" ")
	b.WriteString(m.title)
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(helpStyle.Render("no matching options"))
		b.WriteString("\n")
	}
	end := min(len(m.matches), m.offset+m.height)
	for i := m.offset; i < end; i++ {
		r := m.rows[m.matches[i]]
		if i == m.selected {
			b.WriteString(selectedStyle.Render(fmt.Sprintf("> %-40s %s", r.id, r.value)))
		} else {
			b.WriteString("  " + idStyle.Render(fmt.Sprintf("%-40s", r.id)) + " " + valueStyle.Render(r.value))
		}
		b.WriteString("\n")
	}

	if r, ok := m.current(); ok && m.detail {
		b.WriteString("\n")
		b.WriteString(r.prompt)
		b.WriteString("\n")
		if r.help != "" {
			b.WriteString(helpStyle.Render(r.help))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d/%d • ↑/↓ select • enter details • esc clear/quit",
		len(m.matches), len(m.rows))))
	return b.String()
}
