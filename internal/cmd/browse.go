package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	tty "github.com/mattn/go-tty"
	"github.com/qawatake/md2jira/internal/derrors"
	"github.com/qawatake/md2jira/internal/document"
	"github.com/qawatake/md2jira/internal/ui"
	"github.com/qawatake/md2jira/pkg/markdown"
	"github.com/spf13/cobra"
)

var browseFlags struct {
	out string
}

var browseCmd = &cobra.Command{
	Use:   "browse [dir]",
	Short: "Browse Markdown files and their Jira markup side by side",
	Long: `Browse the Markdown files under a directory. The selected file is shown
rendered next to its Jira markup. Type to filter, Tab to mark files, Enter
to write <name>.jira for the marked files (or the selected one), Esc to quit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		defer derrors.Wrap(&err)

		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		files, err := findMarkdownFiles(root)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			printWarn(cmd.ErrOrStderr(), "no Markdown files under %s", root)
			return nil
		}
		srcs, err := readSources(files, nil)
		if err != nil {
			return err
		}

		t, err := tty.Open()
		if err != nil {
			return err
		}
		defer t.Close()

		model, err := newBrowseModel(srcs, markdownOptions())
		if err != nil {
			return err
		}
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(t.Input()), tea.WithOutput(t.Output()))
		final, err := p.Run()
		if err != nil {
			return err
		}

		m := final.(*browseModel)
		if m.cancelled {
			return nil
		}
		chosen := m.chosen()
		if len(chosen) == 0 {
			return nil
		}
		results, err := ui.WithSpinnerValue("Converting...", func() ([]*converted, error) {
			return convertSources(cmd.Context(), chosen, false, 0, markdownOptions())
		})
		if err != nil {
			return err
		}
		return writeResults(cmd.ErrOrStderr(), results, browseFlags.out)
	},
}

var (
	browseBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63"))

	browseSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("57")).
				Foreground(lipgloss.Color("230"))

	browseTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))
)

type browseItem struct {
	src    source
	title  string
	body   string
	markup string
}

type browseModel struct {
	input    textinput.Model
	renderer *glamour.TermRenderer
	opts     []markdown.Option

	items     []*browseItem
	filtered  []*browseItem
	marked    map[*browseItem]bool
	cursor    int
	width     int
	height    int
	cancelled bool
}

func newBrowseModel(srcs []source, opts []markdown.Option) (_ *browseModel, err error) {
	defer derrors.Wrap(&err)
	input := textinput.New()
	input.Prompt = "Filter: "
	input.Focus()

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithEmoji())
	if err != nil {
		return nil, err
	}

	items := make([]*browseItem, 0, len(srcs))
	for _, src := range srcs {
		item := &browseItem{src: src, body: src.Content}
		if doc, err := document.Parse(src.Content); err == nil {
			item.title = doc.Title
			item.body = doc.Markdown()
		}
		items = append(items, item)
	}

	return &browseModel{
		input:    input,
		renderer: renderer,
		opts:     opts,
		items:    items,
		filtered: items,
		marked:   make(map[*browseItem]bool),
	}, nil
}

func (m *browseModel) Init() tea.Cmd {
	return tea.Batch(tea.ClearScreen, textinput.Blink)
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			return m, tea.Quit
		case "tab":
			if item := m.current(); item != nil {
				m.marked[item] = !m.marked[item]
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

func (m *browseModel) filter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		m.filtered = m.items
	} else {
		m.filtered = nil
		for _, item := range m.items {
			if strings.Contains(strings.ToLower(item.src.Path), query) ||
				strings.Contains(strings.ToLower(item.title), query) ||
				strings.Contains(strings.ToLower(item.body), query) {
				m.filtered = append(m.filtered, item)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
}

func (m *browseModel) current() *browseItem {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return m.filtered[m.cursor]
}

func (m *browseModel) markedSources() []source {
	var srcs []source
	for _, item := range m.items {
		if m.marked[item] {
			srcs = append(srcs, item.src)
		}
	}
	return srcs
}

// chosen returns the marked sources, or the selected one when none is marked.
func (m *browseModel) chosen() []source {
	srcs := m.markedSources()
	if len(srcs) == 0 {
		if item := m.current(); item != nil {
			srcs = append(srcs, item.src)
		}
	}
	return srcs
}

func (m *browseModel) markupOf(item *browseItem) string {
	if item.markup == "" {
		res, err := document.Convert(item.src.Content, m.opts...)
		if err != nil {
			return err.Error()
		}
		item.markup = strings.TrimSpace(res.Markup)
	}
	return item.markup
}

func (m *browseModel) View() string {
	if m.width == 0 {
		m.width = 100
	}
	if m.height == 0 {
		m.height = 30
	}

	status := fmt.Sprintf("%d/%d files", len(m.filtered), len(m.items))
	if n := len(m.markedSources()); n > 0 {
		status += fmt.Sprintf(", %d marked", n)
	}
	help := faintStyle.Render("Tab: mark  Enter: write .jira  Esc: quit  " + status)
	header := lipgloss.JoinVertical(lipgloss.Left, m.input.View(), help)

	if len(m.filtered) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, faintStyle.Render("No files match"))
	}

	height := m.height - lipgloss.Height(header) - 2
	leftWidth := m.width / 4
	centerWidth := (m.width - leftWidth) / 2
	rightWidth := m.width - leftWidth - centerWidth

	pane := func(width int, content string) string {
		return browseBorderStyle.
			Width(width - 2).
			Height(height).
			Render(lipgloss.NewStyle().MaxHeight(height).Render(content))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		pane(leftWidth, m.renderList(leftWidth-2, height)),
		pane(centerWidth, m.renderMarkdown(centerWidth-2)),
		pane(rightWidth, m.renderMarkup(rightWidth-2, height)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m *browseModel) renderList(width, height int) string {
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	var lines []string
	for i := start; i < start+height && i < len(m.filtered); i++ {
		item := m.filtered[i]
		box := "[ ]"
		if m.marked[item] {
			box = "[✓]"
		}
		line := ansi.TruncateWc(box+" "+item.src.Path, width, "…")
		if i == m.cursor {
			line = browseSelectedStyle.Width(width).Render(line)
		} else {
			line = lipgloss.NewStyle().Width(width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *browseModel) renderMarkdown(width int) string {
	item := m.current()
	if item == nil {
		return ""
	}
	out, err := m.renderer.Render(item.body)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return item.body
	}
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(strings.TrimSpace(out))
}

func (m *browseModel) renderMarkup(width, height int) string {
	item := m.current()
	if item == nil {
		return ""
	}
	lines := strings.Split(m.markupOf(item), "\n")
	if len(lines) > height-1 {
		lines = lines[:height-1]
	}
	for i, line := range lines {
		lines[i] = ansi.TruncateWc(line, width, "…")
	}
	title := browseTitleStyle.Render("Jira markup")
	return title + "\n" + strings.Join(lines, "\n")
}

func init() {
	browseCmd.Flags().StringVarP(&browseFlags.out, "out", "o", "", "directory to write <name>.jira files into")
	rootCmd.AddCommand(browseCmd)
}
