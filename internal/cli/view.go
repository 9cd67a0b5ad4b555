package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/lukaschristensson/TimeLinePlot/pkg/io"
	"github.com/lukaschristensson/TimeLinePlot/pkg/pipeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/layout"
	"github.com/lukaschristensson/TimeLinePlot/pkg/render/timeline/sink"
	"github.com/lukaschristensson/TimeLinePlot/pkg/timeline/entry"
)

const (
	// chromeRows are the title bar and the help line.
	chromeRows = 2

	// scrollStep is how many cells one arrow key moves the window.
	scrollStep = 4
)

// viewOpts holds the command-line flags for the view command.
type viewOpts struct {
	theme         string
	config        string
	title         string
	timelineWidth float64
	from          string
	to            string
}

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	opts := viewOpts{timelineWidth: pipeline.DefaultWidth}

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Scroll through a timeline in the terminal",
		Long: `Draw a timeline into the terminal and scroll across it.

Keys: ←/→ or h/l scroll, PgUp/PgDn page, Home/End jump, q quits.
The timeline is drawn at least --timeline-width pixels wide; themes with
scrollable = false fit it to the window instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.theme, "theme", pipeline.DefaultTheme, "style preset: classic, dark")
	cmd.Flags().StringVar(&opts.config, "config", "", "TOML theme file (overrides --theme)")
	cmd.Flags().StringVar(&opts.title, "title", "", "window title (default: the file name)")
	cmd.Flags().Float64Var(&opts.timelineWidth, "timeline-width", opts.timelineWidth, "minimum timeline width in pixels")
	cmd.Flags().StringVar(&opts.from, "from", "", "left end of the time axis")
	cmd.Flags().StringVar(&opts.to, "to", "", "right end of the time axis")

	return cmd
}

func runView(ctx context.Context, input string, opts viewOpts) error {
	records, err := io.Load(ctx, input)
	if err != nil {
		return err
	}
	entries, err := entry.Normalize(records)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.theme, opts.config)
	if err != nil {
		return err
	}

	var layoutOpts []layout.Option
	from, err := parseBound("--from", opts.from)
	if err != nil {
		return err
	}
	if from != nil {
		layoutOpts = append(layoutOpts, layout.WithFarLeft(*from))
	}
	to, err := parseBound("--to", opts.to)
	if err != nil {
		return err
	}
	if to != nil {
		layoutOpts = append(layoutOpts, layout.WithFarRight(*to))
	}

	title := opts.title
	if title == "" {
		title = filepath.Base(input)
	}

	m := newViewModel(entries, cfg, title, opts.timelineWidth, layoutOpts...)
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// =============================================================================
// viewModel - Interactive timeline viewer
// =============================================================================

// viewModel draws the timeline onto a terminal surface and shows a window
// of it. The surface is redrawn whenever the window size changes.
type viewModel struct {
	entries       []entry.Entry
	cfg           timeline.Config
	layoutOpts    []layout.Option
	title         string
	timelineWidth float64
	pixelHeight   float64

	term   *sink.Terminal
	cols   int
	rows   int
	offset int
	err    error
}

func newViewModel(entries []entry.Entry, cfg timeline.Config, title string, timelineWidth float64, opts ...layout.Option) viewModel {
	return viewModel{
		entries:       entries,
		cfg:           cfg,
		layoutOpts:    opts,
		title:         title,
		timelineWidth: timelineWidth,
		pixelHeight:   pipeline.DefaultHeight,
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = max(1, msg.Height-chromeRows)
		m.redraw()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.scrollTo(m.offset - scrollStep)
		case "right", "l":
			m.scrollTo(m.offset + scrollStep)
		case "pgup":
			m.scrollTo(m.offset - m.cols)
		case "pgdown", " ":
			m.scrollTo(m.offset + m.cols)
		case "home":
			m.scrollTo(0)
		case "end":
			m.scrollTo(m.totalColumns())
		}
	}
	return m, nil
}

// redraw paints the timeline on a surface sized for the current window:
// as wide as the window, or the timeline width if that is wider and the
// theme allows scrolling.
func (m *viewModel) redraw() {
	width := m.windowPixels()
	if m.cfg.Scrollable {
		width = max(width, m.timelineWidth)
	}
	m.term = sink.NewTerminal(int(width), int(m.pixelHeight))
	if _, err := timeline.Draw(m.term, m.entries, m.cfg, m.layoutOpts...); err != nil {
		m.err = err
	} else {
		m.err = m.term.Err()
	}
	m.scrollTo(m.offset)
}

// windowPixels is the window width in surface pixels. Each cell shows two
// vertically stacked pixels of the downscaled surface.
func (m viewModel) windowPixels() float64 {
	return float64(m.cols) * m.pixelHeight / float64(2*m.rows)
}

func (m *viewModel) scrollTo(offset int) {
	if m.term == nil || !m.cfg.Scrollable {
		m.offset = 0
		return
	}
	m.offset = m.term.ClampOffset(offset, m.cols, m.rows)
}

func (m viewModel) totalColumns() int {
	if m.term == nil {
		return 0
	}
	return m.term.Columns(m.rows)
}

func (m viewModel) View() string {
	if m.term == nil {
		return "Loading…"
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')
	if m.err != nil {
		body := lipgloss.NewStyle().Width(m.cols).Height(m.rows).
			Render(styleIconError.Render(iconError) + " " + m.err.Error())
		b.WriteString(body)
	} else {
		b.WriteString(m.term.View(m.offset, m.cols, m.rows))
	}
	b.WriteByte('\n')
	b.WriteString(m.footer())
	return b.String()
}

// header is the title bar: the title on the left, the scroll position on
// the right, the title truncated to fit.
func (m viewModel) header() string {
	pos := ""
	if total := m.totalColumns(); m.cfg.Scrollable && total > m.cols {
		pos = fmt.Sprintf(" %d%%", 100*m.offset/max(1, total-m.cols))
	}
	title := runewidth.Truncate(m.title, max(0, m.cols-runewidth.StringWidth(pos)), "…")
	gap := max(0, m.cols-runewidth.StringWidth(title)-runewidth.StringWidth(pos))
	return StyleTitle.Render(title) + strings.Repeat(" ", gap) + StyleDim.Render(pos)
}

func (m viewModel) footer() string {
	help := "q quit"
	if m.cfg.Scrollable {
		help = "←/→ scroll  PgUp/PgDn page  Home/End jump  q quit"
	}
	return StyleDim.Render(runewidth.Truncate(help, m.cols, "…"))
}
