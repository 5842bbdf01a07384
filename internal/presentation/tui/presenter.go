package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Presenter is a line based terminal UI. It prints numbered choices and reads the answer
// as a number, a label, or an empty line for the default.
type Presenter struct {
	reader   *bufio.Reader
	writer   io.Writer
	out      *termenv.Output
	renderer Renderer
	maxInput int

	requests  chan struct{}
	lines     chan line
	pending   bool
	startOnce sync.Once
}

type line struct {
	text string
	err  error
}

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithColor forces colored output on or off.
func WithColor(enabled bool) PresenterOption {
	return func(p *Presenter) {
		profile := termenv.Ascii
		if enabled {
			profile = termenv.TrueColor
		}
		p.out = termenv.NewOutput(p.writer, termenv.WithProfile(profile))
	}
}

// WithRenderer renders flow results as markdown.
func WithRenderer(r Renderer) PresenterOption {
	return func(p *Presenter) {
		p.renderer = r
	}
}

// WithMaxInputSize bounds the length of an answer.
func WithMaxInputSize(n int) PresenterOption {
	return func(p *Presenter) {
		p.maxInput = n
	}
}

// NewPresenter creates a Presenter reading r and writing w. Nil values default to the
// process stdin and stdout. Colors follow the terminal capabilities of w.
func NewPresenter(r io.Reader, w io.Writer, opts ...PresenterOption) *Presenter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	p := &Presenter{
		reader:   bufio.NewReader(r),
		writer:   w,
		maxInput: DefaultMaxInputSize,
	}
	if IsTerminal(w) {
		p.out = termenv.NewOutput(w)
	} else {
		p.out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Output exposes the termenv output, e.g. for the banner.
func (p *Presenter) Output() *termenv.Output {
	return p.out
}

// pump reads one line per request so the reader is left alone while child
// processes such as an interactive login own the terminal.
func (p *Presenter) pump() {
	for range p.requests {
		text, err := p.reader.ReadString('\n')
		if text != "" {
			p.lines <- line{text: text}
			continue
		}
		p.lines <- line{err: err}
	}
}

func (p *Presenter) readLine(ctx context.Context) (string, error) {
	p.startOnce.Do(func() {
		p.requests = make(chan struct{}, 1)
		p.lines = make(chan line, 1)
		go p.pump()
	})

	if !p.pending {
		p.requests <- struct{}{}
		p.pending = true
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-p.lines:
		p.pending = false
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// Choose prints the prompt and choices and blocks until a valid answer is read.
// Invalid answers are reported and asked again.
func (p *Presenter) Choose(ctx context.Context, prompt string, choices []string, defaultIndex int) (int, error) {
	if len(choices) == 0 {
		return 0, fmt.Errorf("no choices for %q", prompt)
	}

	fmt.Fprintln(p.writer, p.out.String("? "+prompt).Bold())
	for i, c := range choices {
		marker := "  "
		if i == defaultIndex {
			marker = p.out.String("> ").Foreground(p.out.Color("#22d3ee")).String()
		}
		fmt.Fprintf(p.writer, "%s%d) %s\n", marker, i+1, c)
	}

	for {
		fmt.Fprint(p.writer, "> ")
		text, err := p.readLine(ctx)
		if err != nil {
			return 0, err
		}
		answer, err := SanitizeInput(text, p.maxInput)
		if err != nil {
			p.Error(ctx, err)
			continue
		}
		if idx, ok := matchChoice(answer, choices, defaultIndex); ok {
			return idx, nil
		}
		fmt.Fprintf(p.writer, "Please answer 1-%d or one of the names above.\n", len(choices))
	}
}

func matchChoice(answer string, choices []string, defaultIndex int) (int, bool) {
	if answer == "" {
		return defaultIndex, defaultIndex >= 0 && defaultIndex < len(choices)
	}
	if n, err := strconv.Atoi(answer); err == nil {
		return n - 1, n >= 1 && n <= len(choices)
	}
	for i, c := range choices {
		if strings.EqualFold(c, answer) {
			return i, true
		}
	}
	return 0, false
}

// Status prints a progress line.
func (p *Presenter) Status(ctx context.Context, msg string) {
	fmt.Fprintln(p.writer, p.out.String(msg).Foreground(p.out.Color("#a78bfa")))
}

// Error prints a flow failure.
func (p *Presenter) Error(ctx context.Context, err error) {
	fmt.Fprintln(p.writer, p.out.String("Error: "+err.Error()).Foreground(p.out.Color("#f87171")))
}

// Result prints a titled block, rendered as markdown when a renderer is set.
func (p *Presenter) Result(ctx context.Context, title, body string) {
	md := ResultMarkdown(title, body)
	if p.renderer != nil {
		if rendered, err := p.renderer(md); err == nil {
			fmt.Fprintln(p.writer, strings.TrimRight(rendered, "\n"))
			return
		}
	}
	fmt.Fprint(p.writer, md)
}
