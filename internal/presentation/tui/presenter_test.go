package tui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var chains = []string{"Ethereum", "Solana", "Near", "Quit"}

func newTestPresenter(input string, opts ...PresenterOption) (*Presenter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPresenter(strings.NewReader(input), &out, opts...), &out
}

func TestPresenter_Choose(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"Empty Line Picks Default", "\n", 2},
		{"Number", "1\n", 0},
		{"Label Case Insensitive", "solana\n", 1},
		{"Retry After Invalid", "9\nfoo\n4\n", 3},
		{"Last Line Without Newline", "2", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPresenter(tt.input)
			got, err := p.Choose(context.Background(), "Which chain?", chains, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPresenter_ChoosePrintsMenu(t *testing.T) {
	p, out := newTestPresenter("x\n3\n")

	_, err := p.Choose(context.Background(), "Which chain?", chains, 2)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "? Which chain?")
	assert.Contains(t, text, "> 3) Near")
	assert.Contains(t, text, "  1) Ethereum")
	assert.Contains(t, text, "Please answer 1-4")
	assert.NotContains(t, text, "\x1b[", "non-terminal output must be plain")
}

func TestPresenter_ChooseEOF(t *testing.T) {
	p, _ := newTestPresenter("")
	_, err := p.Choose(context.Background(), "Which chain?", chains, 2)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPresenter_ChooseCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	p := NewPresenter(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Choose(ctx, "Which chain?", chains, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPresenter_ChooseRejectsOversizedAnswer(t *testing.T) {
	p, out := newTestPresenter(strings.Repeat("a", 20)+"\n1\n", WithMaxInputSize(10))

	got, err := p.Choose(context.Background(), "Which chain?", chains, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
	assert.Contains(t, out.String(), ErrInputTooLarge.Error())
}

func TestPresenter_StatusAndError(t *testing.T) {
	p, out := newTestPresenter("")

	p.Status(context.Background(), "near-cli is installed")
	p.Error(context.Background(), errors.New("boom"))

	assert.Equal(t, "near-cli is installed\nError: boom\n", out.String())
}

func TestPresenter_ColorForced(t *testing.T) {
	p, out := newTestPresenter("", WithColor(true))

	p.Status(context.Background(), "hi")
	assert.Contains(t, out.String(), "\x1b[")
}

func TestPresenter_Result(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		p, out := newTestPresenter("")
		p.Result(context.Background(), "Keys for bob.testnet", "key-1\nkey-2\n")
		assert.Equal(t, "## Keys for bob.testnet\n\n```\nkey-1\nkey-2\n```\n", out.String())
	})

	t.Run("Rendered", func(t *testing.T) {
		var seen string
		render := func(md string) (string, error) {
			seen = md
			return "RENDERED\n\n", nil
		}
		p, out := newTestPresenter("", WithRenderer(render))
		p.Result(context.Background(), "Keys", "k")
		assert.Equal(t, "RENDERED\n", out.String())
		assert.Contains(t, seen, "## Keys")
	})

	t.Run("Renderer Error Falls Back", func(t *testing.T) {
		render := func(string) (string, error) { return "", errors.New("bad style") }
		p, out := newTestPresenter("", WithRenderer(render))
		p.Result(context.Background(), "Keys", "")
		assert.Equal(t, "## Keys\n\n_no output_\n", out.String())
	})
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Normal", "Near", "Near", nil},
		{"Strips Escape", "\x1b[31mNear", "[31mNear", nil},
		{"Keeps Tab", "a\tb", "a\tb", nil},
		{"Invalid UTF8", "\xff", "", ErrInvalidUTF8},
		{"Too Large", strings.Repeat("x", DefaultMaxInputSize+1), "", ErrInputTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input, 0)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResultMarkdownRendersWithGlamour(t *testing.T) {
	r, err := NewRenderer(80)
	require.NoError(t, err)

	out, err := r(ResultMarkdown("Keys for bob.testnet", "ed25519:abc"))
	require.NoError(t, err)
	assert.Contains(t, out, "Keys for bob.testnet")
	assert.Contains(t, out, "ed25519:abc")
}

func TestPrintBanner(t *testing.T) {
	p, out := newTestPresenter("")
	PrintBanner(out, p.Output())
	assert.Contains(t, out.String(), "Blockchain CLI demos")
	assert.NotContains(t, out.String(), "\x1b[")
}
