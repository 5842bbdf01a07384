package demo_test

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// scriptedPresenter answers prompts from a list of labels and records everything it is shown.
type scriptedPresenter struct {
	mu       sync.Mutex
	answers  []string
	prompts  []string
	statuses []string
	errors   []error
	results  map[string]string
}

func newPresenter(answers ...string) *scriptedPresenter {
	return &scriptedPresenter{answers: answers, results: make(map[string]string)}
}

func (p *scriptedPresenter) Choose(ctx context.Context, prompt string, choices []string, defaultIndex int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.prompts = append(p.prompts, prompt)
	if len(p.answers) == 0 {
		return 0, io.EOF
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	if answer == "" {
		return defaultIndex, nil
	}
	for i, c := range choices {
		if c == answer {
			return i, nil
		}
	}
	return 0, fmt.Errorf("answer %q not among %v", answer, choices)
}

func (p *scriptedPresenter) Status(ctx context.Context, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.statuses = append(p.statuses, msg)
}

func (p *scriptedPresenter) Error(ctx context.Context, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors = append(p.errors, err)
}

func (p *scriptedPresenter) Result(ctx context.Context, title, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results[title] = body
}
