package demo

import "context"

// Presenter renders state and collects choices. It is implemented by the terminal UI.
type Presenter interface {
	// Choose presents choices and returns the index the user picked.
	// It returns io.EOF when input is exhausted.
	Choose(ctx context.Context, prompt string, choices []string, defaultIndex int) (int, error)
	// Status reports a one-line progress message.
	Status(ctx context.Context, msg string)
	// Error reports a flow failure.
	Error(ctx context.Context, err error)
	// Result shows the output of a flow, such as a key listing.
	Result(ctx context.Context, title, body string)
}
