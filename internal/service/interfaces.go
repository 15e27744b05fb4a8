package service

import "context"

// Fragment is one incremental piece of a streamed completion. A non-nil Err
// terminates the stream; the channel is closed right after it is delivered.
type Fragment struct {
	Text string
	Err  error
}

// CompletionService is the boundary the handlers depend on for LLM calls.
type CompletionService interface {
	// Complete returns the full completion text for the prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteStream returns an ordered, finite sequence of completion
	// fragments. The channel is closed when the completion finishes, the
	// upstream fails, or ctx is cancelled; it is never restartable.
	CompleteStream(ctx context.Context, prompt string) (<-chan Fragment, error)
}
