package interfaces

import "context"

// Generator turns a prompt into natural-language commentary via a
// single-turn, stateless text-generation backend.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
