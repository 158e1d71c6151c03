package core

import "context"

// TextGenerator is an external text-generation service
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
