// Package generate wraps the external text-generation model.
package generate

import (
	"context"
	"strings"
)

// StopMarker truncates the completion when the model starts reproducing
// the prompt's own section markers.
const StopMarker = "###"

// Generator is the black-box generation contract: one prompt in, one
// completion out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TruncateAtStop cuts the completion at the first stop marker and trims
// surrounding whitespace. The stop word is also passed to the model, so
// this only matters for backends that echo it back.
func TruncateAtStop(completion string) string {
	if i := strings.Index(completion, StopMarker); i >= 0 {
		completion = completion[:i]
	}
	return strings.TrimSpace(completion)
}
