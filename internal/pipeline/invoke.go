package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/quizcraft/backend/internal/generate"
	"github.com/quizcraft/backend/internal/models"
)

// callAttempts bounds the transport-level retry around one capability
// invocation. This is separate from the validator's semantic retry
// loop: a timeout here re-sends the same request, a validation
// failure there asks for a different question.
const callAttempts = 2

// callGenerator wraps one generation-capability invocation with a
// per-call timeout and bounded retry. Timeouts of the call itself
// become CapabilityTimeoutError; a dead parent context is returned
// as-is so cancellation propagates untouched.
func callGenerator(ctx context.Context, gen generate.Generator, req generate.Request, timeout time.Duration) (*models.QuestionCandidate, error) {
	var lastErr error
	for attempt := 0; attempt < callAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		cand, err := gen.Generate(callCtx, req)
		cancel()
		if err == nil {
			return cand, nil
		}

		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			lastErr = &models.CapabilityTimeoutError{Capability: "generator", Err: err}
			continue
		}

		var capFailure *models.CapabilityFailureError
		if errors.As(err, &capFailure) {
			// Malformed output is a semantic gap; retrying the same
			// request verbatim rarely helps and burns the deadline.
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}
