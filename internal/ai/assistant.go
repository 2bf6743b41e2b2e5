package ai

import (
	"context"
	"errors"

	"github.com/spigell/nextstep/internal/career"
	"github.com/spigell/nextstep/internal/profile"
)

var (
	// ErrUnavailable is returned when no language model is configured.
	ErrUnavailable = errors.New("language model capability is unavailable")
	// ErrProviderCall covers network, auth, quota and timeout failures.
	ErrProviderCall = errors.New("language model call failed")
	// ErrMalformedOutput is returned when the response does not fit the expected shape.
	ErrMalformedOutput = errors.New("language model returned malformed output")
)

// Capability is the optional language model used by the pipeline. It is built
// once at startup; callers check Available before relying on it and treat any
// returned error as "no data" for that stage.
type Capability interface {
	Available() bool
	ExtractProfile(ctx context.Context, text string) (*profile.Partial, error)
	RankCareers(ctx context.Context, p profile.Profile) (career.Set, error)
}

type unavailable struct{}

// Unavailable returns a Capability that never calls out and reports ErrUnavailable.
func Unavailable() Capability { return unavailable{} }

func (unavailable) Available() bool { return false }

func (unavailable) ExtractProfile(context.Context, string) (*profile.Partial, error) {
	return nil, ErrUnavailable
}

func (unavailable) RankCareers(context.Context, profile.Profile) (career.Set, error) {
	return nil, ErrUnavailable
}

// Kind returns a short label for err suitable for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnavailable):
		return "capability_unavailable"
	case errors.Is(err, ErrMalformedOutput):
		return "malformed_output"
	case errors.Is(err, ErrProviderCall), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "provider_call_failure"
	default:
		return "unknown"
	}
}
