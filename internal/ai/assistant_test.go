package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spigell/nextstep/internal/profile"
)

func TestUnavailable(t *testing.T) {
	c := Unavailable()
	if c.Available() {
		t.Fatalf("expected capability to be unavailable")
	}

	partial, err := c.ExtractProfile(context.Background(), "text")
	if partial != nil || !errors.Is(err, ErrUnavailable) {
		t.Fatalf("unexpected extract result: %v, %v", partial, err)
	}

	set, err := c.RankCareers(context.Background(), profile.Profile{})
	if set != nil || !errors.Is(err, ErrUnavailable) {
		t.Fatalf("unexpected rank result: %v, %v", set, err)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: ErrUnavailable, want: "capability_unavailable"},
		{err: fmt.Errorf("generate content: %w", ErrProviderCall), want: "provider_call_failure"},
		{err: fmt.Errorf("wait: %w", context.DeadlineExceeded), want: "provider_call_failure"},
		{err: fmt.Errorf("decode: %w", ErrMalformedOutput), want: "malformed_output"},
		{err: errors.New("other"), want: "unknown"},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Fatalf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
