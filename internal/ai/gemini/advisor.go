package gemini

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/nextstep/internal/ai"
	"github.com/spigell/nextstep/internal/logger"
)

const (
	provider            = "gemini"
	defaultMaxLogLength = 200
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	Model() string
}

// Advisor implements ai.Capability on top of a Gemini generator.
type Advisor struct {
	generator contentGenerator
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

var _ ai.Capability = (*Advisor)(nil)

// NewAdvisor wraps generator. A positive timeout bounds every model call.
func NewAdvisor(generator contentGenerator, timeout time.Duration, maxLogLength int, log *zap.Logger) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	model := ""
	if generator != nil {
		model = generator.Model()
	}

	return &Advisor{
		generator: generator,
		timeout:   timeout,
		maxLogLen: maxLogLength,
		logger:    logger.WithCommonFields(log, provider, model),
	}
}

// Available reports whether the advisor can reach a model.
func (a *Advisor) Available() bool {
	return a != nil && a.generator != nil
}

// generate runs one model call. Failures, including timeouts, wrap ai.ErrProviderCall.
func (a *Advisor) generate(ctx context.Context, stage, prompt string, schema *genai.Schema) (string, error) {
	if !a.Available() {
		return "", ai.ErrUnavailable
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	a.logger.Debug("gemini generate content request",
		zap.String(logger.FieldStage, stage),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.Truncate(prompt, a.maxLogLen)),
	)

	started := time.Now()
	raw, err := a.generator.GenerateContent(ctx, prompt, schema)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", stage, ai.ErrProviderCall, err)
	}

	a.logger.Debug("gemini generate content response",
		zap.String(logger.FieldStage, stage),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.Truncate(raw, a.maxLogLen)),
	)

	return raw, nil
}
