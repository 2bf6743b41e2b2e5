// Package pipeline turns uploaded resume bytes into a profile and career
// recommendations. Every stage degrades to a fallback value instead of
// failing the request.
package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/nextstep/internal/ai"
	"github.com/spigell/nextstep/internal/career"
	"github.com/spigell/nextstep/internal/document"
	"github.com/spigell/nextstep/internal/heuristics"
	"github.com/spigell/nextstep/internal/logger"
	"github.com/spigell/nextstep/internal/profile"
)

const (
	stageExtractText    = "extract_text"
	stageExtractProfile = "extract_profile"
	stageRecommend      = "recommend_careers"
)

// Service runs the resume pipeline against an optional language model.
type Service struct {
	capability ai.Capability
	logger     *zap.Logger
}

// Analysis is the full outcome for one document.
type Analysis struct {
	Parsed          profile.Profile `json:"parsed"`
	Skills          []string        `json:"skills"`
	Recommendations career.Set      `json:"recommendations"`
}

// New creates a service. A nil capability behaves as ai.Unavailable.
func New(capability ai.Capability, log *zap.Logger) *Service {
	if capability == nil {
		capability = ai.Unavailable()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{capability: capability, logger: log}
}

// AIAvailable reports whether a language model is configured.
func (s *Service) AIAvailable() bool {
	return s.capability.Available()
}

// ParseDocument extracts text from content and builds a profile from it.
// Heuristics and model extraction run concurrently; model fields win when
// present. The call always returns a profile.
func (s *Service) ParseDocument(ctx context.Context, filename string, content []byte) profile.Profile {
	log := logger.WithFields(s.logger, logger.ContextFields(ctx)...)

	text, err := document.Extract(filename, content)
	if err != nil {
		log.Warn("text extraction degraded",
			append(logger.FallbackFields(stageExtractText, "corrupt_document", err),
				zap.String("filename", filename),
				zap.String("format", string(document.FormatOf(filename))),
			)...,
		)
	}

	var (
		found   heuristics.Result
		partial *profile.Partial
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		found = heuristics.Extract(text)
		return nil
	})

	if s.capability.Available() {
		g.Go(func() error {
			p, err := s.capability.ExtractProfile(gCtx, text)
			if err != nil {
				log.Warn("structured extraction fell back to heuristics",
					logger.FallbackFields(stageExtractProfile, ai.Kind(err), err)...,
				)
				return nil
			}
			partial = p
			return nil
		})
	}

	// Branches never return errors; failures are folded into fallbacks above.
	_ = g.Wait()

	merged := profile.Merge(found.Email, found.Phone, found.Skills, partial)

	log.Info("document parsed",
		zap.String("filename", filename),
		zap.Int("text_length", len(text)),
		zap.Bool("structured", partial != nil),
		zap.Int("skills", len(merged.Skills)),
	)

	return merged
}

// RecommendCareers ranks career paths for p. The result holds either exactly
// career.SetSize recommendations or none.
func (s *Service) RecommendCareers(ctx context.Context, p profile.Profile) career.Result {
	log := logger.WithFields(s.logger, logger.ContextFields(ctx)...)

	if !s.capability.Available() {
		log.Debug("skipping recommendations",
			logger.FallbackFields(stageRecommend, ai.Kind(ai.ErrUnavailable), nil)...,
		)
		return career.NewResult(p.Skills, nil)
	}

	set, err := s.capability.RankCareers(ctx, p)
	if err != nil {
		log.Warn("recommendations unavailable",
			logger.FallbackFields(stageRecommend, ai.Kind(err), err)...,
		)
		return career.NewResult(p.Skills, nil)
	}

	if len(set) != career.SetSize {
		log.Warn("recommendations discarded",
			append(logger.FallbackFields(stageRecommend, ai.Kind(ai.ErrMalformedOutput), nil),
				zap.Int("count", len(set)),
			)...,
		)
		return career.NewResult(p.Skills, nil)
	}

	log.Info("recommendations ready",
		zap.String("top_title", set[0].Title),
		zap.Int("top_probability", set[0].Probability),
	)

	return career.NewResult(p.Skills, set)
}

// Analyze parses the document and recommends careers for the resulting profile.
func (s *Service) Analyze(ctx context.Context, filename string, content []byte) Analysis {
	parsed := s.ParseDocument(ctx, filename, content)
	result := s.RecommendCareers(ctx, parsed)

	return Analysis{
		Parsed:          parsed,
		Skills:          result.Skills,
		Recommendations: result.Recommendations,
	}
}
