package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"chronicle/internal/modules/narrative/domain"
	narrativeout "chronicle/internal/modules/narrative/port/out"
	"chronicle/internal/platform/locale"
	"chronicle/internal/platform/logging"
)

const (
	opNarrate    = "narrate"
	opTranslate  = "translate"
	opPortrait   = "portrait"
	opStoryboard = "storyboard"
	opScene      = "scene"

	// Echoed translations of text longer than this are treated as failures.
	echoThreshold = 10
)

var errEchoed = errors.New("translation echoed the source text")

// NarrativeService makes one model call per operation and maps every failure
// to a typed fallback.
type NarrativeService struct {
	model   narrativeout.Model
	timeout time.Duration
	metrics *Metrics
	log     *zap.Logger
}

func NewNarrativeService(model narrativeout.Model, timeout time.Duration, metrics *Metrics, logger *zap.Logger) *NarrativeService {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &NarrativeService{model: model, timeout: timeout, metrics: metrics, log: logging.OrNop(logger)}
}

func (s *NarrativeService) Narrate(ctx context.Context, notes string, style domain.Style, lang locale.Language) domain.Outcome[string] {
	text, err := s.text(ctx, opNarrate, domain.NarrativePrompt(notes, style, lang))
	var out domain.Outcome[string]
	switch {
	case err != nil:
		out = domain.Degraded(domain.NarrativeFallback(lang, errors.Is(err, domain.ErrRateLimited)), err)
	case text == "":
		out = domain.Degraded(domain.SilentFallback(lang), domain.ErrEmptyResponse)
	default:
		out = domain.OK(text)
	}
	return s.finish(opNarrate, out)
}

// Translate returns the source text unchanged when translation fails, marked
// degraded so callers can decide not to cache it.
func (s *NarrativeService) Translate(ctx context.Context, text string, target locale.Language) domain.Outcome[string] {
	if strings.TrimSpace(text) == "" {
		return domain.Degraded(text, domain.ErrEmptyResponse)
	}
	translated, err := s.text(ctx, opTranslate, domain.TranslationPrompt(text, target))
	var out domain.Outcome[string]
	switch {
	case err != nil:
		out = domain.Degraded(text, err)
	case translated == "":
		out = domain.Degraded(text, domain.ErrEmptyResponse)
	case translated == text && len(text) > echoThreshold:
		out = domain.Degraded(text, errEchoed)
	default:
		out = domain.OK(translated)
	}
	return s.finish(opTranslate, out)
}

func (s *NarrativeService) Portrait(ctx context.Context, figure domain.Figure, style domain.Style, instructions string) domain.Outcome[string] {
	return s.image(ctx, opPortrait, domain.PortraitPrompt(figure, style, instructions))
}

// Storyboard refuses to call the model for a character without a backstory.
func (s *NarrativeService) Storyboard(ctx context.Context, figure domain.Figure, style domain.Style) domain.Outcome[string] {
	if strings.TrimSpace(figure.BackgroundStory) == "" {
		return domain.Failed[string](domain.ErrNoBackstory)
	}
	return s.image(ctx, opStoryboard, domain.StoryboardPrompt(figure, style))
}

func (s *NarrativeService) Scene(ctx context.Context, story string, figures []domain.Figure, style domain.Style) domain.Outcome[string] {
	return s.image(ctx, opScene, domain.ScenePrompt(story, figures, style))
}

func (s *NarrativeService) text(ctx context.Context, op, prompt string) (string, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	started := time.Now()
	text, err := s.model.GenerateText(ctx, prompt)
	s.metrics.Duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	return strings.TrimSpace(text), err
}

func (s *NarrativeService) image(ctx context.Context, op, prompt string) domain.Outcome[string] {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	started := time.Now()
	img, err := s.model.GenerateImage(ctx, prompt)
	s.metrics.Duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	switch {
	case err != nil:
		return s.finish(op, domain.Failed[string](err))
	case len(img.Data) == 0:
		return s.finish(op, domain.Failed[string](domain.ErrNoImage))
	default:
		return s.finish(op, domain.OK(img.Handle()))
	}
}

func (s *NarrativeService) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *NarrativeService) finish(op string, out domain.Outcome[string]) domain.Outcome[string] {
	s.metrics.Requests.WithLabelValues(op, string(out.Status)).Inc()
	if out.Status != domain.StatusOK {
		s.log.Warn("generation degraded",
			zap.String("operation", op),
			zap.String("status", string(out.Status)),
			zap.Error(out.Cause),
		)
	}
	return out
}
