package art

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"healthart-backend/internal/llm"
	"healthart-backend/internal/sessions"
	"healthart-backend/internal/shared/metrics"
	"healthart-backend/internal/shared/telemetry"
	"healthart-backend/internal/whoop"
)

// Service generates health art for a logged-in session.
type Service struct {
	Whoop    *whoop.ClientFactory
	Sessions *sessions.Store
	Image    llm.ImageClient
	Metrics  *metrics.Metrics
	Size     string
	Quality  string
}

// RecoveryScore fetches the user's latest recovery score.
func (s *Service) RecoveryScore(ctx context.Context, sess *sessions.Session) (float64, error) {
	rec, err := s.clientFor(sess).LatestRecovery(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRecoveryUnavailable, err)
	}
	return rec.Score, nil
}

// Generate fetches the user's metrics, builds a prompt, and requests one
// image. It returns the base64 payload, which is empty when the provider
// produced no image. The provider is called exactly once; failures are
// surfaced, not retried.
func (s *Service) Generate(ctx context.Context, sess *sessions.Session) (string, error) {
	client := s.clientFor(sess)

	rec, err := client.LatestRecovery(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRecoveryUnavailable, err)
	}

	prompt := BuildPrompt(rec.Score, s.collectMetrics(ctx, client, rec))

	if s.Metrics != nil {
		s.Metrics.ArtStarted.Inc()
	}
	start := time.Now()
	image, err := s.Image.GenerateImage(ctx, llm.GenerateInput{
		Prompt:  prompt,
		Size:    s.Size,
		Quality: s.Quality,
	})
	if err != nil {
		if s.Metrics != nil {
			s.Metrics.ArtFailed.Inc()
		}
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if s.Metrics != nil {
		s.Metrics.ArtCompleted.Inc()
		s.Metrics.ArtDuration.Observe(float64(time.Since(start).Milliseconds()))
	}
	return image, nil
}

// collectMetrics gathers optional prompt metrics. Each fetch is best
// effort; a miss just leaves the clause out, as the original score-only
// prompt remains valid.
func (s *Service) collectMetrics(ctx context.Context, client *whoop.Client, rec whoop.Recovery) Metrics {
	var m Metrics

	if rec.HRVMilli > 0 {
		hrv := rec.HRVMilli
		m.HRV = &hrv
	}

	if sleep, err := client.LatestSleepPerformance(ctx); err == nil {
		m.SleepQuality = &sleep
	} else {
		telemetry.Info("art.metric_skipped", map[string]any{"metric": "sleep_quality", "error": err.Error()})
	}

	if strain, err := client.LatestStrain(ctx); err == nil {
		m.Strain = &strain
	} else {
		telemetry.Info("art.metric_skipped", map[string]any{"metric": "strain", "error": err.Error()})
	}

	return m
}

func (s *Service) clientFor(sess *sessions.Session) *whoop.Client {
	sessionID := sess.ID
	return s.Whoop.ForToken(sess.Token, func(token *oauth2.Token) {
		s.Sessions.UpdateToken(sessionID, token)
	})
}
