package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pomo/internal/repository"
	"go.uber.org/zap"
)

// storeTimeout bounds a single count read or write issued by the engine.
const storeTimeout = 2 * time.Second

type sessionCounter struct {
	settings repository.SettingsRepo
	logger   *zap.Logger
	observer UseCaseObserver
}

// NewSessionCounter creates a SessionCounter over the settings store.
func NewSessionCounter(settings repository.SettingsRepo, logger *zap.Logger, observers ...UseCaseObserver) SessionCounter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sessionCounter{settings: settings, logger: logger, observer: useCaseObserverOrNoop(observers)}
}

func (c *sessionCounter) Count(ctx context.Context) (int, error) {
	n, err := c.settings.GetInt(ctx, repository.KeySessionsCompleted)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading completed sessions: %w", err)
	}
	if n < 0 {
		return 0, nil
	}
	return n, nil
}

func (c *sessionCounter) ResetCount(ctx context.Context) (err error) {
	defer observe(ctx, c.observer, "reset-session-count", time.Now().UTC(), nil, &err)

	if err = c.settings.SetInt(ctx, repository.KeySessionsCompleted, 0); err != nil {
		return fmt.Errorf("resetting completed sessions: %w", err)
	}
	return nil
}

func (c *sessionCounter) LoadCompletedSessions() int {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	n, err := c.Count(ctx)
	if err != nil {
		c.logger.Warn("could not load completed sessions, starting from zero", zap.Error(err))
		return 0
	}
	return n
}

func (c *sessionCounter) SaveCompletedSessions(n int) {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := c.settings.SetInt(ctx, repository.KeySessionsCompleted, n); err != nil {
		c.logger.Warn("could not save completed sessions", zap.Int("count", n), zap.Error(err))
	}
}
