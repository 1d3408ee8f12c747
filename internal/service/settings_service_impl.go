package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/pomo/internal/db"
	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/repository"
	"go.uber.org/zap"
)

type settingsService struct {
	settings repository.SettingsRepo
	uow      db.UnitOfWork
	logger   *zap.Logger
	observer UseCaseObserver

	mu       sync.RWMutex
	current  domain.Settings
	onChange []func(domain.Settings)
}

// NewSettingsService creates a SettingsService. Until Load is called it
// serves domain.DefaultSettings.
func NewSettingsService(settings repository.SettingsRepo, uow db.UnitOfWork, logger *zap.Logger, observers ...UseCaseObserver) SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &settingsService{
		settings: settings,
		uow:      uow,
		logger:   logger,
		observer: useCaseObserverOrNoop(observers),
		current:  domain.DefaultSettings(),
	}
}

type settingField struct {
	key string
	ptr *int
	min int
	max int
}

func fieldsOf(s *domain.Settings) []settingField {
	return []settingField{
		{repository.KeyFocusMinutes, &s.FocusMinutes, 1, domain.MaxMinutes},
		{repository.KeyShortBreakMinutes, &s.ShortBreakMinutes, 1, domain.MaxMinutes},
		{repository.KeyLongBreakMinutes, &s.LongBreakMinutes, 1, domain.MaxMinutes},
		{repository.KeyLongBreakInterval, &s.LongBreakInterval, 1, domain.MaxLongBreakInterval},
	}
}

func (s *settingsService) Load(ctx context.Context, defaults domain.Settings) (loaded domain.Settings, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "load-settings", startedAt, fields, &err)

	if err = defaults.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("default settings: %w", err)
	}

	loaded = defaults
	var seeded []string
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSettingsRepo(tx)
		for _, f := range fieldsOf(&loaded) {
			v, getErr := repo.GetInt(ctx, f.key)
			if getErr == nil && v >= f.min && v <= f.max {
				*f.ptr = v
				continue
			}
			if getErr != nil && !errors.Is(getErr, repository.ErrNotFound) {
				s.logger.Warn("replacing unreadable setting with default", zap.String("key", f.key), zap.Error(getErr))
			} else if getErr == nil {
				s.logger.Warn("replacing out-of-range setting with default", zap.String("key", f.key), zap.Int("value", v))
			}
			if setErr := repo.SetInt(ctx, f.key, *f.ptr); setErr != nil {
				return setErr
			}
			seeded = append(seeded, f.key)
		}
		return nil
	})
	if err != nil {
		return domain.Settings{}, fmt.Errorf("loading settings: %w", err)
	}
	fields["seeded"] = seeded

	s.mu.Lock()
	s.current = loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *settingsService) Current() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *settingsService) Update(ctx context.Context, next domain.Settings) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"focus_minutes":       next.FocusMinutes,
		"short_break_minutes": next.ShortBreakMinutes,
		"long_break_minutes":  next.LongBreakMinutes,
		"long_break_interval": next.LongBreakInterval,
	}
	defer observe(ctx, s.observer, "update-settings", startedAt, fields, &err)

	if err = next.Validate(); err != nil {
		return err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteSettingsRepo(tx)
		for _, f := range fieldsOf(&next) {
			if err := repo.SetInt(ctx, f.key, *f.ptr); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	s.mu.Lock()
	s.current = next
	listeners := append([]func(domain.Settings){}, s.onChange...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return nil
}

func (s *settingsService) OnChange(fn func(domain.Settings)) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

// Duration implements engine.ConfigProvider in seconds.
func (s *settingsService) Duration(mode domain.Mode) int {
	return s.Current().Minutes(mode) * 60
}

func (s *settingsService) LongBreakInterval() int {
	return s.Current().LongBreakInterval
}
