package service

import (
	"context"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/engine"
)

// SettingsService validates and persists timer settings. It also serves
// them to the engine from an in-memory snapshot, so the engine never waits
// on the database.
type SettingsService interface {
	engine.ConfigProvider

	// Load reads the stored settings, writing defaults for any that are
	// missing or unusable.
	Load(ctx context.Context, defaults domain.Settings) (domain.Settings, error)
	Current() domain.Settings
	Update(ctx context.Context, next domain.Settings) error
	// OnChange registers fn to run after every successful Update.
	OnChange(fn func(domain.Settings))
}

// SessionCounter persists the completed focus session count. Its
// engine.SessionStore methods never fail; errors are logged and dropped.
type SessionCounter interface {
	engine.SessionStore

	Count(ctx context.Context) (int, error)
	ResetCount(ctx context.Context) error
}
