package repository

import "context"

// Setting keys. Durations are whole minutes.
const (
	KeyFocusMinutes      = "focus_minutes"
	KeyShortBreakMinutes = "short_break_minutes"
	KeyLongBreakMinutes  = "long_break_minutes"
	KeyLongBreakInterval = "long_break_interval"
	KeySessionsCompleted = "sessions_completed"
)

// SettingsRepo is a flat key-value store of named timer values.
type SettingsRepo interface {
	Get(ctx context.Context, key string) (string, error)
	GetInt(ctx context.Context, key string) (int, error)
	Set(ctx context.Context, key, value string) error
	SetInt(ctx context.Context, key string, value int) error
	List(ctx context.Context) (map[string]string, error)
	Delete(ctx context.Context, key string) error
}
