package cli

import (
	"sync"

	"github.com/alexanderramin/pomo/internal/domain"
	"github.com/alexanderramin/pomo/internal/engine"
	"github.com/alexanderramin/pomo/internal/service"
)

// resyncOnChange restarts an idle countdown when the duration of its own
// mode changes. Changes to other modes take effect at the next switch.
func resyncOnChange(settings service.SettingsService, eng *engine.Engine) {
	var mu sync.Mutex
	prev := settings.Current()

	settings.OnChange(func(next domain.Settings) {
		mode := eng.Snapshot().Mode
		mu.Lock()
		changed := next.Minutes(mode) != prev.Minutes(mode)
		prev = next
		mu.Unlock()

		if changed {
			eng.Resync()
		}
	})
}
