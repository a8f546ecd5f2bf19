package settings_cache

import (
	"sync"
	"time"

	"github.com/Technizer/ModeFilter-Pro/models"
)

const TTL = 5 * time.Minute

// ── Store settings cache ─────────────────────────────────────────────────────
// The settings row is read on every grid fetch and shell render but changes
// only when an admin saves. One TTL slot is enough.

type settingsEntry struct {
	data      models.StoreSettings
	fetchedAt time.Time
}

var (
	settingsMu    sync.RWMutex
	settingsCache *settingsEntry
)

func Get() (models.StoreSettings, bool) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	if settingsCache != nil && time.Since(settingsCache.fetchedAt) < TTL {
		return settingsCache.data, true
	}
	return models.StoreSettings{}, false
}

func Set(data models.StoreSettings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settingsCache = &settingsEntry{data: data, fetchedAt: time.Now()}
}

// ── Invalidate (call on any settings write) ──────────────────────────────────

func Invalidate() {
	settingsMu.Lock()
	settingsCache = nil
	settingsMu.Unlock()
}
