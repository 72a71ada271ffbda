package data

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bthh/CF1-Claude-sub007/src/govapi/types"
	"gorm.io/gorm"
)

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings loads all settings from database into cache
func LoadSettings(db *gorm.DB) error {
	var settings []types.Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string)
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}

	return nil
}

// GetSetting retrieves a setting value by name
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}

// RefreshSettings reloads settings from database
func RefreshSettings(db *gorm.DB) error {
	return LoadSettings(db)
}

// SettingsService keeps the cache in sync with the settings table so
// runtime changes (admin endpoint, manual SQL) are picked up without a
// restart.
func SettingsService(ctx context.Context, db *gorm.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("settings service stopping")
			return
		case <-ticker.C:
			if err := RefreshSettings(db); err != nil {
				log.Printf("settings refresh: %v", err)
			}
		}
	}
}
