package services

import (
	"fmt"
	"time"

	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/models"
	"github.com/patrickmn/go-cache"
)

// Toggle reads happen on every public page load, so they go through a
// short-lived cache. Writes from the admin page invalidate the entry.
var settingsCache = cache.New(30*time.Second, time.Minute)

// SeedSystemSettings ensures every known toggle has a row, defaulting
// to open. Called once on startup after migration.
func SeedSystemSettings() error {
	db := config.GetDB()
	for _, key := range models.SystemSettingKeys {
		var setting models.SystemSetting
		err := db.Where("key = ?", key).First(&setting).Error
		if err == nil {
			continue
		}
		setting = models.SystemSetting{Key: key, Value: true}
		if err := db.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to seed system setting %s: %w", key, err)
		}
	}
	return nil
}

// GetSystemSetting returns the boolean value of a toggle, serving
// repeat reads from the cache
func GetSystemSetting(key string) (bool, error) {
	if cached, found := settingsCache.Get(key); found {
		return cached.(bool), nil
	}

	db := config.GetDB()
	var setting models.SystemSetting
	if err := db.Where("key = ?", key).First(&setting).Error; err != nil {
		return false, fmt.Errorf("failed to read system setting %s: %w", key, err)
	}

	settingsCache.SetDefault(key, setting.Value)
	return setting.Value, nil
}

// GetAllSystemSettings returns every toggle as a key→value map
func GetAllSystemSettings() (map[string]bool, error) {
	db := config.GetDB()
	var settings []models.SystemSetting
	if err := db.Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to read system settings: %w", err)
	}

	result := make(map[string]bool, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}

// UpdateSystemSetting overwrites a toggle and drops its cache entry
func UpdateSystemSetting(key string, value bool) (*models.SystemSetting, error) {
	db := config.GetDB()
	var setting models.SystemSetting
	if err := db.Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, fmt.Errorf("system setting %s not found: %w", key, err)
	}

	if err := db.Model(&setting).Update("value", value).Error; err != nil {
		return nil, fmt.Errorf("failed to update system setting %s: %w", key, err)
	}

	settingsCache.Delete(key)
	setting.Value = value
	return &setting, nil
}

// FlushSettingsCache clears the settings cache (primarily for testing)
func FlushSettingsCache() {
	settingsCache.Flush()
}
