package services

import (
	"testing"

	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.SystemSetting{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	config.SetDB(db)
	FlushSettingsCache()
	return db
}

func TestSeedSystemSettings(t *testing.T) {
	db := setupSettingsTestDB(t)

	assert.NoError(t, SeedSystemSettings())

	var count int64
	db.Model(&models.SystemSetting{}).Count(&count)
	assert.Equal(t, int64(len(models.SystemSettingKeys)), count)

	// Every toggle starts open
	for _, key := range models.SystemSettingKeys {
		value, err := GetSystemSetting(key)
		assert.NoError(t, err)
		assert.True(t, value, "setting %s should default to open", key)
	}
}

func TestSeedSystemSettings_Idempotent(t *testing.T) {
	db := setupSettingsTestDB(t)

	assert.NoError(t, SeedSystemSettings())

	// Flip one toggle, reseed, and confirm the value survives
	_, err := UpdateSystemSetting(models.SettingCustomOrdersOpen, false)
	assert.NoError(t, err)

	assert.NoError(t, SeedSystemSettings())

	value, err := GetSystemSetting(models.SettingCustomOrdersOpen)
	assert.NoError(t, err)
	assert.False(t, value)

	var count int64
	db.Model(&models.SystemSetting{}).Count(&count)
	assert.Equal(t, int64(len(models.SystemSettingKeys)), count)
}

func TestGetSystemSetting_UnknownKey(t *testing.T) {
	setupSettingsTestDB(t)

	_, err := GetSystemSetting("no_such_toggle")
	assert.Error(t, err)
}

func TestUpdateSystemSetting_InvalidatesCache(t *testing.T) {
	db := setupSettingsTestDB(t)
	assert.NoError(t, SeedSystemSettings())

	// Prime the cache
	value, err := GetSystemSetting(models.SettingWeddingOrdersOpen)
	assert.NoError(t, err)
	assert.True(t, value)

	// A write through the service must be visible on the next read
	// despite the cache TTL
	_, err = UpdateSystemSetting(models.SettingWeddingOrdersOpen, false)
	assert.NoError(t, err)

	value, err = GetSystemSetting(models.SettingWeddingOrdersOpen)
	assert.NoError(t, err)
	assert.False(t, value)

	// And the row itself was updated, not just the cache
	var setting models.SystemSetting
	db.Where("key = ?", models.SettingWeddingOrdersOpen).First(&setting)
	assert.False(t, setting.Value)
}

func TestGetAllSystemSettings(t *testing.T) {
	setupSettingsTestDB(t)
	assert.NoError(t, SeedSystemSettings())

	_, err := UpdateSystemSetting(models.SettingWorkshopReservationsOpen, false)
	assert.NoError(t, err)

	settings, err := GetAllSystemSettings()
	assert.NoError(t, err)
	assert.Len(t, settings, len(models.SystemSettingKeys))
	assert.True(t, settings[models.SettingCustomOrdersOpen])
	assert.False(t, settings[models.SettingWorkshopReservationsOpen])
}
