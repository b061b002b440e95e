package services

import (
	"fmt"
	"time"

	"github.com/maya-widjaja/mayas-bakery-api/config"
	"github.com/maya-widjaja/mayas-bakery-api/models"
)

// LeadDaysForCakeType returns the minimum lead time for an order type.
// Wedding cakes need two weeks; everything else uses the custom-cake
// lead time.
func LeadDaysForCakeType(cfg *config.Config, cakeType string) int {
	if cakeType == "wedding" {
		return cfg.WeddingCakeLeadDays
	}
	return cfg.CustomCakeLeadDays
}

// truncateToDate drops the time-of-day component
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateMeetsLeadTime reports whether candidate is at least leadDays from
// today. The boundary day itself is available.
func DateMeetsLeadTime(candidate, today time.Time, leadDays int) bool {
	earliest := truncateToDate(today).AddDate(0, 0, leadDays)
	return !truncateToDate(candidate).Before(earliest)
}

// IsDateAvailable applies the full availability predicate: the date
// must meet the lead time for the order type and must not appear on
// the admin-maintained denylist.
func IsDateAvailable(cfg *config.Config, cakeType string, candidate time.Time) (bool, error) {
	if !DateMeetsLeadTime(candidate, time.Now(), LeadDaysForCakeType(cfg, cakeType)) {
		return false, nil
	}

	db := config.GetDB()
	var count int64
	day := truncateToDate(candidate)
	if err := db.Model(&models.UnavailableDate{}).
		Where("date >= ? AND date < ?", day, day.AddDate(0, 0, 1)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check unavailable dates: %w", err)
	}

	return count == 0, nil
}
