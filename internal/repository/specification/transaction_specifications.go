package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(category) = LOWER(?)", s.Category)
}

type ByLocation struct {
	Location string
}

func (s ByLocation) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(location) = LOWER(?)", s.Location)
}

type OccurredAfter struct {
	Since time.Time
}

func (s OccurredAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("occurred_at >= ?", s.Since)
}
