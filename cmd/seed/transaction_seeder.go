package main

import (
	"time"

	"agentcity-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeedTransactions attaches a plausible spending history to a user so
// the preference analyzer has something to work with.
func SeedTransactions(db *gorm.DB, userId uuid.UUID) error {
	now := time.Now()

	transactions := []model.Transaction{
		{
			UserId:     userId,
			Activity:   "Dinner at Warung Babi Guling",
			Category:   "food",
			Amount:     185000,
			Location:   "Ubud",
			OccurredAt: now.AddDate(0, 0, -3),
		},
		{
			UserId:     userId,
			Activity:   "Seafood grill at Jimbaran beach",
			Category:   "food",
			Amount:     420000,
			Location:   "Jimbaran",
			OccurredAt: now.AddDate(0, 0, -10),
		},
		{
			UserId:     userId,
			Activity:   "Ramen tasting course",
			Category:   "food",
			Amount:     310000,
			Location:   "Kyoto",
			OccurredAt: now.AddDate(0, -1, 0),
		},
		{
			UserId:     userId,
			Activity:   "Specialty coffee crawl",
			Category:   "Food",
			Amount:     95000,
			Location:   "Bandung",
			OccurredAt: now.AddDate(0, -1, -14),
		},
		{
			UserId:     userId,
			Activity:   "Surf lesson",
			Category:   "outdoors",
			Amount:     350000,
			Location:   "Canggu",
			OccurredAt: now.AddDate(0, 0, -21),
		},
		{
			UserId:     userId,
			Activity:   "Tegalalang rice terrace walk",
			Category:   "sightsee",
			Amount:     50000,
			Location:   "Ubud",
			OccurredAt: now.AddDate(0, -2, 0),
		},
	}

	return db.CreateInBatches(transactions, 100).Error
}
