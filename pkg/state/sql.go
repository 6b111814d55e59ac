// Package state keeps a durable record of voting outcomes so operators can
// see which modes actually get played.
package state

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Entity struct {
	ID uint `gorm:"primaryKey"`
}

// ModeSwitch is one vote-driven mode change: written when travel
// preparation succeeds, just before the restart.
type ModeSwitch struct {
	Entity
	Mode       string `gorm:"size:64;not null"`
	Difficulty float64
	CreatedAt  time.Time
}

func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&ModeSwitch{}); err != nil {
		return nil, err
	}

	return db, nil
}

func RecordSwitch(ctx context.Context, db *gorm.DB, mode string, difficulty float64) error {
	return db.WithContext(ctx).Create(&ModeSwitch{
		Mode:       mode,
		Difficulty: difficulty,
		CreatedAt:  time.Now(),
	}).Error
}

// RecentSwitches returns up to limit switches, newest first.
func RecentSwitches(ctx context.Context, db *gorm.DB, limit int) ([]ModeSwitch, error) {
	var switches []ModeSwitch
	err := db.WithContext(ctx).
		Order("id desc").
		Limit(limit).
		Find(&switches).Error
	return switches, err
}
