package roster

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dotadrafter/draft-client/internal/hero"
)

var ErrNoCache = errors.New("no roster cache configured")
var ErrCacheEmpty = errors.New("roster cache is empty")

type heroRow struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Attribute    string `gorm:"not null"`
	ImageURL     string
	Roles        string // comma-joined
	Position     int    `gorm:"not null"` // catalog order
	LastSyncedAt time.Time
}

func (heroRow) TableName() string { return "heroes" }

// Cache is a local sqlite mirror of the last successfully loaded catalog, so
// a dead roster source degrades to stale data instead of an empty screen.
type Cache struct {
	db *gorm.DB
}

func OpenCache(path string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open roster cache: %w", err)
	}
	if err := db.AutoMigrate(&heroRow{}); err != nil {
		return nil, fmt.Errorf("migrate roster cache: %w", err)
	}
	return &Cache{db: db}, nil
}

// Save replaces the cached catalog wholesale, mirroring how the in-memory
// store treats loads.
func (c *Cache) Save(heroes []hero.Hero) error {
	now := time.Now().UTC()
	rows := make([]heroRow, len(heroes))
	for i, h := range heroes {
		rows[i] = heroRow{
			ID:           h.ID,
			Name:         h.Name,
			Attribute:    string(h.PrimaryAttribute),
			ImageURL:     h.ImageURL,
			Roles:        strings.Join(h.Roles, ","),
			Position:     i,
			LastSyncedAt: now,
		}
	}
	return c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&heroRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

func (c *Cache) LoadAll() ([]hero.Hero, time.Time, error) {
	var rows []heroRow
	if err := c.db.Order("position").Find(&rows).Error; err != nil {
		return nil, time.Time{}, err
	}
	if len(rows) == 0 {
		return nil, time.Time{}, ErrCacheEmpty
	}
	heroes := make([]hero.Hero, len(rows))
	for i, r := range rows {
		var roles []string
		if r.Roles != "" {
			roles = strings.Split(r.Roles, ",")
		}
		attr, _ := hero.ParseAttribute(r.Attribute)
		heroes[i] = hero.Hero{
			ID:               r.ID,
			Name:             r.Name,
			PrimaryAttribute: attr,
			ImageURL:         r.ImageURL,
			Roles:            roles,
		}
	}
	return heroes, rows[0].LastSyncedAt, nil
}
