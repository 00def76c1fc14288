// Package store journals cryptanalysis attempts so past runs can be listed and replayed.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrNotFound = errors.New("attempt not found")
	ErrNilDB    = errors.New("store: nil gorm.DB")
)

// Attempt is one Hack run as recorded in the journal.
type Attempt struct {
	ID         string `gorm:"primaryKey;size:36"`
	Family     string `gorm:"size:32;index"`
	Alphabet   string `gorm:"size:64"`
	Dictionary string `gorm:"size:64"` // dictionary fingerprint
	Ciphertext string
	Plaintext  string
	Shift      int
	Multiplier int
	Keyword    string `gorm:"size:255"`
	Score      int
	Trials     int
	EarlyExit  bool
	Cached     bool
	Error      string
	Duration   time.Duration
	CreatedAt  time.Time `gorm:"index"`
}

// TableName pins the table name independent of GORM's pluralization.
func (Attempt) TableName() string {
	return "hack_attempts"
}

// BeforeCreate assigns a UUID when the caller left ID empty.
func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Repository reads and writes attempts.
type Repository struct {
	db *gorm.DB
}

// New wraps db. When migrate is true the attempts table is created or updated.
func New(db *gorm.DB, migrate bool) (*Repository, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	if migrate {
		if err := db.AutoMigrate(&Attempt{}); err != nil {
			return nil, fmt.Errorf("store: migrate: %w", err)
		}
	}
	return &Repository{db: db}, nil
}

// Save inserts a, filling in its ID and CreatedAt.
func (r *Repository) Save(ctx context.Context, a *Attempt) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return fmt.Errorf("store: save attempt: %w", err)
	}
	return nil
}

// Get loads the attempt with the given ID.
func (r *Repository) Get(ctx context.Context, id string) (*Attempt, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	var a Attempt
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("store: get attempt: %w", err)
	}
	return &a, nil
}

// Recent returns up to limit attempts, newest first. An empty family matches all.
func (r *Repository) Recent(ctx context.Context, family string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if family != "" {
		q = q.Where("family = ?", family)
	}

	var out []Attempt
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("store: list attempts: %w", err)
	}
	return out, nil
}

// Count returns the number of journaled attempts.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Attempt{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("store: count attempts: %w", err)
	}
	return n, nil
}
