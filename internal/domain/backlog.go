package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	DefaultImpact    = 3
	DefaultEffortMin = 30
	MinImpact        = 1
	MaxImpact        = 5
)

// BacklogItem is a triaged task waiting to become a daily quest.
type BacklogItem struct {
	ID        string
	Title     string
	Category  Category
	Impact    int
	EffortMin int
	Notes     string
	CreatedAt time.Time
}

// NewBacklogItem builds an item with default impact and effort.
func NewBacklogItem(id, title string, category Category, now time.Time) *BacklogItem {
	return &BacklogItem{
		ID:        id,
		Title:     strings.TrimSpace(title),
		Category:  category,
		Impact:    DefaultImpact,
		EffortMin: DefaultEffortMin,
		CreatedAt: now,
	}
}

// Normalize fills unset fields with defaults and clamps impact to 1..5.
func (b *BacklogItem) Normalize() {
	if b.Impact == 0 {
		b.Impact = DefaultImpact
	}
	if b.Impact < MinImpact {
		b.Impact = MinImpact
	}
	if b.Impact > MaxImpact {
		b.Impact = MaxImpact
	}
	if b.EffortMin <= 0 {
		b.EffortMin = DefaultEffortMin
	}
	if !b.Category.IsValid() {
		b.Category = CategoryBuild
	}
}

// Validate checks the fields a caller must provide.
func (b *BacklogItem) Validate() error {
	if b.ID == "" {
		return errors.New("backlog item id is required")
	}
	if strings.TrimSpace(b.Title) == "" {
		return errors.New("backlog item title is required")
	}
	if !b.Category.IsValid() {
		return errors.New("backlog item category is invalid")
	}
	if b.Impact < MinImpact || b.Impact > MaxImpact {
		return errors.New("backlog item impact must be between 1 and 5")
	}
	if b.EffortMin <= 0 {
		return errors.New("backlog item effort must be positive")
	}
	return nil
}
