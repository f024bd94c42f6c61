package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Category is the kind of work a task represents.
type Category string

const (
	CategoryBuild Category = "build"
	CategoryShip  Category = "ship"
	CategoryReach Category = "reach"
)

// AllCategories is the canonical display order.
var AllCategories = []Category{CategoryBuild, CategoryShip, CategoryReach}

// IsValid reports whether c is one of the three fixed categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBuild, CategoryShip, CategoryReach:
		return true
	}
	return false
}

// IsEntrepreneurial reports whether c is externally visible work (ship or reach).
func (c Category) IsEntrepreneurial() bool {
	return c == CategoryShip || c == CategoryReach
}

// Material returns the guaranteed loot token dropped for work in c.
func (c Category) Material() string {
	if m, ok := categoryMaterials[c]; ok {
		return m
	}
	return TokenBuildShard
}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category %q (allowed: build, ship, reach)", s)
	}
	return c, nil
}

// Loot tokens.
const (
	TokenBuildShard = "build_shard"
	TokenShipToken  = "ship_token"
	TokenReachLeaf  = "reach_leaf"
	TokenCommonGem  = "common_gem"
	TokenRareBadge  = "rare_badge"
	TokenEpicBadge  = "epic_badge"
)

var categoryMaterials = map[Category]string{
	CategoryBuild: TokenBuildShard,
	CategoryShip:  TokenShipToken,
	CategoryReach: TokenReachLeaf,
}

// EventType is an externally verified achievement recorded outside a quest.
type EventType string

const (
	EventBlog    EventType = "blog"
	EventTikTok  EventType = "tiktok"
	EventStore   EventType = "store"
	EventRevenue EventType = "revenue"
)

var eventCategories = map[EventType]Category{
	EventBlog:    CategoryReach,
	EventTikTok:  CategoryReach,
	EventStore:   CategoryShip,
	EventRevenue: CategoryShip,
}

// Category returns the category credited for the event and whether the
// event type is known.
func (e EventType) Category() (Category, bool) {
	c, ok := eventCategories[e]
	return c, ok
}

// ValidEventTypes returns the accepted event type names, sorted.
func ValidEventTypes() []string {
	names := make([]string, 0, len(eventCategories))
	for e := range eventCategories {
		names = append(names, string(e))
	}
	sort.Strings(names)
	return names
}

// ActivityKind tags entries in the activity log.
type ActivityKind string

const (
	ActivityDone    ActivityKind = "DONE"
	ActivityEvent   ActivityKind = "EVENT"
	ActivitySync    ActivityKind = "SYNC"
	ActivityExpired ActivityKind = "EXPIRED"
)
