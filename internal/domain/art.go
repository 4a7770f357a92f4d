package domain

import "time"

// Art represents a generated artwork in the gallery.
// The numeric ID doubles as the point ID in the prompt vector collection,
// so it must never change after creation.
type Art struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	Image     string    `gorm:"type:text;not null" json:"image"`
	Premium   bool      `gorm:"default:false" json:"premium"`
	OwnerID   *uint     `gorm:"index:idx_arts_owner" json:"owner_id,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Format    string    `gorm:"type:text" json:"format,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"-"`
}

// TableName returns the database table name for Art.
func (Art) TableName() string {
	return "arts"
}

// Category represents a content category seeded offline.
// Category names are embedded into the category vector collection keyed by ID;
// rows are immutable after seeding.
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:text;not null;index:idx_categories_name" json:"name"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string {
	return "categories"
}

// ArtCategory links an artwork to an auto-assigned category.
// Exactly one row per (art, category) pair, written once at art creation.
type ArtCategory struct {
	ArtID      uint      `gorm:"primaryKey" json:"art_id"`
	CategoryID uint      `gorm:"primaryKey" json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for ArtCategory.
func (ArtCategory) TableName() string {
	return "arts_categories"
}

// CategoryCount is an aggregation row for category statistics.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
