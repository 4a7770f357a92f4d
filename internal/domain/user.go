package domain

import "time"

// User represents a gallery account. Local accounts carry a password,
// federated accounts carry a Google ID and picture; both are keyed by email.
type User struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email       string `gorm:"type:text;not null;uniqueIndex:idx_users_email" json:"email"`
	Username    string `gorm:"type:text" json:"username"`
	Password    string `gorm:"type:text" json:"-"`
	GoogleID    string `gorm:"type:text" json:"google_id,omitempty"`
	Picture     string `gorm:"type:text" json:"picture,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Hidden      bool   `gorm:"default:false" json:"hidden"`
	Premium     bool   `gorm:"default:false" json:"premium"`

	Arts []Art `gorm:"foreignKey:OwnerID" json:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string {
	return "users"
}

// Like records a user liking an artwork.
type Like struct {
	UserID uint `gorm:"primaryKey" json:"user_id"`
	ArtID  uint `gorm:"primaryKey" json:"art_id"`
}

// TableName returns the database table name for Like.
func (Like) TableName() string {
	return "likes"
}

// Follow records one user following another.
type Follow struct {
	FollowerID uint `gorm:"primaryKey" json:"follower_id"`
	FolloweeID uint `gorm:"primaryKey" json:"followee_id"`
}

// TableName returns the database table name for Follow.
func (Follow) TableName() string {
	return "follows"
}

// SearchHistory records a search query issued by a user.
type SearchHistory struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint      `gorm:"index:idx_search_history_user" json:"user_id"`
	Query  string    `gorm:"type:text" json:"query"`
	Date   time.Time `json:"date"`
}

// TableName returns the database table name for SearchHistory.
func (SearchHistory) TableName() string {
	return "search_history"
}

// ArtHistory records a user viewing an artwork.
type ArtHistory struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ArtID  uint      `gorm:"index:idx_art_history_art" json:"art_id"`
	UserID uint      `gorm:"index:idx_art_history_user" json:"user_id"`
	Date   time.Time `json:"date"`
}

// TableName returns the database table name for ArtHistory.
func (ArtHistory) TableName() string {
	return "art_history"
}
