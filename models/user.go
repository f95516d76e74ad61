package models

import "time"

// User is a back-office staff account. There is no self-serve signup; the
// initial account is seeded from configuration at startup.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex:idx_users_username" json:"username"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName returns the table name for User
func (User) TableName() string { return "users" }

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID       *uint
	Username *string
}
