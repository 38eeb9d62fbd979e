// Package models contains the gorm persistence models. Domain aggregates are
// mapped to and from these rows by the mappers package; nothing outside
// infrastructure touches them.
package models

import "time"

// UserModel is the users table.
type UserModel struct {
	TelegramID      int64  `gorm:"primaryKey"`
	Username        string `gorm:"index;size:64"`
	FirstName       string `gorm:"size:128"`
	LastName        string `gorm:"size:128"`
	LanguageCode    string `gorm:"size:8;default:en"`
	PreferredModel  string `gorm:"size:64"`
	IsPremium       bool   `gorm:"default:false"`
	IsBanned        bool   `gorm:"default:false"`
	MessageCount    int64  `gorm:"default:0"`
	TotalTokensUsed int64  `gorm:"default:0"`
	CreatedAt       time.Time
	LastActiveAt    time.Time
}

func (UserModel) TableName() string { return "users" }

// SubscriptionModel is the subscriptions table.
type SubscriptionModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	UserID     int64  `gorm:"index;not null"`
	Tier       string `gorm:"size:16;not null"`
	StarsPaid  int    `gorm:"not null"`
	StartedAt  time.Time
	ExpiresAt  time.Time `gorm:"index"`
	IsActive   bool      `gorm:"index;default:true"`
	PaymentRef string    `gorm:"index;size:128"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (SubscriptionModel) TableName() string { return "subscriptions" }

// MessageModel is the conversations table.
type MessageModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"index;not null"`
	Role      string `gorm:"size:16;not null"`
	Content   string `gorm:"type:text;not null"`
	ModelUsed string `gorm:"size:64"`
	Tokens    int    `gorm:"default:0"`
	CreatedAt time.Time `gorm:"index"`
}

func (MessageModel) TableName() string { return "conversations" }

// PaymentModel is the payments table.
type PaymentModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	UserID      int64  `gorm:"index;not null"`
	AmountStars int    `gorm:"not null"`
	Purpose     string `gorm:"size:64;not null"`
	PaymentRef  string `gorm:"uniqueIndex;size:128"`
	Status      string `gorm:"size:16;default:pending"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (PaymentModel) TableName() string { return "payments" }

// DailyStatsModel is the bot_stats table, one row per day.
type DailyStatsModel struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	StatDate      string `gorm:"uniqueIndex;size:10;not null"`
	TotalMessages int64  `gorm:"default:0"`
	NewUsers      int64  `gorm:"default:0"`
	TotalTokens   int64  `gorm:"default:0"`
	RevenueStars  int64  `gorm:"default:0"`
}

func (DailyStatsModel) TableName() string { return "bot_stats" }
