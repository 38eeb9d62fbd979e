package user

import (
	"fmt"
	"time"
)

// User represents the user aggregate root, keyed by the Telegram user ID.
type User struct {
	telegramID      int64
	username        string
	firstName       string
	lastName        string
	languageCode    string
	preferredModel  string
	isPremium       bool
	isBanned        bool
	messageCount    int64
	totalTokensUsed int64
	createdAt       time.Time
	lastActiveAt    time.Time
}

// NewUser creates a new user from a Telegram identity.
func NewUser(telegramID int64, username, firstName, lastName, languageCode string) (*User, error) {
	if telegramID == 0 {
		return nil, fmt.Errorf("telegram user ID is required")
	}
	if languageCode == "" {
		languageCode = "en"
	}

	now := time.Now()
	return &User{
		telegramID:   telegramID,
		username:     username,
		firstName:    firstName,
		lastName:     lastName,
		languageCode: languageCode,
		createdAt:    now,
		lastActiveAt: now,
	}, nil
}

// ReconstructUser reconstructs a user from persistence.
func ReconstructUser(
	telegramID int64,
	username, firstName, lastName, languageCode, preferredModel string,
	isPremium, isBanned bool,
	messageCount, totalTokensUsed int64,
	createdAt, lastActiveAt time.Time,
) (*User, error) {
	if telegramID == 0 {
		return nil, fmt.Errorf("telegram user ID is required")
	}

	return &User{
		telegramID:      telegramID,
		username:        username,
		firstName:       firstName,
		lastName:        lastName,
		languageCode:    languageCode,
		preferredModel:  preferredModel,
		isPremium:       isPremium,
		isBanned:        isBanned,
		messageCount:    messageCount,
		totalTokensUsed: totalTokensUsed,
		createdAt:       createdAt,
		lastActiveAt:    lastActiveAt,
	}, nil
}

func (u *User) TelegramID() int64      { return u.telegramID }
func (u *User) Username() string       { return u.username }
func (u *User) FirstName() string      { return u.firstName }
func (u *User) LastName() string       { return u.lastName }
func (u *User) LanguageCode() string   { return u.languageCode }
func (u *User) PreferredModel() string { return u.preferredModel }
func (u *User) IsPremium() bool        { return u.isPremium }
func (u *User) IsBanned() bool         { return u.isBanned }
func (u *User) MessageCount() int64    { return u.messageCount }
func (u *User) TotalTokensUsed() int64 { return u.totalTokensUsed }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) LastActiveAt() time.Time { return u.lastActiveAt }

// UpdateIdentity refreshes the Telegram profile fields on each inbound event.
func (u *User) UpdateIdentity(username, firstName, lastName string) {
	u.username = username
	u.firstName = firstName
	u.lastName = lastName
	u.lastActiveAt = time.Now()
}

// SetLanguage updates the user's language preference.
func (u *User) SetLanguage(code string) error {
	if code == "" {
		return fmt.Errorf("language code is required")
	}
	u.languageCode = code
	return nil
}

// SetPreferredModel updates the user's preferred AI model.
func (u *User) SetPreferredModel(model string) {
	u.preferredModel = model
}

// SetPremium updates the premium flag. Writing the same value twice is
// harmless, which keeps lazy expiry idempotent.
func (u *User) SetPremium(premium bool) {
	u.isPremium = premium
}

// Ban blocks the user from any processing.
func (u *User) Ban() {
	u.isBanned = true
}

// Unban restores access.
func (u *User) Unban() {
	u.isBanned = false
}

// RecordUsage accumulates one served message and its token estimate.
func (u *User) RecordUsage(tokens int) {
	u.messageCount++
	u.totalTokensUsed += int64(tokens)
	u.lastActiveAt = time.Now()
}
