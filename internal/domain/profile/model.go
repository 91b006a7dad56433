package profile

import "time"

// Profile mirrors the account service's public profile for leaderboard display.
type Profile struct {
	ID        string
	Username  string
	FullName  string
	AvatarURL string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
