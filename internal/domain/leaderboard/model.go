package leaderboard

// Entry is one row of the settlement leaderboard view. Points are computed by the
// database view from settled predictions; this service only reads them.
type Entry struct {
	UserID      string
	TotalPoints int
}

// RankedEntry is an Entry joined with the user's profile for display.
type RankedEntry struct {
	Position    int
	UserID      string
	Username    string
	AvatarURL   string
	TotalPoints int
}
