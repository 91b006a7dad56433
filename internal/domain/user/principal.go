package user

// Principal is the authenticated identity resolved from an access token.
type Principal struct {
	UserID string
	Email  string
}
