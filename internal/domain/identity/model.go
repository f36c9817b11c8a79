package identity

// Principal is the authenticated caller attached to a request after token
// introspection.
type Principal struct {
	UserID string
	Email  string
}

// User is the account-service view of a user, fetched when rendering the
// admin directory of a set.
type User struct {
	ID          string
	Email       string
	DisplayName string
}
