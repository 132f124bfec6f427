package models

// Identity is the caller's resolved identity for a request: either an
// authenticated user or anonymous. It replaces passing a bare user ID
// around so that "no user" is a state callers must handle explicitly
// rather than a magic zero.
type Identity struct {
	user *User
}

// Authenticated wraps a loaded user as an identity.
func Authenticated(u *User) Identity {
	return Identity{user: u}
}

// Anonymous is the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{}
}

// User returns the authenticated user, or ok=false for anonymous callers.
func (i Identity) User() (*User, bool) {
	if i.user == nil {
		return nil, false
	}
	return i.user, true
}

// ViewerID returns the user ID for upvote annotation queries, 0 for
// anonymous viewers. Repositories treat 0 as "annotate nothing".
func (i Identity) ViewerID() uint {
	if i.user == nil {
		return 0
	}
	return i.user.ID
}
