// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account that owns a collection of guides.
//
// WHY GuideIDs ON THE USER (AND NOT UserID ON THE GUIDE)?
// The relationship between users and guides is recorded in exactly one place:
// the guideIds list embedded in the user document. A Guide carries no
// back-reference. The store has no foreign keys, so keeping the relationship
// in a single owned list means there is only one piece of state that can go
// stale — and only the guide service is allowed to touch it (see
// internal/service/guide.go for the cascade rules).
//
// GuideIDs is an ordered slice but semantically a set: the same guide id must
// never appear twice. The service layer enforces the no-duplicates rule on
// every append.
//
// Password is stored as an opaque string. There is no hashing step anywhere
// in this system; the field travels through the store untouched and is
// stripped from API responses by the handler layer.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"` // unique across all users (advisory, see service.uniquenessGuard)
	Email     string    `json:"email"`    // unique across all users (advisory)
	Password  string    `json:"password"`
	GuideIDs  []string  `json:"guideIds"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasGuide reports whether the user's guide list already contains id.
func (u *User) HasGuide(id string) bool {
	for _, g := range u.GuideIDs {
		if g == id {
			return true
		}
	}
	return false
}

// AddGuide appends id to the user's guide list if it is not already present.
// Returns true if the list changed.
func (u *User) AddGuide(id string) bool {
	if u.HasGuide(id) {
		return false
	}
	u.GuideIDs = append(u.GuideIDs, id)
	return true
}

// RemoveGuide deletes id from the user's guide list, preserving the order of
// the remaining entries. Returns true if the list changed.
func (u *User) RemoveGuide(id string) bool {
	for i, g := range u.GuideIDs {
		if g == id {
			u.GuideIDs = append(u.GuideIDs[:i], u.GuideIDs[i+1:]...)
			return true
		}
	}
	return false
}
