package model

// Guide is a generated study guide. It deliberately has no reference back to
// the user(s) that hold it — ownership lives only in User.GuideIDs.
type Guide struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}
