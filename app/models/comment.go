package models

// NewComment builds a comment stamped with the given date.
func NewComment(id uint64, owner Principal, content string, date uint64) Comment {
	return Comment{
		ID:      id,
		Owner:   owner,
		Content: content,
		Date:    date,
	}
}
