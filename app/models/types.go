package models

// Principal is the opaque, already-authenticated identity of a caller.
// It is only ever compared for equality.
type Principal string

// AnonymousPrincipal identifies callers that presented no credentials.
const AnonymousPrincipal Principal = "2vxsx-fae"

func (p Principal) String() string { return string(p) }

// Blog represents a post with its embedded, ordered comments.
type Blog struct {
	ID       uint64    `json:"id"`
	Owner    Principal `json:"owner"`
	Title    string    `json:"title"`
	Date     uint64    `json:"date"`
	Content  string    `json:"content"`
	Tags     []string  `json:"tags"`
	Comments []Comment `json:"comments"`
}

// Comment represents a reply attached to exactly one blog post.
type Comment struct {
	ID      uint64    `json:"id"`
	Owner   Principal `json:"owner"`
	Content string    `json:"content"`
	Date    uint64    `json:"date"`
}

// Config holds validation limits and the whitelist of allowed tags.
type Config struct {
	MaxTagsCount  uint8    `json:"max_tags_count" yaml:"max_tags_count"`
	MaxContentLen uint16   `json:"max_content_len" yaml:"max_content_len"`
	MaxTitleLen   uint8    `json:"max_title_len" yaml:"max_title_len"`
	Tags          []string `json:"tags" yaml:"tags"`
}

// Snapshot is the complete durable state handed to the checkpoint store
// between write calls.
type Snapshot struct {
	Config        Config `json:"config"`
	Posts         []Blog `json:"posts"`
	NextPostID    uint64 `json:"next_post_id"`
	NextCommentID uint64 `json:"next_comment_id"`
}

// NewPostRequest is the body of POST /api/posts.
type NewPostRequest struct {
	Title   *string  `json:"title" validate:"required"`
	Content *string  `json:"content" validate:"required"`
	Tags    []string `json:"tags" validate:"required"`
}

// UpdatePostRequest is the body of PUT /api/posts/{id}. Absent fields are
// left unchanged.
type UpdatePostRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// CommentRequest is the body of POST and PUT on comment routes.
type CommentRequest struct {
	Content *string `json:"content" validate:"required"`
}
