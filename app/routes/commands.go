package routes

import (
	"net/http"
	"strings"
)

// CommandKind names the store operation a request maps to.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdListPosts
	CmdGetPost
	CmdListComments
	CmdGetConfig
	CmdCreatePost
	CmdEditPost
	CmdDeletePost
	CmdAddComment
	CmdEditComment
	CmdRemoveComment
)

var commandNames = map[CommandKind]string{
	CmdNone:          "none",
	CmdListPosts:     "list_posts",
	CmdGetPost:       "get_post",
	CmdListComments:  "list_comments",
	CmdGetConfig:     "get_config",
	CmdCreatePost:    "create_post",
	CmdEditPost:      "edit_post",
	CmdDeletePost:    "delete_post",
	CmdAddComment:    "add_comment",
	CmdEditComment:   "edit_comment",
	CmdRemoveComment: "remove_comment",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a classified request, built once and executed by whichever
// entry point is allowed to run it.
type Command struct {
	Kind      CommandKind
	Method    string
	Path      string
	PostID    uint64
	CommentID uint64
	Offset    int
	Limit     int
	Body      []byte
	// Err is set when the route matched but a path parameter did not parse.
	Err error
}

// Mutating reports whether the request must run on the write entry. Every
// POST, PUT and DELETE under the API prefix qualifies, routed or not.
func (c Command) Mutating() bool {
	switch c.Method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return c.Path == APIPrefix || strings.HasPrefix(c.Path, APIPrefix+"/")
	}
	return false
}
