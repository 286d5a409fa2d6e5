package routes

import (
	"net/http"
	"strconv"
	"strings"

	"blogstore/app/controllers"
	"blogstore/app/models"

	"github.com/gorilla/mux"
)

const (
	// APIPrefix is the fixed prefix of every API route.
	APIPrefix = "/api"

	DefaultOffset = 0
	DefaultLimit  = 50
)

// Router classifies HTTP-style calls and dispatches them to controllers. The
// gorilla/mux table is only used for matching; no http.Handler is served.
type Router struct {
	mux      *mux.Router
	kinds    map[*mux.Route]CommandKind
	posts    *controllers.PostController
	comments *controllers.CommentController
	config   *controllers.ConfigController
}

// NewRouter defines the API route table.
func NewRouter(posts *controllers.PostController, comments *controllers.CommentController, config *controllers.ConfigController) *Router {
	r := &Router{
		mux:      mux.NewRouter(),
		kinds:    make(map[*mux.Route]CommandKind),
		posts:    posts,
		comments: comments,
		config:   config,
	}

	// Read routes
	r.route(http.MethodGet, "/posts", CmdListPosts)
	r.route(http.MethodGet, "/posts/{id}", CmdGetPost)
	r.route(http.MethodGet, "/posts/{id}/comments", CmdListComments)
	r.route(http.MethodGet, "/config", CmdGetConfig)

	// Write routes
	r.route(http.MethodPost, "/posts", CmdCreatePost)
	r.route(http.MethodPut, "/posts/{id}", CmdEditPost)
	r.route(http.MethodDelete, "/posts/{id}", CmdDeletePost)
	r.route(http.MethodPost, "/posts/{id}/comments", CmdAddComment)
	r.route(http.MethodPut, "/posts/{id}/comments/{commentId}", CmdEditComment)
	r.route(http.MethodDelete, "/posts/{id}/comments/{commentId}", CmdRemoveComment)

	return r
}

func (r *Router) route(method, path string, kind CommandKind) {
	route := r.mux.Methods(method).Path(APIPrefix + path).Name(kind.String())
	r.kinds[route] = kind
}

// Classify maps a request onto a Command without touching any state. Methods
// match case-sensitively, so "post" is not POST.
func (r *Router) Classify(req models.HTTPRequest) Command {
	cmd := Command{Method: req.Method, Path: rawPath(req.URL), Body: req.Body}

	httpReq, err := http.NewRequest(req.Method, req.URL, nil)
	if err != nil {
		return cmd
	}
	cmd.Path = httpReq.URL.Path

	var match mux.RouteMatch
	if !r.mux.Match(httpReq, &match) || match.Route == nil {
		return cmd
	}
	cmd.Kind = r.kinds[match.Route]

	switch cmd.Kind {
	case CmdListPosts:
		query := httpReq.URL.Query()
		cmd.Offset = queryInt(query.Get("offset"), DefaultOffset)
		cmd.Limit = queryInt(query.Get("limit"), DefaultLimit)
	case CmdGetPost, CmdEditPost, CmdDeletePost, CmdListComments, CmdAddComment:
		if cmd.PostID, err = parseID(match.Vars["id"]); err != nil {
			cmd.Err = models.ErrInvalidPostID
		}
	case CmdEditComment, CmdRemoveComment:
		postID, postErr := parseID(match.Vars["id"])
		commentID, commentErr := parseID(match.Vars["commentId"])
		if postErr != nil || commentErr != nil {
			cmd.Err = models.ErrInvalidIDs
		}
		cmd.PostID, cmd.CommentID = postID, commentID
	}
	return cmd
}

// HandleRead is the read-only entry point. It never mutates state: mutating
// requests only receive the upgrade signal.
func (r *Router) HandleRead(req models.HTTPRequest) models.HTTPResponse {
	if req.Method == http.MethodOptions {
		return controllers.NoContent()
	}

	cmd := r.Classify(req)
	if cmd.Mutating() {
		return controllers.Upgrade()
	}
	if cmd.Err != nil {
		return controllers.SendError(cmd.Err)
	}

	switch cmd.Kind {
	case CmdListPosts:
		return r.posts.Index(cmd.Offset, cmd.Limit)
	case CmdGetPost:
		return r.posts.Show(cmd.PostID)
	case CmdListComments:
		return r.comments.Index(cmd.PostID)
	case CmdGetConfig:
		return r.config.Show()
	}
	return controllers.NotFound()
}

// HandleWrite is the state-mutating entry point.
func (r *Router) HandleWrite(caller models.Principal, req models.HTTPRequest) models.HTTPResponse {
	cmd := r.Classify(req)
	if !cmd.Mutating() {
		return controllers.MethodNotAllowed()
	}
	return r.Execute(caller, cmd)
}

// Execute runs a mutating command on behalf of caller.
func (r *Router) Execute(caller models.Principal, cmd Command) models.HTTPResponse {
	if cmd.Kind == CmdNone {
		return controllers.MethodNotAllowed()
	}
	if cmd.Err != nil {
		return controllers.SendError(cmd.Err)
	}

	switch cmd.Kind {
	case CmdCreatePost:
		return r.posts.Create(caller, cmd.Body)
	case CmdEditPost:
		return r.posts.Edit(caller, cmd.PostID, cmd.Body)
	case CmdDeletePost:
		return r.posts.Delete(caller, cmd.PostID)
	case CmdAddComment:
		return r.comments.Create(caller, cmd.PostID, cmd.Body)
	case CmdEditComment:
		return r.comments.Edit(caller, cmd.PostID, cmd.CommentID, cmd.Body)
	case CmdRemoveComment:
		return r.comments.Delete(caller, cmd.PostID, cmd.CommentID)
	}
	return controllers.MethodNotAllowed()
}

func rawPath(url string) string {
	path, _, _ := strings.Cut(url, "?")
	return path
}

func parseID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func queryInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
