package canister

import (
	"encoding/json"
	"fmt"
	"sort"

	"blogstore/app/models"
)

// Method is a named RPC entry. Query methods must not change state.
type Method struct {
	Name  string
	Query bool
	call  func(c *Canister, caller models.Principal, args []byte) (interface{}, error)
}

// Call decodes args and runs the method against c.
func (m Method) Call(c *Canister, caller models.Principal, args []byte) (interface{}, error) {
	return m.call(c, caller, args)
}

type tagArgs struct {
	Tag string `json:"tag"`
}

type postArgs struct {
	ID      uint64    `json:"id"`
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

type commentArgs struct {
	PostID    uint64 `json:"post_id"`
	CommentID uint64 `json:"comment_id"`
	Content   string `json:"content"`
}

var methods = map[string]Method{}

func register(query bool, call func(c *Canister, caller models.Principal, args []byte) (interface{}, error), names ...string) {
	for _, name := range names {
		methods[name] = Method{Name: name, Query: query, call: call}
	}
}

func init() {
	register(true, func(c *Canister, _ models.Principal, args []byte) (interface{}, error) {
		var in struct {
			Name string `json:"name"`
		}
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return c.Greet(in.Name), nil
	}, "greet")

	register(true, func(c *Canister, _ models.Principal, _ []byte) (interface{}, error) {
		return c.GetConfig(), nil
	}, "get_config")

	register(false, func(c *Canister, _ models.Principal, args []byte) (interface{}, error) {
		var cfg models.Config
		if err := decodeArgs(args, &cfg); err != nil {
			return nil, err
		}
		c.ReplaceConfig(cfg)
		return Unit{}, nil
	}, "replace_config", "add_config")

	register(false, func(c *Canister, _ models.Principal, args []byte) (interface{}, error) {
		var in tagArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return c.AddTag(in.Tag), nil
	}, "add_tag", "add_tag_to_config")

	register(false, func(c *Canister, _ models.Principal, args []byte) (interface{}, error) {
		var in tagArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return c.RemoveTag(in.Tag), nil
	}, "remove_tag", "remove_tag_from_config")

	register(false, func(c *Canister, caller models.Principal, args []byte) (interface{}, error) {
		var in models.NewPostRequest
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		if err := in.Validate(); err != nil {
			return nil, err
		}
		return c.CreatePost(caller, *in.Title, *in.Content, in.Tags), nil
	}, "create_post", "add_blog")

	register(false, func(c *Canister, caller models.Principal, args []byte) (interface{}, error) {
		var in postArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return c.EditPost(caller, in.ID, in.Title, in.Content, in.Tags), nil
	}, "edit_post", "edit_blog")

	register(false, func(c *Canister, caller models.Principal, args []byte) (interface{}, error) {
		var in postArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return c.DeletePost(caller, in.ID), nil
	}, "delete_post", "remove_blog")

	register(true, func(c *Canister, _ models.Principal, _ []byte) (interface{}, error) {
		return c.ListPosts(), nil
	}, "list_posts", "get_blogs")

	register(true, func(c *Canister, _ models.Principal, args []byte) (interface{}, error) {
		var in postArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return c.GetPost(in.ID), nil
	}, "get_post")

	register(false, func(c *Canister, caller models.Principal, args []byte) (interface{}, error) {
		var in commentArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return c.AddComment(caller, in.PostID, in.Content), nil
	}, "add_comment")

	register(false, func(c *Canister, caller models.Principal, args []byte) (interface{}, error) {
		var in commentArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return c.EditComment(caller, in.PostID, in.CommentID, in.Content), nil
	}, "edit_comment")

	register(false, func(c *Canister, caller models.Principal, args []byte) (interface{}, error) {
		var in commentArgs
		if err := decodeArgs(args, &in); err != nil {
			return nil, err
		}
		return c.RemoveComment(caller, in.PostID, in.CommentID), nil
	}, "remove_comment")
}

// Lookup finds an RPC method by name.
func Lookup(name string) (Method, bool) {
	m, ok := methods[name]
	return m, ok
}

// MethodNames lists every registered name, aliases included.
func MethodNames() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// decodeArgs accepts an empty argument list as the zero value.
func decodeArgs(args []byte, target interface{}) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, target); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	return nil
}
