package canister

import (
	"fmt"

	"blogstore/app/controllers"
	"blogstore/app/models"
	"blogstore/app/repositories"
	"blogstore/app/routes"
	"blogstore/app/services"
)

// Options configure a new Canister.
type Options struct {
	Config                  models.Config
	EnforceCommentOwnership bool
	Clock                   services.Clock
}

// DefaultOptions returns the initial configuration of a fresh deployment.
func DefaultOptions() Options {
	return Options{
		Config:                  models.DefaultConfig(),
		EnforceCommentOwnership: true,
		Clock:                   services.SystemClock,
	}
}

// Canister owns the whole store state and exposes it through the RPC
// methods and the two HTTP entry points. It is not safe for concurrent use;
// the host serializes every call.
type Canister struct {
	store  *services.ContentStore
	config *services.ConfigService
	router *routes.Router
}

// New wires the stores, services, controllers and router together.
func New(opts Options) *Canister {
	configStore := repositories.NewConfigStore(opts.Config)
	store := services.NewContentStore(
		repositories.NewMemoryPostRepository(),
		configStore,
		repositories.NewIdAllocator(),
		services.Options{EnforceCommentOwnership: opts.EnforceCommentOwnership, Clock: opts.Clock},
	)
	config := services.NewConfigService(configStore)

	return &Canister{
		store:  store,
		config: config,
		router: routes.NewRouter(
			controllers.NewPostController(store),
			controllers.NewCommentController(store),
			controllers.NewConfigController(config),
		),
	}
}

// Greet is the liveness query.
func (c *Canister) Greet(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

func (c *Canister) GetConfig() models.Config {
	return c.config.GetConfig()
}

func (c *Canister) ReplaceConfig(cfg models.Config) {
	c.config.ReplaceConfig(cfg)
}

func (c *Canister) AddTag(tag string) Result[Unit] {
	return resultOf(Unit{}, c.config.AddTag(tag))
}

func (c *Canister) RemoveTag(tag string) Result[Unit] {
	return resultOf(Unit{}, c.config.RemoveTag(tag))
}

func (c *Canister) CreatePost(caller models.Principal, title, content string, tags []string) Result[models.Blog] {
	return resultOf(c.store.CreatePost(caller, title, content, tags))
}

// EditPost changes only the fields that are non-nil.
func (c *Canister) EditPost(caller models.Principal, id uint64, title, content *string, tags *[]string) Result[models.Blog] {
	return resultOf(c.store.EditPost(caller, id, title, content, tags))
}

func (c *Canister) DeletePost(caller models.Principal, id uint64) Result[Unit] {
	return resultOf(Unit{}, c.store.DeletePost(caller, id))
}

func (c *Canister) ListPosts() []models.Blog {
	return c.store.ListPosts()
}

// GetPost returns nil when no post has the given id.
func (c *Canister) GetPost(id uint64) *models.Blog {
	post, ok := c.store.GetPost(id)
	if !ok {
		return nil
	}
	return &post
}

func (c *Canister) AddComment(caller models.Principal, postID uint64, content string) Result[models.Comment] {
	return resultOf(c.store.AddComment(caller, postID, content))
}

func (c *Canister) EditComment(caller models.Principal, postID, commentID uint64, content string) Result[models.Comment] {
	return resultOf(c.store.EditComment(caller, postID, commentID, content))
}

func (c *Canister) RemoveComment(caller models.Principal, postID, commentID uint64) Result[Unit] {
	return resultOf(Unit{}, c.store.RemoveComment(caller, postID, commentID))
}

// HTTPRequest is the read entry. It never mutates state; mutating requests
// are answered with the upgrade signal.
func (c *Canister) HTTPRequest(req models.HTTPRequest) models.HTTPResponse {
	return c.router.HandleRead(req)
}

// HTTPRequestUpdate is the write entry, run on behalf of caller.
func (c *Canister) HTTPRequestUpdate(caller models.Principal, req models.HTTPRequest) models.HTTPResponse {
	return c.router.HandleWrite(caller, req)
}

// Snapshot captures the full state for checkpointing.
func (c *Canister) Snapshot() models.Snapshot {
	return c.store.Snapshot()
}

// Restore replaces the full state with a checkpoint.
func (c *Canister) Restore(snapshot models.Snapshot) {
	c.store.Restore(snapshot)
}
