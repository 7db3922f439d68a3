// Package inkpost is a personal blog engine built with Go, Echo, and templ.
// Posts are flat files: a front matter block followed by a markdown body.
// The engine serves a home page, a blog index, and one page per post,
// plus an RSS feed and a sitemap.
//
// Users provide their own templ components via the ViewFuncs struct (the
// views package ships a default set), and inkpost handles the routing,
// middleware, and post loading.
package inkpost

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates.
type ViewFuncs struct {
	Home        func(site SiteConfig, posts []Post) templ.Component
	Blog        func(site SiteConfig, posts []Post) templ.Component
	Post        func(site SiteConfig, post Post) templ.Component
	NotFound    func(site SiteConfig) templ.Component
	ServerError func(site SiteConfig) templ.Component
}

func (v ViewFuncs) complete() bool {
	return v.Home != nil && v.Blog != nil && v.Post != nil &&
		v.NotFound != nil && v.ServerError != nil
}

// App is the central inkpost application. It wires together the post store,
// handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Views  ViewFuncs

	customRoutes []func(*App)
	staticDir    string
}

// New creates a new inkpost App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, middleware, routes, and starts the server.
func (a *App) Start() error {
	if !a.Views.complete() {
		return fmt.Errorf("inkpost: all ViewFuncs are required")
	}

	store, err := NewStore(a.Config.PostsDir)
	if err != nil {
		return err
	}
	a.Store = store

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
// This is a convenience function for use in scaffolded main.go files.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkpost: required environment variable %s is not set", key)
	}
	return v
}
