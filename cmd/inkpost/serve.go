package main

import (
	"os"

	"github.com/halvard/inkpost"
	"github.com/halvard/inkpost/views"
)

// runServe starts a blog from the current directory: posts in ./posts,
// static assets in ./public, optional site.yml, env vars winning over both.
func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app := inkpost.New(cfg, views.Default())
	return app.Start()
}

func loadConfig() (inkpost.SiteConfig, error) {
	var cfg inkpost.SiteConfig

	configPath := inkpost.EnvOr("SITE_CONFIG", "site.yml")
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = inkpost.LoadSiteFile(configPath)
		if err != nil {
			return inkpost.SiteConfig{}, err
		}
	}

	cfg.Name = inkpost.EnvOr("SITE_NAME", cfg.Name)
	cfg.URL = inkpost.EnvOr("SITE_URL", cfg.URL)
	cfg.Description = inkpost.EnvOr("SITE_DESCRIPTION", cfg.Description)
	cfg.Author = inkpost.EnvOr("SITE_AUTHOR", cfg.Author)
	cfg.Addr = inkpost.EnvOr("ADDR", cfg.Addr)
	cfg.PostsDir = inkpost.EnvOr("POSTS_DIR", cfg.PostsDir)
	return cfg, nil
}
