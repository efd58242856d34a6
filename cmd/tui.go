package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/ai"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/cache"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/config"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := cache.Open(config.CachePath())
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer db.Close()

	opts := tui.RunOpts{
		Cfg:     cfg,
		DB:      db,
		Refresh: flagRefresh,
		Slug:    flagPost,
		Version: version,
	}

	// A missing key or failed client construction becomes a persistent
	// banner; generation is never attempted, cached posts still render.
	gen, err := ai.New(cfg)
	if err != nil {
		opts.InitErr = err.Error()
	} else {
		opts.Gen = gen
	}

	if flagCategory != "" {
		cat, err := post.ResolveAlias(flagCategory)
		if err != nil {
			return err
		}
		opts.Category = cat
	}

	return tui.Run(opts)
}
