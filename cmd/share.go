package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/cache"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/config"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/share"
)

var flagNoCopy bool

var shareCmd = &cobra.Command{
	Use:   "share <slug>",
	Short: "Copy the shareable link for a cached post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		db, err := cache.Open(config.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer db.Close()

		snap, ok, err := db.Load()
		if err != nil {
			return fmt.Errorf("reading cache: %w", err)
		}
		if !ok {
			return fmt.Errorf("no cached posts; run circuitsoul first")
		}

		slug := args[0]
		found := false
		for _, p := range snap.Posts {
			if p.Slug == slug {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no post with slug %q", slug)
		}

		url, err := share.URL(cfg.SiteURL, slug)
		if err != nil {
			return err
		}

		if !flagNoCopy {
			if err := share.Copy(url); err != nil {
				fmt.Printf("[warn] clipboard unavailable: %v\n", err)
			}
		}
		fmt.Println(url)
		return nil
	},
}

func init() {
	shareCmd.Flags().BoolVar(&flagNoCopy, "no-copy", false, "print the link without touching the clipboard")
}
