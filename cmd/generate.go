package cmd

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/UgbabeOG/the-circuit-soul-blog/internal/ai"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/cache"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/config"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/pipeline"
	"github.com/UgbabeOG/the-circuit-soul-blog/internal/post"
)

var flagSkipImages bool

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate the post batch without launching the TUI",
	Long: `Run the full generation pipeline headless: one search-grounded post per
configured category, then one image per generated post. The result
replaces the cached batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		gen, err := ai.New(cfg)
		if err != nil {
			return err
		}

		db, err := cache.Open(config.CachePath())
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer db.Close()

		ctx := context.Background()
		topics := cfg.CategoryTopics()
		fmt.Printf("Generating %d posts...\n", len(topics))

		result := pipeline.GenerateAll(ctx, gen, topics)
		for _, e := range result.Errs {
			fmt.Printf("  [warn] %v\n", e)
		}
		if result.Failed() {
			return fmt.Errorf("generation failed for every topic")
		}

		snap := cache.Snapshot{Posts: result.Posts, GeneratedAt: time.Now()}
		if err := db.Save(snap); err != nil {
			return fmt.Errorf("caching posts: %w", err)
		}
		for _, p := range result.Posts {
			fmt.Printf("  %-24s %s\n", p.Category, p.Slug)
		}

		if flagSkipImages {
			return nil
		}

		fmt.Println("Generating images...")
		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for _, p := range snap.Posts {
			wg.Add(1)
			go func(p post.Post) {
				defer wg.Done()
				url, err := pipeline.BackfillImage(ctx, gen, config.ImagesDir(), p)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					fmt.Printf("  [warn] %v\n", err)
					return
				}
				snap.Posts, _ = pipeline.ApplyImage(snap.Posts, p.Slug, url)
			}(p)
		}
		wg.Wait()

		if err := db.Save(snap); err != nil {
			return fmt.Errorf("caching images: %w", err)
		}
		fmt.Printf("Done: %d posts cached.\n", len(snap.Posts))
		return nil
	},
}

func init() {
	generateCmd.Flags().BoolVar(&flagSkipImages, "skip-images", false, "skip the image backfill phase")
}
