package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig   string
	flagRefresh  bool
	flagPost     string
	flagCategory string
)

var rootCmd = &cobra.Command{
	Use:   "circuitsoul",
	Short: "An AI-written tech blog in your terminal",
	Long: `The Circuit Soul generates a small batch of search-grounded tech posts
with a generative model, caches them locally, and lets you read,
filter, and share them from a terminal dashboard.`,
	RunE: runTUI,
}

func init() {
	cobra.OnInitialize(func() {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		})))
	})

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "force regeneration before launching")
	rootCmd.Flags().StringVar(&flagPost, "post", "", "deep-link: scroll to and highlight this post slug")
	rootCmd.Flags().StringVar(&flagCategory, "category", "", "start filtered to a category (e.g. ai, security)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(clearCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("circuitsoul %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
