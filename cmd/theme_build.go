package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"forum.GO/config"
	themeService "forum.GO/service/theme"
)

var themeBuildCmd = &cobra.Command{
	Use:   "themes:build",
	Short: "Rebuild theme stylesheets flagged for building",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}
		start := time.Now()
		n, err := themeService.BuildPending(db)
		if err != nil {
			fmt.Printf("Build failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Rebuilt %d stylesheet(s) in %s\n", n, time.Since(start).Round(time.Millisecond))
	},
}

func init() {
	rootCmd.AddCommand(themeBuildCmd)
}
