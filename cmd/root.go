package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "forum",
	Short: "GoForum server and maintenance commands",
}

// Execute runs the CLI. Custom commands registered via Register are applied
// first, then the registry locks.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
