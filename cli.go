//go:build cli
// +build cli

package main

import (
	_ "forum.GO/custom"

	"forum.GO/cmd"
	"forum.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
