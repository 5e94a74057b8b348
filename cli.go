//go:build cli
// +build cli

package main

import (
	"larana.GO/cmd"
	"larana.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
