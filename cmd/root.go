package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"larana.GO/app"
)

var rootCmd = &cobra.Command{
	Use:   "larana",
	Short: "Larana catalog back-office: bulk updates, marketplace import, exports",
}

// Execute applies registered commands and runs the CLI.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// mustApp builds the application or exits.
func mustApp() *app.App {
	a, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Startup failed: %v\n", err)
		os.Exit(1)
	}
	return a
}
