package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var ozonImportCmd = &cobra.Command{
	Use:   "ozon:import",
	Short: "Import new Ozon products with the saved field mapping",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		start := time.Now()
		res, err := a.Deps.Ozon.Run(ctx)
		if err != nil {
			fmt.Printf("Ozon import failed: %v\n", err)
			os.Exit(1)
		}
		printResult("Ozon import", res, time.Since(start))
	},
}

func init() {
	Register(ozonImportCmd)
}
