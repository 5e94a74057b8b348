package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"larana.GO/cron"
	"larana.GO/cron/jobs"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustApp()
		defer a.Close()
		jobs.Register(a.Deps)

		if jobName != "" {
			name := strings.ToLower(jobName)
			if j, ok := cron.Lookup(name); ok {
				fmt.Printf("Running cron job: %s\n", jobName)
				j.Run(cmd.Context())
				return
			}
			fmt.Printf("Unknown job: %s\n", jobName)
			os.Exit(1)
		}
		fmt.Println("Starting cron scheduler...")
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		c, err := cron.StartCron(ctx, a.Log.Named("cron"))
		if err != nil {
			fmt.Printf("Cron failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Cron scheduler started. Press Ctrl+C to exit.")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
		<-c.Stop().Done()
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	Register(cronStartCmd)
}
