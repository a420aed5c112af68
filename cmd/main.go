package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Базы часовых поясов встроены в бинарник: рабочие часы хранятся в IANA зонах
	_ "time/tzdata"
)

var (
	// Version задается при сборке
	Version = "dev"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "interview-scheduler",
		Short: "Interview scheduling and availability service",
		Long: `SMC-InterviewScheduler computes free time for interview panels,
generates and books interview slots, detects conflicts and ranks suggestions.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML config file")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(migrateCmd(&configPath))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("interview-scheduler %s\n", Version)
		},
	})

	return root
}
