package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	noColor   bool
	debugFlag bool
	modelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "asha",
	Short: "Career advisory assistant for women in tech",
	Long: `asha is a career advisory assistant for women in tech. It combines a
self-refreshing knowledge base with a set of real-time research tools for
jobs, skills, interviews, events, and wellness.

Run without a subcommand to start an interactive chat session.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "override the configured language model")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the asha version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("asha version %s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
