package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "picbot",
	Short: "PicBot is a dialog-driven picture assistant bot",
	Long:  `PicBot routes conversation turns through stack-based waterfall dialogs: it can search for pictures, share them, and order prints.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Local development convenience; a missing .env is fine.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to the picbot config file")
}
