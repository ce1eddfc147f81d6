package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag   string
	actorFlag string
	rootCmd   = &cobra.Command{
		Use:   "planctl",
		Short: "CLI client for the Planora REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Planora service base URL")
	rootCmd.PersistentFlags().StringVar(&actorFlag, "actor", "", "Actor ID recorded in the activity feed")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
