package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	statsCmd := &cobra.Command{Use: "stats", Short: "Statistics queries"}

	for _, sub := range []struct {
		use, short, path string
	}{
		{"projects", "Project portfolio statistics", "/api/v1/stats/projects"},
		{"tasks", "Task statistics including overdue count", "/api/v1/stats/tasks"},
		{"users", "User statistics", "/api/v1/stats/users"},
		{"budget", "Budget positions per project", "/api/v1/stats/budget"},
	} {
		path := sub.path
		statsCmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			RunE: func(cmd *cobra.Command, args []string) error {
				data, err := doGet(path)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(os.Stdout, string(data))
				return nil
			},
		})
	}

	// time requires an inclusive date window
	var start, end string
	timeCmd := &cobra.Command{
		Use:   "time",
		Short: "Time statistics within an inclusive date window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if start == "" || end == "" {
				return fmt.Errorf("--start and --end required")
			}
			data, err := doGet(fmt.Sprintf("/api/v1/stats/time?start=%s&end=%s", start, end))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	timeCmd.Flags().StringVarP(&start, "start", "s", "", "Window start, YYYY-MM-DD (required)")
	timeCmd.Flags().StringVarP(&end, "end", "e", "", "Window end, YYYY-MM-DD (required)")
	statsCmd.AddCommand(timeCmd)

	rootCmd.AddCommand(statsCmd)
}
