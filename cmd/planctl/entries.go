package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	entriesCmd := &cobra.Command{Use: "entries", Short: "Time entry operations"}

	// log
	var taskId, userId, date, note string
	var minutes int
	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Log time against a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if taskId == "" || userId == "" || date == "" {
				return fmt.Errorf("--task, --user and --date required")
			}
			payload := map[string]interface{}{
				"taskId":    taskId,
				"userId":    userId,
				"entryDate": date,
				"minutes":   minutes,
			}
			if note != "" {
				payload["note"] = note
			}
			data, err := doPostJSON("/api/v1/entries", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	logCmd.Flags().StringVarP(&taskId, "task", "t", "", "Task ID (required)")
	logCmd.Flags().StringVarP(&userId, "user", "u", "", "User ID (required)")
	logCmd.Flags().StringVarP(&date, "date", "d", "", "Entry date, YYYY-MM-DD (required)")
	logCmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Minutes worked")
	logCmd.Flags().StringVarP(&note, "note", "n", "", "Optional note")
	entriesCmd.AddCommand(logCmd)

	// list
	var filterTask, filterUser string
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List time entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/entries?limit=%d", limit)
			if filterTask != "" {
				path += "&taskId=" + filterTask
			}
			if filterUser != "" {
				path += "&userId=" + filterUser
			}
			data, err := doGet(path)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&filterTask, "task", "t", "", "Filter by task ID")
	listCmd.Flags().StringVarP(&filterUser, "user", "u", "", "Filter by user ID")
	listCmd.Flags().IntVarP(&limit, "limit", "l", 50, "Maximum entries to return")
	entriesCmd.AddCommand(listCmd)

	rootCmd.AddCommand(entriesCmd)
}
