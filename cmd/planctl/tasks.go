package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	tasksCmd := &cobra.Command{Use: "tasks", Short: "Task operations"}

	// create
	var projectId, title, status, priority, deadline string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectId == "" || title == "" {
				return fmt.Errorf("--project and --title required")
			}
			payload := map[string]interface{}{"title": title, "status": status, "priority": priority}
			if deadline != "" {
				payload["deadline"] = deadline
			}
			data, err := doPostJSON("/api/v1/projects/"+projectId+"/tasks", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&projectId, "project", "p", "", "Project ID (required)")
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Task title (required)")
	createCmd.Flags().StringVarP(&status, "status", "s", "todo", "Status (todo, in_progress, review, completed)")
	createCmd.Flags().StringVar(&priority, "priority", "medium", "Priority (low, medium, high)")
	createCmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (RFC 3339)")
	tasksCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get TASK_ID",
		Short: "Get task by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/v1/tasks/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	tasksCmd.AddCommand(getCmd)

	// list
	var listProject string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if listProject == "" {
				return fmt.Errorf("--project required")
			}
			data, err := doGet("/api/v1/projects/" + listProject + "/tasks")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	listCmd.Flags().StringVarP(&listProject, "project", "p", "", "Project ID (required)")
	tasksCmd.AddCommand(listCmd)

	// assign
	var assignee string
	assignCmd := &cobra.Command{
		Use:   "assign TASK_ID",
		Short: "Assign a task to a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if assignee == "" {
				return fmt.Errorf("--assignee required")
			}
			data, err := doPostJSON("/api/v1/tasks/"+args[0]+"/assign", map[string]interface{}{"assigneeId": assignee})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	assignCmd.Flags().StringVarP(&assignee, "assignee", "u", "", "Assignee user ID (required)")
	tasksCmd.AddCommand(assignCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete TASK_ID",
		Short: "Delete task by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doDelete("/api/v1/tasks/" + args[0])
		},
	}
	tasksCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(tasksCmd)
}
