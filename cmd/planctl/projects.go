package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	projectsCmd := &cobra.Command{Use: "projects", Short: "Project operations"}

	// create
	var clientId, name, description, status, deadline string
	var budget float64
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientId == "" || name == "" {
				return fmt.Errorf("--client and --name required")
			}
			payload := map[string]interface{}{"clientId": clientId, "name": name, "status": status}
			if description != "" {
				payload["description"] = description
			}
			if deadline != "" {
				payload["deadline"] = deadline
			}
			if cmd.Flags().Changed("budget") {
				payload["budget"] = budget
			}
			data, err := doPostJSON("/api/v1/projects", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&clientId, "client", "c", "", "Client user ID (required)")
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Project name (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	createCmd.Flags().StringVarP(&status, "status", "s", "draft", "Status (draft, active, completed, archived)")
	createCmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (RFC 3339)")
	createCmd.Flags().Float64VarP(&budget, "budget", "b", 0, "Budget amount")
	projectsCmd.AddCommand(createCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get PROJECT_ID",
		Short: "Get project by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/v1/projects/" + args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	projectsCmd.AddCommand(getCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/v1/projects")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	projectsCmd.AddCommand(listCmd)

	// delete
	deleteCmd := &cobra.Command{
		Use:   "delete PROJECT_ID",
		Short: "Delete project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doDelete("/api/v1/projects/" + args[0])
		},
	}
	projectsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(projectsCmd)
}
