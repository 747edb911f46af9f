package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/yukikurage/team-task-api/internal/authz"
	"github.com/yukikurage/team-task-api/internal/models"
	"github.com/yukikurage/team-task-api/internal/repository"
	"github.com/yukikurage/team-task-api/internal/services"
)

// operator acts on behalf of whoever runs the CLI against the database.
var operator = &authz.Principal{Role: models.RoleAdmin}

func createAdminCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a user with the admin role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			users := services.NewUserService(repository.NewStore(db), cfg.AdminKey)

			user, err := users.CreateUser(cmd.Context(), services.CreateUserInput{
				Name:     name,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			role := models.RoleAdmin
			user, err = users.UpdateUser(cmd.Context(), user.ID, services.UpdateUserInput{Role: &role})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created admin %d (%s)\n", user.ID, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func taskHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "task-history <task-id>",
		Short: "Print the status history of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			tasks := services.NewTaskService(repository.NewStore(db))

			entries, err := tasks.TaskHistory(cmd.Context(), operator, taskID)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"ID", "Changed At", "Changed By", "From", "To"})
			for _, e := range entries {
				tw.AppendRow(table.Row{e.ID, e.ChangedAt.Format("2006-01-02 15:04:05"), e.ChangedBy, e.OldStatus, e.NewStatus})
			}
			tw.Render()
			return nil
		},
	}
}
