package cli

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"congregate/internal/auth"
	"congregate/internal/config"
	"congregate/internal/model"
	"congregate/internal/store"
	apperrors "congregate/pkg/errors"
)

func newUserCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUserAddCmd(configPath))
	cmd.AddCommand(newUserListCmd(configPath))
	return cmd
}

func newUserAddCmd(configPath *string) *cobra.Command {
	var (
		name     string
		email    string
		role     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Create an admin or editor account",
		Long:  `Create a new account that can sign in to the admin area. When --password is omitted, the password is read from stdin, which keeps it out of shell history.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			username := args[0]

			if err := apperrors.ValidateUsername(username); err != nil {
				return err
			}
			userRole := model.Role(role)
			if userRole != model.RoleAdmin && userRole != model.RoleEditor {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "role must be admin or editor, got %q", role)
			}

			if password == "" {
				cmd.Print("Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read password")
				}
				password = strings.TrimRight(line, "\r\n")
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer st.Close()

			if name == "" {
				name = username
			}
			user := &model.User{
				Username:     username,
				Name:         name,
				Email:        email,
				PasswordHash: hash,
				Role:         userRole,
			}
			if err := st.CreateUser(user); err != nil {
				return err
			}

			logger.Info("user created", "username", username, "role", userRole)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the username)")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&role, "role", string(model.RoleEditor), "account role: admin or editor")
	cmd.Flags().StringVar(&password, "password", "", "password (read from stdin when omitted)")
	return cmd
}

func newUserListCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer st.Close()

			users, err := st.ListUsers()
			if err != nil {
				return err
			}
			for _, u := range users {
				cmd.Printf("%s\t%s\t%s\n", u.Username, u.Role, u.Name)
			}
			return nil
		},
	}
}
