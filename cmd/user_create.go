package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"forum.GO/config"
	"forum.GO/hooks"
)

var (
	createUsername string
	createEmail    string
	createPassword string
	createAdmin    bool
)

var userCreateCmd = &cobra.Command{
	Use:   "user:create",
	Short: "Create a user account through the registration pipeline",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}
		h := hooks.Load(db)
		ctx := context.Background()

		data := hooks.RegisterInputData{
			Input: hooks.NewUser{
				Username: createUsername,
				Email:    createEmail,
				Password: createPassword,
			},
			Errors: hooks.InputErrors{},
		}
		data, err = h.RegisterInput.Invoke(ctx, data)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if data.Errors.HasErrors() {
			for field, msgs := range data.Errors {
				fmt.Printf("  %s: %s\n", field, strings.Join(msgs, "; "))
			}
			os.Exit(1)
		}

		u, err := h.RegisterUser.Invoke(ctx, data)
		if err != nil {
			fmt.Printf("Create failed: %v\n", err)
			os.Exit(1)
		}
		if createAdmin {
			u.IsAdmin = true
			u.IsModerator = true
			if err := db.Save(u).Error; err != nil {
				fmt.Printf("Granting admin failed: %v\n", err)
				os.Exit(1)
			}
		}
		if err := h.UserRegistered.Invoke(ctx, u); err != nil {
			fmt.Printf("Warning: registration listener failed: %v\n", err)
		}
		fmt.Printf("Created user %s (id=%d, admin=%v)\n", u.Username, u.UserID, u.IsAdmin)
	},
}

func init() {
	userCreateCmd.Flags().StringVarP(&createUsername, "username", "u", "", "Username (required)")
	userCreateCmd.MarkFlagRequired("username")
	userCreateCmd.Flags().StringVarP(&createEmail, "email", "e", "", "E-mail address (required)")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.Flags().StringVarP(&createPassword, "password", "p", "", "Password (required)")
	userCreateCmd.MarkFlagRequired("password")
	userCreateCmd.Flags().BoolVar(&createAdmin, "admin", false, "Grant admin and moderator rights")
	rootCmd.AddCommand(userCreateCmd)
}
