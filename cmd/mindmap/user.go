package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var userPassword string

var UserCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var UserCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Provision an account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		user, err := authService.Create(args[0], userPassword)
		if err != nil {
			logger.Fatal("could not create user:", err)
		}

		logger.Printf("created user %s (id %d)", user.Username, user.ID)
	},
}

var UserListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Run: func(cmd *cobra.Command, args []string) {
		users, err := userStore.List()
		if err != nil {
			logger.Fatal("could not list users:", err)
		}

		for _, user := range users {
			fmt.Printf("%d\t%s\t%s\n", user.ID, user.Username, user.CreatedAt.Format("2006-01-02 15:04:05"))
		}
	},
}

func init() {
	UserCreateCmd.Flags().StringVar(&userPassword, "password", "", "password of the new account")
	UserCmd.AddCommand(UserCreateCmd)
	UserCmd.AddCommand(UserListCmd)
	RootCmd.AddCommand(UserCmd)
}
