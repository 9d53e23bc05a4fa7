package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flixops/flixctl/myflix"
)

var (
	editUsername string
	editPassword string
	editEmail    string
	editBirthday string
	noConfirm    bool
)

// userCmd groups the profile commands
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage the logged-in user's profile",
}

// userShowCmd represents the user show command
var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile",
	RunE:  runUserShow,
}

// userEditCmd represents the user edit command
var userEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Update profile fields",
	Long: `Update the logged-in user's profile. Only the fields passed as flags
are sent to the server; everything else stays unchanged.`,
	RunE: runUserEdit,
}

// userDeleteCmd represents the user delete command
var userDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the account permanently",
	RunE:  runUserDelete,
}

func init() {
	userEditCmd.Flags().StringVar(&editUsername, "username", "", "new username")
	userEditCmd.Flags().StringVar(&editPassword, "password", "", "new password")
	userEditCmd.Flags().StringVar(&editEmail, "email", "", "new email address")
	userEditCmd.Flags().StringVar(&editBirthday, "birthday", "", "new birthday (YYYY-MM-DD)")

	userDeleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")

	userCmd.AddCommand(userShowCmd)
	userCmd.AddCommand(userEditCmd)
	userCmd.AddCommand(userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserShow(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	user, err := operations.GetUser(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Username: %s\n", user.Username)
	if user.Email != "" {
		fmt.Printf("Email:    %s\n", user.Email)
	}
	if user.Birthday != "" {
		fmt.Printf("Birthday: %s\n", user.Birthday)
	}
	fmt.Printf("Favorites: %d\n", len(user.FavoriteMovies))
	return nil
}

func runUserEdit(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	update := myflix.UserUpdate{
		Username: editUsername,
		Password: editPassword,
		Email:    editEmail,
		Birthday: editBirthday,
	}
	if update == (myflix.UserUpdate{}) {
		return fmt.Errorf("nothing to update; pass at least one of --username, --password, --email, --birthday")
	}

	user, err := operations.EditUser(context.Background(), update)
	if err != nil {
		return err
	}

	fmt.Printf("Profile updated for %s\n", user.Username)
	return nil
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	if err := requireSession(); err != nil {
		return err
	}

	username := sessionStore.Get().Username
	if !noConfirm {
		fmt.Printf("This permanently deletes the account %q. Type the username to confirm: ", username)
		reader := bufio.NewReader(os.Stdin)
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if strings.TrimSpace(input) != username {
			fmt.Println("Aborted.")
			return nil
		}
	}

	confirmation, err := operations.DeleteUser(context.Background())
	if err != nil {
		return err
	}

	if confirmation != "" {
		fmt.Println(confirmation)
	}
	fmt.Println("Account deleted and session cleared.")
	return nil
}
