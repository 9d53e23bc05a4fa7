package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flixops/flixctl/myflix"
)

var (
	authUsername string
	authPassword string
	authEmail    string
	authBirthday string
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	Long: `Authenticate against the myFlix server. On success the username and
bearer token are saved to the session file, so subsequent commands do
not need to log in again.`,
	RunE: runLogin,
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new user account",
	RunE:  runRegister,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE:  runLogout,
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&authUsername, "username", "u", "", "username to log in as")
	loginCmd.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted if omitted)")

	registerCmd.Flags().StringVarP(&authUsername, "username", "u", "", "username for the new account")
	registerCmd.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted if omitted)")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "email address")
	registerCmd.Flags().StringVar(&authBirthday, "birthday", "", "birthday (YYYY-MM-DD)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

// promptPassword reads a password from the terminal without echo.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	if authUsername == "" {
		return fmt.Errorf("--username is required")
	}
	if authPassword == "" {
		var err error
		authPassword, err = promptPassword()
		if err != nil {
			return err
		}
	}

	resp, err := operations.Login(context.Background(), myflix.Credentials{
		Username: authUsername,
		Password: authPassword,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", resp.User.Username)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	if authUsername == "" {
		return fmt.Errorf("--username is required")
	}
	if authPassword == "" {
		var err error
		authPassword, err = promptPassword()
		if err != nil {
			return err
		}
	}

	created, err := operations.Register(context.Background(), myflix.User{
		Username: authUsername,
		Password: authPassword,
		Email:    authEmail,
		Birthday: authBirthday,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Registered user %s\n", created.Username)
	fmt.Println("Run 'flixctl login' to start a session.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	current := sessionStore.Get()
	if !current.Active() {
		fmt.Println("Not logged in.")
		return nil
	}

	if err := operations.Logout(); err != nil {
		return err
	}

	fmt.Printf("Logged out %s\n", current.Username)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	current := sessionStore.Get()
	if !current.Active() {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Println(current.Username)
	return nil
}
