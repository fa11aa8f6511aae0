package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCommand() *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			sess, err := a.client.Login(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if err := a.session.Set(sess); err != nil {
				return err
			}

			fmt.Printf("Logged in as %s\n", sess.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username (required)")
	_ = cmd.MarkFlagRequired("username")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")

	return cmd
}

func newRegisterCommand() *cobra.Command {
	var username string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}

			sess, err := a.client.Register(cmd.Context(), username, email, password)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}
			if err := a.session.Set(sess); err != nil {
				return err
			}

			fmt.Printf("Registered and logged in as %s\n", sess.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username (required)")
	_ = cmd.MarkFlagRequired("username")
	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")

	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.session.Logout(); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}
			user, ok, err := a.session.User()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("Logged in (no user profile stored)")
				return nil
			}
			fmt.Printf("%s <%s>\n", user.Username, user.Email)
			return nil
		},
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(data), nil
}
