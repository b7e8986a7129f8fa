package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/retrohunt/retro-hunter/internal/auth"
)

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Sign in and store the session token",
		Example: `  retro login --email ana@example.com --password hunter2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			session, err := a.auth.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if err := a.tokens.Set(session.Token); err != nil {
				return err
			}

			fmt.Printf("Signed in as %s\n", session.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cobra.CheckErr(cmd.MarkFlagRequired("email"))
	cobra.CheckErr(cmd.MarkFlagRequired("password"))

	return cmd
}

func registerCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Create an account and sign in",
		Example: `  retro register --name Ana --email ana@example.com --password hunter2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			session, err := a.auth.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			if err := a.tokens.Set(session.Token); err != nil {
				return err
			}

			fmt.Printf("Account created for %s\n", session.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cobra.CheckErr(cmd.MarkFlagRequired("email"))
	cobra.CheckErr(cmd.MarkFlagRequired("password"))

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			// Best effort server-side; the local token goes away regardless.
			if token, err := a.tokens.Token(); err == nil {
				if err := a.auth.Logout(cmd.Context(), token); err != nil {
					a.log.Warn("server-side logout failed", "error", err)
				}
			}
			if err := a.tokens.Clear(); err != nil {
				return err
			}

			fmt.Println("Signed out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			user, err := currentUser(cmd, a)
			if errors.Is(err, auth.ErrNotAuthenticated) {
				fmt.Println("Not signed in.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s <%s> (id %s)\n", user.Name, user.Email, user.ID)
			return nil
		},
	}
}
