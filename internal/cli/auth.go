package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"rbconsole/internal/widgets"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			if passwordStdin {
				pw, err := readLine(app.stdin)
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = pw
			}
			if password == "" {
				return fmt.Errorf("a password is required (--password or --password-stdin)")
			}
			tok, err := app.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			app.session.Reset()
			app.notify.Info("Logged in as " + email)
			return app.emit(tok, nil)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	return cmd
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.client.Logout(cmd.Context()); err != nil {
				return err
			}
			app.notify.Info("Logged out")
			return app.emit(map[string]bool{"logged_out": true}, nil)
		},
	}
}

func newWhoAmICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the subject and expiry of the stored token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := app.client.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			return app.emit(info, func(w io.Writer) error {
				fields := []widgets.Field{{Key: "Subject", Value: info.Subject}, {Key: "Issuer", Value: info.Issuer}}
				if !info.ExpiresAt.IsZero() {
					fields = append(fields, widgets.Field{Key: "Expires", Value: info.ExpiresAt.Format(time.RFC3339)})
				}
				return widgets.Drawer(w, "Session", fields)
			})
		},
	}
}
