package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/altoro-cli/internal/adapters/render/result"
	"github.com/bnema/altoro-cli/internal/application"
	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/spf13/cobra"
)

type loginJSON struct {
	Target      string   `json:"target"`
	Username    string   `json:"username"`
	Outcome     string   `json:"outcome"`
	StatusCode  int      `json:"status_code"`
	Status      string   `json:"status"`
	FinalURL    string   `json:"final_url"`
	CookieNames []string `json:"cookie_names"`
}

func newLoginCmd(app *app) *cobra.Command {
	var username string
	var password string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials against the bank and list the session cookies it hands out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds := domain.Credentials{Username: username, Password: password}
			if err := creds.Validate(); err != nil {
				return err
			}

			target, err := app.resolveTarget(cmd.Context())
			if err != nil {
				return err
			}
			svc, err := app.newTransferService(target)
			if err != nil {
				return err
			}

			var login domain.LoginResult
			var loginErr error
			if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Logging in...", asJSON, func(ctx context.Context, progress progressFunc) error {
				svc.OnStage(func(stage domain.TransferStage) { progress(stageLabel(stage)) })
				login, loginErr = svc.VerifyLogin(ctx, creds)
				return nil
			}); err != nil {
				return err
			}

			// No outcome means the request never got an answer.
			if login.Outcome == "" {
				_, details := application.Report(domain.TransferOutcome{}, loginErr)
				_, err := fmt.Fprintln(cmd.ErrOrStderr(), details)
				return errors.Join(errReported, err)
			}

			names := login.Session.Names()
			if names == nil {
				names = []string{}
			}

			if asJSON {
				err = writeJSON(cmd, loginJSON{
					Target:      target.Name,
					Username:    creds.Username,
					Outcome:     string(login.Outcome),
					StatusCode:  login.StatusCode,
					Status:      login.Status,
					FinalURL:    login.FinalURL,
					CookieNames: names,
				})
			} else {
				err = writeLine(cmd, result.RenderLogin(result.LoginView{
					Target:      target.Name,
					Username:    creds.Username,
					Outcome:     login.Outcome,
					Status:      login.Status,
					FinalURL:    login.FinalURL,
					CookieNames: names,
				}))
			}
			if err != nil {
				return errors.Join(loginErr, err)
			}
			if loginErr != nil {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Bank username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Bank password")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
