package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/altoro-cli/internal/adapters/render/result"
	"github.com/bnema/altoro-cli/internal/application"
	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type transferOptions struct {
	username    string
	password    string
	fromAccount string
	fromType    string
	toAccount   string
	toType      string
	amount      string
	asJSON      bool
}

type transferJSON struct {
	Target      string `json:"target"`
	FromAccount string `json:"from_account"`
	FromType    string `json:"from_type"`
	ToAccount   string `json:"to_account"`
	ToType      string `json:"to_type"`
	Amount      string `json:"amount"`
	Successful  bool   `json:"successful"`
	Details     string `json:"details"`
	Kind        string `json:"kind,omitempty"`
	StatusCode  int    `json:"status_code,omitempty"`
}

func newTransferCmd(app *app) *cobra.Command {
	var opts transferOptions

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Log in and move funds between two accounts by rewriting the ownership cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTransfer(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.username, "username", "u", "", "Bank username")
	cmd.Flags().StringVarP(&opts.password, "password", "p", "", "Bank password")
	addAccountFlags(cmd, &opts.fromAccount, &opts.fromType, &opts.toAccount, &opts.toType)
	cmd.Flags().StringVarP(&opts.amount, "amount", "a", "", "Amount to transfer, as a decimal string")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Render JSON output")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func addAccountFlags(cmd *cobra.Command, fromAccount, fromType, toAccount, toType *string) {
	cmd.Flags().StringVar(fromAccount, "from-account", "", "Account number funds are taken from")
	cmd.Flags().StringVar(fromType, "from-type", "", "Account type label of the source account")
	cmd.Flags().StringVar(toAccount, "to-account", "", "Account number funds are sent to")
	cmd.Flags().StringVar(toType, "to-type", "", "Account type label of the destination account")
	_ = cmd.MarkFlagRequired("from-account")
	_ = cmd.MarkFlagRequired("to-account")
}

func runTransfer(cmd *cobra.Command, app *app, opts transferOptions) error {
	amount, err := decimal.NewFromString(strings.TrimSpace(opts.amount))
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", opts.amount, err)
	}

	creds := domain.Credentials{Username: opts.username, Password: opts.password}
	if err := creds.Validate(); err != nil {
		return err
	}

	req := domain.TransferRequest{
		From:   domain.AccountRef{Number: strings.TrimSpace(opts.fromAccount), Type: opts.fromType},
		To:     domain.AccountRef{Number: strings.TrimSpace(opts.toAccount), Type: opts.toType},
		Amount: amount,
	}
	if err := req.Validate(); err != nil {
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

	var outcome domain.TransferOutcome
	var runErr error
	if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Transferring...", opts.asJSON, func(ctx context.Context, progress progressFunc) error {
		svc.OnStage(func(stage domain.TransferStage) { progress(stageLabel(stage)) })
		outcome, runErr = svc.Execute(ctx, creds, req)
		return nil
	}); err != nil {
		return err
	}

	successful, details := application.Report(outcome, runErr)
	kind := domain.KindOf(runErr)

	var writeErr error
	if opts.asJSON {
		writeErr = writeJSON(cmd, transferJSON{
			Target:      target.Name,
			FromAccount: req.From.Number,
			FromType:    req.From.Type,
			ToAccount:   req.To.Number,
			ToType:      req.To.Type,
			Amount:      req.Amount.String(),
			Successful:  successful,
			Details:     details,
			Kind:        string(kind),
			StatusCode:  outcome.StatusCode,
		})
	} else {
		writeErr = writeLine(cmd, result.RenderTransfer(result.TransferView{
			Target:     target.Name,
			Request:    req,
			Successful: successful,
			Details:    details,
			Kind:       kind,
		}))
	}

	switch {
	case writeErr != nil && !successful:
		return errors.Join(fmt.Errorf("transfer failed: %s", details), writeErr)
	case writeErr != nil:
		return writeErr
	case !successful:
		return errReported
	}
	return nil
}
