package cmd

import (
	"strings"

	"github.com/bnema/altoro-cli/internal/adapters/render/result"
	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/spf13/cobra"
)

type cookieEntryJSON struct {
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	BalanceMarker string `json:"balance_marker"`
}

type cookieJSON struct {
	Plaintext string          `json:"plaintext"`
	Segments  int             `json:"segments"`
	Primary   cookieEntryJSON `json:"primary"`
	Secondary cookieEntryJSON `json:"secondary"`
}

func newCookieCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cookie",
		Short: "Inspect or rewrite an ownership cookie offline",
	}

	cmd.AddCommand(newCookieDecodeCmd(), newCookieForgeCmd())
	return cmd
}

func newCookieDecodeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "decode <value>",
		Short: "Decode an AltoroAccounts cookie value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plaintext, err := domain.DecodeCookieValue(args[0])
			if err != nil {
				return err
			}
			record, err := domain.ParseAccountCookie(plaintext)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, cookieJSON{
					Plaintext: plaintext,
					Segments:  record.Segments,
					Primary:   toCookieEntryJSON(record.Primary),
					Secondary: toCookieEntryJSON(record.Secondary),
				})
			}
			return writeLine(cmd, result.RenderCookie(plaintext, record))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}

func newCookieForgeCmd() *cobra.Command {
	var fromAccount, fromType, toAccount, toType string

	cmd := &cobra.Command{
		Use:   "forge <value>",
		Short: "Rewrite a cookie value so it lists the given destination and source accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to := domain.AccountRef{Number: strings.TrimSpace(toAccount), Type: toType}
			from := domain.AccountRef{Number: strings.TrimSpace(fromAccount), Type: fromType}

			forged, err := domain.ForgeCookieValue(args[0], to, from)
			if err != nil {
				return err
			}
			return writeLine(cmd, forged)
		},
	}

	addAccountFlags(cmd, &fromAccount, &fromType, &toAccount, &toType)
	return cmd
}

func toCookieEntryJSON(entry domain.AccountEntry) cookieEntryJSON {
	return cookieEntryJSON{
		AccountNumber: entry.AccountNumber,
		AccountType:   entry.AccountType,
		BalanceMarker: entry.BalanceMarker,
	}
}
