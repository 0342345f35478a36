package result

import (
	"fmt"
	"strings"

	"github.com/bnema/altoro-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TransferView is what the transfer command shows once the run is over.
type TransferView struct {
	Target     string
	Request    domain.TransferRequest
	Successful bool
	Details    string
	Kind       domain.ErrorKind
}

type LoginView struct {
	Target      string
	Username    string
	Outcome     domain.LoginOutcome
	Status      string
	FinalURL    string
	CookieNames []string
}

func RenderTransfer(view TransferView) string {
	s := newStyles()

	state := s.accepted.Render("submitted")
	if !view.Successful {
		state = s.failed.Render("failed")
	}

	lines := []string{
		s.title.Render("Altoro transfer") + " " + s.header.Render("target: "+view.Target),
		row(s, "from", view.Request.From.String()),
		row(s, "to", view.Request.To.String()),
		row(s, "amount", view.Request.Amount.String()),
		row(s, "result", state),
		row(s, "details", view.Details),
	}
	if view.Kind != "" {
		lines = append(lines, row(s, "kind", s.faint.Render(string(view.Kind))))
	}

	return s.card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func RenderLogin(view LoginView) string {
	s := newStyles()

	state := s.accepted.Render(string(view.Outcome))
	if view.Outcome != domain.LoginAuthenticated {
		state = s.failed.Render(string(view.Outcome))
	}

	cookies := "none"
	if len(view.CookieNames) > 0 {
		cookies = strings.Join(view.CookieNames, ", ")
	}

	lines := []string{
		s.title.Render("Altoro login") + " " + s.header.Render("target: "+view.Target),
		row(s, "user", view.Username),
		row(s, "outcome", state),
		row(s, "status", view.Status),
		row(s, "landed on", view.FinalURL),
		row(s, "cookies", cookies),
	}

	return s.card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderCookie lays out a decoded ownership cookie as a table.
func RenderCookie(plaintext string, record domain.AccountCookieRecord) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"Slot", "Account", "Type", "Balance marker"})
	tw.AppendRow(table.Row{"primary", record.Primary.AccountNumber, record.Primary.AccountType, record.Primary.BalanceMarker})
	tw.AppendRow(table.Row{"secondary", record.Secondary.AccountNumber, record.Secondary.AccountType, record.Secondary.BalanceMarker})

	return fmt.Sprintf("%s\n%s", plaintext, tw.Render())
}

func row(s styles, label string, value string) string {
	return s.label.Render(fmt.Sprintf("%-10s", label+":")) + " " + s.detail.Render(value)
}
