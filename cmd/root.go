package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// errReported marks failures whose result has already been written to the user.
var errReported = errors.New("failure already reported")

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, newRootCmd())
}

func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "altoro",
		Short:         "Altoro Mutual cookie tampering CLI",
		Long:          "altoro logs in to an Altoro Mutual training bank, rewrites the unsigned AltoroAccounts ownership cookie and replays it against the transfer endpoint. Use it only against targets you are authorized to test.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var flags targetFlags
	rootCmd.PersistentFlags().StringVar(&flags.name, "target", "", "Target profile name (default from config, then testfire)")
	rootCmd.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "Override the target base URL")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}
	app.flags = &flags

	rootCmd.AddCommand(
		newVersionCmd(),
		newTransferCmd(app),
		newLoginCmd(app),
		newCookieCmd(),
		newTargetCmd(app),
	)

	return rootCmd
}
