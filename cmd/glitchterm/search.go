package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"glitchterm/internal/domain"
	"glitchterm/internal/profile"
	"glitchterm/internal/search"
)

func newSearchCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search accounts once and print the matches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			accounts, err := searchOnce(cmd.Context(), a, strings.Join(args, " "))
			if err != nil {
				return err
			}
			printAccounts(cmd.OutOrStdout(), accounts, a.cfg.LocalDomain)
			return nil
		},
	}
}

// searchOnce runs query through a search session and waits for it to settle
func searchOnce(ctx context.Context, a *app, query string) ([]*domain.Account, error) {
	settled := make(chan struct{}, 1)
	session := search.NewSession(a.client, a.accounts, search.Options{
		Leading: true,
		Limit:   a.cfg.Search.Limit,
		OnSettled: func(string) {
			select {
			case settled <- struct{}{}:
			default:
			}
		},
		Logger:  a.logger,
		Metrics: a.metrics,
	})
	defer session.Close()

	session.Search(query)
	select {
	case <-settled:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if session.IsError() {
		return nil, errors.Errorf("search for %q failed, see %s for details", query, logFileName)
	}
	return a.accounts.Accounts(session.AccountIDs()), nil
}

func printAccounts(w io.Writer, accounts []*domain.Account, localDomain string) {
	if len(accounts) == 0 {
		fmt.Fprintln(w, "No results")
		return
	}
	for _, account := range accounts {
		name := profile.BuildNameLine(account, "", localDomain)
		fmt.Fprintf(w, "%s  %s\n", name.Handle(), name.DisplayName)
	}
}
