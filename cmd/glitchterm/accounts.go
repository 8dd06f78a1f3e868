package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"glitchterm/internal/api"
	"glitchterm/internal/domain"
	"glitchterm/internal/profile"
)

// newAccountListCommand builds the followers or following command
func newAccountListCommand(opts *globalOptions, kind string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   kind + " <acct>",
		Short: "List the " + kind + " of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			acct := strings.TrimPrefix(args[0], "@")
			account, err := a.client.LookupAccount(ctx, acct)
			if err != nil {
				if api.IsNotFound(err) {
					return errors.Errorf("account %s not found", acct)
				}
				return errors.Wrapf(err, "look up %s", acct)
			}
			a.accounts.ImportAccounts([]domain.Account{*account})

			var rel *domain.Relationship
			if a.cfg.AccessToken != "" && account.ID != a.cfg.Me {
				rels, err := a.client.Relationships(ctx, account.ID)
				if err != nil {
					return errors.Wrapf(err, "fetch relationship with %s", acct)
				}
				if len(rels) > 0 {
					rel = &rels[0]
				}
			}

			fetch := a.client.Followers
			if kind == "following" {
				fetch = a.client.Following
			}

			list := &profile.AccountList{IsLoading: true}
			visibility := profile.VisibilityFor(account, rel, a.cfg.Me)
			page := api.Page{Limit: min(limit, 80)}
			for !visibility.ForceEmpty() && len(list.Items) < limit {
				result, err := fetch(ctx, account.ID, page)
				if err != nil {
					return errors.Wrapf(err, "fetch %s of %s", kind, acct)
				}
				a.accounts.ImportAccounts(result.Accounts)
				for _, item := range result.Accounts {
					list.Items = append(list.Items, item.ID)
				}
				list.HasMore = result.HasMore
				if !result.HasMore {
					break
				}
				page = result.Next
			}
			list.IsLoading = false
			if len(list.Items) > limit {
				list.Items = list.Items[:limit]
				list.HasMore = true
			}

			id := account.ID
			view := profile.BuildList(profile.ListInput{
				AccountID:  &id,
				Account:    account,
				Visibility: visibility,
				List:       list,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, profile.Title(account, a.cfg.LocalDomain))
			ids := make([]string, 0, len(view.Items))
			for _, item := range view.Items {
				ids = append(ids, item.ID)
			}
			printAccounts(out, a.accounts.Accounts(ids), a.cfg.LocalDomain)
			if view.HasMore {
				fmt.Fprintln(out, "…more available, raise --limit")
			}
			if view.RemoteDomain != "" {
				fmt.Fprintf(out, "Lists from %s may be incomplete.\n", view.RemoteDomain)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 40, "maximum number of accounts to list")
	return cmd
}
