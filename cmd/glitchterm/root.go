package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"glitchterm/internal/eventbus"
	"glitchterm/internal/features"
	"glitchterm/internal/search"
	"glitchterm/internal/ui"
)

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "glitchterm",
		Short: "Terminal client for Mastodon-compatible servers",
		Long: `glitchterm searches accounts as you type, shows profiles with their
followers and following lists, and boosts posts from the command line.

Run without a subcommand to start the interactive interface.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return runTUI(cmd.Context(), a)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/glitchterm/config.toml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	root.AddCommand(
		newSearchCommand(opts),
		newReblogCommand(opts),
		newUnreblogCommand(opts),
		newAccountListCommand(opts, "followers"),
		newAccountListCommand(opts, "following"),
	)
	return root
}

func runTUI(ctx context.Context, a *app) error {
	cfg := a.cfg
	session := search.NewSession(a.client, a.accounts, search.Options{
		Wait:     cfg.Search.Window(),
		Leading:  cfg.Search.Leading,
		Trailing: cfg.Search.Trailing,
		Limit:    cfg.Search.Limit,
		OnSettled: func(query string) {
			a.bus.Publish(eventbus.SearchSettledEvent{Query: query})
		},
		Logger:  a.logger,
		Metrics: a.metrics,
	})
	defer session.Close()

	model := ui.NewModel(ui.Deps{
		Context:       ctx,
		Bus:           a.bus,
		Config:        cfg,
		Session:       session,
		Backend:       a.client,
		Accounts:      a.accounts,
		Relationships: a.relationships,
		Features:      features.FromConfig(cfg),
		Logger:        a.logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventSearchSettled,
		eventbus.EventAccountsImported,
		eventbus.EventReblogCompleted,
		eventbus.EventError,
	} {
		unsubscribe := a.bus.Subscribe(eventType, forward)
		defer unsubscribe()
	}

	a.logger.Info("starting UI")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run UI")
	}
	a.logger.Info("UI exited")
	return nil
}
