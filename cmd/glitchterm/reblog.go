package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"glitchterm/internal/domain"
	"glitchterm/internal/eventbus"
	"glitchterm/internal/profile"
	"glitchterm/internal/ui/modal"
)

// confirmFunc asks the user to confirm; swapped out in tests
type confirmFunc func(ctx context.Context, opts modal.Options, in io.Reader, out io.Writer) (modal.Choice, error)

var confirm confirmFunc = modal.Prompt

func newReblogCommand(opts *globalOptions) *cobra.Command {
	var (
		visibilityFlag string
		yes            bool
	)
	cmd := &cobra.Command{
		Use:   "reblog <status-id>",
		Short: "Boost a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			visibility, err := domain.ParseVisibility(visibilityFlag)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			statusID := args[0]
			out := cmd.OutOrStdout()

			if !yes && a.cfg.UISettings.ConfirmReblog {
				status, err := a.client.Status(ctx, statusID)
				if err != nil {
					return errors.Wrapf(err, "fetch status %s", statusID)
				}
				dialog := modal.Options{
					Title:   "Boost this post?",
					Message: describeStatus(status),
					Confirm: "Boost",
				}
				if visibility == "" || visibility == domain.VisibilityPublic {
					dialog.Secondary = "Boost as " + string(domain.VisibilityUnlisted)
				}
				choice, err := confirm(ctx, dialog, cmd.InOrStdin(), out)
				if err != nil {
					return err
				}
				switch choice {
				case modal.Cancelled:
					fmt.Fprintln(out, "Cancelled")
					return nil
				case modal.SecondaryChosen:
					visibility = domain.VisibilityUnlisted
				}
			}

			status, err := a.client.Reblog(ctx, statusID, visibility)
			if err != nil {
				a.bus.Publish(eventbus.ErrorEvent{Message: "reblog failed", Err: err})
				return errors.Wrapf(err, "reblog %s", statusID)
			}
			a.bus.Publish(eventbus.ReblogCompletedEvent{StatusID: statusID, Reblogged: true})
			a.logger.Info("reblogged", zap.String("status_id", statusID), zap.String("visibility", string(visibility)))

			fmt.Fprintf(out, "Boosted %s", statusID)
			if label := profile.StatusVisibilityLabel(status.Visibility); label != "" {
				fmt.Fprintf(out, " (%s)", label)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&visibilityFlag, "visibility", "", "visibility of the boost: public, unlisted, private or direct")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation dialog")
	return cmd
}

func newUnreblogCommand(opts *globalOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "unreblog <status-id>",
		Short: "Remove your boost of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			statusID := args[0]
			out := cmd.OutOrStdout()

			if !yes && a.cfg.UISettings.ConfirmReblog {
				choice, err := confirm(ctx, modal.Options{
					Title:   "Remove boost?",
					Message: "Status " + statusID,
					Confirm: "Remove",
				}, cmd.InOrStdin(), out)
				if err != nil {
					return err
				}
				if choice != modal.Confirmed {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			if _, err := a.client.Unreblog(ctx, statusID); err != nil {
				a.bus.Publish(eventbus.ErrorEvent{Message: "unreblog failed", Err: err})
				return errors.Wrapf(err, "unreblog %s", statusID)
			}
			a.bus.Publish(eventbus.ReblogCompletedEvent{StatusID: statusID, Reblogged: false})
			fmt.Fprintf(out, "Removed boost of %s\n", statusID)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation dialog")
	return cmd
}

// describeStatus is the modal body: byline, edit marker and text
func describeStatus(s *domain.Status) string {
	if s == nil {
		return ""
	}
	target := s
	var friend *domain.Account
	if s.Reblog != nil {
		target = s.Reblog
		friend = s.Account
	}
	text := profile.Byline(target, friend)
	if target.EditedAt != nil {
		text += "\n" + profile.EditedAt(*target.EditedAt)
	}
	if content := profile.PlainText(target.Content); content != "" {
		text += "\n\n" + content
	}
	return text
}
