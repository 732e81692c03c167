package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInviteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Invitation commands",
	}

	cmd.AddCommand(newInviteSendCmd())
	cmd.AddCommand(newInviteListCmd())
	cmd.AddCommand(newInviteGameCmd())
	cmd.AddCommand(newInviteAcceptCmd())
	cmd.AddCommand(newInviteRejectCmd())

	return cmd
}

func newInviteSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <game-id> <user-id>...",
		Short: "Invite users to a game (host only)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			inviteeIDs := args[1:]

			req := map[string][]string{"invitee_ids": inviteeIDs}
			var result []Invitation

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/invitations", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newInviteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your pending invitations",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Invitation

			if err := client.Get("/api/v1/invitations", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newInviteGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <game-id>",
		Short: "List invitations for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var result []Invitation

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/invitations", gameID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newInviteAcceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <invitation-id>",
		Short: "Accept an invitation and join the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return respondToInvitation(args[0], true)
		},
	}
}

func newInviteRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <invitation-id>",
		Short: "Reject an invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return respondToInvitation(args[0], false)
		},
	}
}

func respondToInvitation(invitationID string, accept bool) error {
	req := map[string]bool{"accept": accept}
	var result GameState

	if err := client.Post(fmt.Sprintf("/api/v1/invitations/%s/respond", invitationID), req, &result); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	if accept {
		out.Print(result)
	} else {
		out.PrintMessage("Invitation rejected")
	}
	return nil
}
