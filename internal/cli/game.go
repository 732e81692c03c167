package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameVotingCmd())
	cmd.AddCommand(newGameVoteCmd())
	cmd.AddCommand(newGameResetCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game with yourself as host",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post("/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var result GameState

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", gameID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	var spyWord, villagerWord string

	cmd := &cobra.Command{
		Use:   "start <game-id>",
		Short: "Start the game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			if (spyWord == "") != (villagerWord == "") {
				return fmt.Errorf("--spy-word and --villager-word must be set together")
			}

			var req map[string]string
			if spyWord != "" {
				req = map[string]string{
					"spy_word":      spyWord,
					"villager_word": villagerWord,
				}
			}

			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/start", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&spyWord, "spy-word", "", "Word given to the spy (default: random pair)")
	cmd.Flags().StringVar(&villagerWord, "villager-word", "", "Word given to the villagers (default: random pair)")

	return cmd
}

func newGameVotingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "voting <game-id>",
		Short: "Open a voting round (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/voting", gameID), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameVoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vote <game-id> <target-user-id>",
		Short: "Vote to eliminate a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]
			targetID := args[1]

			req := map[string]string{"target_id": targetID}
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/votes", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	var spyWord, villagerWord string

	cmd := &cobra.Command{
		Use:   "reset <game-id>",
		Short: "Start a fresh match with the same players (after a game ends)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			if (spyWord == "") != (villagerWord == "") {
				return fmt.Errorf("--spy-word and --villager-word must be set together")
			}

			var req map[string]string
			if spyWord != "" {
				req = map[string]string{
					"spy_word":      spyWord,
					"villager_word": villagerWord,
				}
			}

			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/reset", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&spyWord, "spy-word", "", "Word given to the spy (default: random pair)")
	cmd.Flags().StringVar(&villagerWord, "villager-word", "", "Word given to the villagers (default: random pair)")

	return cmd
}
