package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game recording and history commands",
	}

	cmd.AddCommand(newGameRecordCmd())
	cmd.AddCommand(newGameRecentCmd())
	cmd.AddCommand(newGameHistoryCmd())

	return cmd
}

func newGameRecordCmd() *cobra.Command {
	var result, date string

	cmd := &cobra.Command{
		Use:   "record <player1> <player2>",
		Short: "Record a game result between two players",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if result == "" {
				return fmt.Errorf("--result is required")
			}

			req := map[string]string{
				"player1": args[0],
				"player2": args[1],
				"result":  result,
			}
			if date != "" {
				req["date"] = date
			}

			var game Game
			if err := client.Post("/api/v1/games", req, &game); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(game)
			return nil
		},
	}

	cmd.Flags().StringVar(&result, "result", "", "Game result: 1-0, 0-1, or 1/2-1/2 (required)")
	cmd.Flags().StringVar(&date, "date", "", "Game date as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("result")

	return cmd
}

func newGameRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game
			path := fmt.Sprintf("/api/v1/games/recent?limit=%d", limit)
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of games to show")

	return cmd
}

func newGameHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the full game log in recorded order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game
			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
