/* commands.go
 * Contains the cobra commands of the operator command line
 */

package main

import (
	"fmt"
	"strconv"

	"pickems-tracker/api/api"
	"pickems-tracker/api/shared"

	"github.com/spf13/cobra"
)

func addCommands(root *cobra.Command, open openFunc) {
	// withAPI opens the store for the duration of a single command
	withAPI := func(run func(cmd *cobra.Command, a *api.API, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			a, release, err := open(cmd)
			if err != nil {
				return err
			}
			defer release()
			return run(cmd, a, args)
		}
	}

	root.AddCommand(&cobra.Command{
		Use:   "matches",
		Short: "List every match and whether it is open for picks",
		Args:  cobra.NoArgs,
		RunE: withAPI(func(cmd *cobra.Command, a *api.API, _ []string) error {
			views, err := a.GetMatchViews(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(views) == 0 {
				fmt.Fprintln(out, "No matches")
			}
			for _, v := range views {
				fmt.Fprintf(out, "%d\t%s vs %s\t%s\t%s\t%s\t%s\n",
					v.Number, v.Team1, v.Team2, v.Stage, shared.FormatTimestamp(v.ScheduledTime), v.Result, v.Status)
			}
			return nil
		}),
	})

	picksCmd := &cobra.Command{
		Use:   "picks",
		Short: "List every pick, optionally for one user",
		Args:  cobra.NoArgs,
		RunE: withAPI(func(cmd *cobra.Command, a *api.API, _ []string) error {
			user, _ := cmd.Flags().GetString("user")
			var picks []shared.Pick
			var err error
			if user != "" {
				picks, err = a.GetUserPicks(cmd.Context(), user)
			} else {
				picks, err = a.GetPicks(cmd.Context())
			}
			if err != nil {
				return err
			}
			for _, p := range picks {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", p.MatchNumber, p.UserID, p.Choice)
			}
			return nil
		}),
	}
	picksCmd.Flags().String("user", "", "Only show this user's picks")
	root.AddCommand(picksCmd)

	root.AddCommand(&cobra.Command{
		Use:   "users",
		Short: "List every user that has made a pick",
		Args:  cobra.NoArgs,
		RunE: withAPI(func(cmd *cobra.Command, a *api.API, _ []string) error {
			users, err := a.GetUsers(cmd.Context())
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		}),
	})

	scoresCmd := &cobra.Command{
		Use:   "scores",
		Short: "Recompute and print the leaderboard",
		Args:  cobra.NoArgs,
		RunE: withAPI(func(cmd *cobra.Command, a *api.API, _ []string) error {
			cached, _ := cmd.Flags().GetBool("cached")
			var scores []shared.Score
			var err error
			if cached {
				scores, err = a.GetScores(cmd.Context())
			} else {
				scores, err = a.GetLeaderboard(cmd.Context())
			}
			if err != nil {
				return err
			}
			for i, s := range scores {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\n", i+1, s.UserID, s.Value)
			}
			return nil
		}),
	}
	scoresCmd.Flags().Bool("cached", false, "Print the scores stored by the last recomputation, ordered by user")
	root.AddCommand(scoresCmd)

	root.AddCommand(&cobra.Command{
		Use:     "add-match TEAM1 TEAM2 STAGE TIME",
		Short:   "Add a new match",
		Example: `  pickems-cli add-match "Team Vitality" "G2 Esports" Semifinal "2025-06-01 18:00"`,
		Args:    cobra.ExactArgs(4),
		RunE: withAPI(func(cmd *cobra.Command, a *api.API, args []string) error {
			scheduled, err := shared.ParseTimestamp(args[3])
			if err != nil {
				return err
			}
			m, err := a.AddMatch(cmd.Context(), args[0], args[1], args[2], scheduled)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added match %d: %s vs %s in %s on %s\n",
				m.Number, m.Team1, m.Team2, m.Stage, shared.FormatTimestamp(m.ScheduledTime))
			return nil
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "end-match NUMBER RESULT",
		Short: "Record the final result of a match, e.g. end-match 3 2-1",
		Args:  cobra.ExactArgs(2),
		RunE: withAPI(func(cmd *cobra.Command, a *api.API, args []string) error {
			number, err := parseMatchNumber(args[0])
			if err != nil {
				return err
			}
			outcome, err := a.EndMatch(cmd.Context(), number, args[1])
			if err != nil {
				return err
			}
			if !outcome.Found() {
				return fmt.Errorf("match %d: %w", number, shared.ErrNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Match %d finished %s: %s wins\n", number, outcome.Match.Result, outcome.Match.Winner)
			return nil
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "set NUMBER FIELD VALUE",
		Short: "Overwrite one field of a match (team1, team2, result, stage, time, done, winner)",
		Args:  cobra.ExactArgs(3),
		RunE: withAPI(func(cmd *cobra.Command, a *api.API, args []string) error {
			number, err := parseMatchNumber(args[0])
			if err != nil {
				return err
			}
			m, err := a.ChangeMatchVariable(cmd.Context(), number, args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s for match %d\n", args[1], args[2], m.Number)
			return nil
		}),
	})

	multiplierCmd := &cobra.Command{
		Use:   "multiplier",
		Short: "Show or change the points awarded per stage",
	}
	multiplierCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every stage multiplier",
		Args:  cobra.NoArgs,
		RunE: withAPI(func(cmd *cobra.Command, a *api.API, _ []string) error {
			multipliers, err := a.GetMultipliers(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range multipliers {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", m.Stage, m.Points)
			}
			return nil
		}),
	})
	multiplierCmd.AddCommand(&cobra.Command{
		Use:   "set STAGE POINTS",
		Short: "Create or replace the points a correct pick is worth in a stage",
		Args:  cobra.ExactArgs(2),
		RunE: withAPI(func(cmd *cobra.Command, a *api.API, args []string) error {
			points, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: points %q is not an integer", shared.ErrInvalidInput, args[1])
			}
			if err := a.SetMultiplier(cmd.Context(), args[0], points); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now worth %d\n", args[0], points)
			return nil
		}),
	})
	root.AddCommand(multiplierCmd)
}

func parseMatchNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a match number", shared.ErrInvalidInput, s)
	}
	return n, nil
}
