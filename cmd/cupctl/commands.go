package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Dosada05/youth-cup/brackets"
	"github.com/Dosada05/youth-cup/models"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cupctl",
		Short: "Plan and inspect youth cup tournaments",
		Long: `cupctl previews fixture lists and tournament length offline and reads
public standings from a running youth-cup server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScheduleCmd(), newEstimateCmd(), newStandingsCmd())
	return root
}

func newScheduleCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the fixture list for a YAML draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			d, err := readDraft(in)
			if err != nil {
				return err
			}
			teams, err := d.teams()
			if err != nil {
				return err
			}
			settings := d.settings()
			matches, err := brackets.GenerateRoundRobin(teams, settings)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}
			return printSchedule(cmd.OutOrStdout(), d.Name, teams, matches, settings)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "draft YAML file (stdin when empty or -)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print matches as JSON")
	return cmd
}

func printSchedule(w io.Writer, name string, teams []models.Team, matches []models.Match, settings models.Settings) error {
	names := make(map[string]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	if name != "" {
		fmt.Fprintln(w, name)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tROUND\tKICKOFF\tHOME\tAWAY")
	for _, m := range matches {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n",
			m.MatchIndex+1, m.RoundIndex+1, m.ScheduledTime.Format("15:04"), names[m.HomeTeamID], names[m.AwayTeamID])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d matches, %d minutes\n", len(matches), brackets.EstimateDuration(len(teams), settings))
	return err
}

func newEstimateCmd() *cobra.Command {
	var teams, duration, breakMinutes int
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print the match count and total length for a team count",
		RunE: func(cmd *cobra.Command, args []string) error {
			if teams < 2 {
				return fmt.Errorf("--teams must be at least 2, got %d", teams)
			}
			if duration < 1 || breakMinutes < 0 {
				return fmt.Errorf("--duration must be positive and --break must not be negative")
			}
			settings := models.Settings{MatchDurationMinutes: duration, BreakBetweenMatchesMinutes: breakMinutes}
			total := brackets.EstimateDuration(teams, settings)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d teams: %d matches, %d minutes (%s)\n",
				teams, brackets.CountMatches(teams), total, time.Duration(total)*time.Minute)
			return err
		},
	}
	cmd.Flags().IntVar(&teams, "teams", 0, "number of teams")
	cmd.Flags().IntVar(&duration, "duration", 15, "match length in minutes")
	cmd.Flags().IntVar(&breakMinutes, "break", 5, "break between matches in minutes")
	return cmd
}

func newStandingsCmd() *cobra.Command {
	var host string
	cmd := &cobra.Command{
		Use:   "standings <tournament-id>",
		Short: "Print the public standings of a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			standings, err := fetchStandings(cmd, host, args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "POS\tTEAM\tP\tW\tD\tL\tGF:GA\tPTS")
			for _, s := range standings {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d:%d\t%d\n",
					s.Position, s.TeamName, s.Played, s.Won, s.Drawn, s.Lost, s.GoalsFor, s.GoalsAgainst, s.Points)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&host, "host", "http://localhost:8080", "the host address of the server")
	return cmd
}

func fetchStandings(cmd *cobra.Command, host, id string) ([]models.Standing, error) {
	url := host + "/public/tournaments/" + id + "/standings"
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var out struct {
		Standings []models.Standing `json:"standings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return out.Standings, nil
}
