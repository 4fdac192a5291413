package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/firstbeat/firstbeat-go/firstbeat"
	"github.com/spf13/cobra"
)

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts assigned to the API consumer",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		accounts, err := client.Account.List(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(accounts)
		}
		if len(accounts) == 0 {
			fmt.Println("No accounts found. Please contact support to get access to customer accounts.")
			return nil
		}
		for _, a := range accounts {
			fmt.Printf("%-12s %s\n", a.AccountID, a.Name)
		}
		return nil
	},
}

var coachesCmd = &cobra.Command{
	Use:   "coaches <account-id>",
	Short: "List coaches on an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		coaches, err := client.Account.Coaches(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(coaches)
		}
		if len(coaches) == 0 {
			fmt.Println("No coaches found")
			return nil
		}
		for _, c := range coaches {
			fmt.Printf("%-10d %s %s  %s\n", c.CoachID, c.FirstName, c.LastName, c.Email)
		}
		return nil
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams <account-id>",
	Short: "List teams and their groups on an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		teams, err := client.Team.List(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(teams)
		}
		if len(teams) == 0 {
			fmt.Println("No teams found")
			return nil
		}
		for _, team := range teams {
			fmt.Printf("%-10d %s (%d athletes)\n", team.TeamID, team.Name, len(team.AthleteIDs))
			for _, g := range team.Groups {
				fmt.Printf("  %-8d %s (%d athletes)\n", g.GroupID, g.Name, len(g.AthleteIDs))
			}
		}
		return nil
	},
}

var athletesCmd = &cobra.Command{
	Use:   "athletes <account-id>",
	Short: "List athletes on an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		athletes, err := client.Athlete.List(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(athletes)
		}
		if len(athletes) == 0 {
			fmt.Println("No athletes found in this account.")
			return nil
		}
		for _, a := range athletes {
			fmt.Printf("%-10d %s %s  %s\n", a.AthleteID, a.FirstName, a.LastName, a.Email)
		}
		return nil
	},
}

var measurementsCmd = &cobra.Command{
	Use:   "measurements <account-id> <athlete-id>",
	Short: "List measurements for an athlete",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		athleteID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid athlete id %q: %w", args[1], err)
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		measurements, err := client.Measurement.List(cmd.Context(), args[0], athleteID)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(measurements)
		}
		if len(measurements) == 0 {
			fmt.Println("No measurements found for this athlete.")
			return nil
		}
		for _, m := range measurements {
			exercise := ""
			if m.ExerciseType != nil {
				exercise = *m.ExerciseType
			}
			fmt.Printf("%-10d %s - %s  %s\n", m.MeasurementID,
				m.StartTime.Format("2006-01-02 15:04"), m.EndTime.Format("15:04"), exercise)
		}
		return nil
	},
}

var resultVariables []string

var resultsCmd = &cobra.Command{
	Use:   "results <account-id> <athlete-id> <measurement-id>",
	Short: "Fetch analysis results for a measurement",
	Long: `Fetch analysis results (HR, TRIMP, ...) for one measurement.

Old data may not be pre-analysed; the first query can trigger the analysis
and the command waits while the server computes, retrying up to 5 times
with a 5-second interval.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		athleteID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid athlete id %q: %w", args[1], err)
		}
		measurementID, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid measurement id %q: %w", args[2], err)
		}

		client, err := newClient()
		if err != nil {
			return err
		}

		results, err := client.Measurement.Results(cmd.Context(), args[0], athleteID, measurementID, resultVariables)
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(results)
		}
		printResults(results)
		return nil
	},
}

func init() {
	resultsCmd.Flags().StringSliceVar(&resultVariables, "var", nil,
		"variables to fetch (default: "+strings.Join(firstbeat.DefaultResultVariables, ",")+")")
}

func printResults(results *firstbeat.MeasurementResults) {
	fmt.Printf("Measurement %d (%s - %s)\n", results.MeasurementID,
		results.StartTime.Format("2006-01-02 15:04"), results.EndTime.Format("15:04"))
	if results.ExerciseType != nil {
		fmt.Printf("Exercise: %s\n", *results.ExerciseType)
	}
	for _, v := range results.Variables {
		if scalar, ok := v.Scalar(); ok {
			if v.Unit != "" {
				fmt.Printf("  %-24s %.2f %s\n", v.Name, scalar, v.Unit)
			} else {
				fmt.Printf("  %-24s %.2f\n", v.Name, scalar)
			}
			continue
		}
		if series, ok := v.Series(); ok {
			fmt.Printf("  %-24s time series, %d samples\n", v.Name, len(series))
			continue
		}
		fmt.Printf("  %-24s %s\n", v.Name, string(v.Value))
	}
}
