package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/firstbeat/firstbeat-go/firstbeat"
	"github.com/spf13/cobra"
)

// athleteDisplayLimit caps the selection list to avoid flooding the terminal.
const athleteDisplayLimit = 20

var quickstartCmd = &cobra.Command{
	Use:   "quickstart",
	Short: "Interactive walk through the API",
	Long: `Walk through the API interactively: list your accounts, pick one,
show its coaches, teams, and athletes, pick an athlete, and fetch the
analysis results for their newest measurement.`,
	RunE: runQuickstart,
}

func runQuickstart(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	in := bufio.NewReader(os.Stdin)

	fmt.Println("Fetching accounts...")
	accounts, err := client.Account.List(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts found. Please contact support to get access to customer accounts.")
		return nil
	}

	accountID, err := selectAccount(in, accounts)
	if err != nil {
		return err
	}

	fmt.Println("\nFetching coaches...")
	coaches, err := client.Account.Coaches(ctx, accountID)
	if err != nil {
		return err
	}
	if len(coaches) == 0 {
		fmt.Println("No coaches found")
	}
	for _, c := range coaches {
		fmt.Printf("  %s %s  %s\n", c.FirstName, c.LastName, c.Email)
	}

	fmt.Println("\nFetching teams...")
	teams, err := client.Team.List(ctx, accountID)
	if err != nil {
		return err
	}
	if len(teams) == 0 {
		fmt.Println("No teams found")
	}
	for _, team := range teams {
		fmt.Printf("  %s (%d groups)\n", team.Name, len(team.Groups))
	}

	fmt.Println("\nFetching athletes...")
	athletes, err := client.Athlete.List(ctx, accountID)
	if err != nil {
		return err
	}
	if len(athletes) == 0 {
		fmt.Println("No athletes found in this account.")
		return nil
	}

	athleteID, err := selectAthlete(in, athletes)
	if err != nil {
		return err
	}

	fmt.Println("\nFetching measurements...")
	measurements, err := client.Measurement.List(ctx, accountID, athleteID)
	if err != nil {
		return err
	}
	if len(measurements) == 0 {
		fmt.Println("No measurements found for this athlete.")
		return nil
	}
	fmt.Printf("Found %d measurements.\n", len(measurements))

	newest := measurements[len(measurements)-1]
	fmt.Printf("\nFetching analysis results for measurement %d (this can take a while)...\n", newest.MeasurementID)
	results, err := client.Measurement.Results(ctx, accountID, athleteID, newest.MeasurementID, nil)
	if err != nil {
		var procErr *firstbeat.ProcessingError
		if errors.As(err, &procErr) {
			fmt.Printf("The server is still computing the results after %d attempts. Try again later.\n", procErr.Attempts)
			return nil
		}
		return err
	}

	fmt.Println()
	printResults(results)
	return nil
}

func selectAccount(in *bufio.Reader, accounts []firstbeat.Account) (string, error) {
	if len(accounts) == 1 {
		fmt.Printf("Using the only available account: %s\n", accounts[0].Name)
		return accounts[0].AccountID, nil
	}

	fmt.Println("\nAvailable Accounts:")
	for i, account := range accounts {
		fmt.Printf("%d. %s\n", i+1, account.Name)
	}

	index, err := promptSelection(in, "account", len(accounts))
	if err != nil {
		return "", err
	}
	return accounts[index].AccountID, nil
}

func selectAthlete(in *bufio.Reader, athletes []firstbeat.Athlete) (int64, error) {
	if len(athletes) == 1 {
		fmt.Printf("Using the only available athlete: %s %s\n", athletes[0].FirstName, athletes[0].LastName)
		return athletes[0].AthleteID, nil
	}

	fmt.Println("\nAvailable Athletes:")
	limit := min(len(athletes), athleteDisplayLimit)
	for i, athlete := range athletes[:limit] {
		fmt.Printf("%d. %s %s\n", i+1, athlete.FirstName, athlete.LastName)
	}
	if len(athletes) > limit {
		fmt.Printf("... and %d more.\n", len(athletes)-limit)
	}

	index, err := promptSelection(in, "athlete", limit)
	if err != nil {
		return 0, err
	}
	return athletes[index].AthleteID, nil
}

// promptSelection reads a 1-based selection from stdin and returns the
// 0-based index.
func promptSelection(in *bufio.Reader, what string, count int) (int, error) {
	for {
		fmt.Printf("\nSelect %s (1-%d): ", what, count)
		line, err := in.ReadString('\n')
		if err != nil {
			return 0, err
		}
		index, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Println("Please enter a number.")
			continue
		}
		if index < 1 || index > count {
			fmt.Println("Invalid selection. Please try again.")
			continue
		}
		return index - 1, nil
	}
}
