package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/firstbeat/firstbeat-go/firstbeat"
	"github.com/spf13/cobra"
)

var (
	registerName string
	registerYes  bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new API consumer",
	Long: `Register a new API consumer interactively or via flags.

An API consumer is your application's identity for accessing the API.
The consumer name identifies your integration to Firstbeat support and
cannot be changed later.

Examples:
  Interactive mode:
    firstbeat register

  Automated mode:
    firstbeat register --consumer-name "My Team Analytics" --yes`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "consumer-name", "", "Provide the desired consumer name non-interactively")
	registerCmd.Flags().BoolVar(&registerYes, "yes", false, "Skip interactive confirmation prompts")
}

func runRegister(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(os.Stdin)

	name := registerName
	if name == "" {
		var err error
		name, err = promptConsumerName(in)
		if err != nil {
			return err
		}
	}

	fmt.Printf("\nYou are about to register a new API consumer: '%s'\n", name)
	if !registerYes {
		fmt.Print("Do you want to proceed? (yes/no): ")
		answer, err := in.ReadString('\n')
		if err != nil {
			return err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Registration cancelled.")
			return nil
		}
	}

	client, err := newAnonymousClient()
	if err != nil {
		return err
	}

	fmt.Printf("\nRegistering '%s'...\n", name)
	creds, err := client.Registration.Register(cmd.Context(), name)
	if err != nil {
		var regErr *firstbeat.RegistrationError
		if errors.As(err, &regErr) {
			return fmt.Errorf("error during registration: %w", regErr.Unwrap())
		}
		return err
	}

	announceSuccess(creds)
	printNextSteps(creds)
	return nil
}

func promptConsumerName(in *bufio.Reader) (string, error) {
	fmt.Println("--- Firstbeat Sports Cloud API Consumer Registration ---")
	fmt.Println("This command will help you create a new API consumer.")
	fmt.Println("An API consumer is your application's identity for accessing the API.")
	fmt.Println()
	fmt.Println("!!! Choosing a Consumer Name !!!")
	fmt.Println("Your 'consumerName' helps Firstbeat support identify your integration.")
	fmt.Println("It cannot be changed later.")
	fmt.Println()
	fmt.Println("GOOD Examples:")
	fmt.Println("  * 'FC Firstbeat Data Hub'")
	fmt.Println("  * 'Jyväskylä Bears Analytics'")
	fmt.Println()
	fmt.Println("BAD Examples:")
	fmt.Println("  * 'api_test'")
	fmt.Println("  * 'script_1'")
	fmt.Println()

	for {
		fmt.Print("Enter your desired Consumer Name: ")
		line, err := in.ReadString('\n')
		if err != nil {
			return "", err
		}
		name := strings.TrimSpace(line)
		if name == "" {
			fmt.Println("Consumer name cannot be empty. Please try again.")
			continue
		}
		if len(name) < 5 {
			fmt.Println("Consumer name is too short. Please use a descriptive name.")
			continue
		}
		return name, nil
	}
}

func announceSuccess(creds *firstbeat.Credentials) {
	line := strings.Repeat("=", 50)
	fmt.Println()
	fmt.Println(line)
	fmt.Println("REGISTRATION SUCCESSFUL!")
	fmt.Println(line)
	fmt.Printf("Consumer Name : %s\n", creds.ConsumerName)
	fmt.Printf("Consumer ID   : %s\n", creds.ConsumerID)
	fmt.Printf("Shared Secret : %s\n", creds.SharedSecret)
	fmt.Println(line)
	fmt.Println("IMPORTANT: Save the 'Consumer ID' and 'Shared Secret' securely now.")
	fmt.Println("The Shared Secret will NOT be shown again.")
	fmt.Println(line)
}

func printNextSteps(creds *firstbeat.Credentials) {
	fmt.Println()
	fmt.Println("--- NEXT STEPS ---")
	fmt.Println("1. EMAIL APPROVAL:")
	fmt.Println("   Send an email to sports-cloud-api@firstbeat.com with:")
	fmt.Printf("     - Your Consumer Name: %s\n", creds.ConsumerName)
	fmt.Printf("     - Your Consumer ID: %s\n", creds.ConsumerID)
	fmt.Println("     - The customer account names you need access to (e.g. 'FC Firstbeat')")
	fmt.Println("     - Contact details for API notifications.")
	fmt.Println()
	fmt.Println("2. COACH AUTHORIZATION:")
	fmt.Println("   Once Firstbeat approves the consumer, a Coach must log in to")
	fmt.Println("   Sports Cloud (https://sports.firstbeat.com), go to Settings -> Cloud API,")
	fmt.Println("   and grant access to your new consumer.")
	fmt.Println()
	fmt.Println("3. AUTHENTICATION:")
	fmt.Println("   Use the ID and Shared Secret to generate bearer tokens for API access.")
}
