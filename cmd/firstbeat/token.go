package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tokenCmd prints a ready-to-use Authorization header value. Tokens are
// valid for 5 minutes, so generate one right before use.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate a bearer token for the configured credentials",
	Long: `Generate a signed bearer token and print it as an Authorization
header value ("Bearer <token>"). The token is valid for 5 minutes.

Example:
  curl -H "Authorization: $(firstbeat token)" https://api.firstbeat.com/v1/account/api-key`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		header, err := client.BearerToken()
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}

		fmt.Println(header)
		return nil
	},
}
