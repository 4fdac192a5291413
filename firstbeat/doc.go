// Package firstbeat provides a Go client for the Firstbeat Sports Cloud API.
//
// The client signs a fresh HS256 bearer token (valid for 5 minutes) for
// every request, bootstraps and caches the consumer's API key on first use,
// follows offset-based pagination, and polls analysis results that the
// server is still computing (202 Accepted, 5-second wait, 5 attempts).
//
// # Quick Start
//
//	client := firstbeat.NewClient(consumerID, sharedSecret)
//
//	accounts, err := client.Account.List(ctx)
//	if err != nil {
//	    // *APIError / *AuthError carry the status, body, and URL
//	}
//
//	athletes, err := client.Athlete.List(ctx, accounts[0].AccountID)
//
// # Analysis results
//
// Results retries while the server computes; exhaustion is a distinct state:
//
//	results, err := client.Measurement.Results(ctx, accountID, athleteID, measurementID, nil)
//	var procErr *firstbeat.ProcessingError
//	if errors.As(err, &procErr) {
//	    // still processing after procErr.Attempts attempts, try again later
//	}
//
// # Registration
//
// New consumers register once and receive credentials; these failures use
// their own error type:
//
//	creds, err := client.Registration.Register(ctx, "FC Firstbeat Data Hub")
//	var regErr *firstbeat.RegistrationError
//	if errors.As(err, &regErr) { /* report and exit non-zero */ }
package firstbeat
