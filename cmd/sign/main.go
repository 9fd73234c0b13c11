package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/marcelsud/webhook-vault/config"
	"github.com/marcelsud/webhook-vault/webhook/signature"
)

// Signs a JSON payload with the configured WEBHOOK_SECRET and prints a
// ready-to-paste curl command for the receive endpoint.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: sign '<JSON payload>'")
		fmt.Fprintln(os.Stderr, `Example: sign '{"message":"Hello, world!"}'`)
		os.Exit(1)
	}
	payload := os.Args[1]

	if !json.Valid([]byte(payload)) {
		fmt.Fprintln(os.Stderr, "Error: Payload must be valid JSON")
		os.Exit(1)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.WebhookSecret == "" {
		fmt.Fprintln(os.Stderr, "Error: WEBHOOK_SECRET is not configured")
		os.Exit(1)
	}

	sig := signature.Sign(cfg.WebhookSecret, []byte(payload))

	fmt.Printf("curl -X POST localhost:%s/v1/webhooks/receive \\\n", cfg.Port)
	fmt.Printf("  -H '%s: %s' \\\n", signature.HeaderName, sig)
	fmt.Printf("  -H 'content-type: application/json' \\\n")
	fmt.Printf("  --data-binary '%s'\n", payload)
}
