package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/adagio/visitorid/internal/auth"
)

func main() {
	var (
		secretKey = flag.String("secret-key", os.Getenv("API_SECRET_KEY"), "Checksum key the service verifies credentials with")
		name      = flag.String("name", "", "Credential name in the payload")
		token     = flag.String("token", "", "Existing token to checksum; omit to generate one")
		env       = flag.String("env", auth.EnvLive, "Environment prefix for generated tokens (live or test)")
		format    = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *secretKey == "" {
		fmt.Fprintln(os.Stderr, "API_SECRET_KEY or -secret-key is required")
		os.Exit(1)
	}
	if *name == "" {
		fmt.Fprintln(os.Stderr, "-name is required")
		os.Exit(1)
	}

	tokenValue := *token
	if tokenValue == "" {
		generated, err := auth.GenerateToken(*env)
		if err != nil {
			fmt.Fprintln(os.Stderr, "generate token:", err)
			os.Exit(1)
		}
		tokenValue = generated
	}

	checksum := auth.Checksum(*secretKey, tokenValue)

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(tokenValue)
		fmt.Println(checksum)
	case "json":
		// Entry shaped for merging into the credential secret payload.
		entry := map[string]map[string]string{
			*name: {"token": tokenValue, "checksum": checksum},
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(entry)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}
