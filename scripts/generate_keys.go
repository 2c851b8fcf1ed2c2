//go:build ignore

// Prints random secrets for the identity token signer and API keys.
// Run with: go run scripts/generate_keys.go
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

func generateSecureKey(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func main() {
	// 32 bytes for HS256
	identitySecret, err := generateSecureKey(32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate identity secret: %v\n", err)
		os.Exit(1)
	}

	apiKey, err := generateSecureKey(24)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate API key: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("# Shared with the sign-in provider that issues identity tokens")
	fmt.Printf("IDENTITY_JWT_SECRET=%s\n", identitySecret)
	fmt.Println()
	fmt.Println("# Only checked when AUTH_ENABLED=true")
	fmt.Printf("API_KEYS=%s\n", apiKey)
}
