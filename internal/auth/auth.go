// Package auth resolves the Gemini API credential. A missing key is an
// input error surfaced before any network call is attempted.
package auth

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// GetAPIKey retrieves the Gemini API key from the GEMINI_API_KEY
// environment variable.
func GetAPIKey() (string, error) {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		log.Debug().Msg("Using API key from environment variable")
		return key, nil
	}
	return "", fmt.Errorf("API key not found: set GEMINI_API_KEY")
}
