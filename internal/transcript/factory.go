package transcript

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// NewSource creates a recognition source based on environment configuration
func NewSource() (Source, error) {
	sourceName := strings.ToLower(os.Getenv("RECOGNITION_SOURCE"))

	// Default to client-pushed segments if not specified
	if sourceName == "" {
		sourceName = "client"
		log.Printf("[Recognition Factory] RECOGNITION_SOURCE not set, defaulting to 'client'")
	}

	switch sourceName {
	case "client":
		return clientSource{}, nil
	case "none", "off":
		log.Printf("[Recognition Factory] Recognition disabled, sessions run text-only")
		return noSource{}, nil
	default:
		return nil, fmt.Errorf("unsupported recognition source: %s. Supported: client, none", sourceName)
	}
}
