package busevents

import (
	"log"
	"os"
)

// InitLogging routes logs to stderr so exports written to stdout stay
// machine-readable.
func InitLogging() {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
