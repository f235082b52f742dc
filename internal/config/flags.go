package config

import (
	"flag"
	"os"
)

// parses CLI flags for the terminal chat client
func ParseTUIFlags() TUIFlags {
	serverURL := flag.String("server", defaultServerURL(), "base URL of the devmentor server")
	name := flag.String("name", "", "display name to join the chat with")
	flag.Parse()

	return TUIFlags{ServerURL: *serverURL, Name: *name}
}

func defaultServerURL() string {
	if url := os.Getenv("DEVMENTOR_SERVER_URL"); url != "" {
		return url
	}

	return "http://localhost:5000"
}
