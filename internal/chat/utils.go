package chat

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"

	"codeberg.org/devmentor/server/internal/logger"
)

// OriginChecker returns an upgrader origin check bound to the single
// allowed origin configured at startup.
func OriginChecker(allowedOrigin string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")

		env := os.Getenv("ENVIRONMENT")
		if env != "production" {
			return true
		}

		if origin == "" {
			logger.Warn("websocket connection with no origin header")
			return false
		}

		if origin == allowedOrigin {
			return true
		}

		logger.Warn("websocket origin rejected",
			"origin", origin,
			"allowed_origin", allowedOrigin,
		)

		return false
	}
}

func GenerateClientID() (string, error) {
	bytes := make([]byte, 16)

	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
