package config

type Config struct {
	DatabaseURL   string
	JWTSecret     string
	SessionSecret string
	MentorAPIURL  string
	Environment   string
	Port          string
	AllowedOrigin string
}

type TUIFlags struct {
	ServerURL string
	Name      string
}
