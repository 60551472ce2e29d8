package config

import "os"

type Config struct {
	Port                string
	SpotifyClientID     string
	SpotifyClientSecret string
	CORSOrigin          string
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.SpotifyClientID = os.Getenv("SPOTIFY_CLIENT_ID")
	c.SpotifyClientSecret = os.Getenv("SPOTIFY_CLIENT_SECRET")
	c.CORSOrigin = getenv("CORS_ORIGIN", "*")
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
