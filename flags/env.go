package flags

import "os"

// Environment variables providing defaults for flags.
const (
	envRegion   = "BLITZ_REGION"
	envTimeout  = "BLITZ_TIMEOUT"
	envLogLevel = "BLITZ_LOG_LEVEL"
	envNoColor  = "NO_COLOR"
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
