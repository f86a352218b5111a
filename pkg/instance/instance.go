package instance

import (
	"os"

	"github.com/angelmondragon/bakery-backend/pkg/env"
)

// GetID identifies the running process in logs. BAKERY_INSTANCE_ID wins, then
// the platform dyno name, then the hostname.
func GetID() string {
	if id := env.Get("BAKERY_INSTANCE_ID", env.Get("DYNO", "")); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "api-0"
}
