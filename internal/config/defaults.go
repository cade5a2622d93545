package config

import "time"

const (
	// DefaultFileName is the config file inside the eeroctl config directory.
	DefaultFileName = "config.yaml"
	DefaultOutput   = "table"
	DefaultAPIURL   = "https://api-user.e2ro.com/2.2"
	DefaultTimeout  = 30 * time.Second
	// DefaultRateLimit is the steady request rate against the API.
	DefaultRateLimit = 10.0
)

var validOutputs = map[string]bool{
	"table": true,
	"list":  true,
	"json":  true,
	"yaml":  true,
	"text":  true,
}
