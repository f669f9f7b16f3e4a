package postgrest

import "time"

// Config holds the remote store connection settings. Both the endpoint URL
// and the API key are required; startup must fail fast when either is
// missing rather than letting every request fail later.
type Config struct {
	BaseURL        string        `env:"POSTGREST_URL,required"`
	APIKey         string        `env:"POSTGREST_API_KEY,required"`
	RequestTimeout time.Duration `env:"POSTGREST_REQUEST_TIMEOUT" envDefault:"30s"`
}
