package config

import "time"

type ServerModeType string

const (
	ServerModeProd ServerModeType = "prod"
	ServerModeDev  ServerModeType = "dev"
)

//go:generate go run github.com/ecordell/optgen -output zz_generated.configuration.go . Configuration Agent Server Fivetran
type Configuration struct {
	Agent    Agent    `debugmap:"visible"`
	Server   Server   `debugmap:"visible"`
	Fivetran Fivetran `debugmap:"visible"`

	// Log
	LogFormat string `debugmap:"visible" default:"console"`
	LogLevel  string `debugmap:"visible" default:"info"`
}

type Agent struct {
	// DataFolder holds the secret store database. Empty means in-memory.
	DataFolder string `debugmap:"visible"`
	NumWorkers int    `debugmap:"visible" default:"1"`

	// SettleDelay is the grace period between unpausing a connector and the
	// first status poll, so the remote side has a chance to start syncing.
	SettleDelay time.Duration `debugmap:"visible" default:"15s"`
	// PollInterval is the steady-state wait between status polls.
	PollInterval time.Duration `debugmap:"visible" default:"30s"`
	// MaxSyncWait bounds the polling loop. A sync still running after this
	// long ends the run with a timeout instead of looping forever.
	MaxSyncWait time.Duration `debugmap:"visible" default:"2h"`

	// Connectors maps logical connector names to Fivetran connector ids.
	Connectors map[string]string `debugmap:"visible"`
}

type Server struct {
	HTTPPort   int    `debugmap:"visible" default:"8080"`
	ServerMode string `debugmap:"visible" default:"dev"`
}

type Fivetran struct {
	APIURL string `debugmap:"visible" default:"https://api.fivetran.com/v1"`
	// SecretScope is the scope the API key and secret are stored under in
	// the secret provider.
	SecretScope       string  `debugmap:"visible" default:"fivetran_bi_service"`
	RequestsPerSecond float64 `debugmap:"visible" default:"5"`
	Burst             int     `debugmap:"visible" default:"5"`
}

// DefaultConnectors is the production table of logical connector names to
// Fivetran connector ids. It can be replaced wholesale through the
// --connector-table flag.
func DefaultConnectors() map[string]string {
	return map[string]string{
		"sherwood_palsql":         "tidy_interval",
		"fsq_labworks":            "intensive_usefulness",
		"hubspot":                 "embarkation_cropped",
		"tulare_soiltestvtaglab":  "shucking_fresco",
		"netsuite_suiteanalytics": "decayed_neat",
	}
}
