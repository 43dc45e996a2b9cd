package cli

// RunOptions contains the configuration shared by every clic subcommand.
type RunOptions struct {
	Manifest    string
	Catalog     string
	Debug       bool
	HistorySize int
	RedisAddr   string
	RedisKey    string
	Redact      []string
	MetricsAddr string
	Watch       bool
}
