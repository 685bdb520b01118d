package cli

const (
	FlagHome        = "home"
	FlagFormat      = "format"
	FlagInputFormat = "input-format"
	FlagLogLevel    = "log-level"
)
