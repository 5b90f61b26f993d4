package config

// Application constants shared by the command-line tools.
const (
	// Application Info
	AppName    = "paneldata"
	AppVersion = "1.2.0"

	// EnvPrefix namespaces every environment override (PANEL_*).
	EnvPrefix = "PANEL"

	// File Paths (relative to the working directory)
	DefaultDataDir = "data"
	DefaultLogsDir = "logs"

	// Loader defaults: file names like prices_20210131.csv carry the
	// snapshot date in a compact token.
	DefaultDatePattern   = `(\d{8})`
	DefaultDateLayout    = "20060102"
	DefaultLoaderWorkers = 4

	// DefaultStoreTag labels collections built without an explicit tag.
	DefaultStoreTag = "DATA"
)
