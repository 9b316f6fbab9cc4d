package config

// Application constants
const (
	AppName    = "scopeplot"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces environment overrides, e.g. SCOPE_BATCH_WORKERS
	EnvPrefix = "SCOPE"

	DefaultInputDir        = "captures"
	DefaultOutputDir       = "graphs"
	DefaultLogsDir         = "logs"
	DefaultLogFile         = "logs/scopeplot.log"
	DefaultPattern         = "*.csv"
	DefaultWorkers         = 4
	DefaultSummaryWorkbook = "summary.xlsx"
)

// ConfigFileLocations are searched in order when no config path is given
var ConfigFileLocations = []string{
	"scopeplot.yaml",
	"configs/scopeplot.yaml",
}
