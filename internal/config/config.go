package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "scopecli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Batch     BatchConfig     `yaml:"batch" envconfig:"BATCH"`
	Render    RenderConfig    `yaml:"render" envconfig:"RENDER"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	Pattern   string `yaml:"pattern" envconfig:"PATTERN" validate:"required"`
}

// BatchConfig controls how a batch of captures is processed
type BatchConfig struct {
	Workers            int    `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=256"`
	Groups             bool   `yaml:"groups" envconfig:"GROUPS"`
	FilterSets         bool   `yaml:"filter_sets" envconfig:"FILTER_SETS"`
	StrictChannelField bool   `yaml:"strict_channel_field" envconfig:"STRICT_CHANNEL_FIELD"`
	Encoding           string `yaml:"encoding" envconfig:"ENCODING" validate:"oneof=auto utf-8 shift_jis"`
	NormalizedCSV      bool   `yaml:"normalized_csv" envconfig:"NORMALIZED_CSV"`
}

// RenderConfig contains chart rendering settings
type RenderConfig struct {
	WidthIn   float64 `yaml:"width_in" envconfig:"WIDTH_IN" validate:"gt=0,lte=100"`
	HeightIn  float64 `yaml:"height_in" envconfig:"HEIGHT_IN" validate:"gt=0,lte=100"`
	DPI       int     `yaml:"dpi" envconfig:"DPI" validate:"min=36,max=1200"`
	LineWidth float64 `yaml:"line_width" envconfig:"LINE_WIDTH" validate:"gt=0"`
}

// ExportConfig controls optional report outputs
type ExportConfig struct {
	// SummaryWorkbook is the xlsx file name written to the output directory.
	// Empty disables the workbook.
	SummaryWorkbook string `yaml:"summary_workbook" envconfig:"SUMMARY_WORKBOOK"`
}

// TelemetryConfig contains tracing and metrics settings
type TelemetryConfig struct {
	Tracing         bool   `yaml:"tracing" envconfig:"TRACING"`
	TraceExporter   string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	MetricsTextfile string `yaml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
}

// Load builds the configuration from defaults, a YAML file and SCOPE_*
// environment variables, in that order of increasing precedence.
// An empty path searches the default locations; a missing default file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, apperrors.NewConfigError("failed to load config file", err).
					WithContext("path", path)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. Keys absent from the file
// keep their current values; unknown keys are rejected.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// getConfigFilePath returns the first existing default config file
func getConfigFilePath() string {
	for _, location := range ConfigFileLocations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml key names in validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field against its validate tag
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewConfigError("config validation failed", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", field, fe.Tag()))
		}
	}
	return apperrors.NewConfigError("config validation failed: "+strings.Join(msgs, "; "), err)
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			InputDir:  DefaultInputDir,
			OutputDir: DefaultOutputDir,
			LogsDir:   DefaultLogsDir,
			Pattern:   DefaultPattern,
		},
		Batch: BatchConfig{
			Workers:    DefaultWorkers,
			Groups:     true,
			FilterSets: false,
			Encoding:   "auto",
		},
		Render: RenderConfig{
			WidthIn:   12,
			HeightIn:  8,
			DPI:       300,
			LineWidth: 1.5,
		},
		Export: ExportConfig{
			SummaryWorkbook: DefaultSummaryWorkbook,
		},
		Telemetry: TelemetryConfig{
			Tracing:       false,
			TraceExporter: "none",
		},
	}
}
