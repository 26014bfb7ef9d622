package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input    InputConfig    `yaml:"input" mapstructure:"input"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Benefit  BenefitConfig  `yaml:"benefit" mapstructure:"benefit"`
	Fetch    FetchConfig    `yaml:"fetch" mapstructure:"fetch"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// InputConfig locates the survey extract and reference tables. Each entry
// is a local path or an http(s) URL; .zip archives holding a single file are
// unpacked into TempDir.
type InputConfig struct {
	Persons         string `yaml:"persons" mapstructure:"persons"`
	Crosswalk       string `yaml:"crosswalk" mapstructure:"crosswalk"`
	Thresholds      string `yaml:"thresholds" mapstructure:"thresholds"`
	ThresholdPrefix string `yaml:"threshold_prefix" mapstructure:"threshold_prefix"` // wide-format column prefix, e.g. "l80_"
	ThresholdSheet  string `yaml:"threshold_sheet" mapstructure:"threshold_sheet"`
	JobLoss         string `yaml:"job_loss" mapstructure:"job_loss"`
	IndustryMap     string `yaml:"industry_map" mapstructure:"industry_map"` // keyed on IND; empty = NAICS sector grouping of indnaics
	TempDir         string `yaml:"temp_dir" mapstructure:"temp_dir"`
}

// OutputConfig selects where enriched records are written.
type OutputConfig struct {
	Format      string `yaml:"format" mapstructure:"format"` // csv, sqlite, postgres
	Path        string `yaml:"path" mapstructure:"path"`     // csv file or sqlite database
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Schema      string `yaml:"schema" mapstructure:"schema"`
}

// PipelineConfig holds the modeling constants used by the join and derive
// stages.
type PipelineConfig struct {
	TieBreak               string    `yaml:"tie_break" mapstructure:"tie_break"`
	HouseholdSizeCap       int       `yaml:"household_size_cap" mapstructure:"household_size_cap"`
	ExcludedPopulation     []int     `yaml:"excluded_population" mapstructure:"excluded_population"`
	WageSentinels          []float64 `yaml:"wage_sentinels" mapstructure:"wage_sentinels"`
	HouseholdIncomeTopCode float64   `yaml:"household_income_top_code" mapstructure:"household_income_top_code"`
	RenterTenureCodes      []int     `yaml:"renter_tenure_codes" mapstructure:"renter_tenure_codes"`
	RentMonths             float64   `yaml:"rent_months" mapstructure:"rent_months"`
	BurdenThreshold        float64   `yaml:"burden_threshold" mapstructure:"burden_threshold"`
	SevereBurdenThreshold  float64   `yaml:"severe_burden_threshold" mapstructure:"severe_burden_threshold"`
	DefaultTargetBurden    float64   `yaml:"default_target_burden" mapstructure:"default_target_burden"`
}

// BenefitConfig selects the UI schedule. An empty SchedulePath uses the
// built-in New York 2020 schedule.
type BenefitConfig struct {
	SchedulePath string `yaml:"schedule_path" mapstructure:"schedule_path"`
}

// FetchConfig configures remote input downloads.
type FetchConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("RENTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.threshold_prefix", "l80_")
	v.SetDefault("input.temp_dir", "/tmp/rental-assist")
	v.SetDefault("output.format", "csv")
	v.SetDefault("output.path", "enriched.csv")
	v.SetDefault("output.schema", "rental")
	v.SetDefault("pipeline.tie_break", "first_in_order")
	v.SetDefault("pipeline.household_size_cap", 8)
	v.SetDefault("pipeline.excluded_population", []int{3, 4})
	v.SetDefault("pipeline.wage_sentinels", []float64{999998, 999999})
	v.SetDefault("pipeline.household_income_top_code", 9999999)
	v.SetDefault("pipeline.renter_tenure_codes", []int{2})
	v.SetDefault("pipeline.rent_months", 12)
	v.SetDefault("pipeline.burden_threshold", 0.30)
	v.SetDefault("pipeline.severe_burden_threshold", 0.50)
	v.SetDefault("pipeline.default_target_burden", 0.30)
	v.SetDefault("fetch.user_agent", "rental-assist/1.0")
	v.SetDefault("fetch.timeout_secs", 60)
	v.SetDefault("fetch.max_retries", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints that viper cannot express.
func (c *Config) Validate() error {
	p := c.Pipeline
	if p.HouseholdSizeCap < 1 {
		return eris.Errorf("config: pipeline.household_size_cap must be at least 1, got %d", p.HouseholdSizeCap)
	}
	if p.BurdenThreshold <= 0 {
		return eris.Errorf("config: pipeline.burden_threshold must be positive, got %v", p.BurdenThreshold)
	}
	if p.SevereBurdenThreshold < p.BurdenThreshold {
		return eris.Errorf("config: pipeline.severe_burden_threshold (%v) below burden_threshold (%v)",
			p.SevereBurdenThreshold, p.BurdenThreshold)
	}
	if p.RentMonths <= 0 {
		return eris.Errorf("config: pipeline.rent_months must be positive, got %v", p.RentMonths)
	}
	switch c.Output.Format {
	case "csv", "sqlite", "postgres":
	default:
		return eris.Errorf("config: unknown output.format %q (valid: csv, sqlite, postgres)", c.Output.Format)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
