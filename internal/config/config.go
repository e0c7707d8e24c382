// Package config provides configuration management for gamecrawl. Values are
// layered: defaults, then an optional YAML config file, then environment
// variables (including a .env file loaded at startup).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Bloodwingv2/gamecrawl/internal/dedup"
	"github.com/Bloodwingv2/gamecrawl/internal/domain"
	"github.com/Bloodwingv2/gamecrawl/internal/logger"
	"github.com/Bloodwingv2/gamecrawl/internal/sources"
)

// Default configuration values.
const (
	defaultEnvironment    = "development"
	defaultLogLevel       = "info"
	defaultOutputCSV      = "data/merged_games.csv"
	defaultReportDir      = "data/reports"
	defaultServerAddress  = ":8070"
	defaultReadTimeout    = 30 * time.Second
	defaultWriteTimeout   = 30 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultDBHost         = "localhost"
	defaultDBPort         = 5432
	defaultDBUser         = "postgres"
	defaultDBName         = "gamecrawl"
	defaultDBSSLMode      = "disable"
	defaultDBMaxConns     = 25
	defaultDBMaxIdleConns = 5
	defaultDBConnLifetime = 5 * time.Minute
	defaultBatchSize      = 500
	defaultInputDir       = "data/raw"
)

// AppConfig holds application-level settings.
type AppConfig struct {
	Environment string `mapstructure:"environment" yaml:"environment"`
	Debug       bool   `mapstructure:"debug"       yaml:"debug"`
}

// PipelineConfig tunes the merge run.
type PipelineConfig struct {
	// SkipMissing lets a run continue when a source's batch file is absent.
	SkipMissing bool `mapstructure:"skip_missing" yaml:"skip_missing"`
	// SimilarityThreshold is the near-duplicate audit cutoff; zero disables.
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
}

// OutputConfig holds output paths.
type OutputConfig struct {
	CSVPath   string `mapstructure:"csv_path"   yaml:"csv_path"`
	ReportDir string `mapstructure:"report_dir" yaml:"report_dir"`
}

// DatabaseConfig holds Postgres connection settings.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"                    yaml:"host"`
	Port            int           `mapstructure:"port"                    yaml:"port"`
	User            string        `mapstructure:"user"                    yaml:"user"`
	Password        string        `mapstructure:"password"                yaml:"password"`
	Database        string        `mapstructure:"database"                yaml:"database"`
	SSLMode         string        `mapstructure:"sslmode"                 yaml:"sslmode"`
	MaxConnections  int           `mapstructure:"max_connections"         yaml:"max_connections"`
	MaxIdleConns    int           `mapstructure:"max_idle_connections"    yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `mapstructure:"connection_max_lifetime" yaml:"connection_max_lifetime"`
	BatchSize       int           `mapstructure:"batch_size"              yaml:"batch_size"`
}

// DSN renders the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// ServerConfig holds HTTP server settings for the httpd command.
type ServerConfig struct {
	Address      string        `mapstructure:"address"       yaml:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"  yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"  yaml:"idle_timeout"`
}

// Config represents the full application configuration.
type Config struct {
	App      AppConfig        `mapstructure:"app"      yaml:"app"`
	Logger   logger.Config    `mapstructure:"logger"   yaml:"logger"`
	Sources  []sources.Config `mapstructure:"sources"  yaml:"sources"`
	Pipeline PipelineConfig   `mapstructure:"pipeline" yaml:"pipeline"`
	Output   OutputConfig     `mapstructure:"output"   yaml:"output"`
	Database DatabaseConfig   `mapstructure:"database" yaml:"database"`
	Server   ServerConfig     `mapstructure:"server"   yaml:"server"`
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if err := sources.Validate(c.Sources); err != nil {
		return fmt.Errorf("sources: %w", err)
	}
	if c.Pipeline.SimilarityThreshold < 0 || c.Pipeline.SimilarityThreshold > 1 {
		return fmt.Errorf("pipeline: similarity_threshold %v outside [0,1]", c.Pipeline.SimilarityThreshold)
	}
	return nil
}

// Load reads configuration from the given file (optional), environment
// variables, and defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus env vars are a valid setup,
		// but an explicitly named file must exist.
		if cfgFile != "" {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultSources(v.GetString("input.dir"))
	}
	return cfg, nil
}

// setDefaults applies default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", defaultEnvironment)
	v.SetDefault("app.debug", false)
	v.SetDefault("logger.level", defaultLogLevel)
	v.SetDefault("logger.development", false)
	v.SetDefault("pipeline.skip_missing", false)
	v.SetDefault("pipeline.similarity_threshold", dedup.DefaultSimilarityThreshold)
	v.SetDefault("input.dir", defaultInputDir)
	v.SetDefault("output.csv_path", defaultOutputCSV)
	v.SetDefault("output.report_dir", defaultReportDir)
	v.SetDefault("database.host", defaultDBHost)
	v.SetDefault("database.port", defaultDBPort)
	v.SetDefault("database.user", defaultDBUser)
	v.SetDefault("database.database", defaultDBName)
	v.SetDefault("database.sslmode", defaultDBSSLMode)
	v.SetDefault("database.max_connections", defaultDBMaxConns)
	v.SetDefault("database.max_idle_connections", defaultDBMaxIdleConns)
	v.SetDefault("database.connection_max_lifetime", defaultDBConnLifetime)
	v.SetDefault("database.batch_size", defaultBatchSize)
	v.SetDefault("server.address", defaultServerAddress)
	v.SetDefault("server.read_timeout", defaultReadTimeout)
	v.SetDefault("server.write_timeout", defaultWriteTimeout)
	v.SetDefault("server.idle_timeout", defaultIdleTimeout)
}

// bindEnvVars maps well-known environment variables to config keys.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("app.environment", "APP_ENV")
	_ = v.BindEnv("app.debug", "APP_DEBUG")
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
	_ = v.BindEnv("database.host", "POSTGRES_HOST")
	_ = v.BindEnv("database.port", "POSTGRES_PORT")
	_ = v.BindEnv("database.user", "POSTGRES_USER")
	_ = v.BindEnv("database.password", "POSTGRES_PASSWORD")
	_ = v.BindEnv("database.database", "POSTGRES_DB")
	_ = v.BindEnv("server.address", "SERVER_ADDRESS")
}

// defaultSources builds the conventional per-storefront file layout under the
// input directory, used when no sources are configured explicitly.
func defaultSources(dir string) []sources.Config {
	all := domain.AllSources()
	configs := make([]sources.Config, 0, len(all))
	for _, src := range all {
		name := strings.ToLower(string(src))
		configs = append(configs, sources.Config{
			Name:    string(src),
			File:    fmt.Sprintf("%s/%s.csv", dir, name),
			Enabled: true,
		})
	}
	return configs
}
