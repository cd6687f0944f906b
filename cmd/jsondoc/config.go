package main

import (
	"flag"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/oarkflow/jsondoc/reader"
)

// Config holds the settings shared by every subcommand.
type Config struct {
	ConfigFile string            `yaml:"-"`
	PoolSize   datasize.ByteSize `yaml:"pool_size"`
	Workers    int               `yaml:"workers"`
	MaxDepth   int               `yaml:"max_depth"`
	Trace      bool              `yaml:"trace"`
	LogLevel   string            `yaml:"log_level"`
}

// RegisterFlags adds the flags required to config this to the given FlagSet
func (cfg *Config) RegisterFlags(f *flag.FlagSet) {
	cfg.PoolSize = 16 * datasize.MB

	f.StringVar(&cfg.ConfigFile, "config.file", "", "YAML file with default settings. Flags given on the command line take precedence.")
	f.TextVar(&cfg.PoolSize, "arena.size", cfg.PoolSize, "Size of the arena each document is parsed into.")
	f.IntVar(&cfg.Workers, "workers", 4, "Number of files processed concurrently.")
	f.IntVar(&cfg.MaxDepth, "max-depth", reader.DefaultMaxDepth, "Maximum nesting depth accepted by the reader. Zero or less disables the limit.")
	f.BoolVar(&cfg.Trace, "trace", false, "Log every token the reader consumes at debug level.")
	f.StringVar(&cfg.LogLevel, "log.level", "info", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]")
}

// Validate checks the config after flags and file have been applied.
func (cfg *Config) Validate() error {
	if cfg.PoolSize == 0 {
		return errors.New("arena.size must be positive")
	}
	if cfg.PoolSize.Bytes() > uint64(maxPool) {
		return errors.Errorf("arena.size %s is too large", cfg.PoolSize.HumanReadable())
	}
	if cfg.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if _, err := level.Parse(cfg.LogLevel); err != nil {
		return errors.Wrap(err, "log.level")
	}
	return nil
}

const maxPool = 1 << 40

// readerOptions returns the reader options the config implies.
func (cfg *Config) readerOptions() []reader.Option {
	return []reader.Option{reader.WithMaxDepth(cfg.MaxDepth)}
}

// parseConfig registers the shared flags on f, applies the config file if one
// is named and then parses args again so explicit flags win over the file.
func parseConfig(f *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	cfg.RegisterFlags(f)
	if err := f.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ConfigFile != "" {
		if err := loadConfigFile(cfg.ConfigFile, cfg); err != nil {
			return nil, err
		}
		if err := f.Parse(args); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

func loadConfigFile(path string, cfg *Config) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "error reading config file")
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return errors.Wrapf(err, "error parsing config file %s", path)
	}
	return nil
}
