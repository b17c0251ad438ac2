package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/errcodes/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultEnvPrefix = "ERRCODES"
	DefaultLogLevel  = LogLevelWarning
	DefaultOutput    = OutputText
	configName       = "errcodes"
)

// Template is an extra fixed template registered at startup
type Template struct {
	Code    string `mapstructure:"code"`
	Message string `mapstructure:"message"`
}

type Config struct {
	Debug     bool         `mapstructure:"debug"`
	Verbose   bool         `mapstructure:"verbose"`
	LogLevel  LogLevel     `mapstructure:"log-level"`
	Output    OutputFormat `mapstructure:"output"`
	NoColor   bool         `mapstructure:"no-color"`
	Templates []Template   `mapstructure:"templates"`

	// Args holds the positional arguments left after the global flags
	Args []string `mapstructure:"-"`
}

// Load reads configuration from flags, environment and an optional TOML file.
// Flags are only recognised before the first positional argument.
func Load(args []string, opts ...Option) (*Config, error) {
	o := options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	fs := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.Bool("debug", false, "Enable debugging mode")
	fs.Bool("verbose", false, "Enable verbose logging")
	fs.String("log-level", string(DefaultLogLevel), "Log level (debug, info, warning, error)")
	fs.String("output", string(DefaultOutput), "Output format (text, json)")
	fs.Bool("no-color", false, "Disable colored output")
	configFlag := fs.String("config", "", "Path to a TOML configuration file")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err, "flags", strings.Join(args, " "))
	}

	v := viper.New()
	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configPath := o.configPath
	if *configFlag != "" {
		configPath = *configFlag
	}
	if configPath == "" {
		configPath = os.Getenv(o.envPrefix + "_CONFIG")
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(errors.ErrReadConfig, err, configPath)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errors.Wrap(errors.ErrReadConfig, err, configName+".toml")
			}
		}
	}

	// Flags override file and environment values only when set explicitly
	if err := v.BindPFlags(fs); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err, "flags", "bind")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfig, err, "file", v.ConfigFileUsed())
	}
	cfg.Args = fs.Args()

	if cfg.Debug {
		cfg.LogLevel = LogLevelDebug
	} else if cfg.Verbose && cfg.LogLevel == DefaultLogLevel {
		cfg.LogLevel = LogLevelInfo
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field values, returning a coded error for the first
// invalid one.
func (c *Config) Validate() error {
	if !c.LogLevel.IsValid() {
		return errors.NewRangeError(errors.ErrInvalidLogLevel, string(c.LogLevel))
	}
	if !c.Output.IsValid() {
		return errors.NewRangeError(errors.ErrInvalidOutput, string(c.Output))
	}
	for _, tmpl := range c.Templates {
		if tmpl.Code == "" {
			return errors.NewError(errors.ErrInvalidConfig, "templates.code", `""`)
		}
		if tmpl.Message == "" {
			return errors.NewError(errors.ErrInvalidConfig, "templates.message", tmpl.Code)
		}
	}

	return nil
}

// TemplateMap converts the configured templates for registration
func (c *Config) TemplateMap() map[errors.ErrorCode]errors.Template {
	templates := make(map[errors.ErrorCode]errors.Template, len(c.Templates))
	for _, tmpl := range c.Templates {
		templates[errors.ErrorCode(tmpl.Code)] = errors.Fixed(tmpl.Message)
	}

	return templates
}
