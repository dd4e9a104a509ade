// Package config loads publish settings from defaults, an optional
// .publish.yaml, a .env file, PUBLISH_* environment variables and flags, in
// increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Johannes-Berggren/publish/internal/models"
)

const (
	// EnvPrefix prefixes every environment override, e.g. PUBLISH_OUTPUT_DIR.
	EnvPrefix = "PUBLISH"
	// FileName is the config file looked up in the working directory.
	FileName = ".publish.yaml"
)

// Config is the effective publish configuration.
type Config struct {
	Build  BuildConfig  `mapstructure:"build" yaml:"build"`
	Output RepoConfig   `mapstructure:"output" yaml:"output"`
	Site   RemoteConfig `mapstructure:"site" yaml:"site"`
}

// BuildConfig names the static-site build tool.
type BuildConfig struct {
	Command string   `mapstructure:"command" yaml:"command"`
	Args    []string `mapstructure:"args" yaml:"args"`
}

// RemoteConfig is where a repository is pushed.
type RemoteConfig struct {
	Remote string `mapstructure:"remote" yaml:"remote"`
	Branch string `mapstructure:"branch" yaml:"branch"`
}

// RepoConfig is the nested output repository.
type RepoConfig struct {
	Dir          string `mapstructure:"dir" yaml:"dir"`
	RemoteConfig `mapstructure:",squash" yaml:",inline"`
}

// Target returns the push target for the output repository.
func (r RepoConfig) Target() models.PushTarget {
	return r.RemoteConfig.Target()
}

// Target returns the push target for the remote.
func (r RemoteConfig) Target() models.PushTarget {
	return models.PushTarget{Remote: r.Remote, Branch: r.Branch}
}

// Default returns the built-in configuration: `hugo` building into public/,
// both repositories pushed to origin on their current branch.
func Default() Config {
	return Config{
		Build:  BuildConfig{Command: "hugo"},
		Output: RepoConfig{Dir: "public", RemoteConfig: RemoteConfig{Remote: "origin"}},
		Site:   RemoteConfig{Remote: "origin"},
	}
}

// Options controls where Load looks for configuration.
type Options struct {
	// Dir is the working directory holding .publish.yaml and .env.
	Dir string
	// File overrides the config file path. It must exist when set.
	File string
	// Flags, when set, are bound to their matching keys.
	Flags *pflag.FlagSet
}

// flagKeys maps command line flag names to config keys.
var flagKeys = map[string]string{
	"build-command": "build.command",
	"output-dir":    "output.dir",
	"output-remote": "output.remote",
	"output-branch": "output.branch",
	"site-remote":   "site.remote",
	"site-branch":   "site.branch",
}

// Load builds the effective configuration and validates it.
func Load(opts Options) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}

	v := viper.New()
	def := Default()
	v.SetDefault("build.command", def.Build.Command)
	v.SetDefault("build.args", def.Build.Args)
	v.SetDefault("output.dir", def.Output.Dir)
	v.SetDefault("output.remote", def.Output.Remote)
	v.SetDefault("output.branch", def.Output.Branch)
	v.SetDefault("site.remote", def.Site.Remote)
	v.SetDefault("site.branch", def.Site.Branch)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.File, err)
		}
	} else {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// loadDotEnv reads dir/.env into the process environment. Variables that
// are already set win.
func loadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Validate checks required fields and that the output directory stays
// inside the working directory.
func (c Config) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(c.Build.Command) == "" {
		errs["build.command"] = validation.NewError("publish.config.build_command_required", "build command is required")
	}
	if err := validateOutputDir(c.Output.Dir); err != nil {
		errs["output.dir"] = err
	}
	if strings.TrimSpace(c.Output.Remote) == "" {
		errs["output.remote"] = validation.NewError("publish.config.remote_required", "remote is required")
	}
	if strings.TrimSpace(c.Site.Remote) == "" {
		errs["site.remote"] = validation.NewError("publish.config.remote_required", "remote is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var errOutputDirEscapes = validation.NewError("publish.config.output_dir_escapes", "output directory must be inside the working directory")

func validateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return validation.NewError("publish.config.output_dir_required", "output directory is required")
	}
	if filepath.IsAbs(dir) {
		return errOutputDirEscapes
	}
	clean := filepath.Clean(dir)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return errOutputDirEscapes
	}
	return nil
}

// YAML renders the configuration in the .publish.yaml format.
func (c Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return out, nil
}
