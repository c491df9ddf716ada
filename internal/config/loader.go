package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	oerrors "github.com/saturncloud/examplecheck/internal/errors"
)

// Environment variable prefix for examplecheck configuration.
const envPrefix = "EXAMPLECHECK"

// ConfigEnvVar names the config file when --config is not given.
const ConfigEnvVar = envPrefix + "_CONFIG"

// Loader handles loading and merging configuration from multiple sources.
// Precedence is flag > env > config file > default.
type Loader struct {
	v  *viper.Viper
	fs afero.Fs

	// flags maps a key to the flag bound to it.
	flags map[string]*pflag.Flag

	// overrides are keys set from flags that cannot be bound directly.
	overrides map[string]bool
}

// NewLoaderWithFs creates a configuration loader reading config files from fs.
func NewLoaderWithFs(fs afero.Fs) *Loader {
	v := viper.New()
	v.SetFs(fs)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}
	// Keys without a default are invisible to Unmarshal unless bound.
	for _, key := range Keys {
		_ = v.BindEnv(key)
	}

	return &Loader{
		v:         v,
		fs:        fs,
		flags:     make(map[string]*pflag.Flag),
		overrides: make(map[string]bool),
	}
}

// BindFlag binds a command-line flag to a config key. The flag wins only
// when it was set explicitly.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %s: flag not defined", key)
	}
	if err := l.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("binding %s: %w", key, err)
	}
	l.flags[key] = flag
	return nil
}

// SetFromFlag records a value derived from a flag, such as the inverse of
// --no-thumbnails.
func (l *Loader) SetFromFlag(key string, value any) {
	l.v.Set(key, value)
	l.overrides[key] = true
}

// Load loads configuration from the given file path. If configFile is empty
// the EXAMPLECHECK_CONFIG environment variable is consulted; with neither,
// only flags, environment and defaults apply. A named file that does not
// exist is an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = os.Getenv(ConfigEnvVar)
	}

	if configFile != "" {
		if err := l.readConfigFile(configFile); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg.WithDefaults()
}

func (l *Loader) readConfigFile(configFile string) error {
	path, err := ExpandPath(configFile)
	if err != nil {
		return fmt.Errorf("expanding config path: %w", err)
	}

	exists, err := afero.Exists(l.fs, path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return oerrors.NewNotFoundError(
			"config file not found",
			path,
			"Pass an existing YAML file to --config or unset "+ConfigEnvVar+".",
		)
	}

	l.v.SetConfigFile(path)
	l.v.SetConfigType("yaml")
	if err := l.v.ReadInConfig(); err != nil {
		return oerrors.WrapCause(oerrors.ErrValidation, err, "reading config file "+path)
	}
	return nil
}

// envName returns the environment variable read for key.
func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(key)
}
