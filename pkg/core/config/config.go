//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package config loads SDK settings with [Viper]. Settings come from built-in
// defaults, an optional YAML file and AILOG_ environment variables, in
// increasing order of precedence. Options passed to a logger constructor
// override all of them.
//
// # Configuration File
//
// ailog-config.yaml is looked up in the working directory unless these
// variables say otherwise:
//
//	AILOG_CONFIG_PATH=/etc/ailog
//	AILOG_CONFIG_FILENAME=production-config
//
// For example:
//
//	api_key: sk-live-...
//	project_id: proj-123
//	base_url: https://api.regulateai.io
//	timeout: 10s
//	buffer_size: 50
//	flush_interval: 5s
//	log:
//	  level: ".:info"
//	metadata:
//	  env:
//	    pod: HOSTNAME
//	    region: AWS_REGION
//
// # Environment Variables
//
// Every key has an AILOG_ variable; dots become underscores:
//
//	AILOG_API_KEY=sk-live-...
//	AILOG_FLUSH_INTERVAL=2s
//	AILOG_LOG_LEVEL=.:debug
//
// [Viper]: https://github.com/spf13/viper
package config

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Chavda-Mitul/AI-Logger/internal/logging"
	"github.com/spf13/viper"
)

// Where configuration is looked up.
const (
	EnvVarPrefix string = "AILOG"

	// ConfigPathEnv names the directory holding the configuration file.
	ConfigPathEnv string = "AILOG_CONFIG_PATH"
	// ConfigFileNameEnv names the configuration file, without ".yaml".
	ConfigFileNameEnv string = "AILOG_CONFIG_FILENAME"

	ConfigDefaultPath     string = "."
	ConfigDefaultFilename string = "ailog-config"
)

// Keys of [VConfig].
const (
	logLevel string = "log.level"

	// Enabled turns delivery off when false; loggers then discard entries.
	//
	// Default: true
	Enabled string = "enabled"

	// APIKey is the credential sent in the x-api-key header.
	APIKey string = "api_key"

	// ProjectID is sent in the x-project-id header by the compliance logger.
	ProjectID string = "project_id"

	// BaseURL overrides the API base URL of either logger.
	BaseURL string = "base_url"

	// Timeout bounds every HTTP request, as a Go duration string.
	//
	// Default: 10s
	Timeout string = "timeout"

	// Silent suppresses warnings about failed sends.
	Silent string = "silent"

	// BufferSize is the number of entries that triggers a flush.
	//
	// Default: 50
	BufferSize string = "buffer_size"

	// FlushInterval is the maximum age of the oldest unflushed entry, as a
	// Go duration string. Zero makes every Log flush synchronously.
	//
	// Default: 5s
	FlushInterval string = "flush_interval"

	// PollInterval is how often the background flusher wakes up.
	//
	// Default: 1s
	PollInterval string = "poll_interval"

	// MetadataEnv maps metadata keys to environment variable names; see
	// [GetMetadataEnv].
	MetadataEnv string = "metadata.env"
)

// Built-in defaults.
const (
	DefaultTimeout       = 10 * time.Second
	DefaultBufferSize    = 50
	DefaultFlushInterval = 5 * time.Second
	DefaultPollInterval  = time.Second
)

var (
	initOnce sync.Once
	loadOnce sync.Once
	loadErr  error

	// VConfig holds the merged SDK settings. It is created by [Init] or [Load];
	// the logger constructors read it, so most callers never touch it.
	VConfig *viper.Viper
	logger  = logging.GetLogger("ailog.config")
)

// Init creates [VConfig] with its defaults and environment binding but reads
// no file. Only the first call has an effect.
func Init() {
	initOnce.Do(newViper)
}

func envOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func getConfigPath() string {
	return envOr(ConfigPathEnv, ConfigDefaultPath)
}

func getConfigFileName() string {
	return envOr(ConfigFileNameEnv, ConfigDefaultFilename)
}

func newViper() {
	v := viper.New()

	// $AILOG_CONFIG_PATH/$AILOG_CONFIG_FILENAME.yaml, default ./ailog-config.yaml
	v.AddConfigPath(getConfigPath())
	v.SetConfigName(getConfigFileName())
	v.SetConfigType("yaml")

	// flush_interval -> AILOG_FLUSH_INTERVAL, log.level -> AILOG_LOG_LEVEL
	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range map[string]interface{}{
		logLevel:      ".:info",
		Enabled:       true,
		APIKey:        "",
		ProjectID:     "",
		BaseURL:       "",
		Timeout:       DefaultTimeout,
		Silent:        false,
		BufferSize:    DefaultBufferSize,
		FlushInterval: DefaultFlushInterval,
		PollInterval:  DefaultPollInterval,
	} {
		v.SetDefault(key, value)
	}

	VConfig = v
}

// Load reads the configuration file, if there is one, on top of the defaults
// and the environment, then applies the configured log levels. A missing file
// is not an error.
//
// Only the first call does any work; every call returns the first result.
// Load is safe for concurrent use.
func Load() error {
	loadOnce.Do(func() {
		Init()
		loadErr = load()
	})
	return loadErr
}

func load() error {
	// AILOG_LOG_LEVEL applies before the file is read so that file loading
	// itself can be debugged
	if early := os.Getenv("AILOG_LOG_LEVEL"); early != "" {
		if err := setLogLevels(early); err != nil {
			return err
		}
	}

	file := getConfigPath() + "/" + getConfigFileName() + ".yaml"
	logger.SysDebugf("reading configuration from %s", file)
	if err := VConfig.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			logger.SysDebugf("%s not found; using defaults and environment", file)
		} else {
			logger.SysWarnf("cannot read %s; using defaults and environment: %+v", file, err)
		}
	}

	if err := setLogLevels(VConfig.GetString(logLevel)); err != nil {
		return err
	}

	if logger.IsDebugEnabled() {
		VConfig.DebugTo(logger.Out())
	}
	return nil
}

func setLogLevels(levels string) error {
	if err := logging.UpdateLogLevels(levels); err != nil {
		logger.SysErrorf("invalid log level %q: %+v", levels, err)
		return err
	}
	return nil
}

// ResetConfig discards all configuration state and loads it again. It exists
// for tests; calling it while loggers are being created is a race.
func ResetConfig() {
	VConfig = nil
	initOnce = sync.Once{}
	loadOnce = sync.Once{}
	loadErr = nil
	_ = Load()
}

// GetMetadataEnv resolves the metadata.env mapping against the environment.
// With metadata.env {pod: HOSTNAME} and HOSTNAME=pod-123 it returns
// {"pod": "pod-123"}. Unset variables are left out; the result is never nil.
func GetMetadataEnv() map[string]string {
	mapping := VConfig.GetStringMapString(MetadataEnv)
	md := make(map[string]string, len(mapping))
	for key, name := range mapping {
		if value, ok := os.LookupEnv(name); ok {
			md[key] = value
		}
	}
	return md
}
