package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/validation"
)

// Config is resolved once at startup from defaults, an optional config file,
// a .env file and the environment, in increasing order of precedence.
type Config struct {
	AppPort      int    `mapstructure:"APP_PORT" validate:"gt=0,lte=65535"`
	DatabasePath string `mapstructure:"DATABASE_PATH" validate:"required"`
	LogLevel     string `mapstructure:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR"`

	OCIConfigFile    string `mapstructure:"OCI_CONFIG_FILE" validate:"required"`
	OCIConfigProfile string `mapstructure:"OCI_CONFIG_PROFILE" validate:"required"`
	// OCIRegion overrides the region of the config profile.
	OCIRegion     string `mapstructure:"OCI_REGION"`
	CompartmentID string `mapstructure:"OCI_COMPARTMENT_ID" validate:"required"`

	// Endpoint defaults to the public inference endpoint of the region.
	Endpoint            string        `mapstructure:"GENAI_ENDPOINT" validate:"omitempty,url"`
	ServingMode         string        `mapstructure:"GENAI_SERVING_MODE" validate:"oneof=ON_DEMAND DEDICATED"`
	ModelID             string        `mapstructure:"GENAI_MODEL_ID" validate:"required_if=ServingMode ON_DEMAND"`
	DedicatedEndpointID string        `mapstructure:"GENAI_DEDICATED_ENDPOINT_ID" validate:"required_if=ServingMode DEDICATED"`
	ConnectTimeout      time.Duration `mapstructure:"GENAI_CONNECT_TIMEOUT" validate:"gt=0"`
	ReadTimeout         time.Duration `mapstructure:"GENAI_READ_TIMEOUT" validate:"gt=0"`

	MaxTokens        int     `mapstructure:"GENAI_MAX_TOKENS" validate:"gt=0"`
	Temperature      float64 `mapstructure:"GENAI_TEMPERATURE" validate:"gte=0,lte=1"`
	TopP             float64 `mapstructure:"GENAI_TOP_P" validate:"gte=0,lte=1"`
	TopK             int     `mapstructure:"GENAI_TOP_K" validate:"gte=0,lte=500"`
	FrequencyPenalty float64 `mapstructure:"GENAI_FREQUENCY_PENALTY" validate:"gte=0,lte=1"`
	PresencePenalty  float64 `mapstructure:"GENAI_PRESENCE_PENALTY" validate:"gte=0,lte=1"`

	// ConfigFileUsed is the config file that was read, if any.
	ConfigFileUsed string `mapstructure:"-"`
}

var defaults = map[string]any{
	"APP_PORT":                    8000,
	"DATABASE_PATH":               "./data/genai-chat.db",
	"LOG_LEVEL":                   "INFO",
	"OCI_CONFIG_FILE":             "~/.oci/config",
	"OCI_CONFIG_PROFILE":          "DEFAULT",
	"OCI_REGION":                  "",
	"OCI_COMPARTMENT_ID":          "",
	"GENAI_ENDPOINT":              "",
	"GENAI_SERVING_MODE":          "ON_DEMAND",
	"GENAI_MODEL_ID":              "cohere.command-r-plus",
	"GENAI_DEDICATED_ENDPOINT_ID": "",
	"GENAI_CONNECT_TIMEOUT":       "10s",
	"GENAI_READ_TIMEOUT":          "240s",
	"GENAI_MAX_TOKENS":            500,
	"GENAI_TEMPERATURE":           0.75,
	"GENAI_TOP_P":                 0.7,
	"GENAI_TOP_K":                 0,
	"GENAI_FREQUENCY_PENALTY":     1.0,
	"GENAI_PRESENCE_PENALTY":      0.0,
}

// LoadConfig resolves the configuration. configFile is optional; when empty
// a `config.yaml` in the working directory is used if present.
func LoadConfig(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.LogLevel = strings.ToUpper(cfg.LogLevel)
	cfg.ServingMode = strings.ToUpper(cfg.ServingMode)
	cfg.ConfigFileUsed = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting by its environment key.
func (c *Config) Validate() error {
	err := validation.Instance().Struct(c)
	if err == nil {
		return nil
	}
	err = validation.AsInvalidParameter(err)
	var invalid *app_errors.InvalidParameterError
	if errors.As(err, &invalid) {
		if f, ok := reflect.TypeOf(*c).FieldByName(invalid.Field); ok {
			invalid.Field = f.Tag.Get("mapstructure")
		}
	}
	return fmt.Errorf("invalid configuration: %w", err)
}
