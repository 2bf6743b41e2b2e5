package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/nextstep/internal/logger"
	"github.com/spigell/nextstep/internal/server"
	"github.com/spigell/nextstep/internal/source"
)

const (
	app = "nextstep"
)

type Config struct {
	Server server.Config `mapstructure:"server"`
	AI     *AIConfig     `mapstructure:"ai"`
	Source *SourceConfig `mapstructure:"source"`
	Log    LogConfig     `mapstructure:"log"`
}

type LogConfig struct {
	Format string `mapstructure:"format" validate:"omitempty,oneof=console json"`
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Output string `mapstructure:"output"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string  `mapstructure:"api-key"`
	APIKeyFile   string  `mapstructure:"api-key-file"`
	Model        string  `mapstructure:"model"`
	Temperature  float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxLogLength int     `mapstructure:"max-log-length" validate:"gte=0"`
}

type SourceConfig struct {
	S3 source.S3Config `mapstructure:"s3"`
}

var (
	// Used for flags.
	cfgFile string

	configValidator = validator.New()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "nextstep reads a resume and suggests the career paths it fits best",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	setDefaults(viper.GetViper())

	for key, env := range map[string]string{
		"server.addr":            "NEXTSTEP_ADDR",
		"ai.gemini.api-key":      "GOOGLE_API_KEY",
		"ai.gemini.api-key-file": "GOOGLE_API_KEY_FILE",
		"source.s3.region":       "AWS_REGION",
		"source.s3.endpoint":     "NEXTSTEP_S3_ENDPOINT",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is nextstep.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", server.DefaultAddr)
	v.SetDefault("server.cors-allow-origins", []string{"*"})
	v.SetDefault("server.max-upload-bytes", server.DefaultMaxUploadBytes)

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.gemini.model", "gemini-2.5-flash")
	v.SetDefault("ai.gemini.temperature", 0)
	v.SetDefault("ai.gemini.max-log-length", 200)

	v.SetDefault("log.format", logger.FormatConsole)
	v.SetDefault("log.level", "info")
}

func initConfig() {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless one was asked for explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

// newLogger is built before the full config is decoded so that config errors
// can be logged. The --json and --debug flags win over the log section.
func newLogger() (*zap.Logger, error) {
	opts := logger.Options{
		Format: viper.GetString("log.format"),
		Level:  viper.GetString("log.level"),
		Output: viper.GetString("log.output"),
	}
	return logger.New(opts.Override(viper.GetBool("json"), viper.GetBool("debug")))
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Source == nil {
		config.Source = &SourceConfig{}
	}

	if err := configValidator.Struct(config); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return config, nil
}
