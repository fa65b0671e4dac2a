package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema205/internal/app"
	_ "schema205/internal/plugins/builtin"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "SCHEMA205"

type RootConfig struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		log.Error().Int("exit_code", exitCodeForError(err)).Msg(errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "schema205",
		Short:         "Generate C++ data-model code from schema files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cfg.ConfigFile); err != nil {
				return err
			}
			return configureLogger(viper.GetString("log_level"), viper.GetString("log_format"))
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", "console", "Log format (console or json)")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_format", cmd.PersistentFlags().Lookup("log-format"))

	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newReferencesCommand())
	cmd.AddCommand(newPluginsCommand())
	return cmd
}

func newAppService() app.Service {
	return app.NewService()
}

// loadConfig reads an explicit --config file, or else the first
// schema205.yaml found in the working directory or the user config dir.
// Only an explicit file is required to exist.
func loadConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile == "" {
		viper.SetConfigName("schema205")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/schema205")
	} else {
		viper.SetConfigFile(configFile)
	}
	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		log.Debug().Str("config", viper.ConfigFileUsed()).Msg("config loaded")
		return nil
	case configFile == "" && errors.As(err, &notFound):
		return nil
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read config file").
			WithCause(err)
	}
}

// configureLogger installs the global logger. Diagnostics go to stderr so
// that command output on stdout stays machine readable.
func configureLogger(level string, format string) error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown log level: " + level)
	}
	zerolog.SetGlobalLevel(parsed)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	case "json":
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown log format: " + format)
	}
	return nil
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	message := errorMessage(err)
	switch code {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition:
		if strings.HasPrefix(message, "declaration cycle detected") {
			return 3
		}
		return 4
	case errbuilder.CodeNotFound:
		return 5
	case errbuilder.CodeInternal:
		return 6
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
