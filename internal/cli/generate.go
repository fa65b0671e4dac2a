package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema205/internal/app"
)

type generateOptions struct {
	Schema           string
	SchemaDir        string
	Pattern          string
	Output           string
	Container        string
	RootBaseClass    string
	Plugins          []string
	StrictReferences bool
	SchemaVersion    string
	Parallelism      int
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	defaults := app.DefaultSettings()
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Translate schema files into C++ headers and sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Schema file to translate")
	cmd.Flags().StringVar(&opts.SchemaDir, "schema-dir", "", "Directory of schema files to translate")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", defaults.Pattern, "Glob selecting schema files under --schema-dir")
	cmd.Flags().StringVar(&opts.Output, "output", defaults.OutputDir, "Output directory")
	cmd.Flags().StringVar(&opts.Container, "container", defaults.Container, "Outer namespace; empty for none")
	cmd.Flags().StringVar(&opts.RootBaseClass, "root-base-class", defaults.RootBaseClass, "Superclass of the root data group")
	cmd.Flags().StringSliceVar(&opts.Plugins, "plugin", nil, "Plugins to enable (default all)")
	cmd.Flags().BoolVar(&opts.StrictReferences, "strict-references", false, "Fail when two referenced schemas export the same name")
	cmd.Flags().StringVar(&opts.SchemaVersion, "schema-version", "", "PEP 440 specifier the schema version must satisfy")
	cmd.Flags().IntVar(&opts.Parallelism, "parallelism", defaults.Parallelism, "Schemas translated concurrently")
	_ = viper.BindPFlag("schema", cmd.Flags().Lookup("schema"))
	_ = viper.BindPFlag("schema_dir", cmd.Flags().Lookup("schema-dir"))
	_ = viper.BindPFlag("pattern", cmd.Flags().Lookup("pattern"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("container", cmd.Flags().Lookup("container"))
	_ = viper.BindPFlag("root_base_class", cmd.Flags().Lookup("root-base-class"))
	_ = viper.BindPFlag("plugins", cmd.Flags().Lookup("plugin"))
	_ = viper.BindPFlag("strict_references", cmd.Flags().Lookup("strict-references"))
	_ = viper.BindPFlag("schema_version", cmd.Flags().Lookup("schema-version"))
	_ = viper.BindPFlag("parallelism", cmd.Flags().Lookup("parallelism"))
	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions) error {
	ctx = log.Logger.WithContext(ctx)
	service := newAppService()
	result, err := service.Generate(ctx, app.GenerateRequest{
		SchemaPath:       resolveString(cmd, opts.Schema, "schema", "schema"),
		SchemaDir:        resolveString(cmd, opts.SchemaDir, "schema_dir", "schema-dir"),
		Pattern:          resolveString(cmd, opts.Pattern, "pattern", "pattern"),
		OutputDir:        resolveString(cmd, opts.Output, "output", "output"),
		Container:        resolveString(cmd, opts.Container, "container", "container"),
		RootBaseClass:    resolveString(cmd, opts.RootBaseClass, "root_base_class", "root-base-class"),
		Plugins:          resolveStrings(cmd, opts.Plugins, "plugins", "plugin"),
		StrictReferences: resolveBool(cmd, opts.StrictReferences, "strict_references", "strict-references"),
		SchemaVersion:    resolveString(cmd, opts.SchemaVersion, "schema_version", "schema-version"),
		Parallelism:      resolveInt(cmd, opts.Parallelism, "parallelism", "parallelism"),
	})
	if err != nil {
		return err
	}
	for _, unit := range result.Units {
		fmt.Printf("generated %s: %s\n", unit.Schema, strings.Join(unit.Files, ", "))
	}
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
