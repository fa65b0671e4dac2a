package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"schema205/internal/app"
)

type referencesOptions struct {
	Schema           string
	StrictReferences bool
}

func newReferencesCommand() *cobra.Command {
	opts := referencesOptions{}
	cmd := &cobra.Command{
		Use:   "references",
		Short: "Print the names a schema can reference and the files exporting them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReferences(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Schema file")
	cmd.Flags().BoolVar(&opts.StrictReferences, "strict-references", false, "Fail when two referenced schemas export the same name")
	return cmd
}

func runReferences(ctx context.Context, cmd *cobra.Command, opts referencesOptions) error {
	ctx = log.Logger.WithContext(ctx)
	service := newAppService()
	result, err := service.References(ctx, app.ReferencesRequest{
		SchemaPath:       resolveString(cmd, opts.Schema, "schema", "schema"),
		StrictReferences: resolveBool(cmd, opts.StrictReferences, "strict_references", "strict-references"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("schema: %s\n", result.Schema)
	for _, origin := range result.Origins {
		fmt.Printf("origin: %s\n", origin)
	}
	for _, entry := range result.Entries {
		fmt.Printf("  %s\t%s\n", entry.Name, entry.Origin)
	}
	return nil
}
