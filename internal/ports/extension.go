package ports

import (
	"context"

	"schema205/internal/nodes"
)

// ExtensionPort runs the registered plugin passes over a finished
// translation. Passes may only append nodes.
type ExtensionPort interface {
	Apply(ctx context.Context, declarations nodes.Declaration, implementations nodes.Implementation) error
}
