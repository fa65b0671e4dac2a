package ports

import "schema205/internal/types"

type OutputPort interface {
	WriteUnit(unit types.RenderedUnit) ([]string, error)
}
