package app

import (
	"schema205/internal/adapters"
	"schema205/internal/plugins"
	"schema205/internal/ports"
)

type Service struct {
	SchemaLoader ports.SchemaLoaderPort
	SchemaFinder ports.SchemaFinderPort
	// Output opens the writer for an output directory.
	Output  func(dir string) ports.OutputPort
	Plugins *plugins.Registry
}

func NewService() Service {
	return Service{
		SchemaLoader: adapters.NewSchemaFileAdapter(),
		SchemaFinder: adapters.NewSchemaFinderAdapter(),
		Output: func(dir string) ports.OutputPort {
			return adapters.NewOutputFileAdapter(dir)
		},
		Plugins: plugins.Default(),
	}
}
