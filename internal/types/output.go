package types

// RenderedUnit is the emitted text for one schema: a header and its
// source file.
type RenderedUnit struct {
	Schema     string
	HeaderFile string
	Header     string
	SourceFile string
	Source     string
}
