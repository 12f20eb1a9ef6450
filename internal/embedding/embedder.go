package embedding

// Embedder converts free text into a sparse vector over a fitted vocabulary.
// Implementations are immutable once constructed.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(text string) Vector
}
