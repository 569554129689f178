package synth

import "errors"

var (
	// ErrGeneratorRequired is returned when a question generator is not provided.
	ErrGeneratorRequired = errors.New("question generator required")

	// ErrNoChunks is returned when the sources yield no corpus chunks.
	ErrNoChunks = errors.New("no chunks produced from source text")
)
