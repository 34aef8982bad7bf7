package prescription

import "fmt"

// GenerationFailure means the model call itself failed (transport, quota,
// empty response). The prescription cannot be assembled.
type GenerationFailure struct {
	Op  string
	Err error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Op, e.Err)
}

func (e *GenerationFailure) Unwrap() error { return e.Err }

// GenerationFormatError means the model responded but the payload violated
// the contract (wrong count, missing fields, text-bearing visual prompt).
// Responses are never silently coerced.
type GenerationFormatError struct {
	Op  string
	Err error
}

func (e *GenerationFormatError) Error() string {
	return fmt.Sprintf("%s: malformed generation: %v", e.Op, e.Err)
}

func (e *GenerationFormatError) Unwrap() error { return e.Err }
