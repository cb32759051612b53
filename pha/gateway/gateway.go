// Package gateway is the boundary to the generative-text backend: one
// synchronous (system, user) → text call, no retries, no streaming.
package gateway

import "context"

// Options controls sampling for a single completion call.
type Options struct {
	Model       string  // backend model identifier; empty uses the adapter default
	Temperature float32 // sampling entropy, 0..1; low for structured output
	MaxTokens   int     // max output length; 0 uses the adapter default
}

// Gateway produces one completion per call. The production adapter converts
// every transport, auth, and backend failure into a readable message in the
// text return with a nil error, so plain-text callers always get something.
// The error return exists so test doubles can simulate hard faults, which
// the per-agent dispatch layer is expected to absorb.
type Gateway interface {
	Complete(ctx context.Context, system, user string, opts Options) (string, error)
}
