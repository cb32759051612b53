// Package pha holds application-wide defaults shared by the config loader
// and the CLI entry points.
package pha

const (
	DefaultAppName    = "pha"
	DefaultConfigPath = "/etc/pha"

	// DefaultModel is used when no model is configured. Any OpenAI-compatible
	// chat model works; the gateway only needs text in, text out.
	DefaultModel = "gemini-2.5-flash"

	// DefaultBaseURL points at Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

	// DefaultAPIKeyEnv names the environment variable holding the API key.
	DefaultAPIKeyEnv = "GOOGLE_API_KEY"

	// DefaultMaxTokens bounds a single completion.
	DefaultMaxTokens = 8192
)
