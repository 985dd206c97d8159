// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"errors"
	"strings"
)

// Kind classifies a failed provider call.
type Kind string

const (
	KindAuth       Kind = "AUTH_ERROR"
	KindRateLimit  Kind = "RATE_LIMIT"
	KindNetwork    Kind = "NETWORK_ERROR"
	KindTimeout    Kind = "TIMEOUT"
	KindValidation Kind = "VALIDATION_ERROR"
	KindUnknown    Kind = "UNKNOWN"
)

// RetryableKind reports whether failures of kind k are worth another attempt.
// AUTH_ERROR is a configuration problem and is never retried.
func RetryableKind(k Kind) bool {
	return k != KindAuth
}

// Failure is a classified generation failure. It is the only error type
// the pipeline returns to callers once an attempt has been made; recover
// it with errors.As.
type Failure struct {
	Kind      Kind
	Message   string
	Retryable bool

	// Err is the underlying cause, if any.
	Err error
}

func newFailure(kind Kind, message string, err error) *Failure {
	return &Failure{Kind: kind, Message: message, Retryable: RetryableKind(kind), Err: err}
}

func (f *Failure) Error() string {
	return string(f.Kind) + ": " + f.Message
}

func (f *Failure) Unwrap() error { return f.Err }

// classifier rules are evaluated in order; the first matching rule wins.
// A message mentioning both "network" and "timeout" is a network error.
var classifier = []struct {
	kind     Kind
	message  string
	patterns []string
}{
	{KindAuth, "Authentication failed. Please check your API key.",
		[]string{"authentication", "api key", "unauthorized"}},
	{KindRateLimit, "Rate limit exceeded. Please try again in a moment.",
		[]string{"rate limit", "429", "too many requests"}},
	{KindNetwork, "Network error. Please check your connection.",
		[]string{"network", "fetch", "econnrefused", "connection refused"}},
	{KindTimeout, "Request timed out. Please try again.",
		[]string{"timeout", "timed out"}},
}

// Classify maps an arbitrary provider error into a Failure. Errors that
// already carry a Failure are returned unchanged.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	for _, rule := range classifier {
		for _, p := range rule.patterns {
			if strings.Contains(lower, p) {
				return newFailure(rule.kind, rule.message, err)
			}
		}
	}

	if strings.TrimSpace(msg) == "" {
		msg = "An unknown error occurred"
	}
	return newFailure(KindUnknown, msg, err)
}
