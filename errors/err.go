package errors

import (
	"fmt"
)

var (
	ErrInvalidConfig  = fmt.Errorf("agenteval: invalid config")
	ErrNotFound       = fmt.Errorf("agenteval: not found")
	ErrInvalidParams  = fmt.Errorf("agenteval: invalid params")
	ErrInternal       = fmt.Errorf("agenteval: internal error")
	ErrInvalidRequest = fmt.Errorf("agenteval: invalid request")

	// Recovered inside a pipeline run, never surfaced to the caller.
	ErrMalformedResult = fmt.Errorf("agenteval: malformed result")
	ErrEmptyResult     = fmt.Errorf("agenteval: empty result")
	ErrExternalCall    = fmt.Errorf("agenteval: external call failed")

	// ErrFatalAssembly is the only error a pipeline run propagates.
	ErrFatalAssembly = fmt.Errorf("agenteval: report assembly failed")
)
