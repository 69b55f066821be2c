package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned when the model answers outside the taxonomy
	ErrUnknownCategory = errors.New("unknown category")
	// ErrEmptyResponse is returned when the model answers with no text
	ErrEmptyResponse = errors.New("empty response")
)

// Stage names a step of the triage pipeline
type Stage string

const (
	StageClassify  Stage = "classify"
	StageSummarize Stage = "summarize"
	StageNotify    Stage = "notify"
)

// StageError is a recoverable failure of a single pipeline stage. Stage
// methods never return it; they log it and substitute their default.
type StageError struct {
	Stage Stage
	// Output is the raw model answer, when there was one
	Output string
	Err    error
}

func (e *StageError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("%s: %v (output %q)", e.Stage, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ConnectivityError means the inference backend could not be reached at startup
type ConnectivityError struct {
	Backend string
	Err     error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("inference backend %s unreachable: %v", e.Backend, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// SourceError is a mailbox connection, login or selection failure
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("message source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx answer from a notification sink
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// IsSourceError reports whether err (or any error in its chain) is a SourceError
func IsSourceError(err error) bool {
	var sourceErr *SourceError
	return errors.As(err, &sourceErr)
}
