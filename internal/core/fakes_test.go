package core

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeLLM answers prompts by kind: classification prompts get classifyOutput,
// everything else gets summaryOutput.
type fakeLLM struct {
	classifyOutput string
	classifyErr    error
	summaryOutput  string
	summaryErr     error
	models         []string
	listErr        error

	requests []GenerateRequest
}

func (f *fakeLLM) Generate(_ context.Context, req GenerateRequest) (string, error) {
	f.requests = append(f.requests, req)
	if strings.HasPrefix(req.Prompt, "Categorize") {
		return f.classifyOutput, f.classifyErr
	}
	return f.summaryOutput, f.summaryErr
}

func (f *fakeLLM) ListModels(_ context.Context) ([]string, error) {
	return f.models, f.listErr
}

type fakeSink struct {
	payloads []*Payload
	err      error
}

func (f *fakeSink) Send(_ context.Context, payload *Payload) error {
	f.payloads = append(f.payloads, payload)
	return f.err
}

type fakeSource struct {
	emails []*Email
	err    error
}

func (f *fakeSource) Fetch(_ context.Context) ([]*Email, error) {
	return f.emails, f.err
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	obsCore, logs := observer.New(zapcore.DebugLevel)
	return zap.New(obsCore), logs
}
