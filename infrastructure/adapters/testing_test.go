package adapters

import (
	"context"
	"sync"
)

type testLogger struct{}

func (testLogger) Info(string)                                           {}
func (testLogger) InfoWithFields(string, map[string]interface{})         {}
func (testLogger) Error(error, string)                                   {}
func (testLogger) ErrorWithFields(error, string, map[string]interface{}) {}
func (testLogger) Debug(string)                                          {}
func (testLogger) DebugWithFields(string, map[string]interface{})        {}
func (testLogger) Warn(string)                                           {}
func (testLogger) WarnWithFields(string, map[string]interface{})         {}

type recordedCall struct {
	Name string
	Args []string
}

// fakeRunner substitutes the exec-backed runner in adapter tests.
type fakeRunner struct {
	mu    sync.Mutex
	calls []recordedCall
	onRun func(ctx context.Context, name string, args ...string) (commandResult, error)
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) (commandResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, recordedCall{Name: name, Args: args})
	r.mu.Unlock()

	if r.onRun != nil {
		return r.onRun(ctx, name, args...)
	}
	return commandResult{}, nil
}

func (r *fakeRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
