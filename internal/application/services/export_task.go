package services

import (
	"context"
	"fmt"
)

// ExportTask is the observable handle of a background export run
type ExportTask struct {
	done   chan struct{}
	result ExportResult
	err    error
}

func newExportTask() *ExportTask {
	return &ExportTask{done: make(chan struct{})}
}

// run executes fn and completes the task. A panic in fn becomes the task's
// error and is handed to onPanic before Done is closed.
func (t *ExportTask) run(fn func() (ExportResult, error), onPanic func(error)) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			t.err = fmt.Errorf("export panicked: %v", r)
			onPanic(t.err)
		}
	}()

	t.result, t.err = fn()
}

// Done is closed when the run has finished, successfully or not
func (t *ExportTask) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the run finishes or ctx is done. Giving up on ctx does
// not stop the run.
func (t *ExportTask) Wait(ctx context.Context) (ExportResult, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return ExportResult{}, ctx.Err()
	}
}

// Finished reports whether the run has completed
func (t *ExportTask) Finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
