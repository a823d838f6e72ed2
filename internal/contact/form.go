// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/facebookgo/clock"
)

// SuccessBannerTTL is how long the success banner stays visible.
const SuccessBannerTTL = 5 * time.Second

// FormState is the lifecycle state of one form instance.
type FormState string

// Form states.
const (
	FormIdle       FormState = "idle"
	FormSubmitting FormState = "submitting"
	FormSucceeded  FormState = "succeeded"
	FormFailed     FormState = "failed"
)

// Submitter is implemented by Service.
type Submitter interface {
	Submit(ctx context.Context, in Input, meta Meta) Result
}

// FormView is a snapshot of a form for rendering.
type FormView struct {
	Values     Input
	Errors     FieldErrors
	State      FormState
	Success    string
	Error      string
	Submitting bool
}

// Form holds the state of one contact form instance: field values,
// inline errors and the outcome banners. At most one submission is in
// flight at a time.
type Form struct {
	mu        sync.Mutex
	submitter Submitter
	clock     clock.Clock
	ttl       time.Duration

	values    Input
	errors    FieldErrors
	state     FormState
	success   string
	failure   string
	successAt time.Time
	timer     *clock.Timer
	closed    bool
	onChange  func(FormView)
}

// NewForm creates an idle form. A nil clock uses the wall clock.
func NewForm(s Submitter, clk clock.Clock) *Form {
	if clk == nil {
		clk = clock.New()
	}
	return &Form{
		submitter: s,
		clock:     clk,
		ttl:       SuccessBannerTTL,
		state:     FormIdle,
	}
}

// OnChange registers a callback fired after every state change, including
// the banner auto-dismiss.
func (f *Form) OnChange(fn func(FormView)) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

// Edit sets a field value. Editing clears that field's error and both banners.
// Fields are read-only while a submission is in flight.
func (f *Form) Edit(field, value string) error {
	f.mu.Lock()
	if f.state == FormSubmitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}
	if !f.values.set(field, value) {
		f.mu.Unlock()
		return fmt.Errorf("unknown field %q", field)
	}
	delete(f.errors, field)
	f.clearBannersLocked()
	if f.state != FormIdle {
		f.state = FormIdle
	}
	view, fn := f.viewLocked(), f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(view)
	}
	return nil
}

// Submit validates and delivers the current values.
// A second call while one is pending returns ErrSubmitInProgress.
func (f *Form) Submit(ctx context.Context, meta Meta) (Result, error) {
	f.mu.Lock()
	if f.state == FormSubmitting {
		f.mu.Unlock()
		return Result{}, ErrSubmitInProgress
	}
	f.state = FormSubmitting
	f.errors = nil
	f.clearBannersLocked()
	values := f.values
	f.mu.Unlock()

	res := f.submitter.Submit(ctx, values, meta)

	f.mu.Lock()
	switch res.Status {
	case StatusSent:
		f.values = Input{}
		f.state = FormSucceeded
		f.success = res.Message
		f.successAt = f.clock.Now()
		if !f.closed {
			f.timer = f.clock.AfterFunc(f.ttl, f.dismissSuccess)
		}
	case StatusInvalid:
		f.errors = res.Errors
		f.state = FormIdle
	default:
		f.failure = res.Message
		f.state = FormFailed
	}
	view, fn := f.viewLocked(), f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(view)
	}
	return res, nil
}

// View returns the current form snapshot.
func (f *Form) View() FormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.viewLocked()
}

// Close stops the pending banner timer. The form must not be used afterwards.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.stopTimerLocked()
}

func (f *Form) dismissSuccess() {
	f.mu.Lock()
	if f.closed || f.success == "" {
		f.mu.Unlock()
		return
	}
	f.success = ""
	f.timer = nil
	view, fn := f.viewLocked(), f.onChange
	f.mu.Unlock()

	if fn != nil {
		fn(view)
	}
}

func (f *Form) clearBannersLocked() {
	f.success = ""
	f.failure = ""
	f.stopTimerLocked()
}

func (f *Form) stopTimerLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

func (f *Form) viewLocked() FormView {
	success := f.success
	if success != "" && !f.clock.Now().Before(f.successAt.Add(f.ttl)) {
		success = ""
	}
	errs := make(FieldErrors, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return FormView{
		Values:     f.values,
		Errors:     errs,
		State:      f.state,
		Success:    success,
		Error:      f.failure,
		Submitting: f.state == FormSubmitting,
	}
}
