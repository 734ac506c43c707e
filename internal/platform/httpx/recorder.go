// Package httpx holds HTTP client helpers shared by the provider adapters.
package httpx

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"sync"
	"time"
)

// StatusRecorder is an http.RoundTripper that remembers the status code of the
// last response it saw and any error hit while reading that response's body.
// A zero Status after a failed call means the request never produced a
// response, i.e. a transport failure.
type StatusRecorder struct {
	base http.RoundTripper

	mu      sync.Mutex
	status  int
	readErr error
}

// NewStatusRecorder wraps base, or http.DefaultTransport when base is nil.
func NewStatusRecorder(base http.RoundTripper) *StatusRecorder {
	if base == nil {
		base = http.DefaultTransport
	}
	return &StatusRecorder{base: base}
}

// RoundTrip implements http.RoundTripper.
func (r *StatusRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := r.base.RoundTrip(req)
	if resp != nil {
		r.mu.Lock()
		r.status = resp.StatusCode
		r.readErr = nil
		r.mu.Unlock()
		if resp.Body != nil {
			resp.Body = &recordingBody{ReadCloser: resp.Body, rec: r}
		}
	}
	return resp, err
}

// Status returns the last recorded status code, or 0.
func (r *StatusRecorder) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// ReadErr returns the error that interrupted reading the last response body,
// or nil if the body was read to EOF or not read at all.
func (r *StatusRecorder) ReadErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readErr
}

type recordingBody struct {
	io.ReadCloser
	rec *StatusRecorder
}

func (b *recordingBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		b.rec.mu.Lock()
		if b.rec.readErr == nil {
			b.rec.readErr = err
		}
		b.rec.mu.Unlock()
	}
	return n, err
}

// IsTimeout reports whether err is a deadline, cancellation or network
// timeout rather than a response from the remote side.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// NewRecordingClient returns a client that behaves like base but records
// response statuses. base may be nil.
func NewRecordingClient(base *http.Client) (*http.Client, *StatusRecorder) {
	var (
		transport http.RoundTripper
		timeout   time.Duration
	)
	if base != nil {
		transport = base.Transport
		timeout = base.Timeout
	}
	rec := NewStatusRecorder(transport)
	return &http.Client{Transport: rec, Timeout: timeout}, rec
}
