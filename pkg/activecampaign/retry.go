package activecampaign

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"math/rand"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/fivetwenty-io/activecampaign/internal/constants"
)

// RetryPolicy decides whether a finished attempt should be repeated and how
// long to wait before the next one. The HTTP layer composes it around every
// request; callers only ever observe the outcome of the last attempt.
type RetryPolicy interface {
	// MaxRetries bounds the number of retries after the first attempt.
	MaxRetries() int
	// ShouldRetry reports whether the attempt-th attempt (1-based) should be
	// retried. Exactly one of resp and err is non-nil.
	ShouldRetry(attempt int, resp *http.Response, err error) bool
	// Delay returns the wait before the retry-th retry (1-based).
	Delay(retry int) time.Duration
}

// LinearBackoffPolicy retries transient failures with a linearly growing
// delay: retry k waits k × BaseDelay.
//
// The API enforces a per-second request window, so growth is kept linear
// rather than exponential. Jitter is off by default, which keeps the schedule
// exact but lets concurrent callers retry in lockstep; set Jitter to spread
// them out.
type LinearBackoffPolicy struct {
	// Retries is the maximum number of retries (not attempts).
	Retries int
	// BaseDelay is the delay unit of the schedule.
	BaseDelay time.Duration
	// RetryOnForbidden retries 403 responses, which the API has been seen to
	// return transiently under rate limiting.
	RetryOnForbidden bool
	// Jitter adds up to Jitter × k × BaseDelay of random delay to retry k.
	// Zero disables it.
	Jitter float64
}

// DefaultRetryPolicy returns the default policy: 10 retries, 500ms linear
// steps, 403 treated as transient, no jitter.
func DefaultRetryPolicy() *LinearBackoffPolicy {
	return &LinearBackoffPolicy{
		Retries:          constants.DefaultRetryMax,
		BaseDelay:        constants.DefaultRetryDelay,
		RetryOnForbidden: true,
	}
}

// MaxRetries implements RetryPolicy.
func (p *LinearBackoffPolicy) MaxRetries() int {
	if p.Retries < 0 {
		return 0
	}

	return p.Retries
}

// ShouldRetry implements RetryPolicy.
func (p *LinearBackoffPolicy) ShouldRetry(attempt int, resp *http.Response, err error) bool {
	if attempt > p.MaxRetries() {
		return false
	}

	if err != nil {
		return IsTransientError(err)
	}

	if resp == nil {
		return false
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return true
	}

	return resp.StatusCode == http.StatusForbidden && p.RetryOnForbidden
}

// Delay implements RetryPolicy.
func (p *LinearBackoffPolicy) Delay(retry int) time.Duration {
	if retry < 1 {
		retry = 1
	}

	delay := time.Duration(retry) * p.BaseDelay

	if p.Jitter > 0 && delay > 0 {
		delay += time.Duration(rand.Float64() * p.Jitter * float64(delay))
	}

	return delay
}

// IsTransientError reports whether a transport failure is likely to succeed
// when repeated: resets, refused or broken connections, truncated reads
// (including TLS record reads), timeouts and temporary DNS failures.
// Certificate problems, unknown hosts and cancellation are permanent.
//
// A per-attempt timeout may wrap context.DeadlineExceeded and counts as
// transient; callers must check their own context before retrying.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	if isCertificateError(err) {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.EPIPE) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return false
}

func isCertificateError(err error) bool {
	var verifyErr *tls.CertificateVerificationError
	if errors.As(err, &verifyErr) {
		return true
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}

	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}

	var invalidErr x509.CertificateInvalidError

	return errors.As(err, &invalidErr)
}
