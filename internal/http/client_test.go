package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	achttp "github.com/fivetwenty-io/activecampaign/internal/http"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.record("debug", msg, fields)
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.record("info", msg, fields)
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.record("warn", msg, fields)
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.record("error", msg, fields)
}

func (l *MockLogger) messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var msgs []string

	for _, entry := range l.logs {
		if entry["level"] == level {
			msgs = append(msgs, entry["msg"].(string))
		}
	}

	return msgs
}

func (l *MockLogger) fields(level string) []map[string]interface{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []map[string]interface{}

	for _, entry := range l.logs {
		if entry["level"] == level {
			fields, _ := entry["fields"].(map[string]interface{})
			out = append(out, fields)
		}
	}

	return out
}

// delayRecorder records every delay the executor asks the policy for.
type delayRecorder struct {
	*activecampaign.LinearBackoffPolicy

	mu      sync.Mutex
	retries []int
}

func (r *delayRecorder) Delay(retry int) time.Duration {
	r.mu.Lock()
	r.retries = append(r.retries, retry)
	r.mu.Unlock()

	return r.LinearBackoffPolicy.Delay(retry)
}

// roundTripFunc fakes a transport.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func okResponse(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(`{"ok":true}`)),
		Request:    req,
	}
}

func fastPolicy(retries int) *activecampaign.LinearBackoffPolicy {
	return &activecampaign.LinearBackoffPolicy{
		Retries:          retries,
		BaseDelay:        time.Millisecond,
		RetryOnForbidden: true,
	}
}

func statusServer(t *testing.T, calls *atomic.Int32, statuses ...int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		n := int(calls.Add(1))

		status := statuses[len(statuses)-1]
		if n <= len(statuses) {
			status = statuses[n-1]
		}

		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	return server
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/3/contacts/42", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "test-token", request.Header.Get("Api-Token"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, "activecampaign-go/1.0", request.Header.Get("User-Agent"))

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"contact": map[string]string{"id": "42", "email": "jane@example.com"},
			})
		}))
		defer server.Close()

		client := achttp.NewClient(server.URL, achttp.WithAPIToken("test-token"))

		resp, err := client.Do(context.Background(), &achttp.Request{
			Method: "GET",
			Path:   "/api/3/contacts/42",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 1, resp.Attempts)

		var result struct {
			Contact map[string]string `json:"contact"`
		}

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", result.Contact["email"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/3/accounts", request.URL.Path)
			assert.Equal(t, "100", request.URL.Query().Get("limit"))
			assert.Equal(t, "200", request.URL.Query().Get("offset"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := achttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &achttp.Request{
			Method: "GET",
			Path:   "/api/3/accounts",
			Query:  url.Values{"limit": []string{"100"}, "offset": []string{"200"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with enveloped body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "jane@example.com", body["contact"]["email"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := achttp.NewClient(server.URL)

		resp, err := client.Do(context.Background(), &achttp.Request{
			Method:   "POST",
			Path:     "/api/3/contacts",
			Envelope: "contact",
			Body:     map[string]string{"email": "jane@example.com"},
		})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("error response is returned without error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"message":"No Result found for Subscriber with id 999"}`))
		}))
		defer server.Close()

		client := achttp.NewClient(server.URL)

		resp, err := client.Get(context.Background(), "/api/3/contacts/999", nil)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		err = achttp.CheckResponse(resp)
		require.Error(t, err)
		assert.True(t, activecampaign.IsNotFound(err))

		httpErr := &activecampaign.HTTPError{}
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, "No Result found for Subscriber with id 999", httpErr.Message)
		assert.JSONEq(t, `{"message":"No Result found for Subscriber with id 999"}`, string(httpErr.Body))
	})

	t.Run("validation errors are parsed", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = writer.Write([]byte(`{"errors":[{"title":"Email address already exists in the system","detail":"","code":"duplicate","source":{"pointer":"/data/attributes/email"}}]}`))
		}))
		defer server.Close()

		client := achttp.NewClient(server.URL)

		resp, err := client.Post(context.Background(), "/api/3/contacts", map[string]string{"email": "x@example.com"})
		require.NoError(t, err)

		err = achttp.CheckResponse(resp)
		require.Error(t, err)
		assert.True(t, activecampaign.IsUnprocessable(err))

		httpErr := &activecampaign.HTTPError{}
		require.True(t, errors.As(err, &httpErr))
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "duplicate", httpErr.FirstError().Code)
		assert.Contains(t, err.Error(), "/data/attributes/email")
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "client-value", request.Header.Get("X-Client-Header"))
			assert.Equal(t, "my-app/2.0", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := achttp.NewClient(server.URL,
			achttp.WithHeader("X-Client-Header", "client-value"),
			achttp.WithUserAgent("my-app/2.0"))

		resp, err := client.Do(context.Background(), &achttp.Request{
			Method:  "GET",
			Path:    "/api/3/tags",
			Headers: map[string]string{"X-Custom-Header": "custom-value"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("form post merges defaults", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", request.Header.Get("Content-Type"))
			assert.Empty(t, request.Header.Get("Api-Token"))

			assert.NoError(t, request.ParseForm())
			assert.Equal(t, "123", request.PostForm.Get("actid"))
			assert.Equal(t, "secret", request.PostForm.Get("key"))
			assert.Equal(t, "signup", request.PostForm.Get("event"))

			_, _ = writer.Write([]byte(`{"success":1,"message":"Event spawned"}`))
		}))
		defer server.Close()

		client := achttp.NewClient(server.URL,
			achttp.WithFormDefaults(url.Values{"actid": {"123"}, "key": {"secret"}}))

		resp, err := client.PostForm(context.Background(), "", url.Values{"event": {"signup"}})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := achttp.NewClient(server.URL, achttp.WithLogger(logger), achttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/api/3/users", nil)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("debug logging masks the tracking key", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := achttp.NewClient(server.URL,
			achttp.WithLogger(logger),
			achttp.WithDebug(true),
			achttp.WithFormDefaults(url.Values{"key": {"super-secret"}}))

		_, err := client.PostForm(context.Background(), "", url.Values{"event": {"signup"}})
		require.NoError(t, err)

		fields, ok := logger.logs[0]["fields"].(map[string]interface{})
		require.True(t, ok)
		assert.NotContains(t, fields["body"], "super-secret")
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*achttp.Client, context.Context) (*achttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *achttp.Client, ctx context.Context) (*achttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *achttp.Client, ctx context.Context) (*achttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *achttp.Client, ctx context.Context) (*achttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *achttp.Client, ctx context.Context) (*achttp.Response, error) {
				return c.Delete(ctx, "/test", nil)
			},
		},
		{
			name:   "POST form",
			method: "POST",
			fn: func(c *achttp.Client, ctx context.Context) (*achttp.Response, error) {
				return c.PostForm(ctx, "/test", url.Values{"key": {"value"}})
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := achttp.NewClient(server.URL)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()

	t.Run("sends once without a policy", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := statusServer(t, &calls, http.StatusInternalServerError)
		client := achttp.NewClient(server.URL)

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := statusServer(t, &calls, 500, 503, 200)
		logger := &MockLogger{}
		client := achttp.NewClient(server.URL, achttp.WithRetryPolicy(fastPolicy(3)), achttp.WithLogger(logger))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 3, resp.Attempts)
		assert.Equal(t, int32(3), calls.Load())
		assert.Equal(t, []string{"retrying request", "retrying request"}, logger.messages("warn"))
	})

	t.Run("returns the last response when retries are exhausted", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := statusServer(t, &calls, http.StatusBadGateway)
		client := achttp.NewClient(server.URL, achttp.WithRetryPolicy(fastPolicy(2)))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)
		assert.Equal(t, 3, resp.Attempts)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("retries 403 when enabled", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := statusServer(t, &calls, 403, 200)
		client := achttp.NewClient(server.URL, achttp.WithRetryPolicy(fastPolicy(3)))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not retry 403 when disabled", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := statusServer(t, &calls, 403, 200)
		policy := fastPolicy(3)
		policy.RetryOnForbidden = false
		client := achttp.NewClient(server.URL, achttp.WithRetryPolicy(policy))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{400, 401, 404, 422, 429} {
			var calls atomic.Int32

			server := statusServer(t, &calls, status)
			client := achttp.NewClient(server.URL, achttp.WithRetryPolicy(fastPolicy(3)))

			resp, err := client.Get(context.Background(), "/test", nil)
			require.NoError(t, err)
			assert.Equal(t, status, resp.StatusCode)
			assert.Equal(t, int32(1), calls.Load(), "status %d should not be retried", status)
		}
	})

	t.Run("waits linearly between retries", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		const base = 20 * time.Millisecond

		server := statusServer(t, &calls, http.StatusInternalServerError)
		policy := &delayRecorder{LinearBackoffPolicy: &activecampaign.LinearBackoffPolicy{Retries: 3, BaseDelay: base}}
		logger := &MockLogger{}
		client := achttp.NewClient(server.URL, achttp.WithRetryPolicy(policy), achttp.WithLogger(logger))

		start := time.Now()
		resp, err := client.Get(context.Background(), "/test", nil)
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, int32(4), calls.Load())
		assert.Equal(t, []int{1, 2, 3}, policy.retries)
		assert.GreaterOrEqual(t, elapsed, 6*base)

		warnings := logger.fields("warn")
		require.Len(t, warnings, 3)

		for i, fields := range warnings {
			assert.Equal(t, i+1, fields["attempt"])
			assert.Equal(t, time.Duration(i+1)*base, fields["delay"])
			assert.Equal(t, 500, fields["status"])
		}
	})

	t.Run("retries transient transport errors", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if calls.Add(1) <= 2 {
				return nil, &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}
			}

			return okResponse(req), nil
		})

		client := achttp.NewClient("https://example.api-us1.com",
			achttp.WithHTTPClient(&http.Client{Transport: transport}),
			achttp.WithRetryPolicy(fastPolicy(5)))

		resp, err := client.Get(context.Background(), "/api/3/contacts", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 3, resp.Attempts)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("returns the last transport error when retries are exhausted", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			calls.Add(1)

			return nil, &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
		})

		client := achttp.NewClient("https://example.api-us1.com",
			achttp.WithHTTPClient(&http.Client{Transport: transport}),
			achttp.WithRetryPolicy(fastPolicy(2)))

		resp, err := client.Get(context.Background(), "/api/3/contacts", nil)
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.True(t, activecampaign.IsTransport(err))
		assert.ErrorIs(t, err, syscall.ECONNREFUSED)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("does not retry unknown hosts", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		transport := roundTripFunc(func(*http.Request) (*http.Response, error) {
			calls.Add(1)

			return nil, &net.OpError{Op: "dial", Net: "tcp", Err: &net.DNSError{
				Err:        "no such host",
				Name:       "nope.api-us1.com",
				IsNotFound: true,
			}}
		})

		client := achttp.NewClient("https://nope.api-us1.com",
			achttp.WithHTTPClient(&http.Client{Transport: transport}),
			achttp.WithRetryPolicy(fastPolicy(5)))

		_, err := client.Get(context.Background(), "/api/3/contacts", nil)
		require.Error(t, err)
		assert.True(t, activecampaign.IsTransport(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32

		server := statusServer(t, &calls, http.StatusInternalServerError)
		policy := &activecampaign.LinearBackoffPolicy{Retries: 10, BaseDelay: time.Second}
		client := achttp.NewClient(server.URL, achttp.WithRetryPolicy(policy))

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		_, err := client.Get(ctx, "/test", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestClient_RateLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := achttp.NewClient(server.URL, achttp.WithRateLimit(20))

	start := time.Now()

	for i := 0; i < 3; i++ {
		_, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
	}

	// burst of one, then 50ms per token
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestCheckResponse(t *testing.T) {
	t.Parallel()

	require.NoError(t, achttp.CheckResponse(&achttp.Response{StatusCode: 200}))
	require.NoError(t, achttp.CheckResponse(&achttp.Response{StatusCode: 201}))

	err := achttp.CheckResponse(&achttp.Response{StatusCode: 403, Body: []byte("forbidden")})
	require.Error(t, err)
	assert.True(t, activecampaign.IsForbidden(err))
	assert.Equal(t, "HTTP 403: Forbidden", err.Error())

	require.ErrorIs(t, achttp.CheckResponse(nil), activecampaign.ErrUnexpectedResponse)
}
