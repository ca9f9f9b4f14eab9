package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fivetwenty-io/activecampaign/internal/client"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

const testToken = "test-token"

// recordedRequest is what the fake API saw of one request.
type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

// envelope decodes the recorded JSON body's key into v.
func (r recordedRequest) envelope(t *testing.T, key string, v interface{}) {
	t.Helper()

	var fields map[string]json.RawMessage

	require.NoError(t, json.Unmarshal(r.Body, &fields))
	require.Contains(t, fields, key)
	require.NoError(t, json.Unmarshal(fields[key], v))
}

// fakeAPI is an httptest server that records every request.
type fakeAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeAPI) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]recordedRequest(nil), f.requests...)
}

// newFakeAPI starts a server answering with handler and returns a client
// pointed at it.
func newFakeAPI(t *testing.T, handler func(writer http.ResponseWriter, request *http.Request)) (*fakeAPI, *Client) {
	t.Helper()

	return newFakeAPIWithConfig(t, &activecampaign.Config{}, handler)
}

// newFakeAPIWithConfig is newFakeAPI with extra configuration. APIURL and
// APIToken are filled in.
func newFakeAPIWithConfig(
	t *testing.T,
	config *activecampaign.Config,
	handler func(writer http.ResponseWriter, request *http.Request),
) (*fakeAPI, *Client) {
	t.Helper()

	api := &fakeAPI{}
	api.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		request.Body = io.NopCloser(bytes.NewReader(body))

		api.mu.Lock()
		api.requests = append(api.requests, recordedRequest{
			Method: request.Method,
			Path:   request.URL.Path,
			Query:  request.URL.Query(),
			Header: request.Header.Clone(),
			Body:   body,
		})
		api.mu.Unlock()

		handler(writer, request)
	}))
	t.Cleanup(api.server.Close)

	config.APIURL = api.server.URL
	config.APIToken = testToken

	c, err := New(context.Background(), config)
	require.NoError(t, err)

	return api, c
}

func writeJSON(writer http.ResponseWriter, status int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(writer).Encode(body)
	}
}

func respond(status int, body interface{}) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, status, body)
	}
}

func notFound(writer http.ResponseWriter, _ *http.Request) {
	writeJSON(writer, http.StatusNotFound, map[string]string{"message": "No Result found"})
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	Response     interface{}
	WantErr      bool
	Check        func(t *testing.T, result *TResponse)
}

// RunGetTests runs a series of get operation tests.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			api, c := newFakeAPI(t, respond(testCase.StatusCode, testCase.Response))

			result, err := getFunc(c)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)
				assert.Nil(t, result)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)

			requests := api.recorded()
			require.Len(t, requests, 1)
			assert.Equal(t, http.MethodGet, requests[0].Method)
			assert.Equal(t, testCase.ExpectedPath, requests[0].Path)

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}

// TestDeleteOperation represents a generic delete operation test case.
type TestDeleteOperation struct {
	Name         string
	ID           string
	ExpectedPath string
	StatusCode   int
	WantErr      bool
}

// RunDeleteTests runs a series of delete operation tests.
func RunDeleteTests(
	t *testing.T,
	tests []TestDeleteOperation,
	deleteFunc func(*Client) func(context.Context, string) error,
) {
	t.Helper()

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			api, c := newFakeAPI(t, respond(testCase.StatusCode, map[string]interface{}{}))

			err := deleteFunc(c)(context.Background(), testCase.ID)

			if testCase.WantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)

			requests := api.recorded()
			require.Len(t, requests, 1)
			assert.Equal(t, http.MethodDelete, requests[0].Method)
			assert.Equal(t, testCase.ExpectedPath, requests[0].Path)
		})
	}
}
