package acclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/activecampaign/pkg/acclient"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		config := &activecampaign.Config{
			APIURL:   "https://example.api-us1.com",
			APIToken: "test-token",
		}

		client, err := acclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.NotNil(t, client.Contacts())
		assert.NotNil(t, client.EventTracking())
	})

	t.Run("does not modify the config", func(t *testing.T) {
		t.Parallel()

		config := &activecampaign.Config{
			APIURL:   "example.api-us1.com/",
			APIToken: "test-token",
		}

		_, err := acclient.New(context.Background(), config)
		require.NoError(t, err)
		assert.Equal(t, "example.api-us1.com/", config.APIURL)
	})

	t.Run("requires config", func(t *testing.T) {
		t.Parallel()

		_, err := acclient.New(context.Background(), nil)
		require.ErrorIs(t, err, activecampaign.ErrConfigRequired)
	})

	t.Run("requires url and token", func(t *testing.T) {
		t.Parallel()

		_, err := acclient.New(context.Background(), &activecampaign.Config{APIToken: "t"})
		require.ErrorIs(t, err, activecampaign.ErrAPIURLRequired)

		_, err = acclient.New(context.Background(), &activecampaign.Config{APIURL: "example.api-us1.com"})
		require.ErrorIs(t, err, activecampaign.ErrAPITokenRequired)
	})

	t.Run("rejects half configured event tracking", func(t *testing.T) {
		t.Parallel()

		_, err := acclient.New(context.Background(), &activecampaign.Config{
			APIURL:             "example.api-us1.com",
			APIToken:           "t",
			EventTrackingActID: "123",
		})
		require.ErrorIs(t, err, activecampaign.ErrInvalidConfig)
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/3/users/1", request.URL.Path)
		assert.Equal(t, "test-token", request.Header.Get("Api-Token"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"user": map[string]string{"id": "1", "username": "admin", "email": "admin@example.com"},
		})
	}))
	defer server.Close()

	client, err := acclient.NewWithToken(context.Background(), server.URL+"/", "test-token")
	require.NoError(t, err)

	user, err := client.Users().Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
}

func TestNewWithRetry(t *testing.T) {
	t.Parallel()

	client, err := acclient.NewWithRetry(context.Background(), "example.api-us1.com", "test-token")
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"example.api-us1.com", "https://example.api-us1.com"},
		{"https://example.api-us1.com/", "https://example.api-us1.com"},
		{"https://example.api-us1.com/api/3", "https://example.api-us1.com"},
		{"  http://localhost:8080//  ", "http://localhost:8080"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, acclient.NormalizeURL(tt.in), tt.in)
	}
}
