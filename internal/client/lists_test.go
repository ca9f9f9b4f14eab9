package client_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fivetwenty-io/activecampaign/internal/client"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

func TestListsClient_Create(t *testing.T) {
	t.Parallel()

	api, c := newFakeAPI(t, respond(http.StatusCreated, map[string]interface{}{
		"list": map[string]string{"id": "2", "name": "Newsletter", "stringid": "newsletter"},
	}))

	list, err := c.Lists().Create(context.Background(), &activecampaign.ListCreateRequest{
		Name:           "Newsletter",
		StringID:       "newsletter",
		SenderURL:      "https://example.com",
		SenderReminder: "You signed up on our site",
	})
	require.NoError(t, err)
	assert.Equal(t, "2", list.ID)

	requests := api.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/3/lists", requests[0].Path)

	var sent map[string]interface{}

	requests[0].envelope(t, "list", &sent)
	assert.Equal(t, "https://example.com", sent["sender_url"])

	_, err = c.Lists().Create(context.Background(), &activecampaign.ListCreateRequest{
		Name:           "Newsletter",
		StringID:       "newsletter",
		SenderURL:      "not a url",
		SenderReminder: "x",
	})
	require.ErrorIs(t, err, activecampaign.ErrInvalidRequest)
}

func TestListsClient_Get(t *testing.T) {
	t.Parallel()

	RunGetTests(t, []TestGetOperation[activecampaign.List]{
		{
			Name:         "existing list",
			ID:           "2",
			ExpectedPath: "/api/3/lists/2",
			StatusCode:   http.StatusOK,
			Response:     map[string]interface{}{"list": map[string]string{"id": "2", "name": "Newsletter"}},
		},
		{Name: "missing list", ID: "3", StatusCode: http.StatusNotFound, WantErr: true},
	}, func(c *Client) func(context.Context, string) (*activecampaign.List, error) {
		return c.Lists().Get
	})
}

func TestListsClient_ListAndDelete(t *testing.T) {
	t.Parallel()

	_, c := newFakeAPI(t, respond(http.StatusOK, map[string]interface{}{
		"lists": []map[string]string{{"id": "1"}, {"id": "2"}},
		"meta":  map[string]string{"total": "2"},
	}))

	page, err := c.Lists().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	RunDeleteTests(t, []TestDeleteOperation{
		{Name: "existing list", ID: "2", ExpectedPath: "/api/3/lists/2", StatusCode: http.StatusOK},
	}, func(c *Client) func(context.Context, string) error {
		return c.Lists().Delete
	})
}
