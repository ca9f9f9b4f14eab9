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

func intPtr(v int) *int {
	return &v
}

func TestDealsClient_Create(t *testing.T) {
	t.Parallel()

	api, c := newFakeAPI(t, respond(http.StatusCreated, map[string]interface{}{
		"deal": map[string]string{"id": "45", "title": "Renewal", "value": "10000", "currency": "usd"},
	}))

	deal, err := c.Deals().Create(context.Background(), &activecampaign.DealRequest{
		Title:    "Renewal",
		Value:    intPtr(10000),
		Currency: "usd",
		Contact:  "1",
		Fields:   []activecampaign.DealFieldValue{{CustomFieldID: 2, FieldValue: "yes"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "45", deal.ID)
	assert.Equal(t, 10000, deal.Value.Int())

	requests := api.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/3/deals", requests[0].Path)

	var sent map[string]interface{}

	requests[0].envelope(t, "deal", &sent)
	assert.InDelta(t, 10000, sent["value"], 0)
	assert.NotContains(t, sent, "percent")
}

func TestDealsClient_CreateValidation(t *testing.T) {
	t.Parallel()

	api, c := newFakeAPI(t, respond(http.StatusCreated, nil))

	tests := []struct {
		name    string
		request *activecampaign.DealRequest
	}{
		{"missing title", &activecampaign.DealRequest{Value: intPtr(1), Currency: "usd"}},
		{"missing value", &activecampaign.DealRequest{Title: "x", Currency: "usd"}},
		{"negative value", &activecampaign.DealRequest{Title: "x", Value: intPtr(-1), Currency: "usd"}},
		{"bad currency", &activecampaign.DealRequest{Title: "x", Value: intPtr(1), Currency: "dollars"}},
		{"percent out of range", &activecampaign.DealRequest{Title: "x", Value: intPtr(1), Currency: "usd", Percent: intPtr(101)}},
	}

	for _, tt := range tests {
		_, err := c.Deals().Create(context.Background(), tt.request)
		require.ErrorIs(t, err, activecampaign.ErrInvalidRequest, tt.name)
	}

	assert.Empty(t, api.recorded())
}

func TestDealsClient_Get(t *testing.T) {
	t.Parallel()

	RunGetTests(t, []TestGetOperation[activecampaign.Deal]{
		{
			Name:         "existing deal",
			ID:           "45",
			ExpectedPath: "/api/3/deals/45",
			StatusCode:   http.StatusOK,
			Response:     map[string]interface{}{"deal": map[string]interface{}{"id": "45", "status": 1}},
			Check: func(t *testing.T, deal *activecampaign.Deal) {
				t.Helper()
				assert.Equal(t, 1, deal.Status.Int())
			},
		},
		{Name: "missing deal", ID: "46", StatusCode: http.StatusNotFound, WantErr: true},
	}, func(c *Client) func(context.Context, string) (*activecampaign.Deal, error) {
		return c.Deals().Get
	})
}

func TestDealsClient_UpdateDeleteMove(t *testing.T) {
	t.Parallel()

	api, c := newFakeAPI(t, respond(http.StatusOK, map[string]interface{}{
		"deal": map[string]string{"id": "45", "title": "Renewal", "stage": "3"},
	}))

	deal, err := c.Deals().Update(context.Background(), "45", &activecampaign.DealRequest{Stage: "3"})
	require.NoError(t, err)
	assert.Equal(t, "3", deal.Stage)

	require.NoError(t, c.Deals().Delete(context.Background(), "45"))
	require.NoError(t, c.Deals().MoveToStage(context.Background(), "2", &activecampaign.DealStageMove{Stage: "3"}))

	err = c.Deals().MoveToStage(context.Background(), "2", &activecampaign.DealStageMove{})
	require.ErrorIs(t, err, activecampaign.ErrInvalidRequest)

	requests := api.recorded()
	require.Len(t, requests, 3)
	assert.Equal(t, http.MethodPut, requests[0].Method)
	assert.Equal(t, http.MethodDelete, requests[1].Method)
	assert.Equal(t, "/api/3/dealStages/2/deals", requests[2].Path)

	var move activecampaign.DealStageMove

	requests[2].envelope(t, "deal", &move)
	assert.Equal(t, "3", move.Stage)
}

func TestDealsClient_CustomFieldValues(t *testing.T) {
	t.Parallel()

	api, c := newFakeAPI(t, func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/api/3/dealCustomFieldMeta":
			writeJSON(writer, http.StatusOK, map[string]interface{}{
				"dealCustomFieldMeta": []map[string]string{{"id": "2", "fieldLabel": "Source", "fieldType": "text"}},
				"meta":                map[string]string{"total": "1"},
			})
		case "/api/3/dealCustomFieldData":
			if request.Method == http.MethodGet {
				writeJSON(writer, http.StatusOK, map[string]interface{}{
					"dealCustomFieldData": []map[string]interface{}{{"id": "8", "dealId": "45", "customFieldId": 2}},
				})

				return
			}

			fallthrough
		default:
			writeJSON(writer, http.StatusOK, map[string]interface{}{
				"dealCustomFieldDatum": map[string]interface{}{"id": "8", "dealId": "45", "customFieldId": "2", "fieldValue": "web"},
			})
		}
	})

	created, err := c.Deals().CreateCustomFieldValue(context.Background(), &activecampaign.DealCustomFieldValueRequest{
		DealID: "45", CustomFieldID: "2", FieldValue: "web",
	})
	require.NoError(t, err)
	assert.Equal(t, "web", created.FieldValue)
	assert.Equal(t, 2, created.CustomFieldID.Int())

	_, err = c.Deals().GetCustomFieldValue(context.Background(), "8")
	require.NoError(t, err)

	_, err = c.Deals().UpdateCustomFieldValue(context.Background(), "8", "email")
	require.NoError(t, err)

	require.NoError(t, c.Deals().DeleteCustomFieldValue(context.Background(), "8"))

	fields, err := c.Deals().ListCustomFields(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, fields.Items, 1)

	values, err := c.Deals().ListCustomFieldValues(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, values.Items, 1)

	requests := api.recorded()
	require.Len(t, requests, 6)

	var createBody map[string]interface{}

	requests[0].envelope(t, "dealCustomFieldDatum", &createBody)
	assert.Equal(t, "2", createBody["custom_field_id"])

	var updateBody map[string]interface{}

	requests[2].envelope(t, "dealCustomFieldDatum", &updateBody)
	assert.Equal(t, map[string]interface{}{"fieldValue": "email"}, updateBody)
}

func TestDealsClient_PipelinesAndStages(t *testing.T) {
	t.Parallel()

	api, c := newFakeAPI(t, func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/api/3/dealGroups" {
			writeJSON(writer, http.StatusOK, map[string]interface{}{
				"dealGroups": []map[string]interface{}{{"id": "1", "title": "Sales", "currency": "usd", "stages": []string{"1", "2"}}},
				"meta":       map[string]string{"total": "1"},
			})

			return
		}

		writeJSON(writer, http.StatusOK, map[string]interface{}{
			"dealStages": []map[string]string{{"id": "1", "title": "Lead", "group": "1", "order": "1"}},
			"meta":       map[string]string{"total": "1"},
		})
	})

	pipelines, err := c.Deals().ListPipelines(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, pipelines.Items, 1)
	assert.Equal(t, []string{"1", "2"}, pipelines.Items[0].Stages)

	stages, err := c.Deals().ListStages(context.Background(),
		activecampaign.NewListParams().WithFilter("filters[d_groupid]", "1"))
	require.NoError(t, err)
	require.Len(t, stages.Items, 1)
	assert.Equal(t, 1, stages.Items[0].Order.Int())

	requests := api.recorded()
	require.Len(t, requests, 2)
	assert.Equal(t, "1", requests[1].Query["filters[d_groupid]"][0])
	assert.Equal(t, "20", requests[1].Query["limit"][0])
}
