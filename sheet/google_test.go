package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restyhq/resty/core"
)

func sheetsServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleSheets_Fetch(t *testing.T) {
	srv := sheetsServer(t, http.StatusOK, `{
		"values": [
			["Name", "Area", "Neighborhood", "Primary Type", "Types", "Price Level", "Rating", "Description"],
			["Il Forno", "Soho", "Soho", "italian_restaurant", "italian_restaurant,pizza_restaurant", "2", "4.6", "Wood-fired pizza"],
			["Thai Garden", "Chelsea", "", "thai_restaurant", "thai_restaurant", "3", "4.2", ""]
		]
	}`)

	src := NewGoogleSheets("test-key", "sheet-id", func(o *GoogleSheetsOptions) {
		o.BaseURL = srv.URL
	})
	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "Il Forno", records[0].Name)
	assert.Equal(t, "Soho", records[0].Area)
	assert.Equal(t, "italian_restaurant", records[0].PrimaryType)
	assert.Equal(t, "2", records[0].PriceLevel)

	// Missing trailing columns come back blank, not as errors.
	assert.Equal(t, "2", records[1].ID)
	assert.Empty(t, records[1].Neighborhood)
	assert.Empty(t, records[1].Description)
}

func TestGoogleSheets_IDColumnWins(t *testing.T) {
	srv := sheetsServer(t, http.StatusOK, `{
		"values": [
			["id", "name"],
			["r-100", "Il Forno"]
		]
	}`)

	src := NewGoogleSheets("k", "s", func(o *GoogleSheetsOptions) { o.BaseURL = srv.URL })
	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "r-100", records[0].ID)
}

func TestGoogleSheets_UnknownColumnsIgnored(t *testing.T) {
	srv := sheetsServer(t, http.StatusOK, `{
		"values": [
			["name", "wifi_password"],
			["Il Forno", "hunter2"]
		]
	}`)

	src := NewGoogleSheets("k", "s", func(o *GoogleSheetsOptions) { o.BaseURL = srv.URL })
	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Il Forno", records[0].Name)
}

func TestGoogleSheets_APIErrorIsUnavailable(t *testing.T) {
	srv := sheetsServer(t, http.StatusForbidden, `{"error":{"message":"bad key"}}`)

	src := NewGoogleSheets("k", "s", func(o *GoogleSheetsOptions) { o.BaseURL = srv.URL })
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGoogleSheets_EmptySheetIsUnavailable(t *testing.T) {
	srv := sheetsServer(t, http.StatusOK, `{"values":[["name","area"]]}`)

	src := NewGoogleSheets("k", "s", func(o *GoogleSheetsOptions) { o.BaseURL = srv.URL })
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestGoogleSheets_UnreachableIsUnavailable(t *testing.T) {
	src := NewGoogleSheets("k", "s", func(o *GoogleSheetsOptions) {
		o.BaseURL = "http://127.0.0.1:1"
	})
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestStatic_FetchCopies(t *testing.T) {
	src := NewStatic([]core.Restaurant{{ID: "1", Name: "Il Forno"}})
	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	records[0].Name = "mutated"

	again, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Il Forno", again[0].Name)
}
