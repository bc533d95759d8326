package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/restyhq/resty/core"
	"github.com/restyhq/resty/logging"
)

// GoogleSheetsOptions configure the spreadsheet source.
type GoogleSheetsOptions struct {
	// BaseURL is overridable for tests.
	BaseURL string
	// Range in A1 notation; the default reads every populated column.
	Range      string
	HTTPClient *http.Client
	Logger     logging.Logger
}

// GoogleSheets reads the restaurant table from the Google Sheets values
// endpoint. The first row is treated as a header row and columns are mapped
// by header name, so the sheet may add, drop or reorder columns freely;
// absent optional fields come back blank.
type GoogleSheets struct {
	apiKey        string
	spreadsheetID string
	opts          GoogleSheetsOptions
}

// NewGoogleSheets creates a source for one spreadsheet.
func NewGoogleSheets(apiKey, spreadsheetID string, optFns ...func(o *GoogleSheetsOptions)) *GoogleSheets {
	opts := GoogleSheetsOptions{
		BaseURL:    "https://sheets.googleapis.com/v4",
		Range:      "Sheet1!A:Z",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Logger:     logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &GoogleSheets{apiKey: apiKey, spreadsheetID: spreadsheetID, opts: opts}
}

// valuesResponse is the subset of the Sheets values payload we consume.
type valuesResponse struct {
	Values [][]string `json:"values"`
}

// Fetch implements Source. Any transport, decoding or empty-sheet condition
// maps to ErrUnavailable.
func (g *GoogleSheets) Fetch(ctx context.Context) ([]core.Restaurant, error) {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s?key=%s",
		g.opts.BaseURL,
		url.PathEscape(g.spreadsheetID),
		url.PathEscape(g.opts.Range),
		url.QueryEscape(g.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := g.opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: sheets api status %d: %s", ErrUnavailable, resp.StatusCode, body)
	}

	var payload valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode values: %v", ErrUnavailable, err)
	}
	if len(payload.Values) <= 1 {
		return nil, fmt.Errorf("%w: no data rows in spreadsheet", ErrUnavailable)
	}

	records := parseRows(payload.Values[0], payload.Values[1:])
	g.opts.Logger.Info("restaurant table loaded", "rows", len(records))
	return records, nil
}

// parseRows maps data rows onto Restaurant fields using the header row.
// Rows shorter than the header are padded with blanks; rows without an id
// column get a stable 1-based index id.
func parseRows(header []string, rows [][]string) []core.Restaurant {
	setters := make([]func(*core.Restaurant, string), len(header))
	for i, h := range header {
		setters[i] = fieldSetters[normalizeHeader(h)]
	}

	records := make([]core.Restaurant, 0, len(rows))
	for i, row := range rows {
		var r core.Restaurant
		for col, set := range setters {
			if set == nil || col >= len(row) {
				continue
			}
			set(&r, strings.TrimSpace(row[col]))
		}
		if r.ID == "" {
			r.ID = strconv.Itoa(i + 1)
		}
		records = append(records, r)
	}
	return records
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

var fieldSetters = map[string]func(*core.Restaurant, string){
	"id":                         func(r *core.Restaurant, v string) { r.ID = v },
	"name":                       func(r *core.Restaurant, v string) { r.Name = v },
	"street_address":             func(r *core.Restaurant, v string) { r.StreetAddress = v },
	"city":                       func(r *core.Restaurant, v string) { r.City = v },
	"country":                    func(r *core.Restaurant, v string) { r.Country = v },
	"neighborhood":               func(r *core.Restaurant, v string) { r.Neighborhood = v },
	"postcode":                   func(r *core.Restaurant, v string) { r.Postcode = v },
	"area":                       func(r *core.Restaurant, v string) { r.Area = v },
	"region":                     func(r *core.Restaurant, v string) { r.Region = v },
	"parliamentary_constituency": func(r *core.Restaurant, v string) { r.ParliamentaryConstituency = v },
	"primary_type":               func(r *core.Restaurant, v string) { r.PrimaryType = v },
	"types":                      func(r *core.Restaurant, v string) { r.Types = v },
	"phone":                      func(r *core.Restaurant, v string) { r.Phone = v },
	"website":                    func(r *core.Restaurant, v string) { r.Website = v },
	"hours":                      func(r *core.Restaurant, v string) { r.Hours = v },
	"rating":                     func(r *core.Restaurant, v string) { r.Rating = v },
	"total_ratings":              func(r *core.Restaurant, v string) { r.TotalRatings = v },
	"price_level":                func(r *core.Restaurant, v string) { r.PriceLevel = v },
	"description":                func(r *core.Restaurant, v string) { r.Description = v },
	"plus_code":                  func(r *core.Restaurant, v string) { r.PlusCode = v },
	"dine_in":                    func(r *core.Restaurant, v string) { r.DineIn = v },
	"delivery":                   func(r *core.Restaurant, v string) { r.Delivery = v },
	"takeout":                    func(r *core.Restaurant, v string) { r.Takeout = v },
	"reservable":                 func(r *core.Restaurant, v string) { r.Reservable = v },
	"business_status":            func(r *core.Restaurant, v string) { r.BusinessStatus = v },
	"google_maps_url":            func(r *core.Restaurant, v string) { r.GoogleMapsURL = v },
	"input_url":                  func(r *core.Restaurant, v string) { r.InputURL = v },
}
