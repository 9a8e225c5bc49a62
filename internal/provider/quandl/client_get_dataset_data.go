package quandl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DataOptions restricts a dataset data request. Zero values are omitted.
type DataOptions struct {
	StartDate time.Time
	EndDate   time.Time
	// Order is "asc" or "desc"; the API default is "desc".
	Order string
}

// DatasetData is the "dataset_data" object of the API.
type DatasetData struct {
	ColumnNames []string `json:"column_names"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Frequency   string   `json:"frequency"`
	Order       string   `json:"order"`
	// Data rows are [date, value, value, ...]; values may be null.
	Data [][]any `json:"data"`
}

type datasetDataResponse struct {
	DatasetData *DatasetData `json:"dataset_data"`
}

// GetDatasetData retrieves the time series of a dataset, e.g. "BCHAIN/MKPRU".
func (c *Client) GetDatasetData(ctx context.Context, code string, opts DataOptions, options ...ClientOption) (*DatasetData, error) {
	var override = &Client{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
	}
	for _, opt := range options {
		opt(override)
	}

	query := url.Values{}
	if !opts.StartDate.IsZero() {
		query.Set("start_date", opts.StartDate.Format(time.DateOnly))
	}
	if !opts.EndDate.IsZero() {
		query.Set("end_date", opts.EndDate.Format(time.DateOnly))
	}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}

	endpoint := fmt.Sprintf("%s/datasets/%s/data.json", override.baseURL, strings.Trim(code, "/"))
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = override.header
	req.Header.Set("Accept", "application/json")

	res, err := override.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: performing request: %w", ErrTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, decodeError(res)
	}

	var body datasetDataResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding dataset data response: %w", err)
	}
	if body.DatasetData == nil {
		return nil, fmt.Errorf("decoding dataset data response: missing dataset_data")
	}
	return body.DatasetData, nil
}

// decodeError reads the quandl_error body, if any, into an APIError.
func decodeError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode}
	b, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
	var body errorBody
	if err := json.Unmarshal(b, &body); err == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	} else if len(b) > 0 {
		apiErr.Message = strings.TrimSpace(string(b))
	}
	return apiErr
}
