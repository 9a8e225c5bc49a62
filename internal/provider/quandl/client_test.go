package quandl_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"eodseries/internal/provider/quandl"
)

// okResponse returns a 200 response with an empty dataset_data body.
func okResponse(t *testing.T) *http.Response {
	buffer := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buffer).Encode(map[string]any{
		"dataset_data": map[string]any{"column_names": []string{"Date", "Value"}, "data": [][]any{}},
	}))
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(buffer),
	}
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	// Assert: a valid key should return a client.
	client, err := quandl.NewClient("test")
	require.NoErrorf(t, err, "unexpected error: %v", err)
	require.NotNilf(t, client, "unexpected nil client")
}

func TestNewClient_MissingKey(t *testing.T) {
	t.Parallel()

	client, err := quandl.NewClient("")
	require.ErrorIs(t, err, quandl.ErrMissingAPIKey)
	require.Nil(t, client)
}

func TestWithHTTPClient(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the custom client is the one performing the request
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return okResponse(t), nil
		}).
		Times(1)

	// Arrange: create a new client with a custom HTTP client.
	client, err := quandl.NewClient("test", quandl.WithHTTPClient(httpClient))
	require.NoError(t, err)

	// Act
	_, err = client.GetDatasetData(t.Context(), "BCHAIN/MKPRU", quandl.DataOptions{})
	require.NoError(t, err)
}

func TestWithBaseURL(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Arrange: define a base url
	baseURL := "http://localhost:8080/api/v3"

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Truef(t, strings.HasPrefix(req.URL.String(), baseURL), "expected url to start with base url, received: %s", req.URL.String())
			return okResponse(t), nil
		}).
		Times(1)

	// Arrange: create a new client.
	client, err := quandl.NewClient("test", quandl.WithHTTPClient(httpClient), quandl.WithBaseURL(baseURL))
	require.NoError(t, err)

	// Act: call GetDatasetData with the overridden base URL.
	_, err = client.GetDatasetData(t.Context(), "BCHAIN/MKPRU", quandl.DataOptions{})
	require.NoError(t, err)
}

func TestWithBaseURL_EmptyKeepsDefault(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	httpClient := NewMockHTTPClient(ctrl)
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "https://data.nasdaq.com/api/v3/datasets/BCHAIN/MKPRU/data.json", req.URL.String())
			return okResponse(t), nil
		}).
		Times(1)

	client, err := quandl.NewClient("test", quandl.WithHTTPClient(httpClient), quandl.WithBaseURL("  "))
	require.NoError(t, err)

	_, err = client.GetDatasetData(t.Context(), "BCHAIN/MKPRU", quandl.DataOptions{})
	require.NoError(t, err)
}

func TestWithHeader(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock http client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: the custom header is sent
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "bar", req.Header.Get("foo"))
			return okResponse(t), nil
		}).
		Times(1)

	// Arrange: create a new client with a custom header.
	client, err := quandl.NewClient("test", quandl.WithHTTPClient(httpClient), quandl.WithHeader(http.Header{
		"foo": []string{"bar"},
	}))
	require.NoError(t, err)

	// Act
	_, err = client.GetDatasetData(t.Context(), "BCHAIN/MKPRU", quandl.DataOptions{})
	require.NoError(t, err)
}
