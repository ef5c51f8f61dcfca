package client

// http_client.go = talks to the restaurant scorer HTTP API.

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"restaurantscorer/cmd/cli/dto"

	"github.com/PuerkitoBio/goquery"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}

// constructor for HTTP client
func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Submit posts the entry form and returns the server's confirmation text
func (c *HTTPClient) Submit(request *dto.SubmitRequest) (string, error) {
	form := url.Values{
		"restaurant_name": {request.RestaurantName},
		"link":            {request.Link},
		"date_visited":    {request.DateVisited},
		"mood":            {strconv.FormatFloat(request.Mood, 'f', -1, 64)},
		"taste":           {strconv.Itoa(request.Taste)},
		"experience":      {strconv.Itoa(request.Experience)},
		"value":           {strconv.Itoa(request.Value)},
	}
	if request.Notes != "" {
		form.Set("notes", request.Notes)
	}

	response, err := c.httpClient.PostForm(c.baseURL+"/submit", form)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	// the server answers with an HTML fragment either way
	doc, err := goquery.NewDocumentFromReader(response.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	message := strings.TrimSpace(doc.Find(".message").First().Text())

	if response.StatusCode != http.StatusOK {
		if message == "" {
			message = "submit failed"
		}
		return "", &APIError{StatusCode: response.StatusCode, Message: message}
	}
	return message, nil
}

// ListEntries returns up to limit recent entries; limit <= 0 uses the server default
func (c *HTTPClient) ListEntries(limit int) ([]dto.ScoreEntryResponse, error) {
	path := "/entries"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var entries []dto.ScoreEntryResponse
	if err := c.getJSON(path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) GetEntry(id int64) (*dto.ScoreEntryResponse, error) {
	var entry dto.ScoreEntryResponse
	if err := c.getJSON("/entries/"+strconv.FormatInt(id, 10), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *HTTPClient) Health() (*dto.StatusResponse, error) {
	var status dto.StatusResponse
	if err := c.getJSON("/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Ready reports storage readiness. A 503 is returned as a status, not an error.
func (c *HTTPClient) Ready() (*dto.StatusResponse, error) {
	var status dto.StatusResponse
	err := c.getJSON("/ready", &status)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable {
		return &dto.StatusResponse{Status: "unavailable"}, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *HTTPClient) getJSON(path string, out any) error {
	response, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return decodeAPIError(response)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(response *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(response.Body, 64<<10))

	apiErr := &APIError{StatusCode: response.StatusCode, Message: response.Status}
	var payload dto.ErrorResponse
	if json.Unmarshal(body, &payload) == nil && payload.Error.Message != "" {
		apiErr.Code = payload.Error.Code
		apiErr.Message = payload.Error.Message
	}
	return apiErr
}
