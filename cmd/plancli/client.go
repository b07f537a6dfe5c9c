package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trip-planner-be/internal/dto"
	"trip-planner-be/internal/pkg/serverutils"
)

// apiClient is a thin wrapper over the planner REST API.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	// Generation can take minutes; the server enforces its own deadline.
	return &apiClient{baseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{Timeout: 10 * time.Minute}}
}

func (c *apiClient) session(method, path string, body interface{}) (*dto.SessionResponse, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out serverutils.BaseResponse[*dto.SessionResponse]
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: unreadable response: %w", resp.Status, err)
	}
	if !out.Success {
		return nil, fmt.Errorf("%d: %s", out.Code, out.Message)
	}
	return out.Data, nil
}

func (c *apiClient) CreateItinerary(prompt string) (*dto.SessionResponse, error) {
	return c.session(http.MethodPost, "/planner/v1/itineraries", dto.CreateItineraryRequest{Prompt: prompt})
}

func (c *apiClient) GetSession(id string) (*dto.SessionResponse, error) {
	return c.session(http.MethodGet, "/planner/v1/sessions/"+id, nil)
}

func (c *apiClient) SelectTransport(id string, req dto.SelectTransportRequest) (*dto.SessionResponse, error) {
	return c.session(http.MethodPut, "/planner/v1/sessions/"+id+"/transport", req)
}

func (c *apiClient) SelectAccommodation(id string, req dto.SelectAccommodationRequest) (*dto.SessionResponse, error) {
	return c.session(http.MethodPut, "/planner/v1/sessions/"+id+"/accommodation", req)
}

func (c *apiClient) Reset(id string) (*dto.SessionResponse, error) {
	return c.session(http.MethodPost, "/planner/v1/sessions/"+id+"/reset", nil)
}
