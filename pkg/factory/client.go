// Package factory talks to the external order-fulfillment service.
package factory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pizzeria/internal/models"
)

// Client issues fulfillment requests to the order factory.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds the factory endpoint details.
type Config struct {
	URL    string
	APIKey string
}

// NewClient creates a factory client for the configured endpoint.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fulfillment is the factory's answer to a successful order: a report URL the
// diner can follow and a token issued by the factory.
type Fulfillment struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

type dinerInfo struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type fulfillRequest struct {
	Diner dinerInfo          `json:"diner"`
	Order *models.DinerOrder `json:"order"`
}

type factoryError struct {
	Message string `json:"message"`
}

// Fulfill posts the persisted order to the factory. A non-success response
// surfaces as an error carrying the factory's message.
func (c *Client) Fulfill(diner *models.User, order *models.DinerOrder) (*Fulfillment, error) {
	payload := fulfillRequest{
		Diner: dinerInfo{ID: diner.ID, Name: diner.Name, Email: diner.Email},
		Order: order,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal factory request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build factory request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("factory request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read factory response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var fe factoryError
		if json.Unmarshal(respBody, &fe) == nil && fe.Message != "" {
			return nil, fmt.Errorf("factory rejected order (%d): %s", resp.StatusCode, fe.Message)
		}
		return nil, fmt.Errorf("factory rejected order with status %d", resp.StatusCode)
	}

	var fulfillment Fulfillment
	if err := json.Unmarshal(respBody, &fulfillment); err != nil {
		return nil, fmt.Errorf("failed to decode factory response: %w", err)
	}
	return &fulfillment, nil
}
