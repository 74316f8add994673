// Package client contains the UI-facing side of the system: an HTTP client
// for the contacts API plus a controller that reconciles an in-memory
// contact list with the server through optimistic updates.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/contactdesk/backend/internal/model"
)

// APIError is a non-2xx response decoded into its top-level message and
// optional per-field errors.
type APIError struct {
	Status      int
	Message     string
	FieldErrors map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client calls the contacts REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL (no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type listResponse struct {
	Contacts []model.Contact `json:"contacts"`
}

type createResponse struct {
	Message string         `json:"message"`
	Contact *model.Contact `json:"contact"`
}

type errorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// List fetches all contacts, newest first.
func (c *Client) List(ctx context.Context) ([]model.Contact, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/contacts", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp, "Failed to fetch contacts")
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, fmt.Errorf("failed to decode contacts list: %w", err)
	}
	return lr.Contacts, nil
}

// Create submits a candidate contact. On 201 it returns the created record
// when the server included one, nil otherwise.
func (c *Client) Create(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/contacts", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp, "Failed to submit contact")
	}

	var cr createResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("failed to decode created contact: %w", err)
	}
	return cr.Contact, nil
}

// Delete removes the contact with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/contacts/"+id, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp, "Failed to delete contact")
	}
	return nil
}

// decodeError turns a non-2xx response into *APIError, falling back to the
// given message when the body carries none.
func decodeError(resp *http.Response, fallback string) error {
	body, _ := io.ReadAll(resp.Body)

	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Message == "" {
		return &APIError{Status: resp.StatusCode, Message: fallback}
	}
	return &APIError{Status: resp.StatusCode, Message: er.Message, FieldErrors: er.Errors}
}
