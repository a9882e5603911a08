// Package belvo is a minimal client for the Belvo open-banking API,
// covering the link and data endpoints this server consumes.
package belvo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// Client is the aggregator surface the handlers depend on. It is satisfied
// by *HTTPClient in production and by fakes in tests.
type Client interface {
	ListInstitutions(ctx context.Context, countryCode string) ([]Institution, error)
	CreateLink(ctx context.Context, institution, username, password, token string) (*Link, error)
	GetLink(ctx context.Context, linkID string) (*Link, error)
	DeleteLink(ctx context.Context, linkID string) error
	GetAccounts(ctx context.Context, linkID string) ([]Account, error)
	GetTransactions(ctx context.Context, linkID, dateFrom, dateTo string) ([]Transaction, error)
}

type HTTPClient struct {
	baseURL        string
	secretID       string
	secretPassword string
	httpClient     *http.Client
}

func NewClient(secretID, secretPassword, env string) *HTTPClient {
	baseURL := "https://sandbox.belvo.com"
	switch env {
	case "sandbox":
	case "production":
		baseURL = "https://api.belvo.com"
	default:
		log.Fatalf("Invalid Belvo environment: %s", env)
	}

	return &HTTPClient{
		baseURL:        baseURL,
		secretID:       secretID,
		secretPassword: secretPassword,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) ListInstitutions(ctx context.Context, countryCode string) ([]Institution, error) {
	q := url.Values{}
	if countryCode != "" {
		q.Set("country_code", countryCode)
	}
	var page struct {
		Results []Institution `json:"results"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/institutions/?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (c *HTTPClient) CreateLink(ctx context.Context, institution, username, password, token string) (*Link, error) {
	body := map[string]string{
		"institution": institution,
		"username":    username,
		"password":    password,
	}
	if token != "" {
		body["token"] = token
	}
	var link Link
	if err := c.do(ctx, http.MethodPost, "/api/links/", body, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *HTTPClient) GetLink(ctx context.Context, linkID string) (*Link, error) {
	var link Link
	if err := c.do(ctx, http.MethodGet, "/api/links/"+linkID+"/", nil, &link); err != nil {
		return nil, err
	}
	return &link, nil
}

func (c *HTTPClient) DeleteLink(ctx context.Context, linkID string) error {
	return c.do(ctx, http.MethodDelete, "/api/links/"+linkID+"/", nil, nil)
}

// GetAccounts triggers a fresh account retrieval for the link. Belvo models
// retrieval as a POST creating account resources.
func (c *HTTPClient) GetAccounts(ctx context.Context, linkID string) ([]Account, error) {
	body := map[string]string{"link": linkID}
	var accounts []Account
	if err := c.do(ctx, http.MethodPost, "/api/accounts/", body, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *HTTPClient) GetTransactions(ctx context.Context, linkID, dateFrom, dateTo string) ([]Transaction, error) {
	if dateFrom == "" {
		dateFrom = time.Now().AddDate(0, 0, -90).Format("2006-01-02")
	}
	if dateTo == "" {
		dateTo = time.Now().Format("2006-01-02")
	}
	body := map[string]string{
		"link":      linkID,
		"date_from": dateFrom,
		"date_to":   dateTo,
	}
	var transactions []Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions/", body, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.secretID, c.secretPassword)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
