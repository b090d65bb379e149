package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"blossom/internal/api"
)

// client is a thin HTTP wrapper over the daemon API.
type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func newClient(address, token string) *client {
	address = strings.TrimSpace(address)
	if !strings.Contains(address, "://") {
		address = "http://" + address
	}
	return &client{
		baseURL: strings.TrimRight(address, "/"),
		token:   token,
		http:    &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *client) Status(ctx context.Context) (api.DaemonStatus, error) {
	var status api.DaemonStatus
	err := c.get(ctx, "/api/status", &status)
	return status, err
}

func (c *client) History(ctx context.Context, limit int) ([]api.HistoryEntry, error) {
	path := "/api/history"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var resp api.HistoryResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (c *client) Diagnose(ctx context.Context, text string) (api.DiagnoseResponse, error) {
	var resp api.DiagnoseResponse
	err := c.postJSON(ctx, "/api/diagnose", api.DiagnoseRequest{Text: text}, &resp)
	return resp, err
}

func (c *client) Chat(ctx context.Context, text string) (api.ChatResponse, error) {
	var resp api.ChatResponse
	err := c.postJSON(ctx, "/api/chat", api.ChatRequest{Text: text}, &resp)
	return resp, err
}

// Analyze uploads a media file to the matching analysis endpoint. Kind must
// be "image" or "video".
func (c *client) Analyze(ctx context.Context, kind, path string) (api.UploadResponse, error) {
	var resp api.UploadResponse

	file, err := os.Open(path)
	if err != nil {
		return resp, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(kind, filepath.Base(path))
	if err != nil {
		return resp, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return resp, fmt.Errorf("read %s: %w", path, err)
	}
	if err := writer.Close(); err != nil {
		return resp, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze/"+kind, &body)
	if err != nil {
		return resp, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return resp, c.do(req, &resp)
}

func (c *client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *client) do(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr api.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("daemon error (%d)", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
