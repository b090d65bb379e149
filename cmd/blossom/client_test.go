package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"blossom/internal/api"
)

func TestClientDiagnose(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/diagnose" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("unexpected auth header %q", got)
		}
		var req api.DiagnoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Text != "I feel sad" {
			t.Fatalf("unexpected text %q", req.Text)
		}
		json.NewEncoder(w).Encode(api.DiagnoseResponse{
			Diagnosis:  "moderate_risk",
			Confidence: 0.6,
			Remedies:   api.Remedies{Intro: "intro", Suggestions: []string{"rest"}},
		})
	}))
	defer server.Close()

	c := newClient(server.URL, "secret")
	resp, err := c.Diagnose(t.Context(), "I feel sad")
	if err != nil {
		t.Fatalf("diagnose: %v", err)
	}
	if resp.Diagnosis != "moderate_risk" {
		t.Fatalf("unexpected diagnosis %q", resp.Diagnosis)
	}
	if len(resp.Remedies.Suggestions) != 1 {
		t.Fatalf("unexpected remedies %+v", resp.Remedies)
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(api.ErrorResponse{Error: "No text provided"})
	}))
	defer server.Close()

	c := newClient(server.URL, "")
	_, err := c.Chat(t.Context(), "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "No text provided") {
		t.Fatalf("expected API error message, got %v", err)
	}
}

func TestClientAnalyzeUploadsMultipart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portrait.jpg")
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyze/image" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "portrait.jpg" {
			t.Fatalf("unexpected filename %q", header.Filename)
		}
		json.NewEncoder(w).Encode(api.UploadResponse{Success: true, FileID: "images/abc.jpg"})
	}))
	defer server.Close()

	c := newClient(server.URL, "")
	resp, err := c.Analyze(t.Context(), "image", path)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !resp.Success || resp.FileID != "images/abc.jpg" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestNewClientNormalizesAddress(t *testing.T) {
	c := newClient("127.0.0.1:8674", "")
	if c.baseURL != "http://127.0.0.1:8674" {
		t.Fatalf("unexpected base url %q", c.baseURL)
	}
	c = newClient("https://example.com/", "")
	if c.baseURL != "https://example.com" {
		t.Fatalf("unexpected base url %q", c.baseURL)
	}
}
