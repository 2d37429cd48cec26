package compliance

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"legalflow/pkg/config"

	"github.com/charmbracelet/x/exp/golden"
)

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(config.APIConfig{})

	if client.Endpoint() != DefaultEndpoint {
		t.Errorf("Expected endpoint %q, got %q", DefaultEndpoint, client.Endpoint())
	}
	if client.Timeout() != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %v", client.Timeout())
	}
}

func TestNewClient_FromConfig(t *testing.T) {
	client := NewClient(config.APIConfig{URL: "http://localhost:1234/chat", TimeoutSeconds: 5})

	if client.Endpoint() != "http://localhost:1234/chat" {
		t.Errorf("Expected configured endpoint, got %q", client.Endpoint())
	}
	if client.Timeout() != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", client.Timeout())
	}
}

func TestSendMessage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Message != "Do I need a PSE registration?" {
			t.Errorf("Unexpected message %q", req.Message)
		}
		if req.ThreadID != "thread-1" {
			t.Errorf("Unexpected thread id %q", req.ThreadID)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Response{Response: "Yes, under PP 71/2019.", ThreadID: "thread-2"})
	}))
	defer server.Close()

	client := NewClient(config.APIConfig{URL: server.URL, TimeoutSeconds: 5})
	resp, err := client.SendMessage(context.Background(), "Do I need a PSE registration?", "thread-1")
	if err != nil {
		t.Fatalf("SendMessage() failed: %v", err)
	}

	if resp.Response != "Yes, under PP 71/2019." {
		t.Errorf("Unexpected response %q", resp.Response)
	}
	if resp.ThreadID != "thread-2" {
		t.Errorf("Expected thread id 'thread-2', got %q", resp.ThreadID)
	}
}

func TestSendMessage_RequestPayload(t *testing.T) {
	var captured []byte
	httpClient := newTestClient(func(req *http.Request) (*http.Response, error) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		captured = body
		return newJSONResponse(t, req, http.StatusOK, Response{Response: "ok", ThreadID: "thread-123"}), nil
	})

	client := newClientWithHTTPClient(config.APIConfig{URL: "https://example.test/api/v1/chat"}, httpClient)
	if _, err := client.SendMessage(context.Background(), "Is facial recognition allowed", "thread-123"); err != nil {
		t.Fatalf("SendMessage() failed: %v", err)
	}

	golden.RequireEqual(t, captured)
}

func TestSendMessage_RateLimitWithDetail(t *testing.T) {
	httpClient := newTestClient(func(req *http.Request) (*http.Response, error) {
		return newJSONResponse(t, req, http.StatusTooManyRequests, map[string]string{
			"detail": "You have used all 20 questions for today.",
		}), nil
	})

	client := newClientWithHTTPClient(config.APIConfig{}, httpClient)
	_, err := client.SendMessage(context.Background(), "hello", "t")
	if err == nil {
		t.Fatal("Expected error for 429")
	}

	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("Expected RateLimitError, got %T: %v", err, err)
	}
	if rlErr.Detail != "You have used all 20 questions for today." {
		t.Errorf("Unexpected detail %q", rlErr.Detail)
	}
	if rlErr.StatusCode() != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rlErr.StatusCode())
	}
}

func TestSendMessage_RateLimitFallbackDetail(t *testing.T) {
	bodies := map[string]string{
		"plain text":   "slow down",
		"empty detail": `{"detail":""}`,
		"no detail":    `{"error":"quota"}`,
		"non-string":   `{"detail":[{"msg":"quota"}]}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			httpClient := newTestClient(func(req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusTooManyRequests, "text/plain", []byte(body)), nil
			})

			client := newClientWithHTTPClient(config.APIConfig{}, httpClient)
			_, err := client.SendMessage(context.Background(), "hello", "t")

			var rlErr *RateLimitError
			if !errors.As(err, &rlErr) {
				t.Fatalf("Expected RateLimitError, got %T: %v", err, err)
			}
			if rlErr.Error() != DefaultRateLimitDetail {
				t.Errorf("Expected default detail, got %q", rlErr.Error())
			}
		})
	}
}

func TestSendMessage_ServerError(t *testing.T) {
	httpClient := newTestClient(func(req *http.Request) (*http.Response, error) {
		return newHTTPResponse(req, http.StatusInternalServerError, "text/plain", []byte("upstream exploded")), nil
	})

	client := newClientWithHTTPClient(config.APIConfig{}, httpClient)
	_, err := client.SendMessage(context.Background(), "hello", "t")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", apiErr.StatusCode)
	}
	if err.Error() != "API Error: 500 upstream exploded" {
		t.Errorf("Unexpected error message %q", err.Error())
	}
}

func TestSendMessage_InvalidJSON(t *testing.T) {
	httpClient := newTestClient(func(req *http.Request) (*http.Response, error) {
		return newHTTPResponse(req, http.StatusOK, "application/json", []byte("<html>")), nil
	})

	client := newClientWithHTTPClient(config.APIConfig{}, httpClient)
	_, err := client.SendMessage(context.Background(), "hello", "t")
	if err == nil || !strings.Contains(err.Error(), "failed to unmarshal response") {
		t.Fatalf("Expected unmarshal error, got %v", err)
	}
}

func TestSendMessage_Timeout(t *testing.T) {
	httpClient := newTestClient(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	client := newClientWithHTTPClient(config.APIConfig{}, httpClient)
	client.timeout = 20 * time.Millisecond

	start := time.Now()
	_, err := client.SendMessage(context.Background(), "hello", "t")
	if err == nil {
		t.Fatal("Expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Timeout took too long: %v", elapsed)
	}
}

func TestSendMessage_CallerCancel(t *testing.T) {
	httpClient := newTestClient(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	client := newClientWithHTTPClient(config.APIConfig{}, httpClient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SendMessage(ctx, "hello", "t")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
