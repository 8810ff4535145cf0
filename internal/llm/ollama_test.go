package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaProvider_ExtractClaim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Stream {
			t.Error("Expected a non-streaming request")
		}
		if req.Options.Temperature != 0 {
			t.Errorf("Expected temperature 0, got %v", req.Options.Temperature)
		}

		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:    req.Model,
			Response: `{"patient": "Maria Santos", "diagnosis": "Cataract", "treatment": "Phaco", "cost": 3500}`,
			Done:     true,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama3.1"})
	if err != nil {
		t.Fatalf("NewOllamaProvider failed: %v", err)
	}

	record, err := provider.ExtractClaim(context.Background(), "some messy claim text")
	if err != nil {
		t.Fatalf("ExtractClaim failed: %v", err)
	}

	if record.Patient != "Maria Santos" || record.Cost != 3500 {
		t.Errorf("Unexpected record: %+v", record)
	}
}

func TestOllamaProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ollamaError{Error: "model not found"})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := provider.ExtractClaim(context.Background(), "text"); err == nil {
		t.Error("Expected an error from the server failure")
	}
}

func TestOllamaProvider_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	if !provider.IsAvailable(context.Background()) {
		t.Error("Expected the provider to be available")
	}

	server.Close()
	if provider.IsAvailable(context.Background()) {
		t.Error("Expected the provider to be unavailable after shutdown")
	}
}
