package inference_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"sentimentpulse/internal/adapters/inference"
)

func TestClient_Predict_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(500)
		default:
			w.WriteHeader(200)
			_, _ = w.Write([]byte(`[{"label":"5 stars","score":0.91},{"label":"4 stars","score":0.05}]`))
		}
	}))
	defer ts.Close()

	cl, err := inference.New(ts.URL, "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.Predict(ctx, "great product")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Label != "5 stars" || got.Score != 0.91 {
		t.Fatalf("unexpected prediction: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Predict_NestedPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// single-input batch form some serving stacks emit
		_, _ = w.Write([]byte(`[[{"label":"1 star","score":0.2},{"label":"2 stars","score":0.7}]]`))
	}))
	defer ts.Close()

	cl, err := inference.New(ts.URL, "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, err := cl.Predict(context.Background(), "meh")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Label != "2 stars" {
		t.Fatalf("expected top candidate by score, got %+v", got)
	}
}

func TestClient_Predict_SendsInputsAndAuth(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		_, _ = w.Write([]byte(`[{"label":"3 stars","score":0.8}]`))
	}))
	defer ts.Close()

	cl, _ := inference.New(ts.URL, "secret", 100)
	if _, err := cl.Predict(context.Background(), "it was okay"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody["inputs"] != "it was okay" {
		t.Fatalf("unexpected body: %+v", gotBody)
	}
}

func TestClient_Predict_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
	}))
	defer ts.Close()

	cl, _ := inference.New(ts.URL, "wrong", 100)
	_, err := cl.Predict(context.Background(), "hello")
	if !errors.Is(err, inference.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_Predict_ExhaustsRetries(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(503)
	}))
	defer ts.Close()

	cl, _ := inference.New(ts.URL, "", 100)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := cl.Predict(ctx, "hello")
	if !errors.Is(err, inference.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 4 {
		t.Fatalf("expected 4 attempts, got %d", got)
	}
}
