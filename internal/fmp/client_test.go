package fmp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSearchSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v3/search") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "Apple" {
			t.Errorf("Expected query Apple, got %s", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("Expected limit 1, got %s", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("Expected apikey test-key, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"symbol":"AAPL","name":"Apple Inc.","currency":"USD","stockExchange":"NASDAQ"}]`))
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	matches, err := c.SearchSymbol(context.Background(), "Apple", 1)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(matches) != 1 || matches[0].Symbol != "AAPL" {
		t.Errorf("Unexpected matches %v", matches)
	}
}

func TestSearchSymbolNon200IsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	if _, err := c.SearchSymbol(context.Background(), "Apple", 1); err == nil {
		t.Fatal("Expected error for 503 response")
	}
}

func TestBatchTranscripts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v4/batch_earning_call_transcript/AAPL") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("year"); got != "2024" {
			t.Errorf("Expected year 2024, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"symbol":"AAPL","quarter":3,"year":2024,"date":"2024-08-01 17:00:00","content":"Operator: ..."}]`))
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	batch, err := c.BatchTranscripts(context.Background(), "AAPL", 2024)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if batch.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", batch.StatusCode)
	}
	if len(batch.Transcripts) != 1 || batch.Transcripts[0].Year != 2024 {
		t.Errorf("Unexpected transcripts %v", batch.Transcripts)
	}
}

func TestBatchTranscriptsEmptyList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	batch, err := c.BatchTranscripts(context.Background(), "AAPL", 2024)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if batch.StatusCode != 200 || len(batch.Transcripts) != 0 {
		t.Errorf("Expected empty 200 batch, got %+v", batch)
	}
}

func TestBatchTranscriptsRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	batch, err := c.BatchTranscripts(context.Background(), "AAPL", 2024)
	if err != nil {
		t.Fatalf("Expected no transport error, got %v", err)
	}
	if batch.StatusCode != 429 {
		t.Errorf("Expected status 429, got %d", batch.StatusCode)
	}
	if batch.RetryAfterSeconds != 7 {
		t.Errorf("Expected Retry-After 7, got %d", batch.RetryAfterSeconds)
	}
}

func TestBatchTranscriptsMissingRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	batch, err := c.BatchTranscripts(context.Background(), "AAPL", 2024)
	if err != nil {
		t.Fatalf("Expected no transport error, got %v", err)
	}
	if batch.RetryAfterSeconds != 0 {
		t.Errorf("Expected 0 for absent header, got %d", batch.RetryAfterSeconds)
	}
}

func TestDailyClosesAscending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("from"); got != "2024-07-02" {
			t.Errorf("Expected from 2024-07-02, got %s", got)
		}
		if got := r.URL.Query().Get("to"); got != "2024-08-31" {
			t.Errorf("Expected to 2024-08-31, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		// API serves newest first
		w.Write([]byte(`{"symbol":"AAPL","historical":[
			{"date":"2024-08-02","close":219.86},
			{"date":"2024-08-01","close":218.36},
			{"date":"2024-07-31","close":222.08}
		]}`))
	}))
	defer server.Close()

	c := New(server.URL, "test-key")
	from := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC)

	points, err := c.DailyCloses(context.Background(), "AAPL", from, to)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Date.Before(points[i-1].Date) {
			t.Error("Expected points ordered ascending by date")
		}
	}
	if points[0].Close != 222.08 {
		t.Errorf("Expected oldest close first, got %f", points[0].Close)
	}
}
