package adapters

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testRequest() *EventRequest {
	return &EventRequest{
		Data: []ServerEvent{{
			EventName:    "Purchase",
			EventTime:    1700000000,
			ActionSource: ActionSourceWebsite,
		}},
		TestEventCode: "TEST123",
	}
}

func TestNetHTTPAdapter_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("expected Content-Type: application/json")
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Error("expected Authorization header")
		}

		var body EventRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if len(body.Data) != 1 || body.Data[0].EventName != "Purchase" {
			t.Errorf("unexpected events: %+v", body.Data)
		}
		if body.TestEventCode != "TEST123" {
			t.Errorf("expected test event code, got %q", body.TestEventCode)
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"events_received":1,"messages":[],"fbtrace_id":"trace-1"}`))
	}))
	defer server.Close()

	adapter := NewNetHTTPAdapter()
	headers := map[string]string{"Authorization": "Bearer test-token"}
	resp, err := adapter.Send(context.Background(), server.URL, testRequest(), headers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.OK || resp.Status != 200 {
		t.Fatal("expected successful response")
	}
	if resp.Data == nil || resp.Data.EventsReceived != 1 || resp.Data.FBTraceID != "trace-1" {
		t.Fatalf("unexpected response data: %+v", resp.Data)
	}
}

func TestNetHTTPAdapter_SendGraphError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid parameter","type":"OAuthException","code":100,"fbtrace_id":"t"}}`))
	}))
	defer server.Close()

	resp, err := NewNetHTTPAdapter().Send(context.Background(), server.URL, testRequest(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.OK {
		t.Fatal("expected response to not be OK")
	}
	if resp.Status != 400 {
		t.Fatalf("expected status 400, got %d", resp.Status)
	}
	if resp.Error == nil || resp.Error.Error.Code != 100 {
		t.Fatalf("expected graph error, got %+v", resp.Error)
	}
}

func TestNetHTTPAdapter_SendServerErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resp, err := NewNetHTTPAdapter().Send(context.Background(), server.URL, testRequest(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.OK || resp.Status != 500 || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestNetHTTPAdapter_SendCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewNetHTTPAdapter().Send(ctx, server.URL, testRequest(), nil)
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestNetHTTPAdapter_SendMarshalError(t *testing.T) {
	nan := math.NaN()
	request := testRequest()
	request.Data[0].CustomData.Value = &nan

	_, err := NewNetHTTPAdapter().Send(context.Background(), "http://test.com", request, nil)
	if err == nil {
		t.Fatal("expected error for unmarshalable data")
	}
}

func TestNetHTTPAdapter_SendInvalidURL(t *testing.T) {
	_, err := NewNetHTTPAdapter().Send(context.Background(), "ht!tp://invalid", testRequest(), nil)
	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
}
