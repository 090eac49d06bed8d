package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ShayCichocki/vox/pkg/models"
)

// sseServer replies to /v1/messages with a streamed message made of chunks.
func sseServer(t *testing.T, chunks []string, captured *map[string]interface{}) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			http.NotFound(w, r)
			return
		}
		if captured != nil {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, captured)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		writeEvent := func(name, data string) {
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
		}

		writeEvent("message_start", `{"type":"message_start","message":{"id":"msg_1","type":"message","role":"assistant","model":"claude-sonnet-4-20250514","content":[],"stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":12,"output_tokens":1}}}`)
		writeEvent("content_block_start", `{"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}`)
		for _, c := range chunks {
			data, _ := json.Marshal(map[string]interface{}{
				"type":  "content_block_delta",
				"index": 0,
				"delta": map[string]string{"type": "text_delta", "text": c},
			})
			writeEvent("content_block_delta", string(data))
		}
		writeEvent("content_block_stop", `{"type":"content_block_stop","index":0}`)
		writeEvent("message_delta", `{"type":"message_delta","delta":{"stop_reason":"end_turn","stop_sequence":null},"usage":{"output_tokens":7}}`)
		writeEvent("message_stop", `{"type":"message_stop"}`)
	}))
}

func TestClient_Complete_Streams(t *testing.T) {
	var body map[string]interface{}
	srv := sseServer(t, []string{"open chrome", ", google ", "search cats"}, &body)
	defer srv.Close()

	client, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	got, err := client.Complete(context.Background(), CompletionRequest{
		System: []string{"classify", ""},
		Messages: []models.ChatMessage{
			{Role: models.RoleUser, Content: "how are you?"},
			{Role: models.RoleAssistant, Content: "general how are you?"},
			{Role: models.RoleUser, Content: "open chrome and search for cats"},
		},
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if want := "open chrome, google search cats"; got != want {
		t.Errorf("Complete() = %q, want %q", got, want)
	}

	input, output := client.Tracker().Total()
	if input != 12 || output != 7 {
		t.Errorf("Total() = %d, %d; want 12, 7", input, output)
	}

	if body["stream"] != true {
		t.Errorf("request stream = %v, want true", body["stream"])
	}
	if msgs, _ := body["messages"].([]interface{}); len(msgs) != 3 {
		t.Errorf("request carried %d messages, want 3", len(msgs))
	}
	if sys, _ := body["system"].([]interface{}); len(sys) != 1 {
		t.Errorf("request carried %d system blocks, want 1", len(sys))
	}
}

func TestClient_Complete_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`)
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	_, err = client.Complete(context.Background(), CompletionRequest{
		Messages: []models.ChatMessage{{Role: models.RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatal("Complete should fail on a 400 response")
	}
	if client.Tracker().Failures() != 1 {
		t.Errorf("Failures = %d, want 1", client.Tracker().Failures())
	}
}

func TestToMessageParams_SkipsBlank(t *testing.T) {
	params := toMessageParams([]models.ChatMessage{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleAssistant, Content: "  "},
		{Role: models.RoleAssistant, Content: "hello"},
	})
	if len(params) != 2 {
		t.Fatalf("len = %d, want 2", len(params))
	}
}

func TestUnavailable(t *testing.T) {
	var c Completer = Unavailable{}
	if _, err := c.Complete(context.Background(), CompletionRequest{}); err == nil {
		t.Error("Unavailable should always fail")
	}

	f := CompleterFunc(func(context.Context, CompletionRequest) (string, error) { return "ok", nil })
	if got, _ := f.Complete(context.Background(), CompletionRequest{}); got != "ok" {
		t.Errorf("CompleterFunc = %q, want ok", got)
	}
}
