package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"antares_backend/platform/logger"

	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
	"github.com/gin-gonic/gin"
)

func newTestEngine(messager AnthropicMessager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewHandler(New(messager, testAIConfig(), logger.New("test")))
	engine.POST("/api/chat", h.Chat)
	engine.POST("/api/suggest", h.Suggest)
	return engine
}

func post(engine *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func TestChatStreamsSSE(t *testing.T) {
	messager := &mockMessager{streamEvents: []ssestream.Event{
		sseEvent("message_start", `{"type":"message_start","message":{"id":"msg_1","type":"message","role":"assistant","model":"claude-sonnet-4-20250514","content":[],"stop_reason":null,"usage":{"input_tokens":10,"output_tokens":0}}}`),
		sseEvent("content_block_start", `{"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}`),
		sseEvent("content_block_delta", `{"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"こんにちは"}}`),
		sseEvent("content_block_stop", `{"type":"content_block_stop","index":0}`),
		sseEvent("message_stop", `{"type":"message_stop"}`),
	}}
	engine := newTestEngine(messager)

	recorder := post(engine, "/api/chat", `{"messages":[{"role":"user","content":"見積もりをお願いします"}]}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}
	if ct := recorder.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("content type = %q", ct)
	}

	body := recorder.Body.String()
	if !strings.Contains(body, "event:delta") {
		t.Errorf("missing delta event: %s", body)
	}
	if !strings.Contains(body, "こんにちは") {
		t.Errorf("missing streamed text: %s", body)
	}
	if !strings.Contains(body, "event:done") {
		t.Errorf("missing done event: %s", body)
	}
}

func TestChatRejectsMalformedBody(t *testing.T) {
	engine := newTestEngine(&mockMessager{})

	recorder := post(engine, "/api/chat", `{"messages": []}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", recorder.Code)
	}
}

func TestChatRejectsOversizedHistory(t *testing.T) {
	engine := newTestEngine(&mockMessager{})

	var messages []Message
	for i := 0; i < maxMessages+1; i++ {
		messages = append(messages, Message{Role: "user", Content: "x"})
	}
	body, err := json.Marshal(gin.H{"messages": messages})
	if err != nil {
		t.Fatal(err)
	}

	recorder := post(engine, "/api/chat", string(body))
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", recorder.Code)
	}
}

func TestSuggestReturnsCandidates(t *testing.T) {
	messager := &mockMessager{newResp: textMessage(t, `["Webアプリを作りたい","予算を相談したい"]`)}
	engine := newTestEngine(messager)

	recorder := post(engine, "/api/suggest", `{"messages":[{"role":"user","content":"こんにちは"}]}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Suggestions) != 2 {
		t.Errorf("suggestions = %v", resp.Suggestions)
	}
}

func TestSuggestAlways200(t *testing.T) {
	engine := newTestEngine(&mockMessager{})

	for _, body := range []string{`{"messages": `, `{}`, `{"messages": []}`} {
		recorder := post(engine, "/api/suggest", body)
		if recorder.Code != http.StatusOK {
			t.Errorf("body %q: status = %d, want 200", body, recorder.Code)
			continue
		}
		var resp struct {
			Suggestions []string `json:"suggestions"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Errorf("body %q: %v", body, err)
		}
	}
}
