package transcribe

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ai-sales-go/internal/config"
)

func TestTranscribeSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("unexpected model: %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer file.Close()
		if header.Filename != "note.webm" {
			t.Errorf("unexpected filename: %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "audio-bytes" {
			t.Errorf("unexpected audio payload: %q", data)
		}
		w.Write([]byte(`{"text":"Please call me back."}`))
	}))
	defer srv.Close()

	client := NewClient(config.TranscriptionConfig{APIKey: "test-key", BaseURL: srv.URL})
	text, err := client.Transcribe(context.Background(), "note.webm", strings.NewReader("audio-bytes"))
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "Please call me back." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestTranscribeEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":""}`))
	}))
	defer srv.Close()

	client := NewClient(config.TranscriptionConfig{BaseURL: srv.URL})
	if _, err := client.Transcribe(context.Background(), "note.webm", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestTranscribeNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(config.TranscriptionConfig{BaseURL: srv.URL})
	if _, err := client.Transcribe(context.Background(), "note.webm", strings.NewReader("x")); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
