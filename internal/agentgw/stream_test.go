package agentgw

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

type fakeSocket struct {
	reads   []string
	sent    []string
	readIdx int
	closed  bool
}

func (f *fakeSocket) ReadText(ctx context.Context) (string, error) {
	if f.readIdx >= len(f.reads) {
		return "", io.EOF
	}
	out := f.reads[f.readIdx]
	f.readIdx++
	return out, nil
}

func (f *fakeSocket) WriteText(ctx context.Context, text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSocket) Close() error {
	f.closed = true
	return nil
}

type fakeDialer struct {
	sock    *fakeSocket
	dialErr error
	url     string
}

func (f *fakeDialer) Dial(ctx context.Context, url string) (Socket, error) {
	f.url = url
	if f.dialErr != nil {
		return nil, f.dialErr
	}
	return f.sock, nil
}

func newTestStreamer(dialer Dialer) *Streamer {
	s := NewStreamer(dialer, "ws://test/ws", nil)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func collect(t *testing.T, s *Streamer, req ChatRequest) []Chunk {
	t.Helper()
	var chunks []Chunk
	if err := s.Stream(context.Background(), req, func(c Chunk) error {
		chunks = append(chunks, c)
		return nil
	}); err != nil {
		t.Fatalf("Stream failed: %v", err)
	}
	return chunks
}

func TestStream_ForwardsUserMessageAndThinkEvents(t *testing.T) {
	sock := &fakeSocket{reads: []string{
		`{"observation":"AgentThinkObservation","content":"analyzing the repo"}`,
		`{"observation":"SomethingElse","content":"ignored"}`,
		`{"action":"CmdRunAction","args":{"command":"ls -la"}}`,
	}}
	dialer := &fakeDialer{sock: sock}
	s := newTestStreamer(dialer)

	req := ChatRequest{
		Model:  "openhands",
		Stream: true,
		Messages: []ChatMessage{
			{Role: "system", Content: "be helpful"},
			{Role: "user", Content: "fix the bug"},
		},
	}
	chunks := collect(t, s, req)

	if dialer.url != "ws://test/ws" {
		t.Fatalf("unexpected dial url: %s", dialer.url)
	}
	if len(sock.sent) != 1 || !strings.Contains(sock.sent[0], `"content":"fix the bug"`) {
		t.Fatalf("expected one forwarded user action, got %v", sock.sent)
	}
	if !strings.Contains(sock.sent[0], `"oh_user_action"`) {
		t.Fatalf("expected oh_user_action envelope, got %s", sock.sent[0])
	}

	// two content chunks plus the final stop chunk
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[0].Choices[0].Delta.Content != "analyzing the repo" {
		t.Fatalf("unexpected first chunk: %+v", chunks[0])
	}
	if !strings.Contains(chunks[1].Choices[0].Delta.Content, "```bash\nls -la\n```") {
		t.Fatalf("expected bash block for CmdRunAction, got %q", chunks[1].Choices[0].Delta.Content)
	}
	last := chunks[len(chunks)-1]
	if last.Choices[0].FinishReason == nil || *last.Choices[0].FinishReason != "stop" {
		t.Fatalf("expected trailing stop chunk, got %+v", last)
	}
	if !sock.closed {
		t.Fatal("socket should be closed after streaming")
	}
}

func TestStream_DialFailureStillEmitsStopChunk(t *testing.T) {
	s := newTestStreamer(&fakeDialer{dialErr: errors.New("connection refused")})

	chunks := collect(t, s, ChatRequest{Model: "m", Messages: []ChatMessage{{Role: "user", Content: "hi"}}})
	if len(chunks) != 1 {
		t.Fatalf("expected only the stop chunk, got %d chunks", len(chunks))
	}
	if chunks[0].Choices[0].FinishReason == nil || *chunks[0].Choices[0].FinishReason != "stop" {
		t.Fatalf("expected stop chunk, got %+v", chunks[0])
	}
}

func TestExtractContent_UnknownEventsAreSkipped(t *testing.T) {
	if got := extractContent(`{"action":"FileEditAction","args":{}}`); got != "" {
		t.Fatalf("expected empty content, got %q", got)
	}
	if got := extractContent(`not-json`); got != "" {
		t.Fatalf("malformed events should be skipped, got %q", got)
	}
}
