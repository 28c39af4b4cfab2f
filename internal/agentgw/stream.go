package agentgw

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// DefaultEndpoint is the agent backend's conversation websocket.
const DefaultEndpoint = "ws://127.0.0.1:3000/ws"

const defaultReadTimeout = 20 * time.Second

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

// Chunk is one streamed completion fragment in the OpenAI wire shape.
type Chunk struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Index        int     `json:"index"`
	Delta        Delta   `json:"delta"`
	FinishReason *string `json:"finish_reason"`
}

type Delta struct {
	Content string `json:"content,omitempty"`
}

// Streamer forwards one user message to the agent and converts the agent's
// event stream into completion chunks.
type Streamer struct {
	dialer      Dialer
	endpoint    string
	readTimeout time.Duration
	now         func() time.Time
	log         *slog.Logger
}

func NewStreamer(dialer Dialer, endpoint string, log *slog.Logger) *Streamer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if log == nil {
		log = slog.Default()
	}
	return &Streamer{
		dialer:      dialer,
		endpoint:    endpoint,
		readTimeout: defaultReadTimeout,
		now:         time.Now,
		log:         log,
	}
}

// Stream sends the first user message from the request to the agent, emits
// a chunk per interesting agent event, and always finishes with a stop
// chunk — including when the agent is unreachable, times out, or closes the
// connection. Failures degrade to an empty completion, never an error to
// the caller.
func (s *Streamer) Stream(ctx context.Context, req ChatRequest, emit func(Chunk) error) error {
	userMessage := ""
	for _, m := range req.Messages {
		if m.Role == "user" {
			userMessage = m.Content
			break
		}
	}

	if err := s.pump(ctx, req.Model, userMessage, emit); err != nil {
		s.log.Debug("agent stream ended", "err", err)
	}

	stop := "stop"
	return emit(Chunk{
		ID:      "chatcmpl-123",
		Object:  "chat.completion.chunk",
		Created: s.now().Unix(),
		Model:   req.Model,
		Choices: []Choice{{Index: 0, Delta: Delta{}, FinishReason: &stop}},
	})
}

func (s *Streamer) pump(ctx context.Context, model, userMessage string, emit func(Chunk) error) error {
	sock, err := s.dialer.Dial(ctx, s.endpoint)
	if err != nil {
		return fmt.Errorf("dial agent: %w", err)
	}
	defer sock.Close()

	action := map[string]any{
		"action": "oh_user_action",
		"data": map[string]any{
			"action": "MessageAction",
			"args": map[string]any{
				"content": userMessage,
				"source":  "user",
			},
		},
	}
	raw, err := json.Marshal(action)
	if err != nil {
		return err
	}
	if err := sock.WriteText(ctx, string(raw)); err != nil {
		return fmt.Errorf("send user action: %w", err)
	}

	for {
		readCtx, cancel := context.WithTimeout(ctx, s.readTimeout)
		text, err := sock.ReadText(readCtx)
		cancel()
		if err != nil {
			return err
		}

		content := extractContent(text)
		if content == "" {
			continue
		}
		chunk := Chunk{
			ID:      "chatcmpl-123",
			Object:  "chat.completion.chunk",
			Created: s.now().Unix(),
			Model:   model,
			Choices: []Choice{{Index: 0, Delta: Delta{Content: content}}},
		}
		if err := emit(chunk); err != nil {
			return err
		}
	}
}

// extractContent picks the renderable text out of one agent event: the
// agent's thinking, or the command it is about to run.
func extractContent(text string) string {
	var evt struct {
		Observation string `json:"observation"`
		Action      string `json:"action"`
		Content     string `json:"content"`
		Args        struct {
			Command string `json:"command"`
		} `json:"args"`
	}
	if err := json.Unmarshal([]byte(text), &evt); err != nil {
		return ""
	}
	switch {
	case evt.Observation == "AgentThinkObservation":
		return evt.Content
	case evt.Action == "CmdRunAction":
		return fmt.Sprintf("\n\nRunning command:\n```bash\n%s\n```\n\n", evt.Args.Command)
	default:
		return ""
	}
}
