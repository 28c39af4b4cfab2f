package protocol

import (
	"encoding/json"
	"fmt"
)

// Context message commands, controller -> panel.
const (
	CmdWorkspaceContext = "workspaceContext"
	CmdContext          = "context"
	CmdFile             = "file"
	CmdProactiveAssist  = "proactiveAssist"
)

// ContextMessage is the closed set of messages the controller posts to the
// panel surface. The command tag discriminates the variants.
type ContextMessage interface {
	ContextCommand() string
}

// WorkspaceContextMessage carries a freshly collected workspace snapshot.
// The context payload is kept raw so the protocol layer does not depend on
// the collector's types.
type WorkspaceContextMessage struct {
	Context json.RawMessage `json:"context"`
}

func (WorkspaceContextMessage) ContextCommand() string { return CmdWorkspaceContext }

// TextContextMessage carries a formatted natural-language prompt.
type TextContextMessage struct {
	Context string `json:"context"`
}

func (TextContextMessage) ContextCommand() string { return CmdContext }

// FileMessage names a saved file; the frontend fetches the content itself.
type FileMessage struct {
	File string `json:"file"`
}

func (FileMessage) ContextCommand() string { return CmdFile }

// ProactiveAssistMessage carries the whole active document for review.
type ProactiveAssistMessage struct {
	Code string `json:"code"`
}

func (ProactiveAssistMessage) ContextCommand() string { return CmdProactiveAssist }

// EncodeContextMessage renders a variant as its wire shape with the command
// tag inlined next to the payload fields.
func EncodeContextMessage(msg ContextMessage) ([]byte, error) {
	switch m := msg.(type) {
	case WorkspaceContextMessage:
		return json.Marshal(struct {
			Command string          `json:"command"`
			Context json.RawMessage `json:"context"`
		}{CmdWorkspaceContext, m.Context})
	case TextContextMessage:
		return json.Marshal(struct {
			Command string `json:"command"`
			Context string `json:"context"`
		}{CmdContext, m.Context})
	case FileMessage:
		return json.Marshal(struct {
			Command string `json:"command"`
			File    string `json:"file"`
		}{CmdFile, m.File})
	case ProactiveAssistMessage:
		return json.Marshal(struct {
			Command string `json:"command"`
			Code    string `json:"code"`
		}{CmdProactiveAssist, m.Code})
	default:
		return nil, fmt.Errorf("unknown context message type %T", msg)
	}
}

// DecodeContextMessage parses a wire message back into its variant.
// Unrecognized command tags are an error, not a silent drop.
func DecodeContextMessage(raw []byte) (ContextMessage, error) {
	var probe struct {
		Command string          `json:"command"`
		Context json.RawMessage `json:"context"`
		File    string          `json:"file"`
		Code    string          `json:"code"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	switch probe.Command {
	case CmdWorkspaceContext:
		return WorkspaceContextMessage{Context: probe.Context}, nil
	case CmdContext:
		var s string
		if err := json.Unmarshal(probe.Context, &s); err != nil {
			return nil, fmt.Errorf("context payload is not a string: %w", err)
		}
		return TextContextMessage{Context: s}, nil
	case CmdFile:
		return FileMessage{File: probe.File}, nil
	case CmdProactiveAssist:
		return ProactiveAssistMessage{Code: probe.Code}, nil
	default:
		return nil, fmt.Errorf("unrecognized context command %q", probe.Command)
	}
}
