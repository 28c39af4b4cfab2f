package protocol

import (
	"encoding/json"
	"fmt"
)

// CmdSuggestions tags the one message kind flowing panel -> controller.
const CmdSuggestions = "suggestions"

type SuggestionRange struct {
	StartLine int `json:"startLine"`
	StartChar int `json:"startChar"`
	EndLine   int `json:"endLine"`
	EndChar   int `json:"endChar"`
}

type Suggestion struct {
	Range    SuggestionRange `json:"range"`
	Message  string          `json:"message"`
	Severity string          `json:"severity"`
}

type SuggestionMessage struct {
	Command     string       `json:"command"`
	Suggestions []Suggestion `json:"suggestions"`
}

func DecodeSuggestionMessage(raw []byte) (SuggestionMessage, error) {
	var msg SuggestionMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return SuggestionMessage{}, err
	}
	if msg.Command != CmdSuggestions {
		return SuggestionMessage{}, fmt.Errorf("unrecognized suggestion command %q", msg.Command)
	}
	return msg, nil
}
