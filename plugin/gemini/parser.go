package gemini

import (
	"encoding/json"
	"strings"
)

// defaultReply is substituted when the model omits the reply field.
const defaultReply = "I'm not sure how to respond to that."

// ChatReply is the structured result of one gateway turn.
// Feedback "" means no correction was needed.
type ChatReply struct {
	Reply    string `json:"reply"`
	Feedback string `json:"feedback"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ParseChatReply extracts the first candidate's first text part from a raw
// generateContent response body and decodes it into a (reply, feedback) pair.
//
// The candidate text may arrive fenced (```json ... ``` or ``` ... ```); zero,
// one, or both fences are tolerated. Missing reply/feedback fields fall back to
// defaults; only malformed JSON is an error.
func ParseChatReply(raw []byte) (*ChatReply, error) {
	var resp generateContentResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, &ParseError{Cause: err}
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyCandidate
	}

	text := stripFences(resp.Candidates[0].Content.Parts[0].Text)

	var fields struct {
		Reply    *string `json:"reply"`
		Feedback *string `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, &ParseError{Cause: err}
	}

	reply := defaultReply
	if fields.Reply != nil {
		reply = *fields.Reply
	}
	feedback := ""
	if fields.Feedback != nil {
		feedback = *fields.Feedback
	}
	return &ChatReply{Reply: reply, Feedback: feedback}, nil
}

// stripFences removes a leading ```json or ``` marker and a trailing ``` fence.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	}
	if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	return strings.TrimSpace(text)
}
