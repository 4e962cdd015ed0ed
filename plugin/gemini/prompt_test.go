package gemini

import (
	"strings"
	"testing"
)

func TestTopicTitle(t *testing.T) {
	tests := []struct {
		topicID  int32
		expected string
	}{
		{1, "일상 대화"},
		{2, "여행"},
		{3, "비즈니스"},
		{4, "면접 준비"},
		{5, "기술 토론"},
		{6, "자유 주제"},
		{0, "자유 주제"},
		{7, "자유 주제"},
		{99, "자유 주제"},
		{-1, "자유 주제"},
	}

	for _, tt := range tests {
		if got := TopicTitle(tt.topicID); got != tt.expected {
			t.Errorf("TopicTitle(%d): expected %q, got %q", tt.topicID, tt.expected, got)
		}
	}
}

func TestBuildSystemInstruction(t *testing.T) {
	for id := int32(1); id <= 6; id++ {
		instruction := BuildSystemInstruction(id)
		if !strings.HasPrefix(instruction, "You are a friendly and helpful English conversation partner") {
			t.Errorf("topic %d: instruction missing rule block", id)
		}
		if !strings.Contains(instruction, topicClauses[Topic(id)]) {
			t.Errorf("topic %d: instruction missing topic clause", id)
		}
		if !strings.Contains(instruction, `{"reply": `) {
			t.Errorf("topic %d: instruction missing JSON format mandate", id)
		}
	}
}

func TestBuildSystemInstructionUnknownTopic(t *testing.T) {
	for _, id := range []int32{0, 7, 99, -5} {
		instruction := BuildSystemInstruction(id)
		if !strings.HasSuffix(instruction, defaultTopicClause) {
			t.Errorf("topic %d: expected default clause", id)
		}
	}
}
