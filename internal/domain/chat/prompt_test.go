package chat

import (
	"strings"
	"testing"
)

func TestBuildPrompt_EmptyHistory(t *testing.T) {
	prompt := BuildPrompt(nil, "What are your shipping options?")

	if prompt.System != SystemPrompt {
		t.Fatalf("expected fixed system prompt")
	}
	want := "Conversation history:\nCustomer: What are your shipping options?\nAgent:"
	if prompt.Context != want {
		t.Fatalf("unexpected context:\n%q\nwant:\n%q", prompt.Context, want)
	}
}

func TestBuildPrompt_RoleLabels(t *testing.T) {
	history := []Message{
		{Sender: SenderUser, Text: "Do you ship to Canada?"},
		{Sender: SenderAI, Text: "Yes, we do."},
	}

	prompt := BuildPrompt(history, "How long does it take?")

	if !strings.Contains(prompt.Context, "Customer: Do you ship to Canada?\n") {
		t.Errorf("user turn not rendered as Customer: %q", prompt.Context)
	}
	if !strings.Contains(prompt.Context, "Agent: Yes, we do.\n") {
		t.Errorf("ai turn not rendered as Agent: %q", prompt.Context)
	}
	if !strings.HasSuffix(prompt.Context, "Customer: How long does it take?\nAgent:") {
		t.Errorf("context must end with the new turn and an open Agent cue: %q", prompt.Context)
	}
}

func TestBuildPrompt_WindowsHistoryToFiveMostRecentTurns(t *testing.T) {
	history := []Message{
		{Sender: SenderUser, Text: "turn 1"},
		{Sender: SenderAI, Text: "turn 2"},
		{Sender: SenderUser, Text: "turn 3"},
		{Sender: SenderAI, Text: "turn 4"},
		{Sender: SenderUser, Text: "turn 5"},
		{Sender: SenderAI, Text: "turn 6"},
		{Sender: SenderUser, Text: "turn 7"},
	}

	prompt := BuildPrompt(history, "new question")

	// Only the 5 most recent turns survive, oldest of those five first.
	if strings.Contains(prompt.Context, "turn 1") || strings.Contains(prompt.Context, "turn 2") {
		t.Errorf("turns outside the window must not be rendered: %q", prompt.Context)
	}
	for _, turn := range []string{"turn 3", "turn 4", "turn 5", "turn 6", "turn 7"} {
		if !strings.Contains(prompt.Context, turn) {
			t.Errorf("expected %q inside the window: %q", turn, prompt.Context)
		}
	}
	if strings.Index(prompt.Context, "turn 3") > strings.Index(prompt.Context, "turn 7") {
		t.Errorf("window must preserve chronological order: %q", prompt.Context)
	}
}

func TestPromptRender(t *testing.T) {
	prompt := BuildPrompt(nil, "hi")
	rendered := prompt.Render()

	if !strings.HasPrefix(rendered, SystemPrompt) {
		t.Errorf("rendered prompt must start with the system instructions")
	}
	if !strings.HasSuffix(rendered, prompt.Context) {
		t.Errorf("rendered prompt must end with the context block")
	}
}
