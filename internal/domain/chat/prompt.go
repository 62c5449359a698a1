package chat

import (
	"strings"
)

const storeKnowledge = `
Store Information:
- Shipping: Free shipping on orders over $50. Standard shipping takes 3-5 business days.
- Returns: 30-day return policy. Items must be in original condition with tags attached.
- Support Hours: Monday-Friday 9AM-6PM EST
- Payment: We accept all major credit cards and PayPal
- Location: Based in New York, USA
- Specialties: Quality products with excellent customer service
`

// SystemPrompt is the fixed instruction block sent with every completion
// request. Store policy knowledge is static configuration, not user input.
const SystemPrompt = `You are a helpful customer support agent for an e-commerce store.
Answer questions clearly and concisely. Be friendly and professional.
Use the store information provided to answer questions accurately.

` + storeKnowledge + `
If you don't know something specific, politely say so and offer to connect them with a human agent.
Keep responses under 200 words and always complete your sentences.`

// historyWindow caps the number of prior turns rendered into the prompt.
// Bounding to the last 5 turns caps token cost while keeping enough short-term
// context for coherent replies. Fixed policy, not configurable per request.
const historyWindow = 5

// Prompt is the payload handed to the model collaborator: the fixed system
// instructions plus the rendered recent history ending in an open "Agent:"
// cue for the model to complete.
type Prompt struct {
	System  string
	Context string
}

// roleLabel maps the stored sender values onto the labels used in the
// rendered transcript.
func roleLabel(sender Sender) string {
	if sender == SenderUser {
		return "Customer"
	}
	return "Agent"
}

// BuildPrompt renders the prompt for a new user message given the history
// recorded before that message was appended. Callers must fetch history
// before persisting the new turn so it is not duplicated in the rendering.
func BuildPrompt(history []Message, userMessage string) Prompt {
	var b strings.Builder
	b.WriteString("Conversation history:\n")

	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	for _, msg := range history[start:] {
		b.WriteString(roleLabel(msg.Sender))
		b.WriteString(": ")
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}

	b.WriteString("Customer: ")
	b.WriteString(userMessage)
	b.WriteString("\nAgent:")

	return Prompt{
		System:  SystemPrompt,
		Context: b.String(),
	}
}

// Render joins the prompt into the single string form used by completion
// endpoints that take an unstructured prompt.
func (p Prompt) Render() string {
	return p.System + "\n\n" + p.Context
}
