package ollama

import (
	"github.com/yildizm/go-promptfmt"
)

const systemPrompt = "You are a security assistant that detects phishing and scam SMS or WhatsApp messages written in Roman Urdu (Urdu in Latin script), English or a mix of both. " +
	"Typical scams ask for OTPs, PINs, CNIC numbers or bank details, announce prizes or lottery wins, impersonate banks, couriers or government programs, or create urgency."

// PhishingPattern builds the classification prompt for one message
type PhishingPattern struct {
	promptfmt.BasePattern
	Message string
}

// NewPhishingPattern creates a prompt pattern for message
func NewPhishingPattern(message string) *PhishingPattern {
	return &PhishingPattern{
		BasePattern: promptfmt.BasePattern{
			Description: "Classifies a Roman Urdu message as safe, suspicious or phishing",
			Tags:        []string{"phishing", "roman-urdu", "classification"},
		},
		Message: message,
	}
}

// Build renders the prompt with the expected JSON shape
func (pp *PhishingPattern) Build() *promptfmt.Prompt {
	return promptfmt.New().
		System(systemPrompt).
		User("Classify the following message. Use SUSPICIOUS when unsure. Confidence is a percentage from 0 to 100.\n\nMessage:\n%s", pp.Message).
		ExpectJSON(&ModelVerdict{}).
		Build()
}
