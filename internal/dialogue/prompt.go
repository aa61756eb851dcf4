package dialogue

import (
	"strings"

	"github.com/zulandar/attendant/internal/profile"
)

// basePersona opens every system prompt.
const basePersona = "You are a customer support chatbot. "

// outputContract is the strict format instruction appended after the business
// facts. The completion service must return exactly one JSON object with the
// reply and sentiment metadata, nothing else.
const outputContract = "Always answer politely, objectively, and never invent information. " +
	"Interpret the customer's sentiment from their words, tone, punctuation and context: " +
	"NEGATIVO with a negative score for frustration, impatience, irony or complaints; " +
	"POSITIVO with a positive score for enthusiasm, praise or gratitude; " +
	"NEUTRO for plain questions or comments with no clear emotion. " +
	"The stronger the emotion, the closer the score should be to -1.0 or 1.0; " +
	"use a score between -0.1 and 0.1 for neutral turns.\n\n" +
	"*** MANDATORY RESPONSE FORMAT ***\n" +
	"You MUST ALWAYS, in EVERY response, return ONLY a valid JSON object.\n" +
	"Do NOT add text before or after the JSON. Do NOT explain your answer.\n" +
	"RETURN ONLY THE JSON:\n\n" +
	"{\n" +
	"  \"reply\": \"Your full message to the customer here\",\n" +
	"  \"sentiment\": \"POSITIVO\" | \"NEUTRO\" | \"NEGATIVO\",\n" +
	"  \"score\": a number between -1.0 and 1.0\n" +
	"}\n\n" +
	"REMEMBER: answer ONLY with the JSON, nothing else! "

// retryInstruction is appended as a corrective user turn when the first
// completion was not parseable.
const retryInstruction = `Please answer ONLY with a valid JSON object in the format: {"reply": "your answer here", "sentiment": "NEUTRO", "score": 0.0}`

// apologyReply is returned when both completion attempts fail.
const apologyReply = "Sorry, I couldn't process your message. Could you say that again?"

// firstTurnGreeting replaces a blank reply on a brand-new conversation so a
// new user never receives silence.
const firstTurnGreeting = "Hello! How can I help you today? We handle delivery, auto repair and pharmacy services. What can I do for you? 😊"

// escalationPhrases mark replies where the bot is out of its depth. Matched
// case-insensitively as substrings.
var escalationPhrases = []string{
	"i don't know",
	"i cannot help",
	"i can't help",
	"talk to a human",
	"speak with an agent",
	"i didn't understand",
}

// buildSystemPrompt assembles the per-turn system prompt: persona, the
// domain's business facts when one is established, the output contract, and
// the domain tone directive.
func buildSystemPrompt(domain profile.Domain) string {
	var b strings.Builder
	b.WriteString(basePersona)
	p, ok := profile.ForDomain(domain)
	if ok {
		b.WriteString(p.PromptSection())
	}
	b.WriteString(outputContract)
	if ok {
		b.WriteString(p.Tone)
	}
	return b.String()
}

// needsHuman reports whether the reply contains an escalation phrase.
func needsHuman(reply string) bool {
	lower := strings.ToLower(reply)
	for _, phrase := range escalationPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
