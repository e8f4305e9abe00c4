package oracle

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are acting as a Magic 8 Ball that predicts the answer to a question about events now or in the future.
Your tone should be expressive yet polite.
Your answers should be 10 words or less.
Prefix your response with 'Answer:'.`

// buildPrompt wraps the question in a Llama-2 chat template.
func buildPrompt(question string) string {
	return fmt.Sprintf("<s>[INST] <<SYS>>\n%s\n<</SYS>>\n%s[/INST]", systemPrompt, question)
}

// ensureQuestionMark appends a trailing question mark if missing. Applied to
// the prompt only; the store key stays the text as received.
func ensureQuestionMark(question string) string {
	if strings.HasSuffix(question, "?") {
		return question
	}
	return question + "?"
}

// stripAnswerLabel trims the raw completion and removes any leading "Answer:"
// labels the model echoed back. Idempotent.
func stripAnswerLabel(raw string) string {
	answer := strings.TrimSpace(raw)
	for {
		rest, ok := strings.CutPrefix(answer, "Answer:")
		if !ok {
			return answer
		}
		answer = strings.TrimSpace(rest)
	}
}
