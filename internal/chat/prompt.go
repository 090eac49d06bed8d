// Package chat answers general and realtime questions with a hosted model,
// keeping the persisted conversation log up to date.
package chat

import (
	"fmt"
	"strings"
	"time"
)

func chatbotPrompt(username, assistant string) string {
	return fmt.Sprintf(`Hello, I am %s. You are a very accurate and advanced AI assistant named %s with access to up-to-date information.
*** Do not tell the time unless asked. Be brief and specific to the topic. ***
*** Be concise and do not repeat yourself. ***
*** Reply only in English, even if the question is in another language. ***
*** Do not add notes to the output and never mention your training data. ***`, username, assistant)
}

func searchPrompt(username, assistant string) string {
	return fmt.Sprintf(`Hello, I am %s. You are a very accurate and advanced AI assistant named %s with access to up-to-date information from the internet.
*** Answer professionally, with full stops, commas, question marks and proper grammar. ***
*** Answer the question only from the provided search data. ***`, username, assistant)
}

// RealtimeInformation renders the current date and time as a system block.
func RealtimeInformation(now time.Time) string {
	var b strings.Builder
	b.WriteString("Please use this real-time information if needed,\n")
	fmt.Fprintf(&b, "Day: %s\nDate: %s\nMonth: %s\nYear: %s\n",
		now.Format("Monday"), now.Format("02"), now.Format("January"), now.Format("2006"))
	fmt.Fprintf(&b, "Time: %s hours, %s minutes\n", now.Format("03"), now.Format("04"))
	return b.String()
}

// AnswerModifier removes blank lines from a model answer.
func AnswerModifier(answer string) string {
	lines := strings.Split(answer, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func cleanAnswer(answer string) string {
	return strings.TrimSpace(strings.ReplaceAll(answer, "</s>", ""))
}
