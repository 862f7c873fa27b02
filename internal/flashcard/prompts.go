package flashcard

import "fmt"

// questionTemplates is the rotating set of question-eliciting prompts.
// Varying the framing keeps the generator from producing five copies of
// the same question shape.
var questionTemplates = []string{
	"Create a question about this information: %s",
	"What question would test understanding of: %s",
	"Generate a quiz question for: %s",
	"Ask about the key point in: %s",
	"What would you ask to test knowledge of: %s",
}

// QuestionPrompt builds the generation prompt for a content piece at
// position index, rotating through the template set.
func QuestionPrompt(content string, index int) string {
	return fmt.Sprintf(questionTemplates[index%len(questionTemplates)], content)
}

// answerPrompt asks for a one-sentence compression of a long answer.
func answerPrompt(content string) string {
	return "Summarize this in one sentence: " + content
}
