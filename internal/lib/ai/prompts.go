package ai

import (
	"fmt"
	"strings"
)

const generationSystemPrompt = "You are an expert educator who writes clear, accurate study questions. Always respond with valid JSON and nothing else."

var difficultyInstructions = map[string]string{
	DifficultyEasy:   "Questions should test basic recall and understanding of explicitly stated facts.",
	DifficultyMedium: "Questions should require comprehension and application of the material.",
	DifficultyHard:   "Questions should require analysis, synthesis, or evaluation of concepts across the material.",
}

var typeInstructions = map[string]string{
	TypeMultipleChoice: `Each question must have exactly 4 options. Set "correct_answer" to the exact text of the correct option.`,
	TypeTrueFalse:      `Each question must have exactly the options ["True", "False"]. Set "correct_answer" to "True" or "False".`,
	TypeShortAnswer:    `Omit the "options" field. Set "correct_answer" to a concise model answer of one or two sentences.`,
}

// buildGenerationPrompt renders the user prompt for a question batch.
// Content longer than charLimit is truncated so prompts stay within a
// predictable token budget.
func buildGenerationPrompt(content string, params Params, charLimit int) string {
	if charLimit > 0 && len(content) > charLimit {
		content = content[:charLimit]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d %s questions at %s difficulty from the study material below.\n\n",
		params.NumQuestions, params.QuestionType, params.Difficulty)
	b.WriteString(difficultyInstructions[params.Difficulty])
	b.WriteString("\n")
	b.WriteString(typeInstructions[params.QuestionType])
	b.WriteString("\n\n")
	b.WriteString(`Respond with a JSON object of the form {"questions": [...]} where each question has the fields "question_text", "options", "correct_answer" and "explanation".`)
	b.WriteString("\n\nStudy material:\n")
	b.WriteString(content)

	return b.String()
}

// buildExplanationPrompt renders the prompt used to regenerate the
// explanation of an existing question.
func buildExplanationPrompt(questionText, correctAnswer string) string {
	var b strings.Builder
	b.WriteString("Explain in two or three sentences why the following answer is correct. Respond with plain text only.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", questionText)
	fmt.Fprintf(&b, "Correct answer: %s\n", correctAnswer)
	return b.String()
}

// EstimateTokens gives a rough token count for budgeting prompts.
func EstimateTokens(text string) int {
	return len(text) / 4
}
