package ai

// Question types accepted by the generator.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTrueFalse      = "true_false"
	TypeShortAnswer    = "short_answer"
)

// Difficulty levels accepted by the generator.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Params controls a single generation request.
type Params struct {
	NumQuestions int
	QuestionType string
	Difficulty   string
}

// GeneratedQuestion is one question parsed out of a model response.
// Options is empty for short-answer questions.
type GeneratedQuestion struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}
