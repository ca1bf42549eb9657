package dto

// SubmitAnswerDTO records an option choice for the session's current question.
type SubmitAnswerDTO struct {
	QuestionID  uint `json:"question_id" binding:"required"`
	OptionIndex *int `json:"option_index" binding:"required,min=0"`
}

// CompleteMissionDTO carries the final score for a mission attempt.
type CompleteMissionDTO struct {
	Score *int `json:"score" binding:"required"`
}
