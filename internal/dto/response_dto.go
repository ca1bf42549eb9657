package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// DiagnosticQuestionDTO is the learner-facing view of a question. The correct
// option never leaves the server.
type DiagnosticQuestionDTO struct {
	ID      uint     `json:"id"`
	Area    string   `json:"area"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// AreaResultDTO is one scored area within a diagnostic run.
type AreaResultDTO struct {
	Area                  string    `json:"area"`
	ScorePercent          int       `json:"score_percent"`
	RecommendedDifficulty int       `json:"recommended_difficulty"`
	CreatedAt             time.Time `json:"created_at,omitempty"`
}

// DiagnosticSessionDTO describes the live state of a session after start,
// answer or advance. CurrentQuestion is nil once the session is complete.
type DiagnosticSessionDTO struct {
	SessionID       string                 `json:"session_id"`
	LearnerID       uint                   `json:"learner_id"`
	Complete        bool                   `json:"complete"`
	CurrentQuestion *DiagnosticQuestionDTO `json:"current_question,omitempty"`
	AreaIndex       int                    `json:"area_index"`
	QuestionIndex   int                    `json:"question_index"`
	AreaResults     []AreaResultDTO        `json:"area_results,omitempty"`
	AverageScore    *int                   `json:"average_score,omitempty"`
	Recommendation  string                 `json:"recommendation,omitempty"`
}

type MissionStepDTO struct {
	ID             uint     `json:"id"`
	OrderInMission int      `json:"order_in_mission"`
	Type           string   `json:"type"`
	Prompt         string   `json:"prompt"`
	Options        []string `json:"options,omitempty"`
}

type MissionDTO struct {
	ID         uint             `json:"id"`
	Title      string           `json:"title"`
	Area       string           `json:"area"`
	Difficulty int              `json:"difficulty"`
	XpReward   int              `json:"xp_reward"`
	PathID     uint             `json:"path_id"`
	Sequence   int              `json:"sequence"`
	Steps      []MissionStepDTO `json:"steps,omitempty"`
}

type MissionSummaryDTO struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Area       string `json:"area"`
	Difficulty int    `json:"difficulty"`
	XpReward   int    `json:"xp_reward"`
	Sequence   int    `json:"sequence"`
}

type ProgressRecordDTO struct {
	ID           uint       `json:"id"`
	LearnerID    uint       `json:"learner_id"`
	MissionID    uint       `json:"mission_id"`
	MissionTitle string     `json:"mission_title,omitempty"`
	Completed    bool       `json:"completed"`
	Score        *int       `json:"score,omitempty"`
	Attempts     int        `json:"attempts"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

type AchievementDTO struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Area         string `json:"area,omitempty"`
	CriteriaType string `json:"criteria_type"`
	Threshold    int    `json:"threshold"`
}

type AchievementGrantDTO struct {
	AchievementID uint      `json:"achievement_id"`
	Title         string    `json:"title"`
	EarnedAt      time.Time `json:"earned_at"`
}

// MissionCompletionDTO is returned by the complete-mission operation and
// carries the post-completion gamification state alongside the record.
type MissionCompletionDTO struct {
	Record              ProgressRecordDTO `json:"record"`
	XpCredited          int               `json:"xp_credited"`
	XpTotal             int               `json:"xp_total"`
	Level               int               `json:"level"`
	UnlockedAchievement []AchievementDTO  `json:"unlocked_achievements,omitempty"`
}

type LearnerProfileDTO struct {
	ID     uint                  `json:"id"`
	Name   string                `json:"name"`
	Role   string                `json:"role"`
	Xp     int                   `json:"xp"`
	Level  int                   `json:"level"`
	Grants []AchievementGrantDTO `json:"grants,omitempty"`
}
