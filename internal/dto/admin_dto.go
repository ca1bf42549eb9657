package dto

// LearnerCreateDTO registers a platform user the engine tracks progress for.
type LearnerCreateDTO struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"required,oneof=student teacher manager"`
}

type QuestionCreateDTO struct {
	Area          string   `json:"area" binding:"required"`
	Prompt        string   `json:"prompt" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectOption int      `json:"correct_option" binding:"min=0"`
	Difficulty    int      `json:"difficulty" binding:"required,min=1,max=3"`
	OrderInArea   int      `json:"order_in_area" binding:"required,min=1"`
}

type MissionStepCreateDTO struct {
	OrderInMission int      `json:"order_in_mission" binding:"required,min=1"`
	Type           string   `json:"type" binding:"required,oneof=multiple_choice free_text"`
	Prompt         string   `json:"prompt" binding:"required"`
	Options        []string `json:"options"`
	CorrectOption  *int     `json:"correct_option"`
}

type MissionCreateDTO struct {
	Title      string                 `json:"title" binding:"required"`
	Area       string                 `json:"area" binding:"required"`
	Difficulty int                    `json:"difficulty" binding:"required,min=1,max=3"`
	XpReward   int                    `json:"xp_reward" binding:"required,gt=0"`
	PathID     uint                   `json:"path_id"`
	Sequence   int                    `json:"sequence" binding:"required,min=1"`
	Steps      []MissionStepCreateDTO `json:"steps" binding:"required,min=1,dive"`
}

type AchievementCreateDTO struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Area         string `json:"area"`
	CriteriaType string `json:"criteria_type" binding:"required,oneof=missions_completed_in_area missions_completed_total min_score_any_mission total_xp diagnostic_tier_reached"`
	Threshold    int    `json:"threshold" binding:"required,gt=0"`
}
