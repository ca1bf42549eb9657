package service

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/questline/backend/internal/dto"
	"github.com/questline/backend/internal/model"
	"github.com/questline/backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// DiagnosticService sequences a learner through the placement quiz: one area
// at a time, one question at a time, scoring each area as it is exhausted and
// persisting the per-area results when the run completes.
type DiagnosticService interface {
	StartDiagnostic(learnerID uint) (*dto.DiagnosticSessionDTO, error)
	SubmitAnswer(sessionID string, questionID uint, optionIndex int) (*dto.DiagnosticSessionDTO, error)
	AdvanceDiagnostic(sessionID string) (*dto.DiagnosticSessionDTO, error)
	GetHistory(learnerID uint) ([]dto.AreaResultDTO, error)
}

// diagnosticSession is the ephemeral per-learner run state. It lives only in
// the service's session table and is destroyed once complete; it is never
// shared across learners or persisted.
type diagnosticSession struct {
	id            string
	learnerID     uint
	areas         []model.Area
	questions     map[model.Area][]model.DiagnosticQuestion
	answers       map[model.Area]map[uint]int
	areaIndex     int
	questionIndex int
	results       []model.AreaResult
	complete      bool
}

func (s *diagnosticSession) currentArea() model.Area {
	return s.areas[s.areaIndex]
}

func (s *diagnosticSession) currentQuestion() *model.DiagnosticQuestion {
	qs := s.questions[s.currentArea()]
	return &qs[s.questionIndex]
}

type diagnosticServiceImpl struct {
	learnerRepo    repository.LearnerRepository
	questionRepo   repository.QuestionRepository
	areaResultRepo repository.AreaResultRepository
	scoring        ScoringService
	feedback       FeedbackService

	mu       sync.Mutex
	sessions map[string]*diagnosticSession
}

func NewDiagnosticService(
	learnerRepo repository.LearnerRepository,
	questionRepo repository.QuestionRepository,
	areaResultRepo repository.AreaResultRepository,
	scoring ScoringService,
	feedback FeedbackService,
) DiagnosticService {
	return &diagnosticServiceImpl{
		learnerRepo:    learnerRepo,
		questionRepo:   questionRepo,
		areaResultRepo: areaResultRepo,
		scoring:        scoring,
		feedback:       feedback,
		sessions:       make(map[string]*diagnosticSession),
	}
}

// newStudentSession builds a session over every area that has questions,
// positioned at the first question of the first area.
func (s *diagnosticServiceImpl) newStudentSession(learnerID uint) (*diagnosticSession, error) {
	areas, err := s.questionRepo.AreasWithQuestions()
	if err != nil {
		return nil, fmt.Errorf("error loading diagnostic areas: %w", err)
	}
	if len(areas) == 0 {
		return nil, fmt.Errorf("no diagnostic questions configured: %w", ErrEmptyArea)
	}

	questions := make(map[model.Area][]model.DiagnosticQuestion, len(areas))
	answers := make(map[model.Area]map[uint]int, len(areas))
	for _, area := range areas {
		qs, err := s.questionRepo.FindByArea(area)
		if err != nil {
			return nil, fmt.Errorf("error loading questions for area %s: %w", area, err)
		}
		if len(qs) == 0 {
			return nil, fmt.Errorf("area %s: %w", area, ErrEmptyArea)
		}
		questions[area] = qs
		answers[area] = make(map[uint]int)
	}

	return &diagnosticSession{
		id:        uuid.NewString(),
		learnerID: learnerID,
		areas:     areas,
		questions: questions,
		answers:   answers,
	}, nil
}

// newBypassSession is the non-student path: the session is born complete with
// zero area results and no scoring is ever attempted. Callers are expected to
// apply this policy for teachers and managers; the distinct constructor keeps
// the role branch exhaustive and out of the student flow.
func newBypassSession(learnerID uint) *diagnosticSession {
	return &diagnosticSession{
		id:        uuid.NewString(),
		learnerID: learnerID,
		complete:  true,
	}
}

func (s *diagnosticServiceImpl) StartDiagnostic(learnerID uint) (*dto.DiagnosticSessionDTO, error) {
	learner, err := s.learnerRepo.FindByID(learnerID)
	if err != nil {
		log.Error().Err(err).Uint("learnerID", learnerID).Msg("StartDiagnostic: learner not found")
		return nil, fmt.Errorf("learner not found with ID %d: %w", learnerID, err)
	}

	if learner.Role != model.RoleStudent {
		session := newBypassSession(learnerID)
		log.Info().Uint("learnerID", learnerID).Str("role", learner.Role).Msg("StartDiagnostic: non-student role, diagnostic bypassed")
		return s.sessionView(session), nil
	}

	session, err := s.newStudentSession(learnerID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()

	log.Info().Uint("learnerID", learnerID).Str("sessionID", session.id).Int("areas", len(session.areas)).Msg("Diagnostic session started")
	return s.sessionView(session), nil
}

// SubmitAnswer records the choice for the session's current question.
// Resubmitting before advancing overwrites the previous choice.
func (s *diagnosticServiceImpl) SubmitAnswer(sessionID string, questionID uint, optionIndex int) (*dto.DiagnosticSessionDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if session.complete {
		return nil, ErrNoActiveQuestion
	}

	current := session.currentQuestion()
	if current.ID != questionID {
		return nil, fmt.Errorf("question %d is not the active question: %w", questionID, ErrNoActiveQuestion)
	}

	session.answers[session.currentArea()][questionID] = optionIndex
	return s.sessionView(session), nil
}

// AdvanceDiagnostic moves past the current question. Exhausting an area scores
// it and appends an AreaResult; exhausting the area list completes the run,
// persists every result and produces the overall recommendation.
func (s *diagnosticServiceImpl) AdvanceDiagnostic(sessionID string) (*dto.DiagnosticSessionDTO, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if session.complete {
		s.mu.Unlock()
		return nil, ErrNoActiveQuestion
	}

	area := session.currentArea()
	current := session.currentQuestion()
	if _, answered := session.answers[area][current.ID]; !answered {
		s.mu.Unlock()
		return nil, fmt.Errorf("question %d in area %s: %w", current.ID, area, ErrUnansweredQuestion)
	}

	if session.questionIndex < len(session.questions[area])-1 {
		session.questionIndex++
		view := s.sessionView(session)
		s.mu.Unlock()
		return view, nil
	}

	// Area exhausted: fold its answers into an immutable AreaResult.
	scorePercent, err := s.scoring.ScoreArea(session.answers[area], session.questions[area])
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("error scoring area %s: %w", area, err)
	}
	session.results = append(session.results, model.AreaResult{
		LearnerID:             session.learnerID,
		Area:                  area,
		ScorePercent:          scorePercent,
		RecommendedDifficulty: s.scoring.ClassifyDifficulty(scorePercent),
	})
	log.Info().Str("sessionID", session.id).Str("area", string(area)).Int("scorePercent", scorePercent).Msg("Diagnostic area scored")

	if session.areaIndex < len(session.areas)-1 {
		session.areaIndex++
		session.questionIndex = 0
		view := s.sessionView(session)
		s.mu.Unlock()
		return view, nil
	}

	// Run complete. Drop the session before touching the gateway so a slow
	// write never holds the table lock.
	session.complete = true
	delete(s.sessions, session.id)
	s.mu.Unlock()

	return s.finishSession(session)
}

func (s *diagnosticServiceImpl) finishSession(session *diagnosticSession) (*dto.DiagnosticSessionDTO, error) {
	for i := range session.results {
		if err := s.areaResultRepo.Append(&session.results[i]); err != nil {
			log.Error().Err(err).Uint("learnerID", session.learnerID).Str("area", string(session.results[i].Area)).Msg("Failed to persist area result")
			return nil, fmt.Errorf("error persisting area result for %s: %w", session.results[i].Area, err)
		}
	}

	sum := 0
	for _, r := range session.results {
		sum += r.ScorePercent
	}
	average := int(math.Round(float64(sum) / float64(len(session.results))))

	recommendation, err := s.feedback.GenerateRecommendation(session.results, average)
	if err != nil {
		log.Warn().Err(err).Uint("learnerID", session.learnerID).Msg("Feedback generator failed, substituting static recommendation")
		recommendation = FallbackRecommendation(average)
	}

	view := s.sessionView(session)
	view.AverageScore = &average
	view.Recommendation = recommendation
	log.Info().Uint("learnerID", session.learnerID).Int("averageScore", average).Msg("Diagnostic session completed")
	return view, nil
}

func (s *diagnosticServiceImpl) GetHistory(learnerID uint) ([]dto.AreaResultDTO, error) {
	results, err := s.areaResultRepo.FindAllByLearner(learnerID)
	if err != nil {
		log.Error().Err(err).Uint("learnerID", learnerID).Msg("GetHistory: failed to load area results")
		return nil, fmt.Errorf("error fetching diagnostic history for learner %d: %w", learnerID, err)
	}
	dtos := make([]dto.AreaResultDTO, len(results))
	for i, r := range results {
		dtos[i] = dto.AreaResultDTO{
			Area:                  string(r.Area),
			ScorePercent:          r.ScorePercent,
			RecommendedDifficulty: r.RecommendedDifficulty,
			CreatedAt:             r.CreatedAt,
		}
	}
	return dtos, nil
}

func (s *diagnosticServiceImpl) sessionView(session *diagnosticSession) *dto.DiagnosticSessionDTO {
	view := &dto.DiagnosticSessionDTO{
		SessionID:     session.id,
		LearnerID:     session.learnerID,
		Complete:      session.complete,
		AreaIndex:     session.areaIndex,
		QuestionIndex: session.questionIndex,
	}
	for _, r := range session.results {
		view.AreaResults = append(view.AreaResults, dto.AreaResultDTO{
			Area:                  string(r.Area),
			ScorePercent:          r.ScorePercent,
			RecommendedDifficulty: r.RecommendedDifficulty,
		})
	}
	if !session.complete {
		q := session.currentQuestion()
		var options []string
		if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
			log.Warn().Err(err).Uint("questionID", q.ID).Msg("Failed to decode question options")
		}
		view.CurrentQuestion = &dto.DiagnosticQuestionDTO{
			ID:      q.ID,
			Area:    string(q.Area),
			Prompt:  q.Prompt,
			Options: options,
		}
	}
	return view
}
