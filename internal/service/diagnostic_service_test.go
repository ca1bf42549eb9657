package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/questline/backend/internal/dto"
	"github.com/questline/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type diagnosticFixture struct {
	learnerRepo    *fakeLearnerRepo
	questionRepo   *fakeQuestionRepo
	areaResultRepo *fakeAreaResultRepo
	feedback       *stubFeedback
	svc            DiagnosticService
}

// Two areas, two questions each: mathematics (IDs 1, 2) and sciences (IDs 3, 4).
func newDiagnosticFixture(t *testing.T) *diagnosticFixture {
	t.Helper()

	learnerRepo := newFakeLearnerRepo()
	require.NoError(t, learnerRepo.Create(&model.Learner{Name: "Ana", Role: model.RoleStudent}))
	require.NoError(t, learnerRepo.Create(&model.Learner{Name: "Mr. Reis", Role: model.RoleTeacher}))

	questionRepo := newFakeQuestionRepo()
	for i, seed := range []struct {
		area    model.Area
		correct int
	}{
		{model.AreaMathematics, 0},
		{model.AreaMathematics, 1},
		{model.AreaSciences, 0},
		{model.AreaSciences, 2},
	} {
		require.NoError(t, questionRepo.Create(&model.DiagnosticQuestion{
			Area:          seed.area,
			Prompt:        fmt.Sprintf("Question %d", i+1),
			Options:       `["A","B","C"]`,
			CorrectOption: seed.correct,
			Difficulty:    1,
			OrderInArea:   i%2 + 1,
		}))
	}

	areaResultRepo := newFakeAreaResultRepo()
	feedback := &stubFeedback{text: "Start with intermediate missions."}
	svc := NewDiagnosticService(learnerRepo, questionRepo, areaResultRepo, NewScoringService(), feedback)

	return &diagnosticFixture{
		learnerRepo:    learnerRepo,
		questionRepo:   questionRepo,
		areaResultRepo: areaResultRepo,
		feedback:       feedback,
		svc:            svc,
	}
}

func answerAndAdvance(t *testing.T, fx *diagnosticFixture, sessionID string, questionID uint, option int) *dto.DiagnosticSessionDTO {
	t.Helper()
	_, err := fx.svc.SubmitAnswer(sessionID, questionID, option)
	require.NoError(t, err)
	view, err := fx.svc.AdvanceDiagnostic(sessionID)
	require.NoError(t, err)
	return view
}

func TestStartDiagnostic_PositionsAtFirstQuestion(t *testing.T) {
	fx := newDiagnosticFixture(t)

	session, err := fx.svc.StartDiagnostic(1)
	require.NoError(t, err)
	assert.False(t, session.Complete)
	require.NotNil(t, session.CurrentQuestion)
	assert.Equal(t, uint(1), session.CurrentQuestion.ID)
	assert.Equal(t, "mathematics", session.CurrentQuestion.Area)
	assert.Equal(t, []string{"A", "B", "C"}, session.CurrentQuestion.Options)
}

func TestStartDiagnostic_NoQuestionsConfigured(t *testing.T) {
	fx := newDiagnosticFixture(t)
	fx.questionRepo.questions = nil

	_, err := fx.svc.StartDiagnostic(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyArea))
}

// Teachers and managers bypass the whole state machine: the session is born
// complete with zero results and no scoring or feedback is attempted.
func TestStartDiagnostic_NonStudentBypass(t *testing.T) {
	fx := newDiagnosticFixture(t)

	session, err := fx.svc.StartDiagnostic(2)
	require.NoError(t, err)
	assert.True(t, session.Complete)
	assert.Nil(t, session.CurrentQuestion)
	assert.Empty(t, session.AreaResults)
	assert.Equal(t, 0, fx.feedback.calls)
	assert.Equal(t, 0, fx.areaResultRepo.appends)
}

func TestSubmitAnswer_UnknownSession(t *testing.T) {
	fx := newDiagnosticFixture(t)

	_, err := fx.svc.SubmitAnswer("nope", 1, 0)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestSubmitAnswer_WrongQuestion(t *testing.T) {
	fx := newDiagnosticFixture(t)
	session, err := fx.svc.StartDiagnostic(1)
	require.NoError(t, err)

	_, err = fx.svc.SubmitAnswer(session.SessionID, 3, 0)
	assert.True(t, errors.Is(err, ErrNoActiveQuestion))
}

func TestAdvance_WithoutAnswer(t *testing.T) {
	fx := newDiagnosticFixture(t)
	session, err := fx.svc.StartDiagnostic(1)
	require.NoError(t, err)

	_, err = fx.svc.AdvanceDiagnostic(session.SessionID)
	assert.True(t, errors.Is(err, ErrUnansweredQuestion))
}

// Resubmitting before advancing overwrites the earlier choice: a wrong answer
// corrected to the right one scores as correct.
func TestSubmitAnswer_LastWriteWins(t *testing.T) {
	fx := newDiagnosticFixture(t)
	session, err := fx.svc.StartDiagnostic(1)
	require.NoError(t, err)
	id := session.SessionID

	_, err = fx.svc.SubmitAnswer(id, 1, 2) // wrong
	require.NoError(t, err)
	view := answerAndAdvance(t, fx, id, 1, 0) // corrected before advancing
	require.NotNil(t, view.CurrentQuestion)

	view = answerAndAdvance(t, fx, id, 2, 1)
	require.Len(t, view.AreaResults, 1)
	assert.Equal(t, 100, view.AreaResults[0].ScorePercent)
}

func TestDiagnosticRun_FullFlow(t *testing.T) {
	fx := newDiagnosticFixture(t)
	session, err := fx.svc.StartDiagnostic(1)
	require.NoError(t, err)
	id := session.SessionID

	// Mathematics: both correct.
	view := answerAndAdvance(t, fx, id, 1, 0)
	require.NotNil(t, view.CurrentQuestion)
	assert.Equal(t, uint(2), view.CurrentQuestion.ID)
	view = answerAndAdvance(t, fx, id, 2, 1)

	// Area scored, moved to sciences.
	require.Len(t, view.AreaResults, 1)
	assert.Equal(t, "mathematics", view.AreaResults[0].Area)
	assert.Equal(t, 100, view.AreaResults[0].ScorePercent)
	assert.Equal(t, TierAdvanced, view.AreaResults[0].RecommendedDifficulty)
	require.NotNil(t, view.CurrentQuestion)
	assert.Equal(t, "sciences", view.CurrentQuestion.Area)

	// Sciences: one of two correct.
	view = answerAndAdvance(t, fx, id, 3, 0)
	final := answerAndAdvance(t, fx, id, 4, 1)

	assert.True(t, final.Complete)
	require.Len(t, final.AreaResults, 2)
	assert.Equal(t, 50, final.AreaResults[1].ScorePercent)
	assert.Equal(t, TierIntermediate, final.AreaResults[1].RecommendedDifficulty)

	// Overall recommendation: mean of 100 and 50, integer-rounded.
	require.NotNil(t, final.AverageScore)
	assert.Equal(t, 75, *final.AverageScore)
	assert.Equal(t, "Start with intermediate missions.", final.Recommendation)
	assert.Equal(t, 1, fx.feedback.calls)

	// Results persisted individually; session destroyed.
	assert.Equal(t, 2, fx.areaResultRepo.appends)
	_, err = fx.svc.AdvanceDiagnostic(id)
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func runFullDiagnostic(t *testing.T, fx *diagnosticFixture) *dto.DiagnosticSessionDTO {
	t.Helper()
	session, err := fx.svc.StartDiagnostic(1)
	require.NoError(t, err)
	id := session.SessionID
	answerAndAdvance(t, fx, id, 1, 0)
	answerAndAdvance(t, fx, id, 2, 1)
	answerAndAdvance(t, fx, id, 3, 0)
	return answerAndAdvance(t, fx, id, 4, 2)
}

// A failing feedback generator never blocks completion; the deterministic
// fallback for the average's tier is substituted instead.
func TestDiagnosticRun_FeedbackFallback(t *testing.T) {
	fx := newDiagnosticFixture(t)
	fx.feedback.err = errors.New("model unavailable")

	final := runFullDiagnostic(t, fx)

	assert.True(t, final.Complete)
	require.NotNil(t, final.AverageScore)
	assert.Equal(t, FallbackRecommendation(*final.AverageScore), final.Recommendation)
	assert.Equal(t, 2, fx.areaResultRepo.appends, "results persisted despite feedback failure")
}

func TestFallbackRecommendation_Deterministic(t *testing.T) {
	assert.Equal(t, FallbackRecommendation(85), FallbackRecommendation(85))
	assert.NotEqual(t, FallbackRecommendation(20), FallbackRecommendation(60))
	assert.NotEqual(t, FallbackRecommendation(60), FallbackRecommendation(90))
}

// Persisted results read back with identical area, score and tier.
func TestDiagnosticHistory_RoundTrip(t *testing.T) {
	fx := newDiagnosticFixture(t)
	final := runFullDiagnostic(t, fx)

	history, err := fx.svc.GetHistory(1)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// History is newest-first; the run's results are in area order.
	byArea := make(map[string]dto.AreaResultDTO)
	for _, h := range history {
		byArea[h.Area] = h
	}
	for _, want := range final.AreaResults {
		got, ok := byArea[want.Area]
		require.True(t, ok, "missing persisted result for %s", want.Area)
		assert.Equal(t, want.ScorePercent, got.ScorePercent)
		assert.Equal(t, want.RecommendedDifficulty, got.RecommendedDifficulty)
	}
}
