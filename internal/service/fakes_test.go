package service

import (
	"time"

	"github.com/questline/backend/internal/model"
	"gorm.io/gorm"
)

// In-memory repository fakes standing in for the persistence gateway. They
// mirror the gorm-backed behavior the services rely on: uniqueness on the
// composite keys, newest-first result ordering, conflict-safe grants.

type fakeLearnerRepo struct {
	learners map[uint]*model.Learner
	nextID   uint
}

func newFakeLearnerRepo() *fakeLearnerRepo {
	return &fakeLearnerRepo{learners: make(map[uint]*model.Learner)}
}

func (f *fakeLearnerRepo) Create(learner *model.Learner) error {
	f.nextID++
	learner.ID = f.nextID
	stored := *learner
	f.learners[learner.ID] = &stored
	return nil
}

func (f *fakeLearnerRepo) FindByID(id uint) (*model.Learner, error) {
	learner, ok := f.learners[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *learner
	return &found, nil
}

func (f *fakeLearnerRepo) CreditXp(learnerID uint, amount int) (int, error) {
	learner, ok := f.learners[learnerID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	learner.Xp += amount
	return learner.Xp, nil
}

func (f *fakeLearnerRepo) UpdateLevel(learnerID uint, level int) error {
	learner, ok := f.learners[learnerID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	learner.Level = level
	return nil
}

type fakeQuestionRepo struct {
	questions []model.DiagnosticQuestion
	nextID    uint
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{}
}

func (f *fakeQuestionRepo) Create(question *model.DiagnosticQuestion) error {
	f.nextID++
	question.ID = f.nextID
	f.questions = append(f.questions, *question)
	return nil
}

func (f *fakeQuestionRepo) FindByID(id uint) (*model.DiagnosticQuestion, error) {
	for _, q := range f.questions {
		if q.ID == id {
			found := q
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionRepo) FindByArea(area model.Area) ([]model.DiagnosticQuestion, error) {
	var out []model.DiagnosticQuestion
	for _, q := range f.questions {
		if q.Area == area {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) AreasWithQuestions() ([]model.Area, error) {
	present := make(map[model.Area]bool)
	for _, q := range f.questions {
		present[q.Area] = true
	}
	var ordered []model.Area
	for _, a := range model.AllAreas {
		if present[a] {
			ordered = append(ordered, a)
		}
	}
	return ordered, nil
}

type fakeAreaResultRepo struct {
	results []model.AreaResult
	nextID  uint
	appends int
}

func newFakeAreaResultRepo() *fakeAreaResultRepo {
	return &fakeAreaResultRepo{}
}

func (f *fakeAreaResultRepo) Append(result *model.AreaResult) error {
	f.nextID++
	f.appends++
	result.ID = f.nextID
	result.CreatedAt = time.Now().Add(time.Duration(f.nextID) * time.Millisecond)
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeAreaResultRepo) FindAllByLearner(learnerID uint) ([]model.AreaResult, error) {
	var out []model.AreaResult
	for i := len(f.results) - 1; i >= 0; i-- {
		if f.results[i].LearnerID == learnerID {
			out = append(out, f.results[i])
		}
	}
	return out, nil
}

type progressKey struct {
	learnerID uint
	missionID uint
}

type fakeProgressRepo struct {
	records  map[progressKey]*model.ProgressRecord
	missions map[uint]model.Mission
	nextID   uint
}

func newFakeProgressRepo(missions map[uint]model.Mission) *fakeProgressRepo {
	return &fakeProgressRepo{
		records:  make(map[progressKey]*model.ProgressRecord),
		missions: missions,
	}
}

func (f *fakeProgressRepo) FindByLearnerAndMission(learnerID, missionID uint) (*model.ProgressRecord, error) {
	record, ok := f.records[progressKey{learnerID, missionID}]
	if !ok {
		return nil, nil
	}
	found := *record
	return &found, nil
}

func (f *fakeProgressRepo) Create(record *model.ProgressRecord) error {
	f.nextID++
	record.ID = f.nextID
	stored := *record
	f.records[progressKey{record.LearnerID, record.MissionID}] = &stored
	return nil
}

func (f *fakeProgressRepo) Update(record *model.ProgressRecord) error {
	stored := *record
	f.records[progressKey{record.LearnerID, record.MissionID}] = &stored
	return nil
}

func (f *fakeProgressRepo) Upsert(record *model.ProgressRecord) error {
	key := progressKey{record.LearnerID, record.MissionID}
	if existing, ok := f.records[key]; ok {
		record.ID = existing.ID
	} else {
		f.nextID++
		record.ID = f.nextID
	}
	stored := *record
	f.records[key] = &stored
	return nil
}

func (f *fakeProgressRepo) FindAllByLearner(learnerID uint) ([]model.ProgressRecord, error) {
	var out []model.ProgressRecord
	for _, record := range f.records {
		if record.LearnerID != learnerID {
			continue
		}
		hydrated := *record
		hydrated.Mission = f.missions[record.MissionID]
		out = append(out, hydrated)
	}
	return out, nil
}

type fakeMissionRepo struct {
	missions map[uint]model.Mission
	nextID   uint
}

func newFakeMissionRepo() *fakeMissionRepo {
	return &fakeMissionRepo{missions: make(map[uint]model.Mission)}
}

func (f *fakeMissionRepo) Create(mission *model.Mission) error {
	f.nextID++
	mission.ID = f.nextID
	f.missions[mission.ID] = *mission
	return nil
}

func (f *fakeMissionRepo) FindByID(id uint) (*model.Mission, error) {
	mission, ok := f.missions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &mission, nil
}

func (f *fakeMissionRepo) FindByIDWithSteps(id uint) (*model.Mission, error) {
	return f.FindByID(id)
}

func (f *fakeMissionRepo) FindByAreaAndDifficulty(area model.Area, difficulty int) ([]model.Mission, error) {
	var out []model.Mission
	for _, m := range f.missions {
		if m.Area == area && m.Difficulty == difficulty {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMissionRepo) FindAll() ([]model.Mission, error) {
	var out []model.Mission
	for _, m := range f.missions {
		out = append(out, m)
	}
	return out, nil
}

type grantKey struct {
	learnerID     uint
	achievementID uint
}

type fakeAchievementRepo struct {
	achievements []model.Achievement
	grants       map[grantKey]model.AchievementGrant
	nextID       uint
	grantCalls   int
}

func newFakeAchievementRepo() *fakeAchievementRepo {
	return &fakeAchievementRepo{grants: make(map[grantKey]model.AchievementGrant)}
}

func (f *fakeAchievementRepo) Create(achievement *model.Achievement) error {
	f.nextID++
	achievement.ID = f.nextID
	f.achievements = append(f.achievements, *achievement)
	return nil
}

func (f *fakeAchievementRepo) FindAll() ([]model.Achievement, error) {
	out := make([]model.Achievement, len(f.achievements))
	copy(out, f.achievements)
	return out, nil
}

func (f *fakeAchievementRepo) FindGrantsByLearner(learnerID uint) ([]model.AchievementGrant, error) {
	var out []model.AchievementGrant
	for key, grant := range f.grants {
		if key.learnerID != learnerID {
			continue
		}
		for _, a := range f.achievements {
			if a.ID == grant.AchievementID {
				grant.Achievement = a
			}
		}
		out = append(out, grant)
	}
	return out, nil
}

func (f *fakeAchievementRepo) Grant(learnerID, achievementID uint) error {
	f.grantCalls++
	key := grantKey{learnerID, achievementID}
	if _, exists := f.grants[key]; exists {
		return nil // conflict absorbed, like OnConflict DoNothing
	}
	f.grants[key] = model.AchievementGrant{
		LearnerID:     learnerID,
		AchievementID: achievementID,
		EarnedAt:      time.Now(),
	}
	return nil
}

type stubFeedback struct {
	text  string
	err   error
	calls int
}

func (s *stubFeedback) GenerateRecommendation(results []model.AreaResult, averageScore int) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}
