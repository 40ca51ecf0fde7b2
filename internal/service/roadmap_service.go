package service

import (
	"context"
	"fmt"
	"time"

	"advisor-api/internal/cache"
	"advisor-api/internal/logger"
	"advisor-api/internal/model"
	"advisor-api/internal/repository"
)

// RoadmapService turns a completed submission's answers into the phased
// recommendation roadmap: score against the decision matrix, resolve
// the retained offerings, compose phase groups. Results are cached but
// never authoritative.
type RoadmapService struct {
	submissionRepo repository.SubmissionRepo
	answerRepo     repository.AnswerRepo
	ruleRepo       repository.RuleRepo
	offeringRepo   repository.OfferingRepo
	catalog        *CatalogService
	roadmapCache   cache.RoadmapCache
	params         ScoreParams
	log            *logger.Logger
}

// NewRoadmapService creates a new roadmap service
func NewRoadmapService(
	submissionRepo repository.SubmissionRepo,
	answerRepo repository.AnswerRepo,
	ruleRepo repository.RuleRepo,
	offeringRepo repository.OfferingRepo,
	catalog *CatalogService,
	roadmapCache cache.RoadmapCache,
	params ScoreParams,
	log *logger.Logger,
) *RoadmapService {
	return &RoadmapService{
		submissionRepo: submissionRepo,
		answerRepo:     answerRepo,
		ruleRepo:       ruleRepo,
		offeringRepo:   offeringRepo,
		catalog:        catalog,
		roadmapCache:   roadmapCache,
		params:         params,
		log:            log,
	}
}

// Get returns the roadmap for a completed submission. The canonical
// weighted mode is cached; the legacy unweighted mode recomputes every
// time.
func (s *RoadmapService) Get(ctx context.Context, submissionID string, legacy bool) (*model.Roadmap, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, fmt.Errorf("%w: submission %s", ErrNotFound, submissionID)
	}
	if submission.Status != model.SubmissionStatusCompleted {
		return nil, fmt.Errorf("%w: submission %s", ErrSubmissionActive, submissionID)
	}

	if !legacy {
		if cached, err := s.roadmapCache.Get(ctx, submissionID); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.log.Warn("roadmap cache read failed", "submissionId", submissionID, "error", err)
		}
	}

	params := s.params
	if legacy {
		params = LegacyScoreParams()
	}

	roadmap, err := s.Generate(ctx, submission, params)
	if err != nil {
		return nil, err
	}

	if !legacy {
		if err := s.roadmapCache.Set(ctx, roadmap); err != nil {
			s.log.Warn("roadmap cache write failed", "submissionId", submissionID, "error", err)
		}
	}
	return roadmap, nil
}

// Invalidate drops the cached roadmap for a submission. The next Get
// recomputes it from stored data.
func (s *RoadmapService) Invalidate(ctx context.Context, submissionID string) error {
	return s.roadmapCache.Invalidate(ctx, submissionID)
}

// Generate recomputes the roadmap from answers, matrix and catalog.
// It is deterministic: answers are taken in canonical flow order, so
// the result does not depend on the order answers were recorded.
func (s *RoadmapService) Generate(ctx context.Context, submission *model.Submission, params ScoreParams) (*model.Roadmap, error) {
	questionnaire, err := s.catalog.GetQuestionnaire(ctx, submission.QuestionnaireID)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.GetBySubmission(ctx, submission.ID)
	if err != nil {
		return nil, err
	}
	ordered := orderAnswers(questionnaire.FlatQuestions(), answers)

	rulePtrs, err := s.ruleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	rules := make([]model.DecisionRule, len(rulePtrs))
	for i, r := range rulePtrs {
		rules[i] = *r
	}

	scores := Score(ordered, rules, params)

	keys := make([]string, len(scores))
	for i, sc := range scores {
		keys[i] = sc.OfferingKey
	}
	offerings, err := s.offeringRepo.GetByKeys(ctx, keys)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*model.Offering, len(offerings))
	for _, o := range offerings {
		byKey[o.Key] = o
	}

	scored := make([]model.ScoredOffering, 0, len(scores))
	for _, sc := range scores {
		offering, ok := byKey[sc.OfferingKey]
		if !ok {
			return nil, fmt.Errorf("%w: matrix references unknown offering %q", ErrIntegrity, sc.OfferingKey)
		}
		scored = append(scored, model.ScoredOffering{Offering: *offering, Score: sc.Score})
	}

	return &model.Roadmap{
		SubmissionID: submission.ID,
		MaxScore:     MaxScore(scored),
		Phases:       Compose(scored),
		GeneratedAt:  time.Now(),
	}, nil
}

// orderAnswers arranges answers in canonical question flow order,
// dropping answers to questions no longer in the catalog.
func orderAnswers(flat []model.Question, answers []*model.Answer) []model.Answer {
	byKey := make(map[string]*model.Answer, len(answers))
	for _, a := range answers {
		byKey[a.QuestionKey] = a
	}
	ordered := make([]model.Answer, 0, len(answers))
	for _, q := range flat {
		if a, ok := byKey[q.Key]; ok {
			ordered = append(ordered, *a)
		}
	}
	return ordered
}
