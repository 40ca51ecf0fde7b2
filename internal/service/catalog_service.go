package service

import (
	"context"
	"fmt"

	"advisor-api/internal/cache"
	"advisor-api/internal/logger"
	"advisor-api/internal/model"
	"advisor-api/internal/repository"
)

// CatalogService handles the administrator-owned configuration data:
// questionnaires, offerings and the decision matrix. Integrity rules
// are enforced here at write time so respondent sessions never see a
// broken catalog.
type CatalogService struct {
	questionnaireRepo  repository.QuestionnaireRepo
	ruleRepo           repository.RuleRepo
	offeringRepo       repository.OfferingRepo
	questionnaireCache cache.QuestionnaireCache
	log                *logger.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	questionnaireRepo repository.QuestionnaireRepo,
	ruleRepo repository.RuleRepo,
	offeringRepo repository.OfferingRepo,
	questionnaireCache cache.QuestionnaireCache,
	log *logger.Logger,
) *CatalogService {
	return &CatalogService{
		questionnaireRepo:  questionnaireRepo,
		ruleRepo:           ruleRepo,
		offeringRepo:       offeringRepo,
		questionnaireCache: questionnaireCache,
		log:                log,
	}
}

// CreateQuestionnaire validates and stores a new questionnaire
func (s *CatalogService) CreateQuestionnaire(ctx context.Context, q *model.Questionnaire) (string, error) {
	if err := q.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	return s.questionnaireRepo.Create(ctx, q)
}

// GetQuestionnaire retrieves a questionnaire, cache-aside
func (s *CatalogService) GetQuestionnaire(ctx context.Context, id string) (*model.Questionnaire, error) {
	if cached, err := s.questionnaireCache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.log.Warn("questionnaire cache read failed", "id", id, "error", err)
	}

	q, err := s.questionnaireRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: questionnaire %s", ErrNotFound, id)
	}

	if err := s.questionnaireCache.Set(ctx, q); err != nil {
		s.log.Warn("questionnaire cache write failed", "id", id, "error", err)
	}
	return q, nil
}

// ListQuestionnaires lists all questionnaires
func (s *CatalogService) ListQuestionnaires(ctx context.Context) ([]*model.Questionnaire, error) {
	return s.questionnaireRepo.List(ctx)
}

// UpdateQuestionnaire validates, stores and invalidates the cached copy.
// Matrix rows referencing questions the update removed are pruned, so a
// questionnaire edit never leaves rules dangling.
func (s *CatalogService) UpdateQuestionnaire(ctx context.Context, q *model.Questionnaire) error {
	if err := q.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	existing, err := s.questionnaireRepo.GetByID(ctx, q.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: questionnaire %s", ErrNotFound, q.ID)
	}

	kept := map[string]bool{}
	for _, question := range q.FlatQuestions() {
		kept[question.Key] = true
	}
	for _, question := range existing.FlatQuestions() {
		if kept[question.Key] {
			continue
		}
		if err := s.ruleRepo.DeleteByQuestion(ctx, question.Key); err != nil {
			return err
		}
		s.log.Info("pruned matrix rows for removed question", "questionnaireId", q.ID, "questionKey", question.Key)
	}

	if err := s.questionnaireRepo.Update(ctx, q); err != nil {
		return err
	}
	if err := s.questionnaireCache.Invalidate(ctx, q.ID); err != nil {
		s.log.Warn("questionnaire cache invalidation failed", "id", q.ID, "error", err)
	}
	return nil
}

// DeleteQuestionnaire removes a questionnaire and its cached copy
func (s *CatalogService) DeleteQuestionnaire(ctx context.Context, id string) error {
	if err := s.questionnaireRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.questionnaireCache.Invalidate(ctx, id); err != nil {
		s.log.Warn("questionnaire cache invalidation failed", "id", id, "error", err)
	}
	return nil
}

// CreateOffering validates and stores an offering
func (s *CatalogService) CreateOffering(ctx context.Context, offering *model.Offering) error {
	if err := offering.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	existing, err := s.offeringRepo.GetByKey(ctx, offering.Key)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: offering %q already exists", ErrIntegrity, offering.Key)
	}
	return s.offeringRepo.Create(ctx, offering)
}

// GetOffering retrieves one offering by key
func (s *CatalogService) GetOffering(ctx context.Context, key string) (*model.Offering, error) {
	offering, err := s.offeringRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if offering == nil {
		return nil, fmt.Errorf("%w: offering %s", ErrNotFound, key)
	}
	return offering, nil
}

// ListOfferings lists the whole catalog
func (s *CatalogService) ListOfferings(ctx context.Context) ([]*model.Offering, error) {
	return s.offeringRepo.List(ctx)
}

// UpdateOffering validates and stores an offering
func (s *CatalogService) UpdateOffering(ctx context.Context, offering *model.Offering) error {
	if err := offering.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrIntegrity, err)
	}
	existing, err := s.offeringRepo.GetByKey(ctx, offering.Key)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%w: offering %s", ErrNotFound, offering.Key)
	}
	return s.offeringRepo.Update(ctx, offering)
}

// DeleteOffering removes an offering together with the matrix rows
// pointing at it, so no rule is left dangling.
func (s *CatalogService) DeleteOffering(ctx context.Context, key string) error {
	if err := s.ruleRepo.DeleteByOffering(ctx, key); err != nil {
		return err
	}
	return s.offeringRepo.Delete(ctx, key)
}

// CreateRule validates a decision rule against the questionnaire and
// the offering catalog before storing it. A rule referencing an unknown
// question or offering, a value outside the question's options, a
// weight below 1 or a duplicate (question, value, offering) triple is a
// data-integrity fault.
func (s *CatalogService) CreateRule(ctx context.Context, questionnaireID string, rule *model.DecisionRule) (string, error) {
	if rule.Weight < 1 {
		return "", fmt.Errorf("%w: rule weight must be >= 1, got %d", ErrIntegrity, rule.Weight)
	}

	q, err := s.GetQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return "", err
	}
	question, ok := q.QuestionByKey(rule.QuestionKey)
	if !ok {
		return "", fmt.Errorf("%w: rule references unknown question %q", ErrIntegrity, rule.QuestionKey)
	}
	if !question.HasOption(rule.AnswerValue) {
		return "", fmt.Errorf("%w: %q is not an option of question %q", ErrIntegrity, rule.AnswerValue, rule.QuestionKey)
	}

	offering, err := s.offeringRepo.GetByKey(ctx, rule.OfferingKey)
	if err != nil {
		return "", err
	}
	if offering == nil {
		return "", fmt.Errorf("%w: rule references unknown offering %q", ErrIntegrity, rule.OfferingKey)
	}

	exists, err := s.ruleRepo.Exists(ctx, rule.QuestionKey, rule.AnswerValue, rule.OfferingKey)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: duplicate rule (%s, %s, %s)", ErrIntegrity, rule.QuestionKey, rule.AnswerValue, rule.OfferingKey)
	}

	return s.ruleRepo.Create(ctx, rule)
}

// ListRules returns the full decision matrix
func (s *CatalogService) ListRules(ctx context.Context) ([]*model.DecisionRule, error) {
	return s.ruleRepo.List(ctx)
}

// FindRules returns the matrix rows matching one (question, value) pair
func (s *CatalogService) FindRules(ctx context.Context, questionKey, answerValue string) ([]*model.DecisionRule, error) {
	return s.ruleRepo.Find(ctx, questionKey, answerValue)
}

// DeleteRule removes one matrix row
func (s *CatalogService) DeleteRule(ctx context.Context, id string) error {
	return s.ruleRepo.Delete(ctx, id)
}

// ValidateMatrix re-checks the stored matrix against the questionnaire
// and the offering catalog. Run at load time; stored data can rot when
// edited out of band.
func (s *CatalogService) ValidateMatrix(ctx context.Context, questionnaireID string) error {
	q, err := s.GetQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return err
	}
	rules, err := s.ruleRepo.List(ctx)
	if err != nil {
		return err
	}
	offerings, err := s.offeringRepo.List(ctx)
	if err != nil {
		return err
	}

	offeringKeys := make(map[string]bool, len(offerings))
	for _, o := range offerings {
		offeringKeys[o.Key] = true
	}

	seen := map[string]bool{}
	for _, rule := range rules {
		if rule.Weight < 1 {
			return fmt.Errorf("%w: rule %s has weight %d", ErrIntegrity, rule.ID, rule.Weight)
		}
		if _, ok := q.QuestionByKey(rule.QuestionKey); !ok {
			return fmt.Errorf("%w: rule %s references unknown question %q", ErrIntegrity, rule.ID, rule.QuestionKey)
		}
		if !offeringKeys[rule.OfferingKey] {
			return fmt.Errorf("%w: rule %s references unknown offering %q", ErrIntegrity, rule.ID, rule.OfferingKey)
		}
		triple := rule.TripleKey()
		if seen[triple] {
			return fmt.Errorf("%w: duplicate rule (%s, %s, %s)", ErrIntegrity, rule.QuestionKey, rule.AnswerValue, rule.OfferingKey)
		}
		seen[triple] = true
	}
	return nil
}
