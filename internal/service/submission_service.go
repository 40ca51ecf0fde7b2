package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"advisor-api/internal/cache"
	"advisor-api/internal/logger"
	"advisor-api/internal/model"
	"advisor-api/internal/repository"
)

// SubmissionService runs respondent sessions: start a submission, walk
// the visible question sequence one answer at a time, and hand the
// finished answer set over to the roadmap service. The visible sequence
// is recomputed from scratch on every change; the cursor is session
// state owned here, not by the flow evaluator.
type SubmissionService struct {
	submissionRepo repository.SubmissionRepo
	answerRepo     repository.AnswerRepo
	catalog        *CatalogService
	roadmapSvc     *RoadmapService
	cursorCache    cache.CursorCache
	notifier       Notifier
	log            *logger.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	submissionRepo repository.SubmissionRepo,
	answerRepo repository.AnswerRepo,
	catalog *CatalogService,
	roadmapSvc *RoadmapService,
	cursorCache cache.CursorCache,
	notifier Notifier,
	log *logger.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		answerRepo:     answerRepo,
		catalog:        catalog,
		roadmapSvc:     roadmapSvc,
		cursorCache:    cursorCache,
		notifier:       notifier,
		log:            log,
	}
}

// Progress describes the respondent's position in the live question set
type Progress struct {
	Submission *model.Submission `json:"submission"`
	Question   *model.Question   `json:"question,omitempty"`
	Index      int               `json:"index"`
	Total      int               `json:"total"`
	Answered   bool              `json:"answered"`
	Complete   bool              `json:"complete"`
}

// Start opens a new submission against a questionnaire
func (s *SubmissionService) Start(ctx context.Context, questionnaireID string, respondent model.Respondent) (*Progress, error) {
	if respondent.Email == "" {
		return nil, fmt.Errorf("%w: respondent email is required", ErrInvalidInput)
	}

	questionnaire, err := s.catalog.GetQuestionnaire(ctx, questionnaireID)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		ID:              uuid.NewString(),
		QuestionnaireID: questionnaire.ID,
		Respondent:      respondent,
		Status:          model.SubmissionStatusActive,
		StartedAt:       time.Now(),
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	if err := s.cursorCache.Set(ctx, submission.ID, 0); err != nil {
		s.log.Warn("cursor cache write failed", "submissionId", submission.ID, "error", err)
	}

	state := EvaluateFlow(questionnaire.FlatQuestions(), nil, 0)
	return s.progress(submission, state, nil), nil
}

// Get returns a submission by id
func (s *SubmissionService) Get(ctx context.Context, submissionID string) (*model.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, fmt.Errorf("%w: submission %s", ErrNotFound, submissionID)
	}
	return submission, nil
}

// List returns all submissions, newest first
func (s *SubmissionService) List(ctx context.Context) ([]*model.Submission, error) {
	return s.submissionRepo.List(ctx)
}

// Delete removes a submission and everything hanging off it: its
// answers, its cached cursor and its cached roadmap.
func (s *SubmissionService) Delete(ctx context.Context, submissionID string) error {
	if _, err := s.Get(ctx, submissionID); err != nil {
		return err
	}
	if err := s.answerRepo.DeleteBySubmission(ctx, submissionID); err != nil {
		return err
	}
	if err := s.cursorCache.Delete(ctx, submissionID); err != nil {
		s.log.Warn("cursor cache delete failed", "submissionId", submissionID, "error", err)
	}
	if err := s.roadmapSvc.Invalidate(ctx, submissionID); err != nil {
		s.log.Warn("roadmap cache invalidation failed", "submissionId", submissionID, "error", err)
	}
	return s.submissionRepo.Delete(ctx, submissionID)
}

// Current returns the respondent's current question and progress
func (s *SubmissionService) Current(ctx context.Context, submissionID string) (*Progress, error) {
	submission, err := s.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	state, answers, err := s.flowState(ctx, submission)
	if err != nil {
		return nil, err
	}
	return s.progress(submission, state, answers), nil
}

// SubmitAnswer records one answer for the submission, replacing any
// prior value for the same question, then recomputes the visible
// sequence and clamps the cursor against it.
func (s *SubmissionService) SubmitAnswer(ctx context.Context, submissionID, questionKey string, value model.AnswerValue) (*Progress, error) {
	submission, err := s.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status == model.SubmissionStatusCompleted {
		return nil, fmt.Errorf("%w: %s", ErrSubmissionCompleted, submissionID)
	}

	questionnaire, err := s.catalog.GetQuestionnaire(ctx, submission.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	question, ok := questionnaire.QuestionByKey(questionKey)
	if !ok {
		return nil, fmt.Errorf("%w: unknown question %q", ErrInvalidInput, questionKey)
	}
	if err := model.ValidateAnswer(question, value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	answer := &model.Answer{
		SubmissionID: submissionID,
		QuestionKey:  questionKey,
		Value:        value,
		AnsweredAt:   time.Now(),
	}
	if err := s.answerRepo.Upsert(ctx, answer); err != nil {
		return nil, err
	}

	state, answers, err := s.flowState(ctx, submission)
	if err != nil {
		return nil, err
	}
	if err := s.cursorCache.Set(ctx, submissionID, state.Cursor); err != nil {
		s.log.Warn("cursor cache write failed", "submissionId", submissionID, "error", err)
	}
	return s.progress(submission, state, answers), nil
}

// Advance moves past the current question. Advancing is only permitted
// when the current question is answered; advancing from the last
// visible question completes the submission, computes the roadmap and
// fires the notification off the critical path.
func (s *SubmissionService) Advance(ctx context.Context, submissionID string) (*Progress, error) {
	submission, err := s.Get(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status == model.SubmissionStatusCompleted {
		return nil, fmt.Errorf("%w: %s", ErrSubmissionCompleted, submissionID)
	}

	state, answers, err := s.flowState(ctx, submission)
	if err != nil {
		return nil, err
	}

	if state.Cursor >= 0 {
		current := state.Visible[state.Cursor]
		if !IsAnswered(current, answers) {
			return nil, fmt.Errorf("%w: %s", ErrUnanswered, current.Key)
		}
	}

	if state.AtEnd {
		return s.complete(ctx, submission, state, answers)
	}

	state.Cursor++
	state.AtEnd = state.Cursor == len(state.Visible)-1
	if err := s.cursorCache.Set(ctx, submissionID, state.Cursor); err != nil {
		s.log.Warn("cursor cache write failed", "submissionId", submissionID, "error", err)
	}
	return s.progress(submission, state, answers), nil
}

func (s *SubmissionService) complete(ctx context.Context, submission *model.Submission, state FlowState, answers map[string]model.AnswerValue) (*Progress, error) {
	now := time.Now()
	if err := s.submissionRepo.Complete(ctx, submission.ID, now); err != nil {
		return nil, err
	}
	submission.Status = model.SubmissionStatusCompleted
	submission.CompletedAt = &now

	if err := s.cursorCache.Delete(ctx, submission.ID); err != nil {
		s.log.Warn("cursor cache delete failed", "submissionId", submission.ID, "error", err)
	}

	roadmap, err := s.roadmapSvc.Get(ctx, submission.ID, false)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: notification failure never fails or delays the
	// returned roadmap.
	go func(sub model.Submission, rm model.Roadmap) {
		notifyCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.notifier.RoadmapReady(notifyCtx, &sub, &rm); err != nil {
			s.log.Warn("roadmap notification failed", "submissionId", sub.ID, "error", err)
		}
	}(*submission, *roadmap)

	progress := s.progress(submission, state, answers)
	progress.Complete = true
	return progress, nil
}

// flowState rebuilds the live question set and the clamped cursor for a
// submission. A lost cursor falls back to the first unanswered visible
// question.
func (s *SubmissionService) flowState(ctx context.Context, submission *model.Submission) (FlowState, map[string]model.AnswerValue, error) {
	questionnaire, err := s.catalog.GetQuestionnaire(ctx, submission.QuestionnaireID)
	if err != nil {
		return FlowState{}, nil, err
	}

	answerRows, err := s.answerRepo.GetBySubmission(ctx, submission.ID)
	if err != nil {
		return FlowState{}, nil, err
	}
	answers := model.AnswerMap(answerRows)

	flat := questionnaire.FlatQuestions()
	cursor, found, err := s.cursorCache.Get(ctx, submission.ID)
	if err != nil {
		s.log.Warn("cursor cache read failed", "submissionId", submission.ID, "error", err)
		found = false
	}
	if !found {
		visible := VisibleQuestions(flat, answers)
		cursor = ClampCursor(FirstUnanswered(visible, answers), len(visible))
	}

	return EvaluateFlow(flat, answers, cursor), answers, nil
}

func (s *SubmissionService) progress(submission *model.Submission, state FlowState, answers map[string]model.AnswerValue) *Progress {
	p := &Progress{
		Submission: submission,
		Index:      state.Cursor,
		Total:      len(state.Visible),
		Complete:   submission.Status == model.SubmissionStatusCompleted,
	}
	if state.Cursor >= 0 && state.Cursor < len(state.Visible) {
		q := state.Visible[state.Cursor]
		p.Question = &q
		p.Answered = IsAnswered(q, answers)
	}
	return p
}
