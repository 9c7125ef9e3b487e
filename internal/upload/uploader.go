package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/ports"
	"github.com/aretw0/qflow/pkg/survey"
)

// Progress receives one step per uploaded block or question.
type Progress interface {
	Start(total int, label string)
	Advance(n int)
	Finish()
}

type nopProgress struct{}

func (nopProgress) Start(int, string) {}
func (nopProgress) Advance(int)       {}
func (nopProgress) Finish()           {}

// Uploader creates surveys on a platform, one call at a time.
type Uploader struct {
	api      ports.SurveyAPI
	linker   ports.Linker
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	progress Progress
	now      func() time.Time
}

// Option configures an Uploader.
type Option func(*Uploader)

// WithLogger sets the logger. Edit and preview links are logged at info.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Uploader) {
		u.logger = logger
	}
}

// WithHooks registers lifecycle hooks, merged after any already set.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(u *Uploader) {
		u.hooks = u.hooks.Merge(hooks)
	}
}

// WithProgress reports progress while uploading.
func WithProgress(p Progress) Option {
	return func(u *Uploader) {
		u.progress = p
	}
}

// WithLinker overrides the link source. By default the API is used when it
// implements ports.Linker.
func WithLinker(l ports.Linker) Option {
	return func(u *Uploader) {
		u.linker = l
	}
}

// New creates an Uploader for api.
func New(api ports.SurveyAPI, opts ...Option) *Uploader {
	u := &Uploader{
		api:      api,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		progress: nopProgress{},
		now:      time.Now,
	}
	if l, ok := api.(ports.Linker); ok {
		u.linker = l
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Uploader) base(t domain.EventType, surveyID string) domain.EventBase {
	return domain.EventBase{Timestamp: u.now(), Type: t, SurveyID: surveyID}
}

// Create uploads s and returns the new survey ID.
//
// The survey is created first, then its options, then every block with its
// questions in order, and finally the flow (flow surveys only). The first
// failing call stops the upload; the partially built survey is left on the
// platform and its ID is returned along with the error.
func (u *Uploader) Create(ctx context.Context, s survey.Survey) (string, error) {
	plan, err := s.Plan()
	if err != nil {
		return "", fmt.Errorf("failed to plan survey: %w", err)
	}
	head := s.Header()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	surveyID, err := u.api.CreateSurvey(ctx, head.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create survey %q: %w", head.Name, err)
	}
	log := u.logger.With("survey_id", surveyID)
	log.Debug("survey created", "name", head.Name)
	if u.hooks.OnSurveyCreated != nil {
		u.hooks.OnSurveyCreated(ctx, &domain.SurveyEvent{EventBase: u.base(domain.EventSurveyCreated, surveyID), Name: head.Name})
	}

	if len(head.Options) > 0 {
		if err := ctx.Err(); err != nil {
			return surveyID, err
		}
		if err := ports.PartialUpdateSurveyOptions(ctx, u.api, surveyID, head.Options); err != nil {
			return surveyID, fmt.Errorf("failed to update options of %s: %w", surveyID, err)
		}
		if u.hooks.OnOptionsUpdated != nil {
			u.hooks.OnOptionsUpdated(ctx, &domain.SurveyEvent{EventBase: u.base(domain.EventOptionsUpdated, surveyID), Name: head.Name})
		}
	}

	u.progress.Start(len(plan.Blocks)+plan.Questions(), head.Name)
	defer u.progress.Finish()

	for i, pb := range plan.Blocks {
		blockID, err := u.createBlock(ctx, surveyID, pb)
		if err != nil {
			return surveyID, fmt.Errorf("block %d: %w", i+1, err)
		}
		if !pb.UseDefault {
			plan.IDs.Set(pb.Block, blockID)
		}
		log.Debug("block uploaded", "block_id", blockID, "questions", len(pb.Block.Questions))
	}

	if plan.Root != nil {
		doc, err := plan.Root.Finalize(plan.IDs)
		if err != nil {
			return surveyID, fmt.Errorf("failed to compile flow: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return surveyID, err
		}
		if err := u.api.UpdateFlow(ctx, surveyID, doc); err != nil {
			return surveyID, fmt.Errorf("failed to update flow of %s: %w", surveyID, err)
		}
		if u.hooks.OnFlowUpdated != nil {
			u.hooks.OnFlowUpdated(ctx, &domain.FlowEvent{EventBase: u.base(domain.EventFlowUpdated, surveyID), Count: doc.Properties.Count})
		}
	}

	if u.linker != nil {
		log.Info("survey uploaded",
			"edit", u.linker.EditURL(surveyID),
			"preview", u.linker.PreviewURL(surveyID),
		)
	} else {
		log.Info("survey uploaded")
	}
	return surveyID, nil
}

// createBlock creates the block (unless it is the default one) and uploads
// its questions. It returns the block ID, empty for the default block.
func (u *Uploader) createBlock(ctx context.Context, surveyID string, pb survey.PlannedBlock) (string, error) {
	var blockID string
	if !pb.UseDefault {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		id, err := u.api.CreateBlock(ctx, surveyID, pb.Block.Description)
		if err != nil {
			return "", fmt.Errorf("failed to create block %q: %w", pb.Block.Description, err)
		}
		blockID = id
		if u.hooks.OnBlockCreated != nil {
			u.hooks.OnBlockCreated(ctx, &domain.BlockEvent{
				EventBase:   u.base(domain.EventBlockCreated, surveyID),
				BlockID:     blockID,
				Description: pb.Block.Description,
				Questions:   len(pb.Block.Questions),
			})
		}
	}
	u.progress.Advance(1)

	for j, q := range pb.Block.Questions {
		if err := ctx.Err(); err != nil {
			return blockID, err
		}
		var qid string
		if q.IsPageBreak() {
			if err := u.api.CreatePageBreak(ctx, surveyID, blockID); err != nil {
				return blockID, fmt.Errorf("failed to create page break %d: %w", j+1, err)
			}
		} else {
			id, err := u.api.CreateQuestion(ctx, surveyID, blockID, q.Data)
			if err != nil {
				return blockID, fmt.Errorf("failed to create question %d (%s): %w", j+1, q.ExportTag(), err)
			}
			qid = id
		}
		if u.hooks.OnQuestionCreated != nil {
			u.hooks.OnQuestionCreated(ctx, &domain.QuestionEvent{
				EventBase:  u.base(domain.EventQuestionCreated, surveyID),
				BlockID:    blockID,
				QuestionID: qid,
				Kind:       q.Type(),
			})
		}
		u.progress.Advance(1)
	}
	return blockID, nil
}
