package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/poolcraft/backoffice/internal/projectdata"
	"github.com/poolcraft/backoffice/internal/repository"
	"github.com/poolcraft/backoffice/internal/services"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/poolcraft/backoffice/pkg/logger"
)

const (
	TypeContactReceived = "contact:received"

	// InitialFollowUpTask is the follow-up added to every new inquiry.
	InitialFollowUpTask = "Respond to inquiry"
)

// ContactPayload is the task payload for contact tasks.
type ContactPayload struct {
	ContactID uint `json:"contact_id"`
}

func NewContactReceivedTask(contactID uint) (*asynq.Task, error) {
	b, err := json.Marshal(ContactPayload{ContactID: contactID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeContactReceived, b, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}

// Enqueuer schedules contact tasks on an asynq client.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

var _ services.ContactNotifier = (*Enqueuer)(nil)

func (e *Enqueuer) ContactReceived(ctx context.Context, contactID uint) error {
	task, err := NewContactReceivedTask(contactID)
	if err != nil {
		return err
	}
	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", TypeContactReceived, err)
	}
	logger.FromContext(ctx).Debug("task enqueued", zap.String("type", TypeContactReceived), zap.String("task_id", info.ID), zap.Uint("contact_id", contactID))
	return nil
}

// ContactTaskHandler processes contact tasks in the worker.
type ContactTaskHandler struct {
	contactRepo repository.ContactRepository
	now         func() time.Time
}

func NewContactTaskHandler(contactRepo repository.ContactRepository) *ContactTaskHandler {
	return &ContactTaskHandler{contactRepo: contactRepo, now: time.Now}
}

// HandleContactReceived adds the initial follow-up, due the next day, to the
// contact's notes. A contact that already has it is left alone so retries
// do not duplicate the entry.
func (h *ContactTaskHandler) HandleContactReceived(ctx context.Context, t *asynq.Task) error {
	var p ContactPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		logger.L().Error("invalid contact task payload", zap.Error(err))
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	logger.L().Info("handling contact received task", zap.Uint("contact_id", p.ContactID))

	due := h.now().AddDate(0, 0, 1).UTC().Format(time.DateOnly)
	_, err := h.contactRepo.MutateNotes(ctx, p.ContactID, func(current datatypes.JSON) (datatypes.JSON, error) {
		notes, err := projectdata.DecodeContactNotes(current)
		if err != nil {
			return nil, err
		}
		if notes != nil {
			for _, f := range notes.FollowUps {
				if f.Task == InitialFollowUpTask {
					return current, nil
				}
			}
		}
		next := projectdata.AddFollowUp(notes, projectdata.FollowUp{
			ID:        projectdata.NewFollowUpID(),
			Task:      InitialFollowUpTask,
			DueDate:   due,
			Status:    projectdata.FollowUpPending,
			CreatedAt: projectdata.Now(),
		})
		return projectdata.EncodeContactNotes(next)
	})
	if err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			logger.L().Warn("contact vanished before follow-up was scheduled", zap.Uint("contact_id", p.ContactID))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		logger.L().Error("schedule follow-up failed", zap.Uint("contact_id", p.ContactID), zap.Error(err))
		return err
	}

	logger.L().Info("initial follow-up scheduled", zap.Uint("contact_id", p.ContactID), zap.String("due", due))
	return nil
}
