package services

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/poolcraft/backoffice/internal/models"
	"github.com/poolcraft/backoffice/internal/projectdata"
	"github.com/poolcraft/backoffice/internal/repository"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/poolcraft/backoffice/pkg/logger"
	"github.com/poolcraft/backoffice/pkg/metrics"
)

// ContactNotifier hands a freshly submitted contact to background processing.
type ContactNotifier interface {
	ContactReceived(ctx context.Context, contactID uint) error
}

type ContactService interface {
	Submit(ctx context.Context, input *SubmitContactInput) (*models.Contact, error)
	List(ctx context.Context, filter repository.ContactFilter) ([]models.Contact, int64, error)
	Get(ctx context.Context, contactID uint) (*models.Contact, error)
	Update(ctx context.Context, contactID uint, input *UpdateContactInput) (*models.Contact, error)
	Delete(ctx context.Context, contactID uint) error
	Assign(ctx context.Context, contactID, userID uint) (*models.Contact, error)

	AddCommunication(ctx context.Context, contactID, userID uint, entry projectdata.ContactCommunication) (*projectdata.ContactCommunication, *projectdata.ContactNotes, error)
	AddFollowUp(ctx context.Context, contactID uint, f projectdata.FollowUp) (*projectdata.FollowUp, *projectdata.ContactNotes, error)
	CompleteFollowUp(ctx context.Context, contactID uint, followUpID, remark string) (*projectdata.FollowUp, *projectdata.ContactNotes, error)
	UpdateQualification(ctx context.Context, contactID uint, q projectdata.Qualification) (*projectdata.ContactNotes, error)
}

type SubmitContactInput struct {
	Name     string
	Email    string
	Phone    string
	PoolType string
	Message  string
}

type UpdateContactInput struct {
	Status     *string
	AssignedTo *uint
	Notes      []byte
}

type contactService struct {
	contactRepo repository.ContactRepository
	userRepo    repository.UserRepository
	notifier    ContactNotifier
}

// NewContactService builds the contact service. notifier may be nil, in which
// case no background work is scheduled.
func NewContactService(contactRepo repository.ContactRepository, userRepo repository.UserRepository, notifier ContactNotifier) ContactService {
	return &contactService{contactRepo: contactRepo, userRepo: userRepo, notifier: notifier}
}

var _ ContactService = (*contactService)(nil)

func (s *contactService) Submit(ctx context.Context, in *SubmitContactInput) (*models.Contact, error) {
	log := logger.FromContext(ctx)

	c := &models.Contact{
		Name:     in.Name,
		Email:    models.NormalizeEmail(in.Email),
		Phone:    in.Phone,
		PoolType: in.PoolType,
		Message:  in.Message,
		Status:   models.ContactNew,
	}
	if err := s.contactRepo.Create(ctx, c); err != nil {
		log.Error("store contact failed", zap.Error(err))
		return nil, err
	}
	metrics.ContactSubmissions.Inc()
	log.Info("contact submitted", zap.Uint("contact_id", c.ID))

	if s.notifier != nil {
		if err := s.notifier.ContactReceived(ctx, c.ID); err != nil {
			log.Warn("schedule contact follow-up failed", zap.Uint("contact_id", c.ID), zap.Error(err))
		}
	}
	return c, nil
}

func (s *contactService) List(ctx context.Context, filter repository.ContactFilter) ([]models.Contact, int64, error) {
	return s.contactRepo.List(ctx, filter)
}

func (s *contactService) Get(ctx context.Context, contactID uint) (*models.Contact, error) {
	return s.contactRepo.GetWithAssignee(ctx, contactID)
}

func (s *contactService) Update(ctx context.Context, contactID uint, in *UpdateContactInput) (*models.Contact, error) {
	fields := map[string]any{}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.AssignedTo != nil {
		if err := s.ensureUser(ctx, *in.AssignedTo); err != nil {
			return nil, err
		}
		fields["assigned_to"] = *in.AssignedTo
	}
	if len(in.Notes) > 0 {
		notes, err := projectdata.ValidateContactNotes(in.Notes)
		if err != nil {
			return nil, err
		}
		b, err := projectdata.EncodeContactNotes(notes)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "encode contact notes failed")
		}
		fields["notes"] = datatypes.JSON(b)
	}
	if len(fields) == 0 {
		return s.contactRepo.GetWithAssignee(ctx, contactID)
	}

	c, err := s.contactRepo.UpdateFields(ctx, contactID, fields)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("contact updated", zap.Uint("contact_id", contactID), zap.Int("fields", len(fields)))
	return c, nil
}

func (s *contactService) Delete(ctx context.Context, contactID uint) error {
	if err := s.contactRepo.Delete(ctx, contactID); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("contact deleted", zap.Uint("contact_id", contactID))
	return nil
}

func (s *contactService) Assign(ctx context.Context, contactID, userID uint) (*models.Contact, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	c, err := s.contactRepo.UpdateFields(ctx, contactID, map[string]any{"assigned_to": userID})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("contact assigned", zap.Uint("contact_id", contactID), zap.Uint("user_id", userID))
	return c, nil
}

func (s *contactService) ensureUser(ctx context.Context, userID uint) error {
	var u models.User
	if err := s.userRepo.GetByID(ctx, userID, &u); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return appErr.Invalid("assigned user does not exist")
		}
		return err
	}
	return nil
}

func (s *contactService) mutateNotes(ctx context.Context, contactID uint, op string, fn func(*projectdata.ContactNotes) (*projectdata.ContactNotes, error)) (*projectdata.ContactNotes, error) {
	var result *projectdata.ContactNotes
	_, err := s.contactRepo.MutateNotes(ctx, contactID, func(current datatypes.JSON) (datatypes.JSON, error) {
		notes, err := projectdata.DecodeContactNotes(current)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "stored contact notes are malformed")
		}
		next, err := fn(notes)
		if err != nil {
			return nil, err
		}
		b, err := projectdata.EncodeContactNotes(next)
		if err != nil {
			return nil, appErr.Wrap(err, appErr.CodeInternal, "encode contact notes failed")
		}
		result = next
		return datatypes.JSON(b), nil
	})
	if err != nil {
		return nil, err
	}
	metrics.RecordDocumentMutation("contact_notes", op)
	logger.FromContext(ctx).Info("contact notes mutated", zap.Uint("contact_id", contactID), zap.String("operation", op))
	return result, nil
}

func (s *contactService) AddCommunication(ctx context.Context, contactID, userID uint, entry projectdata.ContactCommunication) (*projectdata.ContactCommunication, *projectdata.ContactNotes, error) {
	entry.ID = projectdata.NewCommunicationID()
	entry.CreatedAt = projectdata.Now()
	entry.CreatedBy = userID
	if err := projectdata.ValidateStruct(&entry); err != nil {
		return nil, nil, err
	}
	notes, err := s.mutateNotes(ctx, contactID, "add_communication", func(cur *projectdata.ContactNotes) (*projectdata.ContactNotes, error) {
		return projectdata.AddContactCommunication(cur, entry), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &entry, notes, nil
}

func (s *contactService) AddFollowUp(ctx context.Context, contactID uint, f projectdata.FollowUp) (*projectdata.FollowUp, *projectdata.ContactNotes, error) {
	f.ID = projectdata.NewFollowUpID()
	f.Status = projectdata.FollowUpPending
	f.CreatedAt = projectdata.Now()
	f.CompletedAt = ""
	if err := projectdata.ValidateStruct(&f); err != nil {
		return nil, nil, err
	}
	if _, ok := projectdata.ParseDate(f.DueDate); !ok {
		return nil, nil, appErr.Invalid("dueDate must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	}
	notes, err := s.mutateNotes(ctx, contactID, "add_follow_up", func(cur *projectdata.ContactNotes) (*projectdata.ContactNotes, error) {
		return projectdata.AddFollowUp(cur, f), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &f, notes, nil
}

func (s *contactService) CompleteFollowUp(ctx context.Context, contactID uint, followUpID, remark string) (*projectdata.FollowUp, *projectdata.ContactNotes, error) {
	notes, err := s.mutateNotes(ctx, contactID, "complete_follow_up", func(cur *projectdata.ContactNotes) (*projectdata.ContactNotes, error) {
		if _, ok := projectdata.FindFollowUp(cur, followUpID); !ok {
			return nil, appErr.NotFound("follow-up")
		}
		return projectdata.CompleteFollowUp(cur, followUpID, remark), nil
	})
	if err != nil {
		return nil, nil, err
	}
	f, _ := projectdata.FindFollowUp(notes, followUpID)
	return &f, notes, nil
}

func (s *contactService) UpdateQualification(ctx context.Context, contactID uint, q projectdata.Qualification) (*projectdata.ContactNotes, error) {
	if err := projectdata.ValidateStruct(&q); err != nil {
		return nil, err
	}
	return s.mutateNotes(ctx, contactID, "update_qualification", func(cur *projectdata.ContactNotes) (*projectdata.ContactNotes, error) {
		return projectdata.UpdateQualification(cur, q), nil
	})
}
