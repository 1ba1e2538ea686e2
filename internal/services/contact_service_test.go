package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/poolcraft/backoffice/internal/models"
	"github.com/poolcraft/backoffice/internal/projectdata"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
)

func TestSubmitSchedulesFollowUp(t *testing.T) {
	contacts := new(mockContactRepo)
	contacts.On("Create", mock.Anything, mock.AnythingOfType("*models.Contact")).Return(nil)
	notifier := new(mockNotifier)
	notifier.On("ContactReceived", mock.Anything, uint(7)).Return(nil).Once()

	svc := NewContactService(contacts, new(mockUserRepo), notifier)
	c, err := svc.Submit(context.Background(), &SubmitContactInput{Name: "Noa", Email: " Noa@Example.com", Message: "Quote please"})
	require.NoError(t, err)
	require.Equal(t, models.ContactNew, c.Status)
	require.Equal(t, "noa@example.com", c.Email)
	notifier.AssertExpectations(t)
}

func TestSubmitSurvivesQueueFailure(t *testing.T) {
	contacts := new(mockContactRepo)
	contacts.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifier := new(mockNotifier)
	notifier.On("ContactReceived", mock.Anything, uint(7)).Return(errors.New("redis down"))

	c, err := NewContactService(contacts, new(mockUserRepo), notifier).Submit(context.Background(), &SubmitContactInput{Name: "Noa", Email: "noa@example.com", Message: "hi"})
	require.NoError(t, err)
	require.Equal(t, uint(7), c.ID)
}

func TestAssignRequiresExistingUser(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, uint(99)).Return(nil, appErr.NotFound("user"))
	contacts := new(mockContactRepo)

	_, err := NewContactService(contacts, users, nil).Assign(context.Background(), 7, 99)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	contacts.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestFollowUpLifecycle(t *testing.T) {
	contacts := new(mockContactRepo)
	contacts.On("MutateNotes", mock.Anything, uint(7)).Return(nil, nil).Once()

	svc := NewContactService(contacts, new(mockUserRepo), nil)
	f, notes, err := svc.AddFollowUp(context.Background(), 7, projectdata.FollowUp{Task: "Call back", DueDate: "2024-06-01"})
	require.NoError(t, err)
	require.Equal(t, projectdata.FollowUpPending, f.Status)
	require.Len(t, notes.FollowUps, 1)

	contacts.On("MutateNotes", mock.Anything, uint(7)).Return(contacts.written, nil)

	_, _, err = svc.CompleteFollowUp(context.Background(), 7, "followup_missing", "")
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	done, _, err := svc.CompleteFollowUp(context.Background(), 7, f.ID, "booked a visit")
	require.NoError(t, err)
	require.Equal(t, projectdata.FollowUpCompleted, done.Status)
	require.Equal(t, "booked a visit", done.Notes)
	require.NotEmpty(t, done.CompletedAt)
}

func TestUpdateQualificationMerges(t *testing.T) {
	budget := 50000.0
	contacts := new(mockContactRepo)
	contacts.On("MutateNotes", mock.Anything, uint(7)).Return(nil, nil)

	notes, err := NewContactService(contacts, new(mockUserRepo), nil).
		UpdateQualification(context.Background(), 7, projectdata.Qualification{Budget: &budget, Timeline: "summer"})
	require.NoError(t, err)
	require.Equal(t, budget, *notes.Qualification.Budget)
	require.Equal(t, "summer", notes.Qualification.Timeline)
}
