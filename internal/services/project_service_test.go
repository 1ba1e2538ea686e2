package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/poolcraft/backoffice/internal/models"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
)

func TestCreateProjectDefaultsAndSlug(t *testing.T) {
	repo := new(mockProjectRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Project")).Return(nil)
	c := newMemoryCache()

	svc := NewProjectService(repo, new(mockUpdateRepo), c, time.Minute)
	p, err := svc.CreateProject(context.Background(), 4, &CreateProjectInput{
		Title: "Villa Pool, Herzliya",
		Notes: []byte(`{"milestones":[{"id":"m1","title":"Dig","plannedDate":"2024-05-01","status":"pending"}]}`),
	})
	require.NoError(t, err)
	require.Equal(t, uint(42), p.ID)
	require.Equal(t, models.ProjectPending, p.Status)
	require.Equal(t, "villa-pool-herzliya", *p.Slug)
	require.Equal(t, uint(4), *p.CreatedBy)
	require.NotNil(t, p.Notes)
	require.Nil(t, p.Images)
	require.Equal(t, 1, c.invalidated)
}

func TestCreateProjectRejectsInvalidDocument(t *testing.T) {
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo, new(mockUpdateRepo), nil, 0)

	_, err := svc.CreateProject(context.Background(), 4, &CreateProjectInput{
		Title:  "Pool",
		Images: []byte(`{"gallery":[{"id":"x"}]}`),
	})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateProjectBuildsFieldMap(t *testing.T) {
	repo := new(mockProjectRepo)
	title := "New Title"
	public := false
	repo.On("UpdateFields", mock.Anything, uint(8), mock.MatchedBy(func(f map[string]any) bool {
		slug, ok := f["slug"].(*string)
		return f["title"] == title && ok && *slug == "new-title" && f["is_public"] == false && len(f) == 3
	})).Return(&models.Project{ID: 8, Title: title}, nil)

	svc := NewProjectService(repo, new(mockUpdateRepo), nil, 0)
	p, err := svc.UpdateProject(context.Background(), 8, &UpdateProjectInput{Title: &title, IsPublic: &public})
	require.NoError(t, err)
	require.Equal(t, title, p.Title)
	repo.AssertExpectations(t)
}

func TestGetProjectIncludesUpdates(t *testing.T) {
	repo := new(mockProjectRepo)
	updates := new(mockUpdateRepo)
	repo.On("GetWithCreator", mock.Anything, uint(2)).Return(&models.Project{ID: 2, Title: "x"}, nil)
	updates.On("ListByProject", mock.Anything, uint(2)).Return([]models.ProjectUpdate{{ID: 1, ProjectID: 2, Title: "poured"}}, nil)

	d, err := NewProjectService(repo, updates, nil, 0).GetProject(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, uint(2), d.ID)
	require.Len(t, d.Updates, 1)
}

func TestListPublicUsesCache(t *testing.T) {
	repo := new(mockProjectRepo)
	rows := []models.PublicProject{{ID: 1, Title: "Showcase"}}
	repo.On("ListPublic", mock.Anything, DefaultPublicLimit, true).Return(rows, nil).Once()
	c := newMemoryCache()

	svc := NewProjectService(repo, new(mockUpdateRepo), c, time.Minute)
	first, err := svc.ListPublic(context.Background(), 0, true)
	require.NoError(t, err)
	second, err := svc.ListPublic(context.Background(), 0, true)
	require.NoError(t, err)

	require.Equal(t, rows, first)
	require.Equal(t, rows, second)
	repo.AssertNumberOfCalls(t, "ListPublic", 1)
}

func TestAddUpdateWithStatusInvalidatesCache(t *testing.T) {
	updates := new(mockUpdateRepo)
	updates.On("Create", mock.Anything, mock.MatchedBy(func(u *models.ProjectUpdate) bool {
		return u.ProjectID == 3 && u.Status == models.ProjectCompleted && *u.CreatedBy == 9
	})).Return(nil)
	c := newMemoryCache()

	svc := NewProjectService(new(mockProjectRepo), updates, c, time.Minute)
	_, err := svc.AddUpdate(context.Background(), 3, 9, &ProjectUpdateInput{Title: "Done", Status: models.ProjectCompleted})
	require.NoError(t, err)
	require.Equal(t, 1, c.invalidated)
}
