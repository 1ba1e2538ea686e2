package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/poolcraft/backoffice/internal/models"
	"github.com/poolcraft/backoffice/internal/projectdata"
	"github.com/poolcraft/backoffice/internal/repository"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
)

func mustJSON(t *testing.T, v any) datatypes.JSON {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func storedNotes(t *testing.T, repo *mockProjectRepo) *projectdata.Notes {
	t.Helper()
	n, err := projectdata.DecodeNotes(repo.written[models.ColumnNotes])
	require.NoError(t, err)
	return n
}

func TestAddMilestoneAppendsToExistingNotes(t *testing.T) {
	existing := projectdata.Notes{Milestones: []projectdata.Milestone{
		{ID: "milestone_a", Title: "Excavation", PlannedDate: "2024-03-01", Status: projectdata.MilestoneCompleted},
	}}
	repo := new(mockProjectRepo)
	repo.On("MutateDocument", mock.Anything, uint(9), models.ColumnNotes).Return(mustJSON(t, existing), nil)

	svc := NewProjectDocumentService(repo, nil)
	m, notes, err := svc.AddMilestone(context.Background(), 9, 2, projectdata.Milestone{Title: "Plumbing", PlannedDate: "2024-04-01"})
	require.NoError(t, err)

	require.NotEmpty(t, m.ID)
	require.Equal(t, projectdata.MilestonePending, m.Status)
	require.Equal(t, "medium", m.Priority)
	require.Equal(t, uint(2), m.CreatedBy)
	require.Len(t, notes.Milestones, 2)
	require.Equal(t, notes, storedNotes(t, repo))
}

func TestAddMilestoneRejectsBadDate(t *testing.T) {
	repo := new(mockProjectRepo)
	svc := NewProjectDocumentService(repo, nil)

	_, _, err := svc.AddMilestone(context.Background(), 9, 2, projectdata.Milestone{Title: "Tiles", PlannedDate: "next week"})
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	repo.AssertNotCalled(t, "MutateDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMilestoneStatusUnknownIDIsNotFound(t *testing.T) {
	existing := projectdata.Notes{Milestones: []projectdata.Milestone{
		{ID: "milestone_a", Title: "Excavation", PlannedDate: "2024-03-01", Status: projectdata.MilestonePending},
	}}
	repo := new(mockProjectRepo)
	repo.On("MutateDocument", mock.Anything, uint(9), models.ColumnNotes).Return(mustJSON(t, existing), nil)

	svc := NewProjectDocumentService(repo, nil)
	_, _, err := svc.UpdateMilestoneStatus(context.Background(), 9, "milestone_missing", projectdata.MilestoneCompleted, "")
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	require.Nil(t, repo.written)

	m, notes, err := svc.UpdateMilestoneStatus(context.Background(), 9, "milestone_a", projectdata.MilestoneCompleted, "2024-03-02")
	require.NoError(t, err)
	require.Equal(t, projectdata.MilestoneCompleted, m.Status)
	require.Equal(t, "2024-03-02", m.ActualDate)
	require.Equal(t, 100, projectdata.ProgressPercentage(notes))
}

func TestUpdateMilestoneStatusRejectsUnknownStatus(t *testing.T) {
	svc := NewProjectDocumentService(new(mockProjectRepo), nil)
	_, _, err := svc.UpdateMilestoneStatus(context.Background(), 9, "milestone_a", "done", "")
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestResolveIssue(t *testing.T) {
	existing := projectdata.Notes{Issues: []projectdata.Issue{
		{ID: "issue_a", Title: "Crack", Severity: projectdata.SeverityHigh, Status: projectdata.IssueOpen},
	}}
	repo := new(mockProjectRepo)
	repo.On("MutateDocument", mock.Anything, uint(4), models.ColumnNotes).Return(mustJSON(t, existing), nil)

	svc := NewProjectDocumentService(repo, nil)
	issue, notes, err := svc.ResolveIssue(context.Background(), 4, "issue_a", "patched", 8)
	require.NoError(t, err)
	require.Equal(t, projectdata.IssueResolved, issue.Status)
	require.Equal(t, "patched", issue.Resolution)
	require.NotEmpty(t, issue.ResolvedAt)
	require.Equal(t, uint(8), *issue.ResolvedBy)
	require.Zero(t, projectdata.ActiveIssuesCount(notes))
}

func TestAddIssueDefaults(t *testing.T) {
	repo := new(mockProjectRepo)
	repo.On("MutateDocument", mock.Anything, uint(4), models.ColumnNotes).Return(datatypes.JSON(nil), nil)

	svc := NewProjectDocumentService(repo, nil)
	issue, notes, err := svc.AddIssue(context.Background(), 4, 8, projectdata.Issue{Title: "Leak"})
	require.NoError(t, err)
	require.Equal(t, projectdata.SeverityMedium, issue.Severity)
	require.Equal(t, projectdata.IssueOpen, issue.Status)
	require.Equal(t, "general", issue.Category)
	require.Equal(t, 1, projectdata.ActiveIssuesCount(notes))
}

func TestRemoveLastGalleryImageStoresNull(t *testing.T) {
	existing := projectdata.Images{Gallery: []projectdata.GalleryImage{{ID: "img_1", URL: "/a.jpg"}}}
	repo := new(mockProjectRepo)
	repo.On("MutateDocument", mock.Anything, uint(1), models.ColumnImages).Return(mustJSON(t, existing), nil)
	c := newMemoryCache()

	svc := NewProjectDocumentService(repo, c)
	images, err := svc.RemoveGalleryImage(context.Background(), 1, "img_1")
	require.NoError(t, err)
	require.Nil(t, images)
	require.Nil(t, repo.written[models.ColumnImages])
	require.Equal(t, 1, c.invalidated)
}

func TestRemoveGalleryImageNotFound(t *testing.T) {
	repo := new(mockProjectRepo)
	repo.On("MutateDocument", mock.Anything, uint(1), models.ColumnImages).Return(datatypes.JSON(nil), nil)

	svc := NewProjectDocumentService(repo, nil)
	_, err := svc.RemoveGalleryImage(context.Background(), 1, "img_1")
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestAddGalleryImageDefaultsCategory(t *testing.T) {
	repo := new(mockProjectRepo)
	repo.On("MutateDocument", mock.Anything, uint(1), models.ColumnImages).Return(datatypes.JSON(nil), nil)

	svc := NewProjectDocumentService(repo, nil)
	img, images, err := svc.AddGalleryImage(context.Background(), 1, 3, projectdata.GalleryImage{URL: "/pool.jpg", Alt: "pool"})
	require.NoError(t, err)
	require.Equal(t, projectdata.CategoryGallery, img.Category)
	require.Equal(t, uint(3), img.UploadedBy)
	require.Len(t, images.Gallery, 1)
	require.Equal(t, *img, images.Gallery[0])
}

func TestAddDocumentChecksCategoryAndType(t *testing.T) {
	repo := new(mockProjectRepo)
	repo.On("MutateDocument", mock.Anything, uint(1), models.ColumnDocuments).Return(datatypes.JSON(nil), nil)
	svc := NewProjectDocumentService(repo, nil)
	doc := projectdata.Document{Name: "Permit", URL: "/permit.pdf", Type: "invoice"}

	_, _, err := svc.AddDocument(context.Background(), 1, "receipts", doc)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	_, _, err = svc.AddDocument(context.Background(), 1, "permits", doc)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	repo.AssertNotCalled(t, "MutateDocument", mock.Anything, mock.Anything, mock.Anything)

	doc.Type = "building_permit"
	added, docs, err := svc.AddDocument(context.Background(), 1, "permits", doc)
	require.NoError(t, err)
	require.Len(t, docs.Permits, 1)
	require.Equal(t, added.ID, docs.Permits[0].ID)
}

func TestMutationErrorsPropagate(t *testing.T) {
	repo := new(mockProjectRepo)
	repo.On("MutateDocument", mock.Anything, uint(77), models.ColumnNotes).Return(nil, appErr.NotFound("project"))

	svc := NewProjectDocumentService(repo, nil)
	_, _, err := svc.AddInternalNote(context.Background(), 77, 1, projectdata.InternalNote{Content: "call the client"})
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestUpdateSpecificationsReplaceAndMerge(t *testing.T) {
	repo := new(mockProjectRepo)
	repo.On("ReplaceDocument", mock.Anything, uint(5), models.ColumnSpecifications, mock.Anything).Return(nil)
	current := projectdata.Specifications{Materials: &projectdata.Materials{PoolShell: "concrete"}}
	repo.On("MutateDocument", mock.Anything, uint(5), models.ColumnSpecifications).Return(mustJSON(t, current), nil)

	svc := NewProjectDocumentService(repo, nil)

	_, err := svc.UpdateSpecifications(context.Background(), 5, []byte(`[1,2]`), false)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	_, err = svc.UpdateSpecifications(context.Background(), 5, []byte(`{"materials":{"poolShell":"granite"}}`), false)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	specs, err := svc.UpdateSpecifications(context.Background(), 5, []byte(`{"equipment":{"heater":{"type":"solar"}}}`), false)
	require.NoError(t, err)
	require.Nil(t, specs.Materials)

	merged, err := svc.UpdateSpecifications(context.Background(), 5, []byte(`{"equipment":{"heater":{"type":"solar"}}}`), true)
	require.NoError(t, err)
	require.Equal(t, "concrete", merged.Materials.PoolShell)
	require.Equal(t, "solar", merged.Equipment.Heater.Type)
}

func TestAnalytics(t *testing.T) {
	waterfalls := 1
	p := &models.Project{
		ID:             3,
		Specifications: mustJSON(t, projectdata.Specifications{WaterFeatures: &projectdata.WaterFeatures{Waterfalls: &waterfalls}}),
		Images:         mustJSON(t, projectdata.Images{Gallery: []projectdata.GalleryImage{{ID: "a", URL: "/a"}, {ID: "b", URL: "/b"}}}),
		Notes: mustJSON(t, projectdata.Notes{Milestones: []projectdata.Milestone{
			{ID: "m1", Title: "a", PlannedDate: "2024-01-01", Status: projectdata.MilestoneCompleted},
			{ID: "m2", Title: "b", PlannedDate: "2024-02-01", Status: projectdata.MilestoneInProgress},
		}}),
	}
	repo := new(mockProjectRepo)
	repo.On("LoadDocuments", mock.Anything, uint(3), mock.Anything).Return(p, nil)

	a, err := NewProjectDocumentService(repo, nil).Analytics(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 50, a.ProgressPercentage)
	require.Equal(t, 2, a.TotalImages)
	require.True(t, a.HasWaterFeatures)
	require.NotNil(t, a.UpcomingMilestones)
}

func TestSearchConfirmsHitsInMemory(t *testing.T) {
	hits := []models.ProjectSearchHit{
		{ID: 1, Title: "match", Specifications: mustJSON(t, projectdata.Specifications{Materials: &projectdata.Materials{PoolShell: "fiberglass"}})},
		{ID: 2, Title: "no specs"},
	}
	repo := new(mockProjectRepo)
	criteria := repository.SearchCriteria{PoolType: "glass"}
	repo.On("Search", mock.Anything, criteria).Return(hits, nil)

	out, err := NewProjectDocumentService(repo, nil).Search(context.Background(), criteria)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, uint(1), out[0].ID)
}
