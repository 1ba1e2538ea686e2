package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/poolcraft/backoffice/internal/migrations"
	"github.com/poolcraft/backoffice/internal/models"
	"github.com/poolcraft/backoffice/internal/projectdata"
	"github.com/poolcraft/backoffice/pkg/database"
	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/poolcraft/backoffice/pkg/logger"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	logger.InitNop()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pg, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("pools"),
		postgres.WithUsername("pools"),
		postgres.WithPassword("pools"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pg) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.OpenPostgres(ctx, dsn, database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, migrations.Run(db))
	return db
}

func seedProject(t *testing.T, db *gorm.DB, p *models.Project) *models.Project {
	t.Helper()
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), p))
	return p
}

func TestRepositoryIntegration(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	projects := NewProjectRepository(db)

	t.Run("unique slug maps to conflict", func(t *testing.T) {
		slug := "family-pool"
		seedProject(t, db, &models.Project{Title: "Family pool", Slug: &slug})
		err := projects.Create(ctx, &models.Project{Title: "Family pool", Slug: &slug})
		require.True(t, appErr.IsCode(err, appErr.CodeConflict), "got %v", err)
	})

	t.Run("missing project maps to not found", func(t *testing.T) {
		_, err := projects.LoadDocuments(ctx, 999999, models.ColumnNotes)
		require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	})

	t.Run("concurrent document mutations are serialized", func(t *testing.T) {
		p := seedProject(t, db, &models.Project{Title: "Concurrent"})

		const writers = 10
		var wg sync.WaitGroup
		errs := make(chan error, writers)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := projects.MutateDocument(ctx, p.ID, models.ColumnNotes, func(cur datatypes.JSON) (datatypes.JSON, error) {
					notes, err := projectdata.DecodeNotes(cur)
					if err != nil {
						return nil, err
					}
					notes = projectdata.AddMilestone(notes, projectdata.Milestone{
						ID: projectdata.NewMilestoneID(), Title: "step", PlannedDate: "2024-01-15",
						Status: projectdata.MilestonePending,
					})
					return projectdata.EncodeNotes(notes)
				})
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		loaded, err := projects.LoadDocuments(ctx, p.ID, models.ColumnNotes)
		require.NoError(t, err)
		notes, err := projectdata.DecodeNotes(loaded.Notes)
		require.NoError(t, err)
		require.Len(t, notes.Milestones, writers)
	})

	t.Run("nil document is stored as NULL", func(t *testing.T) {
		p := seedProject(t, db, &models.Project{Title: "Collapse", Images: datatypes.JSON(`{"gallery":[{"id":"img_1","url":"u"}]}`)})
		out, err := projects.MutateDocument(ctx, p.ID, models.ColumnImages, func(cur datatypes.JSON) (datatypes.JSON, error) {
			images, err := projectdata.DecodeImages(cur)
			if err != nil {
				return nil, err
			}
			return projectdata.EncodeImages(projectdata.RemoveImageFromGallery(images, "img_1"))
		})
		require.NoError(t, err)
		require.Nil(t, out)

		var isNull bool
		require.NoError(t, db.Raw("SELECT images IS NULL FROM projects WHERE id = ?", p.ID).Scan(&isNull).Error)
		require.True(t, isNull)
	})

	t.Run("search matches document predicates", func(t *testing.T) {
		match := seedProject(t, db, &models.Project{
			Title:          "Spa with heat pump",
			Specifications: datatypes.JSON(`{"materials":{"poolShell":"concrete"},"equipment":{"heater":{"type":"heat_pump"}},"waterFeatures":{"spa":true,"waterfalls":0}}`),
			Notes:          datatypes.JSON(`{"issues":[{"id":"i1","title":"t","severity":"low","status":"open"}],"milestones":[{"id":"m1","title":"a","plannedDate":"2024-01-01","status":"completed"},{"id":"m2","title":"b","plannedDate":"2024-02-01","status":"pending"}]}`),
		})
		seedProject(t, db, &models.Project{
			Title:          "Plain vinyl",
			Specifications: datatypes.JSON(`{"materials":{"poolShell":"vinyl"},"waterFeatures":{"waterfalls":0}}`),
		})

		lo, hi := 40.0, 60.0
		hits, err := projects.Search(ctx, SearchCriteria{
			PoolType:     "CONC",
			Equipment:    "heat",
			WaterFeature: "spa",
			HasIssues:    true,
			ProgressMin:  &lo,
			ProgressMax:  &hi,
		})
		require.NoError(t, err)
		require.Len(t, hits, 1)
		require.Equal(t, match.ID, hits[0].ID)

		hits, err = projects.Search(ctx, SearchCriteria{WaterFeature: "waterfall"})
		require.NoError(t, err)
		require.Empty(t, hits)
	})

	t.Run("project update moves project status", func(t *testing.T) {
		p := seedProject(t, db, &models.Project{Title: "Status"})
		updates := NewProjectUpdateRepository(db)
		require.NoError(t, updates.Create(ctx, &models.ProjectUpdate{ProjectID: p.ID, Title: "Dig started", Status: models.ProjectInProgress}))

		var got models.Project
		require.NoError(t, projects.GetByID(ctx, p.ID, &got))
		require.Equal(t, models.ProjectInProgress, got.Status)

		list, err := updates.ListByProject(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)

		err = updates.Create(ctx, &models.ProjectUpdate{ProjectID: 999999, Title: "ghost"})
		require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	})

	t.Run("dashboard aggregates", func(t *testing.T) {
		d, err := NewStatsRepository(db).Dashboard(ctx)
		require.NoError(t, err)
		require.Positive(t, d.Projects.Total)
		require.LessOrEqual(t, len(d.RecentProjects), recentLimit)
	})
}
