package repository

import (
	"context"
	"time"

	"github.com/poolcraft/backoffice/internal/models"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ProjectStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
	Public     int64 `json:"public"`
	Featured   int64 `json:"featured"`
}

type ContactStats struct {
	Total     int64 `json:"total"`
	New       int64 `json:"new"`
	Contacted int64 `json:"contacted"`
	Qualified int64 `json:"qualified"`
	Converted int64 `json:"converted"`
}

type RecentProject struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	ClientName string    `json:"clientName,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type RecentContact struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PoolType  string    `json:"poolType,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type TypeCount struct {
	PoolType *string `json:"poolType"`
	Count    int64   `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// Dashboard is the admin overview.
type Dashboard struct {
	Projects       ProjectStats    `json:"projects"`
	Contacts       ContactStats    `json:"contacts"`
	RecentProjects []RecentProject `json:"recentProjects"`
	RecentContacts []RecentContact `json:"recentContacts"`
	ProjectsByType []TypeCount     `json:"projectsByType"`
	MonthlyStats   []MonthCount    `json:"monthlyStats"`
}

type StatsRepository interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

const recentLimit = 5

// Dashboard runs the independent aggregate queries concurrently.
func (r *statsRepository) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Project{}).Select(`
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'in_progress') AS in_progress,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COUNT(*) FILTER (WHERE is_public) AS "public",
			COUNT(*) FILTER (WHERE featured) AS featured`).
			Scan(&d.Projects).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Contact{}).Select(`
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'new') AS "new",
			COUNT(*) FILTER (WHERE status = 'contacted') AS contacted,
			COUNT(*) FILTER (WHERE status = 'qualified') AS qualified,
			COUNT(*) FILTER (WHERE status = 'converted') AS converted`).
			Scan(&d.Contacts).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Project{}).
			Order("created_at DESC").Limit(recentLimit).
			Find(&d.RecentProjects).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Contact{}).
			Order("created_at DESC").Limit(recentLimit).
			Find(&d.RecentContacts).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Project{}).
			Select("pool_type, COUNT(*) AS count").
			Group("pool_type").
			Order("count DESC").
			Scan(&d.ProjectsByType).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Project{}).
			Select("to_char(created_at, 'YYYY-MM') AS month, COUNT(*) AS count").
			Where("created_at >= NOW() - INTERVAL '12 months'").
			Group("month").
			Order("month").
			Scan(&d.MonthlyStats).Error
	})

	if err := g.Wait(); err != nil {
		return nil, translate(err, "statistics", "load dashboard failed")
	}
	return d, nil
}
