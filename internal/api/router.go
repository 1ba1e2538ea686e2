package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/poolcraft/backoffice/internal/api/handlers"
	mw "github.com/poolcraft/backoffice/internal/api/middleware"
)

type Dependencies struct {
	Tokens         mw.TokenParser
	FrontendURL    string
	RateLimitRPS   float64
	RateLimitBurst int

	HealthHandler           *handlers.HealthHandler
	AuthHandler             *handlers.AuthHandler
	ProjectsHandler         *handlers.ProjectsHandler
	ProjectDocumentsHandler *handlers.ProjectDocumentsHandler
	ContactsHandler         *handlers.ContactsHandler
	ContentHandler          *handlers.ContentHandler
	AdminHandler            *handlers.AdminHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.Metrics)
	r.Use(mw.CORS(dep.FrontendURL))
	r.Use(mw.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	r.Use(chimid.Compress(5))

	// Health and metrics
	hh := dep.HealthHandler
	r.Get("/health", hh.Health)
	r.Get("/api/health", hh.Health)
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	auth := mw.Auth(dep.Tokens)
	admin := func(r chi.Router) chi.Router { return r.With(auth, mw.RequireAdmin) }

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", dep.AuthHandler.Login)
			ar.Post("/logout", dep.AuthHandler.Logout)
			ar.With(auth).Get("/me", dep.AuthHandler.Me)
			ar.With(auth).Post("/change-password", dep.AuthHandler.ChangePassword)
		})

		api.Route("/projects", func(pr chi.Router) {
			pr.Get("/public/list", dep.ProjectsHandler.ListPublic)

			ph := dep.ProjectsHandler
			dh := dep.ProjectDocumentsHandler
			a := admin(pr)
			a.Get("/", ph.List)
			a.Post("/", ph.Create)
			a.Post("/search", dh.Search)
			a.Get("/{id}", ph.Get)
			a.Put("/{id}", ph.Update)
			a.Delete("/{id}", ph.Delete)
			a.Post("/{id}/updates", ph.AddUpdate)

			a.Put("/{id}/specifications", dh.UpdateSpecifications)
			a.Patch("/{id}/specifications", dh.UpdateSpecifications)
			a.Post("/{id}/images/gallery", dh.AddGalleryImage)
			a.Delete("/{id}/images/gallery/{imageId}", dh.RemoveGalleryImage)
			a.Post("/{id}/images/progress", dh.AddProgressImage)
			a.Post("/{id}/notes/internal", dh.AddInternalNote)
			a.Post("/{id}/notes/communication", dh.AddCommunicationLog)
			a.Post("/{id}/milestones", dh.AddMilestone)
			a.Put("/{id}/milestones/{milestoneId}", dh.UpdateMilestone)
			a.Post("/{id}/issues", dh.AddIssue)
			a.Put("/{id}/issues/{issueId}/resolve", dh.ResolveIssue)
			a.Post("/{id}/documents/{category}", dh.AddDocument)
			a.Delete("/{id}/documents/{category}/{documentId}", dh.RemoveDocument)
			a.Get("/{id}/analytics", dh.Analytics)
		})
		api.Get("/public/projects/public/list", dep.ProjectsHandler.ListPublic)

		api.Route("/contacts", func(cr chi.Router) {
			ch := dep.ContactsHandler
			cr.Post("/", ch.Submit)

			a := admin(cr)
			a.Get("/", ch.List)
			a.Get("/{id}", ch.Get)
			a.Put("/{id}", ch.Update)
			a.Delete("/{id}", ch.Delete)
			a.Post("/{id}/assign", ch.Assign)
			a.Post("/{id}/communications", ch.AddCommunication)
			a.Post("/{id}/follow-ups", ch.AddFollowUp)
			a.Put("/{id}/follow-ups/{followUpId}/complete", ch.CompleteFollowUp)
			a.Put("/{id}/qualification", ch.UpdateQualification)
		})

		ct := dep.ContentHandler
		api.Route("/professional-info", func(pr chi.Router) {
			pr.Get("/", ct.ListPages)
			a := admin(pr)
			a.Get("/admin/all", ct.ListAllPages)
			a.Post("/", ct.CreatePage)
			a.Put("/{id}", ct.UpdatePage)
			a.Delete("/{id}", ct.DeletePage)
			pr.Get("/{slug}", ct.GetPage)
		})

		api.Route("/content-sections", func(sr chi.Router) {
			sr.Get("/page/{pageId}", ct.ListSections)
			sr.Get("/{id}", ct.GetSection)
			a := admin(sr)
			a.Post("/", ct.CreateSection)
			a.Put("/reorder/{pageId}", ct.ReorderSections)
			a.Put("/{id}", ct.UpdateSection)
			a.Delete("/{id}", ct.DeleteSection)
		})

		api.Get("/content/categories", ct.ListCategories)
		api.Get("/content/tags", ct.ListTags)

		api.Route("/admin", func(ar chi.Router) {
			ah := dep.AdminHandler
			a := admin(ar)
			a.Get("/stats", ah.Stats)
			a.Get("/users", ah.ListUsers)
			a.Post("/users", ah.CreateUser)
			a.Put("/users/{id}", ah.UpdateUser)
		})
	})

	return r
}
