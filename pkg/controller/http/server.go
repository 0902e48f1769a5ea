package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/usecase"
	"github.com/secmon-lab/aegis/pkg/utils/metrics"
)

type Server struct {
	router        *chi.Mux
	uc            *usecase.UseCases
	authUC        AuthUseCase
	enableMetrics bool
}

type Options func(*Server)

// WithMetrics exposes the Prometheus registry at /metrics
func WithMetrics(enabled bool) Options {
	return func(s *Server) {
		s.enableMetrics = enabled
	}
}

// WithAuth replaces the auth use case taken from the use case set
func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
		authUC: uc.Auth,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.enableMetrics {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", registerHandler(s.authUC))
			r.Post("/login", loginHandler(s.authUC))
			r.Post("/logout", logoutHandler(s.authUC))
			r.With(authMiddleware(s.authUC)).Get("/me", meHandler(s.authUC))
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(s.authUC))
			s.riskRoutes(r)
			s.incidentRoutes(r)
			s.trainingRoutes(r)
			s.inspectionRoutes(r)
			s.eppRoutes(r)
			s.documentRoutes(r)
			s.reportRoutes(r)
			s.adminRoutes(r)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

var (
	supervisor = requireRole(types.RoleSupervisor)
	admin      = requireRole(types.RoleAdmin)
)

func (s *Server) riskRoutes(r chi.Router) {
	uc := s.uc.Risk
	r.Route("/risks", func(r chi.Router) {
		r.Post("/", createRiskHandler(uc))
		r.Get("/", listRisksHandler(uc))
		r.Get("/dashboard", riskDashboardHandler(uc))
		r.Get("/matrix", riskMatrixHandler(uc))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getRiskHandler(uc))
			r.Post("/evidence", attachRiskEvidenceHandler(uc))
			r.With(supervisor).Put("/", updateRiskHandler(uc))
			r.With(supervisor).Patch("/status", changeRiskStatusHandler(uc))
			r.With(admin).Delete("/", deleteRiskHandler(uc))
		})
	})
}

func (s *Server) incidentRoutes(r chi.Router) {
	uc := s.uc.Incident
	r.Route("/incidents", func(r chi.Router) {
		r.Post("/", registerIncidentHandler(uc))
		r.Get("/", listIncidentsHandler(uc))
		r.Get("/statistics", incidentStatisticsHandler(uc))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getIncidentHandler(uc))
			r.Get("/actions", listActionsHandler(uc))
			r.With(supervisor).Patch("/status", changeIncidentStatusHandler(uc))
			r.With(supervisor).Post("/actions", addActionHandler(uc))
		})
	})
	r.Route("/actions", func(r chi.Router) {
		r.Get("/", listActionsHandler(uc))
		r.With(supervisor).Patch("/{id}/status", changeActionStatusHandler(uc))
	})
}

func (s *Server) trainingRoutes(r chi.Router) {
	uc := s.uc.Training
	r.Route("/trainings", func(r chi.Router) {
		r.Get("/", listTrainingsHandler(uc))
		r.Get("/statistics", trainingStatisticsHandler(uc))
		r.With(supervisor).Post("/", scheduleTrainingHandler(uc))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getTrainingHandler(uc))
			r.Get("/attendees", listAttendeesHandler(uc))
			r.With(supervisor).Patch("/status", changeTrainingStatusHandler(uc))
			r.With(supervisor).Put("/attendance", recordAttendanceHandler(uc))
			r.With(supervisor).Post("/material", uploadMaterialHandler(uc))
		})
	})
}

func (s *Server) inspectionRoutes(r chi.Router) {
	uc := s.uc.Inspection
	r.Route("/checklists", func(r chi.Router) {
		r.Get("/", listChecklistsHandler(uc))
		r.Get("/{id}", getChecklistHandler(uc))
		r.With(supervisor).Post("/", createChecklistHandler(uc))
	})
	r.Route("/inspections", func(r chi.Router) {
		r.Get("/", listInspectionsHandler(uc))
		r.Get("/{id}", getInspectionHandler(uc))
		r.With(supervisor).Post("/", scheduleInspectionHandler(uc))
		r.With(supervisor).Patch("/{id}/status", changeInspectionStatusHandler(uc))
	})
}

func (s *Server) eppRoutes(r chi.Router) {
	uc := s.uc.EPP
	r.Route("/epp", func(r chi.Router) {
		r.Get("/", listEPPHandler(uc))
		r.Get("/inventory-value", inventoryValueHandler(uc))
		r.Get("/{id}", getEPPHandler(uc))
		r.With(supervisor).Post("/", createEPPHandler(uc))
		r.With(supervisor).Patch("/{id}/stock", updateStockHandler(uc))

		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", listAssignmentsHandler(uc))
			r.Get("/expiring", expiringAssignmentsHandler(uc, s.uc.Thresholds().EPPExpiryWindowDays))
			r.With(supervisor).Post("/", assignEPPHandler(uc))
			r.With(supervisor).Post("/{id}/return", returnAssignmentHandler(uc))
		})
	})
}

func (s *Server) documentRoutes(r chi.Router) {
	uc := s.uc.Document
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", listDocumentsHandler(uc))
		r.Get("/review-due", reviewDueHandler(uc))
		r.Get("/{id}", getDocumentHandler(uc))
		r.With(supervisor).Post("/", registerDocumentHandler(uc))
		r.With(supervisor).Patch("/{id}/status", changeDocumentStatusHandler(uc))
	})
}

func (s *Server) reportRoutes(r chi.Router) {
	uc := s.uc.Report
	r.Route("/reports", func(r chi.Router) {
		r.Use(supervisor)
		r.Get("/summary", summaryHandler(uc))
		r.Get("/legal", legalReportHandler(uc))
		r.Get("/export", exportHandler(uc))
	})
}

func (s *Server) adminRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Use(admin)
		r.Get("/", listUsersHandler(s.authUC))
		r.Patch("/{userID}/role", changeRoleHandler(s.authUC))
		r.Post("/{userID}/deactivate", deactivateHandler(s.authUC))
	})
	r.With(admin).Post("/alerts/scan", alertScanHandler(s.uc.Alert))
}

func alertScanHandler(uc *usecase.AlertUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := uc.Scan(r.Context())
		if err != nil {
			writeError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, toAlertSummary(summary))
	}
}
