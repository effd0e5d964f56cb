package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventcoord/internal/delivery/http/controllers"
	"eventcoord/internal/delivery/http/middleware"
	"eventcoord/internal/domain"
)

// RouterDeps holds everything the HTTP surface needs.
type RouterDeps struct {
	Logger         *slog.Logger
	Coordinator    domain.EventCoordinator
	Verifier       domain.TokenVerifier
	Metrics        http.Handler
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(deps RouterDeps) http.Handler {
	events := controllers.NewEventController(deps.Logger, deps.Coordinator)
	invites := controllers.NewInviteController(deps.Logger, deps.Coordinator)
	rsvps := controllers.NewRSVPController(deps.Logger, deps.Coordinator)
	staff := controllers.NewStaffController(deps.Logger, deps.Coordinator)
	customers := controllers.NewCustomerController(deps.Logger, deps.Coordinator)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(deps.AllowedOrigins))

	// Ops
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API Routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Verifier, deps.Logger))

		readers := middleware.RequireRole(domain.RoleCoordinator, domain.RoleFinance)
		coordinator := middleware.RequireRole(domain.RoleCoordinator)
		finance := middleware.RequireRole(domain.RoleFinance)

		r.With(readers).Get("/events", events.ListEvents)
		r.With(coordinator).Post("/events", events.CreateEvent)

		r.Route("/events/{eventID}", func(r chi.Router) {
			r.With(readers).Get("/", events.GetEvent)
			r.With(coordinator).Post("/submit", events.SubmitForApproval)
			r.With(finance).Post("/approve", events.ApproveEvent)
			r.With(finance).Post("/reject", events.RejectEvent)
			r.With(coordinator).Post("/lock", events.LockEvent)
			r.With(coordinator).Post("/cancel", events.CancelEvent)

			r.With(readers).Get("/invites", invites.ListInvites)
			r.With(coordinator).Post("/invites", invites.AddInvite)
			r.With(coordinator).Post("/invites/send", invites.SendInvites)
			r.With(coordinator).Delete("/invites/{customerID}", invites.RemoveInvite)

			r.With(coordinator).Post("/rsvps/{customerID}", rsvps.ProcessRSVP)
			r.With(readers).Get("/rsvps/summary", rsvps.GetRSVPSummary)
			r.With(readers).Get("/waitlist", rsvps.GetWaitlist)

			r.With(coordinator).Post("/staff", staff.AssignStaff)
			r.With(coordinator).Delete("/staff/{staffID}", staff.RemoveStaff)
		})

		r.With(readers).Get("/staff", staff.ListStaff)
		r.With(coordinator).Post("/customers", customers.RegisterCustomer)
		r.With(coordinator).Post("/customers/import", customers.ImportCustomers)
		r.With(readers).Get("/customers", customers.ListCustomers)
	})

	return r
}
