package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/leadtrackhq/mini-crm/backend/internal/config"
	"github.com/leadtrackhq/mini-crm/backend/internal/domain"
)

// Store is the persistence surface the handlers need. *repository.Repository
// implements it; tests substitute a mock.
type Store interface {
	CreateUser(user *domain.User) error
	GetUserByID(id int64) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)

	CreateLead(lead *domain.Lead) error
	GetLeadByID(id int64) (*domain.Lead, error)
	ListLeads(filter domain.LeadFilter) ([]*domain.Lead, int64, error)
	UpdateLead(lead *domain.Lead) error
	DeleteLead(id int64) error

	CreateFollowup(followup *domain.Followup) error
	GetFollowupsByLead(leadID int64) ([]*domain.Followup, error)

	GetDashboardStats() (*domain.DashboardStats, error)
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	store       Store
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, store Store, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		store:       store,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.metrics)
	h.Mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	h.Mux.Get("/", h.Liveness)
	h.Mux.Handle("/metrics", promhttp.Handler())

	h.Mux.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		// everything below requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Route("/leads", func(r chi.Router) {
				r.Post("/", h.CreateLead)
				r.Get("/", h.ListLeads)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(h.lead)
					r.Put("/", h.UpdateLead)
					r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteLead)
				})
			})

			r.Route("/followups", func(r chi.Router) {
				r.Post("/", h.CreateFollowup)
				r.Get("/{leadId}", h.ListFollowupsForLead)
			})

			r.Get("/dashboard", h.GetDashboardStats)
		})
	})
}
