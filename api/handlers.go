package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type API struct {
	root    *mux.Router
	router  *mux.Router
	db      *sql.DB
	log     *zap.Logger
	now     func() time.Time
	limiter *limiterStore
	origins []string
}

type Option func(*API)

// WithRateLimit limits every client address to rps requests per second
// with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(a *API) {
		a.limiter = newLimiterStore(rps, burst)
	}
}

func WithAllowedOrigins(origins []string) Option {
	return func(a *API) {
		a.origins = origins
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *API) {
		a.now = now
	}
}

func NewAPI(db *sql.DB, log *zap.Logger, opts ...Option) *API {
	root := mux.NewRouter()
	a := &API{
		root:    root,
		router:  root.PathPrefix("/api").Subrouter(),
		db:      db,
		log:     log,
		now:     time.Now,
		origins: []string{"*"},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Router exposes the bare router without middleware.
func (a *API) Router() *mux.Router {
	return a.root
}

// Handler wraps the router with recovery, CORS, rate limiting and access
// logging, outermost first.
func (a *API) Handler() http.Handler {
	var h http.Handler = handlers.LoggingHandler(os.Stdout, a.root)
	h = a.rateLimit(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(a.origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{log: a.log}),
		handlers.PrintRecoveryStack(true),
	)(h)
}

type Response struct {
	Status   int `json:"status"`
	Response any `json:"response"`
}

func (a *API) Response(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if status == http.StatusNoContent {
		return
	}
	err := json.NewEncoder(w).Encode(Response{
		Status:   status,
		Response: data,
	})
	if err != nil {
		a.log.Error("encode response", zap.Error(err))
	}
}

func (a *API) RegisterRoutes() {
	a.root.HandleFunc("/api", a.welcome).Methods(http.MethodGet)
	a.router.HandleFunc("/", a.welcome).Methods(http.MethodGet)
	a.router.HandleFunc("/health", a.health).Methods(http.MethodGet)

	a.router.HandleFunc("/users", a.createUser).Methods(http.MethodPost)
	a.router.HandleFunc("/users", a.getUsers).Methods(http.MethodGet)
	a.router.HandleFunc("/users/{username}", a.getUser).Methods(http.MethodGet)
	a.router.HandleFunc("/users/{username}/calendar.ics", a.getUserCalendar).Methods(http.MethodGet)

	a.router.HandleFunc("/time-slots", a.createTimeSlot).Methods(http.MethodPost)
	a.router.HandleFunc("/time-slots", a.getTimeSlots).Methods(http.MethodGet)
	a.router.HandleFunc("/time-slots/{id}", a.getTimeSlot).Methods(http.MethodGet)
	a.router.HandleFunc("/time-slots/{id}", a.deleteTimeSlot).Methods(http.MethodDelete)

	a.router.HandleFunc("/time-slot-intersections", a.getTimeSlotIntersection).Methods(http.MethodGet)
}
