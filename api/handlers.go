package api

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"clinic-appointments/appointment"
	"clinic-appointments/logging"
	"clinic-appointments/metrics"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type API struct {
	router  *mux.Router
	store   Appointments
	desk    *Desk
	page    *template.Template
	log     *logging.Logger
	metrics *metrics.Metrics
}

func NewAPI(store Appointments, log *logging.Logger, m *metrics.Metrics) *API {
	if log == nil {
		log = logging.Default()
	}
	return &API{
		router:  mux.NewRouter().UseEncodedPath(),
		store:   store,
		desk:    NewDesk(store, m),
		page:    pageTemplate,
		log:     log,
		metrics: m,
	}
}

// Router exposes the bare router, without access logging.
func (a *API) Router() *mux.Router {
	return a.router
}

func (a *API) Handler() http.Handler {
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(a.log.Handler(), slog.LevelError)),
	)
	return handlers.LoggingHandler(os.Stdout, recovery(a.router))
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
		a.log.Error("encode response", "error", err)
	}
}

func (a *API) RegisterRoutes() {
	a.router.HandleFunc("/", a.index).Methods(http.MethodGet)
	a.router.HandleFunc("/appointments", a.submitForm).Methods(http.MethodPost)
	a.router.HandleFunc("/appointments/cancel", a.cancelEdit).Methods(http.MethodPost)
	a.router.HandleFunc("/appointments/edit", a.editForm).Methods(http.MethodPost)
	a.router.HandleFunc("/appointments/delete", a.confirmDelete).Methods(http.MethodGet)
	a.router.HandleFunc("/appointments/delete", a.deleteForm).Methods(http.MethodPost)
	a.router.HandleFunc("/appointments/notes", a.showNotes).Methods(http.MethodGet)
	if a.metrics != nil {
		a.router.Handle("/metrics", a.metrics.Handler()).Methods(http.MethodGet)
	}

	api := a.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", a.health).Methods(http.MethodGet)
	api.HandleFunc("/appointments", a.getAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments", a.createAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id:.*}", a.getAppointment).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:.*}", a.updateAppointment).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id:.*}", a.deleteAppointment).Methods(http.MethodDelete)
}

// pathID returns the unescaped {id} of an encoded-path route. Stored ids are
// opaque and may contain '/' or be empty.
func pathID(r *http.Request) string {
	raw := mux.Vars(r)["id"]
	id, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return id
}

func (a *API) observeInvalid(res appointment.Result) {
	for field := range res.Errors {
		a.metrics.ObserveValidationFailure(field)
	}
}
