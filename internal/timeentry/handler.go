package timeentry

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/zeitwerk/zeitwerk/internal/auth"
	"github.com/zeitwerk/zeitwerk/internal/transport"
	"github.com/zeitwerk/zeitwerk/pkg/logger"
)

type ServiceAPI interface {
	List(actor *auth.User, query ListQuery) ([]*TimeEntry, error)
	GetRunning(actor *auth.User) (*TimeEntry, error)
	Create(actor *auth.User, dto CreateTimeEntryDTO) (*TimeEntry, error)
	Update(actor *auth.User, id int64, dto UpdateTimeEntryDTO) (*TimeEntry, error)
	Delete(actor *auth.User, id int64) error
	StartTimer(actor *auth.User, dto StartTimerDTO) (*TimeEntry, error)
	StopTimer(actor *auth.User) (*TimeEntry, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// ListEntries handles GET /time-entries with optional start_date,
// end_date, user_id and show_all filters.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("ListEntries: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	query, err := parseListQuery(r)
	if err != nil {
		h.Logger.Error("ListEntries: invalid query", "error", err)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	entries, err := h.Service.List(user, query)
	if err != nil {
		h.Logger.Error("ListEntries: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"time_entries": entries,
		"count":        len(entries),
	})
}

// GetRunningEntry handles GET /time-entries/running. Responds with the
// actor's running entry or a null body when the timer is idle.
func (h *Handler) GetRunningEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetRunningEntry: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entry, err := h.Service.GetRunning(user)
	if err != nil {
		h.Logger.Error("GetRunningEntry: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"running": entry})
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateEntry: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTimeEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEntry: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.Create(user, dto)
	if err != nil {
		h.Logger.Error("CreateEntry: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("UpdateEntry: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := entryIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid time entry ID")
		return
	}

	var dto UpdateTimeEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEntry: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.Service.Update(user, id, dto)
	if err != nil {
		h.Logger.Error("UpdateEntry: service error", "error", err, "entry_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("DeleteEntry: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := entryIDParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid time entry ID")
		return
	}

	if err := h.Service.Delete(user, id); err != nil {
		h.Logger.Error("DeleteEntry: service error", "error", err, "entry_id", id, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// StartTimer handles POST /timer/start.
func (h *Handler) StartTimer(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("StartTimer: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto StartTimerDTO
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			h.Logger.Error("StartTimer: invalid request body", "error", err)
			h.WriteError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	entry, err := h.Service.StartTimer(user, dto)
	if err != nil {
		h.Logger.Error("StartTimer: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, entry)
}

// StopTimer handles POST /timer/stop.
func (h *Handler) StopTimer(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("StopTimer: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entry, err := h.Service.StopTimer(user)
	if err != nil {
		h.Logger.Error("StopTimer: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry)
}

func entryIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func parseListQuery(r *http.Request) (ListQuery, error) {
	var query ListQuery

	if s := r.URL.Query().Get("startDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return query, err
		}
		query.StartDate = &t
	}
	if s := r.URL.Query().Get("endDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return query, err
		}
		query.EndDate = &t
	}
	if s := r.URL.Query().Get("userId"); s != "" {
		uid, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return query, err
		}
		query.UserID = &uid
	}
	if s := r.URL.Query().Get("showAll"); s != "" {
		query.ShowAll = s == "true" || s == "1"
	}

	return query, nil
}
