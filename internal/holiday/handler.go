package holiday

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/zeitwerk/zeitwerk/internal/transport"
	"github.com/zeitwerk/zeitwerk/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*Holiday, error)
	OccurringOn(date time.Time) ([]*Holiday, error)
	GetByID(id int64) (*Holiday, error)
	Create(dto CreateHolidayDTO) (*Holiday, error)
	Update(id int64, dto UpdateHolidayDTO) (*Holiday, error)
	Delete(id int64) error
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

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	var holidays []*Holiday
	var err error

	if raw := r.URL.Query().Get("date"); raw != "" {
		date, perr := time.Parse("2006-01-02", raw)
		if perr != nil {
			h.WriteError(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
		holidays, err = h.Service.OccurringOn(date)
	} else {
		holidays, err = h.Service.List()
	}
	if err != nil {
		h.Logger.Error("ListHolidays: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"holidays": holidays})
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var dto CreateHolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateHoliday: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	holiday, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateHoliday: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, holiday)
}

func (h *Handler) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid holiday ID")
		return
	}

	var dto UpdateHolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateHoliday: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	holiday, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("UpdateHoliday: service error", "error", err, "holiday_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, holiday)
}

func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid holiday ID")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("DeleteHoliday: service error", "error", err, "holiday_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
