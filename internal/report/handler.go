package report

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/zeitwerk/zeitwerk/internal/auth"
	"github.com/zeitwerk/zeitwerk/internal/transport"
	"github.com/zeitwerk/zeitwerk/pkg/logger"
)

type ServiceAPI interface {
	ReportData(actor *auth.User, query Query) (*Data, error)
	Export(actor *auth.User, query Query) (*ExportFile, error)
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

// GetReportData handles GET /reports/data.
func (h *Handler) GetReportData(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetReportData: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	query, err := parseQuery(r)
	if err != nil {
		h.Logger.Error("GetReportData: invalid query", "error", err)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	data, err := h.Service.ReportData(user, query)
	if err != nil {
		h.Logger.Error("GetReportData: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, data)
}

// ExportReport handles GET /reports/export and streams the rendered
// file as an attachment.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("ExportReport: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	query, err := parseQuery(r)
	if err != nil {
		h.Logger.Error("ExportReport: invalid query", "error", err)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.Service.Export(user, query)
	if err != nil {
		h.Logger.Error("ExportReport: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		h.Logger.Error("ExportReport: failed to write response", "error", err)
	}
}

func parseQuery(r *http.Request) (Query, error) {
	var query Query
	params := r.URL.Query()

	if s := params.Get("startDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return query, err
		}
		query.StartDate = &t
	}
	if s := params.Get("endDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return query, err
		}
		query.EndDate = &t
	}
	if s := params.Get("userId"); s != "" {
		uid, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return query, err
		}
		query.UserID = &uid
	}

	query.GroupBy = params.Get("groupBy")
	query.Format = params.Get("format")
	query.IncludeCosts = isTrue(params.Get("includeCosts"))
	query.Detailed = isTrue(params.Get("detailed"))

	return query, nil
}

func isTrue(s string) bool {
	return s == "true" || s == "1"
}
