package balance

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/zeitwerk/zeitwerk/internal/auth"
	"github.com/zeitwerk/zeitwerk/internal/transport"
	"github.com/zeitwerk/zeitwerk/pkg/logger"
)

type ServiceAPI interface {
	BalancesFor(actor *auth.User, userID int64) (*Balances, error)
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

// GetBalance handles GET /balance. An optional user_id query parameter
// lets admins inspect another user's account.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("GetBalance: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID := user.ID
	if s := r.URL.Query().Get("userId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid user ID")
			return
		}
		userID = id
	}

	balances, err := h.Service.BalancesFor(user, userID)
	if err != nil {
		h.Logger.Error("GetBalance: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, balances)
}
