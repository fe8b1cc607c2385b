package handler

import (
	"net/http"
	"strconv"

	"github.com/questkeeper-app/questkeeper/internal/eventlog"
	"github.com/questkeeper-app/questkeeper/internal/identity"
	"github.com/questkeeper-app/questkeeper/internal/repository"
)

// Journal history paging bounds
const (
	HistoryDefaultLimit = 20
	HistoryMaxLimit     = 100
)

// HistoryResponse wraps the caller's recent journal entries
type HistoryResponse struct {
	Entries []repository.JournalEntry `json:"entries"`
}

// HandleGetHistory returns the caller's recent journal entries
// @Summary Quest journal
// @Description Recent events for the caller's character, newest first: completions, level-ups, drops, avatar changes
// @Tags history
// @Produce json
// @Param limit query int false "Maximum entries to return (default 20, capped at 100)"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /history [get]
func HandleGetHistory(svc eventlog.Service, resolver identity.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ResolveIdentity(w, r, resolver)
		if !ok {
			return
		}

		limit := HistoryDefaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
				return
			}
			limit = parsed
		}
		if limit > HistoryMaxLimit {
			limit = HistoryMaxLimit
		}

		entries, err := svc.Recent(r.Context(), userID, limit)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetHistoryFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, HistoryResponse{Entries: entries})
	}
}
