package ledger

import (
	"net/http"
	"strconv"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/skillswap/skill-exchange/pkg/api"
	"github.com/skillswap/skill-exchange/pkg/handlers/respond"
	"github.com/skillswap/skill-exchange/pkg/mapping"
	"github.com/skillswap/skill-exchange/pkg/storage"
)

// defaultLimit caps ledger listings when the caller does not specify one.
const defaultLimit = 50

// LedgerHandler holds the dependencies for ledger and transaction handlers.
type LedgerHandler struct {
	Store storage.ApiStore
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store storage.ApiStore) *LedgerHandler {
	return &LedgerHandler{Store: store}
}

// ListLedgerEntries handles the logic for listing the most recent
// double-entry ledger records.
func (h *LedgerHandler) ListLedgerEntries(w http.ResponseWriter, r *http.Request) {
	limit := int32(defaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = int32(parsed)
	}

	entries, err := h.Store.ListLedgerEntries(r.Context(), limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiEntries := make([]*api.LedgerEntry, len(entries))
	for i := range entries {
		apiEntries[i] = mapping.ToApiLedgerEntry(&entries[i])
	}

	respond.JSON(w, http.StatusOK, apiEntries)
}

// GetTransactionById handles the logic for retrieving an escrow transaction.
func (h *LedgerHandler) GetTransactionById(w http.ResponseWriter, r *http.Request, transactionId openapi_types.UUID) {
	tx, err := h.Store.GetTransaction(r.Context(), transactionId.String())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}
