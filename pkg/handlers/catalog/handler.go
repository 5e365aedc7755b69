package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/irevolution/pkg/adapters"
	"github.com/de-tools/irevolution/pkg/store/catalog"
	"github.com/rs/zerolog"
)

type Handler struct {
	store catalog.Store
}

func NewHandler(store catalog.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	kpis, err := h.store.KPIs(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to compute KPIs")
		http.Error(w, "failed to compute KPIs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, adapters.MapKPIsDomainToApi(kpis))
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	products, err := h.store.Products(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list products")
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, adapters.MapProductsDomainToApi(products))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}
