package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/keymap"
	"github.com/clavis/keymapd/pkg/persist"
	"github.com/clavis/keymapd/pkg/rpc"
)

// Handler wires pkg/rpc's handler functions to HTTP routes over the
// engine's live keymap state, behavior registry, dirty bitmap, and
// persistence store.
type Handler struct {
	Keymap   *keymap.Keymap
	Registry *behavior.Registry
	Dirty    *persist.DirtyBitmap
	Store    persist.Store
}

// GetKeymap handles GET /api/v1/keymap.
func (h *Handler) GetKeymap(w http.ResponseWriter, r *http.Request) {
	ok(w, rpc.GetKeymap(h.Keymap, h.Registry))
}

// SetLayerBinding handles POST /api/v1/keymap/layers/{layer}/bindings/{position}.
func (h *Handler) SetLayerBinding(w http.ResponseWriter, r *http.Request) {
	layer, err := strconv.Atoi(chi.URLParam(r, "layer"))
	if err != nil {
		badRequest(w, "invalid layer")
		return
	}
	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		badRequest(w, "invalid position")
		return
	}

	var binding rpc.BehaviorBinding
	if !decodeJSONBody(w, r, &binding) {
		return
	}

	req := rpc.SetLayerBindingRequest{Layer: uint32(layer), KeyPosition: uint32(position), Binding: binding}
	resp := rpc.SetLayerBinding(h.Keymap, h.Registry, h.Dirty, req)

	status := http.StatusOK
	label := "ok"
	if resp != rpc.ResponseSuccess {
		status = http.StatusUnprocessableEntity
		label = "error"
	}
	statusJSON(w, status, label, resp)
}

// SaveChanges handles POST /api/v1/keymap/save.
func (h *Handler) SaveChanges(w http.ResponseWriter, r *http.Request) {
	if err := rpc.SaveChanges(r.Context(), h.Keymap, h.Dirty, h.Store); err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	ok(w, map[string]bool{"saved": true})
}

// DiscardChanges handles POST /api/v1/keymap/discard.
func (h *Handler) DiscardChanges(w http.ResponseWriter, r *http.Request) {
	if err := rpc.DiscardChanges(r.Context(), h.Keymap, h.Registry, h.Store); err != nil {
		errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	ok(w, map[string]bool{"discarded": true})
}
