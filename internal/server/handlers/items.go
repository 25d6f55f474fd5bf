package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/simoneromano96/coffeed-coffee-service/internal/server/cache"
	"github.com/simoneromano96/coffeed-coffee-service/internal/server/response"
	"github.com/simoneromano96/coffeed-coffee-service/pkg/catalog"
)

// HandleListItems handles GET /api/v1/items.
// Returns every item in the catalog ordered by name.
func (h *Handlers) HandleListItems(w http.ResponseWriter, r *http.Request) {
	if cached, found := h.cache.Get(cache.ListKey); found {
		response.OK(w, cached)
		return
	}

	items, err := h.service.List(r.Context())
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	result := map[string]any{
		"items": items,
		"count": len(items),
	}

	h.cache.Set(cache.ListKey, result)
	response.OK(w, result)
}

// HandleGetItem handles GET /api/v1/items/{id}.
func (h *Handlers) HandleGetItem(w http.ResponseWriter, r *http.Request, itemID string) {
	if cached, found := h.cache.Get(cache.ItemKey(itemID)); found {
		response.OK(w, cached)
		return
	}

	item, err := h.service.Get(r.Context(), itemID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.cache.Set(cache.ItemKey(itemID), item)
	response.OK(w, item)
}

// HandleCreateItem handles POST /api/v1/items.
func (h *Handlers) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	var input catalog.CreateItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "Invalid JSON request body", err.Error())
		return
	}

	item, err := h.service.Create(r.Context(), input)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	// Evict the listing synchronously so a read right after the write
	// already sees the new item.
	h.cache.InvalidateItem(item.ID)
	response.Created(w, item)
}

// HandleUpdateItem handles PATCH /api/v1/items/{id}.
// Only the fields present in the body are changed; absent fields keep
// their stored values.
func (h *Handlers) HandleUpdateItem(w http.ResponseWriter, r *http.Request, itemID string) {
	var input catalog.UpdateItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "Invalid JSON request body", err.Error())
		return
	}
	if input.Empty() {
		response.BadRequest(w, "Empty update", "at least one field must be provided")
		return
	}

	item, err := h.service.Update(r.Context(), itemID, input)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.cache.InvalidateItem(item.ID)
	response.OK(w, item)
}

// HandleDeleteItem handles DELETE /api/v1/items/{id}.
// Responds with the deleted item's last state.
func (h *Handlers) HandleDeleteItem(w http.ResponseWriter, r *http.Request, itemID string) {
	item, err := h.service.Delete(r.Context(), itemID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	h.cache.InvalidateItem(item.ID)
	response.OK(w, item)
}
