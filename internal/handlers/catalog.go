package handlers

import (
	"encoding/json"
	"net/http"
)

// ProductRequest registers a catalog product.
type ProductRequest struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	DefaultPrice float64 `json:"default_price"`
}

// AliasRequest maps a colloquial item name onto an existing SKU.
type AliasRequest struct {
	Alias string `json:"alias"`
	SKU   string `json:"sku"`
}

func (rt *Router) createProduct(w http.ResponseWriter, req *http.Request) {
	var in ProductRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.SKU == "" || in.Name == "" {
		respondError(w, http.StatusBadRequest, "sku and name are required")
		return
	}

	if err := rt.catalog.CreateProduct(in.SKU, in.Name, in.DefaultPrice); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"sku": in.SKU})
}

func (rt *Router) createAlias(w http.ResponseWriter, req *http.Request) {
	var in AliasRequest
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Alias == "" || in.SKU == "" {
		respondError(w, http.StatusBadRequest, "alias and sku are required")
		return
	}

	if err := rt.catalog.CreateAlias(in.Alias, in.SKU); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"alias": in.Alias, "sku": in.SKU})
}

// suggestItems answers typeahead queries over product names and aliases.
func (rt *Router) suggestItems(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query().Get("q")
	if q == "" {
		respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": []interface{}{}})
		return
	}

	suggestions, err := rt.catalog.Suggest(q)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"suggestions": suggestions})
}
