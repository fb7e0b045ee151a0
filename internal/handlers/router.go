package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kedaiflow/omsgo/internal/ai"
	"github.com/kedaiflow/omsgo/internal/database"
	"github.com/kedaiflow/omsgo/internal/services/catalog"
	"github.com/kedaiflow/omsgo/internal/services/delivery"
	"github.com/kedaiflow/omsgo/internal/services/ledger"
)

// Router wraps the mux router, the database and the domain services.
// The extractor is nil when no API key is configured; intake routes then
// answer 503 while the rest of the API keeps working.
type Router struct {
	*mux.Router
	db         *database.DB
	ledger     *ledger.Service
	catalog    *catalog.Service
	deliveries *delivery.Service
	extractor  ai.Extractor
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, extractor ai.Extractor) *Router {
	rt := &Router{
		Router:     mux.NewRouter(),
		db:         db,
		ledger:     ledger.NewService(db.DB),
		catalog:    catalog.NewService(db.DB),
		deliveries: delivery.NewService(db.DB),
		extractor:  extractor,
	}

	// Legacy API, kept route-for-route for the old shop frontend
	api := rt.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", rt.healthCheck).Methods("GET")
	api.HandleFunc("/db-health", rt.dbHealthCheck).Methods("GET")
	api.HandleFunc("/intake/parse", rt.legacyIntakeParse).Methods("POST")
	api.HandleFunc("/orders", rt.legacyCreateOrder).Methods("POST")
	api.HandleFunc("/orders", rt.legacyListOrders).Methods("GET")
	api.HandleFunc("/transactions", rt.legacyCreateTransaction).Methods("POST")
	api.HandleFunc("/outstanding", rt.listOutstanding).Methods("GET")
	api.HandleFunc("/schedules", rt.createSchedule).Methods("POST")
	api.HandleFunc("/chase-list", rt.chaseList).Methods("GET")
	api.HandleFunc("/deliveries", rt.createDelivery).Methods("POST")
	api.HandleFunc("/deliveries", rt.listDeliveries).Methods("GET")
	api.HandleFunc("/deliveries/{id}/status", rt.updateDeliveryStatus).Methods("POST")

	// Current API
	rt.HandleFunc("/parse", rt.parseIntake).Methods("POST")
	rt.HandleFunc("/orders", rt.createOrder).Methods("POST")
	rt.HandleFunc("/orders", rt.listOrders).Methods("GET")
	rt.HandleFunc("/orders/{code}", rt.patchOrder).Methods("PATCH")
	rt.HandleFunc("/orders/{code}/invoice.pdf", rt.orderInvoicePDF).Methods("GET")
	rt.HandleFunc("/orders/{code}/receipt.pdf", rt.orderReceiptPDF).Methods("GET")
	rt.HandleFunc("/payments", rt.createPayment).Methods("POST")
	rt.HandleFunc("/events", rt.createEvent).Methods("POST")
	rt.HandleFunc("/catalog/product", rt.createProduct).Methods("POST")
	rt.HandleFunc("/catalog/alias", rt.createAlias).Methods("POST")
	rt.HandleFunc("/suggest/items", rt.suggestItems).Methods("GET")
	rt.HandleFunc("/export/excel", rt.exportOrdersExcel).Methods("GET")

	return rt
}

// healthCheck returns the health status of the API
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "local",
	})
}

// dbHealthCheck pings the database behind the gorm handle
func (rt *Router) dbHealthCheck(w http.ResponseWriter, req *http.Request) {
	sqlDB, err := rt.db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(req.Context())
	}
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"database": "ok"})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps domain sentinel errors onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrOrderNotFound),
		errors.Is(err, catalog.ErrSKUNotFound),
		errors.Is(err, delivery.ErrDeliveryNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrSKUExists):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ai.ErrBadExtraction):
		respondError(w, http.StatusBadGateway, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
