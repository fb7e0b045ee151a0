package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kedaiflow/omsgo/internal/services/exporter"
	"github.com/kedaiflow/omsgo/internal/services/ledger"
)

// exportOrdersExcel streams the full order listing as an XLSX download.
func (rt *Router) exportOrdersExcel(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	rows, err := rt.ledger.Search(ledger.SearchFilter{
		Query:  q.Get("q"),
		Status: strings.ToUpper(q.Get("status")),
		Type:   strings.ToUpper(q.Get("type")),
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	data, err := exporter.OrdersToExcel(rows)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
