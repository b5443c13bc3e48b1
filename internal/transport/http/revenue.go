package http

import (
	"encoding/json"
	"net/http"
)

// RevenueReporter is the minimal interface needed by the revenue endpoint.
type RevenueReporter interface {
	TotalRevenue() (float64, error)
}

// HandleRevenue returns an HTTP handler reporting total venue revenue.
func HandleRevenue(svc RevenueReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		total, err := svc.TotalRevenue()
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(revenueResponse{TotalRevenue: total})
	}
}

type revenueResponse struct {
	TotalRevenue float64 `json:"total_revenue"`
}
