package chi

import (
	"net/http"
	"time"

	"github.com/marcelsud/webhook-vault/config"
)

const version = "1.0.0"

type healthResponse struct {
	Status      string          `json:"status"`
	Timestamp   string          `json:"timestamp"`
	Version     string          `json:"version"`
	Environment string          `json:"environment"`
	Database    *databaseHealth `json:"database,omitempty"`
}

type databaseHealth struct {
	Adapter   string `json:"adapter"`
	Connected bool   `json:"connected"`
}

// getHealth always answers 200. A broken database shows up as
// connected=false rather than a failing health endpoint.
func getHealth(cfg *config.Config) handlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		resp := healthResponse{
			Status:      "healthy",
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Version:     version,
			Environment: cfg.Environment,
		}

		if adapter := AdapterFrom(r.Context()); adapter != nil {
			resp.Database = &databaseHealth{
				Adapter:   string(adapter.Kind()),
				Connected: adapter.HealthCheck(r.Context()),
			}
		}

		writeJSON(w, http.StatusOK, resp)
		return nil
	}
}
