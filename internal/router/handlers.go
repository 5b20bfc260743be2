// internal/router/handlers.go
package router

import (
	"encoding/json"
	"net/http"

	"authgate/internal/contextutil"
	"authgate/internal/observability/logging"
)

// WhoAmIResponse is the body returned by the identity echo endpoint
type WhoAmIResponse struct {
	Subject       string `json:"subject"`
	Scheme        string `json:"scheme"`
	Authenticated bool   `json:"authenticated"`
}

// NewAppHandler builds the application handler served behind the access
// rules: an identity echo on /whoami and a plain OK everywhere else
func NewAppHandler(logger *logging.Logger) http.Handler {
	logger = logger.WithModule("app")

	appMux := http.NewServeMux()

	appMux.HandleFunc("/whoami", func(w http.ResponseWriter, req *http.Request) {
		resp := WhoAmIResponse{}
		if identity := contextutil.GetIdentity(req.Context()); identity != nil {
			resp.Subject = identity.Subject
			resp.Scheme = identity.Scheme
			resp.Authenticated = identity.IsAuthenticated()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("Failed to encode whoami response", logging.Err(err))
		}
	})

	appMux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return appMux
}
