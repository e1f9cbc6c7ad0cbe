package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/remessa/remessa/internal/beneficiary"
	"github.com/remessa/remessa/internal/refdata"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	RefDataHandler     *refdata.Handler
	BeneficiaryHandler *beneficiary.Handler
}

// NewRouter constructs the chi.Router with the default middleware chain.
// Every route sits behind the static bearer-token check.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(params.Config.AuthToken))
		params.RefDataHandler.MountRoutes(r)
		params.BeneficiaryHandler.MountRoutes(r)
	})

	return r
}
