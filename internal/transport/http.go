package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/WuorBhang/alx-backend-graphql-crm/internal/crm"
	"github.com/WuorBhang/alx-backend-graphql-crm/internal/graphql"
)

// NewRouter wires the GraphQL endpoint and the health check.
func NewRouter(svc crm.Service) (*chi.Mux, error) {
	schema, err := graphql.NewSchema(svc)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodPost, "/graphql", &relay.Handler{Schema: schema})

	return r, nil
}
