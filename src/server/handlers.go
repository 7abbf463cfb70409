package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"samplecatalog/src/services/auth"
)

type ctxKey string

const claimsKey ctxKey = "sc.claims"

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func claimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQL executes one GraphQL request. Claims are extracted here and
// carried in the context; only the mutation resolvers consult them.
// Resolver failures land in the per-field error list of the response, so
// one failed field never sinks the rest of the request.
func (s *Server) GraphQL(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	claims := s.tokenParser.FromAuthorizationHeader(r.Header.Get("Authorization"))

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        withClaims(r.Context(), claims),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("failed to write graphql response", "error", err)
	}
}

// GraphiQL serves the interactive explorer. It is an operator surface, so
// it keeps the same claims check the mutations use.
func (s *Server) GraphiQL(w http.ResponseWriter, r *http.Request) {
	claims := s.tokenParser.FromAuthorizationHeader(r.Header.Get("Authorization"))
	if !auth.Authorize(claims, s.requiredDomain, s.disableAuth) {
		http.Error(w, "Invalid request", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(graphiqlHTML)); err != nil {
		s.logger.Error("failed to write graphiql page", "error", err)
	}
}

// Ping answers liveness probes.
func (s *Server) Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

// Health reports process health.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, "ok")
}

// Ready reports readiness to take traffic.
func (s *Server) Ready(w http.ResponseWriter, _ *http.Request) {
	writeStatus(w, "ready")
}

func writeStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}

const graphiqlHTML = `<!DOCTYPE html>
<html>
  <head>
    <title>GraphiQL</title>
    <link rel="stylesheet" href="https://unpkg.com/graphiql/graphiql.min.css" />
  </head>
  <body style="margin: 0;">
    <div id="graphiql" style="height: 100vh;"></div>
    <script crossorigin src="https://unpkg.com/react/umd/react.production.min.js"></script>
    <script crossorigin src="https://unpkg.com/react-dom/umd/react-dom.production.min.js"></script>
    <script crossorigin src="https://unpkg.com/graphiql/graphiql.min.js"></script>
    <script>
      ReactDOM.render(
        React.createElement(GraphiQL, {
          fetcher: GraphiQL.createFetcher({ url: '/graphql' }),
        }),
        document.getElementById('graphiql'),
      );
    </script>
  </body>
</html>
`
