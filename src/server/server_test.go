package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"samplecatalog/src/domain"
	"samplecatalog/src/repositories"
	"samplecatalog/src/server"
	"samplecatalog/src/services/auth"
	"samplecatalog/src/services/events"
	"samplecatalog/src/services/samples"
	"samplecatalog/src/test_artefacts/stubs"
)

type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

var _ = Describe("Server", func() {
	const signingKey = "test-signing-key"

	var (
		repo    *repositories.MemorySampleRepository
		handler http.Handler
		parser  *auth.TokenParser
	)

	newHandler := func(disableAuth bool) {
		logger := slog.New(slog.DiscardHandler)
		cfg := samples.Config{
			CacheCapacity:  100,
			CacheTTL:       time.Minute,
			DisableAuth:    disableAuth,
			RequiredDomain: "gmail.com",
		}
		service := samples.NewService(logger, repo, samples.NewCaches(logger, cfg), events.NoopPublisher{}, cfg)
		parser = auth.NewTokenParser([]byte(signingKey))

		srv, err := server.NewServer(logger, 0, service, parser, disableAuth, "gmail.com")
		Expect(err).NotTo(HaveOccurred())
		handler = srv.Handler()
	}

	doGraphQL := func(query string, token string) graphqlResponse {
		body, err := json.Marshal(map[string]string{"query": query})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)
		Expect(recorder.Code).To(Equal(http.StatusOK))

		var response graphqlResponse
		Expect(json.Unmarshal(recorder.Body.Bytes(), &response)).To(Succeed())
		return response
	}

	issueToken := func(domain string) string {
		token, err := parser.IssueToken(auth.Claims{HostedDomain: domain})
		Expect(err).NotTo(HaveOccurred())
		return token
	}

	BeforeEach(func() {
		repo = repositories.NewMemorySampleRepository()
		newHandler(true)
	})

	Context("probes", func() {
		It("should answer ping with pong", func() {
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ping", nil))

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(Equal("pong"))
		})

		It("should report health and readiness as JSON", func() {
			health := httptest.NewRecorder()
			handler.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/health", nil))
			ready := httptest.NewRecorder()
			handler.ServeHTTP(ready, httptest.NewRequest(http.MethodGet, "/~/ready", nil))

			Expect(health.Code).To(Equal(http.StatusOK))
			Expect(health.Body.String()).To(MatchJSON(`{"status":"ok"}`))
			Expect(ready.Code).To(Equal(http.StatusOK))
			Expect(ready.Body.String()).To(MatchJSON(`{"status":"ready"}`))
		})
	})

	Context("queries", func() {
		It("should serve a connection with items and page info", func() {
			// ARRANGE
			Expect(repo.InsertOne(context.Background(), stubs.NewSampleStub().WithID("samples:q1").WithName("granite").Get())).To(Succeed())

			// ACT
			response := doGraphQL(`{
				allSamples {
					totalCount
					pageInfo { hasNextPage }
					items { id name minValue }
				}
			}`, "")

			// ASSERT
			Expect(response.Errors).To(BeEmpty())
			var connection struct {
				TotalCount int `json:"totalCount"`
				PageInfo   struct {
					HasNextPage bool `json:"hasNextPage"`
				} `json:"pageInfo"`
				Items []struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"items"`
			}
			Expect(json.Unmarshal(response.Data["allSamples"], &connection)).To(Succeed())
			Expect(connection.TotalCount).To(Equal(1))
			Expect(connection.PageInfo.HasNextPage).To(BeFalse())
			Expect(connection.Items).To(HaveLen(1))
			Expect(connection.Items[0].Name).To(Equal("granite"))
		})

		It("should surface a missing sample as a per-field error", func() {
			response := doGraphQL(`{ sampleById(id: "samples:ghost") { id } }`, "")

			Expect(response.Errors).NotTo(BeEmpty())
			Expect(response.Errors[0].Message).To(ContainSubstring("not found"))
		})
	})

	Context("mutations", func() {
		It("should create a sample end to end", func() {
			response := doGraphQL(`mutation {
				createSample(newSample: {name: "obsidian", description: "volcanic glass"}) {
					id
					name
					description
				}
			}`, "")

			Expect(response.Errors).To(BeEmpty())
			var created struct {
				ID          string `json:"id"`
				Name        string `json:"name"`
				Description string `json:"description"`
			}
			Expect(json.Unmarshal(response.Data["createSample"], &created)).To(Succeed())
			Expect(created.ID).To(HavePrefix("samples:"))
			Expect(created.Name).To(Equal("obsidian"))
			Expect(created.Description).To(Equal("volcanic glass"))
		})

		It("should report deleting an absent id as unsuccessful", func() {
			response := doGraphQL(`mutation { deleteSample(id: "samples:ghost") { id success } }`, "")

			Expect(response.Errors).To(BeEmpty())
			var deleted struct {
				ID      string `json:"id"`
				Success bool   `json:"success"`
			}
			Expect(json.Unmarshal(response.Data["deleteSample"], &deleted)).To(Succeed())
			Expect(deleted.Success).To(BeFalse())
		})
	})

	Context("with auth enabled", func() {
		BeforeEach(func() {
			newHandler(false)
		})

		It("should fail a mutation without a token as a per-field error", func() {
			response := doGraphQL(`mutation { createSample(newSample: {name: "denied"}) { id } }`, "")

			Expect(response.Errors).NotTo(BeEmpty())
			Expect(response.Errors[0].Message).To(ContainSubstring("unauthorized"))
			all, err := repo.FindAll(context.Background(), domain.SampleFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(BeEmpty())
		})

		It("should admit a mutation bearing a token for the required domain", func() {
			response := doGraphQL(`mutation { createSample(newSample: {name: "admitted"}) { id name } }`, issueToken("gmail.com"))

			Expect(response.Errors).To(BeEmpty())
		})

		It("should refuse a token issued for another domain", func() {
			response := doGraphQL(`mutation { deleteSample(id: "samples:x") { id } }`, issueToken("example.com"))

			Expect(response.Errors).NotTo(BeEmpty())
		})

		It("should keep queries open without a token", func() {
			response := doGraphQL(`{ allSamples { totalCount } }`, "")

			Expect(response.Errors).To(BeEmpty())
		})

		It("should gate the explorer behind the same check", func() {
			denied := httptest.NewRecorder()
			handler.ServeHTTP(denied, httptest.NewRequest(http.MethodGet, "/graphiql", nil))
			Expect(denied.Code).To(Equal(http.StatusUnauthorized))

			allowed := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/graphiql", nil)
			req.Header.Set("Authorization", "Bearer "+issueToken("gmail.com"))
			handler.ServeHTTP(allowed, req)
			Expect(allowed.Code).To(Equal(http.StatusOK))
			Expect(allowed.Header().Get("Content-Type")).To(ContainSubstring("text/html"))
		})
	})

	Context("request shape", func() {
		It("should reject an unparsable body", func() {
			req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte("{broken")))
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
