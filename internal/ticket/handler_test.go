package ticket_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vyrtus/helpdesk/internal/auth"
	"github.com/vyrtus/helpdesk/internal/ticket"
)

var _ = Describe("Ticket Handler Integration", func() {
	var (
		service *ticket.Service
		handler *ticket.Handler
		router  *chi.Mux
		agent   *auth.User
	)

	withUser := func(r *http.Request) *http.Request {
		return r.WithContext(auth.ContextWithUser(r.Context(), agent))
	}

	BeforeEach(func() {
		mockRepo := newMockTicketRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		catalog := &mockAssetCatalog{ownership: map[string][]string{"c2": {"220003"}}}
		service = ticket.NewService(mockRepo, catalog, nil, logger)
		handler = ticket.NewHandler(service)
		agent = &auth.User{ID: "user-1", Name: "Guilherme Pessoa"}

		router = chi.NewRouter()
		router.Get("/tickets", handler.ListTickets)
		router.Post("/tickets", handler.CreateTicket)
		router.Get("/tickets/stats", handler.GetStats)
		router.Get("/tickets/{id}", handler.GetTicket)
		router.Patch("/tickets/{id}", handler.UpdateTicket)
		router.Get("/tickets/{id}/activities", handler.ListActivities)
		router.Post("/tickets/{id}/activities", handler.AddComment)
	})

	createTicket := func() *ticket.Ticket {
		t, err := service.Create(context.Background(), ticket.CreateTicketDTO{
			Title:       "Sem acesso à VPN",
			ClientID:    "c2",
			RequesterID: 4,
			Label:       ticket.LabelRede,
			Type:        ticket.DemandRelatoProblema,
		}, ticket.Actor{ID: agent.ID, Name: agent.Name})
		Expect(err).ToNot(HaveOccurred())
		return t
	}

	Describe("POST /tickets", func() {
		It("should create a ticket and return 201", func() {
			body, _ := json.Marshal(map[string]any{
				"title":        "Sem acesso à VPN",
				"client_id":    "c2",
				"requester_id": 4,
				"label":        "Rede",
				"type":         "Relato de Problema",
			})
			req := withUser(httptest.NewRequest(http.MethodPost, "/tickets", bytes.NewReader(body)))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var created ticket.Ticket
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
			Expect(created.ID).ToNot(BeEmpty())
			Expect(created.Status).To(Equal(ticket.StatusAguardandoAtendimento))
		})

		It("should return 400 for a payload without a title", func() {
			body, _ := json.Marshal(map[string]any{"client_id": "c2"})
			req := withUser(httptest.NewRequest(http.MethodPost, "/tickets", bytes.NewReader(body)))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 401 without a session user", func() {
			body, _ := json.Marshal(map[string]any{"title": "x"})
			req := httptest.NewRequest(http.MethodPost, "/tickets", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GET /tickets", func() {
		It("should return 400 for an unknown bucket", func() {
			req := withUser(httptest.NewRequest(http.MethodGet, "/tickets?bucket=archived", nil))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should filter by bucket", func() {
			created := createTicket()

			req := withUser(httptest.NewRequest(http.MethodGet, "/tickets?bucket=closed", nil))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var payload struct {
				Tickets []*ticket.Ticket `json:"tickets"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
			Expect(payload.Tickets).To(BeEmpty())

			req = withUser(httptest.NewRequest(http.MethodGet, "/tickets?bucket=open", nil))
			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
			Expect(payload.Tickets).To(HaveLen(1))
			Expect(payload.Tickets[0].ID).To(Equal(created.ID))
		})
	})

	Describe("GET /tickets/{id}", func() {
		It("should return 404 for an unknown id", func() {
			req := withUser(httptest.NewRequest(http.MethodGet, "/tickets/missing", nil))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("PATCH /tickets/{id}", func() {
		It("should apply a status change and expose it in the activity log", func() {
			created := createTicket()

			body, _ := json.Marshal(map[string]any{"status": "Em Atendimento"})
			req := withUser(httptest.NewRequest(http.MethodPatch, "/tickets/"+created.ID, bytes.NewReader(body)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			req = withUser(httptest.NewRequest(http.MethodGet, "/tickets/"+created.ID+"/activities", nil))
			rec = httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var payload struct {
				Activities []*ticket.Activity `json:"activities"`
			}
			Expect(json.Unmarshal(rec.Body.Bytes(), &payload)).To(Succeed())
			Expect(payload.Activities).To(HaveLen(2))
		})
	})

	Describe("POST /tickets/{id}/activities", func() {
		It("should append a comment and return 201", func() {
			created := createTicket()

			body, _ := json.Marshal(map[string]any{"content": "Agendado para amanhã."})
			req := withUser(httptest.NewRequest(http.MethodPost, "/tickets/"+created.ID+"/activities", bytes.NewReader(body)))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var comment ticket.Activity
			Expect(json.Unmarshal(rec.Body.Bytes(), &comment)).To(Succeed())
			Expect(comment.Kind).To(Equal(ticket.ActivityComment))
			Expect(comment.AuthorName).To(Equal(agent.Name))
		})
	})

	Describe("GET /tickets/stats", func() {
		It("should count the open ticket in open and all", func() {
			createTicket()

			req := withUser(httptest.NewRequest(http.MethodGet, "/tickets/stats", nil))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var counts map[string]int
			Expect(json.Unmarshal(rec.Body.Bytes(), &counts)).To(Succeed())
			Expect(counts["open"]).To(Equal(1))
			Expect(counts["all"]).To(Equal(1))
			Expect(counts["closed"]).To(Equal(0))
		})
	})
})
