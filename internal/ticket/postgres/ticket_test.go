package postgres

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vyrtus/helpdesk/internal"
	"github.com/vyrtus/helpdesk/internal/ticket"
)

func TestTicketRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TicketRepository Suite")
}

var _ = Describe("TicketRepository", func() {
	var (
		db   *gorm.DB
		repo ticket.Repository
	)

	newTicket := func(id string, status ticket.Status, assetIDs ...string) *ticket.Ticket {
		now := time.Now()
		return &ticket.Ticket{
			ID:                id,
			Title:             "Servidor fora do ar",
			Description:       "sem resposta",
			ClientID:          "c1",
			RequesterID:       1,
			RequesterName:     "Maria Silva",
			AssetIDs:          assetIDs,
			Label:             ticket.LabelHardware,
			Status:            status,
			Type:              ticket.DemandRelatoProblema,
			LastUpdatedByID:   "user-1",
			LastUpdatedByName: "Guilherme Pessoa",
			CreatedAt:         now,
			UpdatedAt:         now,
		}
	}

	openedActivity := func(ticketID string) *ticket.Activity {
		return &ticket.Activity{
			ID:         ticketID + "-a1",
			TicketID:   ticketID,
			AuthorID:   "user-1",
			AuthorName: "Guilherme Pessoa",
			Content:    "Chamado aberto no sistema.",
			Kind:       ticket.ActivityStatusChange,
			CreatedAt:  time.Now(),
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&ticket.Ticket{}, &ticket.Activity{}, &ticket.Attachment{}, &AssetLink{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewTicketRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("CreateWithActivity", func() {
		It("should persist ticket, asset links and activity together", func() {
			t := newTicket("t1", ticket.StatusAguardandoAtendimento, "220001", "220002")

			err := repo.CreateWithActivity(t, openedActivity("t1"))
			Expect(err).NotTo(HaveOccurred())

			stored, err := repo.GetByID("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Title).To(Equal(t.Title))
			Expect(stored.AssetIDs).To(ConsistOf("220001", "220002"))

			activities, err := repo.ActivitiesByTicket("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(activities).To(HaveLen(1))
			Expect(activities[0].Content).To(Equal("Chamado aberto no sistema."))
		})
	})

	Describe("GetByID", func() {
		It("should return a typed not found error", func() {
			_, err := repo.GetByID("missing")

			Expect(err).To(MatchError(internal.ErrTicketNotFound))
		})

		It("should return an empty asset list rather than nil", func() {
			t := newTicket("t1", ticket.StatusAguardandoAtendimento)
			Expect(repo.CreateWithActivity(t, openedActivity("t1"))).To(Succeed())

			stored, err := repo.GetByID("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.AssetIDs).NotTo(BeNil())
			Expect(stored.AssetIDs).To(BeEmpty())
		})
	})

	Describe("List", func() {
		It("should return newest first", func() {
			older := newTicket("t1", ticket.StatusAguardandoAtendimento)
			older.CreatedAt = time.Now().Add(-time.Hour)
			newer := newTicket("t2", ticket.StatusEmAtendimento)

			Expect(repo.CreateWithActivity(older, openedActivity("t1"))).To(Succeed())
			Expect(repo.CreateWithActivity(newer, openedActivity("t2"))).To(Succeed())

			tickets, err := repo.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(tickets).To(HaveLen(2))
			Expect(tickets[0].ID).To(Equal("t2"))
			Expect(tickets[1].ID).To(Equal("t1"))
		})
	})

	Describe("UpdateWithActivity", func() {
		It("should replace asset links with the new selection", func() {
			t := newTicket("t1", ticket.StatusAguardandoAtendimento, "220001", "220002")
			Expect(repo.CreateWithActivity(t, openedActivity("t1"))).To(Succeed())

			t.AssetIDs = []string{"220003"}
			Expect(repo.UpdateWithActivity(t, nil)).To(Succeed())

			stored, err := repo.GetByID("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.AssetIDs).To(Equal([]string{"220003"}))
		})

		It("should append the status activity when one is given", func() {
			t := newTicket("t1", ticket.StatusAguardandoAtendimento)
			Expect(repo.CreateWithActivity(t, openedActivity("t1"))).To(Succeed())

			t.Status = ticket.StatusEmAtendimento
			change := &ticket.Activity{
				ID:        "t1-a2",
				TicketID:  "t1",
				AuthorID:  "user-1",
				Content:   `Status alterado de "Aguardando Atendimento" para "Em Atendimento".`,
				Kind:      ticket.ActivityStatusChange,
				CreatedAt: time.Now(),
			}
			Expect(repo.UpdateWithActivity(t, change)).To(Succeed())

			activities, err := repo.ActivitiesByTicket("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(activities).To(HaveLen(2))
			Expect(activities[1].ID).To(Equal("t1-a2"))
		})
	})

	Describe("AddAttachment", func() {
		It("should surface the attachment on the next read", func() {
			t := newTicket("t1", ticket.StatusAguardandoAtendimento)
			Expect(repo.CreateWithActivity(t, openedActivity("t1"))).To(Succeed())

			att := &ticket.Attachment{
				ID:       "att1",
				TicketID: "t1",
				FileName: "diagnostico.pdf",
				FileSize: 2048,
				MimeType: "application/pdf",
			}
			change := &ticket.Activity{
				ID:        "t1-a2",
				TicketID:  "t1",
				AuthorID:  "user-1",
				Content:   "Anexo adicionado: diagnostico.pdf.",
				Kind:      ticket.ActivityAttachment,
				CreatedAt: time.Now(),
			}
			Expect(repo.AddAttachment(att, change)).To(Succeed())

			stored, err := repo.GetByID("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Attachments).To(HaveLen(1))
			Expect(stored.Attachments[0].FileName).To(Equal("diagnostico.pdf"))

			activities, err := repo.ActivitiesByTicket("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(activities).To(HaveLen(2))
		})
	})

	Describe("CreateActivity", func() {
		It("should append comments in order", func() {
			t := newTicket("t1", ticket.StatusAguardandoAtendimento)
			Expect(repo.CreateWithActivity(t, openedActivity("t1"))).To(Succeed())

			comment := &ticket.Activity{
				ID:        "t1-c1",
				TicketID:  "t1",
				AuthorID:  "user-2",
				Content:   "Cliente avisado.",
				Kind:      ticket.ActivityComment,
				CreatedAt: time.Now().Add(time.Second),
			}
			Expect(repo.CreateActivity(comment)).To(Succeed())

			activities, err := repo.ActivitiesByTicket("t1")
			Expect(err).NotTo(HaveOccurred())
			Expect(activities).To(HaveLen(2))
			Expect(activities[1].Kind).To(Equal(ticket.ActivityComment))
		})
	})
})
