package ticket_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vyrtus/helpdesk/internal/ticket"
)

var everyStatus = []ticket.Status{
	ticket.StatusAguardandoAtendimento,
	ticket.StatusEmAtendimento,
	ticket.StatusAguardandoCliente,
	ticket.StatusElaborandoOrcamento,
	ticket.StatusAtendimentoAgendado,
	ticket.StatusConcluido,
	ticket.StatusCancelado,
}

var _ = Describe("Bucket", func() {
	Describe("ParseBucket", func() {
		It("should default an empty string to all", func() {
			b, err := ticket.ParseBucket("")
			Expect(err).ToNot(HaveOccurred())
			Expect(b).To(Equal(ticket.BucketAll))
		})

		It("should reject an unknown bucket", func() {
			_, err := ticket.ParseBucket("archived")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Matches", func() {
		It("should place every status in exactly one of open or closed", func() {
			for _, s := range everyStatus {
				open := ticket.BucketOpen.Matches(s)
				closed := ticket.BucketClosed.Matches(s)
				Expect(open != closed).To(BeTrue(), "status %q must be open xor closed", s)
			}
		})

		It("should keep in_progress and waiting inside open", func() {
			for _, s := range everyStatus {
				if ticket.BucketInProgress.Matches(s) || ticket.BucketWaiting.Matches(s) {
					Expect(ticket.BucketOpen.Matches(s)).To(BeTrue())
				}
			}
		})

		It("should keep in_progress and waiting disjoint", func() {
			for _, s := range everyStatus {
				both := ticket.BucketInProgress.Matches(s) && ticket.BucketWaiting.Matches(s)
				Expect(both).To(BeFalse())
			}
		})

		It("should close only Concluído and Cancelado", func() {
			Expect(ticket.BucketClosed.Matches(ticket.StatusConcluido)).To(BeTrue())
			Expect(ticket.BucketClosed.Matches(ticket.StatusCancelado)).To(BeTrue())
			Expect(ticket.BucketClosed.Matches(ticket.StatusAguardandoCliente)).To(BeFalse())
		})
	})

	Describe("Counts", func() {
		It("should total open plus closed to the whole collection", func() {
			tickets := make([]*ticket.Ticket, 0, len(everyStatus))
			for i, s := range everyStatus {
				tickets = append(tickets, &ticket.Ticket{ID: string(rune('a' + i)), Status: s})
			}

			counts := ticket.Counts(tickets)

			Expect(counts[ticket.BucketAll]).To(Equal(len(tickets)))
			Expect(counts[ticket.BucketOpen] + counts[ticket.BucketClosed]).To(Equal(len(tickets)))
			Expect(counts[ticket.BucketInProgress]).To(Equal(2))
			Expect(counts[ticket.BucketWaiting]).To(Equal(2))
			Expect(counts[ticket.BucketClosed]).To(Equal(2))
		})

		It("should report zeroes for an empty collection", func() {
			counts := ticket.Counts(nil)

			Expect(counts[ticket.BucketAll]).To(Equal(0))
			Expect(counts[ticket.BucketOpen]).To(Equal(0))
			Expect(counts[ticket.BucketClosed]).To(Equal(0))
		})
	})

	Describe("Filter", func() {
		It("should return only tickets in the requested bucket", func() {
			tickets := []*ticket.Ticket{
				{ID: "1", Status: ticket.StatusEmAtendimento},
				{ID: "2", Status: ticket.StatusConcluido},
				{ID: "3", Status: ticket.StatusAguardandoAtendimento},
			}

			open := ticket.Filter(tickets, ticket.BucketOpen)

			Expect(open).To(HaveLen(2))
			for _, t := range open {
				Expect(ticket.BucketOpen.Matches(t.Status)).To(BeTrue())
			}
		})
	})
})
