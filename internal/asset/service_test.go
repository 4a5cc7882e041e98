package asset_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/vyrtus/helpdesk/internal/asset"
)

func TestAsset(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Suite")
}

type mockAssetRepository struct {
	assets    []*asset.Asset
	listError error
}

func (m *mockAssetRepository) List() ([]*asset.Asset, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.assets, nil
}

func (m *mockAssetRepository) ByClient(clientID string) ([]*asset.Asset, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	owned := make([]*asset.Asset, 0)
	for _, a := range m.assets {
		if a.ClientID == clientID {
			owned = append(owned, a)
		}
	}
	return owned, nil
}

var _ = Describe("AssetService", func() {
	var (
		service  *asset.Service
		mockRepo *mockAssetRepository
	)

	BeforeEach(func() {
		mockRepo = &mockAssetRepository{
			assets: []*asset.Asset{
				{ID: "220001", ClientID: "c1", Type: "Servidor", Brand: "Dell", Model: "PowerEdge R740", SerialNumber: "SN-BC-001"},
				{ID: "220002", ClientID: "c1", Type: "Switch", Brand: "Cisco", Model: "Catalyst 2960", SerialNumber: "SN-BC-002"},
				{ID: "220003", ClientID: "c2", Type: "Desktop", Brand: "HP", Model: "EliteDesk 800", SerialNumber: "SN-LE-101"},
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = asset.NewService(mockRepo, logger)
	})

	Describe("Search", func() {
		It("should restrict results to the owning client", func() {
			results, err := service.Search("c1", "")

			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(2))
			for _, a := range results {
				Expect(a.ClientID).To(Equal("c1"))
			}
		})

		It("should match brand case-insensitively", func() {
			results, err := service.Search("", "dell")

			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].ID).To(Equal("220001"))
		})

		It("should match over id, model and serial number", func() {
			byID, err := service.Search("", "220003")
			Expect(err).ToNot(HaveOccurred())
			Expect(byID).To(HaveLen(1))

			byModel, err := service.Search("", "catalyst")
			Expect(err).ToNot(HaveOccurred())
			Expect(byModel).To(HaveLen(1))

			bySerial, err := service.Search("", "sn-le")
			Expect(err).ToNot(HaveOccurred())
			Expect(bySerial).To(HaveLen(1))
		})

		It("should return everything for an empty query without a client", func() {
			results, err := service.Search("", "")

			Expect(err).ToNot(HaveOccurred())
			Expect(results).To(HaveLen(3))
		})
	})

	Describe("ReconcileSelection", func() {
		It("should drop ids that belong to another client after a switch", func() {
			// Selection made while on c1, then the ticket moves to c2
			kept, err := service.ReconcileSelection([]string{"220001", "220002"}, "c2")

			Expect(err).ToNot(HaveOccurred())
			Expect(kept).To(BeEmpty())
		})

		It("should keep ids still owned by the new client", func() {
			kept, err := service.ReconcileSelection([]string{"220001", "220003"}, "c2")

			Expect(err).ToNot(HaveOccurred())
			Expect(kept).To(Equal([]string{"220003"}))
		})

		It("should drop ids that do not exist at all", func() {
			kept, err := service.ReconcileSelection([]string{"999999"}, "c1")

			Expect(err).ToNot(HaveOccurred())
			Expect(kept).To(BeEmpty())
		})
	})
})
