package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/agrilabs/fivetran-sync-agent/internal/services"
)

var _ = Describe("ConnectorRegistry", func() {
	It("should reject an empty table", func() {
		_, err := services.NewConnectorRegistry(nil)
		Expect(err).To(HaveOccurred())
	})

	It("should reject entries with an empty id", func() {
		_, err := services.NewConnectorRegistry(map[string]string{"hubspot": ""})
		Expect(err).To(HaveOccurred())
	})

	It("should resolve known names and reject unknown ones", func() {
		registry, err := services.NewConnectorRegistry(map[string]string{
			"hubspot":         "embarkation_cropped",
			"sherwood_palsql": "tidy_interval",
		})
		Expect(err).NotTo(HaveOccurred())

		id, err := registry.Resolve("hubspot")
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal("embarkation_cropped"))

		_, err = registry.Resolve("not_a_connector")
		Expect(err).To(MatchError(services.ErrUnknownConnector))
	})

	It("should list the known names sorted", func() {
		registry, err := services.NewConnectorRegistry(map[string]string{
			"sherwood_palsql": "tidy_interval",
			"hubspot":         "embarkation_cropped",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(registry.Names()).To(Equal([]string{"hubspot", "sherwood_palsql"}))
	})
})
