//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package e2e

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kilat-Pet-Delivery/petfriends/pkg/petfriends"
)

var _ = Describe("Deleting pets", func() {
	var (
		key petfriends.AuthKey
		pet petfriends.Pet
	)

	BeforeEach(func() {
		key = authKey()
		pet = createPetWithCleanup(key, generateName("delete"), "parrot", "7")
	})

	Context("When deleting my pet", func() {
		It("should remove it from my pets", func() {
			resp, err := client.DeletePet(ctx, key, pet.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.Text())

			list, err := client.ListPets(ctx, key, petfriends.FilterMyPets)
			Expect(err).NotTo(HaveOccurred())
			Expect(list.StatusCode).To(Equal(http.StatusOK))
			Expect(petIDs(list)).NotTo(ContainElement(pet.ID))
		})

		It("should return 404 when deleting it again", func() {
			first, err := client.DeletePet(ctx, key, pet.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.StatusCode).To(Equal(http.StatusOK))

			second, err := client.DeletePet(ctx, key, pet.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Context("When the pet id is empty or invalid", func() {
		DescribeTable("should return 404 and Not Found",
			func(petID string) {
				resp, err := client.DeletePet(ctx, key, petID)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
				Expect(resp.Contains("Not Found")).To(BeTrue())
			},
			Entry("empty id", ""),
			Entry("malformed id", "not-a-pet-id"),
		)
	})

	Context("When the key is invalid", func() {
		It("should return 403 and keep the pet", func() {
			resp, err := client.DeletePet(ctx, invalidKey, pet.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			Expect(resp.Contains("Forbidden")).To(BeTrue())

			list, err := client.ListPets(ctx, key, petfriends.FilterMyPets)
			Expect(err).NotTo(HaveOccurred())
			Expect(petIDs(list)).To(ContainElement(pet.ID))
		})
	})
})
