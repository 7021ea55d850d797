//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package e2e

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kilat-Pet-Delivery/petfriends/pkg/petfriends"
)

var _ = Describe("Listing pets", func() {
	var (
		key petfriends.AuthKey
		pet petfriends.Pet
	)

	BeforeEach(func() {
		key = authKey()
		pet = createPetWithCleanup(key, generateName("list"), "cat", "2")
	})

	Context("When listing all pets", func() {
		It("should return a non-empty collection", func() {
			resp, err := client.ListPets(ctx, key, petfriends.FilterAll)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			pets, err := resp.Pets()
			Expect(err).NotTo(HaveOccurred())
			Expect(pets).NotTo(BeEmpty())
			GinkgoWriter.Printf("Listed %d pets\n", len(pets))
		})
	})

	Context("When listing my pets", func() {
		It("should include the pet just created", func() {
			resp, err := client.ListPets(ctx, key, petfriends.FilterMyPets)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(petIDs(resp)).To(ContainElement(pet.ID))
		})
	})

	Context("When the key is invalid", func() {
		It("should return 403", func() {
			resp, err := client.ListPets(ctx, invalidKey, petfriends.FilterAll)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			Expect(resp.Contains("Forbidden")).To(BeTrue())
			Expect(resp.Has("pets")).To(BeFalse())
		})

		It("should return 403 for an empty key", func() {
			resp, err := client.ListPets(ctx, petfriends.AuthKey{}, petfriends.FilterMyPets)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
		})
	})
})
