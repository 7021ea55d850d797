//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package e2e

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kilat-Pet-Delivery/petfriends/pkg/petfriends"
)

var _ = Describe("Pet photos", func() {
	var (
		key petfriends.AuthKey
		pet petfriends.Pet
	)

	BeforeEach(func() {
		key = authKey()
		pet = createPetWithCleanup(key, generateName("photo"), "dog", "6")
		Expect(pet.PetPhoto).To(BeEmpty())
	})

	Context("When attaching a photo to my pet", func() {
		It("should return the pet with the photo set", func() {
			resp, err := client.SetPhoto(ctx, key, pet.ID, fixture("krol.jpg"))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.Text())

			updated, err := resp.Pet()
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(pet.ID))
			Expect(updated.Name).To(Equal(pet.Name))
			Expect(updated.PetPhoto).NotTo(BeEmpty())
		})

		It("should replace an existing photo", func() {
			first, err := client.SetPhoto(ctx, key, pet.ID, fixture("krol.jpg"))
			Expect(err).NotTo(HaveOccurred())
			Expect(first.StatusCode).To(Equal(http.StatusOK))

			second, err := client.SetPhoto(ctx, key, pet.ID, fixture("oslic.png"))
			Expect(err).NotTo(HaveOccurred())
			Expect(second.StatusCode).To(Equal(http.StatusOK))
			Expect(second.String("pet_photo")).NotTo(Equal(first.String("pet_photo")))
		})
	})

	Context("When the key is invalid", func() {
		It("should return 403", func() {
			resp, err := client.SetPhoto(ctx, invalidKey, pet.ID, fixture("krol.jpg"))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			Expect(resp.Contains("Forbidden")).To(BeTrue())
		})
	})

	Context("When the pet id is empty", func() {
		It("should return 404", func() {
			resp, err := client.SetPhoto(ctx, key, "", fixture("krol.jpg"))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			Expect(resp.Contains("Not Found")).To(BeTrue())
		})
	})
})
