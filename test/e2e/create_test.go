//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package e2e

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kilat-Pet-Delivery/petfriends/pkg/petfriends"
)

var _ = Describe("Creating pets", func() {
	var key petfriends.AuthKey

	BeforeEach(func() {
		key = authKey()
	})

	// add issues the create call and schedules removal of whatever it created.
	add := func(name, animalType, age string, photo petfriends.Photo) *petfriends.Response {
		GinkgoHelper()
		resp, err := client.AddPet(ctx, key, name, animalType, age, photo)
		Expect(err).NotTo(HaveOccurred())
		if id := resp.String("id"); id != "" {
			deleteOnCleanup(key, id)
		}
		return resp
	}

	Context("When creating a pet with a photo", func() {
		It("should return the created record", func() {
			resp := add("Кроль", "кролик", "3", fixture("krol.jpg"))
			Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.Text())

			pet, err := resp.Pet()
			Expect(err).NotTo(HaveOccurred())
			Expect(pet.ID).NotTo(BeEmpty())
			Expect(pet.Name).To(Equal("Кроль"))
			Expect(pet.AnimalType).To(Equal("кролик"))
			Expect(string(pet.Age)).To(Equal("3"))
			Expect(pet.PetPhoto).NotTo(BeEmpty())
		})

		It("should keep empty fields empty", func() {
			resp := add("", "", "", fixture("krol.jpg"))
			Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.Text())

			pet, err := resp.Pet()
			Expect(err).NotTo(HaveOccurred())
			Expect(pet.Name).To(BeEmpty())
			Expect(pet.AnimalType).To(BeEmpty())
			Expect(string(pet.Age)).To(BeEmpty())
		})

		It("should show the new pet in my pets", func() {
			name := generateName("Ослик")
			resp := add(name, "осел", "5", fixture("oslic.png"))
			Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.Text())
			id := resp.String("id")

			list, err := client.ListPets(ctx, key, petfriends.FilterMyPets)
			Expect(err).NotTo(HaveOccurred())
			Expect(list.StatusCode).To(Equal(http.StatusOK))
			Expect(petIDs(list)).To(ContainElement(id))
		})
	})

	Context("When creating a pet without a photo", func() {
		It("should accept the multipart call without a file part", func() {
			resp := add("Барсик", "кот", "4", petfriends.Photo{})
			Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.Text())
			Expect(resp.String("name")).To(Equal("Барсик"))
			Expect(resp.String("pet_photo")).To(BeEmpty())
		})

		It("should accept the simple form call", func() {
			resp, err := client.AddPetSimple(ctx, key, "Мурка", "кошка", "1")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.Text())
			deleteOnCleanup(key, resp.String("id"))

			pet, err := resp.Pet()
			Expect(err).NotTo(HaveOccurred())
			Expect(pet.Name).To(Equal("Мурка"))
			Expect(pet.AnimalType).To(Equal("кошка"))
			Expect(string(pet.Age)).To(Equal("1"))
		})
	})

	Context("When the key is invalid", func() {
		It("should return 403 for a photo create", func() {
			resp, err := client.AddPet(ctx, invalidKey, "Кроль", "кролик", "3", fixture("krol.jpg"))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			Expect(resp.Contains("Forbidden")).To(BeTrue())
		})

		It("should return 403 for a simple create", func() {
			resp, err := client.AddPetSimple(ctx, invalidKey, "Кроль", "кролик", "3")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
			Expect(resp.Contains("Forbidden")).To(BeTrue())
		})
	})

	Context("When the photo file is missing", func() {
		It("should fail before sending the request", func() {
			resp, err := client.AddPet(ctx, key, "Кроль", "кролик", "3", fixture("missing.jpg"))
			Expect(err).To(HaveOccurred())
			Expect(resp).To(BeNil())
		})
	})
})
