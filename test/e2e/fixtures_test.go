//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package e2e

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kilat-Pet-Delivery/petfriends/pkg/petfriends"
)

// invalidKey is a well-formed key no account owns.
var invalidKey = petfriends.AuthKey{petfriends.AuthKeyField: "ea738148a1f19838e1c5d1413877f3691a3731380e733e877b0ae729"}

// fixture returns an image from the fixtures directory.
func fixture(name string) petfriends.Photo {
	return petfriends.PhotoFile(filepath.Join(cfg.FixturesDir, name))
}

func generateName(prefix string) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(b))
}

// authKey authenticates with the configured credentials.
func authKey() petfriends.AuthKey {
	GinkgoHelper()

	resp, err := client.GetAPIKey(ctx, cfg.Email, cfg.Password)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "authentication failed: %s", resp.Text())

	key, ok := resp.AuthKey()
	Expect(ok).To(BeTrue(), "response should carry %q", petfriends.AuthKeyField)
	return key
}

// createPetWithCleanup creates a pet without a photo and deletes it when the spec ends.
func createPetWithCleanup(key petfriends.AuthKey, name, animalType, age string) petfriends.Pet {
	GinkgoHelper()

	resp, err := client.AddPetSimple(ctx, key, name, animalType, age)
	Expect(err).NotTo(HaveOccurred())
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "creating pet failed: %s", resp.Text())

	pet, err := resp.Pet()
	Expect(err).NotTo(HaveOccurred())
	Expect(pet.ID).NotTo(BeEmpty())

	deleteOnCleanup(key, pet.ID)
	GinkgoWriter.Printf("Created pet %s (%s)\n", pet.ID, pet.Name)
	return pet
}

// deleteOnCleanup removes a pet at the end of the spec. A pet the spec already
// deleted answers 404 and is ignored.
func deleteOnCleanup(key petfriends.AuthKey, petID string) {
	DeferCleanup(func() {
		resp, err := client.DeletePet(ctx, key, petID)
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(BeElementOf(http.StatusOK, http.StatusNotFound),
			"cleanup of pet %s: %s", petID, resp.Text())
	})
}

// petIDs lists the ids of a listing response.
func petIDs(resp *petfriends.Response) []string {
	GinkgoHelper()

	pets, err := resp.Pets()
	Expect(err).NotTo(HaveOccurred())
	ids := make([]string, len(pets))
	for i, p := range pets {
		ids[i] = p.ID
	}
	return ids
}
