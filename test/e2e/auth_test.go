//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package e2e

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Kilat-Pet-Delivery/petfriends/pkg/petfriends"
)

var _ = Describe("Authentication", func() {
	Context("When requesting an API key", func() {
		It("should return a key for valid credentials", func() {
			resp, err := client.GetAPIKey(ctx, cfg.Email, cfg.Password)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Has(petfriends.AuthKeyField)).To(BeTrue(), "body should carry a key: %s", resp.Text())
			Expect(resp.String(petfriends.AuthKeyField)).NotTo(BeEmpty())
		})

		It("should return the same key on repeated requests", func() {
			first := authKey()
			second := authKey()
			Expect(second.Key()).To(Equal(first.Key()))
		})

		DescribeTable("should reject invalid credentials with 403 and no key",
			func(email, password func() string) {
				resp, err := client.GetAPIKey(ctx, email(), password())
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusForbidden))
				Expect(resp.Has(petfriends.AuthKeyField)).To(BeFalse())
				Expect(resp.Contains("Forbidden")).To(BeTrue())
			},
			Entry("empty email and password",
				func() string { return "" }, func() string { return "" }),
			Entry("empty password",
				func() string { return cfg.Email }, func() string { return "" }),
			Entry("empty email",
				func() string { return "" }, func() string { return cfg.Password }),
			Entry("wrong password",
				func() string { return cfg.Email }, func() string { return cfg.Password + "-wrong" }),
			Entry("unknown email",
				func() string { return generateName("nobody") + "@petfriends.test" }, func() string { return cfg.Password }),
		)
	})
})
