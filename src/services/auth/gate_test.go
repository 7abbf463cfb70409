package auth_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"samplecatalog/src/services/auth"
)

var _ = Describe("Authorize", func() {
	const requiredDomain = "gmail.com"

	It("should always pass when auth is disabled", func() {
		Expect(auth.Authorize(nil, requiredDomain, true)).To(BeTrue())
		Expect(auth.Authorize(&auth.Claims{HostedDomain: "example.com"}, requiredDomain, true)).To(BeTrue())
	})

	It("should fail closed on absent claims", func() {
		Expect(auth.Authorize(nil, requiredDomain, false)).To(BeFalse())
	})

	It("should fail closed on an empty hosted domain", func() {
		Expect(auth.Authorize(&auth.Claims{}, requiredDomain, false)).To(BeFalse())
	})

	It("should refuse claims issued for another domain", func() {
		claims := &auth.Claims{HostedDomain: "example.com"}

		Expect(auth.Authorize(claims, requiredDomain, false)).To(BeFalse())
	})

	It("should admit claims issued for the required domain", func() {
		claims := &auth.Claims{HostedDomain: "gmail.com"}

		Expect(auth.Authorize(claims, requiredDomain, false)).To(BeTrue())
	})
})

var _ = Describe("TokenParser", func() {
	var parser *auth.TokenParser

	BeforeEach(func() {
		parser = auth.NewTokenParser([]byte("test-signing-key"))
	})

	It("should round-trip claims through a signed token", func() {
		// ARRANGE
		issued := auth.Claims{HostedDomain: "gmail.com", Email: "dev@gmail.com"}

		// ACT
		token, err := parser.IssueToken(issued)
		Expect(err).NotTo(HaveOccurred())
		parsed, err := parser.Parse(token)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.HostedDomain).To(Equal("gmail.com"))
		Expect(parsed.Email).To(Equal("dev@gmail.com"))
	})

	It("should reject a token signed with a different key", func() {
		other := auth.NewTokenParser([]byte("some-other-key"))
		token, err := other.IssueToken(auth.Claims{HostedDomain: "gmail.com"})
		Expect(err).NotTo(HaveOccurred())

		_, err = parser.Parse(token)

		Expect(err).To(HaveOccurred())
	})

	Describe("FromAuthorizationHeader", func() {
		It("should extract claims from a bearer header", func() {
			token, err := parser.IssueToken(auth.Claims{HostedDomain: "gmail.com"})
			Expect(err).NotTo(HaveOccurred())

			claims := parser.FromAuthorizationHeader("Bearer " + token)

			Expect(claims).NotTo(BeNil())
			Expect(claims.HostedDomain).To(Equal("gmail.com"))
		})

		It("should yield absent claims for an empty header", func() {
			Expect(parser.FromAuthorizationHeader("")).To(BeNil())
		})

		It("should yield absent claims for garbage rather than an error", func() {
			Expect(parser.FromAuthorizationHeader("Bearer not.a.token")).To(BeNil())
			Expect(parser.FromAuthorizationHeader("complete nonsense")).To(BeNil())
		})
	})
})
