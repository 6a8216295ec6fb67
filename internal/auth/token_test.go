package auth_test

import (
	"strings"
	"time"

	apperrors "github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("JWTTokenGenerator", func() {
	var (
		gen       *auth.JWTTokenGenerator
		principal auth.Principal
	)

	BeforeEach(func() {
		gen = auth.NewJWTTokenGenerator("unit-test-secret-value", 0)
		principal = auth.Principal{EmployeeID: 42, Email: "ann@corp.io", Role: auth.RoleHR, Name: "Ann Lee"}
	})

	It("defaults to a 24 hour lifetime", func() {
		Expect(gen.TTL).To(Equal(24 * time.Hour))
	})

	It("round-trips identity, email, role and name", func() {
		token, err := gen.GenerateAccessToken(principal)
		Expect(err).NotTo(HaveOccurred())

		claims, err := gen.ValidateToken(token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.Subject).To(Equal("42"))
		Expect(claims.Email).To(Equal("ann@corp.io"))
		Expect(claims.Role).To(Equal("hr"))
		Expect(claims.Name).To(Equal("Ann Lee"))
		Expect(claims.ExpiresAt.Sub(claims.IssuedAt.Time)).To(Equal(24 * time.Hour))

		id, err := claims.EmployeeID()
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(Equal(int64(42)))
	})

	It("rejects an expired token", func() {
		past := gen.WithClock(func() time.Time { return time.Now().Add(-25 * time.Hour) })
		token, err := past.GenerateAccessToken(principal)
		Expect(err).NotTo(HaveOccurred())

		_, err = gen.ValidateToken(token)
		Expect(err).To(MatchError(apperrors.ErrTokenExpired))
	})

	It("rejects a token signed with another secret", func() {
		other := auth.NewJWTTokenGenerator("some-other-secret-value", 0)
		token, err := other.GenerateAccessToken(principal)
		Expect(err).NotTo(HaveOccurred())

		_, err = gen.ValidateToken(token)
		Expect(err).To(MatchError(apperrors.ErrInvalidToken))
	})

	It("rejects the none algorithm", func() {
		claims := jwt.MapClaims{"sub": "42", "role": "hr", "exp": time.Now().Add(time.Hour).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		Expect(err).NotTo(HaveOccurred())

		_, err = gen.ValidateToken(token)
		Expect(err).To(MatchError(apperrors.ErrInvalidToken))
	})

	It("rejects garbage", func() {
		_, err := gen.ValidateToken("not.a.token")
		Expect(err).To(MatchError(apperrors.ErrInvalidToken))
		_, err = gen.ValidateToken(strings.Repeat("x", 10))
		Expect(err).To(MatchError(apperrors.ErrInvalidToken))
	})

	DescribeTable("flags malformed identities",
		func(subject string) {
			c := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}}
			_, err := c.EmployeeID()
			Expect(err).To(MatchError(apperrors.ErrMalformedIdentity))
		},
		Entry("empty", ""),
		Entry("word", "abc"),
		Entry("zero", "0"),
		Entry("negative", "-3"),
	)
})
