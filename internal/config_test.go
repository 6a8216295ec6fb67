package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() *internal.Config {
	cfg := &internal.Config{
		Database: internal.DatabaseConfig{Source: "postgres://localhost/hr"},
		Security: internal.SecurityConfig{JWTSecret: "0123456789abcdef"},
	}
	cfg.ApplyDefaults()
	return cfg
}

var _ = Describe("Config", func() {
	It("fills defaults", func() {
		cfg := validConfig()
		Expect(cfg.Server.Port).To(Equal(8080))
		Expect(cfg.Server.Origins()).To(Equal([]string{"http://localhost:3000"}))
		Expect(cfg.Security.TokenTTL).To(Equal(24 * time.Hour))
		Expect(cfg.Renewals.Schedule).To(Equal("0 8 * * *"))
		Expect(cfg.Renewals.LookaheadDays).To(Equal(30))
		Expect(cfg.Validate()).To(Succeed())
	})

	It("splits and trims the origin list", func() {
		s := internal.ServerConfig{AllowedOrigins: " http://a.io , ,https://b.io"}
		Expect(s.Origins()).To(Equal([]string{"http://a.io", "https://b.io"}))
	})

	It("rejects a short jwt secret", func() {
		cfg := validConfig()
		cfg.Security.JWTSecret = "short"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("JWTSecret")))
	})

	It("rejects an origin without a scheme", func() {
		cfg := validConfig()
		cfg.Server.AllowedOrigins = "localhost:3000"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("invalid allowed origin")))
	})

	It("rejects more idle than open connections", func() {
		cfg := validConfig()
		cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("max_idle_conns")))
	})
})

var _ = Describe("AppError", func() {
	It("matches its sentinel through copies and wrapping", func() {
		err := fmt.Errorf("repo: %w", internal.ErrEmailTaken.WithCause(errors.New("23505")))
		Expect(errors.Is(err, internal.ErrEmailTaken)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrEmployeeNotFound)).To(BeFalse())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		status, body := appErr.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body.Error).To(Equal("email already exists"))
	})

	It("keeps forbidden sentinels with a shared code apart by message only", func() {
		Expect(errors.Is(internal.ErrHROnly, internal.ErrAccessDenied)).To(BeTrue())
		Expect(internal.ErrHROnly.Error()).NotTo(Equal(internal.ErrAccessDenied.Error()))
	})

	It("classifies malformed identity as 422", func() {
		Expect(internal.ErrMalformedIdentity.StatusCode).To(Equal(http.StatusUnprocessableEntity))
	})
})
