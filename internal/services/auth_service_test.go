package services_test

import (
	"context"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	domainerrors "github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/services"
)

var _ = Describe("AuthService", func() {
	var (
		e   *env
		ctx context.Context
	)

	BeforeEach(func() {
		e = newEnv()
		ctx = context.Background()
		e.provider.identity = &ports.ExternalIdentity{
			Subject: "google-123",
			Email:   "Nova@Example.com",
			Name:    "Nova Paciente",
		}
	})

	Describe("BeginLogin", func() {
		It("inclui a origem no state", func() {
			start := e.auth.BeginLogin(services.OriginReact)
			Expect(start.Nonce).NotTo(BeEmpty())
			Expect(start.RedirectURL).To(HaveSuffix("state=" + start.Nonce + ":react"))
		})

		It("usa só o nonce sem origem", func() {
			start := e.auth.BeginLogin("")
			Expect(start.RedirectURL).To(HaveSuffix("state=" + start.Nonce))
		})
	})

	Describe("CompleteLogin", func() {
		It("rejeita state diferente do cookie", func() {
			_, err := e.auth.CompleteLogin(ctx, "valid-code", "outro:react", "nonce")
			Expect(err).To(MatchError(domainerrors.ErrOAuthState))

			_, err = e.auth.CompleteLogin(ctx, "valid-code", "nonce", "")
			Expect(err).To(MatchError(domainerrors.ErrOAuthState))
		})

		It("rejeita código ausente ou recusado", func() {
			_, err := e.auth.CompleteLogin(ctx, "", "nonce", "nonce")
			Expect(err).To(MatchError(domainerrors.ErrOAuthExchange))

			_, err = e.auth.CompleteLogin(ctx, "bad", "nonce", "nonce")
			Expect(errors.Is(err, domainerrors.ErrOAuthExchange)).To(BeTrue())
		})

		It("regista um novo utilizador com papel user", func() {
			result, err := e.auth.CompleteLogin(ctx, "valid-code", "nonce:react", "nonce")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Origin).To(Equal(services.OriginReact))
			Expect(result.User.Email.String()).To(Equal("nova@example.com"))
			Expect(result.User.Role).To(Equal(entities.RoleUser))
			Expect(*result.User.GoogleID).To(Equal("google-123"))
			Expect(result.Token).To(Equal("token-nova@example.com-user"))

			again, err := e.auth.CompleteLogin(ctx, "valid-code", "nonce", "nonce")
			Expect(err).NotTo(HaveOccurred())
			Expect(again.User.ID).To(Equal(result.User.ID))
			Expect(again.Origin).To(BeEmpty())

			count, err := e.userRepo.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("reaproveita um utilizador existente pelo email", func() {
			admin := e.createUser("Admin", "nova@example.com", "admin")

			result, err := e.auth.CompleteLogin(ctx, "valid-code", "n", "n")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.User.ID).To(Equal(admin.ID))
			Expect(result.User.Role).To(Equal(entities.RoleAdmin))
			Expect(strings.HasSuffix(result.Token, "-admin")).To(BeTrue())
		})

		It("falha quando o provedor falha", func() {
			e.provider.err = errors.New("google down")
			_, err := e.auth.CompleteLogin(ctx, "valid-code", "n", "n")
			Expect(errors.Is(err, domainerrors.ErrOAuthExchange)).To(BeTrue())
		})
	})

	Describe("Authenticate", func() {
		It("constrói o utilizador a partir das claims", func() {
			user, err := e.auth.Authenticate("admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(uint(1)))
			Expect(user.IsAdmin()).To(BeTrue())
		})

		It("rejeita tokens inválidos e papéis desconhecidos", func() {
			_, err := e.auth.Authenticate("lixo")
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))

			_, err = e.auth.Authenticate("intruso")
			Expect(err).To(MatchError(domainerrors.ErrUnauthorized))
		})
	})
})
