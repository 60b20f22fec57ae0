package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
	"github.com/rafabene/agendamento-backend/internal/services"
)

var _ = Describe("UserService", func() {
	var (
		e   *env
		ctx context.Context
	)

	BeforeEach(func() {
		e = newEnv()
		ctx = context.Background()
	})

	Describe("CreateUser", func() {
		It("cria com papel user por omissão e email normalizado", func() {
			user, err := e.users.CreateUser(ctx, services.CreateUserInput{
				Name: "Ana", Email: " Ana@Example.com ", GoogleID: "g-1",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).NotTo(BeZero())
			Expect(user.Role).To(Equal(entities.RoleUser))
			Expect(user.Email.String()).To(Equal("ana@example.com"))
		})

		It("rejeita email inválido", func() {
			_, err := e.users.CreateUser(ctx, services.CreateUserInput{Name: "Ana", Email: "nope", GoogleID: "g-1"})
			Expect(err).To(MatchError(errors.ErrInvalidEmail))
		})

		It("rejeita papel desconhecido", func() {
			_, err := e.users.CreateUser(ctx, services.CreateUserInput{Name: "Ana", Email: "ana@example.com", GoogleID: "g-1", Role: "root"})
			Expect(err).To(MatchError(errors.ErrInvalidRole))
		})

		It("rejeita email e google id duplicados", func() {
			e.createUser("Ana", "ana@example.com", "")

			_, err := e.users.CreateUser(ctx, services.CreateUserInput{Name: "Outra", Email: "ana@example.com", GoogleID: "g-2"})
			Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))

			_, err = e.users.CreateUser(ctx, services.CreateUserInput{Name: "Outra", Email: "outra@example.com", GoogleID: "g-ana@example.com"})
			Expect(err).To(MatchError(errors.ErrGoogleIDExists))
		})
	})

	Describe("UpdateUser", func() {
		It("altera nome e papel", func() {
			user := e.createUser("Ana", "ana@example.com", "")
			name, role := "Ana Maria", "admin"

			updated, err := e.users.UpdateUser(ctx, user.ID, services.UpdateUserInput{Name: &name, Role: &role})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Ana Maria"))
			Expect(updated.IsAdmin()).To(BeTrue())
		})

		It("devolve not found", func() {
			name := "X"
			_, err := e.users.UpdateUser(ctx, 999, services.UpdateUserInput{Name: &name})
			Expect(err).To(MatchError(errors.ErrUserNotFound))
		})

		It("exige pelo menos um campo", func() {
			user := e.createUser("Ana", "ana@example.com", "")
			_, err := e.users.UpdateUser(ctx, user.ID, services.UpdateUserInput{})
			Expect(err).To(MatchError(errors.ErrNoUpdatableFields))
		})
	})

	Describe("DeleteUser", func() {
		It("remove o usuário e as suas consultas", func() {
			ana := e.createUser("Ana", "ana@example.com", "")
			bruno := e.createUser("Bruno", "bruno@example.com", "")
			doctor := e.createDoctor("Dr. Silva", "Cardiologia")
			e.book(ana, "2025-03-10T10:00:00Z", doctor)
			e.book(bruno, "2025-03-10T11:00:00Z", doctor)

			Expect(e.users.DeleteUser(ctx, ana.ID)).To(Succeed())

			admin := &entities.User{ID: 999, Role: entities.RoleAdmin}
			remaining, err := e.appointments.ListAppointments(ctx, admin, services.ListAppointmentsInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(remaining).To(HaveLen(1))
			Expect(remaining[0].UserID).To(Equal(bruno.ID))

			Expect(e.users.DeleteUser(ctx, ana.ID)).To(MatchError(errors.ErrUserNotFound))
		})
	})

	Describe("consultas e médicos de um usuário", func() {
		var (
			ana, bruno *entities.User
			silva      *entities.Doctor
			costa      *entities.Doctor
		)

		BeforeEach(func() {
			ana = e.createUser("Ana", "ana@example.com", "")
			bruno = e.createUser("Bruno", "bruno@example.com", "")
			silva = e.createDoctor("Dr. Silva", "Cardiologia")
			costa = e.createDoctor("Dra. Costa", "Dermatologia")

			e.book(ana, "2025-03-12T10:00:00Z", silva)
			e.book(ana, "2025-03-10T10:00:00Z", costa)
			e.book(ana, "2025-03-11T10:00:00Z", silva)
			e.book(bruno, "2025-03-10T09:00:00Z", silva)
		})

		It("lista as próprias consultas ordenadas", func() {
			list, err := e.users.UserAppointments(ctx, ana, ana.ID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(3))
			Expect(list[0].Slot.ISO()).To(Equal("2025-03-10T10:00:00.000Z"))
		})

		It("filtra por especialidade", func() {
			list, err := e.users.UserAppointments(ctx, ana, ana.ID, &silva.SpecialtyID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			for _, a := range list {
				Expect(a.DoctorID).To(Equal(silva.ID))
			}
		})

		It("proíbe outro utilizador comum", func() {
			_, err := e.users.UserAppointments(ctx, bruno, ana.ID, nil)
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("admin vê qualquer utilizador mas recebe 404 para inexistentes", func() {
			admin := e.createUser("Admin", "admin@example.com", "admin")

			list, err := e.users.UserAppointments(ctx, admin, bruno.ID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))

			_, err = e.users.UserAppointments(ctx, admin, 999, nil)
			Expect(err).To(MatchError(errors.ErrUserNotFound))
		})

		It("devolve médicos distintos pela ordem da primeira consulta", func() {
			doctors, err := e.users.UserDoctors(ctx, ana, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(doctors).To(HaveLen(2))
			Expect(doctors[0].Name).To(Equal("Dra. Costa"))
			Expect(doctors[1].Name).To(Equal("Dr. Silva"))
		})
	})

	It("lista usuários por id", func() {
		e.createUser("Ana", "ana@example.com", "")
		e.createUser("Bruno", "bruno@example.com", "")

		users, err := e.users.ListUsers(ctx, repositories.UserFilters{})
		Expect(err).NotTo(HaveOccurred())
		Expect(users).To(HaveLen(2))
		Expect(users[0].Name).To(Equal("Ana"))
	})
})
