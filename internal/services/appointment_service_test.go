package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/services"
)

var _ = Describe("AppointmentService", func() {
	var (
		e            *env
		ctx          context.Context
		admin        *entities.User
		ana, bruno   *entities.User
		silva, costa *entities.Doctor
	)

	BeforeEach(func() {
		e = newEnv()
		ctx = context.Background()
		admin = e.createUser("Admin", "admin@example.com", "admin")
		ana = e.createUser("Ana", "ana@example.com", "")
		bruno = e.createUser("Bruno", "bruno@example.com", "")
		silva = e.createDoctor("Dr. Silva", "Cardiologia")
		costa = e.createDoctor("Dra. Costa", "Dermatologia")
	})

	Describe("CreateAppointment", func() {
		It("guarda data e hora do mesmo instante UTC e publica o evento", func() {
			notes := "  primeira consulta "
			appointment, err := e.appointments.CreateAppointment(ctx, ana, services.CreateAppointmentInput{
				When:        "2025-03-10T23:30:00-03:00",
				DoctorID:    silva.ID,
				SpecialtyID: silva.SpecialtyID,
				Notes:       &notes,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(appointment.Slot.Date()).To(Equal("2025-03-11"))
			Expect(appointment.Slot.Clock()).To(Equal("02:30:00"))
			Expect(*appointment.Notes).To(Equal("primeira consulta"))
			Expect(appointment.Patient.Name).To(Equal("Ana"))
			Expect(appointment.Specialty().Name).To(Equal("Cardiologia"))

			Expect(e.publisher.Types()).To(Equal([]string{ports.EventAppointmentCreated}))
			Expect(e.publisher.events[0].OwnerID).To(Equal(ana.ID))
		})

		It("rejeita médico inexistente", func() {
			_, err := e.appointments.CreateAppointment(ctx, ana, services.CreateAppointmentInput{
				When: "2025-03-10T10:00:00Z", DoctorID: 999, SpecialtyID: silva.SpecialtyID,
			})
			Expect(err).To(MatchError(errors.ErrInvalidDoctor))
		})

		It("rejeita médico de outra especialidade", func() {
			_, err := e.appointments.CreateAppointment(ctx, ana, services.CreateAppointmentInput{
				When: "2025-03-10T10:00:00Z", DoctorID: silva.ID, SpecialtyID: costa.SpecialtyID,
			})
			Expect(err).To(MatchError(errors.ErrDoctorSpecialty))
			Expect(e.publisher.Types()).To(BeEmpty())
		})

		It("rejeita data inválida", func() {
			_, err := e.appointments.CreateAppointment(ctx, ana, services.CreateAppointmentInput{
				When: "amanhã", DoctorID: silva.ID, SpecialtyID: silva.SpecialtyID,
			})
			Expect(err).To(MatchError(errors.ErrInvalidSlot))
		})
	})

	Describe("regras de acesso", func() {
		var anaAppointment, brunoAppointment *entities.Appointment

		BeforeEach(func() {
			anaAppointment = e.book(ana, "2025-03-11T10:00:00Z", silva)
			brunoAppointment = e.book(bruno, "2025-03-10T10:00:00Z", costa)
		})

		It("admin lista tudo ordenado por data", func() {
			list, err := e.appointments.ListAppointments(ctx, admin, services.ListAppointmentsInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].ID).To(Equal(brunoAppointment.ID))
		})

		It("admin filtra por paciente, médico e especialidade", func() {
			list, err := e.appointments.ListAppointments(ctx, admin, services.ListAppointmentsInput{PatientID: &ana.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))

			list, err = e.appointments.ListAppointments(ctx, admin, services.ListAppointmentsInput{SpecialtyID: &costa.SpecialtyID})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(brunoAppointment.ID))

			list, err = e.appointments.ListAppointments(ctx, admin, services.ListAppointmentsInput{FromDate: "2025-03-11"})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(anaAppointment.ID))
		})

		It("utilizador comum só vê as suas", func() {
			list, err := e.appointments.ListAppointments(ctx, ana, services.ListAppointmentsInput{})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(anaAppointment.ID))

			_, err = e.appointments.ListAppointments(ctx, ana, services.ListAppointmentsInput{PatientID: &bruno.ID})
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("aplica a regra a leitura, alteração e remoção", func() {
			_, err := e.appointments.GetAppointment(ctx, ana, brunoAppointment.ID)
			Expect(err).To(MatchError(errors.ErrForbidden))

			notes := "x"
			_, err = e.appointments.UpdateAppointment(ctx, ana, brunoAppointment.ID, services.UpdateAppointmentInput{Notes: &notes})
			Expect(err).To(MatchError(errors.ErrForbidden))

			Expect(e.appointments.DeleteAppointment(ctx, ana, brunoAppointment.ID)).To(MatchError(errors.ErrForbidden))

			found, err := e.appointments.GetAppointment(ctx, admin, brunoAppointment.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(brunoAppointment.ID))

			_, err = e.appointments.GetAppointment(ctx, admin, 999)
			Expect(err).To(MatchError(errors.ErrAppointmentNotFound))
		})
	})

	Describe("UpdateAppointment", func() {
		var appointment *entities.Appointment

		BeforeEach(func() {
			appointment = e.book(ana, "2025-03-11T10:00:00Z", silva)
		})

		It("exige pelo menos um campo", func() {
			_, err := e.appointments.UpdateAppointment(ctx, ana, appointment.ID, services.UpdateAppointmentInput{})
			Expect(err).To(MatchError(errors.ErrNoUpdatableFields))
		})

		It("muda médico quando a especialidade corresponde", func() {
			updated, err := e.appointments.UpdateAppointment(ctx, ana, appointment.ID, services.UpdateAppointmentInput{
				DoctorID:    &costa.ID,
				SpecialtyID: &costa.SpecialtyID,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Doctor.Name).To(Equal("Dra. Costa"))
			Expect(e.publisher.Types()).To(ContainElement(ports.EventAppointmentUpdated))
		})

		It("valida a especialidade contra o médico atual", func() {
			_, err := e.appointments.UpdateAppointment(ctx, ana, appointment.ID, services.UpdateAppointmentInput{
				SpecialtyID: &costa.SpecialtyID,
			})
			Expect(err).To(MatchError(errors.ErrDoctorSpecialty))
		})

		It("recusa apenas a especialidade do médico atual como atualização", func() {
			_, err := e.appointments.UpdateAppointment(ctx, ana, appointment.ID, services.UpdateAppointmentInput{
				SpecialtyID: &silva.SpecialtyID,
			})
			Expect(err).To(MatchError(errors.ErrNoUpdatableFields))
			Expect(e.publisher.Types()).NotTo(ContainElement(ports.EventAppointmentUpdated))
		})

		It("rejeita médico inexistente e data inválida", func() {
			missing := uint(999)
			_, err := e.appointments.UpdateAppointment(ctx, ana, appointment.ID, services.UpdateAppointmentInput{DoctorID: &missing})
			Expect(err).To(MatchError(errors.ErrInvalidDoctor))

			bad := "31/02/2025"
			_, err = e.appointments.UpdateAppointment(ctx, ana, appointment.ID, services.UpdateAppointmentInput{When: &bad})
			Expect(err).To(MatchError(errors.ErrInvalidSlot))
		})

		It("reagenda e limpa as notas", func() {
			when, empty := "2025-04-01T08:15:00Z", ""
			updated, err := e.appointments.UpdateAppointment(ctx, ana, appointment.ID, services.UpdateAppointmentInput{When: &when, Notes: &empty})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Slot.ISO()).To(Equal(mustSlot("2025-04-01T08:15:00Z").ISO()))
			Expect(updated.Notes).To(BeNil())
		})
	})

	It("remove e publica o evento", func() {
		appointment := e.book(ana, "2025-03-11T10:00:00Z", silva)

		Expect(e.appointments.DeleteAppointment(ctx, ana, appointment.ID)).To(Succeed())
		Expect(e.publisher.Types()).To(Equal([]string{ports.EventAppointmentCreated, ports.EventAppointmentDeleted}))

		Expect(e.appointments.DeleteAppointment(ctx, ana, appointment.ID)).To(MatchError(errors.ErrAppointmentNotFound))
	})
})
