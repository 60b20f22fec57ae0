package services_test

import (
	"bytes"
	"context"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/services"
)

var _ = Describe("ReminderService", func() {
	var (
		e      *env
		ctx    context.Context
		ana    *entities.User
		doctor *entities.Doctor
	)

	at := func(d time.Duration) string {
		return time.Now().UTC().Add(d).Truncate(time.Second).Format(time.RFC3339)
	}

	BeforeEach(func() {
		e = newEnv()
		ctx = context.Background()
		ana = e.createUser("Ana", "ana@example.com", "")
		doctor = e.createDoctor("Dr. Silva", "Cardiologia")
	})

	It("lembra apenas consultas dentro da antecedência e só uma vez", func() {
		soon := e.book(ana, at(time.Hour), doctor)
		e.book(ana, at(10*time.Hour), doctor)
		e.book(ana, at(-time.Hour), doctor)

		sent, err := e.reminders.SendDueReminders(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(sent).To(Equal(1))
		Expect(e.publisher.Types()).To(ContainElement(ports.EventAppointmentReminder))

		last := e.publisher.events[len(e.publisher.events)-1]
		Expect(last.OwnerID).To(Equal(ana.ID))
		Expect(last.Payload.(*entities.Appointment).ID).To(Equal(soon.ID))

		sent, err = e.reminders.SendDueReminders(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(sent).To(BeZero())
	})

	It("volta a lembrar quando a consulta é reagendada", func() {
		appointment := e.book(ana, at(time.Hour), doctor)
		_, err := e.reminders.SendDueReminders(ctx)
		Expect(err).NotTo(HaveOccurred())

		when := at(2 * time.Hour)
		_, err = e.appointments.UpdateAppointment(ctx, ana, appointment.ID, services.UpdateAppointmentInput{When: &when})
		Expect(err).NotTo(HaveOccurred())

		sent, err := e.reminders.SendDueReminders(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(sent).To(Equal(1))
	})

	It("corre agendado pelo gocron", func() {
		e.book(ana, at(time.Hour), doctor)

		scheduler, err := e.reminders.Start(ctx, 50*time.Millisecond)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(scheduler.Stop)

		Eventually(e.publisher.Types).Should(ContainElement(ports.EventAppointmentReminder))
	})
})

var _ = Describe("ExportService", func() {
	var (
		e          *env
		ctx        context.Context
		ana, bruno *entities.User
	)

	BeforeEach(func() {
		e = newEnv()
		ctx = context.Background()
		ana = e.createUser("Ana", "ana@example.com", "")
		bruno = e.createUser("Bruno", "bruno@example.com", "")
		doctor := e.createDoctor("Dr. Silva", "Cardiologia")

		notes := "retorno"
		_, err := e.appointments.CreateAppointment(ctx, ana, services.CreateAppointmentInput{
			When: "2025-03-10T14:00:00Z", DoctorID: doctor.ID, SpecialtyID: doctor.SpecialtyID, Notes: &notes,
		})
		Expect(err).NotTo(HaveOccurred())
		e.book(bruno, "2025-03-11T09:00:00Z", doctor)
	})

	open := func(buf *bytes.Buffer) *excelize.File {
		file, err := excelize.OpenReader(buf)
		Expect(err).NotTo(HaveOccurred())
		return file
	}

	It("exporta as consultas visíveis para o utilizador", func() {
		buf, err := e.export.ExportAppointments(ctx, ana, services.ListAppointmentsInput{})
		Expect(err).NotTo(HaveOccurred())

		file := open(buf)
		Expect(file.GetCellValue(services.ExportSheet, "A1")).To(Equal("ID"))
		Expect(file.GetCellValue(services.ExportSheet, "G1")).To(Equal("Descrição"))
		Expect(file.GetCellValue(services.ExportSheet, "B2")).To(Equal("2025-03-10"))
		Expect(file.GetCellValue(services.ExportSheet, "C2")).To(Equal("14:00:00"))
		Expect(file.GetCellValue(services.ExportSheet, "D2")).To(Equal("Ana"))
		Expect(file.GetCellValue(services.ExportSheet, "F2")).To(Equal("Cardiologia"))
		Expect(file.GetCellValue(services.ExportSheet, "G2")).To(Equal("retorno"))
		Expect(file.GetCellValue(services.ExportSheet, "A3")).To(BeEmpty())
	})

	It("inclui todas as consultas para o admin e respeita a regra de acesso", func() {
		admin := e.createUser("Admin", "admin@example.com", "admin")
		buf, err := e.export.ExportAppointments(ctx, admin, services.ListAppointmentsInput{})
		Expect(err).NotTo(HaveOccurred())
		Expect(open(buf).GetCellValue(services.ExportSheet, "D3")).To(Equal("Bruno"))

		_, err = e.export.ExportAppointments(ctx, ana, services.ListAppointmentsInput{PatientID: &bruno.ID})
		Expect(err).To(MatchError(errors.ErrForbidden))
	})
})
