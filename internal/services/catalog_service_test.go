package services_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/services"
)

var _ = Describe("Catálogo", func() {
	var (
		e   *env
		ctx context.Context
	)

	BeforeEach(func() {
		e = newEnv()
		ctx = context.Background()
	})

	Describe("SpecialtyService", func() {
		It("cria, renomeia e rejeita nomes duplicados", func() {
			cardio, err := e.specialties.CreateSpecialty(ctx, " Cardiologia ")
			Expect(err).NotTo(HaveOccurred())
			Expect(cardio.Name).To(Equal("Cardiologia"))

			_, err = e.specialties.CreateSpecialty(ctx, "Cardiologia")
			Expect(err).To(MatchError(errors.ErrSpecialtyExists))

			derma, err := e.specialties.CreateSpecialty(ctx, "Dermatologia")
			Expect(err).NotTo(HaveOccurred())

			_, err = e.specialties.UpdateSpecialty(ctx, derma.ID, "Cardiologia")
			Expect(err).To(MatchError(errors.ErrSpecialtyExists))

			renamed, err := e.specialties.UpdateSpecialty(ctx, derma.ID, "Dermatologia Clínica")
			Expect(err).NotTo(HaveOccurred())
			Expect(renamed.Name).To(Equal("Dermatologia Clínica"))

			_, err = e.specialties.UpdateSpecialty(ctx, 999, "X")
			Expect(err).To(MatchError(errors.ErrSpecialtyNotFound))
		})

		It("devolve a especialidade com os médicos", func() {
			doctor := e.createDoctor("Dr. Silva", "Cardiologia")

			specialty, err := e.specialties.GetSpecialty(ctx, doctor.SpecialtyID)
			Expect(err).NotTo(HaveOccurred())
			Expect(specialty.Doctors).To(HaveLen(1))
			Expect(specialty.Doctors[0].Name).To(Equal("Dr. Silva"))
		})

		It("não remove especialidade com médicos", func() {
			doctor := e.createDoctor("Dr. Silva", "Cardiologia")

			Expect(e.specialties.DeleteSpecialty(ctx, doctor.SpecialtyID)).To(MatchError(errors.ErrSpecialtyInUse))
			Expect(e.doctors.DeleteDoctor(ctx, doctor.ID)).To(Succeed())
			Expect(e.specialties.DeleteSpecialty(ctx, doctor.SpecialtyID)).To(Succeed())
			Expect(e.specialties.DeleteSpecialty(ctx, doctor.SpecialtyID)).To(MatchError(errors.ErrSpecialtyNotFound))
		})
	})

	Describe("DoctorService", func() {
		It("exige especialidade existente", func() {
			_, err := e.doctors.CreateDoctor(ctx, "Dr. Silva", 999)
			Expect(err).To(MatchError(errors.ErrInvalidSpecialty))
		})

		It("devolve o médico criado com a especialidade", func() {
			doctor := e.createDoctor("Dr. Silva", "Cardiologia")
			Expect(doctor.Specialty).NotTo(BeNil())
			Expect(doctor.Specialty.Name).To(Equal("Cardiologia"))
		})

		It("atualiza nome e especialidade", func() {
			doctor := e.createDoctor("Dr. Silva", "Cardiologia")
			derma, err := e.specialties.CreateSpecialty(ctx, "Dermatologia")
			Expect(err).NotTo(HaveOccurred())

			name := "Dr. Silva Jr."
			updated, err := e.doctors.UpdateDoctor(ctx, doctor.ID, services.UpdateDoctorInput{Name: &name, SpecialtyID: &derma.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Dr. Silva Jr."))
			Expect(updated.Specialty.Name).To(Equal("Dermatologia"))

			_, err = e.doctors.UpdateDoctor(ctx, doctor.ID, services.UpdateDoctorInput{})
			Expect(err).To(MatchError(errors.ErrNoUpdatableFields))

			missing := uint(999)
			_, err = e.doctors.UpdateDoctor(ctx, doctor.ID, services.UpdateDoctorInput{SpecialtyID: &missing})
			Expect(err).To(MatchError(errors.ErrInvalidSpecialty))

			_, err = e.doctors.UpdateDoctor(ctx, 999, services.UpdateDoctorInput{Name: &name})
			Expect(err).To(MatchError(errors.ErrDoctorNotFound))
		})

		It("não remove médico com consultas e lista a agenda", func() {
			ana := e.createUser("Ana", "ana@example.com", "")
			doctor := e.createDoctor("Dr. Silva", "Cardiologia")
			e.book(ana, "2025-03-10T10:00:00Z", doctor)

			Expect(e.doctors.DeleteDoctor(ctx, doctor.ID)).To(MatchError(errors.ErrDoctorHasBookings))

			agenda, err := e.doctors.DoctorAppointments(ctx, doctor.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(agenda).To(HaveLen(1))

			_, err = e.doctors.DoctorAppointments(ctx, 999)
			Expect(err).To(MatchError(errors.ErrDoctorNotFound))
		})
	})
})
