package gormdb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	domainerrors "github.com/rafabene/agendamento-backend/internal/domain/errors"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
	"github.com/rafabene/agendamento-backend/internal/domain/valueobjects"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/persistence/gormdb"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/persistence/gormdb/gormdbtest"
)

type fixture struct {
	users        repositories.UserRepository
	specialties  repositories.SpecialtyRepository
	doctors      repositories.DoctorRepository
	appointments repositories.AppointmentRepository
}

func newFixture(db *gorm.DB) fixture {
	return fixture{
		users:        gormdb.NewUserRepository(db),
		specialties:  gormdb.NewSpecialtyRepository(db),
		doctors:      gormdb.NewDoctorRepository(db),
		appointments: gormdb.NewAppointmentRepository(db),
	}
}

func newUser(t *testing.T, f fixture, name, email string) *entities.User {
	t.Helper()
	addr, err := valueobjects.NewEmail(email)
	require.NoError(t, err)
	user := &entities.User{Name: name, Email: addr, Role: entities.RoleUser}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user
}

func newSpecialty(t *testing.T, f fixture, name string) *entities.Specialty {
	t.Helper()
	specialty := &entities.Specialty{Name: name}
	require.NoError(t, f.specialties.Create(context.Background(), specialty))
	return specialty
}

func newDoctor(t *testing.T, f fixture, name string, specialtyID uint) *entities.Doctor {
	t.Helper()
	doctor := &entities.Doctor{Name: name, SpecialtyID: specialtyID}
	require.NoError(t, f.doctors.Create(context.Background(), doctor))
	return doctor
}

func newAppointment(t *testing.T, f fixture, when string, userID, doctorID uint) *entities.Appointment {
	t.Helper()
	slot, err := valueobjects.ParseSlot(when)
	require.NoError(t, err)
	appointment := &entities.Appointment{Slot: slot, UserID: userID, DoctorID: doctorID}
	require.NoError(t, f.appointments.Create(context.Background(), appointment))
	return appointment
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("cria e busca por email e google id", func(t *testing.T) {
		f := newFixture(gormdbtest.New(t))
		googleID := "g-123"
		addr, _ := valueobjects.NewEmail("ana@example.com")
		user := &entities.User{Name: "Ana", Email: addr, GoogleID: &googleID, Role: entities.RoleAdmin}

		require.NoError(t, f.users.Create(ctx, user))
		assert.NotZero(t, user.ID)

		byEmail, err := f.users.FindByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, user.ID, byEmail.ID)
		assert.True(t, byEmail.IsAdmin())

		byGoogle, err := f.users.FindByGoogleID(ctx, "g-123")
		require.NoError(t, err)
		require.NotNil(t, byGoogle)
		assert.Equal(t, "Ana", byGoogle.Name)
	})

	t.Run("devolve nil quando não existe", func(t *testing.T) {
		f := newFixture(gormdbtest.New(t))

		user, err := f.users.FindByID(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("email duplicado", func(t *testing.T) {
		f := newFixture(gormdbtest.New(t))
		newUser(t, f, "Ana", "ana@example.com")

		addr, _ := valueobjects.NewEmail("ana@example.com")
		err := f.users.Create(ctx, &entities.User{Name: "Outra", Email: addr, Role: entities.RoleUser})
		assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyExists)
	})

	t.Run("atualiza e remove", func(t *testing.T) {
		f := newFixture(gormdbtest.New(t))
		user := newUser(t, f, "Ana", "ana@example.com")

		user.Name = "Ana Maria"
		user.Role = entities.RoleAdmin
		require.NoError(t, f.users.Update(ctx, user))

		stored, err := f.users.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", stored.Name)
		assert.Equal(t, entities.RoleAdmin, stored.Role)

		deleted, err := f.users.Delete(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = f.users.Delete(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("lista por id com filtro de role e paginação", func(t *testing.T) {
		f := newFixture(gormdbtest.New(t))
		newUser(t, f, "A", "a@example.com")
		newUser(t, f, "B", "b@example.com")
		newUser(t, f, "C", "c@example.com")

		role := entities.RoleUser
		page, err := f.users.List(ctx, repositories.UserFilters{Role: &role, Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "C", page[0].Name)

		count, err := f.users.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
	})
}

func TestCatalogRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("especialidade com médicos ordenados por nome", func(t *testing.T) {
		f := newFixture(gormdbtest.New(t))
		cardio := newSpecialty(t, f, "Cardiologia")
		newDoctor(t, f, "Dr. Zeca", cardio.ID)
		newDoctor(t, f, "Dr. Ana", cardio.ID)

		found, err := f.specialties.FindByID(ctx, cardio.ID, true)
		require.NoError(t, err)
		require.Len(t, found.Doctors, 2)
		assert.Equal(t, "Dr. Ana", found.Doctors[0].Name)
		assert.Equal(t, "Dr. Zeca", found.Doctors[1].Name)

		count, err := f.specialties.CountDoctors(ctx, cardio.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	})

	t.Run("nome de especialidade duplicado", func(t *testing.T) {
		f := newFixture(gormdbtest.New(t))
		newSpecialty(t, f, "Cardiologia")

		err := f.specialties.Create(ctx, &entities.Specialty{Name: "Cardiologia"})
		assert.ErrorIs(t, err, domainerrors.ErrSpecialtyExists)

		derma := newSpecialty(t, f, "Dermatologia")
		derma.Name = "Cardiologia"
		assert.ErrorIs(t, f.specialties.Update(ctx, derma), domainerrors.ErrSpecialtyExists)
	})

	t.Run("lista especialidades por nome", func(t *testing.T) {
		f := newFixture(gormdbtest.New(t))
		newSpecialty(t, f, "Pediatria")
		newSpecialty(t, f, "Cardiologia")

		list, err := f.specialties.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Cardiologia", list[0].Name)
	})

	t.Run("médico carrega especialidade", func(t *testing.T) {
		f := newFixture(gormdbtest.New(t))
		cardio := newSpecialty(t, f, "Cardiologia")
		derma := newSpecialty(t, f, "Dermatologia")
		doctor := newDoctor(t, f, "Dr. Silva", cardio.ID)

		doctor.SpecialtyID = derma.ID
		require.NoError(t, f.doctors.Update(ctx, doctor))

		found, err := f.doctors.FindByID(ctx, doctor.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Specialty)
		assert.Equal(t, "Dermatologia", found.Specialty.Name)

		list, err := f.doctors.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].BelongsTo(derma.ID))
	})
}

func TestAppointmentRepository(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (fixture, *entities.User, *entities.User, *entities.Doctor, *entities.Doctor) {
		f := newFixture(gormdbtest.New(t))
		ana := newUser(t, f, "Ana", "ana@example.com")
		bruno := newUser(t, f, "Bruno", "bruno@example.com")
		cardio := newSpecialty(t, f, "Cardiologia")
		derma := newSpecialty(t, f, "Dermatologia")
		drSilva := newDoctor(t, f, "Dr. Silva", cardio.ID)
		draCosta := newDoctor(t, f, "Dra. Costa", derma.ID)
		return f, ana, bruno, drSilva, draCosta
	}

	t.Run("guarda data e hora em UTC e carrega associações", func(t *testing.T) {
		f, ana, _, drSilva, _ := seed(t)
		created := newAppointment(t, f, "2025-03-10T14:30:00-03:00", ana.ID, drSilva.ID)

		found, err := f.appointments.FindByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "2025-03-10T17:30:00.000Z", found.Slot.ISO())
		require.NotNil(t, found.Patient)
		assert.Equal(t, "Ana", found.Patient.Name)
		require.NotNil(t, found.Specialty())
		assert.Equal(t, "Cardiologia", found.Specialty().Name)
	})

	t.Run("lista ordenada e filtrada", func(t *testing.T) {
		f, ana, bruno, drSilva, draCosta := seed(t)
		newAppointment(t, f, "2025-03-12T09:00:00Z", ana.ID, drSilva.ID)
		newAppointment(t, f, "2025-03-10T15:00:00Z", ana.ID, draCosta.ID)
		newAppointment(t, f, "2025-03-10T08:00:00Z", bruno.ID, drSilva.ID)

		all, err := f.appointments.List(ctx, repositories.AppointmentFilters{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "2025-03-10T08:00:00.000Z", all[0].Slot.ISO())
		assert.Equal(t, "2025-03-12T09:00:00.000Z", all[2].Slot.ISO())

		mine, err := f.appointments.List(ctx, repositories.AppointmentFilters{PatientID: &ana.ID})
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		cardio := drSilva.SpecialtyID
		bySpecialty, err := f.appointments.List(ctx, repositories.AppointmentFilters{SpecialtyID: &cardio})
		require.NoError(t, err)
		assert.Len(t, bySpecialty, 2)

		byRange, err := f.appointments.List(ctx, repositories.AppointmentFilters{FromDate: "2025-03-11", ToDate: "2025-03-31"})
		require.NoError(t, err)
		require.Len(t, byRange, 1)
		assert.Equal(t, drSilva.ID, byRange[0].DoctorID)

		count, err := f.appointments.Count(ctx, repositories.AppointmentFilters{DoctorID: &draCosta.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("janela de lembretes ignora consultas já lembradas", func(t *testing.T) {
		f, ana, _, drSilva, _ := seed(t)
		inside := newAppointment(t, f, "2025-03-10T23:30:00Z", ana.ID, drSilva.ID)
		nextDay := newAppointment(t, f, "2025-03-11T00:30:00Z", ana.ID, drSilva.ID)
		newAppointment(t, f, "2025-03-11T03:00:00Z", ana.ID, drSilva.ID)

		window := repositories.AppointmentFilters{ReminderWindow: &repositories.ReminderWindow{
			FromDate: "2025-03-10", FromClock: "23:00:00",
			ToDate: "2025-03-11", ToClock: "02:00:00",
		}}

		due, err := f.appointments.List(ctx, window)
		require.NoError(t, err)
		require.Len(t, due, 2)
		assert.Equal(t, inside.ID, due[0].ID)
		assert.Equal(t, nextDay.ID, due[1].ID)

		require.NoError(t, f.appointments.MarkReminderSent(ctx, []uint{inside.ID, nextDay.ID}))

		due, err = f.appointments.List(ctx, window)
		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("atualiza médico e notas", func(t *testing.T) {
		f, ana, _, drSilva, draCosta := seed(t)
		appointment := newAppointment(t, f, "2025-03-10T10:00:00Z", ana.ID, drSilva.ID)

		notes := "retorno"
		appointment.Notes = &notes
		appointment.DoctorID = draCosta.ID
		require.NoError(t, f.appointments.Update(ctx, appointment))

		found, err := f.appointments.FindByID(ctx, appointment.ID)
		require.NoError(t, err)
		require.NotNil(t, found.Notes)
		assert.Equal(t, "retorno", *found.Notes)
		assert.Equal(t, "Dra. Costa", found.Doctor.Name)
	})

	t.Run("remove e remove por utilizador", func(t *testing.T) {
		f, ana, bruno, drSilva, _ := seed(t)
		first := newAppointment(t, f, "2025-03-10T10:00:00Z", ana.ID, drSilva.ID)
		newAppointment(t, f, "2025-03-11T10:00:00Z", ana.ID, drSilva.ID)
		newAppointment(t, f, "2025-03-11T11:00:00Z", bruno.ID, drSilva.ID)

		deleted, err := f.appointments.Delete(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		require.NoError(t, f.appointments.DeleteByUser(ctx, ana.ID))

		remaining, err := f.appointments.List(ctx, repositories.AppointmentFilters{})
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, bruno.ID, remaining[0].UserID)
	})
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()

	t.Run("rollback desfaz alterações", func(t *testing.T) {
		db := gormdbtest.New(t)
		f := newFixture(db)
		uow := gormdb.NewUnitOfWork(db)
		boom := errors.New("boom")

		err := uow.WithTransaction(ctx, func(txCtx context.Context) error {
			addr, _ := valueobjects.NewEmail("ana@example.com")
			if err := f.users.Create(txCtx, &entities.User{Name: "Ana", Email: addr, Role: entities.RoleUser}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		count, err := f.users.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("transações aninhadas partilham a transação externa", func(t *testing.T) {
		db := gormdbtest.New(t)
		f := newFixture(db)
		uow := gormdb.NewUnitOfWork(db)

		err := uow.WithTransaction(ctx, func(txCtx context.Context) error {
			return uow.WithTransaction(txCtx, func(inner context.Context) error {
				addr, _ := valueobjects.NewEmail("ana@example.com")
				return f.users.Create(inner, &entities.User{Name: "Ana", Email: addr, Role: entities.RoleUser})
			})
		})
		require.NoError(t, err)

		count, err := f.users.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("commit persiste alterações", func(t *testing.T) {
		db := gormdbtest.New(t)
		f := newFixture(db)
		uow := gormdb.NewUnitOfWork(db)

		err := uow.WithTransaction(ctx, func(txCtx context.Context) error {
			specialty := &entities.Specialty{Name: "Cardiologia"}
			if err := f.specialties.Create(txCtx, specialty); err != nil {
				return err
			}
			found, err := f.specialties.FindByName(txCtx, "Cardiologia")
			if err != nil {
				return err
			}
			if found == nil {
				return errors.New("especialidade não visível na transação")
			}
			return nil
		})
		require.NoError(t, err)

		found, err := f.specialties.FindByName(ctx, "Cardiologia")
		require.NoError(t, err)
		assert.NotNil(t, found)
	})
}
