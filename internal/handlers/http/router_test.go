package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
	"github.com/rafabene/agendamento-backend/internal/domain/ports"
	"github.com/rafabene/agendamento-backend/internal/domain/repositories"
	"github.com/rafabene/agendamento-backend/internal/handlers/dto"
	"github.com/rafabene/agendamento-backend/internal/handlers/middleware"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/auth"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/i18n"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/logging"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/persistence/gormdb"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/persistence/gormdb/gormdbtest"
	"github.com/rafabene/agendamento-backend/internal/infrastructure/realtime"
	"github.com/rafabene/agendamento-backend/internal/services"
)

const testFrontendURL = "http://front.example.com"

// stubGoogle aceita apenas o código "valid-code"
type stubGoogle struct {
	identity ports.ExternalIdentity
}

func (s *stubGoogle) AuthCodeURL(state string) string {
	return "https://accounts.google.example/o/oauth2/auth?state=" + state
}

func (s *stubGoogle) Exchange(_ context.Context, code string) (*ports.ExternalIdentity, error) {
	if code != "valid-code" {
		return nil, errors.New("invalid grant")
	}
	identity := s.identity
	return &identity, nil
}

// testAPI é o router completo sobre SQLite em memória
type testAPI struct {
	router   *gin.Engine
	hub      *realtime.Hub
	google   *stubGoogle
	auth     *services.AuthService
	users    *services.UserService
	catalog  *services.SpecialtyService
	doctors  *services.DoctorService
	userRepo repositories.UserRepository

	admin      *entities.User
	adminToken string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := gormdbtest.New(t)
	logger := logging.NewSlogLoggerWithWriter("error", io.Discard)

	userRepo := gormdb.NewUserRepository(db)
	specialtyRepo := gormdb.NewSpecialtyRepository(db)
	doctorRepo := gormdb.NewDoctorRepository(db)
	appointmentRepo := gormdb.NewAppointmentRepository(db)
	uow := gormdb.NewUnitOfWork(db)

	hub := realtime.NewHub(logger, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	publisher := dto.NewAppointmentEventPresenter(hub)

	google := &stubGoogle{identity: ports.ExternalIdentity{Subject: "g-1", Email: "nova@example.com", Name: "Nova"}}
	tokens := auth.NewJWTIssuer("test-secret", time.Hour)

	userService := services.NewUserService(userRepo, appointmentRepo, uow, logger)
	specialtyService := services.NewSpecialtyService(specialtyRepo, uow, logger)
	doctorService := services.NewDoctorService(doctorRepo, specialtyRepo, appointmentRepo, uow, logger)
	appointmentService := services.NewAppointmentService(appointmentRepo, doctorRepo, uow, publisher, logger)
	authService := services.NewAuthService(userRepo, google, tokens, uow, logger)

	i18nService, err := i18n.NewEmbeddedService("en")
	require.NoError(t, err)

	router := NewRouter(RouterDeps{
		BaseURL:        "http://api.example.com",
		AllowedOrigins: "*",
		I18n:           i18nService,
		Auth:           middleware.NewAuthMiddleware(authService),
		RateLimiter:    middleware.NewRateLimiter(1000, 1000),
		Users:          NewUserHandler(userService, logger),
		Specialties:    NewSpecialtyHandler(specialtyService, logger),
		Doctors:        NewDoctorHandler(doctorService, logger),
		Appointments:   NewAppointmentHandler(appointmentService, services.NewExportService(appointmentService), logger),
		Login:          NewAuthHandler(authService, testFrontendURL, false, logger),
		Realtime:       NewRealtimeHandler(hub, logger),
	})

	api := &testAPI{
		router:   router,
		hub:      hub,
		google:   google,
		auth:     authService,
		users:    userService,
		catalog:  specialtyService,
		doctors:  doctorService,
		userRepo: userRepo,
	}
	api.admin, api.adminToken = api.createUser(t, "Admin", "admin@example.com", entities.RoleAdmin)
	return api
}

func (a *testAPI) createUser(t *testing.T, name, email string, role entities.Role) (*entities.User, string) {
	t.Helper()
	user, err := a.users.CreateUser(context.Background(), services.CreateUserInput{
		Name:     name,
		Email:    email,
		GoogleID: "g-" + email,
		Role:     string(role),
	})
	require.NoError(t, err)

	token, _, err := a.auth.IssueToken(user)
	require.NoError(t, err)
	return user, token
}

func (a *testAPI) createDoctor(t *testing.T, name, specialty string) *entities.Doctor {
	t.Helper()
	ctx := context.Background()

	s, err := a.catalog.CreateSpecialty(ctx, specialty)
	require.NoError(t, err)
	doctor, err := a.doctors.CreateDoctor(ctx, name, s.ID)
	require.NoError(t, err)
	return doctor
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &value), w.Body.String())
	return value
}
