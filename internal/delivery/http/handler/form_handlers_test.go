package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/delivery/http/middleware"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/jwt"
	"hospital-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakeAppointmentUsecase ---
var _ usecase.AppointmentUsecase = (*fakeAppointmentUsecase)(nil)

type fakeAppointmentUsecase struct {
	err         error
	calls       int32
	last        dto.CreateAppointmentRequest
	lastContent []byte
}

func (f *fakeAppointmentUsecase) CreateAppointment(_ context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	f.last = *req
	if req.PaymentScreenshot != nil {
		f.lastContent, _ = io.ReadAll(req.PaymentScreenshot.Content)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AppointmentResponse{ID: "a1", Status: entity.AppointmentStatusPending, Payment: req.Payment}, nil
}

// --- fakeMessageUsecase ---
var _ usecase.MessageUsecase = (*fakeMessageUsecase)(nil)

type fakeMessageUsecase struct {
	calls int32
	last  dto.CreateMessageRequest
}

func (f *fakeMessageUsecase) CreateMessage(_ context.Context, req *dto.CreateMessageRequest) (*dto.CreatedResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	f.last = *req
	return &dto.CreatedResponse{ID: "m1", ConfirmationDisplaySeconds: 3}, nil
}

// --- fakePatientUsecase ---
var _ usecase.PatientUsecase = (*fakePatientUsecase)(nil)

type fakePatientUsecase struct {
	calls int32
}

func (f *fakePatientUsecase) CreatePatient(context.Context, *dto.CreatePatientRequest) (*dto.CreatedResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	return &dto.CreatedResponse{ID: "p1"}, nil
}

// --- fakeAuthUsecase ---
var _ usecase.AuthUsecase = (*fakeAuthUsecase)(nil)

type fakeAuthUsecase struct {
	err     error
	calls   int32
	account *entity.PatientAccount
}

func (f *fakeAuthUsecase) PatientSignup(context.Context, *dto.PatientCredentialsRequest) (*dto.TokenResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TokenResponse{AccessToken: "access", Role: entity.RolePatient}, nil
}

func (f *fakeAuthUsecase) PatientLogin(context.Context, *dto.PatientCredentialsRequest) (*dto.TokenResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TokenResponse{AccessToken: "access", Role: entity.RolePatient}, nil
}

func (f *fakeAuthUsecase) AdminLogin(context.Context, *dto.LoginRequest) (*dto.TokenResponse, error) {
	atomic.AddInt32(&f.calls, 1)
	return nil, f.err
}

func (f *fakeAuthUsecase) Logout(context.Context, string, string, string) error {
	return nil
}

func (f *fakeAuthUsecase) RefreshToken(context.Context, *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return nil, f.err
}

func (f *fakeAuthUsecase) GetPatientAccount(context.Context, string) (*entity.PatientAccount, error) {
	if f.account == nil {
		return nil, usecase.ErrAccountNotFound
	}
	return f.account, nil
}

// --- fakeHealthRecordUsecase ---
var _ usecase.HealthRecordUsecase = (*fakeHealthRecordUsecase)(nil)

type fakeHealthRecordUsecase struct {
	count int
}

func (f *fakeHealthRecordUsecase) UploadRecord(context.Context, *dto.UploadHealthRecordRequest) (*entity.HealthRecord, error) {
	return nil, nil
}

func (f *fakeHealthRecordUsecase) GetMyRecords(context.Context) (*dto.HealthRecordListResponse, error) {
	return &dto.HealthRecordListResponse{}, nil
}

func (f *fakeHealthRecordUsecase) DeleteRecord(context.Context, string) error {
	return nil
}

func (f *fakeHealthRecordUsecase) CountRecords(context.Context, string) (int, error) {
	return f.count, nil
}

const bookingJSON = `{"name":"Jane Doe","email":"jane@example.com","phone":"+1 (555) 123-4567",` +
	`"department":"Cardiology","date":"2025-03-12","time":"10:00","reason":"Chest pain after exercise"}`

func bookingMultipart(t *testing.T, name string, screenshot []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	fields := map[string]string{
		"name":       name,
		"email":      "jane@example.com",
		"phone":      "+1 (555) 123-4567",
		"department": "Cardiology",
		"date":       "2025-03-12",
		"time":       "10:00",
		"reason":     "Chest pain after exercise",
		"payment":    entity.PaymentNow,
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if screenshot != nil {
		part, err := w.CreateFormFile("payment_screenshot", "receipt.png")
		require.NoError(t, err)
		_, err = part.Write(screenshot)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func newFormRouter(appointments *fakeAppointmentUsecase, messages *fakeMessageUsecase, patients *fakePatientUsecase, auth *fakeAuthUsecase) *mux.Router {
	v := validator.NewValidator()
	appointmentHandler := NewAppointmentHandler(appointments, v, dto.PaymentQRResponse{})
	messageHandler := NewMessageHandler(messages, v)
	patientHandler := NewPatientHandler(patients, auth, &fakeHealthRecordUsecase{count: 3}, v)
	authHandler := NewAuthHandler(auth, v, nil)

	r := mux.NewRouter()
	r.HandleFunc("/appointments", appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	r.HandleFunc("/payments/qr", appointmentHandler.PaymentQR).Methods(http.MethodGet)
	r.HandleFunc("/messages", messageHandler.CreateMessage).Methods(http.MethodPost)
	r.HandleFunc("/patients", patientHandler.CreatePatient).Methods(http.MethodPost)
	r.HandleFunc("/portal", patientHandler.GetPortal).Methods(http.MethodGet)
	r.HandleFunc("/patient/signup", authHandler.PatientSignup).Methods(http.MethodPost)
	r.HandleFunc("/patient/login", authHandler.PatientLogin).Methods(http.MethodPost)
	return r
}

func TestCreateAppointment_JSON(t *testing.T) {
	appointments := &fakeAppointmentUsecase{}
	r := newFormRouter(appointments, &fakeMessageUsecase{}, &fakePatientUsecase{}, &fakeAuthUsecase{})

	rec := serve(r, http.MethodPost, "/appointments", bookingJSON)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Jane Doe", appointments.last.Name)
	assert.Nil(t, appointments.last.PaymentScreenshot)
}

func TestCreateAppointment_WhitespaceOnlyNameRejected(t *testing.T) {
	appointments := &fakeAppointmentUsecase{}
	r := newFormRouter(appointments, &fakeMessageUsecase{}, &fakePatientUsecase{}, &fakeAuthUsecase{})

	rec := serve(r, http.MethodPost, "/appointments", `{"name":"   ","email":"jane@example.com","phone":"5551234567",`+
		`"department":"Cardiology","date":"2025-03-12","time":"10:00","reason":"            "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"name is required"`)
	assert.Contains(t, rec.Body.String(), `"reason":"reason is required"`)
	assert.Equal(t, int32(0), atomic.LoadInt32(&appointments.calls))
}

func TestCreateAppointment_MultipartWithScreenshot(t *testing.T) {
	appointments := &fakeAppointmentUsecase{}
	r := newFormRouter(appointments, &fakeMessageUsecase{}, &fakePatientUsecase{}, &fakeAuthUsecase{})
	png := []byte("\x89PNG\r\n\x1a\nimage-bytes")
	body, contentType := bookingMultipart(t, "  Jane Doe ", png)

	req := httptest.NewRequest(http.MethodPost, "/appointments", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Jane Doe", appointments.last.Name)
	assert.Equal(t, entity.PaymentNow, appointments.last.Payment)
	require.NotNil(t, appointments.last.PaymentScreenshot)
	assert.Equal(t, "receipt.png", appointments.last.PaymentScreenshot.Name)
	assert.Equal(t, int64(len(png)), appointments.last.PaymentScreenshot.Size)
	assert.Equal(t, png, appointments.lastContent)
}

func TestCreateAppointment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "Missing payment proof", err: usecase.ErrPaymentProofRequired, wantCode: http.StatusBadRequest},
		{name: "File too large", err: usecase.ErrFileTooLarge, wantCode: http.StatusRequestEntityTooLarge},
		{name: "Unsupported type", err: usecase.ErrUnsupportedFileType, wantCode: http.StatusUnsupportedMediaType},
		{name: "Upload failed", err: usecase.ErrUploadFailed, wantCode: http.StatusBadGateway},
		{name: "Store write failed", err: usecase.ErrStoreWrite, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFormRouter(&fakeAppointmentUsecase{err: tt.err}, &fakeMessageUsecase{}, &fakePatientUsecase{}, &fakeAuthUsecase{})

			rec := serve(r, http.MethodPost, "/appointments", bookingJSON)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestPaymentQR_NotConfigured(t *testing.T) {
	r := newFormRouter(&fakeAppointmentUsecase{}, &fakeMessageUsecase{}, &fakePatientUsecase{}, &fakeAuthUsecase{})

	rec := serve(r, http.MethodGet, "/payments/qr", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateMessage(t *testing.T) {
	messages := &fakeMessageUsecase{}
	r := newFormRouter(&fakeAppointmentUsecase{}, messages, &fakePatientUsecase{}, &fakeAuthUsecase{})

	rec := serve(r, http.MethodPost, "/messages", `{"firstName":" Jane ","lastName":"Doe","email":"jane@example.com",`+
		`"countryCode":"+91","phone":"98765 43210","subject":"Visiting hours","message":"When can I visit the ward?"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Jane", messages.last.FirstName)
	assert.Contains(t, rec.Body.String(), `"confirmation_display_seconds":3`)

	rec = serve(r, http.MethodPost, "/messages", `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com",`+
		`"phone":"98765","subject":"  ","message":"When can I visit the ward?"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"phone":"phone must contain at least 10 digits"`)
	assert.Contains(t, rec.Body.String(), `"subject":"subject is required"`)
	assert.Equal(t, int32(1), atomic.LoadInt32(&messages.calls))
}

func TestCreatePatient(t *testing.T) {
	patients := &fakePatientUsecase{}
	r := newFormRouter(&fakeAppointmentUsecase{}, &fakeMessageUsecase{}, patients, &fakeAuthUsecase{})

	rec := serve(r, http.MethodPost, "/patients", `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com",`+
		`"phone":"5551234567","dateOfBirth":"1990-01-01","address":"12 Harbor Road","emergencyContact":"5559876543"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(r, http.MethodPost, "/patients", `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com",`+
		`"phone":"5551234567","dateOfBirth":"01/01/1990","address":"12 Harbor Road","emergencyContact":"5559876543"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&patients.calls))
}

func TestGetPortal(t *testing.T) {
	accountID := uuid.New()
	auth := &fakeAuthUsecase{account: &entity.PatientAccount{ID: accountID, Email: "jane.doe@patient.com"}}
	r := newFormRouter(&fakeAppointmentUsecase{}, &fakeMessageUsecase{}, &fakePatientUsecase{}, auth)

	ctx := middleware.WithClaims(context.Background(), &jwt.Claims{Subject: accountID.String(), Role: entity.RolePatient})
	req := httptest.NewRequest(http.MethodGet, "/portal", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"health_records":3`)
	assert.Contains(t, rec.Body.String(), accountID.String())

	rec = serve(r, http.MethodGet, "/portal", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPatientAuth(t *testing.T) {
	t.Run("Whitespace-only name", func(t *testing.T) {
		auth := &fakeAuthUsecase{}
		r := newFormRouter(&fakeAppointmentUsecase{}, &fakeMessageUsecase{}, &fakePatientUsecase{}, auth)

		rec := serve(r, http.MethodPost, "/patient/signup", `{"name":"    ","password":"secret1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int32(0), atomic.LoadInt32(&auth.calls))
	})

	t.Run("Duplicate account", func(t *testing.T) {
		auth := &fakeAuthUsecase{err: usecase.ErrEmailAlreadyExists}
		r := newFormRouter(&fakeAppointmentUsecase{}, &fakeMessageUsecase{}, &fakePatientUsecase{}, auth)

		rec := serve(r, http.MethodPost, "/patient/signup", `{"name":"Jane Doe","password":"secret1"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		auth := &fakeAuthUsecase{err: usecase.ErrInvalidCredentials}
		r := newFormRouter(&fakeAppointmentUsecase{}, &fakeMessageUsecase{}, &fakePatientUsecase{}, auth)

		rec := serve(r, http.MethodPost, "/patient/login", `{"name":"Jane Doe","password":"wrong-one"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Login", func(t *testing.T) {
		r := newFormRouter(&fakeAppointmentUsecase{}, &fakeMessageUsecase{}, &fakePatientUsecase{}, &fakeAuthUsecase{})

		rec := serve(r, http.MethodPost, "/patient/login", `{"name":"Jane Doe","password":"secret1"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"patient"`)
	})
}
