package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/pkg/response"
	"hospital-portal/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	doctors []entity.Doctor
}

func (f *fakeDirectory) Doctors() []entity.Doctor {
	return f.doctors
}

func (f *fakeDirectory) Doctor(id string) (entity.Doctor, bool) {
	for _, d := range f.doctors {
		if d.ID == id {
			return d, true
		}
	}
	return entity.Doctor{}, false
}

func newDoctorRouter() *mux.Router {
	directory := &fakeDirectory{doctors: append(entity.StaticDoctors(),
		entity.Doctor{ID: "d1", Name: "Dr. Ricardo Mendes", Specialty: "Dermatology"},
	)}
	h := NewDoctorHandler(nil, directory, validator.NewValidator())

	r := mux.NewRouter()
	r.HandleFunc("/doctors", h.GetAllDoctors).Methods(http.MethodGet)
	r.HandleFunc("/doctors/{id}", h.GetDoctor).Methods(http.MethodGet)
	return r
}

func decodeDoctorList(t *testing.T, body []byte) dto.DoctorListResponse {
	t.Helper()
	var res struct {
		response.Response
		Data dto.DoctorListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	return res.Data
}

func TestGetAllDoctors(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantTotal   int
		wantShown   int
		wantHasMore bool
	}{
		{name: "Capped list", query: "", wantTotal: 5, wantShown: 4, wantHasMore: true},
		{name: "Show all", query: "?show_all=true", wantTotal: 5, wantShown: 5},
		{name: "Search by name", query: "?search=card", wantTotal: 2, wantShown: 2},
		{name: "Search with specialty", query: "?search=card&specialty=Dermatology", wantTotal: 1, wantShown: 1},
		{name: "All specialties sentinel", query: "?specialty=All+Specialties", wantTotal: 5, wantShown: 4, wantHasMore: true},
	}

	r := newDoctorRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, http.MethodGet, "/doctors"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)

			list := decodeDoctorList(t, rec.Body.Bytes())
			assert.Equal(t, tt.wantTotal, list.Total)
			assert.Len(t, list.Doctors, tt.wantShown)
			assert.Equal(t, tt.wantHasMore, list.HasMore)
			assert.Equal(t, entity.Specialties, list.Specialties)
		})
	}
}

func TestGetDoctor(t *testing.T) {
	r := newDoctorRouter()

	rec := serve(r, http.MethodGet, "/doctors/d1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dr. Ricardo Mendes")

	rec = serve(r, http.MethodGet, "/doctors/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
