package service

import (
	"context"
	"errors"
	"testing"

	"hospital-portal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doctorDoc(id, name, specialty string) entity.Document {
	return entity.Document{ID: id, Fields: entity.JSON{
		"name":       name,
		"specialty":  specialty,
		"department": specialty,
		"experience": "8",
	}}
}

func doctorNames(list []entity.Doctor) []string {
	names := make([]string, len(list))
	for i, d := range list {
		names[i] = d.Name
	}
	return names
}

func TestFilterDoctors(t *testing.T) {
	list := append(entity.StaticDoctors(), entity.Doctor{ID: "d1", Name: "Dr. Ricardo Mendes", Specialty: "Dermatology"})

	tests := []struct {
		name      string
		search    string
		specialty string
		want      []string
	}{
		{
			name:      "Empty filters keep everything",
			specialty: entity.AllSpecialties,
			want:      []string{"Dr. Sarah Johnson", "Dr. Michael Chen", "Dr. Emily Rodriguez", "Dr. James Wilson", "Dr. Ricardo Mendes"},
		},
		{
			name:      "Search matches specialty and name case-insensitively",
			search:    "CARD",
			specialty: entity.AllSpecialties,
			want:      []string{"Dr. Sarah Johnson", "Dr. Ricardo Mendes"},
		},
		{
			name:      "Specialty filter intersects with search",
			search:    "card",
			specialty: "Dermatology",
			want:      []string{"Dr. Ricardo Mendes"},
		},
		{
			name:      "Specialty only",
			specialty: "Neurology",
			want:      []string{"Dr. Michael Chen"},
		},
		{
			name:      "No match",
			search:    "xyz",
			specialty: "",
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDoctors(list, tt.search, tt.specialty)
			assert.Equal(t, tt.want, doctorNames(got))
		})
	}
}

func TestDirectoryView_Visible(t *testing.T) {
	list := append(entity.StaticDoctors(),
		entity.Doctor{ID: "d1", Name: "Dr. Ricardo Mendes", Specialty: "Dermatology"},
		entity.Doctor{ID: "d2", Name: "Dr. Aisha Khan", Specialty: "Oncology"},
	)

	view := DirectoryView{Specialty: entity.AllSpecialties}
	visible, total := view.Visible(list)
	assert.Len(t, visible, DirectoryPageSize)
	assert.Equal(t, 6, total)

	view.Search = "card"
	view.ToggleShowAll()
	assert.True(t, view.ShowAll)
	assert.Empty(t, view.Search)
	assert.Equal(t, entity.AllSpecialties, view.Specialty)

	visible, total = view.Visible(list)
	assert.Len(t, visible, 6)
	assert.Equal(t, 6, total)

	view.ToggleShowAll()
	assert.False(t, view.ShowAll)
}

func TestDirectoryService_StaticFirstThenLive(t *testing.T) {
	listeners := newListenerSet()
	store := &MockDocumentStore{SubscribeFunc: listeners.subscribe}
	s := NewDirectoryService(store, testLogger())
	s.Start(context.Background())
	defer s.Close()

	assert.Len(t, s.Doctors(), len(entity.StaticDoctors()))

	listeners.push(entity.CollectionDoctors, doctorDoc("d1", "Dr. Ricardo Mendes", "Dermatology"))

	doctors := s.Doctors()
	require.Len(t, doctors, 5)
	assert.Equal(t, "static-1", doctors[0].ID)
	assert.Equal(t, "d1", doctors[4].ID)
	assert.Equal(t, "Dermatology", doctors[4].Location)
	assert.Equal(t, "8", doctors[4].Experience)
	assert.Equal(t, 4.5, doctors[4].Rating)

	d, ok := s.Doctor("d1")
	require.True(t, ok)
	assert.Equal(t, "Dr. Ricardo Mendes", d.Name)

	_, ok = s.Doctor("missing")
	assert.False(t, ok)
}

func TestDirectoryService_FallsBackToStaticList(t *testing.T) {
	t.Run("Subscribe error", func(t *testing.T) {
		listeners := newListenerSet()
		listeners.failOpen[entity.CollectionDoctors] = errStoreDown
		s := NewDirectoryService(&MockDocumentStore{SubscribeFunc: listeners.subscribe}, testLogger())
		s.Start(context.Background())
		defer s.Close()

		assert.Equal(t, entity.StaticDoctors(), s.Doctors())
	})

	t.Run("Listener error", func(t *testing.T) {
		listeners := newListenerSet()
		s := NewDirectoryService(&MockDocumentStore{SubscribeFunc: listeners.subscribe}, testLogger())
		s.Start(context.Background())
		defer s.Close()

		listeners.push(entity.CollectionDoctors, doctorDoc("d1", "Dr. Ricardo Mendes", "Dermatology"))
		require.Len(t, s.Doctors(), 5)

		listeners.get(entity.CollectionDoctors).onError(errors.New("permission denied"))
		assert.Equal(t, entity.StaticDoctors(), s.Doctors())
	})
}

func TestDirectoryService_IgnoresSnapshotsAfterClose(t *testing.T) {
	listeners := newListenerSet()
	s := NewDirectoryService(&MockDocumentStore{SubscribeFunc: listeners.subscribe}, testLogger())
	s.Start(context.Background())

	s.Close()
	s.Close()
	listeners.push(entity.CollectionDoctors, doctorDoc("d1", "Dr. Ricardo Mendes", "Dermatology"))

	assert.Len(t, s.Doctors(), len(entity.StaticDoctors()))
	assert.Equal(t, int32(1), listeners.get(entity.CollectionDoctors).unsubscribed)
}
