package service

import (
	"context"
	"strings"
	"sync"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// DirectoryPageSize is how many doctors the collapsed directory shows.
const DirectoryPageSize = 4

// FilterDoctors keeps entries whose name or specialty contains searchTerm
// (case-insensitive) and, unless specialty is empty or AllSpecialties, whose
// specialty equals it exactly.
func FilterDoctors(list []entity.Doctor, searchTerm, specialty string) []entity.Doctor {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	allSpecialties := specialty == "" || specialty == entity.AllSpecialties

	result := make([]entity.Doctor, 0, len(list))
	for _, d := range list {
		if term != "" &&
			!strings.Contains(strings.ToLower(d.Name), term) &&
			!strings.Contains(strings.ToLower(d.Specialty), term) {
			continue
		}
		if !allSpecialties && d.Specialty != specialty {
			continue
		}
		result = append(result, d)
	}
	return result
}

// DirectoryView is the visitor's filter state over the directory.
type DirectoryView struct {
	Search    string
	Specialty string
	ShowAll   bool
}

// ToggleShowAll switches between the capped and full list and clears both filters.
func (v *DirectoryView) ToggleShowAll() {
	v.ShowAll = !v.ShowAll
	v.Search = ""
	v.Specialty = entity.AllSpecialties
}

// Visible applies the filters and, unless ShowAll is set, the page cap.
// total is the filtered count before capping.
func (v DirectoryView) Visible(list []entity.Doctor) (visible []entity.Doctor, total int) {
	filtered := FilterDoctors(list, v.Search, v.Specialty)
	if !v.ShowAll && len(filtered) > DirectoryPageSize {
		return filtered[:DirectoryPageSize], len(filtered)
	}
	return filtered, len(filtered)
}

// DirectoryService serves the visitor directory: the built-in doctors followed
// by the live doctors collection. While the live query is unavailable only the
// built-in list is served.
type DirectoryService struct {
	store repository.DocumentStore
	log   *logrus.Logger

	mu     sync.RWMutex
	live   []entity.Doctor
	sub    repository.Subscription
	closed bool
}

func NewDirectoryService(store repository.DocumentStore, log *logrus.Logger) *DirectoryService {
	return &DirectoryService{
		store: store,
		log:   log,
	}
}

// Start opens the doctors live query. Failure to open it is logged and the
// service keeps serving the built-in list.
func (s *DirectoryService) Start(ctx context.Context) {
	query := repository.Query{
		Collection: entity.CollectionDoctors,
		OrderBy:    entity.FieldCreatedAt,
		Descending: true,
	}
	sub, err := s.store.Subscribe(ctx, query, s.applyDoctors, s.listenerFailed)
	if err != nil {
		s.log.Warnf("Failed to subscribe to doctors, serving built-in list: %+v", err)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.Unsubscribe()
		return
	}
	s.sub = sub
	s.mu.Unlock()
}

func (s *DirectoryService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// Doctors returns the built-in list followed by the live doctors.
func (s *DirectoryService) Doctors() []entity.Doctor {
	doctors := entity.StaticDoctors()

	s.mu.RLock()
	doctors = append(doctors, s.live...)
	s.mu.RUnlock()

	return doctors
}

// Doctor finds one directory entry by id.
func (s *DirectoryService) Doctor(id string) (entity.Doctor, bool) {
	for _, d := range s.Doctors() {
		if d.ID == id {
			return d, true
		}
	}
	return entity.Doctor{}, false
}

func (s *DirectoryService) applyDoctors(snapshot entity.Snapshot) {
	live := make([]entity.Doctor, len(snapshot.Documents))
	for i, doc := range snapshot.Documents {
		live[i] = converter.DoctorToDirectoryEntry(converter.DocumentToDoctor(doc))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.live = live
}

func (s *DirectoryService) listenerFailed(err error) {
	s.log.Warnf("Doctors listener stopped, serving built-in list: %+v", err)

	s.mu.Lock()
	s.live = nil
	s.mu.Unlock()
}
