package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/pkg/whatsapp"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

var (
	ErrInvalidStatus    = errors.New("invalid status")
	ErrStaticDoctor     = errors.New("built-in doctors cannot be deleted")
	ErrControllerClosed = errors.New("dashboard controller is closed")
)

// Counts are the dashboard badges derived from the cached lists.
type Counts struct {
	TotalAppointments   int `json:"total_appointments"`
	TodayAppointments   int `json:"today_appointments"`
	PendingAppointments int `json:"pending_appointments"`
	TotalMessages       int `json:"total_messages"`
	UnreadMessages      int `json:"unread_messages"`
	TotalDoctors        int `json:"total_doctors"`
	TotalPatients       int `json:"total_patients"`
}

// DashboardView is a point-in-time copy of the controller state.
type DashboardView struct {
	Today        string               `json:"today"`
	Counts       Counts               `json:"counts"`
	Appointments []entity.Appointment `json:"appointments"`
	Messages     []entity.Message     `json:"messages"`
	Doctors      []entity.Doctor      `json:"doctors"`
	Patients     []entity.Patient     `json:"patients"`
}

// DeriveCounts counts today's, pending and unread records. today is compared
// to Appointment.Date by plain string equality.
func DeriveCounts(appointments []entity.Appointment, messages []entity.Message, today string) Counts {
	counts := Counts{
		TotalAppointments: len(appointments),
		TotalMessages:     len(messages),
	}
	for i := range appointments {
		if appointments[i].Date == today {
			counts.TodayAppointments++
		}
		if appointments[i].IsPending() {
			counts.PendingAppointments++
		}
	}
	for i := range messages {
		if messages[i].IsUnread() {
			counts.UnreadMessages++
		}
	}
	return counts
}

// DashboardController mirrors the appointments, messages, doctors and patients
// collections through live queries and issues the admin workflow commands.
//
// Commands only write to the store. The cached lists change exclusively when a
// snapshot arrives, each snapshot replacing its list in full.
type DashboardController struct {
	store    repository.DocumentStore
	audit    AuditService
	links    *whatsapp.Composer
	location *time.Location
	log      *logrus.Logger
	now      func() time.Time

	mu           sync.RWMutex
	appointments []entity.Appointment
	messages     []entity.Message
	doctors      []entity.Doctor
	patients     []entity.Patient
	onChange     func(DashboardView)
	subs         []repository.Subscription
	started      bool
	closed       bool
}

func NewDashboardController(store repository.DocumentStore, audit AuditService, links *whatsapp.Composer, location *time.Location, log *logrus.Logger) *DashboardController {
	if location == nil {
		location = time.Local
	}
	return &DashboardController{
		store:        store,
		audit:        audit,
		links:        links,
		location:     location,
		log:          log,
		now:          time.Now,
		appointments: []entity.Appointment{},
		messages:     []entity.Message{},
		doctors:      []entity.Doctor{},
		patients:     []entity.Patient{},
	}
}

// OnChange registers fn to receive a fresh view after every cache replacement.
// Must be set before Start.
func (c *DashboardController) OnChange(fn func(DashboardView)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Start opens the four live queries. A listener that cannot be opened is
// logged and skipped; the others keep running.
func (c *DashboardController) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.mu.Unlock()

	listeners := []struct {
		collection string
		apply      repository.SnapshotFunc
	}{
		{entity.CollectionAppointments, c.applyAppointments},
		{entity.CollectionMessages, c.applyMessages},
		{entity.CollectionDoctors, c.applyDoctors},
		{entity.CollectionPatients, c.applyPatients},
	}

	var (
		wg     conc.WaitGroup
		openMu sync.Mutex
		opened []repository.Subscription
	)
	for _, l := range listeners {
		l := l
		wg.Go(func() {
			query := repository.Query{
				Collection: l.collection,
				OrderBy:    entity.FieldCreatedAt,
				Descending: true,
			}
			sub, err := c.store.Subscribe(ctx, query, l.apply, c.listenerFailed(l.collection))
			if err != nil {
				c.log.Warnf("Failed to subscribe to %s: %+v", l.collection, err)
				return
			}
			openMu.Lock()
			opened = append(opened, sub)
			openMu.Unlock()
		})
	}
	wg.Wait()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		for _, sub := range opened {
			sub.Unsubscribe()
		}
		return ErrControllerClosed
	}
	c.subs = opened
	c.mu.Unlock()

	c.log.Infof("Dashboard controller started with %d/%d listeners", len(opened), len(listeners))
	return nil
}

// Close detaches every listener. No state changes after Close returns.
func (c *DashboardController) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// View returns a copy of the cached lists with counts for the current day.
func (c *DashboardController) View() DashboardView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.viewLocked()
}

// Counts is View().Counts without copying the lists.
func (c *DashboardController) Counts() Counts {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.countsLocked(c.today())
}

// SetAppointmentStatus writes status to the store. When the cached
// appointment already has that status nothing is written or audited.
func (c *DashboardController) SetAppointmentStatus(ctx context.Context, id string, status entity.AppointmentStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	var previous interface{}
	if a, ok := c.cachedAppointment(id); ok {
		if a.Status == status {
			return nil
		}
		previous = string(a.Status)
	}

	if err := c.store.Update(ctx, entity.CollectionAppointments, id, entity.JSON{"status": string(status)}); err != nil {
		c.log.Errorf("Failed to set appointment %s status to %s: %+v", id, status, err)
		return err
	}

	c.record(func(a AuditService) error {
		return a.LogUpdate(ctx, entity.AdminSubject, entity.AuditActionAppointmentStatus, entity.CollectionAppointments, id, previous, string(status))
	})
	return nil
}

// SetMessageStatus is SetAppointmentStatus for contact messages.
func (c *DashboardController) SetMessageStatus(ctx context.Context, id string, status entity.MessageStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	var previous interface{}
	if m, ok := c.cachedMessage(id); ok {
		if m.Status == status {
			return nil
		}
		previous = string(m.Status)
	}

	if err := c.store.Update(ctx, entity.CollectionMessages, id, entity.JSON{"status": string(status)}); err != nil {
		c.log.Errorf("Failed to set message %s status to %s: %+v", id, status, err)
		return err
	}

	c.record(func(a AuditService) error {
		return a.LogUpdate(ctx, entity.AdminSubject, entity.AuditActionMessageStatus, entity.CollectionMessages, id, previous, string(status))
	})
	return nil
}

func (c *DashboardController) DeleteAppointment(ctx context.Context, id string) error {
	var old interface{}
	if a, ok := c.cachedAppointment(id); ok {
		old = a
	}

	if err := c.store.Delete(ctx, entity.CollectionAppointments, id); err != nil {
		c.log.Errorf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	c.record(func(a AuditService) error {
		return a.LogDelete(ctx, entity.AdminSubject, entity.AuditActionAppointmentDelete, entity.CollectionAppointments, id, old)
	})
	return nil
}

func (c *DashboardController) DeleteDoctor(ctx context.Context, id string) error {
	if entity.IsStaticDoctorID(id) {
		return ErrStaticDoctor
	}

	var old interface{}
	c.mu.RLock()
	for i := range c.doctors {
		if c.doctors[i].ID == id {
			old = c.doctors[i]
			break
		}
	}
	c.mu.RUnlock()

	if err := c.store.Delete(ctx, entity.CollectionDoctors, id); err != nil {
		c.log.Errorf("Failed to delete doctor %s: %+v", id, err)
		return err
	}

	c.record(func(a AuditService) error {
		return a.LogDelete(ctx, entity.AdminSubject, entity.AuditActionDoctorDelete, entity.CollectionDoctors, id, old)
	})
	return nil
}

// ComposeWhatsAppLink builds a click-to-chat link with the canned text for kind.
func (c *DashboardController) ComposeWhatsAppLink(phone, name string, kind whatsapp.Kind) (string, error) {
	return c.links.Link(phone, name, kind)
}

// AppointmentLink composes the link for a cached appointment, reading the
// store when the cache has not seen it yet.
func (c *DashboardController) AppointmentLink(ctx context.Context, id string) (string, error) {
	a, ok := c.cachedAppointment(id)
	if !ok {
		doc, err := c.store.Get(ctx, entity.CollectionAppointments, id)
		if err != nil {
			return "", err
		}
		a = converter.DocumentToAppointment(*doc)
	}
	return c.ComposeWhatsAppLink(a.Phone, a.Name, whatsapp.KindAppointment)
}

// MessageLink is AppointmentLink for contact messages.
func (c *DashboardController) MessageLink(ctx context.Context, id string) (string, error) {
	m, ok := c.cachedMessage(id)
	if !ok {
		doc, err := c.store.Get(ctx, entity.CollectionMessages, id)
		if err != nil {
			return "", err
		}
		m = converter.DocumentToMessage(*doc)
	}
	return c.ComposeWhatsAppLink(m.Phone, m.FullName(), whatsapp.KindMessage)
}

func (c *DashboardController) applyAppointments(snapshot entity.Snapshot) {
	list := converter.DocumentsToAppointments(snapshot.Documents)
	c.replace(snapshot, func() { c.appointments = list })
}

func (c *DashboardController) applyMessages(snapshot entity.Snapshot) {
	list := converter.DocumentsToMessages(snapshot.Documents)
	c.replace(snapshot, func() { c.messages = list })
}

func (c *DashboardController) applyDoctors(snapshot entity.Snapshot) {
	list := converter.DocumentsToDoctors(snapshot.Documents)
	c.replace(snapshot, func() { c.doctors = list })
}

func (c *DashboardController) applyPatients(snapshot entity.Snapshot) {
	list := converter.DocumentsToPatients(snapshot.Documents)
	c.replace(snapshot, func() { c.patients = list })
}

func (c *DashboardController) replace(snapshot entity.Snapshot, set func()) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	set()
	onChange := c.onChange
	var view DashboardView
	if onChange != nil {
		view = c.viewLocked()
	}
	c.mu.Unlock()

	c.log.Debugf("Dashboard snapshot: %s (%d documents)", snapshot.Collection, len(snapshot.Documents))
	if onChange != nil {
		onChange(view)
	}
}

// listenerFailed keeps the last-known-good list of the failed collection.
func (c *DashboardController) listenerFailed(collection string) repository.ErrorFunc {
	return func(err error) {
		c.log.Warnf("Dashboard listener for %s stopped: %+v", collection, err)
	}
}

func (c *DashboardController) record(fn func(AuditService) error) {
	if c.audit == nil {
		return
	}
	_ = fn(c.audit)
}

func (c *DashboardController) cachedAppointment(id string) (entity.Appointment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.appointments {
		if c.appointments[i].ID == id {
			return c.appointments[i], true
		}
	}
	return entity.Appointment{}, false
}

func (c *DashboardController) cachedMessage(id string) (entity.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.messages {
		if c.messages[i].ID == id {
			return c.messages[i], true
		}
	}
	return entity.Message{}, false
}

func (c *DashboardController) today() string {
	return c.now().In(c.location).Format(time.DateOnly)
}

func (c *DashboardController) countsLocked(today string) Counts {
	counts := DeriveCounts(c.appointments, c.messages, today)
	counts.TotalDoctors = len(c.doctors)
	counts.TotalPatients = len(c.patients)
	return counts
}

func (c *DashboardController) viewLocked() DashboardView {
	today := c.today()
	return DashboardView{
		Today:        today,
		Counts:       c.countsLocked(today),
		Appointments: cloneList(c.appointments),
		Messages:     cloneList(c.messages),
		Doctors:      cloneList(c.doctors),
		Patients:     cloneList(c.patients),
	}
}

func cloneList[T any](list []T) []T {
	out := make([]T, len(list))
	copy(out, list)
	return out
}
