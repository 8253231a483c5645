package service

import (
	"fmt"
	"html"
	"sync"

	"hospital-portal/internal/domain/entity"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Mailer delivers one HTML email.
type Mailer interface {
	Enabled() bool
	Send(to, subject, body string) error
}

// CountsSource supplies the dashboard counts for the daily digest.
type CountsSource interface {
	Counts() Counts
}

// NotificationService sends booking acknowledgements and the scheduled admin digest.
// Sends run in the background and are not cancelled when the triggering request ends.
type NotificationService struct {
	mailer       Mailer
	counts       CountsSource
	hospitalName string
	adminInbox   string
	schedule     string
	log          *logrus.Logger

	cron *cron.Cron

	// mu orders wg.Add against Stop.
	mu      sync.Mutex
	wg      sync.WaitGroup
	stopped bool
}

func NewNotificationService(mailer Mailer, counts CountsSource, hospitalName, adminInbox, schedule string, log *logrus.Logger) *NotificationService {
	return &NotificationService{
		mailer:       mailer,
		counts:       counts,
		hospitalName: hospitalName,
		adminInbox:   adminInbox,
		schedule:     schedule,
		log:          log,
		cron:         cron.New(),
	}
}

// Start schedules the daily digest. Without SMTP or an admin inbox nothing is scheduled.
func (s *NotificationService) Start() error {
	if !s.mailer.Enabled() || s.adminInbox == "" || s.counts == nil {
		s.log.Info("Admin digest disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, s.SendDailyDigest); err != nil {
		return fmt.Errorf("schedule admin digest %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.log.Infof("Admin digest scheduled: %s", s.schedule)
	return nil
}

// Stop halts the scheduler and waits for running jobs and pending sends.
func (s *NotificationService) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info("NotificationService stopped")
}

// SendBookingAcknowledgement emails the patient in the background.
func (s *NotificationService) SendBookingAcknowledgement(appointment entity.Appointment) {
	if !s.mailer.Enabled() || appointment.Email == "" {
		return
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		subject := fmt.Sprintf("%s: appointment request received", s.hospitalName)
		body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We have received your appointment request. Our team will contact you shortly to confirm it.</p>
		<ul>
			<li><strong>Department:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Payment:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Patient Care Team, %s</p>
	`, html.EscapeString(appointment.Name), html.EscapeString(appointment.Department),
			html.EscapeString(appointment.Date), html.EscapeString(appointment.Time),
			html.EscapeString(appointment.Payment), html.EscapeString(s.hospitalName))

		if err := s.mailer.Send(appointment.Email, subject, body); err != nil {
			s.log.Warnf("Failed to send booking acknowledgement for %s: %+v", appointment.ID, err)
			return
		}
		s.log.Infof("Sent booking acknowledgement for %s", appointment.ID)
	}()
}

// SendDailyDigest emails the current dashboard counts to the admin inbox.
func (s *NotificationService) SendDailyDigest() {
	counts := s.counts.Counts()

	subject := fmt.Sprintf("%s: daily dashboard digest", s.hospitalName)
	body := fmt.Sprintf(`
		<p>Dashboard summary</p>
		<ul>
			<li><strong>Appointments today:</strong> %d</li>
			<li><strong>Pending appointments:</strong> %d</li>
			<li><strong>Unread messages:</strong> %d</li>
			<li><strong>Total appointments:</strong> %d</li>
			<li><strong>Doctors:</strong> %d</li>
			<li><strong>Patients:</strong> %d</li>
		</ul>
	`, counts.TodayAppointments, counts.PendingAppointments, counts.UnreadMessages,
		counts.TotalAppointments, counts.TotalDoctors, counts.TotalPatients)

	if err := s.mailer.Send(s.adminInbox, subject, body); err != nil {
		s.log.Warnf("Failed to send admin digest: %+v", err)
		return
	}
	s.log.Info("Sent admin digest")
}
