// Package whatsapp builds click-to-chat deep links for the admin dashboard.
package whatsapp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Kind selects the canned message sent to the recipient.
type Kind string

const (
	KindAppointment Kind = "appointment"
	KindMessage     Kind = "message"
)

const DefaultHost = "wa.me"

var ErrUnknownKind = errors.New("unknown whatsapp message kind")

const appointmentTemplate = `Dear %s,

Greetings from %s Healthcare Services.

We hope this message finds you in good health. We are reaching out regarding your recent appointment request with our medical team.

Our staff would like to confirm the details and assist you with any questions you may have about your upcoming visit.

Please reply to this message or call our reception desk at your convenience.

Best regards,
Patient Care Team
%s`

const messageTemplate = `Dear %s,

Thank you for contacting %s Healthcare Services.

We have received your inquiry and greatly appreciate you reaching out to us. Our patient care team has reviewed your message and would like to provide you with a personalized response.

We are committed to addressing your concerns promptly and ensuring you receive the best possible care and service.

Please expect a detailed response from our team shortly, or feel free to reply if you have any urgent questions.

Warm regards,
Customer Service Team
%s`

// Composer renders links for one hospital and messaging host.
type Composer struct {
	Host         string
	HospitalName string
}

func NewComposer(host, hospitalName string) *Composer {
	if host == "" {
		host = DefaultHost
	}
	return &Composer{Host: host, HospitalName: hospitalName}
}

// Link is ComposeLink bound to the composer's host and hospital name.
func (c *Composer) Link(phone, name string, kind Kind) (string, error) {
	return ComposeLink(c.Host, c.HospitalName, phone, name, kind)
}

// ComposeLink returns https://<host>/<phone>?text=<template>. The phone keeps only
// digits and a leading "+".
func ComposeLink(host, hospitalName, phone, name string, kind Kind) (string, error) {
	var text string
	switch kind {
	case KindAppointment:
		text = fmt.Sprintf(appointmentTemplate, name, hospitalName, hospitalName)
	case KindMessage:
		text = fmt.Sprintf(messageTemplate, name, hospitalName, hospitalName)
	default:
		return "", ErrUnknownKind
	}

	return fmt.Sprintf("https://%s/%s?text=%s", host, CleanPhone(phone), EncodeText(text)), nil
}

// CleanPhone strips every character except digits and a leading plus sign.
func CleanPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EncodeText percent-encodes s for a query value, spaces as %20.
func EncodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
