// Package profile defines the commercial domains the agent can serve and the
// structured business profile attached to each one. A profile carries the
// catalog, policy lines, and tone directive that the dialogue engine folds
// into the system prompt.
package profile

import (
	"fmt"
	"strings"
)

// Domain is the commercial category of a conversation.
type Domain string

const (
	Delivery Domain = "delivery"
	Mechanic Domain = "mechanic"
	Pharmacy Domain = "pharmacy"
	Unknown  Domain = "unknown"
)

// Concrete reports whether d is one of the three serviced domains.
func (d Domain) Concrete() bool {
	return d == Delivery || d == Mechanic || d == Pharmacy
}

// Valid reports whether d is a recognized label, including Unknown.
func (d Domain) Valid() bool {
	return d.Concrete() || d == Unknown
}

// Sanitize lowercases a raw classifier answer, strips quoting and punctuation
// artifacts, and forces Unknown for anything outside the closed label set.
func Sanitize(raw string) Domain {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.NewReplacer(`"`, "", "'", "", ".", "", ",", "").Replace(cleaned)
	d := Domain(cleaned)
	if !d.Valid() {
		return Unknown
	}
	return d
}

// CatalogEntry is one product or service offered by a domain. Optional fields
// are empty when they do not apply.
type CatalogEntry struct {
	Name                 string
	Price                string
	Available            bool
	RequiresPrescription bool
	Duration             string
	Note                 string
}

// Policies holds the business policy lines surfaced in prompts.
type Policies struct {
	PaymentMethods      []string
	DeliveryFee         string
	MinimumOrder        string
	DeliveryTime        string
	DiagnosticFee       string
	Warranty            string
	AppointmentRequired bool
}

// Profile is the full business profile for one concrete domain.
type Profile struct {
	Domain       Domain
	WorkingHours string
	Products     []CatalogEntry
	Services     []CatalogEntry
	Policies     Policies
	Tone         string
}

// ForDomain returns the profile for a concrete domain. The second return is
// false for Unknown and unrecognized labels, which carry no profile.
func ForDomain(d Domain) (Profile, bool) {
	switch d {
	case Delivery:
		return deliveryProfile, true
	case Mechanic:
		return mechanicProfile, true
	case Pharmacy:
		return pharmacyProfile, true
	default:
		return Profile{}, false
	}
}

// PromptSection renders the profile facts as prompt text: working hours,
// catalog entries with availability/prescription/duration annotations, and
// policy lines.
func (p Profile) PromptSection() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Business: %s. ", p.Domain)
	if p.WorkingHours != "" {
		fmt.Fprintf(&b, "Working hours: %s. ", p.WorkingHours)
	}
	if len(p.Products) > 0 {
		fmt.Fprintf(&b, "Products: %s. ", renderCatalog(p.Products))
	}
	if len(p.Services) > 0 {
		fmt.Fprintf(&b, "Services: %s. ", renderCatalog(p.Services))
	}

	pol := p.Policies
	if len(pol.PaymentMethods) > 0 {
		fmt.Fprintf(&b, "Payment methods: %s. ", strings.Join(pol.PaymentMethods, ", "))
	}
	if pol.DeliveryFee != "" {
		fmt.Fprintf(&b, "Delivery fee: %s. ", pol.DeliveryFee)
	}
	if pol.MinimumOrder != "" {
		fmt.Fprintf(&b, "Minimum order: %s. ", pol.MinimumOrder)
	}
	if pol.DeliveryTime != "" {
		fmt.Fprintf(&b, "Delivery time: %s. ", pol.DeliveryTime)
	}
	if pol.DiagnosticFee != "" {
		fmt.Fprintf(&b, "Diagnostic fee: %s. ", pol.DiagnosticFee)
	}
	if pol.Warranty != "" {
		fmt.Fprintf(&b, "Warranty: %s. ", pol.Warranty)
	}
	if pol.AppointmentRequired {
		b.WriteString("Appointment required for all services. ")
	}

	return b.String()
}

// renderCatalog formats entries as "Name - price (Available) (NOTE)" lines
// joined by semicolons. Unavailable entries omit the price.
func renderCatalog(entries []CatalogEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		var sb strings.Builder
		sb.WriteString(e.Name)
		if e.Available && e.Price != "" {
			sb.WriteString(" - " + e.Price)
		}
		if e.Available {
			sb.WriteString(" (Available)")
		} else {
			sb.WriteString(" (Unavailable)")
		}
		if e.RequiresPrescription {
			sb.WriteString(" (PRESCRIPTION REQUIRED)")
		}
		if e.Duration != "" {
			sb.WriteString(" (Duration: " + e.Duration + ")")
		}
		if e.Note != "" {
			sb.WriteString(" (" + e.Note + ")")
		}
		parts = append(parts, sb.String())
	}
	return strings.Join(parts, "; ")
}
