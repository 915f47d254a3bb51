package leads

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Defaults applied to optional submission fields.
const (
	DefaultMessage     = "No additional message provided"
	DefaultRequirement = "General inquiry"
	DefaultType        = "contact_form"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Lead represents a captured sales inquiry. Leads are never mutated or
// deleted after creation.
type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Company     string    `json:"company"`
	Message     string    `json:"message"`
	Requirement string    `json:"requirement"`
	Type        string    `json:"type"`
	SubmittedAt time.Time `json:"submittedAt"`
	IP          string    `json:"ip"`
}

// SubmitLeadRequest represents the request body for submitting a lead
type SubmitLeadRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Message     string `json:"message"`
	Requirement string `json:"requirement"`
	Type        string `json:"type"`
}

// Validate checks the required fields and the email shape.
func (r *SubmitLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.Phone) == "" ||
		strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.Company) == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		return ErrInvalidEmail
	}
	return nil
}

// NewLead builds the stored record from a validated request. The ID is the
// submission time in epoch milliseconds; ip falls back to "unknown".
func (r *SubmitLeadRequest) NewLead(now time.Time, ip string) *Lead {
	lead := &Lead{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Name:        strings.TrimSpace(r.Name),
		Phone:       strings.TrimSpace(r.Phone),
		Email:       strings.ToLower(strings.TrimSpace(r.Email)),
		Company:     strings.TrimSpace(r.Company),
		Message:     strings.TrimSpace(r.Message),
		Requirement: strings.TrimSpace(r.Requirement),
		Type:        strings.TrimSpace(r.Type),
		SubmittedAt: now,
		IP:          ip,
	}
	if lead.Message == "" {
		lead.Message = DefaultMessage
	}
	if lead.Requirement == "" {
		lead.Requirement = DefaultRequirement
	}
	if lead.Type == "" {
		lead.Type = DefaultType
	}
	if lead.IP == "" {
		lead.IP = "unknown"
	}
	return lead
}
