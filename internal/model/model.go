// Package model contains domain entities and DTOs used across layers.
// I keep it lean: data shapes plus copying helpers.
package model

import "time"

// Lead is a business contact record. Industry is the categorical filter
// dimension, Headcount the numeric one (nil when unknown).
type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	JobTitle    string    `json:"job_title"`
	Company     string    `json:"company"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	Industry    string    `json:"industry"`
	Headcount   *int      `json:"headcount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a deep copy so stores never share optional fields with callers.
func (l Lead) Clone() Lead {
	out := l
	if l.PhoneNumber != nil {
		p := *l.PhoneNumber
		out.PhoneNumber = &p
	}
	if l.Headcount != nil {
		h := *l.Headcount
		out.Headcount = &h
	}
	return out
}

// LeadInput carries the client-editable fields of a lead.
// Tags are enforced by the service layer through validator/v10.
type LeadInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	JobTitle    string  `json:"job_title" validate:"required,min=1,max=200"`
	Company     string  `json:"company" validate:"required,min=1,max=200"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=50"`
	Industry    string  `json:"industry" validate:"required,min=1,max=100"`
	Headcount   *int    `json:"headcount" validate:"omitempty,min=1,max=1000000"`
}
