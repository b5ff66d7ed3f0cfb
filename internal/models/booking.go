package models

import "time"

// SessionRow is a booking row as fetched for status derivation
type SessionRow struct {
	ID            string  `json:"id"`
	InviteeName   string  `json:"inviteeName"`
	InviteeEmail  *string `json:"inviteeEmail,omitempty"`
	InviteePhone  *string `json:"inviteePhone,omitempty"`
	BookingStatus string  `json:"bookingStatus"`
	InviteeTime   string  `json:"inviteeTime"`
	SessionType   string  `json:"sessionType"`
	TherapistName string  `json:"therapistName"`
	HasNotes      bool    `json:"hasNotes"`
}

// BookingView is a booking enriched with its derived lifecycle status
type BookingView struct {
	ID          string     `json:"id"`
	ClientName  string     `json:"clientName"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	SessionType string     `json:"sessionType"`
	Therapist   string     `json:"therapist"`
	RawStatus   string     `json:"rawStatus"`
	Status      string     `json:"status"`
	IsLive      bool       `json:"isLive"`
	StartsAt    *time.Time `json:"startsAt,omitempty"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
	DisplayTime string     `json:"displayTime"`
	HasNotes    bool       `json:"hasNotes"`
}

// BookingsResponse represents the response body of the bookings endpoint
type BookingsResponse struct {
	Bookings []BookingView `json:"bookings"`
	Total    int           `json:"total"`
}

// StatusSummary counts bookings per derived status
type StatusSummary struct {
	Counts    map[string]int `json:"counts"`
	Total     int            `json:"total"`
	LiveCount int            `json:"liveCount"`
}

// PreviewRequest represents the body of a status preview request
type PreviewRequest struct {
	Status      string  `json:"status"`
	InviteeTime string  `json:"inviteeTime"`
	HasNotes    bool    `json:"hasNotes"`
	Now         *string `json:"now,omitempty"`
}

// PreviewResponse represents the derived status for a single booking
type PreviewResponse struct {
	Status      string     `json:"status"`
	IsLive      bool       `json:"isLive"`
	StartsAt    *time.Time `json:"startsAt,omitempty"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
	DisplayTime string     `json:"displayTime,omitempty"`
	ParseError  string     `json:"parseError,omitempty"`
}
