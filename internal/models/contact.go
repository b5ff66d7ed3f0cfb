package models

// RawContactRecord is one contact row contributed by a confirmed booking,
// a pending booking request, or a cancelled booking
type RawContactRecord struct {
	DisplayName  string  `json:"displayName"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	SourceWeight int     `json:"sourceWeight"`
	// Source-specific context carried through resolution untouched
	RecordID      string        `json:"recordId,omitempty"`
	Source        ContactSource `json:"source,omitempty"`
	TherapistName string        `json:"therapistName,omitempty"`
}

// ClientIdentity is an equivalence class of contact records sharing an email or phone
type ClientIdentity struct {
	Key            string             `json:"key"`
	CanonicalEmail *string            `json:"canonicalEmail,omitempty"`
	CanonicalPhone *string            `json:"canonicalPhone,omitempty"`
	Members        []RawContactRecord `json:"members"`
	TotalWeight    int                `json:"totalWeight"`
}

// ClientSummary represents one resolved client in the dashboard response
type ClientSummary struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Email        *string  `json:"email,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	SessionCount int      `json:"sessionCount"`
	RecordCount  int      `json:"recordCount"`
	Therapist    string   `json:"therapist,omitempty"`
	BookingIDs   []string `json:"bookingIds"`
}

// ClientsResponse represents the response body of the clients endpoint
type ClientsResponse struct {
	Clients []ClientSummary `json:"clients"`
	Total   int             `json:"total"`
}

// ContactSource identifies which table a contact row came from
type ContactSource string

const (
	SourceBooking ContactSource = "booking"
	SourceRequest ContactSource = "request"
)

// ContactRow is a contact-bearing row fetched from bookings or booking requests
type ContactRow struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         *string       `json:"email,omitempty"`
	Phone         *string       `json:"phone,omitempty"`
	Status        string        `json:"status"`
	TherapistName string        `json:"therapistName"`
	Source        ContactSource `json:"source"`
}
