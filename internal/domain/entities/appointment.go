package entities

import "time"

// AppointmentRequest is a visitor-submitted request for an appointment at a
// clinic. Requests are acknowledged locally; no booking or notification is
// performed.
type AppointmentRequest struct {
	ID            string    `json:"id"`
	ClinicName    string    `json:"clinicName"`
	OwnerName     string    `json:"ownerName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	PetName       string    `json:"petName"`
	Reason        string    `json:"reason,omitempty"`
	PreferredDate string    `json:"preferredDate,omitempty"`
	ReceivedAt    time.Time `json:"receivedAt"`
}
