// internal/domain/models/invitation.go
package models

// InvitationStatus tracks a sent invitation: PENDING until the invitee
// completes signup with the associated token, ACCEPTED afterwards.
type InvitationStatus string

const (
	InvitePending  InvitationStatus = "PENDING"
	InviteAccepted InvitationStatus = "ACCEPTED"
)

// Invitation is a colleague invite sent by a NURSE or ADMIN.
type Invitation struct {
	ID           string           `json:"id"`
	InviteeEmail string           `json:"invitee_email"`
	Status       InvitationStatus `json:"status"`
	CreatedAt    string           `json:"created_at"`
}

// InvitationClaim is what token validation returns: the email the token
// was issued for. The signup form locks its email field to this value.
type InvitationClaim struct {
	Email string `json:"email"`
}
