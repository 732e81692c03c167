package model

import "time"

// InvitationID uniquely identifies an invitation
type InvitationID string

// InvitationStatus tracks the invitee's response
type InvitationStatus string

const (
	InvitationInvited  InvitationStatus = "invited"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRejected InvitationStatus = "rejected"
)

// Invitation records one host-to-invitee offer to join a game.
// Status moves one way out of invited; records are never deleted so they
// remain an audit trail.
type Invitation struct {
	ID        InvitationID
	GameID    GameID
	InviterID UserID
	InviteeID UserID
	Status    InvitationStatus
	CreatedAt time.Time
}

// Resolved reports whether the invitation has left the invited status
func (i *Invitation) Resolved() bool {
	return i.Status != InvitationInvited
}
