package models

type UserRole string
type UserStatus string
type VerificationStatus string
type SubscriptionStatus string
type DemandStatus string
type ProposalStatus string

const (
	UserRoleClient   UserRole = "client"
	UserRoleProvider UserRole = "provider"
	UserRoleAdmin    UserRole = "admin"

	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"

	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"

	DemandStatusOpen      DemandStatus = "open"
	DemandStatusMatched   DemandStatus = "matched"
	DemandStatusClosed    DemandStatus = "closed"
	DemandStatusCancelled DemandStatus = "cancelled"

	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)
