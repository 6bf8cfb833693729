package model

// Canonical record types returned by the client layer. External services
// and the subgraph each have their own envelopes and numeric encodings;
// everything is normalized to these shapes before reaching a domain.

// KycSubmission statuses.
const (
	KycStatusNotStarted = 0
	KycStatusPending    = 1
	KycStatusApproved   = 2
	KycStatusRejected   = 3
)

type KycSubmission struct {
	ID           string `json:"id" mapstructure:"id"`
	UserAddress  string `json:"userAddress" mapstructure:"userAddress"`
	FullName     string `json:"fullName" mapstructure:"fullName"`
	DocumentType string `json:"documentType" mapstructure:"documentType"`
	Status       int    `json:"status" mapstructure:"status"`
	IsOrganizer  bool   `json:"isOrganizer" mapstructure:"isOrganizer"`
	SubmittedAt  string `json:"submittedAt" mapstructure:"submittedAt"`
}

type BankTransaction struct {
	ID          string `json:"id" mapstructure:"id"`
	UserAddress string `json:"userAddress" mapstructure:"userAddress"`
	Amount      string `json:"amount" mapstructure:"amount"`
	Currency    string `json:"currency" mapstructure:"currency"`
	Status      string `json:"status" mapstructure:"status"`
	CreatedAt   string `json:"createdAt" mapstructure:"createdAt"`
}

type ExchangeRate struct {
	Currency  string `json:"currency" mapstructure:"currency"`
	Rate      string `json:"rate" mapstructure:"rate"`
	UpdatedAt string `json:"updatedAt" mapstructure:"updatedAt"`
}

type EmailStatus struct {
	Status     string `json:"status" mapstructure:"status"`
	QueueSize  int    `json:"queueSize" mapstructure:"queueSize"`
	LastSentAt string `json:"lastSentAt" mapstructure:"lastSentAt"`
}

// StreakSubmission statuses as indexed on chain.
const (
	StreakStatusPending  = 0
	StreakStatusApproved = 1
	StreakStatusRejected = 2
)

type StreakSubmission struct {
	ID              string `json:"id"`
	User            string `json:"user"`
	Metadata        string `json:"metadata"`
	Status          int    `json:"status"`
	RewardAmount    string `json:"rewardAmount"` // smallest-unit decimal string
	RejectionReason string `json:"rejectionReason"`
	SubmittedAt     string `json:"submittedAt"`
	ReviewedAt      string `json:"reviewedAt"`
}

// Cleanup statuses as indexed on chain.
const (
	CleanupStatusUnpublished = 0
	CleanupStatusPublished   = 1
	CleanupStatusActive      = 2
	CleanupStatusCompleted   = 3
	CleanupStatusRewarded    = 4
)

type Cleanup struct {
	ID               string `json:"id"`
	Organizer        string `json:"organizer"`
	Metadata         string `json:"metadata"`
	Status           int    `json:"status"`
	ParticipantCount string `json:"participantCount"`
	ScheduledAt      string `json:"scheduledAt"`
}

type CleanupUpdate struct {
	ID        string `json:"id"`
	CleanupID string `json:"cleanupId"`
	Submitter string `json:"submitter"`
	Metadata  string `json:"metadata"`
	Timestamp string `json:"timestamp"`
}

type User struct {
	Address      string `json:"address"`
	ReferralCode string `json:"referralCode"`
	StreakCount  string `json:"streakCount"`
	TotalRewards string `json:"totalRewards"`
	JoinedAt     string `json:"joinedAt"`
}
