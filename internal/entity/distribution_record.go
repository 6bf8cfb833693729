package entity

// DistributionRecord is the audit row written when a batched reward
// distribution confirms on chain. Amounts are human-readable decimal
// strings, parallel to SubmissionIDs.
type DistributionRecord struct {
	Base

	TxHash        string `gorm:"index"`
	OperatorID    string `gorm:"index"`
	SubmissionIDs Array[string]
	Amounts       Array[string]
}
