package model

import "time"

// AuditEvent is published to the audit topic whenever a dispatched
// transaction is resolved.
type AuditEvent struct {
	Type       string    `json:"type"` // blockchain transaction purpose
	TxHash     string    `json:"tx_hash"`
	OperatorID string    `json:"operator_id"`
	Success    bool      `json:"success"`
	Timestamp  time.Time `json:"timestamp"`
}
