package entity

import "github.com/cleanmate-lab/admin-backend/pkg/enum"

type BlockchainTransactionStatusType string

var (
	BlockchainTransactionStatusTypeInProgress = enum.New(BlockchainTransactionStatusType("inprogress"))
	BlockchainTransactionStatusTypeSuccess    = enum.New(BlockchainTransactionStatusType("success"))
	BlockchainTransactionStatusTypeFailure    = enum.New(BlockchainTransactionStatusType("failure"))
)

type TransactionPurposeType string

var (
	TransactionPurposeApproveStreak     = enum.New(TransactionPurposeType("approve_streak"))
	TransactionPurposeRejectStreak      = enum.New(TransactionPurposeType("reject_streak"))
	TransactionPurposeDistributeStreaks = enum.New(TransactionPurposeType("distribute_streaks"))
	TransactionPurposeDistributeCleanup = enum.New(TransactionPurposeType("distribute_cleanup"))
	TransactionPurposeSendRewards       = enum.New(TransactionPurposeType("send_rewards"))
	TransactionPurposePublishCleanup    = enum.New(TransactionPurposeType("publish_cleanup"))
	TransactionPurposeUnpublishCleanup  = enum.New(TransactionPurposeType("unpublish_cleanup"))
	TransactionPurposeUpdateCleanup     = enum.New(TransactionPurposeType("update_cleanup"))
	TransactionPurposeSetReferralCode   = enum.New(TransactionPurposeType("set_referral_code"))
)

// BlockchainTransaction is the local record of every transaction this
// service dispatched. It starts inprogress and is resolved by the
// confirmation watcher.
type BlockchainTransaction struct {
	Base

	Chain      string `gorm:"index:idx_blockchain_transaction_chain_txhash,unique"`
	TxHash     string `gorm:"index:idx_blockchain_transaction_chain_txhash,unique"`
	OperatorID string `gorm:"index"`

	Purpose TransactionPurposeType
	Status  BlockchainTransactionStatusType
}
