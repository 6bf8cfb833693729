package domain

import (
	"context"
	"encoding/json"
	"math/big"
	"strings"
	"time"

	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/entity"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/blockchain"
	"github.com/cleanmate-lab/admin-backend/pkg/errorx"
	"github.com/cleanmate-lab/admin-backend/pkg/numberutil"
	"github.com/cleanmate-lab/admin-backend/pkg/pubsub"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

var errWalletNotConnected = errorx.New(errorx.WalletNotConnected, "No admin wallet is connected")

// dispatcher is the single path every dispatched transaction takes: record
// an inprogress row, send the clause, and on confirmation resolve the row,
// invalidate the dependent caches, run the workflow's success hook and
// publish an audit event. Failures are never retried here.
type dispatcher struct {
	txSender  blockchain.TxSender
	txRepo    repository.BlockchainTransactionRepository
	publisher pubsub.Publisher
	cache     *common.QueryCache
}

func NewDispatcher(
	txSender blockchain.TxSender,
	txRepo repository.BlockchainTransactionRepository,
	publisher pubsub.Publisher,
	cache *common.QueryCache,
) *dispatcher {
	return &dispatcher{
		txSender:  txSender,
		txRepo:    txRepo,
		publisher: publisher,
		cache:     cache,
	}
}

func (d *dispatcher) configured() bool {
	return d.txSender != nil && d.txSender.Configured()
}

func (d *dispatcher) dispatch(
	ctx context.Context,
	purpose entity.TransactionPurposeType,
	clause blockchain.Clause,
	invalidates []string,
	onSuccess func(ctx context.Context, txHash string),
) (string, error) {
	if !d.configured() {
		return "", errWalletNotConnected
	}

	operatorID := xcontext.RequestUserID(ctx)
	txHash, err := d.txSender.Send(ctx, clause,
		func(ctx context.Context, txHash string, success bool) {
			d.resolve(ctx, purpose, operatorID, txHash, success, invalidates, onSuccess)
		})
	if err != nil {
		// The signing provider's error reaches the operator verbatim.
		return "", errorx.New(errorx.TransactionFailed, "%s", err)
	}

	err = d.txRepo.Create(ctx, &entity.BlockchainTransaction{
		Base:       entity.Base{ID: uuid.NewString()},
		Chain:      xcontext.Configs(ctx).Chain.Chain,
		TxHash:     txHash,
		OperatorID: operatorID,
		Purpose:    purpose,
		Status:     entity.BlockchainTransactionStatusTypeInProgress,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record transaction %s: %v", txHash, err)
	}

	return txHash, nil
}

func (d *dispatcher) resolve(
	ctx context.Context,
	purpose entity.TransactionPurposeType,
	operatorID, txHash string,
	success bool,
	invalidates []string,
	onSuccess func(ctx context.Context, txHash string),
) {
	status := entity.BlockchainTransactionStatusTypeFailure
	if success {
		status = entity.BlockchainTransactionStatusTypeSuccess
	}

	if err := d.txRepo.UpdateStatusByTxHash(ctx, txHash, status); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot resolve transaction %s: %v", txHash, err)
	}

	if success {
		d.cache.Invalidate(ctx, invalidates...)
		if onSuccess != nil {
			onSuccess(ctx, txHash)
		}
	}

	d.publishAudit(ctx, purpose, operatorID, txHash, success)
}

func (d *dispatcher) publishAudit(
	ctx context.Context,
	purpose entity.TransactionPurposeType,
	operatorID, txHash string,
	success bool,
) {
	if d.publisher == nil {
		return
	}

	topic := xcontext.Configs(ctx).Kafka.AuditTopic
	if topic == "" {
		return
	}

	msg, err := json.Marshal(model.AuditEvent{
		Type:       string(purpose),
		TxHash:     txHash,
		OperatorID: operatorID,
		Success:    success,
		Timestamp:  time.Now(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal audit event: %v", err)
		return
	}

	err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(txHash), Msg: msg})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot publish audit event of %s: %v", txHash, err)
	}
}

// parseSubmissionID converts a subgraph id into the contract's uint256.
func parseSubmissionID(id string) (*big.Int, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}

	n, ok := new(big.Int).SetString(id, 10)
	if !ok || n.Sign() < 0 {
		return nil, false
	}

	return n, true
}

// parsePositiveAmount converts a human-readable decimal amount into the
// fixed-point representation, requiring it to be strictly positive.
func parsePositiveAmount(amount string) (*big.Int, bool) {
	wei, err := numberutil.ParseUnits(amount, numberutil.TokenDecimals)
	if err != nil || wei.Sign() <= 0 {
		return nil, false
	}

	return wei, true
}

func contractAddress(addr string) (ethcommon.Address, error) {
	if !ethcommon.IsHexAddress(addr) {
		return ethcommon.Address{}, errorx.New(errorx.Internal, "The contract address is not configured")
	}

	return ethcommon.HexToAddress(addr), nil
}

func paging(ctx context.Context, offset, limit int) (int, int, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if offset < 0 || limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Invalid offset or limit")
	}

	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", cfg.MaxLimit)
	}

	return offset, limit, nil
}
