package eth

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/cleanmate-lab/admin-backend/config"
	"github.com/cleanmate-lab/admin-backend/pkg/blockchain"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/puzpuzpuz/xsync"
)

var ErrNotConfigured = errors.New("no signing key is configured")

const (
	defaultConfirmInterval = 10 * time.Second
	defaultConfirmTimeout  = 5 * time.Minute
)

type pendingTx struct {
	submittedAt time.Time
	onConfirm   blockchain.ConfirmFunc
}

type ethSender struct {
	cfg     config.ChainConfigs
	client  EthClient
	privKey *ecdsa.PrivateKey
	address common.Address

	// nonceLock serializes nonce acquisition so concurrent sends never reuse
	// a pending nonce.
	nonceLock sync.Mutex
	pendings  *xsync.MapOf[string, *pendingTx]
}

// NewTxSender builds a sender from the chain configs. An empty private key
// yields an unconfigured sender whose Send always fails, so the server can
// still run read-only operations without a wallet.
func NewTxSender(cfg config.ChainConfigs, client EthClient) (*ethSender, error) {
	s := &ethSender{
		cfg:      cfg,
		client:   client,
		pendings: xsync.NewMapOf[*pendingTx](),
	}

	if cfg.PrivKey != "" {
		privKey, err := crypto.HexToECDSA(cfg.PrivKey)
		if err != nil {
			return nil, err
		}

		s.privKey = privKey
		s.address = crypto.PubkeyToAddress(privKey.PublicKey)
	}

	return s, nil
}

func (s *ethSender) Configured() bool {
	return s.privKey != nil
}

func (s *ethSender) Address() common.Address {
	return s.address
}

func (s *ethSender) Send(
	ctx context.Context, clause blockchain.Clause, onConfirm blockchain.ConfirmFunc,
) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	value := clause.Value
	if value == nil {
		value = big.NewInt(0)
	}

	s.nonceLock.Lock()
	defer s.nonceLock.Unlock()

	nonce, err := s.client.PendingNonceAt(ctx, s.address)
	if err != nil {
		return "", err
	}

	gasLimit, err := s.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  s.address,
		To:    &clause.To,
		Value: value,
		Data:  clause.Data,
	})
	if err != nil {
		return "", err
	}
	// Leave some headroom over the estimation.
	gasLimit = gasLimit * 120 / 100

	gasPrice, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", err
	}

	var tx *ethtypes.Transaction
	if s.cfg.UseEip1559 {
		tip, err := s.client.SuggestGasTipCap(ctx)
		if err != nil {
			return "", err
		}

		tx = ethtypes.NewTx(&ethtypes.DynamicFeeTx{
			ChainID:   big.NewInt(s.cfg.ChainID),
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: new(big.Int).Add(gasPrice, tip),
			Gas:       gasLimit,
			To:        &clause.To,
			Value:     value,
			Data:      clause.Data,
		})
	} else {
		tx = ethtypes.NewTx(&ethtypes.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gasLimit,
			To:       &clause.To,
			Value:    value,
			Data:     clause.Data,
		})
	}

	signer := ethtypes.LatestSignerForChainID(big.NewInt(s.cfg.ChainID))
	signedTx, err := ethtypes.SignTx(tx, signer, s.privKey)
	if err != nil {
		return "", err
	}

	if err := s.client.SendTransaction(ctx, signedTx); err != nil {
		return "", err
	}

	hash := signedTx.Hash().String()
	s.pendings.Store(hash, &pendingTx{
		submittedAt: time.Now(),
		onConfirm:   onConfirm,
	})

	return hash, nil
}

// Start runs the confirmation watcher until ctx is cancelled. The given ctx
// is also what confirmation callbacks receive, so it must carry the configs,
// logger and database.
func (s *ethSender) Start(ctx context.Context) {
	interval := s.cfg.ConfirmInterval
	if interval <= 0 {
		interval = defaultConfirmInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.checkPendings(ctx)
			}
		}
	}()
}

func (s *ethSender) checkPendings(ctx context.Context) {
	timeout := s.cfg.ConfirmTimeout
	if timeout <= 0 {
		timeout = defaultConfirmTimeout
	}

	s.pendings.Range(func(hash string, pending *pendingTx) bool {
		rpcCtx, cancel := context.WithTimeout(ctx, RpcTimeOut)
		receipt, err := s.client.TransactionReceipt(rpcCtx, common.HexToHash(hash))
		cancel()

		if err == nil && receipt != nil {
			s.pendings.Delete(hash)
			pending.onConfirm(ctx, hash, receipt.Status == ethtypes.ReceiptStatusSuccessful)
			return true
		}

		if time.Since(pending.submittedAt) > timeout {
			xcontext.Logger(ctx).Warnf("Give up waiting receipt of tx %s", hash)
			s.pendings.Delete(hash)
			pending.onConfirm(ctx, hash, false)
		}

		return true
	})
}
