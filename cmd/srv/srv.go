package main

import (
	"context"
	"net/http"

	"github.com/BurntSushi/toml"
	"github.com/cleanmate-lab/admin-backend/config"
	"github.com/cleanmate-lab/admin-backend/internal/cart"
	"github.com/cleanmate-lab/admin-backend/internal/client"
	"github.com/cleanmate-lab/admin-backend/internal/common"
	"github.com/cleanmate-lab/admin-backend/internal/domain"
	"github.com/cleanmate-lab/admin-backend/internal/repository"
	"github.com/cleanmate-lab/admin-backend/pkg/blockchain"
	"github.com/cleanmate-lab/admin-backend/pkg/blockchain/eth"
	"github.com/cleanmate-lab/admin-backend/pkg/kafka"
	"github.com/cleanmate-lab/admin-backend/pkg/logger"
	"github.com/cleanmate-lab/admin-backend/pkg/pubsub"
	"github.com/cleanmate-lab/admin-backend/pkg/router"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	"github.com/cleanmate-lab/admin-backend/pkg/xredis"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	redisClient xredis.Client
	publisher   pubsub.Publisher
	txSender    blockchain.TxSender
	queryCache  *common.QueryCache

	subgraphClient client.SubgraphClient
	kycClient      client.KycClient
	bankClient     client.BankClient
	emailClient    client.EmailClient

	credentialRepo   repository.ServiceCredentialRepository
	txRepo           repository.BlockchainTransactionRepository
	distributionRepo repository.DistributionRecordRepository

	kycDomain         domain.KycDomain
	bankDomain        domain.BankDomain
	emailDomain       domain.EmailDomain
	streakDomain      domain.StreakDomain
	rewardDomain      domain.RewardDomain
	cleanupDomain     domain.CleanupDomain
	userDomain        domain.UserDomain
	credentialDomain  domain.CredentialDomain
	transactionDomain domain.TransactionDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	var cfg config.Configs
	if _, err := toml.DecodeFile(cctx.String("config"), &cfg); err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	db, err := gorm.Open(
		mysql.Open(xcontext.Configs(s.ctx).Database.ConnectionString()),
		&gorm.Config{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
	s.queryCache = common.NewQueryCache(redisClient)
}

// loadPublisher is optional: without a kafka address, audit events are
// silently skipped and everything else keeps working.
func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx).Kafka
	if cfg.Addr == "" {
		xcontext.Logger(s.ctx).Infof("No kafka address, audit events are disabled")
		return
	}

	publisher, err := kafka.NewPublisher(uuid.NewString(), []string{cfg.Addr})
	if err != nil {
		panic(err)
	}

	s.publisher = publisher
}

func (s *srv) loadRepos() {
	s.credentialRepo = repository.NewServiceCredentialRepository()
	s.txRepo = repository.NewBlockchainTransactionRepository()
	s.distributionRepo = repository.NewDistributionRecordRepository()
}

func (s *srv) loadClients() {
	cfg := xcontext.Configs(s.ctx)

	s.subgraphClient = client.NewSubgraphClient(cfg.Subgraph)
	s.kycClient = client.NewKycClient(cfg.Services, s.credentialRepo)
	s.bankClient = client.NewBankClient(cfg.Services, s.credentialRepo)
	s.emailClient = client.NewEmailClient(cfg.Services, s.credentialRepo)
}

func (s *srv) loadTxSender() {
	cfg := xcontext.Configs(s.ctx)

	ethClient := eth.NewEthClient(cfg.Chain)
	txSender, err := eth.NewTxSender(cfg.Chain, ethClient)
	if err != nil {
		panic(err)
	}

	if !txSender.Configured() {
		xcontext.Logger(s.ctx).Infof("No admin wallet, signing operations are disabled")
	}

	txSender.Start(s.ctx)
	s.txSender = txSender
}

func (s *srv) loadDomains() {
	dispatcher := domain.NewDispatcher(s.txSender, s.txRepo, s.publisher, s.queryCache)
	rewardCart := cart.NewContainer(cart.NewRedisStore(s.redisClient))

	s.kycDomain = domain.NewKycDomain(s.kycClient, s.queryCache)
	s.bankDomain = domain.NewBankDomain(s.bankClient, s.queryCache)
	s.emailDomain = domain.NewEmailDomain(s.emailClient)
	s.streakDomain = domain.NewStreakDomain(s.subgraphClient, dispatcher, s.queryCache)
	s.rewardDomain = domain.NewRewardDomain(
		rewardCart, s.subgraphClient, dispatcher, s.distributionRepo, s.queryCache)
	s.cleanupDomain = domain.NewCleanupDomain(s.subgraphClient, dispatcher, s.queryCache)
	s.userDomain = domain.NewUserDomain(s.subgraphClient, dispatcher, s.queryCache)
	s.credentialDomain = domain.NewCredentialDomain(s.credentialRepo)
	s.transactionDomain = domain.NewTransactionDomain(s.txRepo)
}
