package main

import (
	"net/http"

	"github.com/cleanmate-lab/admin-backend/internal/middleware"
	"github.com/cleanmate-lab/admin-backend/internal/model"
	"github.com/cleanmate-lab/admin-backend/pkg/authenticator"
	"github.com/cleanmate-lab/admin-backend/pkg/router"
	"github.com/cleanmate-lab/admin-backend/pkg/xcontext"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.migrateDB()
	s.loadRedis()
	s.loadPublisher()
	s.loadRepos()
	s.loadClients()
	s.loadTxSender()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.ApiServer.AllowOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: corsHandler.Handler(s.router.Handler()),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port: %s", cfg.ApiServer.Port)
	if cfg.ApiServer.Cert != "" && cfg.ApiServer.Key != "" {
		if err := s.server.ListenAndServeTLS(cfg.ApiServer.Cert, cfg.ApiServer.Key); err != nil {
			panic(err)
		}
	} else if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	xcontext.Logger(s.ctx).Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	cfg := xcontext.Configs(s.ctx)
	s.router = router.New(xcontext.DB(s.ctx), cfg, xcontext.Logger(s.ctx))
	s.router.AddCloser(middleware.Logger())

	// Every API needs an operator token.
	engine := authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.AccessToken)
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate(engine))
	{
		// KYC API
		router.GET(authRouter, "/getKycSubmissions", s.kycDomain.GetSubmissions)
		router.GET(authRouter, "/getKycSubmission", s.kycDomain.GetSubmission)
		router.POST(authRouter, "/updateKycStatus", s.kycDomain.UpdateStatus)
		router.POST(authRouter, "/setOrganizerStatus", s.kycDomain.SetOrganizerStatus)

		// Bank API
		router.GET(authRouter, "/getBankTransactions", s.bankDomain.GetTransactions)
		router.GET(authRouter, "/getExchangeRates", s.bankDomain.GetExchangeRates)
		router.POST(authRouter, "/setExchangeRate", s.bankDomain.SetExchangeRate)
		router.POST(authRouter, "/deleteExchangeRate", s.bankDomain.DeleteExchangeRate)

		// Email API
		router.GET(authRouter, "/getEmailStatus", s.emailDomain.GetStatus)

		// Streak API
		router.GET(authRouter, "/getStreakSubmissions", s.streakDomain.GetSubmissions)
		router.GET(authRouter, "/getStreakSubmission", s.streakDomain.GetSubmission)
		router.POST(authRouter, "/reviewStreak", s.streakDomain.Review)

		// Reward cart API
		router.GET(authRouter, "/getCart", s.rewardDomain.GetCart)
		router.POST(authRouter, "/addToCart", s.rewardDomain.AddToCart)
		router.POST(authRouter, "/removeFromCart", s.rewardDomain.RemoveFromCart)
		router.POST(authRouter, "/updateCartAmount", s.rewardDomain.UpdateCartAmount)
		router.POST(authRouter, "/clearCart", s.rewardDomain.ClearCart)
		router.POST(authRouter, "/distributeStreakRewards", s.rewardDomain.DistributeStreakRewards)
		router.POST(authRouter, "/sendRewards", s.rewardDomain.SendRewards)

		// Cleanup API
		router.GET(authRouter, "/getCleanups", s.cleanupDomain.GetCleanups)
		router.GET(authRouter, "/getCleanup", s.cleanupDomain.GetCleanup)
		router.GET(authRouter, "/getCleanupUpdates", s.cleanupDomain.GetCleanupUpdates)
		router.POST(authRouter, "/publishCleanup", s.cleanupDomain.Publish)
		router.POST(authRouter, "/unpublishCleanup", s.cleanupDomain.Unpublish)
		router.POST(authRouter, "/updateCleanupStatus", s.cleanupDomain.UpdateStatus)
		router.POST(authRouter, "/distributeCleanupRewards", s.cleanupDomain.DistributeRewards)

		// User API
		router.GET(authRouter, "/getUsers", s.userDomain.GetUsers)
		router.GET(authRouter, "/getUser", s.userDomain.GetUser)
		router.POST(authRouter, "/setUserReferralCode", s.userDomain.SetReferralCode)

		// Service credential API
		router.GET(authRouter, "/getServiceCredentials", s.credentialDomain.GetList)
		router.POST(authRouter, "/setServiceCredential", s.credentialDomain.Set)
		router.POST(authRouter, "/deleteServiceCredential", s.credentialDomain.Delete)

		// Transaction API
		router.GET(authRouter, "/getTransactions", s.transactionDomain.GetList)
	}
}
