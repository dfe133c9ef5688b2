package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"oqassets-backend/internal/adapter/blockchain"
	"oqassets-backend/internal/adapter/events"
	httpadp "oqassets-backend/internal/adapter/http"
	idemp "oqassets-backend/internal/adapter/middleware"
	"oqassets-backend/internal/adapter/repository/mysql"
	"oqassets-backend/internal/config"
	"oqassets-backend/internal/infrastructure/cache"
	"oqassets-backend/internal/infrastructure/db"
	"oqassets-backend/internal/oracle"
	"oqassets-backend/internal/scheduler"
	documentuc "oqassets-backend/internal/usecase/document"
	loanuc "oqassets-backend/internal/usecase/loan"
	"oqassets-backend/internal/usecase/tokenize"
	valuationuc "oqassets-backend/internal/usecase/valuation"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	// repositories + unit of work
	docRepo := mysql.NewDocumentRepository(gdb)
	assetRepo := mysql.NewAssetRepository(gdb)
	loanRepo := mysql.NewLoanRepository(gdb)
	jobRepo := mysql.NewValuationRepository(gdb)
	uow := mysql.NewGormUoW(gdb)

	sink := events.NewRedisSink(rdb, cfg.ValuationChannel, cfg.RiskChannel)

	// oracle stack
	sources, err := oracle.SourcesFromSpec(cfg.OracleSources, cfg.OracleLatency)
	if err != nil {
		log.Fatal(err)
	}
	agg := oracle.NewAggregator(cfg.ReviewThreshold)

	// usecases
	docUC := documentuc.NewUsecase(docRepo)
	pipeline := valuationuc.NewPipeline(jobRepo, docRepo, uow,
		&valuationuc.SimulatedAnalyzer{StageDelay: cfg.StageDelay},
		sources, agg, sink, cfg.OracleTimeout, cfg.JobRunTimeout)
	submitter := blockchain.NewSimulatedSubmitter(cfg.MintLatency, cfg.MintFailEvery)
	tokenizeUC := tokenize.NewUsecase(jobRepo, docRepo, uow, submitter)
	ledger := loanuc.NewUsecase(loanRepo, uow, sink,
		loanuc.NewLTVModel(cfg.LTVModel, assetRepo),
		loanuc.Thresholds{MaxLTV: cfg.MaxLTV, WarnLTV: cfg.WarnLTV, LiquidateLTV: cfg.LiquidateLTV})

	// risk scheduler
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	sched := scheduler.New(ledger, cfg.AccrualInterval, cfg.LiquidationInterval)
	go func() {
		if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("scheduler stopped: %v", err)
		}
	}()

	// http surface
	h := httpadp.NewHandler()
	docH := httpadp.NewDocumentHandler(docUC)
	valH := httpadp.NewValuationHandler(pipeline, tokenizeUC)
	loanH := httpadp.NewLoanHandler(ledger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	idempMW := idemp.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)

	e.GET("/health", h.Health)
	e.POST("/documents", docH.RegisterDocument)
	e.GET("/documents/:document_id", docH.GetDocument)
	e.POST("/documents/:document_id/valuations", valH.StartValuation)
	e.GET("/valuations/:job_id", valH.GetValuation)
	e.POST("/valuations/:job_id/accept", valH.AcceptValuation, idempMW)
	e.POST("/loans", loanH.CreateLoan, idempMW)
	e.GET("/loans/:loan_id", loanH.GetLoan)
	e.POST("/loans/:loan_id/repayments", loanH.RepayLoan, idempMW)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
