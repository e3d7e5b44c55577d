package main

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
	"github.com/smartcv/go-smartcv/buildinfo"
	"github.com/smartcv/go-smartcv/internal/balancetracker"
	"github.com/smartcv/go-smartcv/internal/router"
	"github.com/smartcv/go-smartcv/internal/smartcv/impl"
	"github.com/smartcv/go-smartcv/pkg/logging"
	"github.com/smartcv/go-smartcv/pkg/metrics"
	"github.com/smartcv/go-smartcv/pkg/txqueue"
	txqueueimpl "github.com/smartcv/go-smartcv/pkg/txqueue/impl"
	uimanagerimpl "github.com/smartcv/go-smartcv/pkg/uimanager/impl/ethereum"
	"github.com/smartcv/go-smartcv/pkg/wallet"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := setupConfig()
	logging.SetupLogger(logging.Config{
		Service: "smartcvd",
		Version: buildinfo.GitCommit,
		Debug:   cfg.Log.Debug,
		Human:   cfg.Log.Human,
	})
	shutdownMetrics, err := metrics.SetupInstrumentation(":"+cfg.Metrics.Port, "smartcvd")
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.Metrics.Port).Msg("could not setup instrumentation")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	receiptTimeout, err := time.ParseDuration(cfg.Chain.ReceiptTimeout)
	if err != nil {
		log.Fatal().Err(err).Msgf("receipt timeout has invalid format: %s", cfg.Chain.ReceiptTimeout)
	}
	balanceCheckInterval, err := time.ParseDuration(cfg.Chain.BalanceCheckInterval)
	if err != nil {
		log.Fatal().Err(err).Msgf("balance check interval has invalid format: %s", cfg.Chain.BalanceCheckInterval)
	}
	shutdownTimeout, err := time.ParseDuration(cfg.Shutdown.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msgf("shutdown timeout has invalid format: %s", cfg.Shutdown.Timeout)
	}
	if !common.IsHexAddress(cfg.Chain.UIManagerAddress) {
		log.Fatal().Str("address", cfg.Chain.UIManagerAddress).Msg("ui manager contract address is invalid")
	}

	keyring, err := wallet.LoadKeyring(cfg.Chain.WalletsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Chain.WalletsPath).Msg("loading keyring")
	}
	master, err := keyring.At(cfg.Chain.MasterIndex)
	if err != nil {
		log.Fatal().Err(err).Int("index", cfg.Chain.MasterIndex).Msg("getting master wallet")
	}

	conn, err := ethclient.DialContext(ctx, cfg.Chain.EthEndpoint)
	if err != nil {
		log.Fatal().
			Err(err).
			Str("ethEndpoint", cfg.Chain.EthEndpoint).
			Msg("failed to connect to ethereum endpoint")
	}
	defer conn.Close()

	var miner txqueue.Miner
	if cfg.Chain.MineOnSubmit {
		rpcClient, err := rpc.DialContext(ctx, cfg.Chain.EthEndpoint)
		if err != nil {
			log.Fatal().Err(err).Str("ethEndpoint", cfg.Chain.EthEndpoint).Msg("failed to dial rpc endpoint")
		}
		defer rpcClient.Close()
		miner = txqueueimpl.NewRPCMiner(rpcClient)
	}

	queue, err := txqueueimpl.NewManager(txqueueimpl.NewEthClient(conn), master.Address(), miner)
	if err != nil {
		log.Fatal().Err(err).Msg("creating transaction queue")
	}
	defer queue.Close()

	chainID := big.NewInt(cfg.Chain.ChainID)
	var opts []uimanagerimpl.Option
	if cfg.Chain.GasLimit > 0 {
		opts = append(opts, uimanagerimpl.WithGasLimit(cfg.Chain.GasLimit))
	}
	contract, err := uimanagerimpl.NewClient(conn, chainID, common.HexToAddress(cfg.Chain.UIManagerAddress), opts...)
	if err != nil {
		log.Fatal().
			Err(err).
			Str("contractAddress", cfg.Chain.UIManagerAddress).
			Msg("failed to create ui manager client")
	}

	gateway := impl.NewGateway(queue, contract, keyring, master, conn, chainID, receiptTimeout)
	svc, err := impl.NewInstrumentedGateway(gateway)
	if err != nil {
		log.Fatal().Err(err).Msg("instrumenting gateway")
	}

	addrs := make([]common.Address, keyring.Len())
	for i := range addrs {
		w, err := keyring.At(i)
		if err != nil {
			log.Fatal().Err(err).Int("index", i).Msg("getting keyring wallet")
		}
		addrs[i] = w.Address()
	}
	tracker, err := balancetracker.NewBalanceTracker(conn, addrs, balanceCheckInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("creating balance tracker")
	}

	rateLimCfg, err := cfg.rateLimiterConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("parsing rate limit config")
	}
	r, err := router.ConfiguredRouter(svc, rateLimCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("configuring router")
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("port", cfg.HTTP.Port).Msg("serving http")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return shutdownMetrics(shutdownCtx)
	})
	g.Go(func() error {
		tracker.Run(gctx)
		return nil
	})
	if cfg.Chain.DefaultCompanyIndex >= 0 {
		g.Go(func() error {
			ensureDefaultCompanyWhitelisted(gctx, gateway, keyring, cfg.Chain.DefaultCompanyIndex)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("http server stopped")
	}
	log.Info().Msg("daemon closed")
}

func ensureDefaultCompanyWhitelisted(ctx context.Context, gateway *impl.Gateway, keyring *wallet.Keyring, index int) {
	company, err := keyring.At(index)
	if err != nil {
		log.Error().Err(err).Int("index", index).Msg("getting default company wallet")
		return
	}
	if err := gateway.EnsureWhitelisted(ctx, company.Address()); err != nil {
		log.Error().Err(err).Str("company", company.Address().Hex()).Msg("whitelisting default company")
	}
}
