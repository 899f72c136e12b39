package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/contracts"
	"github.com/khadijaBOUCHAMA/Parking-Iot-Blockchaine/deploy"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// passwordEnv is the environment variable holding the wallet password.
const passwordEnv = "PARKING_WALLET_PASSWORD"

func main() {
	configPath := flag.String("config", "", "Path to the YAML deployment configuration")
	outDir := flag.String("out", "", "Only compile contracts and store artifacts into the directory")
	timeout := flag.Duration("timeout", 5*time.Minute, "Deployment timeout")
	debug := flag.Bool("debug", false, "Enable debug logs")

	flag.Parse()

	if *configPath == "" {
		log.Fatal("missing config path")
	}

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := deploy.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	if *outDir != "" {
		err = compileTo(cfg.Contracts, *outDir)
		if err != nil {
			logger.Fatal("failed to compile contracts", zap.Error(err))
		}

		logger.Info("contracts are successfully compiled", zap.String("dir", *outDir))
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, *timeout)
	defer cancelTimeout()

	res, err := run(ctx, logger, cfg, os.Getenv(passwordEnv))
	if err != nil {
		logger.Fatal("deployment failed", zap.Error(err))
	}

	logger.Info("contracts are successfully deployed",
		zap.String("parking", address.Uint160ToString(res.Parking)),
		zap.String("oracle", address.Uint160ToString(res.Oracle)))
}

func newLogger(debug bool) (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	c.Encoding = "console"
	if debug {
		c.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return c.Build()
}

func run(ctx context.Context, logger *zap.Logger, cfg *deploy.Config, password string) (deploy.Result, error) {
	var res deploy.Result

	acc, err := loadAccount(cfg.Wallet, password)
	if err != nil {
		return res, err
	}

	cs, err := loadContracts(cfg.Contracts)
	if err != nil {
		return res, err
	}

	parkingPrm, err := cfg.ParkingPrm(acc.ScriptHash(), commonPrm(cs[contracts.ParkingDir]))
	if err != nil {
		return res, err
	}

	oraclePrm, err := cfg.OraclePrm(acc.ScriptHash(), commonPrm(cs[contracts.OracleDir]))
	if err != nil {
		return res, err
	}

	c, err := rpcclient.New(ctx, cfg.RPC.Endpoint, rpcclient.Options{
		DialTimeout:    cfg.RPC.DialTimeout,
		RequestTimeout: cfg.RPC.RequestTimeout,
	})
	if err != nil {
		return res, fmt.Errorf("RPC client dial: %w", err)
	}
	defer c.Close()

	err = c.Init()
	if err != nil {
		return res, fmt.Errorf("init RPC client: %w", err)
	}

	logger.Info("deploying contracts...",
		zap.String("endpoint", cfg.RPC.Endpoint),
		zap.String("deployer", acc.Address))

	return deploy.Deploy(ctx, deploy.Prm{
		Logger:          logger,
		Blockchain:      c,
		LocalAccount:    acc,
		AllowUpdate:     cfg.Contracts.AllowUpdate,
		ParkingContract: parkingPrm,
		OracleContract:  oraclePrm,
	})
}

func commonPrm(c contracts.Contract) deploy.CommonDeployPrm {
	return deploy.CommonDeployPrm{
		NEF:      c.NEF,
		Manifest: c.Manifest,
	}
}

// loadAccount opens the wallet and decrypts the configured account or the
// default one.
func loadAccount(cfg deploy.WalletConfig, password string) (*wallet.Account, error) {
	w, err := wallet.NewWalletFromFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	var h util.Uint160

	if cfg.Address != "" {
		h, err = address.StringToUint160(cfg.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid wallet address: %w", err)
		}
	} else {
		h = w.GetChangeAddress()
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s is missing in the wallet", address.Uint160ToString(h))
	}

	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}

	// Wallet.Close wipes keys of all accounts including the returned one.
	for _, a := range w.Accounts {
		if a != acc {
			a.Close()
		}
	}

	return acc, nil
}

// loadContracts returns contracts indexed by their directory names.
func loadContracts(cfg deploy.ContractsConfig) (map[string]contracts.Contract, error) {
	var (
		cs  []contracts.Contract
		err error
	)

	if cfg.Artifacts != "" {
		cs, err = contracts.Read(os.DirFS(cfg.Artifacts))
	} else {
		cs, err = contracts.CompileAll(cfg.Sources)
	}
	if err != nil {
		return nil, fmt.Errorf("load contracts: %w", err)
	}

	names := contracts.Names()
	res := make(map[string]contracts.Contract, len(names))

	for i := range names {
		res[names[i]] = cs[i]
	}

	return res, nil
}

func compileTo(cfg deploy.ContractsConfig, dir string) error {
	if cfg.Sources == "" {
		return errors.New("contract sources are not configured")
	}

	cs, err := contracts.CompileAll(cfg.Sources)
	if err != nil {
		return err
	}

	names := contracts.Names()

	for i := range names {
		err = contracts.Store(filepath.Join(dir, names[i]), cs[i])
		if err != nil {
			return fmt.Errorf("store %s contract: %w", names[i], err)
		}
	}

	return nil
}
