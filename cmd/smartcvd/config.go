package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/omeid/uconfig"
	"github.com/smartcv/go-smartcv/internal/router/middlewares"
)

// configFilename is the filename of the config file automatically loaded.
var configFilename = "config.json"

type config struct {
	HTTP struct {
		Port string `default:"8080"`
	}
	Metrics struct {
		Port string `default:"9090"`
	}
	Log struct {
		Human bool `default:"false"`
		Debug bool `default:"false"`
	}
	Chain struct {
		EthEndpoint      string `default:"http://localhost:8545"`
		ChainID          int64  `default:"31337"`
		UIManagerAddress string `default:""`
		WalletsPath      string `default:"wallets.json"`
		MasterIndex      int    `default:"0"`
		// MineOnSubmit calls evm_mine after each broadcast. Only for development networks.
		MineOnSubmit bool `default:"false"`
		// DefaultCompanyIndex is the keyring wallet whitelisted at startup. -1 disables it.
		DefaultCompanyIndex int    `default:"-1"`
		ReceiptTimeout      string `default:"2m"`
		GasLimit            uint64 `default:"0"`
		// BalanceCheckInterval is how often the ether balance of the keyring wallets is reported.
		BalanceCheckInterval string `default:"1m"`
	}
	RateLimit struct {
		MaxRPI           uint64 `default:"10"`
		Interval         string `default:"1s"`
		FundUserMaxRPI   uint64 `default:"1"`
		FundUserInterval string `default:"10s"`
	}
	Shutdown struct {
		Timeout string `default:"10s"`
	}
}

func setupConfig() *config {
	conf := &config{}
	confFiles := uconfig.Files{
		{configFilename, json.Unmarshal},
	}

	c, err := uconfig.Classic(&conf, confFiles)
	if err != nil {
		c.Usage()
		os.Exit(1)
	}

	return conf
}

func (c *config) rateLimiterConfig() (middlewares.RateLimiterConfig, error) {
	interval, err := time.ParseDuration(c.RateLimit.Interval)
	if err != nil {
		return middlewares.RateLimiterConfig{}, fmt.Errorf("parsing rate limit interval: %s", err)
	}
	fundInterval, err := time.ParseDuration(c.RateLimit.FundUserInterval)
	if err != nil {
		return middlewares.RateLimiterConfig{}, fmt.Errorf("parsing fund user rate limit interval: %s", err)
	}

	return middlewares.RateLimiterConfig{
		Default: middlewares.RateLimiterRouteConfig{
			MaxRPI:   c.RateLimit.MaxRPI,
			Interval: interval,
		},
		RouteLimits: map[string]middlewares.RateLimiterRouteConfig{
			"/api/token/fund_user": {
				MaxRPI:   c.RateLimit.FundUserMaxRPI,
				Interval: fundInterval,
			},
		},
	}, nil
}
