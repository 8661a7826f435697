package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/krazyTry/saber-go/shared"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultRPCURL      = "https://api.mainnet-beta.solana.com"
	DefaultMaxSlippage = "0.5"
)

// Settings holds values loaded from flags, env, or config file.
type Settings struct {
	RPCURL          string
	LogLevel        string
	PollInterval    time.Duration
	RefreshInterval time.Duration
	maxSlippage     shared.Percent
}

// MaxSlippage is the user's slippage tolerance.
func (s Settings) MaxSlippage() shared.Percent {
	return s.maxSlippage
}

// WithMaxSlippage returns a copy using p as tolerance.
func (s Settings) WithMaxSlippage(p shared.Percent) Settings {
	s.maxSlippage = p
	return s
}

// Load merges config file, environment variables, and flags into Settings.
// Environment variables use the SABER_ prefix, e.g. SABER_MAX_SLIPPAGE.
func Load(cfgFile string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("SABER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("rpc", DefaultRPCURL)
	v.SetDefault("max-slippage", DefaultMaxSlippage)
	v.SetDefault("log-level", "info")
	v.SetDefault("poll-interval", 100*time.Millisecond)
	v.SetDefault("refresh-interval", 30*time.Second)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Settings{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("saber")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Settings{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	maxSlippage, err := shared.ParsePercent(v.GetString("max-slippage"))
	if err != nil {
		return Settings{}, fmt.Errorf("max-slippage: %w", err)
	}
	if maxSlippage.Sign() < 0 || maxSlippage.GreaterThan(shared.FullPercent) {
		return Settings{}, fmt.Errorf("max-slippage %s out of range [0%%, 100%%]", maxSlippage)
	}

	s := Settings{
		RPCURL:          v.GetString("rpc"),
		LogLevel:        v.GetString("log-level"),
		PollInterval:    v.GetDuration("poll-interval"),
		RefreshInterval: v.GetDuration("refresh-interval"),
		maxSlippage:     maxSlippage,
	}
	return s, nil
}
