package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/krazyTry/saber-go/config"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "saber-calc",
		Short:        "Saber stable swap liquidity and reward calculator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("rpc", config.DefaultRPCURL, "Solana RPC URL")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("max-slippage", config.DefaultMaxSlippage, "slippage tolerance in percent")

	depositCmd := &cobra.Command{
		Use:   "deposit",
		Short: "Quote a deposit into a swap",
		RunE:  runDeposit,
	}
	depositCmd.Flags().String("snapshot", "", "exchange snapshot JSON file")
	depositCmd.Flags().String("swap", "", "swap account address (loaded over RPC)")
	depositCmd.Flags().String("amount-a", "0", "token A amount in UI units")
	depositCmd.Flags().String("amount-b", "0", "token B amount in UI units")
	root.AddCommand(depositCmd)

	withdrawCmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Quote a withdrawal from a swap",
		RunE:  runWithdraw,
	}
	withdrawCmd.Flags().String("snapshot", "", "exchange snapshot JSON file")
	withdrawCmd.Flags().String("swap", "", "swap account address (loaded over RPC)")
	withdrawCmd.Flags().String("lp", "0", "pool token amount in UI units")
	withdrawCmd.Flags().String("token", "", "withdraw only this reserve mint")
	root.AddCommand(withdrawCmd)

	rewardsCmd := &cobra.Command{
		Use:   "rewards",
		Short: "Show claimable quarry rewards of a position",
		RunE:  runRewards,
	}
	rewardsCmd.Flags().String("checkpoints", "", "checkpoint JSON file")
	rewardsCmd.Flags().String("quarry", "", "primary quarry address")
	rewardsCmd.Flags().String("staked-mint", "", "staked LP mint")
	rewardsCmd.Flags().String("authority", "", "position owner")
	rewardsCmd.Flags().StringSlice("replica", nil, "replica quarry addresses (comma-separated)")
	rewardsCmd.Flags().Bool("watch", false, "keep printing interpolated rewards")
	rewardsCmd.Flags().Duration("poll-interval", 100*time.Millisecond, "reading interval when watching")
	rewardsCmd.Flags().Duration("refresh-interval", 30*time.Second, "checkpoint reload interval when watching")
	root.AddCommand(rewardsCmd)

	minersCmd := &cobra.Command{
		Use:   "miners",
		Short: "List quarry miners owned by an authority",
		RunE:  runMiners,
	}
	minersCmd.Flags().String("authority", "", "miner authority")
	root.AddCommand(minersCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings(cmd *cobra.Command) (config.Settings, *zap.Logger, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return config.Settings{}, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config.Settings{}, nil, err
	}
	return cfg, logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
