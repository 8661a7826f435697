package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/krazyTry/saber-go/config"
	"github.com/krazyTry/saber-go/quarry"
	"github.com/krazyTry/saber-go/rewards"
)

func checkpointSource(cmd *cobra.Command, cfg config.Settings) (rewards.CheckpointSource, error) {
	if file, _ := cmd.Flags().GetString("checkpoints"); file != "" {
		return func(context.Context) (*rewards.CheckpointSet, error) {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("read checkpoints: %w", err)
			}
			return quarry.ParseCheckpointsJSON(data)
		}, nil
	}

	keys := map[string]solana.PublicKey{}
	for _, name := range []string{"quarry", "staked-mint", "authority"} {
		v, _ := cmd.Flags().GetString(name)
		if v == "" {
			return nil, fmt.Errorf("either --checkpoints or --quarry, --staked-mint and --authority are required")
		}
		key, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		keys[name] = key
	}
	quarryKey, stakedMint, authority := keys["quarry"], keys["staked-mint"], keys["authority"]
	miner, mergeMiner := quarry.PositionKeys(quarryKey, stakedMint, authority)

	replicaFlags, _ := cmd.Flags().GetStringSlice("replica")
	replicas := make([]quarry.Replica, 0, len(replicaFlags))
	for _, v := range replicaFlags {
		rq, err := solana.PublicKeyFromBase58(v)
		if err != nil {
			return nil, fmt.Errorf("replica: %w", err)
		}
		replicas = append(replicas, quarry.Replica{Quarry: rq, Miner: quarry.ReplicaMiner(rq, stakedMint, authority)})
	}

	rpcClient := rpc.New(cfg.RPCURL)
	return func(ctx context.Context) (*rewards.CheckpointSet, error) {
		return quarry.LoadCheckpoints(ctx, rpcClient, quarryKey, miner, mergeMiner, replicas)
	}, nil
}

func runRewards(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	source, err := checkpointSource(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := rewards.NewEngine(rewards.WithLogger(logger))
	out := cmd.OutOrStdout()

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		logger.Info("watch rewards",
			zap.Duration("poll_interval", cfg.PollInterval),
			zap.Duration("refresh_interval", cfg.RefreshInterval),
		)
		poller := rewards.NewPoller(engine, source, cfg.PollInterval,
			rewards.WithRefreshInterval(cfg.RefreshInterval),
			rewards.WithPollerLogger(logger),
		)
		err := poller.Run(ctx, func(r *rewards.Reading) {
			printReading(out, r)
		})
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	set, err := source(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	r, err := engine.Read(set, now)
	if err != nil {
		return err
	}
	if r == nil {
		fmt.Fprintln(out, "rewards: unknown (position checkpoint incomplete)")
		return nil
	}
	printReading(out, r)

	daily, err := rewards.DailyRewards(set, now)
	if err != nil {
		return err
	}
	if daily != nil {
		fmt.Fprintf(out, "daily: %s\n", daily)
	}
	return nil
}

func printReading(w io.Writer, r *rewards.Reading) {
	fmt.Fprintf(w, "primary: %.6f", r.Primary)
	for i, v := range r.Secondary {
		fmt.Fprintf(w, " secondary[%d]: %.9f", i, v)
	}
	fmt.Fprintln(w)
}

func runMiners(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	v, _ := cmd.Flags().GetString("authority")
	authority, err := solana.PublicKeyFromBase58(v)
	if err != nil {
		return fmt.Errorf("authority: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	miners, err := quarry.FindMiners(ctx, rpc.New(cfg.RPCURL), authority)
	if err != nil {
		return err
	}
	logger.Debug("miners loaded", zap.Int("count", len(miners)))
	for _, m := range miners {
		fmt.Fprintf(cmd.OutOrStdout(), "%s quarry=%s balance=%d rewards_earned=%d\n",
			m.Address, m.Miner.Quarry, m.Miner.Balance, m.Miner.RewardsEarned)
	}
	return nil
}
