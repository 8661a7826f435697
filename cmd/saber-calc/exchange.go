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
	"github.com/krazyTry/saber-go/liquidity"
	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/krazyTry/saber-go/stableswap"
)

func loadExchange(cmd *cobra.Command, cfg config.Settings, logger *zap.Logger) (*stableswap.Exchange, error) {
	snapshot, _ := cmd.Flags().GetString("snapshot")
	swap, _ := cmd.Flags().GetString("swap")

	switch {
	case snapshot != "":
		data, err := os.ReadFile(snapshot)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}
		return stableswap.ParseExchangeJSON(data)
	case swap != "":
		swapAccount, err := solana.PublicKeyFromBase58(swap)
		if err != nil {
			return nil, fmt.Errorf("swap: %w", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rpcClient := rpc.New(cfg.RPCURL)
		now, err := solanago.ClusterTime(ctx, rpcClient)
		if err != nil {
			logger.Warn("cluster time unavailable, using local clock", zap.Error(err))
			now = time.Now()
		}
		logger.Info("load exchange", zap.String("rpc", cfg.RPCURL), zap.Stringer("swap", swapAccount))
		return stableswap.LoadExchange(ctx, rpcClient, swapAccount, stableswap.WithClock(func() time.Time { return now }))
	default:
		return nil, fmt.Errorf("either --snapshot or --swap is required")
	}
}

func runDeposit(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ex, err := loadExchange(cmd, cfg, logger)
	if err != nil {
		return err
	}

	tokens := ex.Tokens()
	amounts := make([]solanago.TokenAmount, 0, len(tokens))
	for i, flag := range []string{"amount-a", "amount-b"} {
		ui, _ := cmd.Flags().GetString(flag)
		a, err := solanago.ParseTokenAmount(tokens[i], ui)
		if err != nil {
			return err
		}
		amounts = append(amounts, a)
	}

	calc := liquidity.NewCalculator(stableswap.NewOracle(), cfg, liquidity.WithLogger(logger))
	q, err := calc.Quote(ex, amounts...)
	if err != nil {
		return err
	}
	printDeposit(cmd.OutOrStdout(), ex, q)
	return nil
}

func runWithdraw(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ex, err := loadExchange(cmd, cfg, logger)
	if err != nil {
		return err
	}

	ui, _ := cmd.Flags().GetString("lp")
	lp, err := solanago.ParseTokenAmount(ex.LPToken(), ui)
	if err != nil {
		return err
	}

	var withdrawToken *solanago.Token
	if mint, _ := cmd.Flags().GetString("token"); mint != "" {
		key, err := solana.PublicKeyFromBase58(mint)
		if err != nil {
			return fmt.Errorf("token: %w", err)
		}
		for _, t := range ex.Tokens() {
			if t.Mint.Equals(key) {
				withdrawToken = &t
			}
		}
		if withdrawToken == nil {
			return fmt.Errorf("%w: %s", liquidity.ErrUnknownToken, key)
		}
	}

	calc := liquidity.NewCalculator(stableswap.NewOracle(), cfg, liquidity.WithLogger(logger))
	res, err := calc.WithdrawQuote(ex, lp, withdrawToken)
	if err != nil {
		return err
	}
	printWithdraw(cmd.OutOrStdout(), ex, res)
	return nil
}

func formatPercent(p *shared.Percent) string {
	if p == nil {
		return "-"
	}
	return p.String()
}

func formatAmount(a *solanago.TokenAmount) string {
	if a == nil {
		return "-"
	}
	return a.String()
}

func printDeposit(w io.Writer, ex *stableswap.Exchange, q *liquidity.DepositQuote) {
	tokens := ex.Tokens()
	a := solanago.NewTokenAmount(tokens[0], q.AmountA)
	b := solanago.NewTokenAmount(tokens[1], q.AmountB)
	fmt.Fprintf(w, "deposit:        %s + %s\n", a, b)
	if q.EstimatedMint != nil {
		fmt.Fprintf(w, "estimated mint: %s (fees %s)\n", q.EstimatedMint.MintAmount, q.EstimatedMint.Fees)
	} else {
		fmt.Fprintln(w, "estimated mint: -")
	}
	fmt.Fprintf(w, "minimum mint:   %s\n", formatAmount(q.MinimumPoolTokenAmount))
	fmt.Fprintf(w, "price impact:   %s\n", formatPercent(q.PriceImpact))
	fmt.Fprintf(w, "slippage:       %s\n", formatPercent(q.Slippage))
	if q.Disabled() {
		fmt.Fprintf(w, "disabled:       %s\n", q.DisabledReason)
	}
}

func printWithdraw(w io.Writer, ex *stableswap.Exchange, res liquidity.WithdrawResult) {
	fmt.Fprintf(w, "mode: %s\n", res.Mode())
	for i, t := range ex.Tokens() {
		fmt.Fprintf(w, "%s:\n", t)
		fmt.Fprintf(w, "  estimate: %s\n", formatAmount(res.Estimate(i)))
		fmt.Fprintf(w, "  fee:      %s (%s)\n", formatAmount(res.Fee(i)), formatPercent(res.FeePercent(i)))
		fmt.Fprintf(w, "  minimum:  %s\n", formatAmount(res.Minimum(i)))
		fmt.Fprintf(w, "  slippage: %s\n", formatPercent(res.Slippage(i)))
	}
}
