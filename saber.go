package saber

import (
	"github.com/krazyTry/saber-go/liquidity"
	"github.com/krazyTry/saber-go/quarry"
	"github.com/krazyTry/saber-go/rewards"
	"github.com/krazyTry/saber-go/stableswap"
)

// NewCalculator creates a deposit and withdraw calculator priced by the
// stable swap invariant.
//
// Example:
//
// calc := NewCalculator(settings, liquidity.WithLogger(logger))
//
// quote, _ := calc.Quote(exchange, amountA, amountB)
//
// result, _ := calc.WithdrawQuote(exchange, poolTokenAmount, nil)
func NewCalculator(settings liquidity.SettingsProvider, opts ...liquidity.Option) *liquidity.Calculator {
	return liquidity.NewCalculator(stableswap.NewOracle(), settings, opts...)
}

// LoadExchange reads a swap and its reserves over RPC.
//
// Example:
//
// exchange, _ := LoadExchange(ctx, rpcClient, swapAccount)
var LoadExchange = stableswap.LoadExchange

// ParseExchange reads an exchange snapshot file.
var ParseExchange = stableswap.ParseExchangeJSON

// LoadCheckpoints reads the quarry accounts of a staked position.
//
// Example:
//
// miner, mergeMiner := quarry.PositionKeys(quarryKey, lpMint, owner)
//
// set, _ := LoadCheckpoints(ctx, rpcClient, quarryKey, miner, mergeMiner, nil)
//
// engine := NewRewardEngine()
//
// reading, _ := engine.Read(set, time.Now())
var LoadCheckpoints = quarry.LoadCheckpoints

// ParseCheckpoints reads a position checkpoint file.
var ParseCheckpoints = quarry.ParseCheckpointsJSON

// NewRewardEngine creates an interpolating reward reader.
var NewRewardEngine = rewards.NewEngine
