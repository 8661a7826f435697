package liquidity

import (
	"fmt"
	"math/big"

	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/krazyTry/saber-go/stableswap"
	"go.uber.org/zap"
)

const (
	ReasonPaused         = "Pool is paused"
	ReasonEnterAmount    = "Enter an amount"
	ReasonPriceImpact    = "Price impact too high"
	ReasonNoMintEstimate = "Unable to estimate deposit"
)

// SettingsProvider supplies the user's slippage tolerance.
type SettingsProvider interface {
	MaxSlippage() shared.Percent
}

type Calculator struct {
	oracle   InvariantOracle
	settings SettingsProvider
	wrapper  stableswap.Wrapper
	logger   *zap.Logger
}

type Option func(*Calculator)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Calculator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithWrapper sets how user-facing amounts map onto reserve tokens.
func WithWrapper(w stableswap.Wrapper) Option {
	return func(c *Calculator) {
		if w != nil {
			c.wrapper = w
		}
	}
}

func NewCalculator(oracle InvariantOracle, settings SettingsProvider, opts ...Option) *Calculator {
	c := &Calculator{
		oracle:   oracle,
		settings: settings,
		wrapper:  stableswap.IdentityWrapper{},
		logger:   zap.NewNop(),
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

// DepositQuote is everything shown before a deposit is submitted.
// EstimatedMint and PriceImpact are advisory and nil when they could not be
// computed. MinimumPoolTokenAmount is nil when the deposit cannot be guarded.
type DepositQuote struct {
	AmountA, AmountB       *big.Int
	EstimatedMint          *stableswap.MintEstimate
	PriceImpact            *shared.Percent
	Slippage               *shared.Percent
	MinimumPoolTokenAmount *solanago.TokenAmount
	DisabledReason         string
}

func (q *DepositQuote) Disabled() bool {
	return q.DisabledReason != ""
}

// Quote prices a deposit of tokenAmounts into ex.
func (c *Calculator) Quote(ex *stableswap.Exchange, tokenAmounts ...solanago.TokenAmount) (*DepositQuote, error) {
	if err := ex.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExchange, err)
	}
	for _, a := range tokenAmounts {
		if a.Sign() < 0 {
			return nil, ErrNegativeAmount
		}
	}
	pair, err := ex.AmountPair(c.wrapper, tokenAmounts...)
	if err != nil {
		return nil, err
	}
	maxSlippage := c.settings.MaxSlippage()
	q := &DepositQuote{AmountA: pair[0], AmountB: pair[1]}

	log := c.logger.With(
		zap.Stringer("swap", ex.SwapAccount),
		zap.Stringer("amount_a", pair[0]),
		zap.Stringer("amount_b", pair[1]),
	)

	if err := validExchange(ex); err != nil {
		log.Warn("deposit cannot be guarded", zap.Error(err))
	} else if est, err := c.oracle.EstimateMint(ex, pair[0], pair[1]); err != nil {
		log.Warn("ignoring mint estimation error", zap.Error(err))
	} else {
		q.EstimatedMint = est
		minimum := est.MintAmount.ReduceBy(maxSlippage)
		q.MinimumPoolTokenAmount = &minimum
	}

	if q.EstimatedMint != nil {
		if impact, err := PriceImpact(c.oracle, ex, pair[0], pair[1]); err != nil {
			log.Warn("ignoring price impact error", zap.Error(err))
		} else {
			q.PriceImpact = &impact
		}
	}

	if slippage, err := DepositSlippage(c.oracle, ex, pair[0], pair[1]); err != nil {
		log.Warn("ignoring deposit slippage error", zap.Error(err))
	} else {
		q.Slippage = &slippage
	}

	q.DisabledReason = c.disabledReason(ex, q, maxSlippage)
	log.Debug("deposit quote", zap.String("disabled_reason", q.DisabledReason))
	return q, nil
}

func (c *Calculator) disabledReason(ex *stableswap.Exchange, q *DepositQuote, maxSlippage shared.Percent) string {
	switch {
	case ex.IsPaused:
		return ReasonPaused
	case q.AmountA.Sign() == 0 && q.AmountB.Sign() == 0:
		return ReasonEnterAmount
	case q.Slippage != nil && q.Slippage.Abs().GreaterThan(maxSlippage):
		return ReasonPriceImpact
	case q.MinimumPoolTokenAmount == nil:
		return ReasonNoMintEstimate
	default:
		return ""
	}
}

// WithdrawQuote quotes a balanced withdrawal when withdrawToken is nil and a
// single-token withdrawal otherwise. withdrawToken and the returned amounts
// are user-facing; the wrapper maps them onto the reserves.
func (c *Calculator) WithdrawQuote(ex *stableswap.Exchange, poolTokenAmount solanago.TokenAmount, withdrawToken *solanago.Token) (WithdrawResult, error) {
	maxSlippage := c.settings.MaxSlippage()
	if withdrawToken == nil {
		res, err := WithdrawAll(c.oracle, poolTokenAmount, ex, maxSlippage)
		if err != nil {
			return nil, err
		}
		for i := range res.Estimates {
			res.Estimates[i] = c.wrapper.Unwrap(res.Estimates[i])
			res.Fees[i] = c.wrapper.Unwrap(res.Fees[i])
			res.Minimums[i] = c.wrapper.Unwrap(res.Minimums[i])
		}
		return res, nil
	}

	virtualPrice, ok := c.oracle.VirtualPrice(ex)
	if !ok {
		return nil, fmt.Errorf("%w: virtual price unavailable", ErrInvalidExchange)
	}
	reserveToken := c.wrapper.Wrap(solanago.NewTokenAmount(*withdrawToken, nil)).Token
	res, err := WithdrawOne(c.oracle, poolTokenAmount, ex, reserveToken, *virtualPrice, maxSlippage)
	if err != nil {
		c.logger.Warn("single token withdraw failed",
			zap.Stringer("swap", ex.SwapAccount),
			zap.Stringer("token", withdrawToken.Mint),
			zap.Error(err),
		)
		return nil, err
	}
	res.WithdrawToken = *withdrawToken
	for i := range res.Estimates {
		res.Estimates[i] = c.unwrap(res.Estimates[i])
		res.Fees[i] = c.unwrap(res.Fees[i])
		res.Minimums[i] = c.wrapper.Unwrap(res.Minimums[i])
	}
	return res, nil
}

func (c *Calculator) unwrap(a *solanago.TokenAmount) *solanago.TokenAmount {
	if a == nil {
		return nil
	}
	out := c.wrapper.Unwrap(*a)
	return &out
}
