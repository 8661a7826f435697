package stableswap

import (
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/saber-go/shared"
	solanago "github.com/krazyTry/saber-go/solana"
	"github.com/tidwall/gjson"
)

// ParseExchangeJSON reads an exchange snapshot file:
//
//	{
//	  "swapAccount": "...",
//	  "ampFactor": "100",
//	  "isPaused": false,
//	  "reserves": [
//	    {"mint": "...", "decimals": 6, "symbol": "USDC", "amount": "1000000", "reserveAccount": "..."},
//	    {"mint": "...", "decimals": 6, "symbol": "USDT", "amount": "1000000"}
//	  ],
//	  "lpToken": {"mint": "...", "decimals": 6, "symbol": "USDC-USDT"},
//	  "lpTotalSupply": "2000000",
//	  "fees": {"trade": "4/10000", "withdraw": "0.005", "adminTrade": "0", "adminWithdraw": "0"}
//	}
//
// Raw amounts are base-10 strings so u64 values survive unchanged.
func ParseExchangeJSON(data []byte) (*Exchange, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidAccount)
	}
	root := gjson.ParseBytes(data)

	ex := &Exchange{ProgramID: ProgramID, IsPaused: root.Get("isPaused").Bool()}

	var err error
	if v := root.Get("swapAccount"); v.Exists() {
		if ex.SwapAccount, err = solana.PublicKeyFromBase58(v.String()); err != nil {
			return nil, fmt.Errorf("swapAccount: %w", err)
		}
	}

	amp := root.Get("ampFactor")
	if !amp.Exists() {
		ex.AmpFactor = big.NewInt(DefaultAmpFactor)
	} else if ex.AmpFactor, err = parseRaw(amp); err != nil {
		return nil, fmt.Errorf("ampFactor: %w", err)
	}
	ex.Ramp = AmpRamp{InitialAmp: ex.AmpFactor.Uint64(), TargetAmp: ex.AmpFactor.Uint64()}

	reserves := root.Get("reserves").Array()
	if len(reserves) != NCoins {
		return nil, fmt.Errorf("%w: want %d reserves, got %d", ErrInvalidAccount, NCoins, len(reserves))
	}
	for i, r := range reserves {
		tok, err := parseToken(r)
		if err != nil {
			return nil, fmt.Errorf("reserves[%d]: %w", i, err)
		}
		raw, err := parseRaw(r.Get("amount"))
		if err != nil {
			return nil, fmt.Errorf("reserves[%d].amount: %w", i, err)
		}
		ex.Reserves[i].Amount = solanago.NewTokenAmount(tok, raw)
		if acc := r.Get("reserveAccount"); acc.Exists() {
			if ex.Reserves[i].ReserveAccount, err = solana.PublicKeyFromBase58(acc.String()); err != nil {
				return nil, fmt.Errorf("reserves[%d].reserveAccount: %w", i, err)
			}
		}
	}

	lpToken, err := parseToken(root.Get("lpToken"))
	if err != nil {
		return nil, fmt.Errorf("lpToken: %w", err)
	}
	supply, err := parseRaw(root.Get("lpTotalSupply"))
	if err != nil {
		return nil, fmt.Errorf("lpTotalSupply: %w", err)
	}
	ex.LPTotalSupply = solanago.NewTokenAmount(lpToken, supply)

	fees := root.Get("fees")
	for _, f := range []struct {
		key string
		dst *shared.Percent
	}{
		{"trade", &ex.Fees.Trade},
		{"withdraw", &ex.Fees.Withdraw},
		{"adminTrade", &ex.Fees.AdminTrade},
		{"adminWithdraw", &ex.Fees.AdminWithdraw},
	} {
		v := fees.Get(f.key)
		if !v.Exists() {
			continue
		}
		r, ok := new(big.Rat).SetString(v.String())
		if !ok || r.Sign() < 0 {
			return nil, fmt.Errorf("fees.%s: invalid rate %q", f.key, v.String())
		}
		*f.dst = shared.PercentFromFraction(shared.FractionFromRat(r))
	}

	if err := ex.Validate(); err != nil {
		return nil, err
	}
	return ex, nil
}

func parseToken(v gjson.Result) (solanago.Token, error) {
	if !v.Exists() {
		return solanago.Token{}, fmt.Errorf("missing token")
	}
	mint, err := solana.PublicKeyFromBase58(v.Get("mint").String())
	if err != nil {
		return solanago.Token{}, fmt.Errorf("mint: %w", err)
	}
	decimals := v.Get("decimals").Uint()
	if decimals > 255 {
		return solanago.Token{}, fmt.Errorf("decimals %d out of range", decimals)
	}
	return solanago.NewToken(mint, uint8(decimals), v.Get("symbol").String()), nil
}

func parseRaw(v gjson.Result) (*big.Int, error) {
	if !v.Exists() {
		return nil, fmt.Errorf("missing amount")
	}
	raw, ok := new(big.Int).SetString(v.String(), 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", v.String())
	}
	if raw.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %s", raw)
	}
	return raw, nil
}
