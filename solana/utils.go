package solana

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"reflect"
	"time"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

var ErrAccountNotFound = errors.New("account not found")

// ClusterTime returns the block time of the latest finalized slot.
func ClusterTime(ctx context.Context, rpcClient *rpc.Client) (time.Time, error) {
	currentSlot, err := rpcClient.GetSlot(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get slot: %w", err)
	}
	currentTime, err := rpcClient.GetBlockTime(ctx, currentSlot)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get block time: %w", err)
	}
	if currentTime == nil {
		return time.Time{}, fmt.Errorf("no block time for slot %d", currentSlot)
	}
	return currentTime.Time(), nil
}

// Discriminator is the 8-byte Anchor account tag for name.
func Discriminator(name string) [8]byte {
	hash := sha256.Sum256([]byte("account:" + name))
	var out [8]byte
	copy(out[:], hash[:8])
	return out
}

// ComputeStructOffset gets the Borsh offset of field o in the account struct
// x, counting the Anchor discriminator.
func ComputeStructOffset(x any, o string) uint64 {
	t := reflect.TypeOf(x).Elem()
	fields := make([]reflect.StructField, 0)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == o {
			break
		}
		fields = append(fields, f)
	}

	newValue := reflect.New(reflect.StructOf(fields)).Elem()

	buf := new(bytes.Buffer)
	_ = binary.NewBorshEncoder(buf).Encode(newValue.Interface())

	return uint64(buf.Len()) + 8
}

func GenProgramAccountFilter(key string, filter *Filter) *rpc.GetProgramAccountsOpts {
	disc := Discriminator(key)
	opt := &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentFinalized,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  disc[:],
				},
			},
		},
	}
	if filter == nil {
		return opt
	}

	opt.Filters = append(opt.Filters, rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: filter.Offset,
			Bytes:  filter.Owner[:],
		},
	})
	return opt
}

func GetAccountInfo(ctx context.Context, rpcClient *rpc.Client, account solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	out, err := rpcClient.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: rpc.CommitmentFinalized})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	return out, err
}

func GetMultipleAccountInfo(ctx context.Context, rpcClient *rpc.Client, accounts []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	return rpcClient.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{Commitment: rpc.CommitmentFinalized, Encoding: solana.EncodingBase64})
}

// GetMultipleMints decodes the given mints. Missing accounts are reported as
// an error naming the first absent key.
func GetMultipleMints(ctx context.Context, rpcClient *rpc.Client, mints ...solana.PublicKey) ([]*MintAccount, error) {
	outs, err := GetMultipleAccountInfo(ctx, rpcClient, mints)
	if err != nil {
		return nil, err
	}
	list := make([]*MintAccount, len(outs.Value))
	for i, out := range outs.Value {
		if out == nil {
			return nil, fmt.Errorf("%w: mint %s", ErrAccountNotFound, mints[i])
		}

		mint, err := new(MintLayout).Decode(out.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("decode mint %s: %w", mints[i], err)
		}
		mint.Address = mints[i]
		mint.Owner = out.Owner

		list[i] = mint
	}
	return list, nil
}

// GetMultipleTokenAccounts decodes SPL token accounts in one round trip.
func GetMultipleTokenAccounts(ctx context.Context, rpcClient *rpc.Client, accounts ...solana.PublicKey) ([]*Account, error) {
	outs, err := GetMultipleAccountInfo(ctx, rpcClient, accounts)
	if err != nil {
		return nil, err
	}
	list := make([]*Account, len(outs.Value))
	for i, out := range outs.Value {
		if out == nil {
			return nil, fmt.Errorf("%w: token account %s", ErrAccountNotFound, accounts[i])
		}
		acc, err := new(AccountLayout).Decode(out.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("decode token account %s: %w", accounts[i], err)
		}
		acc.Address = accounts[i]
		list[i] = acc
	}
	return list, nil
}
