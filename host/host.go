// Package host declares the execution-environment primitives the escrow
// engine consumes: a balance-bearing token ledger, record storage, and a
// trusted clock. The engine never implements these itself; it validates and
// sequences calls against them and relies on the surrounding request boundary
// for whole-request atomicity.
package host

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// TokenAccountInfo describes one balance-bearing account of a fungible asset.
type TokenAccountInfo struct {
	Mint    solana.PublicKey
	Owner   solana.PublicKey
	Balance uint64
	Frozen  bool
}

// TokenLedger is the host's balance-transfer primitive. Transfer moves amount
// between two accounts of the same mint; failures (frozen account, missing
// account, short balance) surface unchanged to the engine's caller.
type TokenLedger interface {
	TokenAccount(ctx context.Context, addr solana.PublicKey) (TokenAccountInfo, error)
	Transfer(ctx context.Context, source, dest, authority solana.PublicKey, amount uint64) error
}

// RecordStore is the host's record allocation and persistence primitive.
// Allocate fails when addr is already occupied; that failure is the only
// duplicate detection the engine relies on.
type RecordStore interface {
	Allocate(ctx context.Context, payer, addr solana.PublicKey, size uint64, owner solana.PublicKey) error
	Read(ctx context.Context, addr solana.PublicKey) ([]byte, error)
	Write(ctx context.Context, addr solana.PublicKey, data []byte) error
}

// Clock is the host's trusted time source.
type Clock interface {
	Unix() int64
}

// Host aggregates the collaborator primitives an engine needs.
type Host interface {
	TokenLedger
	RecordStore
	Clock
}

// Atomizer is optionally implemented by hosts that can provide the
// whole-request commit/rollback boundary: every effect inside fn commits
// together, or none do when fn returns an error.
type Atomizer interface {
	Atomic(ctx context.Context, fn func() error) error
}
