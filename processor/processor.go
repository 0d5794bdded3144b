// Package processor implements the escrow engine's three operations:
// configuration initialization, payment processing, and refunds. Each
// operation is a single deterministic pass over the supplied participant
// list and the host primitives; on any error the surrounding request
// boundary discards every effect.
package processor

import (
	"math/big"

	"github.com/gagliardetto/solana-go"

	"github.com/vitwit/escrow/host"
	"github.com/vitwit/escrow/logger"
	"github.com/vitwit/escrow/types"
)

// DefaultFeeBps is the fee rate applied whenever a fee account is supplied.
// ConfigRecord carries a configurable rate, but payment processing does not
// consult it; the constant is the one in force.
const DefaultFeeBps = 100

// Processor executes escrow operations against a host environment.
type Processor struct {
	engineID solana.PublicKey
	host     host.Host
	log      logger.Logger
}

// New creates a processor bound to one engine identity and host.
func New(engineID solana.PublicKey, h host.Host, log logger.Logger) *Processor {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &Processor{
		engineID: engineID,
		host:     h,
		log:      log,
	}
}

// accountIter walks an order-sensitive participant list.
type accountIter struct {
	accounts []*solana.AccountMeta
	pos      int
}

func newAccountIter(accounts []*solana.AccountMeta) *accountIter {
	return &accountIter{accounts: accounts}
}

func (it *accountIter) next(name string) (*solana.AccountMeta, error) {
	if it.pos >= len(it.accounts) {
		return nil, types.Errorf(types.ErrMissingAccount, "missing %s account at position %d", name, it.pos)
	}
	acc := it.accounts[it.pos]
	it.pos++
	return acc, nil
}

func (it *accountIter) remaining() int {
	return len(it.accounts) - it.pos
}

// computeFee returns floor(amount * bps / 10000), widened through big.Int so
// the multiplication cannot overflow uint64.
func computeFee(amount uint64, bps uint16) uint64 {
	fee := new(big.Int).Mul(
		new(big.Int).SetUint64(amount),
		big.NewInt(int64(bps)),
	)
	fee.Div(fee, big.NewInt(types.MaxFeeBps))
	return fee.Uint64()
}
