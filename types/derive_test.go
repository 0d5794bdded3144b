package types

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveConfigAddressDeterministic(t *testing.T) {
	engineID := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	addr1, bump1, err := DeriveConfigAddress(engineID, authority)
	require.NoError(t, err)
	addr2, bump2, err := DeriveConfigAddress(engineID, authority)
	require.NoError(t, err)

	assert.Equal(t, addr1, addr2)
	assert.Equal(t, bump1, bump2)

	// A different authority derives elsewhere.
	other, _, err := DeriveConfigAddress(engineID, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.NotEqual(t, addr1, other)
}

func TestDerivePaymentAddressOrderedPair(t *testing.T) {
	engineID := solana.NewWallet().PublicKey()
	payer := solana.NewWallet().PublicKey()
	recipient := solana.NewWallet().PublicKey()

	forward, _, err := DerivePaymentAddress(engineID, payer, recipient)
	require.NoError(t, err)

	// The pair is ordered: swapping payer and recipient derives elsewhere.
	reverse, _, err := DerivePaymentAddress(engineID, recipient, payer)
	require.NoError(t, err)
	assert.NotEqual(t, forward, reverse)
}

func TestDeriveNamespacesDisjoint(t *testing.T) {
	engineID := solana.NewWallet().PublicKey()
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	config, _, err := DeriveConfigAddress(engineID, a)
	require.NoError(t, err)
	payment, _, err := DerivePaymentAddress(engineID, a, b)
	require.NoError(t, err)

	assert.NotEqual(t, config, payment)
}
