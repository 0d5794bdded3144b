package processor

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/escrow/types"
)

func TestInitializeConfig(t *testing.T) {
	f := newFixture(t)
	accounts := f.configAccounts(t)

	receipt, err := f.proc.InitializeConfig(context.Background(), accounts, 250)
	require.NoError(t, err)

	assert.Equal(t, accounts[1].PublicKey, receipt.Address)
	assert.Equal(t, f.authority, receipt.Record.Authority)
	assert.Equal(t, f.mint, receipt.Record.AcceptedMint)
	assert.Equal(t, f.feeRecipient, receipt.Record.FeeRecipient)
	assert.Equal(t, uint16(250), receipt.Record.FeeBps)

	// The persisted record round-trips with the bump that reproduces the
	// derived address.
	data, err := f.host.Read(context.Background(), receipt.Address)
	require.NoError(t, err)
	stored, err := types.UnmarshalConfigRecord(data)
	require.NoError(t, err)
	assert.Equal(t, receipt.Record, stored)

	derived, bump, err := types.DeriveConfigAddress(f.engineID, f.authority)
	require.NoError(t, err)
	assert.Equal(t, derived, receipt.Address)
	assert.Equal(t, bump, stored.Bump)
}

func TestInitializeConfigMissingSigner(t *testing.T) {
	f := newFixture(t)
	accounts := f.configAccounts(t)
	accounts[0] = solana.NewAccountMeta(f.authority, true, false)

	_, err := f.proc.InitializeConfig(context.Background(), accounts, 100)
	assert.Equal(t, types.ErrMissingSigner, types.CodeOf(err))
}

func TestInitializeConfigAddressMismatch(t *testing.T) {
	f := newFixture(t)
	accounts := f.configAccounts(t)
	accounts[1] = solana.NewAccountMeta(solana.NewWallet().PublicKey(), true, false)

	_, err := f.proc.InitializeConfig(context.Background(), accounts, 100)
	assert.Equal(t, types.ErrAddressMismatch, types.CodeOf(err))

	// Rejected before any allocation.
	_, err = f.host.Read(context.Background(), accounts[1].PublicKey)
	assert.Equal(t, types.ErrRecordNotFound, types.CodeOf(err))
}

func TestInitializeConfigDuplicate(t *testing.T) {
	f := newFixture(t)
	accounts := f.configAccounts(t)

	_, err := f.proc.InitializeConfig(context.Background(), accounts, 100)
	require.NoError(t, err)

	// The occupied derived address is the only duplicate detection.
	_, err = f.proc.InitializeConfig(context.Background(), accounts, 100)
	assert.Equal(t, types.ErrAccountInUse, types.CodeOf(err))
}

func TestInitializeConfigFeeBpsBounds(t *testing.T) {
	f := newFixture(t)

	_, err := f.proc.InitializeConfig(context.Background(), f.configAccounts(t), 10001)
	assert.Equal(t, types.ErrConfigError, types.CodeOf(err))

	// 10000 bps (100%) is the inclusive maximum.
	_, err = f.proc.InitializeConfig(context.Background(), f.configAccounts(t), 10000)
	require.NoError(t, err)
}

func TestInitializeConfigMissingAccounts(t *testing.T) {
	f := newFixture(t)
	accounts := f.configAccounts(t)

	_, err := f.proc.InitializeConfig(context.Background(), accounts[:2], 100)
	assert.Equal(t, types.ErrMissingAccount, types.CodeOf(err))
}
