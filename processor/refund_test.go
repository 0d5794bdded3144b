package processor

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitwit/escrow/types"
)

func TestRefundPayment(t *testing.T) {
	f := newFixture(t)

	_, err := f.proc.ProcessPayment(context.Background(), f.paymentAccounts(t, true), 500, "")
	require.NoError(t, err)

	// The recipient received 495 net; the gross 500 refund needs 5 more from
	// elsewhere.
	f.host.CreateTokenAccount(f.recipientToken, f.mint, f.recipient, 500)

	receipt, err := f.proc.RefundPayment(context.Background(), f.refundAccounts(t, f.recipient))
	require.NoError(t, err)

	assert.Equal(t, uint64(500), receipt.Refunded)
	assert.Equal(t, types.PaymentStatusRefunded, receipt.Record.Status)
	assert.Equal(t, uint64(1000), f.balance(t, f.payerToken))
	assert.Equal(t, uint64(0), f.balance(t, f.recipientToken))

	// Status flip is persisted.
	data, err := f.host.Read(context.Background(), receipt.Address)
	require.NoError(t, err)
	stored, err := types.UnmarshalPaymentRecord(data)
	require.NoError(t, err)
	assert.True(t, stored.IsRefunded())
}

func TestRefundPaymentIdempotentGuard(t *testing.T) {
	f := newFixture(t)

	_, err := f.proc.ProcessPayment(context.Background(), f.paymentAccounts(t, false), 500, "")
	require.NoError(t, err)

	_, err = f.proc.RefundPayment(context.Background(), f.refundAccounts(t, f.recipient))
	require.NoError(t, err)

	payerBefore := f.balance(t, f.payerToken)
	recipientBefore := f.balance(t, f.recipientToken)

	// The second refund always fails and moves nothing.
	_, err = f.proc.RefundPayment(context.Background(), f.refundAccounts(t, f.recipient))
	assert.Equal(t, types.ErrAlreadyProcessed, types.CodeOf(err))
	assert.Equal(t, payerBefore, f.balance(t, f.payerToken))
	assert.Equal(t, recipientBefore, f.balance(t, f.recipientToken))
}

func TestRefundPaymentMissingSigner(t *testing.T) {
	f := newFixture(t)

	_, err := f.proc.ProcessPayment(context.Background(), f.paymentAccounts(t, false), 500, "")
	require.NoError(t, err)

	accounts := f.refundAccounts(t, f.recipient)
	accounts[0] = solana.NewAccountMeta(f.recipient, false, false)

	_, err = f.proc.RefundPayment(context.Background(), accounts)
	assert.Equal(t, types.ErrMissingSigner, types.CodeOf(err))
}

func TestRefundPaymentRecordNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.proc.RefundPayment(context.Background(), f.refundAccounts(t, f.recipient))
	assert.Equal(t, types.ErrRecordNotFound, types.CodeOf(err))
}

func TestRefundPaymentInsufficientRecipientBalance(t *testing.T) {
	f := newFixture(t)

	// Fee split leaves the recipient with 495, short of the gross 500.
	_, err := f.proc.ProcessPayment(context.Background(), f.paymentAccounts(t, true), 500, "")
	require.NoError(t, err)

	_, err = f.proc.RefundPayment(context.Background(), f.refundAccounts(t, f.recipient))
	assert.Equal(t, types.ErrInsufficientFunds, types.CodeOf(err))
}

func TestRefundStatusMonotone(t *testing.T) {
	f := newFixture(t)

	_, err := f.proc.ProcessPayment(context.Background(), f.paymentAccounts(t, false), 200, "")
	require.NoError(t, err)

	receipt, err := f.proc.RefundPayment(context.Background(), f.refundAccounts(t, f.recipient))
	require.NoError(t, err)
	require.True(t, receipt.Record.IsRefunded())

	// No operation ever moves a record back to Completed: the only status
	// write after a refund is rejected by the guard.
	_, err = f.proc.RefundPayment(context.Background(), f.refundAccounts(t, f.recipient))
	assert.Equal(t, types.ErrAlreadyProcessed, types.CodeOf(err))

	data, err := f.host.Read(context.Background(), receipt.Address)
	require.NoError(t, err)
	stored, err := types.UnmarshalPaymentRecord(data)
	require.NoError(t, err)
	assert.True(t, stored.IsRefunded())
}
