package processor

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/vitwit/escrow/types"
	"github.com/vitwit/escrow/utils"
)

// ProcessPayment validates a transfer request, splits off the fee when a fee
// account is present, moves funds through the host ledger, and persists a
// Completed PaymentRecord at the pair's derived address.
//
// Account order: payer (signer), payment address, payer token account,
// recipient token account, fee token account (optional), recipient, mint.
// The fee account is present exactly when seven accounts are supplied.
func (p *Processor) ProcessPayment(
	ctx context.Context,
	accounts []*solana.AccountMeta,
	amount uint64,
	memo string,
) (*types.PaymentReceipt, error) {
	it := newAccountIter(accounts)

	payer, err := it.next("payer")
	if err != nil {
		return nil, err
	}
	payment, err := it.next("payment")
	if err != nil {
		return nil, err
	}
	payerToken, err := it.next("payer token")
	if err != nil {
		return nil, err
	}
	recipientToken, err := it.next("recipient token")
	if err != nil {
		return nil, err
	}

	var feeToken *solana.AccountMeta
	if it.remaining() > 2 {
		if feeToken, err = it.next("fee token"); err != nil {
			return nil, err
		}
	}

	recipient, err := it.next("recipient")
	if err != nil {
		return nil, err
	}
	mint, err := it.next("mint")
	if err != nil {
		return nil, err
	}

	if !payer.IsSigner {
		return nil, types.Errorf(types.ErrMissingSigner, "payer must sign the request")
	}

	if err := utils.ValidateAmount(amount); err != nil {
		return nil, types.Errorf(types.ErrInvalidAmount, "%v", err)
	}

	payerAccount, err := p.host.TokenAccount(ctx, payerToken.PublicKey)
	if err != nil {
		return nil, err
	}
	recipientAccount, err := p.host.TokenAccount(ctx, recipientToken.PublicKey)
	if err != nil {
		return nil, err
	}

	if !payerAccount.Mint.Equals(mint.PublicKey) {
		return nil, types.Errorf(types.ErrInvalidMint,
			"payer token account mint %s does not match %s", payerAccount.Mint, mint.PublicKey)
	}
	if !recipientAccount.Mint.Equals(mint.PublicKey) {
		return nil, types.Errorf(types.ErrInvalidMint,
			"recipient token account mint %s does not match %s", recipientAccount.Mint, mint.PublicKey)
	}

	if payerAccount.Balance < amount {
		return nil, types.Errorf(types.ErrInsufficientFunds,
			"payer balance %d is less than amount %d", payerAccount.Balance, amount)
	}

	// Fee split only when a fee account was supplied. The configured rate in
	// ConfigRecord is not consulted here; DefaultFeeBps is in force.
	var fee uint64
	if feeToken != nil {
		fee = computeFee(amount, DefaultFeeBps)
	}
	net := amount - fee

	if err := p.host.Transfer(ctx, payerToken.PublicKey, recipientToken.PublicKey, payer.PublicKey, net); err != nil {
		return nil, err
	}
	if feeToken != nil && fee > 0 {
		if err := p.host.Transfer(ctx, payerToken.PublicKey, feeToken.PublicKey, payer.PublicKey, fee); err != nil {
			return nil, err
		}
	}

	paymentAddr, _, err := types.DerivePaymentAddress(p.engineID, payer.PublicKey, recipient.PublicKey)
	if err != nil {
		return nil, err
	}
	if !paymentAddr.Equals(payment.PublicKey) {
		return nil, types.Errorf(types.ErrAddressMismatch,
			"payment address %s does not match derivation %s", payment.PublicKey, paymentAddr)
	}

	// One outstanding record per (payer, recipient) pair: a second payment
	// fails here while the first record occupies the address.
	if err := p.host.Allocate(ctx, payer.PublicKey, paymentAddr, types.PaymentRecordLen, p.engineID); err != nil {
		return nil, err
	}

	record := &types.PaymentRecord{
		Recipient: recipient.PublicKey,
		Mint:      mint.PublicKey,
		Amount:    amount, // gross, before the fee split
		Payer:     payer.PublicKey,
		Timestamp: p.host.Unix(),
		Status:    types.PaymentStatusCompleted,
		Memo:      types.TruncateMemo(memo),
	}

	data, err := record.Marshal()
	if err != nil {
		return nil, err
	}
	if err := p.host.Write(ctx, paymentAddr, data); err != nil {
		return nil, err
	}

	p.log.Info("payment processed", map[string]any{
		"payer":     payer.PublicKey.String(),
		"recipient": recipient.PublicKey.String(),
		"payment":   paymentAddr.String(),
		"amount":    amount,
		"fee":       fee,
		"net":       net,
	})

	return &types.PaymentReceipt{
		Address:   paymentAddr,
		Record:    record,
		Fee:       fee,
		NetAmount: net,
	}, nil
}
