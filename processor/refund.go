package processor

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/vitwit/escrow/types"
)

// RefundPayment reverses a completed payment: the gross recorded amount moves
// from the recipient's token account back to the payer's, and the record's
// status flips to Refunded. The transition is terminal; refunding twice fails
// with ALREADY_PROCESSED and moves nothing.
//
// The refund returns the gross amount even when a fee was split off at
// payment time, so the recipient's account must cover the fee portion from
// its own balance.
//
// Account order: caller (signer), payment address, recipient token account,
// payer token account.
func (p *Processor) RefundPayment(
	ctx context.Context,
	accounts []*solana.AccountMeta,
) (*types.RefundReceipt, error) {
	it := newAccountIter(accounts)

	caller, err := it.next("caller")
	if err != nil {
		return nil, err
	}
	payment, err := it.next("payment")
	if err != nil {
		return nil, err
	}
	recipientToken, err := it.next("recipient token")
	if err != nil {
		return nil, err
	}
	payerToken, err := it.next("payer token")
	if err != nil {
		return nil, err
	}

	if !caller.IsSigner {
		return nil, types.Errorf(types.ErrMissingSigner, "refund caller must sign the request")
	}

	data, err := p.host.Read(ctx, payment.PublicKey)
	if err != nil {
		return nil, err
	}
	record, err := types.UnmarshalPaymentRecord(data)
	if err != nil {
		return nil, err
	}

	if record.IsRefunded() {
		return nil, types.Errorf(types.ErrAlreadyProcessed,
			"payment %s already refunded", payment.PublicKey)
	}

	if err := p.host.Transfer(ctx, recipientToken.PublicKey, payerToken.PublicKey, caller.PublicKey, record.Amount); err != nil {
		return nil, err
	}

	record.Status = types.PaymentStatusRefunded

	updated, err := record.Marshal()
	if err != nil {
		return nil, err
	}
	if err := p.host.Write(ctx, payment.PublicKey, updated); err != nil {
		return nil, err
	}

	p.log.Info("payment refunded", map[string]any{
		"payment": payment.PublicKey.String(),
		"caller":  caller.PublicKey.String(),
		"amount":  record.Amount,
	})

	return &types.RefundReceipt{
		Address:  payment.PublicKey,
		Record:   record,
		Refunded: record.Amount,
	}, nil
}
