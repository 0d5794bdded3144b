package processor

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/vitwit/escrow/types"
	"github.com/vitwit/escrow/utils"
)

// InitializeConfig creates the singleton ConfigRecord for the calling
// authority.
//
// Account order: authority (signer), config address, accepted mint,
// fee recipient.
func (p *Processor) InitializeConfig(
	ctx context.Context,
	accounts []*solana.AccountMeta,
	feeBps uint16,
) (*types.ConfigReceipt, error) {
	it := newAccountIter(accounts)

	authority, err := it.next("authority")
	if err != nil {
		return nil, err
	}
	config, err := it.next("config")
	if err != nil {
		return nil, err
	}
	mint, err := it.next("accepted mint")
	if err != nil {
		return nil, err
	}
	feeRecipient, err := it.next("fee recipient")
	if err != nil {
		return nil, err
	}

	if !authority.IsSigner {
		return nil, types.Errorf(types.ErrMissingSigner, "authority must sign the request")
	}

	if err := utils.ValidateFeeBps(feeBps); err != nil {
		return nil, types.Errorf(types.ErrConfigError, "%v", err)
	}

	// The config address is re-derived, never trusted from the caller.
	configAddr, bump, err := types.DeriveConfigAddress(p.engineID, authority.PublicKey)
	if err != nil {
		return nil, err
	}
	if !configAddr.Equals(config.PublicKey) {
		return nil, types.Errorf(types.ErrAddressMismatch,
			"config address %s does not match derivation %s", config.PublicKey, configAddr)
	}

	// Duplicate initialization fails here: the address is already occupied.
	if err := p.host.Allocate(ctx, authority.PublicKey, configAddr, types.ConfigRecordLen, p.engineID); err != nil {
		return nil, err
	}

	record := &types.ConfigRecord{
		Authority:    authority.PublicKey,
		AcceptedMint: mint.PublicKey,
		FeeBps:       feeBps,
		FeeRecipient: feeRecipient.PublicKey,
		Bump:         bump,
	}

	data, err := record.Marshal()
	if err != nil {
		return nil, err
	}
	if err := p.host.Write(ctx, configAddr, data); err != nil {
		return nil, err
	}

	p.log.Info("config initialized", map[string]any{
		"authority": authority.PublicKey.String(),
		"config":    configAddr.String(),
		"feeBps":    feeBps,
	})

	return &types.ConfigReceipt{Address: configAddr, Record: record}, nil
}
