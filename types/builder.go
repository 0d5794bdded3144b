package types

import "github.com/gagliardetto/solana-go"

// Request is one submitted command: the encoded instruction plus the
// order-sensitive participant list. Signer flags are expected to have been
// verified by the host before the engine runs.
type Request struct {
	Data     []byte
	Accounts []*solana.AccountMeta
}

// BuildInitializeConfig constructs an InitializeConfig request. The config
// address is derived, never caller-chosen.
//
// Account order: authority (signer, writable), config (writable),
// accepted mint, fee recipient.
func BuildInitializeConfig(
	engineID solana.PublicKey,
	authority solana.PublicKey,
	acceptedMint solana.PublicKey,
	feeRecipient solana.PublicKey,
	feeBps uint16,
) (*Request, error) {
	configAddr, _, err := DeriveConfigAddress(engineID, authority)
	if err != nil {
		return nil, err
	}

	data, err := EncodeInstruction(InitializeConfigInstruction{FeeBps: feeBps})
	if err != nil {
		return nil, err
	}

	return &Request{
		Data: data,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(authority, true, true),
			solana.NewAccountMeta(configAddr, true, false),
			solana.NewAccountMeta(acceptedMint, false, false),
			solana.NewAccountMeta(feeRecipient, false, false),
		},
	}, nil
}

// BuildProcessPayment constructs a ProcessPayment request. Pass a nil
// feeTokenAccount to skip the fee split entirely.
//
// Account order: payer (signer, writable), payment record (writable),
// payer token account (writable), recipient token account (writable),
// fee token account (writable, optional), recipient, mint.
func BuildProcessPayment(
	engineID solana.PublicKey,
	payer solana.PublicKey,
	recipient solana.PublicKey,
	payerTokenAccount solana.PublicKey,
	recipientTokenAccount solana.PublicKey,
	feeTokenAccount *solana.PublicKey,
	mint solana.PublicKey,
	amount uint64,
	memo string,
) (*Request, error) {
	paymentAddr, _, err := DerivePaymentAddress(engineID, payer, recipient)
	if err != nil {
		return nil, err
	}

	data, err := EncodeInstruction(ProcessPaymentInstruction{Amount: amount, Memo: memo})
	if err != nil {
		return nil, err
	}

	accounts := []*solana.AccountMeta{
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(paymentAddr, true, false),
		solana.NewAccountMeta(payerTokenAccount, true, false),
		solana.NewAccountMeta(recipientTokenAccount, true, false),
	}

	if feeTokenAccount != nil {
		accounts = append(accounts, solana.NewAccountMeta(*feeTokenAccount, true, false))
	}

	accounts = append(accounts,
		solana.NewAccountMeta(recipient, false, false),
		solana.NewAccountMeta(mint, false, false),
	)

	return &Request{Data: data, Accounts: accounts}, nil
}

// BuildRefundPayment constructs a RefundPayment request.
//
// Account order: caller (signer), payment record (writable),
// recipient token account (writable), payer token account (writable).
func BuildRefundPayment(
	engineID solana.PublicKey,
	caller solana.PublicKey,
	payer solana.PublicKey,
	recipient solana.PublicKey,
	recipientTokenAccount solana.PublicKey,
	payerTokenAccount solana.PublicKey,
) (*Request, error) {
	paymentAddr, _, err := DerivePaymentAddress(engineID, payer, recipient)
	if err != nil {
		return nil, err
	}

	data, err := EncodeInstruction(RefundPaymentInstruction{})
	if err != nil {
		return nil, err
	}

	return &Request{
		Data: data,
		Accounts: []*solana.AccountMeta{
			solana.NewAccountMeta(caller, false, true),
			solana.NewAccountMeta(paymentAddr, true, false),
			solana.NewAccountMeta(recipientTokenAccount, true, false),
			solana.NewAccountMeta(payerTokenAccount, true, false),
		},
	}, nil
}
