package types

import "github.com/gagliardetto/solana-go"

// Namespace tags for deterministic address derivation.
var (
	ConfigSeed  = []byte("config")
	PaymentSeed = []byte("payment")
)

// DeriveConfigAddress derives the deterministic address of the ConfigRecord
// administered by authority, together with the bump that reproduces it.
func DeriveConfigAddress(engineID, authority solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{ConfigSeed, authority.Bytes()},
		engineID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, Errorf(ErrAddressMismatch, "derive config address: %v", err)
	}
	return addr, bump, nil
}

// DerivePaymentAddress derives the deterministic address of the PaymentRecord
// for the ordered (payer, recipient) pair. The address is a pure function of
// the pair, so only one record can exist per pair at a time.
func DerivePaymentAddress(engineID, payer, recipient solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(
		[][]byte{PaymentSeed, payer.Bytes(), recipient.Bytes()},
		engineID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, Errorf(ErrAddressMismatch, "derive payment address: %v", err)
	}
	return addr, bump, nil
}
