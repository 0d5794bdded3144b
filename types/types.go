// Package types defines the escrow engine's record model, instruction codec,
// deterministic address derivation and error taxonomy.
package types

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// PaymentStatus tracks the lifecycle of a payment record. Transitions only
// move forward: Completed -> Refunded.
type PaymentStatus uint8

const (
	// PaymentStatusPending is reserved; a record is only ever persisted
	// after its funding transfer has completed.
	PaymentStatusPending   PaymentStatus = 0
	PaymentStatusCompleted PaymentStatus = 1
	PaymentStatusRefunded  PaymentStatus = 2
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusPending:
		return "pending"
	case PaymentStatusCompleted:
		return "completed"
	case PaymentStatusRefunded:
		return "refunded"
	}
	return "unknown"
}

// MemoCapacity is the fixed byte capacity of a payment memo. Longer input is
// truncated, never rejected.
const MemoCapacity = 64

// Record sizes of the fixed borsh layouts.
const (
	ConfigRecordLen  = 32 + 32 + 2 + 32 + 1          // 99
	PaymentRecordLen = 32 + 32 + 8 + 32 + 8 + 1 + 64 // 177
)

// MaxFeeBps is the upper bound of a fee rate in basis points (100%).
const MaxFeeBps = 10000

// ConfigRecord is the singleton fee/authority configuration for one
// administering identity. Its address is derived from ("config", authority).
type ConfigRecord struct {
	// Authority permitted to manage this configuration.
	Authority solana.PublicKey

	// AcceptedMint is the single asset type this deployment accepts.
	AcceptedMint solana.PublicKey

	// FeeBps is the configured fee rate in basis points (100 = 1%).
	FeeBps uint16

	// FeeRecipient is credited with collected fees.
	FeeRecipient solana.PublicKey

	// Bump reproduces this record's derived address.
	Bump uint8
}

// PaymentRecord is the persisted state of one payment between an ordered
// (payer, recipient) pair. Its address is derived from
// ("payment", payer, recipient), so at most one record can exist per pair.
// Field order is the persisted layout; do not reorder.
type PaymentRecord struct {
	Recipient solana.PublicKey

	Mint solana.PublicKey

	// Amount is the gross requested amount, before any fee deduction.
	Amount uint64

	Payer solana.PublicKey

	// Timestamp is the host clock reading at creation, unix seconds.
	Timestamp int64

	Status PaymentStatus

	Memo [MemoCapacity]byte
}

func (p *PaymentRecord) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

func (p *PaymentRecord) IsRefunded() bool {
	return p.Status == PaymentStatusRefunded
}

// MemoString returns the memo with trailing zero padding stripped.
func (p *PaymentRecord) MemoString() string {
	return string(bytes.TrimRight(p.Memo[:], "\x00"))
}

// TruncateMemo copies memo into a zero-filled fixed buffer, silently
// truncating anything past MemoCapacity.
func TruncateMemo(memo string) [MemoCapacity]byte {
	var out [MemoCapacity]byte
	copy(out[:], memo)
	return out
}

// Marshal encodes the record into its fixed 99-byte layout.
func (c *ConfigRecord) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(c); err != nil {
		return nil, Errorf(ErrInvalidInstruction, "encode config record: %v", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalConfigRecord decodes a ConfigRecord from its fixed layout.
func UnmarshalConfigRecord(data []byte) (*ConfigRecord, error) {
	var rec ConfigRecord
	if err := bin.NewBorshDecoder(data).Decode(&rec); err != nil {
		return nil, Errorf(ErrRecordNotFound, "decode config record: %v", err)
	}
	return &rec, nil
}

// Marshal encodes the record into its fixed 177-byte layout.
func (p *PaymentRecord) Marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(p); err != nil {
		return nil, Errorf(ErrInvalidInstruction, "encode payment record: %v", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalPaymentRecord decodes a PaymentRecord from its fixed layout.
func UnmarshalPaymentRecord(data []byte) (*PaymentRecord, error) {
	var rec PaymentRecord
	if err := bin.NewBorshDecoder(data).Decode(&rec); err != nil {
		return nil, Errorf(ErrRecordNotFound, "decode payment record: %v", err)
	}
	return &rec, nil
}

// PaymentReceipt is returned by a successful payment. Amount is the gross
// request amount; NetAmount plus Fee always equals Amount.
type PaymentReceipt struct {
	Address   solana.PublicKey `json:"address"`
	Record    *PaymentRecord   `json:"record"`
	Fee       uint64           `json:"fee"`
	NetAmount uint64           `json:"netAmount"`
}

// RefundReceipt is returned by a successful refund.
type RefundReceipt struct {
	Address solana.PublicKey `json:"address"`
	Record  *PaymentRecord   `json:"record"`

	// Refunded is the amount moved back to the payer (the gross amount).
	Refunded uint64 `json:"refunded"`
}

// ConfigReceipt is returned by a successful configuration initialization.
type ConfigReceipt struct {
	Address solana.PublicKey `json:"address"`
	Record  *ConfigRecord    `json:"record"`
}
