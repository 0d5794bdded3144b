package types

import (
	"bytes"
	"encoding/binary"

	bin "github.com/gagliardetto/binary"
)

// Opcode is the leading byte of a request payload that selects the operation.
type Opcode uint8

const (
	OpInitializeConfig Opcode = 0
	OpProcessPayment   Opcode = 1
	OpRefundPayment    Opcode = 2
)

func (o Opcode) String() string {
	switch o {
	case OpInitializeConfig:
		return "initialize_config"
	case OpProcessPayment:
		return "process_payment"
	case OpRefundPayment:
		return "refund_payment"
	}
	return "unknown"
}

// Instruction is one decoded command for the engine.
type Instruction interface {
	Opcode() Opcode
}

// InitializeConfigInstruction creates the configuration record for the
// calling authority.
type InitializeConfigInstruction struct {
	FeeBps uint16
}

func (InitializeConfigInstruction) Opcode() Opcode { return OpInitializeConfig }

// ProcessPaymentInstruction records and executes a token transfer.
type ProcessPaymentInstruction struct {
	Amount uint64
	Memo   string
}

func (ProcessPaymentInstruction) Opcode() Opcode { return OpProcessPayment }

// RefundPaymentInstruction reverses a completed payment.
type RefundPaymentInstruction struct{}

func (RefundPaymentInstruction) Opcode() Opcode { return OpRefundPayment }

// processPaymentPayload is the borsh wire form of the ProcessPayment payload.
type processPaymentPayload struct {
	Amount uint64
	Memo   string
}

// DecodeInstruction decodes a request payload: one opcode byte followed by
// the opcode-specific encoding.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, Errorf(ErrInvalidInstruction, "empty instruction data")
	}

	opcode, rest := Opcode(data[0]), data[1:]

	switch opcode {
	case OpInitializeConfig:
		if len(rest) < 2 {
			return nil, Errorf(ErrInvalidInstruction, "initialize_config: payload too short")
		}
		return InitializeConfigInstruction{
			FeeBps: binary.LittleEndian.Uint16(rest[:2]),
		}, nil

	case OpProcessPayment:
		var payload processPaymentPayload
		if err := bin.NewBorshDecoder(rest).Decode(&payload); err != nil {
			return nil, Errorf(ErrInvalidInstruction, "process_payment: %v", err)
		}
		return ProcessPaymentInstruction{
			Amount: payload.Amount,
			Memo:   payload.Memo,
		}, nil

	case OpRefundPayment:
		return RefundPaymentInstruction{}, nil
	}

	return nil, Errorf(ErrInvalidInstruction, "unknown opcode %d", data[0])
}

// EncodeInstruction produces the wire form consumed by DecodeInstruction.
func EncodeInstruction(inst Instruction) ([]byte, error) {
	switch v := inst.(type) {
	case InitializeConfigInstruction:
		data := make([]byte, 3)
		data[0] = byte(OpInitializeConfig)
		binary.LittleEndian.PutUint16(data[1:], v.FeeBps)
		return data, nil

	case ProcessPaymentInstruction:
		buf := new(bytes.Buffer)
		buf.WriteByte(byte(OpProcessPayment))
		err := bin.NewBorshEncoder(buf).Encode(&processPaymentPayload{
			Amount: v.Amount,
			Memo:   v.Memo,
		})
		if err != nil {
			return nil, Errorf(ErrInvalidInstruction, "encode process_payment: %v", err)
		}
		return buf.Bytes(), nil

	case RefundPaymentInstruction:
		return []byte{byte(OpRefundPayment)}, nil
	}

	return nil, Errorf(ErrInvalidInstruction, "unsupported instruction %T", inst)
}
