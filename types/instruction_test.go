package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInstruction(t *testing.T) {
	tests := []struct {
		name string
		inst Instruction
	}{
		{"initialize_config", InitializeConfigInstruction{FeeBps: 100}},
		{"process_payment", ProcessPaymentInstruction{Amount: 500, Memo: "invoice #42"}},
		{"process_payment empty memo", ProcessPaymentInstruction{Amount: 1}},
		{"refund_payment", RefundPaymentInstruction{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeInstruction(tt.inst)
			require.NoError(t, err)

			decoded, err := DecodeInstruction(data)
			require.NoError(t, err)
			assert.Equal(t, tt.inst, decoded)
		})
	}
}

func TestDecodeInstructionFailures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", nil},
		{"unknown opcode", []byte{9}},
		{"initialize_config short payload", []byte{0, 1}},
		{"process_payment truncated payload", []byte{1, 5, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInstruction(tt.data)
			require.Error(t, err)
			assert.Equal(t, ErrInvalidInstruction, CodeOf(err))
		})
	}
}

func TestInitializeConfigFeeBpsLittleEndian(t *testing.T) {
	// 0x0064 = 100 bps, little-endian on the wire.
	decoded, err := DecodeInstruction([]byte{0, 0x64, 0x00})
	require.NoError(t, err)
	assert.Equal(t, InitializeConfigInstruction{FeeBps: 100}, decoded)
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "initialize_config", OpInitializeConfig.String())
	assert.Equal(t, "process_payment", OpProcessPayment.String())
	assert.Equal(t, "refund_payment", OpRefundPayment.String())
	assert.Equal(t, "unknown", Opcode(7).String())
}
