// Package escrow implements a deterministic on-ledger payment-escrow engine:
// a singleton fee/authority configuration, fee-splitting payments between two
// parties, and authorized refunds. The engine consumes its ledger, storage,
// signature verification and clock from a host environment and layers the
// business-logic contract on top.
package escrow

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/vitwit/escrow/host"
	"github.com/vitwit/escrow/logger"
	"github.com/vitwit/escrow/metrics"
	"github.com/vitwit/escrow/processor"
	"github.com/vitwit/escrow/types"
	"github.com/vitwit/escrow/utils"
)

// Config contains the engine's configuration.
type Config struct {
	// EngineID is the address namespace owning all derived records.
	EngineID solana.PublicKey `validate:"required"`

	LogLevel string `json:"logLevel,omitempty" validate:"omitempty,oneof=debug info warn error"`

	EnableMetrics bool `json:"enableMetrics,omitempty"`
}

// Engine routes decoded requests to exactly one of the three operations.
type Engine struct {
	engineID  solana.PublicKey
	host      host.Host
	processor *processor.Processor
	log       logger.Logger
	metrics   metrics.Recorder
}

// New creates an engine bound to a host environment. Options override the
// logger and metrics recorder derived from cfg.
func New(cfg *Config, h host.Host, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, types.Errorf(types.ErrConfigError, "config is required")
	}
	if err := utils.ValidateStruct(cfg); err != nil {
		return nil, types.Errorf(types.ErrConfigError, "invalid config: %v", err)
	}
	if cfg.EngineID.IsZero() {
		return nil, types.Errorf(types.ErrConfigError, "engine ID is required")
	}
	if h == nil {
		return nil, types.Errorf(types.ErrConfigError, "host is required")
	}

	e := &Engine{
		engineID: cfg.EngineID,
		host:     h,
		log:      logger.NewZapLogger(cfg.LogLevel),
		metrics:  metrics.NoopRecorder{},
	}
	if cfg.EnableMetrics {
		e.metrics = metrics.NewPrometheusRecorder()
	}

	for _, opt := range opts {
		opt(e)
	}

	e.processor = processor.New(cfg.EngineID, h, e.log)
	return e, nil
}

// Result is the outcome of one executed request. Exactly one receipt field is
// set, matching Op.
type Result struct {
	Op      types.Opcode          `json:"op"`
	Config  *types.ConfigReceipt  `json:"config,omitempty"`
	Payment *types.PaymentReceipt `json:"payment,omitempty"`
	Refund  *types.RefundReceipt  `json:"refund,omitempty"`
}

// Execute decodes the request payload and runs the selected operation inside
// the host's atomic boundary: all effects commit together or none do.
func (e *Engine) Execute(ctx context.Context, req *types.Request) (*Result, error) {
	if req == nil {
		return nil, types.Errorf(types.ErrInvalidInstruction, "request is required")
	}

	inst, err := types.DecodeInstruction(req.Data)
	if err != nil {
		return nil, err
	}

	result := &Result{Op: inst.Opcode()}
	err = e.run(ctx, inst.Opcode(), func() error {
		switch v := inst.(type) {
		case types.InitializeConfigInstruction:
			receipt, err := e.processor.InitializeConfig(ctx, req.Accounts, v.FeeBps)
			if err != nil {
				return err
			}
			result.Config = receipt
		case types.ProcessPaymentInstruction:
			receipt, err := e.processor.ProcessPayment(ctx, req.Accounts, v.Amount, v.Memo)
			if err != nil {
				return err
			}
			result.Payment = receipt
		case types.RefundPaymentInstruction:
			receipt, err := e.processor.RefundPayment(ctx, req.Accounts)
			if err != nil {
				return err
			}
			result.Refund = receipt
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// InitializeConfig creates the configuration record for the calling
// authority. See processor.Processor.InitializeConfig for the account order.
func (e *Engine) InitializeConfig(ctx context.Context, accounts []*solana.AccountMeta, feeBps uint16) (*types.ConfigReceipt, error) {
	var receipt *types.ConfigReceipt
	err := e.run(ctx, types.OpInitializeConfig, func() (err error) {
		receipt, err = e.processor.InitializeConfig(ctx, accounts, feeBps)
		return err
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// ProcessPayment validates and executes a fee-split transfer and persists the
// payment record. See processor.Processor.ProcessPayment.
func (e *Engine) ProcessPayment(ctx context.Context, accounts []*solana.AccountMeta, amount uint64, memo string) (*types.PaymentReceipt, error) {
	var receipt *types.PaymentReceipt
	err := e.run(ctx, types.OpProcessPayment, func() (err error) {
		receipt, err = e.processor.ProcessPayment(ctx, accounts, amount, memo)
		return err
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// RefundPayment reverses a completed payment. See
// processor.Processor.RefundPayment.
func (e *Engine) RefundPayment(ctx context.Context, accounts []*solana.AccountMeta) (*types.RefundReceipt, error) {
	var receipt *types.RefundReceipt
	err := e.run(ctx, types.OpRefundPayment, func() (err error) {
		receipt, err = e.processor.RefundPayment(ctx, accounts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// run wraps one operation in the host's atomic boundary when available and
// records metrics for it.
func (e *Engine) run(ctx context.Context, op types.Opcode, fn func() error) error {
	start := time.Now()

	var err error
	if atomizer, ok := e.host.(host.Atomizer); ok {
		err = atomizer.Atomic(ctx, fn)
	} else {
		err = fn()
	}

	result := "ok"
	if err != nil {
		result = "error"
		e.log.Warn("operation failed", map[string]any{
			"operation": op.String(),
			"code":      types.CodeOf(err),
			"error":     err.Error(),
		})
	}

	e.metrics.IncCounter(op.String(), map[string]string{"result": result})
	e.metrics.ObserveLatency(op.String(), time.Since(start), nil)
	return err
}

// EngineID returns the engine's address namespace.
func (e *Engine) EngineID() solana.PublicKey {
	return e.engineID
}

// Version information
const (
	Version         = "1.0.0"
	ProtocolVersion = 1
)
