package host

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"

	"github.com/vitwit/escrow/types"
)

// MemoryHost is an in-memory implementation of Host, suitable for tests and
// single-process embedding. It is thread-safe; Atomic serializes requests and
// restores a snapshot when the wrapped function fails, giving the same
// all-or-nothing boundary a production host provides.
type MemoryHost struct {
	// txMu serializes atomic request sections.
	txMu sync.Mutex

	mu      sync.Mutex
	tokens  map[solana.PublicKey]*TokenAccountInfo
	records map[solana.PublicKey]*storedRecord
	now     int64
}

type storedRecord struct {
	owner solana.PublicKey
	data  []byte
}

var _ Host = (*MemoryHost)(nil)
var _ Atomizer = (*MemoryHost)(nil)

// NewMemoryHost creates an empty in-memory host with the clock at unix 0.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{
		tokens:  make(map[solana.PublicKey]*TokenAccountInfo),
		records: make(map[solana.PublicKey]*storedRecord),
	}
}

// CreateTokenAccount registers a balance-bearing account. Test setup helper.
func (h *MemoryHost) CreateTokenAccount(addr, mint, owner solana.PublicKey, balance uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tokens[addr] = &TokenAccountInfo{Mint: mint, Owner: owner, Balance: balance}
}

// FreezeTokenAccount marks an account frozen; transfers touching it fail.
func (h *MemoryHost) FreezeTokenAccount(addr solana.PublicKey) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if acc, ok := h.tokens[addr]; ok {
		acc.Frozen = true
	}
}

// SetTime sets the trusted clock reading, unix seconds.
func (h *MemoryHost) SetTime(unix int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now = unix
}

func (h *MemoryHost) Unix() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

func (h *MemoryHost) TokenAccount(ctx context.Context, addr solana.PublicKey) (TokenAccountInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	acc, ok := h.tokens[addr]
	if !ok {
		return TokenAccountInfo{}, types.Errorf(types.ErrRecordNotFound, "token account %s not found", addr)
	}
	return *acc, nil
}

func (h *MemoryHost) Transfer(ctx context.Context, source, dest, authority solana.PublicKey, amount uint64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	src, ok := h.tokens[source]
	if !ok {
		return types.Errorf(types.ErrRecordNotFound, "source token account %s not found", source)
	}
	dst, ok := h.tokens[dest]
	if !ok {
		return types.Errorf(types.ErrRecordNotFound, "destination token account %s not found", dest)
	}

	if src.Frozen || dst.Frozen {
		return types.Errorf(types.ErrAccountFrozen, "transfer touches a frozen account")
	}
	if src.Mint != dst.Mint {
		return types.Errorf(types.ErrInvalidMint, "source and destination mints differ")
	}
	if !authority.Equals(src.Owner) {
		return types.Errorf(types.ErrUnauthorized, "authority %s does not own source account", authority)
	}
	if src.Balance < amount {
		return types.Errorf(types.ErrInsufficientFunds,
			"balance %d is less than transfer amount %d", src.Balance, amount)
	}

	src.Balance -= amount
	dst.Balance += amount
	return nil
}

func (h *MemoryHost) Allocate(ctx context.Context, payer, addr solana.PublicKey, size uint64, owner solana.PublicKey) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.records[addr]; ok {
		return types.Errorf(types.ErrAccountInUse, "address %s already allocated", addr)
	}
	h.records[addr] = &storedRecord{owner: owner, data: make([]byte, size)}
	return nil
}

func (h *MemoryHost) Read(ctx context.Context, addr solana.PublicKey) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec, ok := h.records[addr]
	if !ok {
		return nil, types.Errorf(types.ErrRecordNotFound, "record %s not found", addr)
	}
	out := make([]byte, len(rec.data))
	copy(out, rec.data)
	return out, nil
}

func (h *MemoryHost) Write(ctx context.Context, addr solana.PublicKey, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	rec, ok := h.records[addr]
	if !ok {
		return types.Errorf(types.ErrRecordNotFound, "record %s not found", addr)
	}
	if len(data) > len(rec.data) {
		return types.Errorf(types.ErrInvalidInstruction,
			"record data %d bytes exceeds allocation %d", len(data), len(rec.data))
	}
	copy(rec.data, data)
	return nil
}

// Atomic runs fn under a request-wide boundary: requests are serialized and
// every effect of a failing fn is rolled back.
func (h *MemoryHost) Atomic(ctx context.Context, fn func() error) error {
	h.txMu.Lock()
	defer h.txMu.Unlock()

	snap := h.snapshot()
	if err := fn(); err != nil {
		h.restore(snap)
		return err
	}
	return nil
}

type memorySnapshot struct {
	tokens  map[solana.PublicKey]*TokenAccountInfo
	records map[solana.PublicKey]*storedRecord
}

func (h *MemoryHost) snapshot() *memorySnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	snap := &memorySnapshot{
		tokens:  make(map[solana.PublicKey]*TokenAccountInfo, len(h.tokens)),
		records: make(map[solana.PublicKey]*storedRecord, len(h.records)),
	}
	for addr, acc := range h.tokens {
		cp := *acc
		snap.tokens[addr] = &cp
	}
	for addr, rec := range h.records {
		data := make([]byte, len(rec.data))
		copy(data, rec.data)
		snap.records[addr] = &storedRecord{owner: rec.owner, data: data}
	}
	return snap
}

func (h *MemoryHost) restore(snap *memorySnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tokens = snap.tokens
	h.records = snap.records
}
