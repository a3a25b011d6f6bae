// Package dispatch implements opcode routing: a flat opcode space mapped
// to handlers, a reader over the u128 parameter stream each opcode
// receives, and the reentrancy-lock + leftover-refund wrapper every
// state-mutating handler runs inside.
package dispatch

import (
	"math/big"
	"sort"

	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/auth"
)

// Opcode is the flat, per-contract operation selector.
type Opcode uint32

// Handler executes one opcode. params is a reader over the call's u128
// parameter stream.
type Handler func(ctx alkane.Context, params *ParamReader) (alkane.Response, error)

// ParamReader reads a sequence of u128 parameters in order, as described
// by the dynamic parameter packing convention: AlkaneId consumes two
// consecutive values, everything else consumes one. Opaque byte blobs
// (signatures, public keys) don't fit the u128 stream and travel
// alongside it as Aux.
type ParamReader struct {
	vals []*big.Int
	pos  int
	aux  []byte
}

// NewParamReader wraps a decoded u128 stream for sequential reads.
func NewParamReader(vals []*big.Int) *ParamReader {
	return &ParamReader{vals: vals}
}

// NewParamReaderWithAux wraps a u128 stream together with an opaque
// trailing byte blob, for opcodes whose parameters include a signature
// or public key (e.g. Withdraw, SetOperator).
func NewParamReaderWithAux(vals []*big.Int, aux []byte) *ParamReader {
	return &ParamReader{vals: vals, aux: aux}
}

// Aux returns the opcode's trailing byte blob, or nil if none was
// supplied.
func (r *ParamReader) Aux() []byte {
	return r.aux
}

// NextU128 returns the next value in the stream. Too few parameters for
// an opcode's declared arity is an UnknownOpcode-family error.
func (r *ParamReader) NextU128() (*big.Int, error) {
	if r.pos >= len(r.vals) {
		return nil, alkane.ErrUnknownOpcode
	}
	v := r.vals[r.pos]
	r.pos++
	return v, nil
}

// NextId reads an AlkaneId as two consecutive u128s (block, tx).
func (r *ParamReader) NextId() (alkane.Id, error) {
	block, err := r.NextU128()
	if err != nil {
		return alkane.Id{}, err
	}
	tx, err := r.NextU128()
	if err != nil {
		return alkane.Id{}, err
	}
	return alkane.Id{Block: block, Tx: tx}, nil
}

// Remaining returns the count of unread values.
func (r *ParamReader) Remaining() int {
	return len(r.vals) - r.pos
}

// RequireExhausted fails unless every parameter has been consumed,
// catching handlers invoked with too many arguments.
func (r *ParamReader) RequireExhausted() error {
	if r.Remaining() != 0 {
		return alkane.ErrUnknownOpcode
	}
	return nil
}

type registration struct {
	handler  Handler
	mutating bool
}

// BalanceFunc mirrors the host's balance(self, token_id) -> u128
// primitive, used by the refund epilogue to compute leftover amounts.
type BalanceFunc func(token alkane.Id) *big.Int

// Dispatcher routes opcodes to handlers. State-mutating handlers are
// registered with mutating=true and automatically run inside the
// reentrancy lock, followed by the leftover-refund epilogue.
type Dispatcher struct {
	lifecycle *auth.Lifecycle
	balanceOf BalanceFunc
	handlers  map[Opcode]registration
}

// New creates a Dispatcher bound to a contract's lifecycle (for the
// reentrancy lock) and balance accessor (for the refund epilogue).
func New(lifecycle *auth.Lifecycle, balanceOf BalanceFunc) *Dispatcher {
	return &Dispatcher{
		lifecycle: lifecycle,
		balanceOf: balanceOf,
		handlers:  make(map[Opcode]registration),
	}
}

// Register binds a handler to an opcode. mutating handlers are wrapped
// by the reentrancy lock and the refund-of-leftovers epilogue; readonly
// handlers (e.g. GetStateRoot) run directly.
func (d *Dispatcher) Register(op Opcode, mutating bool, h Handler) {
	d.handlers[op] = registration{handler: h, mutating: mutating}
}

// Dispatch routes a single call to its registered handler, returning
// UnknownOpcode if none is registered. aux carries any opaque trailing
// bytes the opcode's parameters include (a signature, a public key);
// pass nil when the opcode has none.
func (d *Dispatcher) Dispatch(ctx alkane.Context, op Opcode, params []*big.Int, aux []byte) (alkane.Response, error) {
	reg, ok := d.handlers[op]
	if !ok {
		return alkane.Response{}, alkane.ErrUnknownOpcode
	}

	reader := NewParamReaderWithAux(params, aux)

	if !reg.mutating {
		return reg.handler(ctx, reader)
	}

	release, err := d.lifecycle.Acquire()
	if err != nil {
		return alkane.Response{}, err
	}
	defer release()

	resp, err := reg.handler(ctx, reader)
	if err != nil {
		return alkane.Response{}, err
	}
	return RefundLeftovers(resp, ctx.IncomingAlkanes, d.balanceOf), nil
}

// RefundLeftovers implements the leftover-refund epilogue: for every
// AlkaneId present in the incoming parcel but not already carried as an
// explicit outgoing move in resp, it appends a transfer of the
// contract's current balance of that id. Iteration is in ascending
// AlkaneId order for determinism.
func RefundLeftovers(resp alkane.Response, incoming alkane.Parcel, balanceOf BalanceFunc) alkane.Response {
	assigned := make(map[string]bool, len(resp.Alkanes))
	for _, t := range resp.Alkanes {
		assigned[t.Id.HexKey()] = true
	}

	seen := make(map[string]bool, len(incoming))
	ids := make([]alkane.Id, 0, len(incoming))
	for _, t := range incoming {
		key := t.Id.HexKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		ids = append(ids, t.Id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Cmp(ids[j]) < 0 })

	out := make(alkane.Parcel, len(resp.Alkanes), len(resp.Alkanes)+len(ids))
	copy(out, resp.Alkanes)

	for _, id := range ids {
		if assigned[id.HexKey()] {
			continue
		}
		bal := balanceOf(id)
		if bal != nil && bal.Sign() > 0 {
			out = append(out, alkane.Transfer{Id: id, Value: bal})
		}
	}

	return alkane.Response{Data: resp.Data, Alkanes: out}
}
