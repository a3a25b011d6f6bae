package verifier

import (
	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/dispatch"
)

// Verifier opcodes.
const (
	OpInitialize      Opcode = 0
	OpVerifyAndUpdate Opcode = 1
	OpGetStateRoot    Opcode = 97
)

// Opcode is a local alias so the opcode constants read naturally;
// dispatch.Opcode is the canonical type used by the Dispatcher.
type Opcode = dispatch.Opcode

// Register binds every verifier opcode to c on d. GetStateRoot is
// registered as readonly: it runs outside the reentrancy lock and
// never triggers the leftover-refund epilogue, since the verifier
// never moves assets.
func Register(d *dispatch.Dispatcher, c *Contract) {
	d.Register(OpInitialize, true, func(ctx alkane.Context, p *dispatch.ParamReader) (alkane.Response, error) {
		bridge, err := p.NextId()
		if err != nil {
			return alkane.Response{}, err
		}
		if err := p.RequireExhausted(); err != nil {
			return alkane.Response{}, err
		}
		return alkane.Response{}, c.Initialize(ctx.Caller, bridge, p.Aux())
	})

	d.Register(OpVerifyAndUpdate, true, func(ctx alkane.Context, p *dispatch.ParamReader) (alkane.Response, error) {
		if err := p.RequireExhausted(); err != nil {
			return alkane.Response{}, err
		}
		root, err := c.VerifyAndUpdate(ctx.Caller, ctx.TransactionBytes)
		if err != nil {
			return alkane.Response{}, err
		}
		return alkane.Response{Data: root}, nil
	})

	d.Register(OpGetStateRoot, false, func(ctx alkane.Context, p *dispatch.ParamReader) (alkane.Response, error) {
		if err := p.RequireExhausted(); err != nil {
			return alkane.Response{}, err
		}
		root, err := c.GetStateRoot()
		if err != nil {
			return alkane.Response{}, err
		}
		return alkane.Response{Data: root}, nil
	})
}
