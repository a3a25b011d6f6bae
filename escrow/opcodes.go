package escrow

import (
	"github.com/satcity/satcity/alkane"
	"github.com/satcity/satcity/dispatch"
)

// Escrow opcodes.
const (
	OpInitialize               Opcode = 0
	OpDeposit                  Opcode = 1
	OpWithdraw                 Opcode = 2
	OpAddTokenToAllowlist      Opcode = 3
	OpRemoveTokenFromAllowlist Opcode = 4
	OpSetOperator              Opcode = 5
	OpSetPaused                Opcode = 6
)

// Opcode is a local alias so the opcode constants read naturally;
// dispatch.Opcode is the canonical type used by the Dispatcher.
type Opcode = dispatch.Opcode

// Register binds every escrow opcode to c on d. The Dispatcher's
// balanceOf function (supplied when d was constructed) must come from
// the host's actual balance(myself, id) primitive so the
// leftover-refund epilogue sees the contract's true holdings.
func Register(d *dispatch.Dispatcher, c *Contract) {
	d.Register(OpInitialize, true, func(ctx alkane.Context, p *dispatch.ParamReader) (alkane.Response, error) {
		owner, err := p.NextId()
		if err != nil {
			return alkane.Response{}, err
		}
		if err := p.RequireExhausted(); err != nil {
			return alkane.Response{}, err
		}
		return alkane.Response{}, c.Initialize(owner, p.Aux())
	})

	d.Register(OpDeposit, true, func(ctx alkane.Context, p *dispatch.ParamReader) (alkane.Response, error) {
		if err := p.RequireExhausted(); err != nil {
			return alkane.Response{}, err
		}
		return alkane.Response{}, c.Deposit(ctx.Caller, ctx.IncomingAlkanes)
	})

	d.Register(OpWithdraw, true, func(ctx alkane.Context, p *dispatch.ParamReader) (alkane.Response, error) {
		recipient, err := p.NextId()
		if err != nil {
			return alkane.Response{}, err
		}
		token, err := p.NextId()
		if err != nil {
			return alkane.Response{}, err
		}
		amount, err := p.NextU128()
		if err != nil {
			return alkane.Response{}, err
		}
		nonce, err := p.NextU128()
		if err != nil {
			return alkane.Response{}, err
		}
		if err := p.RequireExhausted(); err != nil {
			return alkane.Response{}, err
		}
		return c.Withdraw(ctx.Myself, recipient, token, amount, nonce, p.Aux())
	})

	d.Register(OpAddTokenToAllowlist, true, func(ctx alkane.Context, p *dispatch.ParamReader) (alkane.Response, error) {
		token, err := p.NextId()
		if err != nil {
			return alkane.Response{}, err
		}
		if err := p.RequireExhausted(); err != nil {
			return alkane.Response{}, err
		}
		return alkane.Response{}, c.AddTokenToAllowlist(ctx.Caller, token)
	})

	d.Register(OpRemoveTokenFromAllowlist, true, func(ctx alkane.Context, p *dispatch.ParamReader) (alkane.Response, error) {
		token, err := p.NextId()
		if err != nil {
			return alkane.Response{}, err
		}
		if err := p.RequireExhausted(); err != nil {
			return alkane.Response{}, err
		}
		return alkane.Response{}, c.RemoveTokenFromAllowlist(ctx.Caller, token)
	})

	d.Register(OpSetOperator, true, func(ctx alkane.Context, p *dispatch.ParamReader) (alkane.Response, error) {
		if err := p.RequireExhausted(); err != nil {
			return alkane.Response{}, err
		}
		return alkane.Response{}, c.SetOperator(ctx.Caller, p.Aux())
	})

	d.Register(OpSetPaused, true, func(ctx alkane.Context, p *dispatch.ParamReader) (alkane.Response, error) {
		paused, err := p.NextU128()
		if err != nil {
			return alkane.Response{}, err
		}
		if err := p.RequireExhausted(); err != nil {
			return alkane.Response{}, err
		}
		return alkane.Response{}, c.SetPaused(ctx.Caller, paused.Sign() != 0)
	})
}
