package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/vitwit/inkcall"
	"github.com/vitwit/inkcall/clients"
	"github.com/vitwit/inkcall/contracts/trigger"
	"github.com/vitwit/inkcall/types"
	"github.com/vitwit/inkcall/utils"
)

type outputDemo struct {
	Contract string `json:"contract"`
	Create   string `json:"create"`
	Transfer string `json:"transfer"`
	Balance  uint32 `json:"balance"`
}

var (
	toFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "recipient of the transfer",
		Value: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	}
	amountFlag = &cli.UintFlag{
		Name:  "amount",
		Usage: "amount moved by the transfer",
		Value: 9000,
	}
	gasFlag = &cli.Uint64Flag{
		Name:  "gas",
		Usage: "gas limit of the transfer, defaults to the config value",
	}
)

var commandDemo = &cli.Command{
	Name:  "demo",
	Usage: "deploy the trigger contract and run a transfer",
	Description: `
Instantiate the trigger contract on the in-memory runtime with gas limit
500, then transfer --amount from the caller to --to.`,
	Flags: []cli.Flag{
		toFlag,
		amountFlag,
		gasFlag,
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		to, err := utils.ParseAccountID(ctx.String(toFlag.Name))
		if err != nil {
			return err
		}

		rt, err := inkcall.NewRuntime(cfg.Runtime)
		if err != nil {
			return err
		}
		mem, ok := rt.(*clients.MemoryRuntime)
		if !ok {
			return fmt.Errorf("demo needs the %q runtime, config selects %q", "memory", cfg.Runtime.Kind)
		}
		if err := trigger.Register(mem); err != nil {
			return err
		}

		d, err := inkcall.New(mem, cfg)
		if err != nil {
			return err
		}
		defer d.Close()

		gas := d.DefaultGasLimit()
		if ctx.IsSet(gasFlag.Name) {
			gas = ctx.Uint64(gasFlag.Name)
		}

		bg := context.Background()
		addr, created, err := inkcall.Create(bg, d, 500, trigger.WithTriggerValue(false))
		if err != nil {
			return fmt.Errorf("instantiate: %w", err)
		}
		transfer := trigger.Transfer(mem.Caller(), to, types.Balance(ctx.Uint(amountFlag.Name)))
		moved, err := inkcall.Invoke(bg, d, addr, gas, transfer)
		if err != nil {
			return fmt.Errorf("transfer: %w", err)
		}
		bal, err := trigger.BalanceOf(mem, addr, to)
		if err != nil {
			return err
		}

		out := outputDemo{
			Contract: addr.Hex(),
			Create:   created.String(),
			Transfer: moved.String(),
			Balance:  uint32(bal),
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(out)
		}
		fmt.Println("Contract:", out.Contract)
		fmt.Println("Create:  ", out.Create)
		fmt.Println("Transfer:", out.Transfer)
		fmt.Println("Balance: ", out.Balance)
		return nil
	},
}
