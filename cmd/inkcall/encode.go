package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/urfave/cli/v2"

	"github.com/vitwit/inkcall/call"
	"github.com/vitwit/inkcall/contracts/trigger"
	"github.com/vitwit/inkcall/types"
	"github.com/vitwit/inkcall/utils"
)

type outputEncode struct {
	Selector   string   `json:"selector"`
	Value      uint32   `json:"value"`
	Input      string   `json:"input"`
	Capability []string `json:"capability"`
}

var decimalsFlag = &cli.IntFlag{
	Name:  "decimals",
	Usage: "fractional digits of amounts given on the command line",
}

var commandEncode = &cli.Command{
	Name:  "encode",
	Usage: "encode the input of a trigger contract call",
	Description: `
Print the selector, transferred value and SCALE input of a call without
dispatching it. Amounts are read as decimals with --decimals fractional
digits.`,
	Subcommands: []*cli.Command{
		{
			Name:      "trigger",
			Usage:     "payable trigger message",
			ArgsUsage: "<value> <trigger-value> <msg>",
			Flags:     []cli.Flag{decimalsFlag, jsonFlag},
			Action: func(ctx *cli.Context) error {
				if ctx.NArg() != 3 {
					return fmt.Errorf("expected 3 arguments, got %d", ctx.NArg())
				}
				value, err := utils.ParseBalance(ctx.Args().Get(0), int32(ctx.Int(decimalsFlag.Name)))
				if err != nil {
					return err
				}
				flag, err := strconv.ParseBool(ctx.Args().Get(1))
				if err != nil {
					return fmt.Errorf("invalid trigger value: %w", err)
				}
				return printEncoded[trigger.TriggerOutput](ctx, trigger.Trigger(value, flag, ctx.Args().Get(2)))
			},
		},
		{
			Name:      "transfer",
			Usage:     "unpayable transfer message",
			ArgsUsage: "<from> <to> <amount>",
			Flags:     []cli.Flag{decimalsFlag, jsonFlag},
			Action: func(ctx *cli.Context) error {
				if ctx.NArg() != 3 {
					return fmt.Errorf("expected 3 arguments, got %d", ctx.NArg())
				}
				from, err := utils.ParseAccountID(ctx.Args().Get(0))
				if err != nil {
					return err
				}
				to, err := utils.ParseAccountID(ctx.Args().Get(1))
				if err != nil {
					return err
				}
				amount, err := utils.ParseBalance(ctx.Args().Get(2), int32(ctx.Int(decimalsFlag.Name)))
				if err != nil {
					return err
				}
				return printEncoded[trigger.TransferOutput](ctx, trigger.Transfer(from, to, amount))
			},
		},
		{
			Name:      "with-trigger-value",
			Usage:     "constructor",
			ArgsUsage: "<trigger-value>",
			Flags:     []cli.Flag{jsonFlag},
			Action: func(ctx *cli.Context) error {
				flag, err := strconv.ParseBool(ctx.Args().First())
				if err != nil {
					return fmt.Errorf("invalid trigger value: %w", err)
				}
				return printEncoded[trigger.WithTriggerValueOutput](ctx, trigger.WithTriggerValue(flag))
			},
		},
	},
}

func printEncoded[T any](ctx *cli.Context, c call.Call[T]) error {
	value := c.NativeValue()
	input, err := c.IntoInputData()
	if err != nil {
		return err
	}
	sel, _, _ := call.SelectorOf(input)

	out := outputEncode{
		Selector: sel.String(),
		Value:    uint32(value),
		Input:    hexutil.Encode(input),
	}
	if _, ok := c.(call.IsMessage); ok {
		out.Capability = append(out.Capability, "message")
	}
	if _, ok := c.(call.IsConstructor); ok {
		out.Capability = append(out.Capability, "constructor")
	}
	if ctx.Bool(jsonFlag.Name) {
		return printJSON(out)
	}
	fmt.Println("Selector:", out.Selector)
	fmt.Println("Value:   ", utils.FormatBalance(types.Balance(out.Value), int32(ctx.Int(decimalsFlag.Name))))
	fmt.Println("Input:   ", out.Input)
	fmt.Println("Accepts: ", strings.Join(out.Capability, ", "))
	return nil
}
