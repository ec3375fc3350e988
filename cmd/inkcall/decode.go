package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/vitwit/inkcall/call"
	"github.com/vitwit/inkcall/contracts/trigger"
	"github.com/vitwit/inkcall/utils"
)

type outputDecode struct {
	Call      string `json:"call"`
	Limit     uint32 `json:"limit,omitempty"`
	Output    string `json:"output"`
	LangError string `json:"langError,omitempty"`
}

var (
	callFlag = &cli.StringFlag{
		Name:  "call",
		Usage: "call whose output is decoded (trigger, transfer, with-trigger-value)",
		Value: "transfer",
	}
	limitFlag = &cli.UintFlag{
		Name:  "limit",
		Usage: "nesting budget, defaults to the config value",
	}
	selectorFlag = &cli.StringFlag{
		Name:  "selector",
		Usage: "pick the call by the selector it was sent with, looked up in --metadata",
	}
	unboundedFlag = &cli.BoolFlag{
		Name:  "unbounded",
		Usage: "decode without a nesting budget; only for output from a trusted runtime",
	}
)

var commandDecode = &cli.Command{
	Name:      "decode",
	Usage:     "decode the raw output of a trigger contract call",
	ArgsUsage: "<hex>",
	Description: `
Decode the output of the call named by --call, or of the call whose
selector is given with --selector. Selectors are resolved through the
contract metadata, --metadata or the built-in trigger metadata.`,
	Flags: []cli.Flag{
		callFlag,
		selectorFlag,
		metadataFlag,
		limitFlag,
		unboundedFlag,
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return fmt.Errorf("expected one hex argument, got %d", ctx.NArg())
		}
		raw, err := utils.ParseHexInput(ctx.Args().First())
		if err != nil {
			return err
		}
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		limit := cfg.DecodeComplexityLimit
		if ctx.IsSet(limitFlag.Name) {
			limit = uint32(ctx.Uint(limitFlag.Name))
		}
		unbounded := ctx.Bool(unboundedFlag.Name)

		name := ctx.String(callFlag.Name)
		if ctx.IsSet(selectorFlag.Name) {
			if name, err = callBySelector(ctx); err != nil {
				return err
			}
		}

		var out outputDecode
		switch name {
		case "trigger":
			out, err = decodeWith(trigger.TriggerOutputDecoder(), raw, limit, unbounded)
		case "transfer":
			out, err = decodeWith(trigger.TransferOutputDecoder(), raw, limit, unbounded)
		case "with-trigger-value":
			out, err = decodeWith(trigger.WithTriggerValueOutputDecoder(), raw, limit, unbounded)
		default:
			return fmt.Errorf("unknown call %q", name)
		}
		if err != nil {
			return err
		}
		out.Call = name

		if ctx.Bool(jsonFlag.Name) {
			return printJSON(out)
		}
		fmt.Println(out.Output)
		return nil
	},
}

// callBySelector resolves --selector to a call name through the metadata.
// Labels map to call names with underscores replaced by dashes.
func callBySelector(ctx *cli.Context) (string, error) {
	sel, err := call.ParseSelector(ctx.String(selectorFlag.Name))
	if err != nil {
		return "", err
	}
	contract, err := loadMetadata(ctx)
	if err != nil {
		return "", err
	}
	entry, _, ok := contract.Lookup(sel)
	if !ok {
		return "", fmt.Errorf("selector %s not found in %s metadata", sel, contract.Name)
	}
	return strings.ReplaceAll(entry.Label, "_", "-"), nil
}

func decodeWith[T any](dec call.OutputDecoder[T], raw []byte, limit uint32, unbounded bool) (outputDecode, error) {
	var (
		out call.Output[T]
		err error
	)
	if unbounded {
		out, err = dec.DecodeOutputUnsafeUnbounded(raw)
		limit = 0
	} else {
		out, err = dec.DecodeOutput(raw, limit)
	}
	if err != nil {
		return outputDecode{}, err
	}

	res := outputDecode{Limit: limit, Output: out.String()}
	if langErr, isErr := out.Err(); isErr {
		res.LangError = langErr.Error()
	}
	return res, nil
}
