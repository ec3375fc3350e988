package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/vitwit/inkcall/call"
	"github.com/vitwit/inkcall/contracts/trigger"
	"github.com/vitwit/inkcall/metadata"
)

var (
	metadataFlag = &cli.StringFlag{
		Name:  "metadata",
		Usage: "JSON metadata file, defaults to the trigger contract",
	}
	keccakFlag = &cli.BoolFlag{
		Name:  "keccak",
		Usage: "derive selectors of the given signatures with keccak-256 instead of blake2b-256",
	}
)

// loadMetadata reads and validates the --metadata file, or the built-in
// trigger metadata without one.
func loadMetadata(ctx *cli.Context) (*metadata.Contract, error) {
	path := ctx.String(metadataFlag.Name)
	if path == "" {
		contract := trigger.Metadata()
		return contract, contract.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata at '%s': %w", path, err)
	}
	return metadata.Parse(data)
}

var commandSelectors = &cli.Command{
	Name:      "selectors",
	Usage:     "list the selectors of a contract or derive new ones",
	ArgsUsage: "[label...]",
	Description: `
Without arguments, validate the metadata and print every constructor and
message with its selector. With arguments, print the selector derived from
each label.`,
	Flags: []cli.Flag{
		metadataFlag,
		keccakFlag,
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() > 0 {
			derived := make(map[string]string, ctx.NArg())
			for _, label := range ctx.Args().Slice() {
				sel := call.SelectorFromLabel(label)
				if ctx.Bool(keccakFlag.Name) {
					sel = call.SelectorFromSignature(label)
				}
				derived[label] = sel.String()
				if !ctx.Bool(jsonFlag.Name) {
					fmt.Printf("%s  %s\n", sel, label)
				}
			}
			if ctx.Bool(jsonFlag.Name) {
				return printJSON(derived)
			}
			return nil
		}

		contract, err := loadMetadata(ctx)
		if err != nil {
			return err
		}

		if ctx.Bool(jsonFlag.Name) {
			return printJSON(contract)
		}
		fmt.Println(contract.Name)
		list := func(kind metadata.Kind, entries []metadata.Entry) {
			for _, e := range entries {
				payable := ""
				if e.Payable {
					payable = " payable"
				}
				fmt.Printf("  %s  %-11s %s%s -> %s\n", e.Selector, kind, e.Label, payable, e.Returns)
			}
		}
		list(metadata.KindConstructor, contract.Constructors)
		list(metadata.KindMessage, contract.Messages)
		return nil
	},
}
