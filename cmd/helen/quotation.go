package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-helen-express/pkg/quotation"
)

var gridFileFlag = &cli.StringFlag{
	Name:    "file",
	Aliases: []string{"f"},
	Usage:   "quotation sheet as CSV or tab-separated text, - for stdin",
}

func newQuotationCommand() *cli.Command {
	return &cli.Command{
		Name:  "quotation",
		Usage: "Convert vendor quotation sheets and push them to the backend",
		Commands: []*cli.Command{
			{
				Name:  "parse",
				Usage: "Parse a quotation sheet into weight brackets",
				Flags: []cli.Flag{
					gridFileFlag,
					&cli.StringFlag{Name: "zones", Usage: "JSON array of zones", Required: true},
				},
				Action: parseQuotationAction,
			},
			{
				Name:      "push",
				Usage:     "Parse a sheet against a vendor's zones and replace its quotation",
				ArgsUsage: "<vendor-id>",
				Flags: []cli.Flag{
					gridFileFlag,
					&cli.BoolFlag{Name: "dry-run", Usage: "print the brackets instead of sending them"},
				},
				Action: pushQuotationAction,
			},
			{
				Name:      "template",
				Usage:     "Write an empty quotation sheet for a vendor's zones",
				ArgsUsage: "<vendor-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output CSV file (default stdout)"},
				},
				Action: templateQuotationAction,
			},
		},
	}
}

func readGrid(cmd *cli.Command) (quotation.Grid, error) {
	in, err := openInput(cmd, cmd.String(gridFileFlag.Name))
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return quotation.ReadCSV(in)
}

func readZones(path string) ([]quotation.Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var zones []quotation.Zone
	if err := json.Unmarshal(data, &zones); err != nil {
		return nil, fmt.Errorf("error decoding zones from %s: %w", path, err)
	}
	return zones, nil
}

func parseQuotationAction(ctx context.Context, cmd *cli.Command) error {
	zones, err := readZones(cmd.String("zones"))
	if err != nil {
		return err
	}
	grid, err := readGrid(cmd)
	if err != nil {
		return err
	}
	brackets, err := quotation.Parse(grid, zones)
	if err != nil {
		return err
	}
	return printJSON(stdout(cmd), brackets)
}

func pushQuotationAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: vendor id")
	}
	vendorID := cmd.Args().First()

	cfg, err := settingsFromCommand(cmd)
	if err != nil {
		return err
	}
	logger, err := loggerFor(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	backend, err := newBackendClient(cfg, logger)
	if err != nil {
		return err
	}

	zones, err := backend.VendorZones(ctx, vendorID)
	if err != nil {
		return err
	}
	grid, err := readGrid(cmd)
	if err != nil {
		return err
	}
	brackets, err := quotation.Parse(grid, zones)
	if err != nil {
		return err
	}
	if cmd.Bool("dry-run") {
		return printJSON(stdout(cmd), brackets)
	}

	count, err := backend.ReplaceVendorQuotation(ctx, vendorID, brackets)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout(cmd), "replaced %d weight brackets for vendor %s\n", count, vendorID)
	return err
}

func templateQuotationAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: vendor id")
	}

	cfg, err := settingsFromCommand(cmd)
	if err != nil {
		return err
	}
	logger, err := loggerFor(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	backend, err := newBackendClient(cfg, logger)
	if err != nil {
		return err
	}
	zones, err := backend.VendorZones(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	grid := quotation.BuildGrid(zones, nil)

	out := cmd.String("out")
	if out == "" {
		return quotation.WriteCSV(stdout(cmd), grid)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := quotation.WriteCSV(f, grid); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
