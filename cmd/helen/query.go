package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-helen-express/pkg/criteria"
	"github.com/robert-malhotra/go-helen-express/pkg/dsl"
)

var (
	filtersFileFlag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "JSON array of filter items, - for stdin",
	}
	orFlag = &cli.BoolFlag{
		Name:  "or",
		Usage: "join filters with || instead of &&",
	}
	staticFlag = &cli.StringFlag{
		Name:  "static",
		Usage: "static query fragment appended to the compiled filters",
	}
)

func newQueryCommand() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Compile, check and run list queries",
		Commands: []*cli.Command{
			{
				Name:   "compile",
				Usage:  "Compile filter items into a query expression",
				Flags:  []cli.Flag{filtersFileFlag, orFlag, staticFlag},
				Action: compileQueryAction,
			},
			{
				Name:      "check",
				Usage:     "Check a query expression, optionally against a JSON record",
				ArgsUsage: "<expression>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "record", Usage: "JSON object file to evaluate the expression against"},
				},
				Action: checkQueryAction,
			},
			{
				Name:      "list",
				Usage:     "List backend records matching the filters",
				ArgsUsage: "<entity>",
				Flags: []cli.Flag{
					filtersFileFlag, orFlag, staticFlag,
					&cli.StringSliceFlag{Name: "sort", Aliases: []string{"s"}, Usage: "sort field, as field or field:desc (repeatable)"},
					&cli.IntFlag{Name: "page", Usage: "first page to fetch", Value: 1},
					&cli.IntFlag{Name: "page-size", Usage: "records per request"},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "stop after this many records"},
					&cli.StringSliceFlag{Name: "field", Usage: "record field to select (repeatable)"},
					&cli.BoolFlag{
						Name:    "interactive",
						Aliases: []string{"i"},
						Usage:   "Prompt between batches of results",
					},
				},
				Action: listQueryAction,
			},
		},
	}
}

// queryFromCommand builds the filter half of a query from --file, --or and --static.
func queryFromCommand(cmd *cli.Command, requireFile bool) (criteria.Query, error) {
	var q criteria.Query
	if cmd.Bool(orFlag.Name) {
		q.Combinator = criteria.Or
	}
	q.StaticQuery = strings.TrimSpace(cmd.String(staticFlag.Name))
	if q.StaticQuery != "" {
		if err := dsl.Validate(q.StaticQuery); err != nil {
			return q, fmt.Errorf("invalid --static: %w", err)
		}
	}

	path := cmd.String(filtersFileFlag.Name)
	if path == "" && !requireFile {
		return q, nil
	}
	in, err := openInput(cmd, path)
	if err != nil {
		return q, err
	}
	defer in.Close()
	if err := json.NewDecoder(in).Decode(&q.Filters); err != nil {
		return q, fmt.Errorf("error decoding filter items: %w", err)
	}
	return q, nil
}

func compileQueryAction(ctx context.Context, cmd *cli.Command) error {
	q, err := queryFromCommand(cmd, true)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout(cmd), q.Filter())
	return err
}

func checkQueryAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: expression")
	}
	expr, err := dsl.Parse(cmd.Args().First())
	if err != nil {
		return err
	}

	path := cmd.String("record")
	if path == "" {
		_, err = fmt.Fprintf(stdout(cmd), "ok: fields %s\n", strings.Join(expr.Fields(), ", "))
		return err
	}

	in, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer in.Close()
	var record map[string]any
	if err := json.NewDecoder(in).Decode(&record); err != nil {
		return fmt.Errorf("error decoding record: %w", err)
	}
	match, err := expr.Evaluate(record)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout(cmd), match)
	return err
}

func listQueryAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: entity")
	}

	q, err := queryFromCommand(cmd, false)
	if err != nil {
		return err
	}
	for _, s := range cmd.StringSlice("sort") {
		sort, err := criteria.ParseSort(s)
		if err != nil {
			return err
		}
		q.Sorts = append(q.Sorts, sort)
	}
	q.Paging = criteria.Paging{Page: cmd.Int("page"), PageSize: cmd.Int("page-size")}

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

	seq := take(backend.List(ctx, cmd.Args().First(), q, cmd.StringSlice("field")...), cmd.Int("limit"))
	if cmd.Bool("interactive") {
		batch := q.Paging.PageSize
		if batch <= 0 {
			batch = cfg.PageSize
		}
		return printJSONArrayInteractive(stdout(cmd), stderr(cmd), stdin(cmd), batch, seq, indentRaw)
	}

	entries, err := collectForCLI(seq, indentRaw)
	if err != nil {
		return err
	}
	return printJSONArray(stdout(cmd), entries)
}
