package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/next-trace/scg-message-catalog/catalog"
	"github.com/next-trace/scg-message-catalog/contract/message"
	"github.com/next-trace/scg-message-catalog/gateway"
	"github.com/next-trace/scg-message-catalog/internal/config"
	"github.com/next-trace/scg-message-catalog/internal/transport"
	"github.com/next-trace/scg-message-catalog/schemas"
)

const usage = "usage: catalog <list|describe|emit> [flags]"

// run executes one subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}

	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := newLogger(cfg, stderr)

	cat := catalog.New(catalog.WithLogger(logger))
	if err := schemas.RegisterAll(cat); err != nil {
		logger.Error("catalog: registration failed", "err", err)
		return 1
	}

	cat.Seal()

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "list":
		err = list(cat, rest, stdout)
	case "describe":
		err = describe(cat, rest, stdout)
	case "emit":
		err = emit(ctx, cfg, cat, logger, rest, stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s\n", cmd, usage)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", cmd, err)
		return 1
	}

	return 0
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	lvl, err := cfg.Level()
	if err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	return table
}

func list(cat *catalog.Catalog, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(w)
	ns := fs.String("namespace", "", "only list descriptors of this namespace")

	if err := fs.Parse(args); err != nil {
		return err
	}

	descs := cat.Descriptors()
	if *ns != "" {
		descs = lo.Filter(descs, func(d catalog.Descriptor, _ int) bool { return d.Namespace == *ns })
		if len(descs) == 0 {
			return fmt.Errorf("namespace %q: no descriptors, known: %s", *ns, strings.Join(cat.Namespaces(), ", "))
		}
	}

	table := newTable(w, "Namespace", "Name", "Role", "Type", "Identity", "Tags")
	for _, d := range descs {
		table.Append([]string{
			d.Namespace,
			d.Name,
			d.Role.String(),
			d.Type.String(),
			strings.Join(d.Identity, ","),
			strings.Join(d.TagKeys, ","),
		})
	}

	table.Render()

	return nil
}

func describe(cat *catalog.Catalog, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	fs.SetOutput(w)
	name := fs.String("name", "", "logical message name")
	ns := fs.String("namespace", "", "message namespace")

	if err := fs.Parse(args); err != nil {
		return err
	}

	d, ok := cat.Lookup(*name, *ns)
	if !ok {
		return fmt.Errorf("%s/%s: not registered", *ns, *name)
	}

	fmt.Fprintf(w, "%s (%s)\n", d, d.Type)

	table := newTable(w, "Field", "Go name", "Type", "Identity", "Tag", "Rules")
	for _, f := range d.Fields() {
		table.Append([]string{f.Name, f.GoName, f.Type, lo.Ternary(f.Identity, "yes", ""), f.Tag, f.Rules})
	}

	table.Render()

	return nil
}

func emit(
	ctx context.Context,
	cfg *config.Config,
	cat *catalog.Catalog,
	logger *slog.Logger,
	args []string,
	w io.Writer,
) error {
	fs := flag.NewFlagSet("emit", flag.ContinueOnError)
	fs.SetOutput(w)
	sample := fs.String("sample", "", "sample to emit, one of: "+strings.Join(schemas.SampleKeys(), ", "))
	topic := fs.String("topic", "", "topic override for events")

	if err := fs.Parse(args); err != nil {
		return err
	}

	v, err := schemas.Sample(*sample)
	if err != nil {
		return err
	}

	ad, cleanup, err := transport.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	var delivered message.Envelope

	capture := func(next gateway.Handler) gateway.Handler {
		return func(ctx context.Context, env message.Envelope) error {
			if err := next(ctx, env); err != nil {
				return err
			}

			delivered = env

			return nil
		}
	}

	gw := gateway.New(cat, ad, ad, logger, gateway.WithMiddleware(capture))

	d, _ := cat.DescriptorOf(v)
	switch d.Role {
	case message.RoleCommand:
		err = gw.Send(ctx, v)
	case message.RoleEvent:
		err = gw.AppendWithOptions(ctx, v, message.AppendOptions{TopicOverride: *topic})
	default:
		return fmt.Errorf("%s: a %s cannot be emitted", d.Key(), d.Role)
	}

	if err != nil {
		return err
	}

	fmt.Fprintf(w, "emitted %s via %s: id=%s subject=%s identity=%s tags=%s\n",
		d, cfg.Transport, delivered.ID, delivered.Subject(), delivered.Identity, delivered.Tags)

	return nil
}
