package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/refdoc/cmd/refdoc/commands"
	"git.home.luguber.info/inful/refdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/refdoc/internal/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cli commands.CLI
	global := &commands.Global{Logger: slog.Default(), Context: ctx}
	parser := kong.Parse(&cli,
		kong.Name("refdoc"),
		kong.Description("Generate a static HTML API reference from JSDoc doclets."),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := parser.Run(&cli); err != nil {
		cancel()
		errors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
