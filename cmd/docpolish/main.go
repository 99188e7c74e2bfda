package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docpolish/cmd/docpolish/commands"
	"git.home.luguber.info/inful/docpolish/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("docpolish"),
		kong.Description("Post-process generated documentation HTML: rewrite inline styles to classes, fix accessibility gaps, validate coverage and cache-bust asset references."),
		kong.Vars{"version": version.Version},
	)
	ctx.FatalIfErrorf(ctx.Run(&commands.Global{}, cli))
}
