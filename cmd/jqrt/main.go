// Command jqrt evaluates jq core builtins, reports their runtime failures
// and runs conformance catalogs against them.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dshills/jqrt/pkg/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Main(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
