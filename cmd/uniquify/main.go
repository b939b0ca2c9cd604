// Command uniquify deduplicates newline-separated records in a file and
// writes each distinct record to standard output exactly once.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/rpcpool/uniquify"
)

var gitCommitSHA = ""

func main() {
	defer klog.Flush()

	app := &cli.App{
		Name:        "uniquify",
		Version:     gitCommitSHA,
		Usage:       "deduplicate newline-separated records in a large file",
		ArgsUsage:   "<input-file>",
		Description: "Memory-maps <input-file>, deduplicates its newline-separated records across --workers goroutines, and writes each distinct record to standard output exactly once.",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "number of worker goroutines",
				Value:   uint(runtime.NumCPU()),
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "suppress the summary line on stderr",
				Value: false,
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		klog.Exit(err)
	}
}

func run(c *cli.Context) error {
	inputPath := c.Args().First()
	if inputPath == "" {
		return cli.Exit("missing required argument <input-file>", 2)
	}
	workers := int(c.Uint("workers"))

	started := time.Now()
	count, err := uniquify.Uniquify(inputPath, workers)
	if err != nil {
		return cli.Exit(fmt.Sprintf("uniquify: %v", err), 1)
	}

	if !c.Bool("quiet") {
		klog.Infof(
			"%s distinct records from %q in %s using %d workers",
			humanize.Comma(int64(count)), inputPath, time.Since(started).Round(time.Millisecond), workers,
		)
	}
	return nil
}
