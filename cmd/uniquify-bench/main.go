// Command uniquify-bench measures how Uniquify's throughput scales with
// worker count over synthetic input. It is a thin external collaborator:
// per SPEC_FULL.md's resolution of spec.md §9's open question, it calls
// only the single documented Uniquify(path, workerCount) entry point —
// no UniquifyToStdout or vector-returning sibling is inferred or added.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"

	"github.com/rpcpool/uniquify"
)

func main() {
	app := &cli.App{
		Name:  "uniquify-bench",
		Usage: "benchmark Uniquify's scaling across worker counts",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "lines", Aliases: []string{"l"}, Value: 30_000_000, Usage: "number of lines to generate"},
			&cli.UintFlag{Name: "max-length", Aliases: []string{"m"}, Value: 16, Usage: "maximum length of a generated string"},
			&cli.UintFlag{Name: "unique-strings", Aliases: []string{"u"}, Value: 1_000_000, Usage: "number of distinct strings to draw lines from"},
			&cli.UintFlag{Name: "repeat", Aliases: []string{"r"}, Value: 3, Usage: "number of timed repetitions averaged per worker count"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		klog.Exit(err)
	}
}

func run(c *cli.Context) error {
	lines := int(c.Uint("lines"))
	maxLen := int(c.Uint("max-length"))
	uniqueStrings := int(c.Uint("unique-strings"))
	repeat := int(c.Uint("repeat"))

	if lines < uniqueStrings {
		return cli.Exit("--lines must be >= --unique-strings", 1)
	}

	path, err := generateInput(lines, maxLen, uniqueStrings)
	if err != nil {
		return cli.Exit(fmt.Sprintf("generating input: %v", err), 1)
	}
	defer os.Remove(path)

	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening %s: %v", os.DevNull, err), 1)
	}
	defer devNull.Close()

	realStdout := os.Stdout
	os.Stdout = devNull
	defer func() { os.Stdout = realStdout }()

	for workers := 1; workers <= runtime.NumCPU(); workers++ {
		var total time.Duration
		for i := 0; i < repeat; i++ {
			start := time.Now()
			count, err := uniquify.Uniquify(path, workers)
			total += time.Since(start)
			if err != nil {
				return cli.Exit(fmt.Sprintf("uniquify: %v", err), 1)
			}
			if int(count) != uniqueStrings {
				return cli.Exit(fmt.Sprintf("worker=%d: got %d distinct records, want %d", workers, count, uniqueStrings), 1)
			}
		}
		avg := total / time.Duration(repeat)
		fmt.Fprintf(realStdout, "%2d worker(s): avg %s (%s lines/s)\n",
			workers, avg.Round(time.Millisecond), humanize.Comma(int64(float64(lines)/avg.Seconds())))
	}
	return nil
}

// generateInput draws lines random strings (length 1..maxLen) from a pool
// of uniqueStrings distinct values and writes them newline-separated to a
// temp file, returning its path.
func generateInput(lines, maxLen, uniqueStrings int) (string, error) {
	f, err := os.CreateTemp("", "uniquify-bench-*.txt")
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	pool := make([]string, uniqueStrings)
	seen := make(map[string]bool, uniqueStrings)
	for i := range pool {
		for {
			s := randomString(rng, maxLen)
			if !seen[s] {
				seen[s] = true
				pool[i] = s
				break
			}
		}
	}

	for i := 0; i < lines; i++ {
		var s string
		if i < uniqueStrings {
			s = pool[i]
		} else {
			s = pool[rng.Intn(uniqueStrings)]
		}
		if _, err := w.WriteString(s); err != nil {
			return "", err
		}
		if err := w.WriteByte('\n'); err != nil {
			return "", err
		}
	}
	if err := w.Flush(); err != nil {
		return "", err
	}
	return f.Name(), nil
}

func randomString(rng *rand.Rand, maxLen int) string {
	length := rng.Intn(maxLen) + 1
	b := make([]byte, length)
	for i := range b {
		b[i] = byte('a' + rng.Intn(26))
	}
	return string(b)
}
