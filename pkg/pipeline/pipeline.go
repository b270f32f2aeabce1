// Package pipeline runs a full LSUS computation: it loads and encodes the
// input, builds the suffix array and the arrays the chosen variant needs,
// computes LSUS and persists the requested arrays.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ssargent/sus/pkg/arrayio"
	"github.com/ssargent/sus/pkg/seqio"
	"github.com/ssargent/sus/pkg/suffix"
)

// Options configures a run
type Options struct {
	Input   string
	Limit   seqio.Limit
	Variant suffix.Variant

	// Output writes the LSUS array to <input base>.<width>.lsus.
	Output bool
	// Arrays also writes the decoded text (.bin), the suffix array
	// (.<width>.sa) and the BWT column (.bwt).
	Arrays bool
	// Check recomputes LSUS with an independent suffix array and IKX.
	Check bool
	// Print writes every LSUS value next to its text byte to Stdout.
	Print bool

	Stdout  io.Writer
	Logger  *slog.Logger
	Metrics *Metrics
}

// Result summarizes a finished run
type Result struct {
	Input     string
	Format    string
	Records   int
	Length    int
	Width     int
	Variant   suffix.Variant
	Outputs   []string
	Checked   bool
	StartedAt time.Time
	Duration  time.Duration
}

// RunWidth runs the pipeline with 32- or 64-bit indexes.
func RunWidth(ctx context.Context, bits int, opts Options) (*Result, error) {
	switch bits {
	case 32:
		return Run[uint32](ctx, opts)
	case 64:
		return Run[uint64](ctx, opts)
	default:
		return nil, errors.Wrapf(ErrUnsupportedWidth, "%d bits", bits)
	}
}

type runner struct {
	opts Options
	out  io.Writer
	log  *slog.Logger
}

// Run executes the pipeline with index type T.
func Run[T suffix.Index](ctx context.Context, opts Options) (res *Result, err error) {
	r := &runner{opts: opts, out: opts.Stdout, log: opts.Logger}
	if r.out == nil {
		r.out = io.Discard
	}
	if r.log == nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	defer func() { opts.Metrics.observeRun(err) }()

	width := arrayio.Width[T]()
	res = &Result{
		Input:     opts.Input,
		Width:     width,
		Variant:   opts.Variant,
		StartedAt: time.Now(),
	}

	format, compression, err := seqio.FormatOf(opts.Input)
	if err != nil {
		return nil, err
	}
	res.Format = format.String()
	r.log = r.log.With("input", opts.Input, "int_width", width*8)

	fmt.Fprintf(r.out, "k=%s\n", opts.Limit)

	var text []byte
	err = r.stage(ctx, "PREPROCESSING", func() error {
		store, err := seqio.Load(opts.Input, opts.Limit)
		if err != nil {
			return err
		}
		res.Records = store.Len()

		if err := checkSize[T](uint64(seqio.EncodedLen(store))); err != nil {
			return err
		}

		text, err = seqio.Encode(store)
		return err
	})
	if err != nil {
		return nil, err
	}

	n := len(text)
	res.Length = n
	opts.Metrics.observeInput(res.Records, n)
	r.log.Info("input encoded", "records", res.Records, "bytes", n)
	fmt.Fprintf(r.out, "N = %d bytes\n", n)
	fmt.Fprintf(r.out, "sizeof(int) = %d bytes\n", width)
	fmt.Fprintf(r.out, "MEM = %.2f GB\n", float64(n*opts.Variant.BytesPerSymbol(width))/(1<<30))

	total := time.Now()
	sa := make([]T, n)
	if err := r.stage(ctx, "SACAK", func() error {
		return suffix.BuildSA(text, sa)
	}); err != nil {
		return nil, err
	}

	var lsus []T
	if err := r.stage(ctx, opts.Variant.String(), func() error {
		var err error
		lsus, err = suffix.Compute(opts.Variant, text, sa)
		return err
	}); err != nil {
		return nil, err
	}

	fmt.Fprintln(r.out, "## TOTAL ##")
	opts.Metrics.observeStage("TOTAL", time.Since(total))

	base := outputBase(opts.Input, compression)
	if opts.Output {
		lsusBase := base + "." + strconv.Itoa(width)
		if err := arrayio.WriteTyped(lsus, lsusBase, "lsus"); err != nil {
			return nil, err
		}
		res.addOutput(opts.Metrics, arrayio.Path(lsusBase, "lsus"), n*width)
		fmt.Fprintf(r.out, "OUTPUT = %s\n", arrayio.Path(lsusBase, "lsus"))
	}

	if opts.Arrays {
		written := len(res.Outputs)
		decoded := text
		if opts.Print || opts.Check {
			decoded = bytes.Clone(text)
		}
		if err := writeArrays(base, decoded, sa, res, opts.Metrics); err != nil {
			return nil, err
		}
		for _, path := range res.Outputs[written:] {
			fmt.Fprintf(r.out, "OUTPUT = %s\n", path)
		}
	}

	if opts.Print {
		printLSUS(r.out, text, lsus)
	}

	if opts.Check {
		if err := check(r.out, text, lsus); err != nil {
			return nil, err
		}
		res.Checked = true
	}

	res.Duration = time.Since(res.StartedAt)
	r.log.Info("run finished", "duration", res.Duration, "outputs", len(res.Outputs))
	return res, nil
}

// stage runs fn as a named pipeline stage. It stops before fn when ctx is
// done.
func (r *runner) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "## %s ##\n", name)
	r.log.Debug("stage started", "stage", name)

	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	r.opts.Metrics.observeStage(name, elapsed)

	if err != nil {
		r.log.Error("stage failed", "stage", name, "error", err)
		return err
	}
	r.log.Debug("stage finished", "stage", name, "duration", elapsed)
	return nil
}

// checkSize rejects texts of n bytes that T cannot index.
func checkSize[T suffix.Index](n uint64) error {
	if limit := suffix.MaxLen[T](); n > limit {
		return &SizeLimitError{Length: n, Max: limit, Width: arrayio.Width[T]()}
	}
	return nil
}

// check recomputes LSUS from a fresh suffix array with the IKX variant and
// compares it with lsus.
func check[T suffix.Index](out io.Writer, text []byte, lsus []T) error {
	sa := make([]T, len(text))
	if err := suffix.BuildSA(text, sa); err != nil {
		return err
	}
	want, err := suffix.Compute(suffix.IKX, text, sa)
	if err != nil {
		return err
	}
	if i := mismatch(want, lsus); i >= 0 {
		fmt.Fprintln(out, "ERROR!")
		return errors.Wrapf(ErrCheckFailed, "LSUS[%d] = %d, want %d", i, lsus[i], want[i])
	}
	fmt.Fprintln(out, "OK!")
	return nil
}

func mismatch[T suffix.Index](want, got []T) int {
	for i := range want {
		if want[i] != got[i] {
			return i
		}
	}
	return -1
}

// writeArrays persists the suffix array, the BWT column and the decoded text.
// text is decoded in place, so it goes last and callers that still need the
// encoded text pass a copy.
func writeArrays[T suffix.Index](base string, text []byte, sa []T, res *Result, m *Metrics) error {
	width := arrayio.Width[T]()
	saBase := base + "." + strconv.Itoa(width)
	if err := arrayio.WriteTyped(sa, saBase, "sa"); err != nil {
		return err
	}
	res.addOutput(m, arrayio.Path(saBase, "sa"), len(sa)*width)

	if err := arrayio.WriteCyclicPredecessor(text, sa, base, "bwt"); err != nil {
		return err
	}
	res.addOutput(m, arrayio.Path(base, "bwt"), len(sa))

	if err := arrayio.WriteText(text, base, "bin"); err != nil {
		return err
	}
	res.addOutput(m, arrayio.Path(base, "bin"), len(text))
	return nil
}

func (res *Result) addOutput(m *Metrics, path string, bytes int) {
	res.Outputs = append(res.Outputs, path)
	m.observeOutput(strings.TrimPrefix(filepath.Ext(path), "."), bytes)
}

// outputBase strips the format extension, and the compression extension
// before it, from input.
func outputBase(input string, c seqio.Compression) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if c != seqio.CompressionNone {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

func printLSUS[T suffix.Index](w io.Writer, text []byte, lsus []T) {
	for i, c := range text {
		if c != seqio.Terminator && c != seqio.Separator {
			fmt.Fprintf(w, "LSUS[%d]: %d\t T[%d]: %s\n", i, lsus[i], i, []byte{c - 1})
		} else {
			fmt.Fprintf(w, "LSUS[%d]: %d\t T[%d]: %d\n", i, lsus[i], i, c)
		}
	}
}
