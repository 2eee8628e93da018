// Package seqtool implements the seqtool command, a line filter built on seqkit iterators.
package seqtool

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/iterkit"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/seqkit/pkg/iterator"
	"go.llib.dev/seqkit/pkg/result"
)

// ErrNoRecords is the failure of first, last and max when the pipeline yields nothing.
// It wraps the iterator.NotFoundError or iterator.EmptyError behind it.
const ErrNoRecords errorkit.Error = "no records"

// Operations accepted as the first argument of Command.
const (
	OpList  = "list"
	OpCount = "count"
	OpFirst = "first"
	OpLast  = "last"
	OpMax   = "max"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Command reads newline separated records from its input,
// passes them through a Where, Map, Skip, Take pipeline and runs Operation on the outcome.
type Command struct {
	Skip   int    `flag:"skip" default:"0" desc:"number of records to leave out from the start"`
	Take   int    `flag:"take" default:"-1" desc:"maximum number of records, negative means no limit"`
	Match  string `flag:"match" desc:"keep only the records that contain this text"`
	Upper  bool   `flag:"upper" desc:"upper case the records"`
	Number bool   `flag:"number" desc:"prefix listed records with their position"`
	JSON   bool   `flag:"json" desc:"print the output as JSON"`

	Operation string `arg:"0" default:"list" desc:"list, count, first, last or max"`

	Logger *logging.Logger
}

type record struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

func (cmd Command) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := r.Context()
	if cmd.Skip < 0 {
		cmd.fail(ctx, w, cli.ExitCodeBadRequest, fmt.Errorf("--skip must not be negative, got %d", cmd.Skip))
		return
	}

	lines, scanErr := iterkit.SplitErrSeq[string](iterkit.BufioScanner[string](bufio.NewScanner(r.Body), nil))
	source := iterator.FromSeq(lines)
	defer source.Close()

	records := cmd.pipeline(source)
	cmd.logger().Debug(ctx, "running seqtool",
		logging.Field("operation", cmd.Operation),
		logging.Field("skip", cmd.Skip),
		logging.Field("take", cmd.Take))

	var (
		out any
		err error
	)
	switch cmd.Operation {
	case OpList:
		out = cmd.list(records)
	case OpCount:
		out = iterator.Count[string](records)
	case OpFirst:
		out, err = cmd.single(ctx, iterator.First[string](records))
	case OpLast:
		out, err = cmd.single(ctx, iterator.Last[string](records))
	case OpMax:
		out, err = cmd.single(ctx, iterator.Max[string](records))
	default:
		cmd.fail(ctx, w, cli.ExitCodeBadRequest, fmt.Errorf("unknown operation: %q", cmd.Operation))
		return
	}
	source.Close()
	err = errorkit.Merge(err, scanErr())
	if err != nil {
		cmd.fail(ctx, w, cli.ExitCodeError, err)
		return
	}
	if err := cmd.write(w, out); err != nil {
		cmd.fail(ctx, w, cli.ExitCodeError, err)
		return
	}
	w.ExitCode(cli.ExitCodeOK)
}

func (cmd Command) pipeline(source iterator.Iterator[string]) iterator.Indexable[string] {
	var records = source
	if cmd.Match != "" {
		records = iterator.Where(records, func(line string) bool {
			return strings.Contains(line, cmd.Match)
		})
	}
	if cmd.Upper {
		records = iterator.Map(records, strings.ToUpper)
	}
	records = iterator.Skip(records, cmd.Skip)
	if 0 <= cmd.Take {
		records = iterator.Take(records, cmd.Take)
	}
	return iterator.Indexed(records)
}

func (cmd Command) list(records iterator.Indexable[string]) any {
	if !cmd.Number {
		return iterator.Collect[string](records)
	}
	out := make([]record, 0)
	for records.Start(); records.HasCurrent(); records.Next() {
		out = append(out, record{Index: records.CurrentIndex(), Value: records.Current()})
	}
	return out
}

func (cmd Command) single(ctx context.Context, r *result.Result[string]) (string, error) {
	r = result.ConvertErrorAs(r, func(err *iterator.NotFoundError) error {
		return ErrNoRecords.Wrap(err)
	})
	r = result.ConvertErrorAs(r, func(err *iterator.EmptyError) error {
		return ErrNoRecords.Wrap(err)
	})
	r = r.OnError(func(err error) {
		cmd.logger().Debug(ctx, "no record matched", logging.ErrField(err))
	}, result.Is(ErrNoRecords))
	return r.Await()
}

func (cmd Command) write(w io.Writer, out any) error {
	if cmd.JSON {
		return json.NewEncoder(w).Encode(out)
	}
	var lines []string
	switch out := out.(type) {
	case []string:
		lines = out
	case []record:
		for _, rec := range out {
			lines = append(lines, strconv.Itoa(rec.Index)+"\t"+rec.Value)
		}
	case int:
		lines = []string{strconv.Itoa(out)}
	case string:
		lines = []string{out}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (cmd Command) fail(ctx context.Context, w cli.Response, code int, err error) {
	if code == cli.ExitCodeError && !errors.Is(err, ErrNoRecords) {
		cmd.logger().Error(ctx, "seqtool failed", logging.ErrField(err))
	} else {
		cmd.logger().Warn(ctx, "seqtool rejected the run", logging.ErrField(err))
	}
	w.ExitCode(code)
	var out io.Writer = w
	if ew, ok := w.(cli.ErrorWriter); ok && ew.Stderr() != nil {
		out = ew.Stderr()
	}
	fmt.Fprintln(out, err.Error())
}

func (cmd Command) logger() *logging.Logger {
	if cmd.Logger != nil {
		return cmd.Logger
	}
	return &logging.Logger{Out: io.Discard}
}
