package driver

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	uuid "github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/twitter/procsched/common/stats"
	"github.com/twitter/procsched/scheduler/domain"
)

// Scheduler is the set of engine operations an instruction can invoke.
type Scheduler interface {
	Init() domain.Pid
	Create(priority domain.Priority) (domain.Pid, error)
	Destroy(pid domain.Pid) (domain.Pid, error)
	Request(rid domain.Rid, units int) (domain.Pid, error)
	Release(rid domain.Rid, units int) (domain.Pid, error)
	Timeout() domain.Pid
}

// Runner executes batches against one Scheduler, resetting it at the start
// of every batch.
type Runner struct {
	sched Scheduler
	stat  stats.StatsReceiver
}

func NewRunner(sched Scheduler, stat stats.StatsReceiver) *Runner {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Runner{sched: sched, stat: stat}
}

// Execute runs one instruction. Unknown mnemonics return NoPid and no error.
func (r *Runner) Execute(inst Instruction) (domain.Pid, error) {
	switch inst.Mnemonic {
	case MnemonicInit:
		return r.sched.Init(), nil
	case MnemonicCreate:
		return r.sched.Create(domain.Priority(inst.Args[0]))
	case MnemonicDestroy:
		return r.sched.Destroy(domain.Pid(inst.Args[0]))
	case MnemonicRequest:
		return r.sched.Request(domain.Rid(inst.Args[0]), inst.Args[1])
	case MnemonicRelease:
		return r.sched.Release(domain.Rid(inst.Args[0]), inst.Args[1])
	case MnemonicTimeout:
		return r.sched.Timeout(), nil
	}
	return domain.NoPid, nil
}

// step executes inst and records it, returning the result to print.
func (r *Runner) step(logger log.FieldLogger, inst Instruction) domain.Pid {
	r.stat.Counter(stats.DriverInstructionCounter).Inc(1)
	pid, err := r.Execute(inst)
	entry := logger.WithFields(log.Fields{"line": inst.Line, "instruction": inst.String()})
	switch {
	case err != nil:
		entry.Debugf("rejected: %v", err)
	case !inst.Known():
		entry.Debug("unknown instruction")
	default:
		entry.Debugf("running %d", pid)
	}
	if pid == domain.NoPid {
		r.stat.Counter(stats.DriverFailedInstructionCounter).Inc(1)
	}
	return pid
}

// RunBatch resets the scheduler and runs every instruction of b.
func (r *Runner) RunBatch(b Batch) []domain.Pid {
	defer r.stat.Latency(stats.DriverBatchLatency_ms).Time().Stop()
	r.stat.Counter(stats.DriverBatchCounter).Inc(1)

	logger := log.WithField("batch", generateBatchId())
	logger.Debugf("starting batch of %d instruction(s)", len(b.Instructions))
	r.sched.Init()

	results := make([]domain.Pid, 0, len(b.Instructions))
	for _, inst := range b.Instructions {
		results = append(results, r.step(logger, inst))
	}
	logger.Debugf("batch done: %s", FormatResults(results))
	return results
}

func (r *Runner) RunBatches(batches []Batch) [][]domain.Pid {
	out := make([][]domain.Pid, 0, len(batches))
	for _, b := range batches {
		out = append(out, r.RunBatch(b))
	}
	return out
}

// Run parses all of in, runs it, then writes the results to out.
// Nothing is written if the input does not parse.
func (r *Runner) Run(in io.Reader, out io.Writer, format OutputFormat) error {
	batches, err := Parse(in)
	if err != nil {
		return err
	}
	log.Infof("running %d batch(es)", len(batches))
	if err := WriteResults(out, r.RunBatches(batches), format); err != nil {
		return NewOutputError(err)
	}
	return nil
}

// RunFile is Run on named files. The output file is only created once the
// input has been read and parsed.
func (r *Runner) RunFile(inPath, outPath string, format OutputFormat) error {
	f, err := os.Open(inPath)
	if err != nil {
		return errors.Wrapf(err, "opening input file %s", inPath)
	}
	defer f.Close()

	batches, err := Parse(f)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", inPath)
	}
	results := r.RunBatches(batches)

	out, err := os.Create(outPath)
	if err != nil {
		return NewOutputError(err)
	}
	w := bufio.NewWriter(out)
	err = WriteResults(w, results, format)
	if err == nil {
		err = w.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return NewOutputError(err)
	}
	log.Infof("wrote %d batch result(s) to %s", len(results), outPath)
	return nil
}

// Shell reads instructions from in and writes each result to out as soon as
// it is known. A blank line ends the current batch, the next instruction
// starts a new one on a reset scheduler. "quit" or end of input stops the shell.
func (r *Runner) Shell(in io.Reader, out io.Writer, prompt string) error {
	scanner := bufio.NewScanner(in)
	logger := log.WithField("batch", generateBatchId())
	fresh := true
	line := 0
	for {
		if _, err := io.WriteString(out, prompt); err != nil {
			return NewOutputError(err)
		}
		if !scanner.Scan() {
			break
		}
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "quit" {
			return nil
		}
		if text == "" {
			fresh = true
			continue
		}
		inst, err := ParseLine(line, text)
		if err != nil {
			if _, werr := fmt.Fprintf(out, "error: %v\n", err); werr != nil {
				return NewOutputError(werr)
			}
			continue
		}
		if fresh {
			r.stat.Counter(stats.DriverBatchCounter).Inc(1)
			logger = log.WithField("batch", generateBatchId())
			r.sched.Init()
			fresh = false
		}
		if _, err := fmt.Fprintf(out, "%d\n", r.step(logger, inst)); err != nil {
			return NewOutputError(err)
		}
	}
	return errors.Wrap(scanner.Err(), "reading shell input")
}

// OutputError marks a failure to write results.
type OutputError struct {
	err error
}

// NewOutputError wraps a write failure, nil stays nil.
func NewOutputError(err error) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(&OutputError{err})
}

func (e *OutputError) Error() string {
	return "writing output: " + e.err.Error()
}

// IsOutputError reports whether err, or the error it wraps, is an OutputError.
func IsOutputError(err error) bool {
	_, ok := errors.Cause(err).(*OutputError)
	return ok
}

// IsInputNotFound reports whether err comes from a missing input file.
func IsInputNotFound(err error) bool {
	return err != nil && os.IsNotExist(errors.Cause(err))
}

func generateBatchId() string {
	id, err := uuid.NewV4()
	for err != nil {
		id, err = uuid.NewV4()
	}
	return id.String()
}
