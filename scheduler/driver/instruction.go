package driver

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type Mnemonic string

const (
	MnemonicInit    Mnemonic = "in"
	MnemonicCreate  Mnemonic = "cr"
	MnemonicDestroy Mnemonic = "de"
	MnemonicRequest Mnemonic = "rq"
	MnemonicRelease Mnemonic = "rl"
	MnemonicTimeout Mnemonic = "to"
)

// Number of integer arguments each known mnemonic takes.
var arity = map[Mnemonic]int{
	MnemonicInit:    0,
	MnemonicCreate:  1,
	MnemonicDestroy: 1,
	MnemonicRequest: 2,
	MnemonicRelease: 2,
	MnemonicTimeout: 0,
}

// Instruction is one parsed input line.
type Instruction struct {
	Line     int // 1-based line number in the input
	Mnemonic Mnemonic
	Args     []int
}

// Known reports whether the mnemonic maps to an engine operation.
// Unknown instructions still produce a result, always -1.
func (i Instruction) Known() bool {
	_, ok := arity[i.Mnemonic]
	return ok
}

func (i Instruction) String() string {
	parts := []string{string(i.Mnemonic)}
	for _, a := range i.Args {
		parts = append(parts, strconv.Itoa(a))
	}
	return strings.Join(parts, " ")
}

// Batch is a run of instructions between blank lines.
type Batch struct {
	Instructions []Instruction
}

// ParseError reports a line that names a known mnemonic with missing or
// non-integer arguments.
type ParseError struct {
	Line int
	Text string
	msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.msg)
}

// ParseLine parses one non-blank line. Extra arguments are ignored.
func ParseLine(line int, text string) (Instruction, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Instruction{}, &ParseError{Line: line, Text: text, msg: "empty instruction"}
	}
	inst := Instruction{Line: line, Mnemonic: Mnemonic(fields[0])}
	n, ok := arity[inst.Mnemonic]
	if !ok {
		return inst, nil
	}
	if len(fields)-1 < n {
		return Instruction{}, &ParseError{Line: line, Text: text,
			msg: fmt.Sprintf("%s takes %d argument(s), got %d", inst.Mnemonic, n, len(fields)-1)}
	}
	for _, f := range fields[1 : n+1] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Instruction{}, &ParseError{Line: line, Text: text, msg: fmt.Sprintf("invalid argument %q", f)}
		}
		inst.Args = append(inst.Args, v)
	}
	return inst, nil
}

// Parse splits the input into batches. Consecutive blank lines never produce
// an empty batch.
func Parse(in io.Reader) ([]Batch, error) {
	var batches []Batch
	var cur Batch
	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			if len(cur.Instructions) > 0 {
				batches = append(batches, cur)
				cur = Batch{}
			}
			continue
		}
		inst, err := ParseLine(line, text)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		cur.Instructions = append(cur.Instructions, inst)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading input after line %d", line)
	}
	if len(cur.Instructions) > 0 {
		batches = append(batches, cur)
	}
	return batches, nil
}
