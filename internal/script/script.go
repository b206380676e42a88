// Package script loads YAML operation scripts and replays them against a
// slotvec.Vector, recording the outcome of every step.
package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/pavanmanishd/slotvec"
)

// OpKind names a vector operation in a script.
type OpKind string

const (
	OpInsert  OpKind = "insert"
	OpDelete  OpKind = "delete"
	OpRemove  OpKind = "remove"
	OpGet     OpKind = "get"
	OpGetMany OpKind = "get_many"
	OpCompact OpKind = "compact"
	OpReserve OpKind = "reserve"
	OpReset   OpKind = "reset"
)

var (
	ErrInvalidScript = errors.New("invalid script")
	ErrEmptyScript   = errors.New("empty script")
)

// Op is a single script step. Which fields apply depends on Op.
type Op struct {
	Op      OpKind  `yaml:"op"`
	Values  []int32 `yaml:"values,omitempty"`
	Indices []int   `yaml:"indices,omitempty"`
	Index   *int    `yaml:"index,omitempty"`
	Force   bool    `yaml:"force,omitempty"`
	N       *int    `yaml:"n,omitempty"`
}

// Script is a vector configuration followed by the operations to replay.
type Script struct {
	Capacity        int      `yaml:"capacity"`
	CompactionFloor *int     `yaml:"compaction_floor,omitempty"`
	CompactionRatio *float64 `yaml:"compaction_ratio,omitempty"`
	Ops             []Op     `yaml:"ops"`
}

// Load decodes and validates a script. Unknown keys are rejected.
func Load(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScript
		}

		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Validate reports every malformed step at once.
func (s *Script) Validate() error {
	var result *multierror.Error

	for i, op := range s.Ops {
		if err := op.validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("op %d: %w", i, err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	return nil
}

func (o Op) validate() error {
	switch o.Op {
	case OpInsert:
		if len(o.Values) == 0 {
			return errors.New("insert needs values")
		}
	case OpRemove, OpGet:
		if o.Index == nil {
			return fmt.Errorf("%s needs an index", o.Op)
		}
	case OpDelete, OpGetMany:
		if o.Indices == nil {
			return fmt.Errorf("%s needs indices", o.Op)
		}
	case OpReserve:
		if o.N == nil {
			return errors.New("reserve needs n")
		}
	case OpCompact, OpReset:
	case "":
		return errors.New("missing op")
	default:
		return fmt.Errorf("unknown op %q", o.Op)
	}

	return nil
}

func (s *Script) options(logger hclog.Logger) []slotvec.Option {
	opts := []slotvec.Option{slotvec.WithLogger(logger)}
	if s.CompactionFloor != nil {
		opts = append(opts, slotvec.WithCompactionFloor(*s.CompactionFloor))
	}

	if s.CompactionRatio != nil {
		opts = append(opts, slotvec.WithCompactionRatio(*s.CompactionRatio))
	}

	return opts
}

// Step is the recorded outcome of one operation and the vector state after it.
type Step struct {
	Op           OpKind  `json:"op"`
	Values       []int32 `json:"values,omitempty"`
	Error        string  `json:"error,omitempty"`
	Size         int     `json:"size"`
	Capacity     int     `json:"capacity"`
	MaxUsedIndex int     `json:"max_used_index"`
}

// Report is the result of a replay.
type Report struct {
	Steps   []Step                `json:"steps"`
	Failed  int                   `json:"failed"`
	Metrics slotvec.VectorMetrics `json:"metrics"`
}

// Run replays the script against a fresh vector. A failing step is recorded
// in the report and the replay continues; only an unusable configuration
// returns an error.
func (s *Script) Run(logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	v, err := slotvec.New(s.Capacity, s.options(logger)...)
	if err != nil {
		return nil, err
	}
	defer v.Release()

	report := &Report{Steps: make([]Step, 0, len(s.Ops))}

	for i, op := range s.Ops {
		values, err := apply(v, op)

		step := Step{
			Op:           op.Op,
			Values:       values,
			Size:         v.Size(),
			Capacity:     v.Capacity(),
			MaxUsedIndex: v.MaxUsedIndex(),
		}

		if err != nil {
			step.Error = err.Error()
			report.Failed++

			logger.Warn("step failed", "step", i, "op", op.Op, "error", err)
		} else {
			logger.Debug("step applied", "step", i, "op", op.Op, "size", step.Size)
		}

		report.Steps = append(report.Steps, step)
	}

	report.Metrics = v.Metrics()

	return report, nil
}

func apply(v *slotvec.Vector, op Op) ([]int32, error) {
	switch op.Op {
	case OpInsert:
		for _, x := range op.Values {
			if err := v.Insert(x); err != nil {
				return nil, err
			}
		}
	case OpDelete:
		return nil, v.DeleteMany(op.Indices)
	case OpRemove:
		return nil, v.RemoveAt(*op.Index)
	case OpGet:
		x, err := v.Get(*op.Index)
		if err != nil {
			return nil, err
		}

		return []int32{x}, nil
	case OpGetMany:
		return v.GetMany(op.Indices)
	case OpCompact:
		v.Compact(op.Force)
	case OpReserve:
		return nil, v.Reserve(*op.N)
	case OpReset:
		v.Reset()
	default:
		return nil, fmt.Errorf("unknown op %q", op.Op)
	}

	return nil, nil
}
