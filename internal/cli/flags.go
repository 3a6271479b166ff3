package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/basekit/internal/domain"
	"github.com/alexanderramin/basekit/internal/repository"
	"github.com/spf13/pflag"
)

// Enum flags validate at parse time so bad input fails before any service
// call.
var (
	_ pflag.Value = (*priorityFlag)(nil)
	_ pflag.Value = (*statusFlag)(nil)
	_ pflag.Value = (*valueTypeFlag)(nil)
	_ pflag.Value = (*stageOrderFlag)(nil)
)

type priorityFlag struct{ v domain.Priority }

func (f *priorityFlag) String() string { return f.v.Label() }
func (f *priorityFlag) Type() string   { return "priority" }
func (f *priorityFlag) Set(s string) error {
	p, err := domain.ParsePriority(s)
	if err != nil {
		return err
	}
	f.v = p
	return nil
}

type statusFlag struct{ v domain.Status }

func (f *statusFlag) String() string { return string(f.v) }
func (f *statusFlag) Type() string   { return "status" }
func (f *statusFlag) Set(s string) error {
	st, err := domain.ParseStatus(s)
	if err != nil {
		return err
	}
	f.v = st
	return nil
}

type valueTypeFlag struct{ v domain.ValueType }

func (f *valueTypeFlag) String() string { return string(f.v) }
func (f *valueTypeFlag) Type() string   { return "type" }
func (f *valueTypeFlag) Set(s string) error {
	t := domain.ValueType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		names := make([]string, 0, len(domain.ValueTypes))
		for _, vt := range domain.ValueTypes {
			names = append(names, string(vt))
		}
		return fmt.Errorf("invalid value type %q (expected one of %s)", s, strings.Join(names, ", "))
	}
	f.v = t
	return nil
}

type stageOrderFlag struct{ v repository.StageOrder }

func (f *stageOrderFlag) String() string {
	if f.v == repository.StageOrderNatural {
		return "sequence"
	}
	return string(f.v)
}
func (f *stageOrderFlag) Type() string { return "order" }
func (f *stageOrderFlag) Set(s string) error {
	o, err := repository.ParseStageOrder(s)
	if err != nil {
		return err
	}
	f.v = o
	return nil
}
