package cli

import (
	"strings"

	"github.com/alexanderramin/kboard/internal/domain"
	"github.com/spf13/pflag"
)

// sortFlag is a --sort value restricted to the known sort modes.
type sortFlag struct {
	mode *domain.SortMode
}

var _ pflag.Value = sortFlag{}

func newSortFlag(mode *domain.SortMode) sortFlag {
	*mode = domain.SortNone
	return sortFlag{mode: mode}
}

func (f sortFlag) String() string {
	if f.mode == nil {
		return string(domain.SortNone)
	}
	return string(*f.mode)
}

func (f sortFlag) Set(s string) error {
	m, err := domain.ParseSortMode(s)
	if err != nil {
		return err
	}
	*f.mode = m
	return nil
}

func (f sortFlag) Type() string {
	return "mode"
}

func sortModeNames() string {
	names := make([]string, 0, len(domain.ValidSortModes))
	for _, m := range domain.ValidSortModes {
		names = append(names, string(m))
	}
	return strings.Join(names, "|")
}
