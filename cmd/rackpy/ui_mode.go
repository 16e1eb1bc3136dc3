package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// uiMode is the --ui flag; the zero value is auto.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

var uiModeNames = [...]string{uiAuto: "auto", uiOn: "on", uiOff: "off"}

var _ pflag.Value = (*uiMode)(nil)

func (m uiMode) String() string { return uiModeNames[m] }

func (m *uiMode) Set(value string) error {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		*m = uiAuto
		return nil
	}
	i := slices.Index(uiModeNames[:], value)
	if i < 0 {
		return fmt.Errorf("expected %s", strings.Join(uiModeNames[:], "|"))
	}
	*m = uiMode(i)
	return nil
}

func (m *uiMode) Type() string { return "mode" }

func addUIFlag(fs *pflag.FlagSet) {
	mode := uiAuto
	fs.Var(&mode, "ui", "progress UI (auto|on|off)")
}

// wantTUI решает, показывать ли прогресс. Прогресс рисуется в stderr, чтобы
// stdout оставался чистым Python; --quiet его отключает.
func wantTUI(cmd *cobra.Command, quiet bool) (bool, error) {
	f := cmd.Flags().Lookup("ui")
	if f == nil {
		return false, nil
	}
	mode, ok := f.Value.(*uiMode)
	if !ok {
		return false, fmt.Errorf("ui flag has type %s", f.Value.Type())
	}
	switch *mode {
	case uiOn:
		return true, nil
	case uiOff:
		return false, nil
	}
	return !quiet && isTerminal(os.Stderr), nil
}
