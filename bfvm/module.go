package bfvm

import (
	"github.com/reusee/bft/cmds"
	"github.com/reusee/bft/configs"
	"github.com/reusee/bft/logs"
	"github.com/reusee/bft/vars"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

var (
	cellsFlag    = cmds.Var[int]("-cells")
	growableFlag = cmds.Switch("-growable")
)

type TapeCells int

func (TapeCells) ConfigExpr() string {
	return "TapeCells"
}

var _ configs.Configurable = TapeCells(0)

type TapeGrowable bool

func (TapeGrowable) ConfigExpr() string {
	return "TapeGrowable"
}

var _ configs.Configurable = TapeGrowable(false)

func (Module) TapeCells(
	loader configs.Loader,
	logger logs.Logger,
) (ret TapeCells) {
	defer func() {
		logger.Debug("tape", "cells", ret)
	}()
	return vars.FirstNonZero(
		TapeCells(vars.DerefOrZero(cellsFlag)),
		configs.First[TapeCells](loader, "tape.cells"),
		TapeCells(DefaultTapeCells),
	)
}

func (Module) TapeGrowable(
	loader configs.Loader,
) TapeGrowable {
	if *growableFlag {
		return true
	}
	return configs.First[TapeGrowable](loader, "tape.growable")
}

// NewByteVM builds a fresh uint8-cell VM per run, with the configured
// tape and the scope's logger.
type NewByteVM func() *VM[uint8]

func (Module) NewByteVM(
	cells TapeCells,
	growable TapeGrowable,
	logger logs.Logger,
) NewByteVM {
	return func() *VM[uint8] {
		vm := NewVM[uint8](int(cells), bool(growable))
		vm.Logger = logger
		return vm
	}
}
