package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/reusee/bft/bfcode"
	"github.com/reusee/bft/bfvm"
	"github.com/reusee/bft/cmds"
	"github.com/reusee/bft/debugs"
	"github.com/reusee/bft/logs"
	"github.com/reusee/bft/modes"
	"github.com/reusee/bft/nets"
	"github.com/reusee/bft/syncs"
	"github.com/reusee/dscope"
)

var (
	files   = cmds.Collect[string]("-file")
	evalSrc = cmds.Var[string]("-eval")
	dump    = cmds.Switch("-dump")
	tap     = cmds.Switch("-tap")
	jobs    = cmds.Var[int]("-jobs")
)

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		newSpan logs.NewSpan,
		newVM bfvm.NewByteVM,
		httpClient nets.HTTPClient,
		tapState debugs.Tap,
	) {
		ctx, _ := newSpan(ctx, "")

		var progs []*bfcode.Program
		if *evalSrc != "" {
			progs = append(progs, bfcode.Tokenize("eval", []byte(*evalSrc)))
		}
		for _, path := range *files {
			prog, err := loadProgram(httpClient, path)
			if err != nil {
				abort(err)
			}
			progs = append(progs, prog)
		}
		if len(progs) == 0 {
			prog, err := bfcode.LoadReader("stdin", os.Stdin)
			if err != nil {
				abort(err)
			}
			progs = append(progs, prog)
		}

		// fail fast: no program executes unless all validate
		for _, prog := range progs {
			if err := prog.Validate(); err != nil {
				abort(err)
			}
		}

		if *dump {
			for _, prog := range progs {
				for _, inst := range prog.Instructions {
					fmt.Printf("%s:%s\n", prog.Source, inst)
				}
			}
			return
		}

		run := func(prog *bfcode.Program) (*bfvm.VM[uint8], error) {
			vm := newVM()
			if err := vm.Run(prog); err != nil {
				return nil, fmt.Errorf("%s: %w", prog.Source, err)
			}
			return vm, nil
		}

		if len(progs) == 1 {
			vm, err := run(progs[0])
			if err != nil {
				abort(err)
			}
			if *tap {
				tapState(ctx, progs[0].Source, map[string]any{
					"source": progs[0].Source,
					"cells":  vm.Tape.Cells(),
					"head":   vm.Tape.Head(),
					"steps":  vm.Steps,
				})
			}
			return
		}

		// independent programs, one tape each
		sem := syncs.NewSemaphore(max(*jobs, 1))
		var wg sync.WaitGroup
		errs := make([]error, len(progs))
		for i, prog := range progs {
			wg.Add(1)
			sem.Acquire()
			go func() {
				defer wg.Done()
				defer sem.Release()
				if _, err := run(prog); err != nil {
					logger.ErrorContext(ctx, "run failed", "error", logs.WrapSpan(ctx, err))
					errs[i] = err
				}
			}()
		}
		wg.Wait()

		failed := false
		for _, err := range errs {
			if err != nil {
				failed = true
				os.Stderr.WriteString(err.Error())
				os.Stderr.WriteString("\n")
			}
		}
		if failed {
			os.Exit(1)
		}
	})
}

func loadProgram(httpClient nets.HTTPClient, path string) (*bfcode.Program, error) {
	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") {
		resp, err := httpClient.Get(path)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != 200 {
			return nil, fmt.Errorf("fetch %s: %s", path, resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return bfcode.Tokenize(path, data), nil
	}
	return bfcode.LoadFile(path)
}

func abort(err error) {
	os.Stderr.WriteString(err.Error())
	os.Stderr.WriteString("\n")
	os.Exit(1)
}
