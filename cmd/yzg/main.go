// Command yzg is a host binary embedding the yzg execution engine. It
// builds a small demo program with the program-builder API (there is no
// source file to parse — see SPEC_FULL.md §1), runs it, and reports the
// result or any uncaught exception.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yzg-lang/yzg/pkg/cell"
	"github.com/yzg-lang/yzg/pkg/engine"
	"github.com/yzg-lang/yzg/pkg/enginelog"
	"github.com/yzg-lang/yzg/pkg/hostconfig"
	"github.com/yzg-lang/yzg/pkg/program"
)

func main() {
	configPath := flag.String("config", "", "path to a host config YAML file")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	if err := enginelog.Init(*logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		f, err := hostconfig.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = f.ToEngineConfig()
	}

	b := program.New(cfg)
	fnIndex := buildSumToTenProgram(b)
	b.Finish()

	result := b.Ctx.Call(fnIndex, nil)
	if msg, ok := b.Ctx.GetException(); ok {
		b.Ctx.StackWalk()
		fmt.Fprintln(os.Stderr, "uncaught exception:", msg)
		os.Exit(1)
	}
	fmt.Println(cell.ToInt32(result))
}

// buildSumToTenProgram assembles a function equivalent to:
//
//	function sumToTen() {
//	    total := 0
//	    for i in 0..10 {
//	        total = total + i
//	    }
//	    return total
//	}
func buildSumToTenProgram(b *program.Builder) int {
	at := engine.LineInfo{File: "demo", Line: 1}
	frame := program.NewFrame()
	totalOff := frame.ReserveTyped(cell.TInt32)
	iOff := frame.ReserveTyped(cell.TInt32)

	totalAddr := func() engine.Node { return engine.NewLocalRef(totalOff, at) }

	body := engine.NewBlock([]engine.Node{
		engine.NewInitLocal(totalOff, 4, at),
		engine.NewAssign(totalAddr(), engine.NewConstantInt32(0, at), cell.TInt32, at),
		engine.NewFor(
			b.Ctx,
			[]engine.Iterator{engine.NewRangeIterator(0, 10, 1)},
			[]int64{iOff},
			[]cell.Type{cell.TInt32},
			engine.NewAssign(
				totalAddr(),
				engine.NewBinaryOp(engine.OpAdd,
					engine.NewLocalGet(totalOff, cell.TInt32, at),
					engine.NewLocalGet(iOff, cell.TInt32, at),
					cell.TInt32, at),
				cell.TInt32, at),
			at,
		),
		engine.NewReturn(engine.NewLocalGet(totalOff, cell.TInt32, at), at),
	}, at)

	return b.DefineFunction("sumToTen", body, frame, 1)
}
