package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/srcview/internal/config"
	"github.com/user/srcview/internal/symbol"
	"github.com/user/srcview/internal/ui"
)

func main() {
	mapFlag := flag.String("m", "", "Line map JSON file (addresses per source line)")
	baseFlag := flag.String("base", "", "Module load address (hex), overrides the line map's base")
	addrFlag := flag.String("a", "", "Select the line containing this address (hex)")
	lineFlag := flag.Int("g", 0, "Go to line number")
	mmapFlag := flag.Bool("mmap", false, "Read through a memory-mapped file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: srcview [-m linemap.json] [-base addr] [-a addr] [-g line] <file>\n")
		fmt.Fprintf(os.Stderr, "  -m\tLine map JSON produced by a symbol dumper\n")
		fmt.Fprintf(os.Stderr, "  -base\tModule load address (e.g. 0x140000000)\n")
		fmt.Fprintf(os.Stderr, "  -a\tSelect the line containing this address\n")
		fmt.Fprintf(os.Stderr, "  -g\tGo to line number\n")
		fmt.Fprintf(os.Stderr, "  -mmap\tRead through a memory-mapped file\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *mmapFlag {
		cfg.Display.UseMmap = true
	}

	var resolver symbol.Resolver = symbol.None{}
	var modBase uint64
	if *mapFlag != "" {
		lm, err := symbol.LoadLineMap(*mapFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		resolver = lm
		modBase = lm.ModuleBase()
	}
	if *baseFlag != "" {
		base, err := strconv.ParseUint(*baseFlag, 0, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad -base %q\n", *baseFlag)
			os.Exit(1)
		}
		modBase = base
	}

	var selectAddr uint64
	if *addrFlag != "" {
		addr, err := strconv.ParseUint(*addrFlag, 0, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad -a %q\n", *addrFlag)
			os.Exit(1)
		}
		selectAddr = addr
	}

	model, err := ui.NewModel(ui.ModelOptions{
		Filepath:   flag.Arg(0),
		Config:     cfg,
		Resolver:   resolver,
		ModBase:    modBase,
		SelectAddr: selectAddr,
		GotoLine:   *lineFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
