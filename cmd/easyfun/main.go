package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/robertkrimen/isatty"
	"github.com/trackscript/easyfun/funlib"
	"github.com/trackscript/easyfun/scanner"
	"github.com/trackscript/easyfun/util/logger"
)

func main() {
	file := flag.String("f", "", "script file to run, interactive input if empty")
	doc := flag.Bool("doc", false, "print the function reference and exit")
	quiet := flag.Bool("q", false, "no warnings from print()")
	debug := flag.Bool("debug", false, "debug logging")
	depth := flag.Int("depth", funlib.DefaultMaxFunctionDepth, "maximum depth of nested function macros")
	withMetrics := flag.Bool("metrics", false, "write the counters to stderr on exit")
	flag.Parse()

	if *doc {
		if err := funlib.Library().WriteDoc(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	log := logger.New(*debug)
	defer func() { _ = log.Sync() }()

	var metrics *funlib.Metrics
	if *withMetrics {
		metrics = funlib.NewMetrics()
	}
	ctx := funlib.NewContext(
		funlib.WithLogger(log),
		funlib.WithQuiet(*quiet),
		funlib.WithMaxDepth(*depth),
		funlib.WithMetrics(metrics),
	)
	sc := scanner.New(ctx, os.Stdout)

	var err error
	if *file != "" {
		err = sc.RunFile(*file)
	} else {
		err = repl(sc)
	}
	if metrics != nil {
		if err := metrics.WriteText(os.Stderr); err != nil {
			log.Errorf("can't write metrics: %v", err)
		}
	}
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	diag := ctx.Diagnostics()
	log.Debugf("%d warnings, %d errors", diag.Warnings(), diag.Errors())
	if diag.Errors() > 0 {
		os.Exit(2)
	}
}

func repl(sc *scanner.Scanner) error {
	isInputTty := isatty.Check(os.Stdin.Fd())
	if isInputTty {
		fmt.Println("easyfun interactive")
		fmt.Println("\\q to quit, \\v lists the global variables, easyfun -doc for the function reference")
	}
	prompt, morePrompt := "", ""
	if isInputTty {
		prompt, morePrompt = "> ", ". "
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       filepath.Join(os.TempDir(), ".easyfun-history"),
		InterruptPrompt:   "^C",
		EOFPrompt:         "bye!",
		HistorySearchFold: true,
	})
	if err != nil {
		return errors.Wrap(err, "can't start the line editor")
	}
	defer l.Close()

	ctx := sc.Context()
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "can't read input")
		}
		switch strings.TrimSpace(line) {
		case `\q`:
			return nil
		case `\v`:
			listGlobals(ctx)
			continue
		}
		collecting := sc.Pending()
		sc.ScanLine(line)
		if sc.Pending() {
			l.SetPrompt(morePrompt)
			continue
		}
		l.SetPrompt(prompt)
		trimmed := strings.TrimSpace(line)
		if !collecting && trimmed != "" && !strings.HasPrefix(trimmed, "@") && !strings.HasPrefix(trimmed, "#") {
			fmt.Println(ctx.Result().String())
		}
	}
	return nil
}

func listGlobals(ctx *funlib.Context) {
	vars := ctx.Global().Vars
	for _, name := range vars.Names() {
		v, _ := vars.Get(name)
		fmt.Printf("%s = %s\n", name, v.String())
	}
}
