package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/scicalc"
)

var evalFlags struct {
	in, verb, mode string
	given          []string
	lines, echo    bool
	prec           uint
}

var evalCmd = &cobra.Command{
	Use:   "eval [expression...]",
	Short: "Evaluate expressions",
	Long: `Evaluate each argument as an expression and print its result. With no
arguments, read expressions from stdin.

Each result becomes Ans for the next expression, so a chain of expressions
can build on one another.`,
	Example: `  scicalc eval '2sin(30)+√16'
  scicalc eval --mode rad 'cos(π)'
  scicalc eval --given A=5 '2A' 'A²'
  printf '3→B\n2B\n' | scicalc eval -n`,
	RunE: runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringVar(&evalFlags.in, "in", "", "input file (default stdin if no args given)")
	f.StringVar(&evalFlags.verb, "fmt", "", "result formatting verb, like %g (default the configured display)")
	f.StringVar(&evalFlags.mode, "mode", "", "angle mode: deg, rad, or gra (default the configured mode)")
	f.StringArrayVar(&evalFlags.given, "given", nil, "REG=expr register definition (any number of times)")
	f.UintVarP(&evalFlags.prec, "precision", "p", 0, "precision of calculations in bits (default the configured precision)")
	f.BoolVarP(&evalFlags.lines, "lines", "n", false, "parse separate input lines as separate expressions")
	f.BoolVar(&evalFlags.echo, "echo", false, "print parse trees")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	opts := cfg.ContextOptions()
	if evalFlags.prec != 0 {
		opts = append(opts, scicalc.Prec(evalFlags.prec))
	}
	if evalFlags.mode != "" {
		m, ok := scicalc.ParseAngleMode(evalFlags.mode)
		if !ok {
			return fmt.Errorf("unknown angle mode %q", evalFlags.mode)
		}
		opts = append(opts, scicalc.Mode(m))
	}
	ctx := scicalc.NewContext(opts...)
	for _, d := range evalFlags.given {
		if err := given(ctx, d); err != nil {
			return err
		}
	}

	var srcs []string
	f, err := infile(evalFlags.in, len(args) == 0)
	if err != nil {
		return err
	}
	if f != nil {
		defer f.Close()
		s, err := readExprs(f, evalFlags.lines)
		if err != nil {
			return err
		}
		srcs = append(srcs, s...)
	}
	srcs = append(srcs, args...)

	e := evaluator{
		ctx:     ctx,
		format:  cfg.DisplayFormat(),
		verb:    evalFlags.verb,
		echo:    evalFlags.echo,
		history: cfg.History,
	}
	if n := e.run(cmd.OutOrStdout(), srcs); n > 0 {
		return fmt.Errorf("%d of %d expressions failed", n, len(srcs))
	}
	return nil
}

// given evaluates a REG=expr definition into a register.
func given(ctx *scicalc.Context, d string) error {
	name, val, ok := strings.Cut(d, "=")
	if !ok {
		return fmt.Errorf(`register definitions must be "REG=expr", not %q`, d)
	}
	name = strings.TrimSpace(name)
	reg, ok := scicalc.ParseRegister(name)
	if !ok {
		return fmt.Errorf("unknown register %q", name)
	}
	e, err := scicalc.ParseString(val)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	r, err := ctx.Eval(e)
	if err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	ctx.StoreVariable(reg, r)
	return nil
}

// evaluator prints the results of a sequence of expressions.
type evaluator struct {
	ctx     *scicalc.Context
	format  scicalc.DisplayFormat
	verb    string
	echo    bool
	history bool
}

// run evaluates each expression in order and returns the number that failed.
// Failures are printed in place of their results.
func (e *evaluator) run(w io.Writer, srcs []string) int {
	failed := 0
	for _, src := range srcs {
		ex, err := scicalc.ParseString(src)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s: %v\n", scicalc.ErrorText(err), err)
			continue
		}
		if e.echo {
			fmt.Fprintf(w, "%v : ", ex)
		}
		r, err := e.ctx.Eval(ex)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s: %v\n", scicalc.ErrorText(err), err)
			if verbose {
				log.Printf("%s: %v", src, err)
			}
			continue
		}
		e.ctx.Store().SetAns(r)
		if e.history {
			e.ctx.PushHistory(src, r)
		}
		if verbose {
			log.Printf("%s = %v (%s)", src, r, e.ctx.AngleMode())
		}
		if e.verb != "" {
			fmt.Fprintf(w, e.verb+"\n", r)
			continue
		}
		fmt.Fprintln(w, scicalc.Format(r, e.format))
	}
	return failed
}

// readExprs reads expressions from r: one per non-blank line if lines is set,
// otherwise the whole input as one expression.
func readExprs(r io.Reader, lines bool) ([]string, error) {
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) == "" {
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			srcs = append(srcs, sc.Text())
		}
	}
	return srcs, sc.Err()
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}
