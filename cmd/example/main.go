// Command example loads a rewrite ruleset from a YAML file (or uses a
// built-in one) and drives it through Reduceo/Walko, printing the
// fixed-point reductions of a built-in starting term. It does not run
// expansions toward a target term.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v2"

	"github.com/pythological/kanren/pkg/kanren"
)

// ruleset is the on-disk shape of a rewrite program: a flat list of
// equations over a tiny term language (atoms, variables and calls),
// e.g.:
//
//	rules:
//	  - lhs: {op: add, args: [{var: x}, {var: x}]}
//	    rhs: {op: mul, args: [{atom: 2}, {var: x}]}
type ruleset struct {
	Rules []struct {
		LHS termSpec `yaml:"lhs"`
		RHS termSpec `yaml:"rhs"`
	} `yaml:"rules"`
}

// termSpec is a YAML-friendly term, always a mapping: a variable
// reference ({var: name}), a compound call with an operator and
// argument list ({op: name, args: [...]}), or otherwise an atom
// ({atom: value}). Bare scalars are not accepted in place of a mapping.
type termSpec struct {
	Op   string     `yaml:"op"`
	Args []termSpec `yaml:"args"`
	Atom interface{} `yaml:"atom"`
	Var  string      `yaml:"var"`
}

// call is the compound term type termSpec builds: a named operator
// applied to an ordered argument list.
type call struct {
	Op   string
	Args []kanren.Term
}

func (c call) Head() kanren.Term    { return c.Op }
func (c call) Children() []kanren.Term { return c.Args }
func (c call) Reconstruct(head kanren.Term, children []kanren.Term) kanren.Term {
	return call{Op: head.(string), Args: children}
}

func (c call) String() string {
	return fmt.Sprintf("%s%v", c.Op, c.Args)
}

// build realizes a termSpec against a shared pool of named logic
// variables (so "$x" refers to the same Var everywhere it appears in
// one equation).
func build(spec termSpec, vars map[string]*kanren.Var) kanren.Term {
	if spec.Var != "" {
		v, ok := vars[spec.Var]
		if !ok {
			v = kanren.NewVar(spec.Var)
			vars[spec.Var] = v
		}
		return v
	}
	if spec.Op == "" {
		return spec.Atom
	}
	args := make([]kanren.Term, len(spec.Args))
	for i, a := range spec.Args {
		args[i] = build(a, vars)
	}
	return call{Op: spec.Op, Args: args}
}

// loadStep compiles a ruleset into a single one-step rewrite relation:
// the disjunction of every equation, each scoped to its own fresh
// variables per call (spec §4.8's R(a, b)).
func loadStep(rs ruleset) func(a, b kanren.Term) kanren.Goal {
	return func(a, b kanren.Term) kanren.Goal {
		arms := make([]kanren.Goal, len(rs.Rules))
		for i, rule := range rs.Rules {
			rule := rule
			arms[i] = func(s *kanren.State) kanren.Stream {
				vars := map[string]*kanren.Var{}
				lhs := build(rule.LHS, vars)
				rhs := build(rule.RHS, vars)
				return kanren.Lall(kanren.Eq(a, lhs), kanren.Eq(b, rhs))(s)
			}
		}
		return kanren.Lany(arms...)
	}
}

func defaultRuleset() ruleset {
	x := func(name string) termSpec { return termSpec{Var: name} }
	op := func(name string, args ...termSpec) termSpec { return termSpec{Op: name, Args: args} }
	atom := func(v interface{}) termSpec { return termSpec{Atom: v} }

	var rs ruleset
	rs.Rules = append(rs.Rules, struct {
		LHS termSpec `yaml:"lhs"`
		RHS termSpec `yaml:"rhs"`
	}{
		LHS: op("add", x("x"), x("x")),
		RHS: op("mul", atom(2), x("x")),
	})
	rs.Rules = append(rs.Rules, struct {
		LHS termSpec `yaml:"lhs"`
		RHS termSpec `yaml:"rhs"`
	}{
		LHS: op("mul", atom(2), x("x")),
		RHS: op("add", x("x"), x("x")),
	})
	rs.Rules = append(rs.Rules, struct {
		LHS termSpec `yaml:"lhs"`
		RHS termSpec `yaml:"rhs"`
	}{
		LHS: op("log", op("exp", x("x"))),
		RHS: x("x"),
	})
	return rs
}

func main() {
	rulesPath := flag.String("rules", "", "path to a YAML rewrite ruleset (defaults to a built-in demo ruleset)")
	count := flag.Int("n", 10, "maximum number of results to print (0 = exhaust)")
	verbose := flag.Bool("v", false, "enable trace logging")
	flag.Parse()

	logger := hclog.NewNullLogger()
	if *verbose {
		logger = hclog.New(&hclog.LoggerOptions{Name: "kanren-example", Level: hclog.Trace})
	}

	rs := defaultRuleset()
	if *rulesPath != "" {
		data, err := os.ReadFile(*rulesPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read rules:", err)
			os.Exit(1)
		}
		if err := yaml.Unmarshal(data, &rs); err != nil {
			fmt.Fprintln(os.Stderr, "parse rules:", err)
			os.Exit(1)
		}
	}

	step := loadStep(rs)
	rstar := kanren.Reduceo(step)

	input := call{Op: "add", Args: []kanren.Term{
		call{Op: "add", Args: []kanren.Term{3, 3}},
		call{Op: "exp", Args: []kanren.Term{call{Op: "log", Args: []kanren.Term{call{Op: "exp", Args: []kanren.Term{5}}}}}},
	}}

	e := kanren.NewVar("e")
	results, err := kanren.RunWithOptions(*count, e, []kanren.RunOption{kanren.WithLogger(logger)},
		kanren.Walko(rstar, input, e))
	if err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}

	fmt.Printf("reductions of %v:\n", input)
	for _, r := range results {
		fmt.Printf("  %v\n", r)
	}
}
