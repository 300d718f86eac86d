// Copyright (c) 2024 The bddkit authors
//
// MIT License

package cnf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads a DIMACS CNF problem: 'c' lines are comments, the 'p cnf
// <vars> <clauses>' header declares the problem size, and every other line
// is a clause of whitespace-separated signed literals terminated by 0. The
// per-variable ordering scores are computed while reading, as the quotient
// between the number of clauses containing the variable and the average
// arity of those clauses.
func Parse(r io.Reader) (*Instance, error) {
	ins := &Instance{
		VarMap: make(map[int]Lit),
		Scores: make(map[int]float64),
	}
	// arities collects, per variable, the sizes of the clauses it appears in.
	arities := make(map[int][]int)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	headerSeen := false
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || fields[0] == "c" {
			continue
		}
		if fields[0] == "p" {
			if len(fields) < 4 || fields[1] != "cnf" {
				return nil, errors.Errorf("line %d: invalid problem header %q", line, sc.Text())
			}
			var err error
			if ins.NumVars, err = strconv.Atoi(fields[2]); err != nil {
				return nil, errors.Wrapf(err, "line %d: variable count", line)
			}
			if ins.NumClauses, err = strconv.Atoi(fields[3]); err != nil {
				return nil, errors.Wrapf(err, "line %d: clause count", line)
			}
			headerSeen = true
			continue
		}
		if !headerSeen {
			return nil, errors.Errorf("line %d: clause before 'p cnf' header", line)
		}
		lits := make([]int, 0, len(fields))
		for _, f := range fields {
			l, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: literal %q", line, f)
			}
			if l == 0 {
				break
			}
			lits = append(lits, l)
		}
		if len(lits) == 0 {
			continue
		}
		clause := NewClause(lits...)
		for _, l := range clause {
			v := l.Var()
			if _, ok := ins.VarMap[v]; !ok {
				ins.VarMap[v] = Lit(v)
			}
			arities[v] = append(arities[v], len(clause))
		}
		ins.Clauses = append(ins.Clauses, clause)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading CNF input")
	}
	if !headerSeen {
		return nil, errors.New("missing 'p cnf' header")
	}
	for v, sizes := range arities {
		count := float64(len(sizes))
		sum := 0
		for _, s := range sizes {
			sum += s
		}
		mean := float64(sum) / count
		ins.Scores[v] = count / mean
	}
	return ins, nil
}
