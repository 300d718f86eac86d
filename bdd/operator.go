// Copyright (c) 2024 The bddkit authors
//
// MIT License

package bdd

// Op is a binary boolean operator usable by the apply engine. The operators
// are partial over terminal values: a result exists as soon as the known
// sides determine it, even when the other side is still an internal node.
//
//	Identifier  Description  Determined by
//
//	OpAnd       logical and  any false side, or two true sides
//	OpOr        logical or   any true side, or two false sides
//
// Negation is not an Op; it is a structural operation on the arena (see
// Negate).
type Op int

const (
	OpAnd Op = iota
	OpOr
)

func (op Op) String() string {
	switch op {
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	}
	return "op?"
}

// shortcut resolves the operator on a pair of pointers when the terminal
// values among them already determine the result. The returned pointer is a
// terminal, valid in any arena.
func (op Op) shortcut(left, right Pointer) (Pointer, bool) {
	switch op {
	case OpAnd:
		if left == False || right == False {
			return False, true
		}
		if left == True && right == True {
			return True, true
		}
	case OpOr:
		if left == True || right == True {
			return True, true
		}
		if left == False && right == False {
			return False, true
		}
	}
	return False, false
}
