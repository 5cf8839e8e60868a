package lsystem

import "fmt"

// BalanceError locates the first symbol that breaks bracket nesting.
//
// Index is len(instr) when the string ends with unclosed pairs.
type BalanceError struct {
	Index  int
	Symbol byte
	Reason string
}

func (e *BalanceError) Error() string {
	if e.Symbol == 0 {
		return fmt.Sprintf("unbalanced instructions at %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("unbalanced instructions at %d (%q): %s", e.Index, e.Symbol, e.Reason)
}

// CheckBalanced verifies that [ ] and + - pairs nest correctly.
//
// The interpreter shares one stack between both pairs, so only the per-pair
// counts are checked, never their interleaving.
func CheckBalanced(instr string) error {
	var branch, mark int
	for i := 0; i < len(instr); i++ {
		switch c := instr[i]; c {
		case BranchOpen:
			branch++
		case BranchClose:
			if branch == 0 {
				return &BalanceError{Index: i, Symbol: c, Reason: "close without open"}
			}
			branch--
		case Mark:
			mark++
		case Restore:
			if mark == 0 {
				return &BalanceError{Index: i, Symbol: c, Reason: "restore without mark"}
			}
			mark--
		}
	}
	switch {
	case branch > 0:
		return &BalanceError{Index: len(instr), Reason: fmt.Sprintf("%d unclosed branch(es)", branch)}
	case mark > 0:
		return &BalanceError{Index: len(instr), Reason: fmt.Sprintf("%d unrestored mark(s)", mark)}
	}
	return nil
}
