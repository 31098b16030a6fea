package ir

import "fmt"

// Validate checks the structural invariants the emitter relies on:
// every block terminated, every branch target in range.
func Validate(f *Func) error {
	if len(f.Blocks) == 0 {
		return fmt.Errorf("ir: function %s has no blocks", f.Name)
	}
	for _, blk := range f.Blocks {
		if !blk.Terminated() {
			return fmt.Errorf("ir: function %s: block %s not terminated", f.Name, blk.Label)
		}
		for _, target := range blockTargets(blk) {
			if f.Block(target) == nil {
				return fmt.Errorf("ir: function %s: block %s branches to missing block %d",
					f.Name, blk.Label, target)
			}
		}
	}
	return nil
}

func blockTargets(blk *Block) []BlockID {
	switch blk.Term.Kind {
	case TermBr:
		return []BlockID{blk.Term.Br.Target}
	case TermCondBr:
		return []BlockID{blk.Term.CondBr.Then, blk.Term.CondBr.Else}
	case TermSwitch:
		targets := []BlockID{blk.Term.Switch.Default}
		for _, c := range blk.Term.Switch.Cases {
			targets = append(targets, c.Target)
		}
		return targets
	default:
		return nil
	}
}

// ValidateModule validates every function of a module.
func ValidateModule(m *Module) error {
	for _, f := range m.Funcs {
		if err := Validate(f); err != nil {
			return err
		}
	}
	return nil
}
