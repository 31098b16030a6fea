// Package ir defines the intermediate representation the code
// generator lowers checked C into: functions of basic blocks holding
// typed instructions, each block closed by exactly one terminator.
// The representation is deliberately close to LLVM: lowering to
// textual LLVM IR (package ir/llvm) is a printing pass, not a
// translation.
//
// There are no phi nodes. Values that merge across control flow go
// through stack slots, which is how C locals behave anyway; LLVM's
// mem2reg rebuilds SSA form later.
package ir
