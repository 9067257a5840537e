// Package plan turns an ordered list of solutions into the sequence of steps
// a ripple executes: build the most upstream solution, then for every later
// solution copy in the packages published by the chain and rebuild it.
//
// Construction is a pure function of its inputs. It never touches the
// filesystem and never reorders the solutions it is given: the caller's order
// is trusted to be a valid upstream-to-downstream linearization.
package plan
