// Package evaluator scores free-text learner responses.
//
// Evaluate is a pure function of the submission and the required vocabulary:
// it performs no I/O, keeps no state between calls and always returns the same
// Report for the same input. Scores are rule based across three categories
// (clarity, grammar and vocabulary), each worth up to 50 points.
package evaluator
