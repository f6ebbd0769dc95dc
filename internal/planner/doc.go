// Package planner decides which branch a run takes (rename or filter) and
// builds the Plan that the pipeline executes.
//
//   - Plan, Branch, Operation (types.go)
//   - Build: search matching, rename tasks, reverse reassignment, filter
//     inputs and notes for requests the chosen branch ignores (planner.go)
package planner
