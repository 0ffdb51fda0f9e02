// Package actions interprets browser test commands.
//
// A scenario is an ordered list of commands. Each command can be written as
// a single-line template:
//
//	go_to <<https://example.com>> waitUntil <<load>> timeout <<5000>>
//	click_on <<#submit>> note <<send the form>>
//	input_to <<#email>> value <<user@example.com>>
//	select_on <<#country>> value <<VN>>
//	wait <<500>>
//	capture_screen <<home.png>>
//
// or as a structured record {name, meta} / {name, template}. The group
// command only exists in structured form and wraps a named list of nested
// commands.
//
// # Pipeline
//
//  1. Registry maps command names to Command implementations.
//  2. Formatter turns raw input into validated Instances.
//  3. Engine runs Instances in order against one page and builds a Report.
//  4. Runner leases a page from a browser.Pool, runs the Engine and always
//     returns the page afterwards.
//
// # Failures
//
// Malformed input is reported as *ParseError or *ValidationError before
// anything runs. A failing command stops its sequence; the returned
// *CommandError carries the chain of command names leading to the failure,
// for example "group - click_on - Click on failed! Item '#missing' not found!".
// The Engine returns the partial report together with that error.
package actions
