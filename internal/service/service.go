// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated data from handlers, enforces ownership and domain rules,
// talks to the AI and storage subsystems, and calls repositories to
// persist the results.
package service
