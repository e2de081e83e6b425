// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services have no CGO dependencies and talk to infrastructure only
// through the driven ports.
package services
