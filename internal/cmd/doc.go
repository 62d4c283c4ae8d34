// Package cmd provides the command-line interface implementation for kic.
//
// It uses the Cobra library for command structure; main runs the root
// command through Fang for styled help and errors.
//
// The commands are grouped as:
//   - Housekeeping: sweep, burn, status
//   - Scheduling: start, end, patrol
//   - Setup: init, config, ignore, destroy
//
// Each command is built by a constructor that takes the shared
// globalOptions, so tests can inject the clock, the crontab and stdin.
// Commands stay thin: the staging engine lives in package dust and the
// working-directory settings in package setting.
package cmd
