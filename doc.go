// Package main provides the kic command-line interface.
//
// kic keeps a working directory clean. Files that are not on the ignore list
// are swept into a dated box under .kic/warehouse with their relative paths
// preserved, directories left empty follow them, and boxes older than a
// moratorium are burned. Sweeps and burns can be scheduled through the
// user's crontab.
//
// The main binary supports these subcommands:
//   - init: Prepare a directory
//   - sweep [all] [indeed]: Move dust into today's box
//   - burn [indeed]: Delete expired boxes
//   - status: Show the warehouse and the schedule
//   - start, end, patrol: Manage the crontab region
//   - config, ignore: Edit the settings
//   - destroy: Remove everything kic stored
package main
