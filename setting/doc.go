// Package setting holds everything kic keeps about a working directory
// besides the dust itself: the .kic layout, config.toml, the ignore list,
// the places kic refuses to run in, and the region of the user's crontab
// that schedules periodic sweeps and burns.
package setting
