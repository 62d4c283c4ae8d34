//go:build !linux && !darwin

package setting

var bannedDirs = []string{"/"}
