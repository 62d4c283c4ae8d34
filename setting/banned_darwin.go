//go:build darwin

package setting

var bannedDirs = []string{
	"/",
	"/Applications",
	"/System",
	"/bin",
	"/etc",
	"/net",
	"/sbin",
	"/var",
	"/Library",
	"/Users",
	"/cores",
	"/home",
	"/opt",
	"/tmp",
	"/Network",
	"/Volumes",
	"/dev",
	"/installer.failurerequests",
	"/private",
	"/usr",
}
