package toki

// Version and BuildDate identify the toolchain build; both can be
// overridden at link time with -ldflags -X.
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
)
