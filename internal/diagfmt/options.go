package diagfmt

// PathMode specifies how unit paths are displayed.
type PathMode uint8

const (
	// PathModeAsIs prints the unit path as given on the command line.
	PathModeAsIs PathMode = iota
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// ShowTitle appends the code title, e.g. "[dangling handle]".
	ShowTitle bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	Max      int // обрезка вывода, не Bag
}
