package diag

// Severity ranks a diagnostic. Contract violations and snapshot failures are
// reported as SevError; config and sink problems may be downgraded.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning is reported but leaves the unit's trace valid.
	SevWarning
	SevError
)

// Fails reports whether a diagnostic of this severity fails its unit.
func (s Severity) Fails() bool { return s >= SevError }

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
