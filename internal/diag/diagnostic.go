package diag

import (
	"errors"
	"fmt"
)

// Diagnostic is a single reported problem. It implements error so contract
// violations can travel through ordinary error returns.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	// Unit is the compilation unit (snapshot path) the problem belongs to.
	Unit string
	// Node is the sequence number of the offending node, 0 if not node-bound.
	Node uint32
}

func New(sev Severity, code Code, msg string) *Diagnostic {
	return &Diagnostic{Severity: sev, Code: code, Message: msg}
}

// Errorf builds an error-severity diagnostic with a formatted message.
func Errorf(code Code, format string, args ...any) *Diagnostic {
	return New(SevError, code, fmt.Sprintf(format, args...))
}

// AtNode attaches the sequence number of the node whose contract broke.
func (d *Diagnostic) AtNode(seq uint32) *Diagnostic {
	d.Node = seq
	return d
}

// InUnit attaches the compilation unit.
func (d *Diagnostic) InUnit(unit string) *Diagnostic {
	d.Unit = unit
	return d
}

func (d *Diagnostic) Error() string {
	msg := d.Code.ID() + ": " + d.Message
	if d.Node != 0 {
		msg += fmt.Sprintf(" (node #%d)", d.Node)
	}
	if d.Unit != "" {
		msg = d.Unit + ": " + msg
	}
	return msg
}

// CodeOf extracts the diagnostic code from err, or UnknownCode.
func CodeOf(err error) Code {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Code
	}
	return UnknownCode
}
