package docmodel

import "fmt"

type refState uint8

const (
	refAbsent refState = iota
	refDisabled
	refTarget
)

// Ref is a tri-state pagination override: absent (use the sequence
// neighbor), disabled (explicit null) or an explicit target id/customId.
// The zero value is absent.
type Ref struct {
	state  refState
	target string
}

// Absent returns a Ref that defers to sequence order.
func Absent() Ref { return Ref{} }

// Disabled returns a Ref that forcibly suppresses the link.
func Disabled() Ref { return Ref{state: refDisabled} }

// Target returns a Ref pointing at a document id or customId.
func Target(id string) Ref { return Ref{state: refTarget, target: id} }

func (r Ref) IsAbsent() bool   { return r.state == refAbsent }
func (r Ref) IsDisabled() bool { return r.state == refDisabled }

// TargetID returns the explicit target and whether one is set.
func (r Ref) TargetID() (string, bool) {
	return r.target, r.state == refTarget
}

func (r Ref) String() string {
	switch r.state {
	case refDisabled:
		return "null"
	case refTarget:
		return fmt.Sprintf("%q", r.target)
	default:
		return "absent"
	}
}
