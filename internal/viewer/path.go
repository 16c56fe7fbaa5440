package viewer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoSelection is returned when there is no interaction point in the
	// requested direction.
	ErrNoSelection = errors.New("no interaction point in that direction")

	// ErrNoAction is returned when the active interaction point cannot be
	// acted on, for example a scalar.
	ErrNoAction = errors.New("active element has no action")

	// ErrStalePath is returned when a path does not address the tree.
	ErrStalePath = errors.New("path does not match the displayed value")
)

// StepKind identifies a step of a Path.
type StepKind int

const (
	// StepMember descends into the member Key of an object.
	StepMember StepKind = iota
	// StepElement descends into element Index of an array.
	StepElement
	// StepScalar addresses a scalar value.
	StepScalar
	// StepToggle addresses the fold toggle of an object or array.
	StepToggle
	// StepShrink addresses the knob that hides the last shown array element.
	StepShrink
	// StepGrow addresses the knob that shows one more array element.
	StepGrow
)

// Step is one step of a Path.
type Step struct {
	Kind  StepKind
	Key   string
	Index int
}

func (s Step) terminal() bool { return s.Kind >= StepScalar }

// Path addresses an interaction point: zero or more member/element steps
// followed by exactly one terminal step.
type Path []Step

// Equal reports whether both paths address the same interaction point.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Terminal returns the last step of the path.
func (p Path) Terminal() Step {
	if len(p) == 0 {
		return Step{Kind: StepScalar}
	}
	return p[len(p)-1]
}

// Pointer returns the address of the value the path points into as a JSON
// pointer (RFC 6901), without the terminal step.
func (p Path) Pointer() string {
	var sb strings.Builder
	for _, s := range p {
		switch s.Kind {
		case StepMember:
			sb.WriteByte('/')
			sb.WriteString(escapePointer(s.Key))
		case StepElement:
			sb.WriteByte('/')
			sb.WriteString(strconv.Itoa(s.Index))
		}
	}
	return sb.String()
}

// String renders the path as a JSON pointer followed by the terminal knob,
// e.g. "/items/0#grow".
func (p Path) String() string {
	ptr := p.Pointer()
	switch p.Terminal().Kind {
	case StepToggle:
		return ptr + "#toggle"
	case StepShrink:
		return ptr + "#shrink"
	case StepGrow:
		return ptr + "#grow"
	default:
		if ptr == "" {
			return "/"
		}
		return ptr
	}
}

func escapePointer(key string) string {
	key = strings.ReplaceAll(key, "~", "~0")
	return strings.ReplaceAll(key, "/", "~1")
}

func prepend(s Step, rest Path) Path {
	out := make(Path, 0, len(rest)+1)
	out = append(out, s)
	return append(out, rest...)
}

func withStep(prefix Path, s Step) Path {
	out := make(Path, 0, len(prefix)+1)
	out = append(out, prefix...)
	return append(out, s)
}

var (
	toggleStep = Step{Kind: StepToggle}
	scalarStep = Step{Kind: StepScalar}
	shrinkStep = Step{Kind: StepShrink}
	growStep   = Step{Kind: StepGrow}
)

// knobs appends every interaction point of n, in display order, to out.
func knobs(n node, prefix Path, out []Path) []Path {
	switch n := n.(type) {
	case *scalarNode:
		return append(out, withStep(prefix, scalarStep))
	case *objectNode:
		out = append(out, withStep(prefix, toggleStep))
		if !n.extended {
			return out
		}
		for _, k := range n.keys {
			out = knobs(n.members[k], withStep(prefix, Step{Kind: StepMember, Key: k}), out)
		}
		return out
	case *arrayNode:
		out = append(out, withStep(prefix, toggleStep))
		if !n.extended {
			return out
		}
		for i := 0; i < n.numExtended; i++ {
			out = knobs(n.values[i], withStep(prefix, Step{Kind: StepElement, Index: i}), out)
		}
		if n.canShrink() {
			out = append(out, withStep(prefix, shrinkStep))
		}
		if n.canGrow() {
			out = append(out, withStep(prefix, growStep))
		}
		return out
	}
	return out
}

func firstKnob(n node) Path {
	if _, ok := n.(*scalarNode); ok {
		return Path{scalarStep}
	}
	return Path{toggleStep}
}

// fixPath returns the interaction point of n closest to p. The result always
// addresses an existing, visible interaction point.
func fixPath(p Path, n node) Path {
	if len(p) == 0 {
		return firstKnob(n)
	}
	step := p[0]
	switch n := n.(type) {
	case *scalarNode:
		return Path{scalarStep}

	case *objectNode:
		if step.Kind != StepMember || !n.extended {
			return Path{toggleStep}
		}
		key, ok := n.nearestKey(step.Key)
		if !ok {
			return Path{toggleStep}
		}
		rest := p[1:]
		if key != step.Key {
			rest = nil
		}
		return prepend(Step{Kind: StepMember, Key: key}, fixPath(rest, n.members[key]))

	case *arrayNode:
		if !n.extended {
			return Path{toggleStep}
		}
		switch step.Kind {
		case StepElement:
			if step.Index >= 0 && step.Index < n.numExtended {
				return prepend(step, fixPath(p[1:], n.values[step.Index]))
			}
			if n.numExtended > 0 {
				last := n.numExtended - 1
				return prepend(Step{Kind: StepElement, Index: last}, firstKnob(n.values[last]))
			}
			if n.canGrow() {
				return Path{growStep}
			}
		case StepShrink:
			if n.canShrink() {
				return Path{shrinkStep}
			}
			if n.canGrow() {
				return Path{growStep}
			}
		case StepGrow:
			if n.canGrow() {
				return Path{growStep}
			}
			if n.canShrink() {
				return Path{shrinkStep}
			}
		}
		return Path{toggleStep}
	}
	return firstKnob(n)
}

// act performs the action of the interaction point p of n.
func act(p Path, n node) error {
	if len(p) == 0 {
		return ErrStalePath
	}
	step := p[0]
	switch n := n.(type) {
	case *scalarNode:
		if step.Kind == StepScalar {
			return ErrNoAction
		}
	case *objectNode:
		switch step.Kind {
		case StepToggle:
			n.toggle()
			return nil
		case StepMember:
			if child, ok := n.members[step.Key]; ok {
				return act(p[1:], child)
			}
		}
	case *arrayNode:
		switch step.Kind {
		case StepToggle:
			n.toggle()
			return nil
		case StepGrow:
			if !n.grow() {
				return ErrNoAction
			}
			return nil
		case StepShrink:
			if !n.shrink() {
				return ErrNoAction
			}
			return nil
		case StepElement:
			if step.Index >= 0 && step.Index < len(n.values) {
				return act(p[1:], n.values[step.Index])
			}
		}
	}
	return fmt.Errorf("%w: %s at %s", ErrStalePath, p, n.kind())
}

// lookup returns the node p points into (the node owning the terminal step).
func lookup(p Path, n node) (node, error) {
	for _, step := range p {
		if step.terminal() {
			return n, nil
		}
		switch cur := n.(type) {
		case *objectNode:
			child, ok := cur.members[step.Key]
			if !ok || step.Kind != StepMember {
				return nil, ErrStalePath
			}
			n = child
		case *arrayNode:
			if step.Kind != StepElement || step.Index < 0 || step.Index >= len(cur.values) {
				return nil, ErrStalePath
			}
			n = cur.values[step.Index]
		default:
			return nil, ErrStalePath
		}
	}
	return n, nil
}
