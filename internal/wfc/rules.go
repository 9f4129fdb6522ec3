package wfc

import (
	"fmt"
	"math"
	"sort"
)

// Ban marks a neighbour that is never allowed. It is only ever stored in the
// compatibility table, never in a cell's weights.
const Ban = -1.0

// OrientationMatch decides whether a target tile placed in direction dir of a source
// tile agrees with it on orientation.
type OrientationMatch func(source, target Orientation, dir Direction) bool

var matches = map[string]OrientationMatch{
	"any": func(Orientation, Orientation, Direction) bool {
		return true
	},
	// The neighbour's open side points away from the source.
	"target-faces-direction": func(_, target Orientation, dir Direction) bool {
		return target.Faces(dir)
	},
	// The neighbour's open side points back at the source.
	"target-faces-opposite": func(_, target Orientation, dir Direction) bool {
		return target.Faces(dir.Opposite())
	},
	"parallel-facing": func(source, target Orientation, _ Direction) bool {
		return source.Kind != Invariant && target.Kind != Invariant && source.Facing == target.Facing
	},
	// A corner whose diagonal includes the side facing the source.
	"corner-opens-toward": func(_, target Orientation, dir Direction) bool {
		if target.Kind != Corner {
			return false
		}
		ns, ew := target.Facing.Components()
		back := dir.Opposite()
		return ns == back || ew == back
	},
}

// MatchNames lists the registered orientation predicates
func MatchNames() []string {
	names := make([]string, 0, len(matches))
	for name := range matches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Rule grants a weight to Target tiles placed in one of Directions from a Source tile,
// provided the named Match predicate holds. An empty Match means "any".
type Rule struct {
	Source     Tag
	Target     Tag
	Directions DirectionSet
	Match      string
	Weight     float64
}

func (r Rule) String() string {
	match := r.Match
	if match == "" {
		match = "any"
	}
	return fmt.Sprintf("%s->%s [%s] %s %.2f", r.Source, r.Target, r.Directions, match, r.Weight)
}

// RuleSet is an ordered, validated list of rules. The first matching rule wins; a
// (source, direction, target) triple that no rule matches is banned.
type RuleSet struct {
	rules    []Rule
	matchers []OrientationMatch
}

// NewRuleSet validates rules and resolves their predicates
func NewRuleSet(rules []Rule) (*RuleSet, error) {
	rs := &RuleSet{
		rules:    make([]Rule, len(rules)),
		matchers: make([]OrientationMatch, len(rules)),
	}
	copy(rs.rules, rules)
	for i, r := range rs.rules {
		if r.Source == "" || r.Target == "" {
			return nil, fmt.Errorf("wfc: rule %d: source and target tags are required", i)
		}
		if r.Directions&AllAxes == 0 || r.Directions&^AllAxes != 0 {
			return nil, fmt.Errorf("wfc: rule %d: directions must be a non-empty set of axis directions", i)
		}
		if math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) || r.Weight < 0 {
			return nil, fmt.Errorf("wfc: rule %d: weight %v must be finite and non-negative", i, r.Weight)
		}
		name := r.Match
		if name == "" {
			name = "any"
		}
		m, ok := matches[name]
		if !ok {
			return nil, fmt.Errorf("wfc: rule %d: unknown match %q", i, r.Match)
		}
		rs.matchers[i] = m
	}
	return rs, nil
}

// Rules returns a copy of the rules in evaluation order
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Len returns the number of rules
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Weight returns the weight of placing target in direction dir of source. The second
// result is false when no rule matched, in which case the weight is Ban.
func (rs *RuleSet) Weight(source, target Tile, dir Direction) (float64, bool) {
	for i, r := range rs.rules {
		if r.Source != source.Tag || r.Target != target.Tag || !r.Directions.Has(dir) {
			continue
		}
		if !rs.matchers[i](source.Orientation, target.Orientation, dir) {
			continue
		}
		return r.Weight, true
	}
	return Ban, false
}
