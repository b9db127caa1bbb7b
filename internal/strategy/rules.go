package strategy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/strayhat/pushjack/internal/game"
)

// ErrInvalidOverrideRule reports a structurally invalid override entry: a
// descriptor naming an unreachable total, or an impossible up-card value.
var ErrInvalidOverrideRule = errors.New("strategy: invalid override rule")

// HandDescriptor identifies a player total for override lookup. Soft totals
// are tagged distinctly from hard totals of the same number: soft 17 is not
// hard 17.
type HandDescriptor struct {
	Total int
	Soft  bool
}

// Hard returns the descriptor for a hard total.
func Hard(total int) HandDescriptor {
	return HandDescriptor{Total: total}
}

// Soft returns the descriptor for a soft total.
func Soft(total int) HandDescriptor {
	return HandDescriptor{Total: total, Soft: true}
}

// Describe returns the descriptor matching a hand's current total.
func Describe(h *game.Hand) HandDescriptor {
	if h.IsSoft() {
		return Soft(h.Value())
	}
	return Hard(h.Value())
}

// String returns "16" for hard totals and "soft 17" for soft ones.
func (d HandDescriptor) String() string {
	if d.Soft {
		return "soft " + strconv.Itoa(d.Total)
	}
	return strconv.Itoa(d.Total)
}

// Validate checks the descriptor names a total a hand can actually hold.
// Hard totals run 4-21 (two deuces up); soft totals 12-21 (a counted-high
// ace is at least ace-ace).
func (d HandDescriptor) Validate() error {
	if d.Soft {
		if d.Total < 12 || d.Total > 21 {
			return fmt.Errorf("%w: soft total %d out of range [12,21]", ErrInvalidOverrideRule, d.Total)
		}
		return nil
	}
	if d.Total < 4 || d.Total > 21 {
		return fmt.Errorf("%w: hard total %d out of range [4,21]", ErrInvalidOverrideRule, d.Total)
	}
	return nil
}

// ParseDescriptor parses a descriptor string: "16" or "soft 17".
func ParseDescriptor(s string) (HandDescriptor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	soft := false
	if rest, ok := strings.CutPrefix(s, "soft"); ok {
		soft = true
		s = strings.TrimSpace(rest)
	}
	total, err := strconv.Atoi(s)
	if err != nil {
		return HandDescriptor{}, fmt.Errorf("%w: bad total %q", ErrInvalidOverrideRule, s)
	}
	d := HandDescriptor{Total: total, Soft: soft}
	if err := d.Validate(); err != nil {
		return HandDescriptor{}, err
	}
	return d, nil
}

// ParseRule parses a full override entry of the form "descriptor:upcard=hit"
// where hit is "hit" or "stand", e.g. "16:10=hit" or "soft 17:11=stand".
func ParseRule(s string) (HandDescriptor, int, bool, error) {
	head, decision, ok := strings.Cut(s, "=")
	if !ok {
		return HandDescriptor{}, 0, false, fmt.Errorf("%w: missing '=' in %q", ErrInvalidOverrideRule, s)
	}
	descPart, upPart, ok := strings.Cut(head, ":")
	if !ok {
		return HandDescriptor{}, 0, false, fmt.Errorf("%w: missing ':' in %q", ErrInvalidOverrideRule, s)
	}

	desc, err := ParseDescriptor(descPart)
	if err != nil {
		return HandDescriptor{}, 0, false, err
	}
	upCard, err := strconv.Atoi(strings.TrimSpace(upPart))
	if err != nil {
		return HandDescriptor{}, 0, false, fmt.Errorf("%w: bad up-card %q", ErrInvalidOverrideRule, upPart)
	}
	if err := validateUpCard(upCard); err != nil {
		return HandDescriptor{}, 0, false, err
	}

	switch strings.ToLower(strings.TrimSpace(decision)) {
	case "hit":
		return desc, upCard, true, nil
	case "stand":
		return desc, upCard, false, nil
	default:
		return HandDescriptor{}, 0, false, fmt.Errorf("%w: decision %q is not hit or stand", ErrInvalidOverrideRule, decision)
	}
}

func validateUpCard(v int) error {
	if v < 2 || v > 11 {
		return fmt.Errorf("%w: up-card value %d out of range [2,11]", ErrInvalidOverrideRule, v)
	}
	return nil
}

type ruleKey struct {
	desc   HandDescriptor
	upCard int
}

// RuleTable maps (hand descriptor, dealer up-card value) pairs to explicit
// hit decisions. At most one rule applies per pair; duplicate writes keep the
// last value.
type RuleTable struct {
	rules map[ruleKey]bool
}

// NewRuleTable creates an empty rule table.
func NewRuleTable() *RuleTable {
	return &RuleTable{rules: make(map[ruleKey]bool)}
}

// Set records an override. Up-card values run 2-11; the ace counts eleven.
func (t *RuleTable) Set(desc HandDescriptor, upCard int, hit bool) error {
	if err := desc.Validate(); err != nil {
		return err
	}
	if err := validateUpCard(upCard); err != nil {
		return err
	}
	t.rules[ruleKey{desc, upCard}] = hit
	return nil
}

// Lookup returns the override for the pair, and whether one exists.
func (t *RuleTable) Lookup(desc HandDescriptor, upCard int) (hit, ok bool) {
	if t == nil {
		return false, false
	}
	hit, ok = t.rules[ruleKey{desc, upCard}]
	return hit, ok
}

// Len returns the number of configured overrides. A nil table is empty.
func (t *RuleTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}
