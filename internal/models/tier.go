package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	RanksPerTier = 5
	MajorTiers   = 6
	MaxLevel     = RanksPerTier * MajorTiers
)

// MaxTierNameLen bounds configured tier names and the names users type.
const MaxTierNameLen = 32

var tierNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidTierName is shared by config validation and the select command so every
// configured tier can be selected by name.
func ValidTierName(name string) bool {
	return len(name) <= MaxTierNameLen && tierNamePattern.MatchString(name)
}

type tierBand struct {
	name  string
	emoji string
	code  string
}

var tierBands = [MajorTiers]tierBand{
	{name: "Bronze", emoji: "🤎", code: "b"},
	{name: "Silver", emoji: "🤍", code: "s"},
	{name: "Gold", emoji: "💛", code: "g"},
	{name: "Platinum", emoji: "💚", code: "p"},
	{name: "Diamond", emoji: "🩵", code: "d"},
	{name: "Ruby", emoji: "🩷", code: "r"},
}

// TierSpec selects candidate problems by an inclusive level band and a
// minimum number of users who solved them.
type TierSpec struct {
	Name       string
	MinLevel   int
	MaxLevel   int
	MinSolvers int
}

func (t TierSpec) Validate() error {
	if !ValidTierName(t.Name) {
		return fmt.Errorf("%w, tier name %q must be 1-%d letters, digits, '-' or '_'", ErrInvalidInput, t.Name, MaxTierNameLen)
	}
	if t.MinLevel < 1 || t.MaxLevel > MaxLevel || t.MinLevel > t.MaxLevel {
		return fmt.Errorf("%w, tier %q has invalid level range %d..%d", ErrInvalidInput, t.Name, t.MinLevel, t.MaxLevel)
	}
	if t.MinSolvers < 0 {
		return fmt.Errorf("%w, tier %q has negative solver floor", ErrInvalidInput, t.Name)
	}
	return nil
}

// Overlaps reports whether the two level bands share at least one level.
func (t TierSpec) Overlaps(other TierSpec) bool {
	return t.MinLevel <= other.MaxLevel && other.MinLevel <= t.MaxLevel
}

func ValidLevel(level int) bool {
	return level >= 1 && level <= MaxLevel
}

// MajorTier returns the 1-based band of a level (1 = Bronze .. 6 = Ruby).
func MajorTier(level int) int {
	return (level-1)/RanksPerTier + 1
}

// MinorRank returns the in-band rank, 5 for the lowest level of a band down to 1.
func MinorRank(level int) int {
	return RanksPerTier - (level-1)%RanksPerTier
}

// LevelOf is the inverse of MajorTier/MinorRank.
func LevelOf(major, minor int) (int, error) {
	if major < 1 || major > MajorTiers || minor < 1 || minor > RanksPerTier {
		return 0, fmt.Errorf("%w, tier %d rank %d out of range", ErrInvalidInput, major, minor)
	}
	return (major-1)*RanksPerTier + (RanksPerTier - minor) + 1, nil
}

// TierLabel renders a level the way selection records store it, e.g. "💛 Gold 5".
func TierLabel(level int) string {
	if !ValidLevel(level) {
		return "Unrated"
	}
	band := tierBands[MajorTier(level)-1]
	return fmt.Sprintf("%s %s %d", band.emoji, band.name, MinorRank(level))
}

// LevelFromLabel parses a label produced by TierLabel. The leading emoji is optional.
func LevelFromLabel(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) < 2 {
		return 0, fmt.Errorf("%w, malformed tier label %q", ErrInvalidInput, label)
	}
	name := fields[len(fields)-2]
	minor, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, fmt.Errorf("%w, malformed tier label %q", ErrInvalidInput, label)
	}
	for i, band := range tierBands {
		if strings.EqualFold(band.name, name) {
			return LevelOf(i+1, minor)
		}
	}
	return 0, fmt.Errorf("%w, unknown tier name %q", ErrInvalidInput, name)
}

// TierCode renders a level in catalog query syntax, e.g. "g5".
func TierCode(level int) string {
	if !ValidLevel(level) {
		return "0"
	}
	return tierBands[MajorTier(level)-1].code + strconv.Itoa(MinorRank(level))
}

func LevelFromCode(code string) (int, error) {
	if len(code) != 2 {
		return 0, fmt.Errorf("%w, malformed tier code %q", ErrInvalidInput, code)
	}
	minor, err := strconv.Atoi(code[1:])
	if err != nil {
		return 0, fmt.Errorf("%w, malformed tier code %q", ErrInvalidInput, code)
	}
	for i, band := range tierBands {
		if band.code == code[:1] {
			return LevelOf(i+1, minor)
		}
	}
	return 0, fmt.Errorf("%w, unknown tier code %q", ErrInvalidInput, code)
}
