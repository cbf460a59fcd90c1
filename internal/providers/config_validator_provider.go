package providers

import (
	"errors"
	"fmt"
	"probpick/internal/models"
	"probpick/internal/structures"
	"sort"
	"strings"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return errors.New(v.Errors.One())
	}
	if err := cv.validateHistory(); err != nil {
		return err
	}
	if err := cv.validateCache(); err != nil {
		return err
	}
	return cv.validateTiers()
}

func (cv *CnfValidator) validateHistory() error {
	h := cv.conf.History
	switch h.Driver {
	case "file", "sqlite":
		if h.Path == "" {
			return fmt.Errorf("history.path is required for the %s driver", h.Driver)
		}
	case "redis", "postgres":
		if h.Dsn == "" {
			return fmt.Errorf("history.dsn is required for the %s driver", h.Driver)
		}
		if h.Driver == "redis" && h.Key == "" {
			return errors.New("history.key is required for the redis driver")
		}
	}
	return nil
}

// validateCache keeps the warmer ahead of expiry so a fallback solved set is
// always there when a stats fetch stops midway.
func (cv *CnfValidator) validateCache() error {
	c := cv.conf.Cache
	if c.Enabled && c.WarmInterval > 0 && c.WarmInterval >= c.TTL {
		return fmt.Errorf("cache.warmInterval (%s) must be shorter than cache.ttl (%s)", c.WarmInterval, c.TTL)
	}
	return nil
}

func (cv *CnfValidator) validateTiers() error {
	specs := TierSpecs(cv.conf)
	defaultFound := false
	for _, spec := range specs {
		if strings.EqualFold(spec.Name, cv.conf.Selection.DefaultTier) {
			defaultFound = true
		}
	}
	if !defaultFound {
		return fmt.Errorf("default tier %q is not configured", cv.conf.Selection.DefaultTier)
	}

	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return err
		}
		for _, other := range specs[i+1:] {
			if spec.Overlaps(other) {
				return fmt.Errorf("tiers %q and %q overlap", spec.Name, other.Name)
			}
		}
	}
	return nil
}

// TierSpecs returns the configured tiers ordered by level.
func TierSpecs(conf *structures.Config) []models.TierSpec {
	specs := make([]models.TierSpec, 0, len(conf.Selection.Tiers))
	for name, t := range conf.Selection.Tiers {
		specs = append(specs, models.TierSpec{
			Name:       name,
			MinLevel:   t.MinLevel,
			MaxLevel:   t.MaxLevel,
			MinSolvers: t.MinSolvers,
		})
	}
	sort.Slice(specs, func(i, j int) bool {
		if specs[i].MinLevel != specs[j].MinLevel {
			return specs[i].MinLevel < specs[j].MinLevel
		}
		return specs[i].Name < specs[j].Name
	})
	return specs
}
