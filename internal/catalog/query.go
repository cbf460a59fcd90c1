package catalog

import (
	"fmt"
	"probpick/internal/models"
	"probpick/internal/structures"
	"strings"
)

// QueryBuilder renders catalog search queries. The exclusion list is fixed at
// construction and applied to every candidate query.
type QueryBuilder struct {
	exclusions []string
}

func NewQueryBuilder(conf *structures.Config) *QueryBuilder {
	return &QueryBuilder{exclusions: append([]string(nil), conf.Selection.ExcludeUsers...)}
}

func (qb *QueryBuilder) Exclusions() []string {
	return append([]string(nil), qb.exclusions...)
}

func (qb *QueryBuilder) Build(tier models.TierSpec) string {
	return BuildQuery(tier, qb.exclusions)
}

// BuildQuery combines the tier band, the solver floor and one negated
// solved_by clause per excluded user, e.g.
// "tier:g5..g4 solved:5000.. !solved_by:alice".
func BuildQuery(tier models.TierSpec, exclusions []string) string {
	parts := make([]string, 0, len(exclusions)+2)

	if tier.MinLevel == tier.MaxLevel {
		parts = append(parts, "tier:"+models.TierCode(tier.MinLevel))
	} else {
		parts = append(parts, fmt.Sprintf("tier:%s..%s", models.TierCode(tier.MinLevel), models.TierCode(tier.MaxLevel)))
	}
	if tier.MinSolvers > 0 {
		parts = append(parts, fmt.Sprintf("solved:%d..", tier.MinSolvers))
	}
	for _, user := range exclusions {
		parts = append(parts, "!solved_by:"+user)
	}
	return strings.Join(parts, " ")
}

func SolvedByQuery(userID string) string {
	return "solved_by:" + userID
}
