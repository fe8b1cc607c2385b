package progression

import "github.com/questkeeper-app/questkeeper/internal/domain"

// DeriveStats computes the combat-facing numbers for a character. Pure and
// deterministic: same character in, same stats out, with no error conditions.
// Each output is monotonically non-decreasing in every input attribute, so
// progression never makes a character worse.
func DeriveStats(c domain.Character) domain.DerivedStats {
	return domain.DerivedStats{
		MaxHealth: BaseHealth + float64(c.Health)*HealthPerPoint + float64(c.Level)*HealthPerLevel,
		MaxMana:   float64(c.Intelligence)*ManaPerPoint + float64(c.Level)*ManaPerLevel,
		Attack:    float64(c.Strength)*AttackPerPoint + float64(c.Level)*AttackPerLevel,
		Defense:   float64(c.Health)*DefensePerPoint + float64(c.Level)*DefensePerLevel,
	}
}
