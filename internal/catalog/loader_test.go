package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
cards:
  - id: bolt
    name: Bolt
    element: FIRE
    priority: 1
    types: [ATTACK]
    resolve:
      - do: { kind: damage, amount: 2 }
  - id: drift
    name: Drift
    element: WIND
    priority: slowest
    types: [BOOST]
  - id: ward
    name: Ward
    element: SHADOW
    priority: 3
    types: [RESPONSE]
    conjury: true
    resolve:
      - when: { kind: enemy_has_spell_of_type, spell_type: ATTACK }
        do: { kind: damage, amount: 1 }
      - when: { kind: not, inner: { kind: enemy_has_spell_of_type, spell_type: ATTACK } }
        do: { kind: heal, amount: 1, target: { kind: self } }
`

func TestParseCatalog(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Equal(t, 3, cat.Size())

	bolt, ok := cat.Lookup("bolt")
	require.True(t, ok)
	assert.Equal(t, "Bolt", bolt.Name)
	assert.Equal(t, Priority(1), bolt.Priority)
	assert.True(t, bolt.HasType(SpellTypeAttack))
	require.Len(t, bolt.Resolve, 1)
	assert.Equal(t, ActionDamage, bolt.Resolve[0].Do.Kind)
	assert.True(t, bolt.Resolve[0].When.Always())

	drift, ok := cat.Lookup("drift")
	require.True(t, ok)
	assert.True(t, drift.Priority.IsSlowest())
	assert.Greater(t, drift.Priority.Rank(), Priority(5).Rank())

	ward, ok := cat.Lookup("ward")
	require.True(t, ok)
	assert.True(t, ward.Conjury)
	require.Len(t, ward.Resolve, 2)
	require.NotNil(t, ward.Resolve[1].When.Inner)
	assert.Equal(t, ConditionEnemyHasType, ward.Resolve[1].When.Inner.Kind)
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	doc := `
cards:
  - { id: bolt, name: Bolt, element: FIRE, priority: 1 }
  - { id: bolt, name: Bolt Again, element: FIRE, priority: 2 }
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate card id")
}

func TestParseRejectsInvalidPriority(t *testing.T) {
	doc := `
cards:
  - { id: bad, name: Bad, element: FIRE, priority: 9 }
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid priority")
}

func TestParseRejectsConflictingClashRestrictions(t *testing.T) {
	doc := `
cards:
  - id: bad
    name: Bad
    element: FIRE
    priority: 1
    first_clash_only: true
    last_clash_only: true
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
}

func TestParseRejectsMissingExtraSpellReference(t *testing.T) {
	doc := `
cards:
  - id: bad
    name: Bad
    element: FIRE
    priority: 1
    resolve:
      - do: { kind: cast_extra_spell }
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing card_id")
}

func TestParseKeepsUnknownKinds(t *testing.T) {
	// Unknown kinds are data, not errors: the engine fails closed on
	// them at runtime and Lint reports them.
	doc := `
cards:
  - id: odd
    name: Odd
    element: FIRE
    priority: 1
    resolve:
      - when: { kind: under_a_blood_moon }
        do: { kind: transmute, amount: 1 }
`
	cat, err := Parse([]byte(doc))
	require.NoError(t, err)

	issues := Lint(cat)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0], "unknown condition kind")
	assert.Contains(t, issues[1], "unknown action kind")
}

func TestLintFlagsDanglingExtraSpell(t *testing.T) {
	doc := `
cards:
  - id: caller
    name: Caller
    element: WIND
    priority: 1
    resolve:
      - do: { kind: cast_extra_spell, card_id: missing }
`
	cat, err := Parse([]byte(doc))
	require.NoError(t, err)

	issues := Lint(cat)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "unknown card")
}

func TestLintCleanCatalog(t *testing.T) {
	cat, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	assert.Empty(t, Lint(cat))
}
