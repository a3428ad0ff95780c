package normalize

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var uuidShape = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestDeterministicIDIsStableAndUUIDShaped(t *testing.T) {
	a := DeterministicID("tx_rrc", "42-123-45678")
	b := DeterministicID("tx_rrc", "42-123-45678")
	assert.Equal(t, a, b, "same inputs must produce the same ID every time")
	assert.Regexp(t, uuidShape, a)
}

func TestDeterministicIDDiffersByKey(t *testing.T) {
	a := DeterministicID("tx_rrc", "42-123-45678")
	b := DeterministicID("tx_rrc", "42-123-99999")
	assert.NotEqual(t, a, b)
}

func TestDeterministicIDDiffersByNamespace(t *testing.T) {
	a := DeterministicID("tx_rrc", "key")
	b := DeterministicID("ok_occ", "key")
	assert.NotEqual(t, a, b)
}

func TestAssetIDFromAPINumberZeroPads(t *testing.T) {
	got := AssetIDFromAPINumber("tx_rrc", "45678", 10)
	assert.Equal(t, "TX_RRC_0000045678", got)
}

func TestOperatorIDFromNameUsesMatchingKey(t *testing.T) {
	a := OperatorIDFromName("tx_rrc", "Pioneer Natural Resources")
	b := OperatorIDFromName("tx_rrc", "PIONEER NATURAL RESOURCES INC")
	assert.Equal(t, a, b)
}
