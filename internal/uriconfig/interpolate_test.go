package uriconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

func TestInterpolateSubstitutesBothDelimiterForms(t *testing.T) {
	env := map[string]string{"HOST": "broker.local", "TOPIC": "sensors"}
	out, missing := Interpolate("mqtt://${HOST}/{{TOPIC}}", lookupFrom(env))
	assert.Equal(t, "mqtt://broker.local/sensors", out)
	assert.Empty(t, missing)
}

func TestInterpolateExpandsUnsetToEmptyAndReportsMissing(t *testing.T) {
	out, missing := Interpolate("${A}-${B}-{{C}}", lookupFrom(map[string]string{"B": "x"}))
	assert.Equal(t, "-x-", out)
	assert.Equal(t, []string{"A", "C"}, missing)
}

func TestInterpolateLeavesPlainStringsUnchanged(t *testing.T) {
	out, missing := Interpolate("no placeholders here", lookupFrom(nil))
	assert.Equal(t, "no placeholders here", out)
	assert.Empty(t, missing)
}

func TestRequiredVarsDeduplicatesAndPreservesOrder(t *testing.T) {
	vars := RequiredVars("${A} then {{B}} then ${A} again")
	assert.Equal(t, []string{"A", "B"}, vars)
}

func TestCheckRequiredReturnsOnlyUnsetNamesInOrder(t *testing.T) {
	unset := CheckRequired([]string{"A", "B", "C"}, lookupFrom(map[string]string{"B": "x"}))
	assert.Equal(t, []string{"A", "C"}, unset)
}
