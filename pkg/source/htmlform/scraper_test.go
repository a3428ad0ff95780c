package htmlform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHiddenFieldsSurvivesAttributeReordering(t *testing.T) {
	body := []byte(`<html><body><form>
		<input value="abc123" type="hidden" name="__VIEWSTATE" />
		<input name="__EVENTVALIDATION" type="hidden" value="xyz789" />
		<input type="text" name="county" value="Reeves" />
	</form></body></html>`)

	fields, err := ExtractHiddenFields(body)
	require.NoError(t, err)
	assert.Equal(t, "abc123", fields["__VIEWSTATE"])
	assert.Equal(t, "xyz789", fields["__EVENTVALIDATION"])
	assert.NotContains(t, fields, "county")
}
