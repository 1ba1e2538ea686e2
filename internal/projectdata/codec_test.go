package projectdata

import (
	"testing"

	appErr "github.com/poolcraft/backoffice/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestDecodeNullAndEmpty(t *testing.T) {
	for _, raw := range []string{"", "null", "  null "} {
		n, err := DecodeNotes([]byte(raw))
		require.NoError(t, err)
		require.Nil(t, n)
	}

	b, err := EncodeImages(nil)
	require.NoError(t, err)
	require.Nil(t, b)
}

func TestDecodeKeepsWireNames(t *testing.T) {
	raw := []byte(`{"waterFeatures":{"spa":true,"waterfalls":0},"materials":{"poolShell":"concrete"}}`)
	specs, err := DecodeSpecifications(raw)
	require.NoError(t, err)
	require.True(t, HasWaterFeature(specs, "spa"))
	require.False(t, HasWaterFeature(specs, "waterfalls"))

	out, err := EncodeSpecifications(specs)
	require.NoError(t, err)
	require.JSONEq(t, string(raw), string(out))
}

func TestValidateNotes(t *testing.T) {
	_, err := ValidateNotes([]byte(`{"milestones":[{"id":"m1","title":"Dig","plannedDate":"2024-01-15","status":"pending"}]}`))
	require.NoError(t, err)

	cases := map[string]string{
		"null":            `null`,
		"array":           `[]`,
		"string":          `"notes"`,
		"unknown field":   `{"todo":[]}`,
		"bad status":      `{"milestones":[{"id":"m1","title":"Dig","plannedDate":"2024-01-15","status":"later"}]}`,
		"missing title":   `{"issues":[{"id":"i1","severity":"low","status":"open"}]}`,
		"wrong json type": `{"internal":"note"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateNotes([]byte(raw))
			require.Error(t, err)
			require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
		})
	}
}

func TestValidateSpecificationsEnums(t *testing.T) {
	_, err := ValidateSpecifications([]byte(`{"materials":{"poolShell":"fiberglass","finish":"tile"}}`))
	require.NoError(t, err)

	_, err = ValidateSpecifications([]byte(`{"materials":{"poolShell":"cardboard"}}`))
	require.Error(t, err)
	require.Contains(t, appErr.MessageOf(err), "materials.poolShell")
}

func TestValidateDocumentsChecksTypePerCategory(t *testing.T) {
	_, err := ValidateDocuments([]byte(`{"financial":[{"id":"d1","name":"Invoice 1","url":"u","type":"invoice"}]}`))
	require.NoError(t, err)

	_, err = ValidateDocuments([]byte(`{"financial":[{"id":"d1","name":"Invoice 1","url":"u","type":"warranty"}]}`))
	require.Error(t, err)
}

func TestValidateImages(t *testing.T) {
	_, err := ValidateImages([]byte(`{"gallery":[{"id":"img_1","url":"u","alt":"","category":"gallery","order":0}]}`))
	require.NoError(t, err)

	_, err = ValidateImages([]byte(`{"gallery":[{"id":"img_1","url":"","category":"gallery"}]}`))
	require.Error(t, err)
}

func TestNewIDsArePrefixedAndUnique(t *testing.T) {
	a, b := NewMilestoneID(), NewMilestoneID()
	require.NotEqual(t, a, b)
	require.Regexp(t, `^milestone_[0-9a-f-]{36}$`, a)
	require.Regexp(t, `^img_`, NewImageID())
	require.Regexp(t, `^issue_`, NewIssueID())
}
