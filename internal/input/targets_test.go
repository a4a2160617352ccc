package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/audit-service/internal/entity"
)

func TestParseTargets(t *testing.T) {
	csv := "url,description\n" +
		"https://a.test,Site A\n" +
		"https://b.test,\n" +
		",orphan description\n" +
		"  https://c.test  ,  Site C  \n"

	targets, err := parseTargets(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []entity.PageTarget{
		{URL: "https://a.test", Label: "Site A"},
		{URL: "https://b.test", Label: DefaultLabel},
		{URL: "https://c.test", Label: "Site C"},
	}, targets)
}

func TestParseTargetsColumnOrderIndependent(t *testing.T) {
	csv := "description,url\nSite A,https://a.test\n"

	targets, err := parseTargets(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "https://a.test", targets[0].URL)
	assert.Equal(t, "Site A", targets[0].Label)
}

func TestParseTargetsNoDescriptionColumn(t *testing.T) {
	csv := "url\nhttps://a.test\n"

	targets, err := parseTargets(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, DefaultLabel, targets[0].Label)
}

func TestParseTargetsMissingURLColumn(t *testing.T) {
	csv := "description\nSite A\n"

	_, err := parseTargets(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParseTargetsShortRows(t *testing.T) {
	csv := "url,description\nhttps://a.test\n"

	targets, err := parseTargets(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, DefaultLabel, targets[0].Label)
}

func TestLoadTargetsMissingFile(t *testing.T) {
	_, err := LoadTargets("/does/not/exist.csv")
	assert.Error(t, err)
}
