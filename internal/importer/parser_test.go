package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignee(t *testing.T) {
	t.Parallel()

	a, err := ParseAssignee("organization: Acme Corp, city: Austin, state: TX, country: US")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "Acme Corp", a.Organization)
	require.NotNil(t, a.City)
	assert.Equal(t, "Austin", *a.City)
	require.NotNil(t, a.State)
	assert.Equal(t, "TX", *a.State)
	assert.Equal(t, "US", a.Country)
}

func TestParseAssignee_BlankCityStateAreNil(t *testing.T) {
	t.Parallel()

	a, err := ParseAssignee("organization: Siemens AG, city: , state: , country: DE")
	require.NoError(t, err)
	assert.Nil(t, a.City)
	assert.Nil(t, a.State)
	assert.Equal(t, "DE", a.Country)
}

func TestParseAssignee_AnyOrderAndCase(t *testing.T) {
	t.Parallel()

	a, err := ParseAssignee("Country: JP, Organization: Sony, State: , City: Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Sony", a.Organization)
	assert.Equal(t, "Tokyo", *a.City)
	assert.Nil(t, a.State)
}

func TestParseAssignee_Empty(t *testing.T) {
	t.Parallel()

	a, err := ParseAssignee("   \n ")
	assert.NoError(t, err)
	assert.Nil(t, a)
}

func TestParseAssignee_Malformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"free text":        "Acme Corp, Austin TX",
		"missing country":  "organization: Acme, city: Austin, state: TX",
		"empty org":        "organization: , city: Austin, state: TX, country: US",
		"unknown key":      "organization: Acme, city: A, state: B, country: US, zip: 78701",
		"duplicate key":    "organization: Acme, organization: Other, city: A, state: B, country: US",
		"comma in value":   "organization: Acme, Inc., city: A, state: B, country: US",
		"trailing comma":   "organization: Acme, city: A, state: B, country: US,",
		"inventor in cell": "first name: J, last name: D, city: , state: , country: US",
	}
	for name, cell := range cases {
		t.Run(name, func(t *testing.T) {
			a, err := ParseAssignee(cell)
			assert.Nil(t, a)
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, 1, pe.Line)
		})
	}
}

func TestParseInventors(t *testing.T) {
	t.Parallel()

	cell := "first name: Jane, last name: Doe, city: Austin, state: TX, country: US\r\n" +
		"\n" +
		"first name: Kenji, last name: Sato, city: , state: , country: JP"
	inv, problems := ParseInventors(cell)
	assert.Empty(t, problems)
	require.Len(t, inv, 2)

	assert.Equal(t, "Jane", inv[0].FirstName)
	assert.Equal(t, "Doe", inv[0].LastName)
	assert.Equal(t, "Austin", *inv[0].City)
	assert.Equal(t, "Kenji", inv[1].FirstName)
	assert.Nil(t, inv[1].City)
	assert.Nil(t, inv[1].State)
	assert.Equal(t, "JP", inv[1].Country)
}

func TestParseInventors_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	cell := "first name: A, last name: B, city: , state: , country: US\n" +
		"garbage line\n" +
		"first name: C, last name: , city: , state: , country: US\n" +
		"first_name: E, last_name: F, city: X, state: Y, country: FR"
	inv, problems := ParseInventors(cell)

	require.Len(t, inv, 2)
	assert.Equal(t, "A", inv[0].FirstName)
	assert.Equal(t, "E", inv[1].FirstName)

	require.Len(t, problems, 2)
	assert.Equal(t, 2, problems[0].Line)
	assert.Equal(t, "garbage line", problems[0].Text)
	assert.Equal(t, 3, problems[1].Line)
	assert.Contains(t, problems[1].Reason, "last name")
}

func TestParseInventors_Empty(t *testing.T) {
	t.Parallel()

	inv, problems := ParseInventors("")
	assert.Empty(t, inv)
	assert.Empty(t, problems)
}
