package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersEveryFamily(t *testing.T) {
	c := New()

	counts := map[Family]int{}
	for _, op := range c.All() {
		counts[op.Family]++
	}

	assert.Equal(t, 9, counts[FamilyShift])
	assert.Equal(t, 10, counts[FamilyJob])
	assert.Equal(t, 8, counts[FamilyGoal])
	assert.Equal(t, 7, counts[FamilyContact])
	assert.Equal(t, 11, counts[FamilyInvoice])
	assert.Equal(t, 8, counts[FamilyAnalytics])
	assert.Equal(t, 13, counts[FamilySettings])
	assert.Equal(t, 2, counts[FamilyUtility])
	assert.Equal(t, 68, c.Len())
}

func TestLookup(t *testing.T) {
	c := New()

	op, found := c.Lookup("add_shift")
	require.True(t, found)
	assert.Equal(t, FamilyShift, op.Family)
	assert.True(t, op.AutoJob)
	assert.Equal(t, []string{"date"}, op.DateParams)

	_, found = c.Lookup("no_such_operation")
	assert.False(t, found)
}

// Every operation annotated as guarded must actually expose the confirmed
// parameter, and vice versa.
func TestConfirmAnnotationMatchesParams(t *testing.T) {
	for _, op := range New().All() {
		_, hasParam := op.Params["confirmed"]
		assert.Equal(t, op.Confirm, hasParam,
			"operation %s: Confirm annotation and confirmed param disagree", op.Name)
	}
}

// Date parameters must name real string parameters of the operation.
func TestDateParamsExist(t *testing.T) {
	for _, op := range New().All() {
		for _, name := range op.DateParams {
			p, found := op.Params[name]
			require.True(t, found, "operation %s: date param %s not declared", op.Name, name)
			assert.Equal(t, "string", p.Type, "operation %s: date param %s must be a string", op.Name, name)
		}
	}
}

func TestToolsEncoding(t *testing.T) {
	c := New()
	tools := c.Tools()
	require.Equal(t, c.Len(), len(tools))

	var schema map[string]any
	for _, tool := range tools {
		if tool.Name == "delete_shift" {
			schema = tool.InputSchema
		}
	}
	require.NotNil(t, schema)

	want := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"date": map[string]any{
				"type":        "string",
				"description": "Date of shift to delete",
			},
			"confirmed": map[string]any{
				"type":        "boolean",
				"description": "Set true ONLY after the user has explicitly approved the previewed change. False or omitted returns a preview.",
			},
		},
		"required": []string{"date"},
	}
	if diff := cmp.Diff(want, schema); diff != "" {
		t.Errorf("delete_shift schema mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumsCarriedIntoSchema(t *testing.T) {
	c := New()
	op, found := c.Lookup("change_theme")
	require.True(t, found)
	assert.ElementsMatch(t, ThemeNames, op.Params["theme"].Enum)
	assert.True(t, op.Params["theme"].Required)
}
