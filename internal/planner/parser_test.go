package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_WrappedPlan(t *testing.T) {
	raw := `{"plan": {"Monday": {"title": "Leg Day", "exercises": []}}}`

	plan, err := ParseResponse(raw)
	require.NoError(t, err)
	require.Contains(t, plan.Days, "Monday")
	assert.Equal(t, "Leg Day", plan.Days["Monday"].Title)
}

func TestParseResponse_BareWeekdayKeys(t *testing.T) {
	raw := `{"Monday": {"title": "Push"}, "Thursday": {"title": "Pull"}, "notes": "ignored"}`

	plan, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Len(t, plan.Days, 2)
	assert.Equal(t, "Push", plan.Days["Monday"].Title)
	assert.Equal(t, "Pull", plan.Days["Thursday"].Title)
}

func TestParseResponse_StripsCodeFences(t *testing.T) {
	raw := "```json\n{\"plan\": {\"Tuesday\": {\"title\": \"Upper\"}}}\n```"

	plan, err := ParseResponse(raw)
	require.NoError(t, err)
	assert.Contains(t, plan.Days, "Tuesday")
}

func TestParseResponse_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"not json":     "here is your plan!",
		"no days":      `{"plan": {}}`,
		"wrong shape":  `[1, 2, 3]`,
		"only garbage": `{"notes": "no weekdays here"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseResponse(raw)
			assert.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestFlexNumber_Coercion(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
		valid bool
	}{
		{"plain number", `42`, 42, true},
		{"float", `12.5`, 12.5, true},
		{"numeric string", `"30"`, 30, true},
		{"string with units", `"135 lbs"`, 135, true},
		{"embedded number", `"approx 45 seconds"`, 45, true},
		{"negative", `"-10"`, -10, true},
		{"no digits", `"heavy"`, 0, false},
		{"null", `null`, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexNumber
			require.NoError(t, json.Unmarshal([]byte(tc.input), &f))
			assert.Equal(t, tc.want, f.Value)
			assert.Equal(t, tc.valid, f.Valid)
		})
	}
}

func TestFlexNumber_Or(t *testing.T) {
	assert.Equal(t, float64(8), FlexNumber{}.Or(8))
	assert.Equal(t, float64(10), FlexNumber{Value: 10, Valid: true}.Or(8))
}

func TestRawAlternative_StringOrObject(t *testing.T) {
	var a RawAlternative
	require.NoError(t, json.Unmarshal([]byte(`"Smith Machine"`), &a))
	assert.Equal(t, "Smith Machine", a.Name)

	require.NoError(t, json.Unmarshal([]byte(`{"name": "Leg Press"}`), &a))
	assert.Equal(t, "Leg Press", a.Name)
}

func TestRawMuscleGroups_Shapes(t *testing.T) {
	t.Run("bare array becomes primary", func(t *testing.T) {
		var m RawMuscleGroups
		require.NoError(t, json.Unmarshal([]byte(`["glutes", "hamstrings"]`), &m))
		assert.Equal(t, []string{"glutes", "hamstrings"}, m.Primary)
		assert.Empty(t, m.Secondary)
	})

	t.Run("canonical object", func(t *testing.T) {
		var m RawMuscleGroups
		require.NoError(t, json.Unmarshal([]byte(`{"primary": ["back"], "secondary": ["biceps"]}`), &m))
		assert.Equal(t, []string{"back"}, m.Primary)
		assert.Equal(t, []string{"biceps"}, m.Secondary)
	})

	t.Run("neither shape defaults to empty", func(t *testing.T) {
		var m RawMuscleGroups
		require.NoError(t, json.Unmarshal([]byte(`"legs"`), &m))
		assert.Empty(t, m.Primary)
		assert.Empty(t, m.Secondary)
	})
}

func TestFlexStrings_BareString(t *testing.T) {
	var f FlexStrings
	require.NoError(t, json.Unmarshal([]byte(`"keep your back straight"`), &f))
	assert.Equal(t, FlexStrings{"keep your back straight"}, f)

	require.NoError(t, json.Unmarshal([]byte(`["a", "b"]`), &f))
	assert.Equal(t, FlexStrings{"a", "b"}, f)
}

func TestRawPlan_RoundTrip(t *testing.T) {
	raw := `{"plan": {"Monday": {"title": "Leg Day", "isRestDay": false, "exercises": []}}}`

	plan, err := ParseResponse(raw)
	require.NoError(t, err)

	encoded, err := json.Marshal(plan)
	require.NoError(t, err)

	again, err := ParseResponse(string(encoded))
	require.NoError(t, err)
	assert.Equal(t, plan.Days["Monday"].Title, again.Days["Monday"].Title)
}
