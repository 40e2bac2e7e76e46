package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Pauljlane12/fitivabackend/internal/domain"
)

// ErrMalformedResponse means the model output could not be parsed as a plan.
// The wrapped error text carries a truncated copy of the raw response.
var ErrMalformedResponse = errors.New("malformed generation response")

const rawDiagnosticLimit = 300

// ParseResponse strips code-fence noise from a raw model response and decodes
// it into the loose plan shape. All domain coercion happens later, in
// sanitization; parsing only establishes structure.
func ParseResponse(raw string) (*RawPlan, error) {
	cleaned := StripCodeFences(raw)
	if strings.TrimSpace(cleaned) == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var plan RawPlan
	if err := json.Unmarshal([]byte(cleaned), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrMalformedResponse, err, truncateRaw(raw))
	}
	if len(plan.Days) == 0 {
		return nil, fmt.Errorf("%w: no days present: %s", ErrMalformedResponse, truncateRaw(raw))
	}
	return &plan, nil
}

var codeFenceRe = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*(.*?)\\s*```\\s*$")

// StripCodeFences removes a wrapping ``` or ```json fence if present.
func StripCodeFences(s string) string {
	if m := codeFenceRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return strings.TrimSpace(s)
}

func truncateRaw(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= rawDiagnosticLimit {
		return s
	}
	return s[:rawDiagnosticLimit] + "..."
}

// RawPlan is the loosely-typed parsed plan, keyed by weekday. It accepts both
// the canonical {"plan": {...}} wrapper and bare weekday keys at top level.
type RawPlan struct {
	Days map[string]*RawDay
}

func (p *RawPlan) UnmarshalJSON(data []byte) error {
	var wrapper struct {
		Plan map[string]*RawDay `json:"plan"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Plan) > 0 {
		p.Days = wrapper.Plan
		return nil
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	days := map[string]*RawDay{}
	for key, value := range top {
		if !domain.IsWeekday(key) {
			continue
		}
		var day RawDay
		if err := json.Unmarshal(value, &day); err != nil {
			return fmt.Errorf("day %s: %w", key, err)
		}
		days[key] = &day
	}
	p.Days = days
	return nil
}

// MarshalJSON restores the canonical wrapper so a sanitized plan round-trips.
func (p *RawPlan) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Plan map[string]*RawDay `json:"plan"`
	}{Plan: p.Days})
}

// RawDay is one weekday's loose value.
type RawDay struct {
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	EstimatedDuration FlexNumber    `json:"estimatedDuration"`
	Intensity         string        `json:"intensity"`
	RestDay           bool          `json:"isRestDay"`
	RestReason        string        `json:"restReason"`
	Exercises         []RawExercise `json:"exercises"`
}

// RawExercise mirrors PlannedExercise with every field the model habitually
// mangles modeled as a tolerant union type. Normalized exactly once, in
// sanitization; nothing downstream branches on the loose shapes again.
type RawExercise struct {
	ID   FlexString `json:"id"`
	Name string     `json:"name"`
	Sets FlexNumber `json:"sets"`
	Reps FlexNumber `json:"reps"`

	Equipment         RawEquipment    `json:"equipment"`
	RecommendedWeight RawWeight       `json:"recommendedWeight"`
	MuscleGroups      RawMuscleGroups `json:"muscleGroups"`

	RestTime     FlexNumber      `json:"restTime"`
	Description  string          `json:"description"`
	Instructions FlexStrings     `json:"instructions"`
	Tips         FlexStrings     `json:"tips"`
	Difficulty   string          `json:"difficulty"`
	Progressions RawProgressions `json:"progressions"`
	Tempo        *RawTempo       `json:"tempo"`
}

// RawEquipment tolerates missing alternatives and bare-string entries.
type RawEquipment struct {
	Primary      string           `json:"primary"`
	Alternatives []RawAlternative `json:"alternatives"`
}

// RawAlternative accepts either "Smith Machine" or {"name": "Smith Machine"}.
type RawAlternative struct {
	Name string `json:"name"`
}

func (a *RawAlternative) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.Name = obj.Name
	return nil
}

// RawWeight holds the per-tier weights before numeric coercion.
type RawWeight struct {
	Beginner     FlexNumber `json:"beginner"`
	Intermediate FlexNumber `json:"intermediate"`
	Advanced     FlexNumber `json:"advanced"`
	UserLevel    FlexNumber `json:"userLevel"`
}

// RawMuscleGroups accepts the canonical {"primary": [...], "secondary": [...]}
// object, a bare array (treated as primary), or anything else (empty).
type RawMuscleGroups struct {
	Primary   []string
	Secondary []string
}

func (m *RawMuscleGroups) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		m.Primary = arr
		m.Secondary = nil
		return nil
	}
	var obj struct {
		Primary   []string `json:"primary"`
		Secondary []string `json:"secondary"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		m.Primary = obj.Primary
		m.Secondary = obj.Secondary
		return nil
	}
	// Neither array nor the expected object: default to empty.
	m.Primary = nil
	m.Secondary = nil
	return nil
}

func (m RawMuscleGroups) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Primary   []string `json:"primary"`
		Secondary []string `json:"secondary"`
	}{Primary: m.Primary, Secondary: m.Secondary})
}

// RawProgressions tolerates absent fields.
type RawProgressions struct {
	Easier string `json:"easier"`
	Harder string `json:"harder"`
}

// RawTempo holds the optional cadence object with tolerant numbers.
type RawTempo struct {
	Eccentric   FlexNumber `json:"eccentric"`
	PauseBottom FlexNumber `json:"pauseBottom"`
	Concentric  FlexNumber `json:"concentric"`
}

// FlexString accepts a JSON string or number and stores it as a string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// FlexStrings accepts a JSON array of strings or a single bare string.
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*f = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		*f = []string{s}
		return nil
	}
	*f = nil
	return nil
}

// FlexNumber accepts a JSON number, a numeric string with stray text or
// units ("135 lbs"), or null. Valid is false when nothing numeric could be
// recovered.
type FlexNumber struct {
	Value float64
	Valid bool
}

var numberRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	// Unmarshaling null into a float64 is a silent no-op, so it has to be
	// rejected before the numeric decode marks the value valid.
	if string(data) == "null" {
		f.Value = 0
		f.Valid = false
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		f.Value = n
		f.Valid = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if m := numberRe.FindString(s); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				f.Value = v
				f.Valid = true
				return nil
			}
		}
	}
	f.Value = 0
	f.Valid = false
	return nil
}

func (f FlexNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// Or returns the numeric value, or fallback when none was recovered.
func (f FlexNumber) Or(fallback float64) float64 {
	if f.Valid {
		return f.Value
	}
	return fallback
}
