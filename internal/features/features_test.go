package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var evalTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDerive_AllDefaults(t *testing.T) {
	v, err := Derive(Record{}, evalTime)
	assert.NoError(t, err)

	expected := Vector{0, 0, 0, 0.85, 0, 0, 3.0, 0.75, 0, 0, 0, 1, 1, 30.0}
	assert.Equal(t, expected, v)
}

func TestDerive_Scenario(t *testing.T) {
	rec := Record{
		"salary_brut":   3000.0,
		"hireDate":      "2020-01-01",
		"attendance":    map[string]any{"rate": 0.95},
		"department":    "IT",
		"contract_type": "CDI",
	}

	v, err := Derive(rec, evalTime)
	assert.NoError(t, err)
	assert.Equal(t, 3000.0, v[0])
	assert.InDelta(t, 4.0, v[2], 1e-9)
	assert.Equal(t, 0.95, v[3])
	assert.Equal(t, 1.0, v[11])
	assert.Equal(t, 1.0, v[12])
}

func TestDerive_DepartmentCodes(t *testing.T) {
	cases := map[string]float64{
		"IT":         1,
		"RH":         2,
		"Finance":    3,
		"Commercial": 4,
		"Production": 5,
		"Marketing":  6,
		"Direction":  7,
		"Warehouse":  1, // unknown falls back to the first code
	}
	for dept, want := range cases {
		v, err := Derive(Record{"department": dept}, evalTime)
		assert.NoError(t, err)
		assert.Equal(t, want, v[11], "department %s", dept)
	}
}

func TestDerive_ContractTypeCodes(t *testing.T) {
	cases := map[string]float64{
		"CDI":       1,
		"CDD":       2,
		"SIVP":      3,
		"KARAMA":    4,
		"Freelance": 5,
		"Stage":     6,
		"Interim":   1,
	}
	for contract, want := range cases {
		v, err := Derive(Record{"contract_type": contract}, evalTime)
		assert.NoError(t, err)
		assert.Equal(t, want, v[12], "contract %s", contract)
	}
}

func TestDerive_DateWithTimeComponent(t *testing.T) {
	v, err := Derive(Record{"hireDate": "2023-01-01T08:30:00"}, evalTime)
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, v[2], 0.01)
}

func TestDerive_BirthDate(t *testing.T) {
	v, err := Derive(Record{"birthDate": "1994-01-01"}, evalTime)
	assert.NoError(t, err)
	assert.InDelta(t, 30.0, v[13], 0.03)

	// malformed birthDate is recovered to the default, not surfaced
	v, err = Derive(Record{"birthDate": "not-a-date"}, evalTime)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, v[13])

	v, err = Derive(Record{"birthDate": 1994}, evalTime)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, v[13])
}

func TestDerive_MalformedHireDateFails(t *testing.T) {
	_, err := Derive(Record{"hireDate": "01/01/2020"}, evalTime)
	assert.Error(t, err)

	_, err = Derive(Record{"hireDate": 2020}, evalTime)
	assert.Error(t, err)
}

func TestDerive_NumericCoercion(t *testing.T) {
	rec := Record{
		"salary_brut": "2500.50",
		"attendance":  map[string]any{"absences": 3.7, "late_days": "2"},
		"leaves":      map[string]any{"taken": 12.0},
	}
	v, err := Derive(rec, evalTime)
	assert.NoError(t, err)
	assert.Equal(t, 2500.50, v[0])
	assert.Equal(t, 3.0, v[4]) // integer coercion truncates
	assert.Equal(t, 2.0, v[5])
	assert.Equal(t, 12.0, v[8])
}

func TestDerive_InvalidNumericFails(t *testing.T) {
	_, err := Derive(Record{"salary_brut": "abc"}, evalTime)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "salary_brut")

	_, err = Derive(Record{"attendance": map[string]any{"absences": "3.7"}}, evalTime)
	assert.Error(t, err)

	_, err = Derive(Record{"attendance": "full"}, evalTime)
	assert.Error(t, err)
}

func TestDerive_Idempotent(t *testing.T) {
	rec := Record{
		"salary_brut": 3200.0,
		"hireDate":    "2019-06-15",
		"birthDate":   "1990-03-10",
		"attendance":  map[string]any{"rate": 0.92, "absences": 2},
		"department":  "Finance",
	}

	v1, err1 := Derive(rec, evalTime)
	v2, err2 := Derive(rec, evalTime)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, v1, v2)
}

func TestVector_Values(t *testing.T) {
	v, err := Derive(Record{}, evalTime)
	assert.NoError(t, err)

	values := v.Values()
	assert.Len(t, values, Count)
	assert.Len(t, Names, Count)

	// Values returns a copy, mutating it never touches the vector
	values[0] = 999
	assert.Equal(t, 0.0, v[0])
}
