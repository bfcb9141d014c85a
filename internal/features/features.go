package features

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Count is the width of the feature vector both models and the scaler were
// fit on. Order and count must never change without retraining.
const Count = 14

// Names lists the features in training order.
var Names = []string{
	"salary_brut",
	"salary_net",
	"seniority_years",
	"attendance_rate",
	"absences_count",
	"late_days",
	"performance_score",
	"objectives_completion",
	"annual_leave_taken",
	"sick_leave_count",
	"overtime_hours",
	"department_code",
	"contract_type_code",
	"age",
}

// Record is a loose employee snapshot as received on the wire. Every field
// is optional; absent fields fall back to the documented defaults.
type Record map[string]any

// EmployeeID returns the pass-through identifier, or nil when absent.
func (r Record) EmployeeID() any {
	return r["employee_id"]
}

// Vector is an ordered feature vector matching Names.
type Vector [Count]float64

func (v Vector) Values() []float64 {
	out := make([]float64, Count)
	copy(out, v[:])
	return out
}

var departmentCodes = map[string]float64{
	"IT":         1,
	"RH":         2,
	"Finance":    3,
	"Commercial": 4,
	"Production": 5,
	"Marketing":  6,
	"Direction":  7,
}

var contractTypeCodes = map[string]float64{
	"CDI":       1,
	"CDD":       2,
	"SIVP":      3,
	"KARAMA":    4,
	"Freelance": 5,
	"Stage":     6,
}

// Derive builds the feature vector for a record, evaluated at now. It is a
// pure function: same record and clock always produce the same vector.
// Unparsable numeric fields or a malformed hireDate fail the whole record;
// a bad birthDate falls back to the default age instead.
func Derive(rec Record, now time.Time) (Vector, error) {
	var v Vector

	salaryBrut, err := numField(rec, "salary_brut", 0)
	if err != nil {
		return Vector{}, err
	}
	salaryNet, err := numField(rec, "salary_net", 0)
	if err != nil {
		return Vector{}, err
	}

	seniority, err := seniorityYears(rec, now)
	if err != nil {
		return Vector{}, err
	}

	attendance, err := nestedMap(rec, "attendance")
	if err != nil {
		return Vector{}, err
	}
	attendanceRate, err := numField(attendance, "rate", 0.85)
	if err != nil {
		return Vector{}, err
	}
	absences, err := intField(attendance, "absences", 0)
	if err != nil {
		return Vector{}, err
	}
	lateDays, err := intField(attendance, "late_days", 0)
	if err != nil {
		return Vector{}, err
	}

	performance, err := nestedMap(rec, "performance")
	if err != nil {
		return Vector{}, err
	}
	performanceScore, err := numField(performance, "score", 3.0)
	if err != nil {
		return Vector{}, err
	}
	objectives, err := numField(performance, "objectives", 0.75)
	if err != nil {
		return Vector{}, err
	}

	leaves, err := nestedMap(rec, "leaves")
	if err != nil {
		return Vector{}, err
	}
	leaveTaken, err := intField(leaves, "taken", 0)
	if err != nil {
		return Vector{}, err
	}
	sickLeave, err := intField(leaves, "sick", 0)
	if err != nil {
		return Vector{}, err
	}

	overtime, err := numField(rec, "overtime_hours", 0)
	if err != nil {
		return Vector{}, err
	}

	v[0] = salaryBrut
	v[1] = salaryNet
	v[2] = seniority
	v[3] = attendanceRate
	v[4] = absences
	v[5] = lateDays
	v[6] = performanceScore
	v[7] = objectives
	v[8] = leaveTaken
	v[9] = sickLeave
	v[10] = overtime
	v[11] = enumCode(rec, "department", departmentCodes)
	v[12] = enumCode(rec, "contract_type", contractTypeCodes)
	v[13] = ageYears(rec, now)

	return v, nil
}

func seniorityYears(rec Record, now time.Time) (float64, error) {
	raw, ok := rec["hireDate"]
	if !ok {
		return 0, nil
	}
	s, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("invalid hireDate: expected date string, got %v", raw)
	}
	years, err := yearsBetween(s, now)
	if err != nil {
		return 0, fmt.Errorf("invalid hireDate %q: %w", s, err)
	}
	return years, nil
}

func ageYears(rec Record, now time.Time) float64 {
	const defaultAge = 30.0
	s, ok := rec["birthDate"].(string)
	if !ok || s == "" {
		return defaultAge
	}
	// A malformed birthDate is recovered to the default, never surfaced.
	years, err := yearsBetween(s, now)
	if err != nil {
		return defaultAge
	}
	return years
}

// yearsBetween truncates the value to its date portion, then counts whole
// elapsed days divided by 365.25.
func yearsBetween(value string, now time.Time) (float64, error) {
	datePart := strings.SplitN(value, "T", 2)[0]
	d, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return 0, err
	}
	days := math.Floor(now.Sub(d).Hours() / 24)
	return days / 365.25, nil
}

func enumCode(rec Record, key string, codes map[string]float64) float64 {
	s, ok := rec[key].(string)
	if !ok {
		return 1
	}
	if code, found := codes[s]; found {
		return code
	}
	return 1
}

func nestedMap(rec Record, key string) (Record, error) {
	raw, ok := rec[key]
	if !ok || raw == nil {
		return Record{}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid %s: expected object, got %v", key, raw)
	}
	return Record(m), nil
}

func numField(rec Record, key string, def float64) (float64, error) {
	raw, ok := rec[key]
	if !ok {
		return def, nil
	}
	f, err := toFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func intField(rec Record, key string, def float64) (float64, error) {
	raw, ok := rec[key]
	if !ok {
		return def, nil
	}
	f, err := toInt(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func toFloat(raw any) (float64, error) {
	switch x := raw.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to number", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert %v to number", raw)
	}
}

func toInt(raw any) (float64, error) {
	switch x := raw.(type) {
	case float64:
		return math.Trunc(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("cannot convert %q to integer", x)
		}
		return float64(n), nil
	default:
		return 0, fmt.Errorf("cannot convert %v to integer", raw)
	}
}
