package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/roach88/fwdmuon/internal/histo"
	"github.com/roach88/fwdmuon/internal/pipeline"
	"github.com/roach88/fwdmuon/internal/store"
)

// validIdentifier matches valid SQL identifiers (table/column names).
// Only allows alphanumeric and underscore, must start with letter or underscore.
// This prevents SQL injection via identifier interpolation.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

// assertResult checks that the truth particle produced a result with the
// expected mother and classification.
func assertResult(result *Result, assertion Assertion) error {
	res, ok := result.Find(assertion.ID)
	if !ok {
		return &AssertionError{
			Type:     AssertResult,
			Expected: fmt.Sprintf("result for particle %d", assertion.ID),
			Actual:   fmt.Sprintf("not found among %d results", len(result.Results)),
		}
	}

	if assertion.MotherPDG != 0 && res.MotherPDG != assertion.MotherPDG {
		return &AssertionError{
			Type:     AssertResult,
			Expected: fmt.Sprintf("particle %d mother_pdg = %d", assertion.ID, assertion.MotherPDG),
			Actual:   fmt.Sprintf("mother_pdg = %d", res.MotherPDG),
		}
	}

	if assertion.Prompt != nil && res.IsPrompt != *assertion.Prompt {
		return &AssertionError{
			Type:     AssertResult,
			Expected: fmt.Sprintf("particle %d prompt = %t", assertion.ID, *assertion.Prompt),
			Actual:   fmt.Sprintf("prompt = %t (chain %v)", res.IsPrompt, res.Chain),
		}
	}

	return nil
}

func assertResultCount(result *Result, assertion Assertion) error {
	if got := int64(len(result.Results)); got != assertion.Count {
		return &AssertionError{
			Type:     AssertResultCount,
			Expected: fmt.Sprintf("%d results", assertion.Count),
			Actual:   fmt.Sprintf("%d results", got),
		}
	}
	return nil
}

// assertStat compares a pipeline counter, addressed by its JSON name.
func assertStat(stats pipeline.Stats, assertion Assertion) error {
	counters, err := statsByName(stats)
	if err != nil {
		return err
	}

	got, ok := counters[assertion.Stat]
	if !ok {
		names := make([]string, 0, len(counters))
		for name := range counters {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown stat %q (known: %s)", assertion.Stat, strings.Join(names, ", "))
	}

	if got != assertion.Count {
		return &AssertionError{
			Type:     AssertStat,
			Expected: fmt.Sprintf("%s = %d", assertion.Stat, assertion.Count),
			Actual:   fmt.Sprintf("%s = %d", assertion.Stat, got),
		}
	}
	return nil
}

func statsByName(stats pipeline.Stats) (map[string]int64, error) {
	data, err := json.Marshal(stats)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}
	var counters map[string]int64
	if err := json.Unmarshal(data, &counters); err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	return counters, nil
}

func assertHistogramEntries(snaps []histo.Snapshot, assertion Assertion) error {
	for _, s := range snaps {
		if s.Name != assertion.Histogram {
			continue
		}
		if s.Entries != assertion.Count {
			return &AssertionError{
				Type:     AssertHistogramEntries,
				Expected: fmt.Sprintf("%s filled %d times", assertion.Histogram, assertion.Count),
				Actual:   fmt.Sprintf("%d entries", s.Entries),
			}
		}
		return nil
	}
	return fmt.Errorf("unknown histogram %q", assertion.Histogram)
}

// assertFinalState checks if a store table contains expected values.
// Rows are restricted to the scenario's run when the table has a run_id
// column; remaining filters come from assertion.Where.
//
// Security: Table and column names are validated against a whitelist pattern
// to prevent SQL injection via identifier interpolation.
func assertFinalState(ctx context.Context, st *store.Store, runID string, assertion Assertion) error {
	if !validIdentifier.MatchString(assertion.Table) {
		return fmt.Errorf("invalid table name %q: must match pattern %s", assertion.Table, validIdentifier.String())
	}

	where := make(map[string]interface{}, len(assertion.Where)+1)
	for k, v := range assertion.Where {
		where[k] = v
	}
	if assertion.Table == "runs" {
		where["id"] = runID
	} else {
		where["run_id"] = runID
	}

	whereSQL, whereArgs, err := buildWhereClause(where)
	if err != nil {
		return err
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s", assertion.Table, whereSQL)
	rows, err := st.Query(ctx, query, whereArgs...)
	if err != nil {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("query table %s", assertion.Table),
			Actual:   fmt.Sprintf("query error: %v", err),
		}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("get columns: %w", err)
	}

	if !rows.Next() {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("row in %s where %s", assertion.Table, formatWhereClause(assertion.Where)),
			Actual:   "row not found",
		}
	}

	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	if err := rows.Scan(valuePtrs...); err != nil {
		return fmt.Errorf("scan row: %w", err)
	}

	// Check for multiple matching rows (would indicate ambiguous assertion)
	if rows.Next() {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("exactly one row in %s where %s", assertion.Table, formatWhereClause(assertion.Where)),
			Actual:   "multiple rows matched (assertion is ambiguous)",
		}
	}

	actualRow := make(map[string]interface{}, len(columns))
	for i, col := range columns {
		actualRow[col] = values[i]
	}

	// Subset semantics: only check columns named in Expect, in sorted order
	// so the first reported mismatch is stable.
	keys := make([]string, 0, len(assertion.Expect))
	for k := range assertion.Expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		expectedValue := assertion.Expect[key]
		actualValue, exists := actualRow[key]
		if !exists {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q to exist", key),
				Actual:   fmt.Sprintf("field %q not present in result columns: %v", key, columns),
			}
		}

		if !stateValuesEqual(expectedValue, actualValue) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q = %v (type %T)", key, expectedValue, expectedValue),
				Actual:   fmt.Sprintf("field %q = %v (type %T)", key, actualValue, actualValue),
			}
		}
	}

	return nil
}

// buildWhereClause constructs parameterized WHERE clause from where.
// Returns SQL fragment, arguments slice, and error. Keys are sorted for determinism.
//
// Security: Column names are validated against a whitelist pattern to prevent
// SQL injection via identifier interpolation.
func buildWhereClause(where map[string]interface{}) (string, []interface{}, error) {
	if len(where) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))

	for _, key := range keys {
		if !validIdentifier.MatchString(key) {
			return "", nil, fmt.Errorf("invalid column name %q in where clause: must match pattern %s", key, validIdentifier.String())
		}
		clauses = append(clauses, fmt.Sprintf("%s = ?", key))
		args = append(args, toSQLValue(where[key]))
	}

	return strings.Join(clauses, " AND "), args, nil
}

// toSQLValue converts a YAML-decoded value to a SQL-compatible value.
func toSQLValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bool:
		if val {
			return int64(1)
		}
		return int64(0)
	case string, int, int64, float64:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatWhereClause creates a human-readable description of WHERE conditions.
func formatWhereClause(where map[string]interface{}) string {
	if len(where) == 0 {
		return "(no conditions)"
	}

	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, where[k]))
	}
	return strings.Join(parts, " AND ")
}

// stateValuesEqual compares expected and actual values from store tables.
// Handles type coercion for SQLite values which may be returned as different types.
func stateValuesEqual(expected, actual interface{}) bool {
	if expected == nil && actual == nil {
		return true
	}
	if expected == nil || actual == nil {
		return false
	}

	switch exp := expected.(type) {
	case string:
		switch a := actual.(type) {
		case string:
			return exp == a
		case []byte:
			return exp == string(a)
		}
		return false
	case int:
		return stateValuesEqual(int64(exp), actual)
	case int64:
		switch a := actual.(type) {
		case int64:
			return exp == a
		case float64:
			return float64(exp) == a
		}
		return false
	case float64:
		switch a := actual.(type) {
		case float64:
			return exp == a
		case int64:
			return exp == float64(a)
		}
		return false
	case bool:
		if actualBool, ok := actual.(bool); ok {
			return exp == actualBool
		}
		// SQLite stores booleans as integers
		if actualInt, ok := actual.(int64); ok {
			return exp == (actualInt != 0)
		}
		return false
	}

	return reflect.DeepEqual(expected, actual)
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
	RunID string
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides database access for final_state assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertResult:
			err = assertResult(result, assertion)
		case AssertResultCount:
			err = assertResultCount(result, assertion)
		case AssertStat:
			err = assertStat(result.Stats, assertion)
		case AssertHistogramEntries:
			err = assertHistogramEntries(result.Histograms, assertion)
		case AssertFinalState:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: final_state requires database context", i)
			} else {
				err = assertFinalState(actx.Ctx, actx.Store, actx.RunID, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
