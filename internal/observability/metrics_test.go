package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordUserCreated(t *testing.T) {
	before := testutil.ToFloat64(usersCreatedCounter)
	RecordUserCreated()
	if got := testutil.ToFloat64(usersCreatedCounter); got != before+1 {
		t.Fatalf("expected counter %v got %v", before+1, got)
	}
}

func TestRecordExercisePersisted(t *testing.T) {
	ts := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	before := testutil.ToFloat64(exercisesCreatedCounter)
	RecordExercisePersisted(ts)

	if got := testutil.ToFloat64(exercisesCreatedCounter); got != before+1 {
		t.Fatalf("expected counter %v got %v", before+1, got)
	}
	if got := testutil.ToFloat64(exercisePersistGauge); got != float64(ts.Unix()) {
		t.Fatalf("expected gauge %v got %v", float64(ts.Unix()), got)
	}
}

func TestRecordExercisePersistedZeroTimeKeepsGauge(t *testing.T) {
	ts := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	RecordExercisePersisted(ts)
	RecordExercisePersisted(time.Time{})

	if got := testutil.ToFloat64(exercisePersistGauge); got != float64(ts.Unix()) {
		t.Fatalf("zero timestamp must not move the gauge, got %v", got)
	}
}
