package bookingflow

import (
	"errors"
	"sort"
	"testing"

	"healthsync/internal/availability"

	"github.com/google/uuid"
)

func slots(t *testing.T, startTimes ...string) []availability.TimeRange {
	t.Helper()
	out := make([]availability.TimeRange, len(startTimes))
	for i, s := range startTimes {
		start, err := availability.ParseClock(s)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", s, err)
		}
		out[i] = availability.TimeRange{Start: start, End: start + 30}
	}
	return out
}

func readyFlow(t *testing.T) *Flow {
	t.Helper()
	f := New(uuid.New())
	if err := f.SelectHospital(1); err != nil {
		t.Fatalf("SelectHospital: %v", err)
	}
	sel, err := f.SelectDate("2026-03-02")
	if err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if !f.DeliverSlots(sel, slots(t, "09:00", "09:30"), nil) {
		t.Fatal("DeliverSlots discarded a current result")
	}
	return f
}

func TestDateRequiresHospital(t *testing.T) {
	f := New(uuid.New())
	if _, err := f.SelectDate("2026-03-02"); !errors.Is(err, ErrNoHospitalSelected) {
		t.Fatalf("expected ErrNoHospitalSelected, got %v", err)
	}
}

func TestTimeUnavailableWhileLoading(t *testing.T) {
	f := New(uuid.New())
	if err := f.SelectHospital(1); err != nil {
		t.Fatalf("SelectHospital: %v", err)
	}
	if _, err := f.SelectDate("2026-03-02"); err != nil {
		t.Fatalf("SelectDate: %v", err)
	}
	if err := f.SelectTime("09:00"); !errors.Is(err, ErrSlotsLoading) {
		t.Fatalf("expected ErrSlotsLoading, got %v", err)
	}
}

func TestSelectTimeMustBeOffered(t *testing.T) {
	f := readyFlow(t)
	if err := f.SelectTime("11:00"); !errors.Is(err, ErrSlotNotOffered) {
		t.Fatalf("expected ErrSlotNotOffered, got %v", err)
	}
	if err := f.SelectTime("09:00"); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}
	if f.State() != StateTimeSelected {
		t.Fatalf("state = %v, want %v", f.State(), StateTimeSelected)
	}
}

func TestSelectTimeNormalizesDisplayString(t *testing.T) {
	f := readyFlow(t)
	if err := f.SelectTime("09:00 - 09:30"); err != nil {
		t.Fatalf("display-formatted time should normalize: %v", err)
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	f := New(uuid.New())
	if err := f.SelectHospital(1); err != nil {
		t.Fatalf("SelectHospital: %v", err)
	}
	selA, err := f.SelectDate("2026-03-02")
	if err != nil {
		t.Fatalf("SelectDate: %v", err)
	}

	// Hospital changes while A's fetch is in flight.
	if err := f.SelectHospital(2); err != nil {
		t.Fatalf("SelectHospital: %v", err)
	}
	selB, err := f.SelectDate("2026-03-02")
	if err != nil {
		t.Fatalf("SelectDate: %v", err)
	}

	if f.DeliverSlots(selA, slots(t, "08:00"), nil) {
		t.Fatal("stale result for hospital 1 must be discarded")
	}
	if !f.DeliverSlots(selB, slots(t, "10:00"), nil) {
		t.Fatal("current result must be applied")
	}

	got := f.Candidates()
	if len(got) != 1 || got[0].Start.String() != "10:00" {
		t.Fatalf("candidates = %v, want hospital 2's list", got)
	}
}

func TestStaleDateResponseDiscarded(t *testing.T) {
	f := New(uuid.New())
	if err := f.SelectHospital(1); err != nil {
		t.Fatalf("SelectHospital: %v", err)
	}
	selA, _ := f.SelectDate("2026-03-02")
	selB, _ := f.SelectDate("2026-03-03")

	if f.DeliverSlots(selA, slots(t, "08:00"), nil) {
		t.Fatal("result for the abandoned date must be discarded")
	}
	if !f.DeliverSlots(selB, slots(t, "09:00"), nil) {
		t.Fatal("result for the current date must be applied")
	}
}

func TestLoadFailureYieldsEmptyWithError(t *testing.T) {
	f := New(uuid.New())
	if err := f.SelectHospital(1); err != nil {
		t.Fatalf("SelectHospital: %v", err)
	}
	sel, _ := f.SelectDate("2026-03-02")
	loadErr := errors.New("connection refused")
	if !f.DeliverSlots(sel, nil, loadErr) {
		t.Fatal("error delivery for current selection must be applied")
	}
	if len(f.Candidates()) != 0 {
		t.Fatal("failed load must leave an empty candidate list")
	}
	if err := f.SelectTime("09:00"); !errors.Is(err, ErrSlotsUnavailable) {
		t.Fatalf("expected ErrSlotsUnavailable, got %v", err)
	}
	if !errors.Is(f.LastError(), loadErr) {
		t.Fatalf("LastError = %v, want %v", f.LastError(), loadErr)
	}
}

func TestHospitalChangeInvalidatesDownstream(t *testing.T) {
	f := readyFlow(t)
	if err := f.SelectTime("09:00"); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}
	if err := f.SelectHospital(2); err != nil {
		t.Fatalf("SelectHospital: %v", err)
	}
	if len(f.Candidates()) != 0 {
		t.Fatal("candidate list must reset on hospital change")
	}
	if _, err := f.Submit(); err == nil {
		t.Fatal("submit must fail after downstream state was invalidated")
	}
}

func TestSubmitEnumeratesMissingFields(t *testing.T) {
	f := New(uuid.New())
	_, err := f.Submit()
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	want := []string{"date", "hospital", "reason", "time", "type"}
	got := append([]string(nil), missing.Fields...)
	sort.Strings(got)
	if len(got) != len(want) {
		t.Fatalf("missing fields = %v, want %v", missing.Fields, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("missing fields = %v, want %v", missing.Fields, want)
		}
	}
}

func TestSubmitPartialMissingFields(t *testing.T) {
	f := readyFlow(t)
	if err := f.SelectTime("09:00"); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}
	_, err := f.Submit()
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if len(missing.Fields) != 2 || missing.Fields[0] != "type" || missing.Fields[1] != "reason" {
		t.Fatalf("missing fields = %v, want [type reason]", missing.Fields)
	}
}

func TestFullFlowSuccess(t *testing.T) {
	f := readyFlow(t)
	if err := f.SelectTime("09:30"); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}
	if err := f.SetDetails("CONSULTATION", "persistent cough"); err != nil {
		t.Fatalf("SetDetails: %v", err)
	}
	if f.State() != StateDetailsComplete {
		t.Fatalf("state = %v, want %v", f.State(), StateDetailsComplete)
	}

	req, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if req.HospitalID != 1 || req.AppointmentDate != "2026-03-02" || req.AppointmentTime != "09:30" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if f.State() != StateSubmitting {
		t.Fatalf("state = %v, want %v", f.State(), StateSubmitting)
	}

	if err := f.Complete(nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if f.State() != StateSucceeded {
		t.Fatalf("state = %v, want %v", f.State(), StateSucceeded)
	}
	if err := f.SelectHospital(3); !errors.Is(err, ErrFlowFinished) {
		t.Fatalf("succeeded flow must be terminal, got %v", err)
	}
}

func TestFailedSubmissionIsRetryable(t *testing.T) {
	f := readyFlow(t)
	if err := f.SelectTime("09:00"); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}
	if err := f.SetDetails("CONSULTATION", "follow-up"); err != nil {
		t.Fatalf("SetDetails: %v", err)
	}
	if _, err := f.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	rejection := errors.New("slot already taken")
	if err := f.Complete(rejection); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if f.State() != StateFailed {
		t.Fatalf("state = %v, want %v", f.State(), StateFailed)
	}
	if !errors.Is(f.LastError(), rejection) {
		t.Fatalf("LastError = %v, want %v", f.LastError(), rejection)
	}

	// Selections survived; a second submit is allowed.
	if _, err := f.Submit(); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if err := f.Complete(nil); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if f.State() != StateSucceeded {
		t.Fatalf("state = %v, want %v", f.State(), StateSucceeded)
	}
}

func TestSelectionsLockedWhileSubmitting(t *testing.T) {
	f := readyFlow(t)
	if err := f.SelectTime("09:00"); err != nil {
		t.Fatalf("SelectTime: %v", err)
	}
	if err := f.SetDetails("CONSULTATION", "follow-up"); err != nil {
		t.Fatalf("SetDetails: %v", err)
	}
	req, err := f.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := f.SelectHospital(2); !errors.Is(err, ErrSubmitting) {
		t.Fatalf("SelectHospital while submitting: got %v, want ErrSubmitting", err)
	}
	if _, err := f.SelectDate("2026-03-03"); !errors.Is(err, ErrSubmitting) {
		t.Fatalf("SelectDate while submitting: got %v, want ErrSubmitting", err)
	}
	if err := f.SelectTime("09:30"); !errors.Is(err, ErrSubmitting) {
		t.Fatalf("SelectTime while submitting: got %v, want ErrSubmitting", err)
	}
	if err := f.SetDetails("FOLLOW_UP", "changed my mind"); !errors.Is(err, ErrSubmitting) {
		t.Fatalf("SetDetails while submitting: got %v, want ErrSubmitting", err)
	}

	// The in-flight request still reflects the submitted selections.
	if req.HospitalID != 1 || req.AppointmentTime != "09:00" {
		t.Fatalf("unexpected request: %+v", req)
	}

	// A failed outcome unlocks the flow again.
	if err := f.Complete(errors.New("slot already taken")); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := f.SelectHospital(2); err != nil {
		t.Fatalf("SelectHospital after failure: %v", err)
	}
}

func TestCompleteWithoutSubmit(t *testing.T) {
	f := readyFlow(t)
	if err := f.Complete(nil); !errors.Is(err, ErrNotSubmitting) {
		t.Fatalf("expected ErrNotSubmitting, got %v", err)
	}
}
