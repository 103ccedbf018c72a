package bookingflow

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"healthsync/internal/availability"

	"github.com/google/uuid"
)

// State of a booking flow instance.
type State string

const (
	StateNoHospital       State = "NO_HOSPITAL"
	StateHospitalSelected State = "HOSPITAL_SELECTED"
	StateDateSelected     State = "DATE_SELECTED"
	StateTimeSelected     State = "TIME_SELECTED"
	StateDetailsComplete  State = "DETAILS_COMPLETE"
	StateSubmitting       State = "SUBMITTING"
	StateSucceeded        State = "SUCCEEDED"
	StateFailed           State = "FAILED"
)

var (
	ErrNoHospitalSelected = errors.New("select a hospital first")
	ErrNoDateSelected     = errors.New("select a date first")
	ErrSlotsLoading       = errors.New("time slots are still loading")
	ErrSlotsUnavailable   = errors.New("time slots could not be loaded")
	ErrSlotNotOffered     = errors.New("selected time is not an open slot")
	ErrFlowFinished       = errors.New("booking flow already completed")
	ErrSubmitting         = errors.New("submission in progress")
	ErrNotSubmitting      = errors.New("no submission in progress")
)

// MissingFieldsError reports which required fields block a submission.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Selection identifies one (hospital, date) slot query. A load result is
// applied only while its selection still matches the flow's current one;
// anything else is a stale response and is discarded.
type Selection struct {
	HospitalID int64
	Date       string // YYYY-MM-DD
}

// Request is the submission payload produced by a completed flow.
type Request struct {
	DoctorID        uuid.UUID
	HospitalID      int64
	AppointmentDate string
	AppointmentTime string
	Type            string
	Reason          string
}

// Flow tracks the hospital -> date -> time selection dependency chain of one
// booking attempt. Changing an upstream selection invalidates everything
// downstream of it. The flow itself performs no I/O: SelectDate hands back a
// Selection key, the caller loads candidate slots however it likes and
// reports back through DeliverSlots.
type Flow struct {
	mu sync.Mutex

	doctorID uuid.UUID
	state    State

	hospitalID int64
	date       string
	timeSlot   string
	apptType   string
	reason     string

	loading    bool
	loadErr    error
	candidates []availability.TimeRange

	lastErr error
}

func New(doctorID uuid.UUID) *Flow {
	return &Flow{doctorID: doctorID, state: StateNoHospital}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Candidates returns the currently loaded, filtered slot list.
func (f *Flow) Candidates() []availability.TimeRange {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]availability.TimeRange, len(f.candidates))
	copy(out, f.candidates)
	return out
}

// LastError returns the error recorded by the most recent failed submission
// or slot load.
func (f *Flow) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return f.loadErr
	}
	return f.lastErr
}

func (f *Flow) finished() bool {
	return f.state == StateSucceeded
}

// SelectHospital picks a hospital and invalidates the date, time, and
// candidate list chosen under any previous hospital.
func (f *Flow) SelectHospital(hospitalID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finished() {
		return ErrFlowFinished
	}
	if f.state == StateSubmitting {
		return ErrSubmitting
	}
	f.hospitalID = hospitalID
	f.date = ""
	f.timeSlot = ""
	f.candidates = nil
	f.loading = false
	f.loadErr = nil
	f.state = StateHospitalSelected
	return nil
}

// SelectDate picks a date and returns the Selection key the caller must
// attach to its slot fetch. Time selection stays unavailable until the
// matching DeliverSlots arrives.
func (f *Flow) SelectDate(date string) (Selection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finished() {
		return Selection{}, ErrFlowFinished
	}
	if f.state == StateSubmitting {
		return Selection{}, ErrSubmitting
	}
	if f.hospitalID == 0 {
		return Selection{}, ErrNoHospitalSelected
	}
	f.date = date
	f.timeSlot = ""
	f.candidates = nil
	f.loading = true
	f.loadErr = nil
	f.state = StateDateSelected
	return Selection{HospitalID: f.hospitalID, Date: date}, nil
}

// DeliverSlots reports the outcome of a slot fetch. The result is applied
// only when sel still matches the current selection; a late result for an
// abandoned selection returns false and changes nothing.
func (f *Flow) DeliverSlots(sel Selection, slots []availability.TimeRange, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sel.HospitalID != f.hospitalID || sel.Date != f.date {
		return false
	}
	f.loading = false
	if err != nil {
		// Treated as "no data": empty candidate list plus a reportable error.
		f.loadErr = err
		f.candidates = nil
		return true
	}
	f.loadErr = nil
	f.candidates = slots
	return true
}

// SelectTime picks a start time from the loaded candidate list.
func (f *Flow) SelectTime(start string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finished() {
		return ErrFlowFinished
	}
	if f.state == StateSubmitting {
		return ErrSubmitting
	}
	if f.date == "" {
		return ErrNoDateSelected
	}
	if f.loading {
		return ErrSlotsLoading
	}
	if f.loadErr != nil {
		return ErrSlotsUnavailable
	}
	key, ok := availability.NormalizeStart(start)
	if !ok {
		return ErrSlotNotOffered
	}
	for _, c := range f.candidates {
		if c.Start.String() == key {
			f.timeSlot = key
			f.state = StateTimeSelected
			return nil
		}
	}
	return ErrSlotNotOffered
}

// SetDetails records the appointment type and reason.
func (f *Flow) SetDetails(apptType, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finished() {
		return ErrFlowFinished
	}
	if f.state == StateSubmitting {
		return ErrSubmitting
	}
	f.apptType = strings.TrimSpace(apptType)
	f.reason = strings.TrimSpace(reason)
	if f.state == StateTimeSelected && f.apptType != "" && f.reason != "" {
		f.state = StateDetailsComplete
	}
	return nil
}

// Submit validates that every required field is populated and moves the flow
// to Submitting. A refusal enumerates exactly the missing fields.
func (f *Flow) Submit() (*Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finished() {
		return nil, ErrFlowFinished
	}

	var missing []string
	if f.hospitalID == 0 {
		missing = append(missing, "hospital")
	}
	if f.date == "" {
		missing = append(missing, "date")
	}
	if f.timeSlot == "" {
		missing = append(missing, "time")
	}
	if f.apptType == "" {
		missing = append(missing, "type")
	}
	if f.reason == "" {
		missing = append(missing, "reason")
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	f.state = StateSubmitting
	return &Request{
		DoctorID:        f.doctorID,
		HospitalID:      f.hospitalID,
		AppointmentDate: f.date,
		AppointmentTime: f.timeSlot,
		Type:            f.apptType,
		Reason:          f.reason,
	}, nil
}

// Complete records the submission outcome. Success is terminal for the flow
// instance; failure keeps every selection and returns to DetailsComplete so
// the user can retry.
func (f *Flow) Complete(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSubmitting {
		return ErrNotSubmitting
	}
	if err != nil {
		// Selections survive a failure; the user may adjust and resubmit.
		f.lastErr = err
		f.state = StateFailed
		return nil
	}
	f.lastErr = nil
	f.state = StateSucceeded
	return nil
}
