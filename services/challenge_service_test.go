package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"runonstreet-backend/models"
	"runonstreet-backend/store"
	"runonstreet-backend/testutil"
	"runonstreet-backend/utils"
)

func newChallengeFixture(t *testing.T) (*ChallengeService, uint) {
	t.Helper()
	s := testutil.NewStore(t)
	offer := testutil.SeedOffers(t, s, testutil.Offer("bakery sprint", 48.8566, 2.3522))[0]
	return NewChallengeService(s), offer.ID
}

func timesAt(elapsed time.Duration) (*time.Time, *time.Time) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	done := start.Add(elapsed)
	return &start, &done
}

func sptr(s string) *string { return &s }

func TestReportValidation(t *testing.T) {
	svc, offerID := newChallengeFixture(t)
	start, _ := timesAt(0)

	tests := []struct {
		name string
		in   CompletionReport
		msg  string
	}{
		{"missing offer", CompletionReport{StartedAt: start}, "offerId"},
		{"missing start", CompletionReport{OfferID: offerID}, "startedAt"},
		{"negative distance", CompletionReport{OfferID: offerID, StartedAt: start, DistanceMeters: fptr(-1)}, "distanceMeters"},
		{"unknown offer", CompletionReport{OfferID: offerID + 99, StartedAt: start}, "does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Report(context.Background(), tt.in)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("message %q should mention %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestReportSuccessAttachesCodeAndVerdict(t *testing.T) {
	svc, offerID := newChallengeFixture(t)
	start, done := timesAt(10 * time.Minute)

	run, err := svc.Report(context.Background(), CompletionReport{
		OfferID:        offerID,
		UserID:         sptr("user-1"),
		StartedAt:      start,
		CompletedAt:    done,
		Success:        true,
		DistanceMeters: fptr(450),
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if run.ID == 0 {
		t.Error("expected storage-assigned id")
	}
	if run.QRCode == nil || !strings.HasPrefix(*run.QRCode, utils.RedemptionCodePrefix) {
		t.Errorf("expected generated code, got %v", run.QRCode)
	}
	if run.SuspectedFraud || run.FraudReason != nil {
		t.Errorf("plausible run flagged: %v", run.FraudReason)
	}
	if run.Status() != models.RunStatusReported {
		t.Errorf("Status = %q", run.Status())
	}
}

func TestReportKeepsClientCode(t *testing.T) {
	svc, offerID := newChallengeFixture(t)
	start, done := timesAt(time.Minute)

	run, err := svc.Report(context.Background(), CompletionReport{
		OfferID: offerID, StartedAt: start, CompletedAt: done, Success: true, QRCode: sptr("  SCAN-ME "),
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if run.QRCode == nil || *run.QRCode != "SCAN-ME" {
		t.Fatalf("QRCode = %v, want SCAN-ME", run.QRCode)
	}

	_, err = svc.Report(context.Background(), CompletionReport{
		OfferID: offerID, StartedAt: start, CompletedAt: done, Success: true, QRCode: sptr("SCAN-ME"),
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("duplicate code: expected ErrInvalidArgument, got %v", err)
	}
}

func TestReportFlagsFraudWithFirstRule(t *testing.T) {
	svc, offerID := newChallengeFixture(t)
	start, done := timesAt(3 * time.Second)

	run, err := svc.Report(context.Background(), CompletionReport{
		OfferID: offerID, StartedAt: start, CompletedAt: done, Success: true, DistanceMeters: fptr(2500),
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if !run.SuspectedFraud || run.FraudReason == nil || !strings.Contains(*run.FraudReason, "distance") {
		t.Fatalf("expected distance-rule verdict, got %v / %v", run.SuspectedFraud, run.FraudReason)
	}
}

func TestReportFailedRunGetsNoCodeNoVerdict(t *testing.T) {
	svc, offerID := newChallengeFixture(t)
	start, done := timesAt(time.Second)

	run, err := svc.Report(context.Background(), CompletionReport{
		OfferID: offerID, StartedAt: start, CompletedAt: done, Success: false,
		DistanceMeters: fptr(9000), QRCode: sptr("IGNORED"),
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if run.QRCode != nil {
		t.Errorf("failed run got code %q", *run.QRCode)
	}
	if run.SuspectedFraud || run.FraudReason != nil {
		t.Error("failed run must never be flagged")
	}
	if run.UserID != nil {
		t.Errorf("anonymous run stored user %q", *run.UserID)
	}
	if run.Status() != models.RunStatusFailed {
		t.Errorf("Status = %q", run.Status())
	}
}

func TestValidateLifecycle(t *testing.T) {
	svc, offerID := newChallengeFixture(t)
	fixed := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }
	start, done := timesAt(10 * time.Minute)

	run, err := svc.Report(context.Background(), CompletionReport{
		OfferID: offerID, StartedAt: start, CompletedAt: done, Success: true,
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if _, err := svc.Validate(context.Background(), "   "); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("blank code: expected ErrInvalidArgument, got %v", err)
	}

	validated, err := svc.Validate(context.Background(), *run.QRCode)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if validated.ValidatedAt == nil || !validated.ValidatedAt.Equal(fixed) {
		t.Errorf("ValidatedAt = %v, want %v", validated.ValidatedAt, fixed)
	}
	if validated.Status() != models.RunStatusValidated {
		t.Errorf("Status = %q", validated.Status())
	}

	if _, err := svc.Validate(context.Background(), *run.QRCode); !errors.Is(err, ErrNotFound) {
		t.Fatalf("replay: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Validate(context.Background(), "UNKNOWN"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown: expected ErrNotFound, got %v", err)
	}
}

func TestValidateConcurrentSingleWinner(t *testing.T) {
	svc, offerID := newChallengeFixture(t)
	start, done := timesAt(10 * time.Minute)
	run, err := svc.Report(context.Background(), CompletionReport{
		OfferID: offerID, StartedAt: start, CompletedAt: done, Success: true,
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	var (
		wg      sync.WaitGroup
		results = make([]error, 2)
	)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Validate(context.Background(), *run.QRCode)
		}(i)
	}
	wg.Wait()

	var ok, notFound int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrNotFound):
			notFound++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || notFound != 1 {
		t.Fatalf("ok=%d notFound=%d, want exactly one of each", ok, notFound)
	}
}

// runStoreSpy records calls so the ordering of store operations can be checked.
type runStoreSpy struct {
	created []*models.ChallengeRun
}

func (s *runStoreSpy) OfferExists(context.Context, uint) (bool, error) { return true, nil }

func (s *runStoreSpy) CreateRun(_ context.Context, run *models.ChallengeRun) error {
	run.ID = uint(len(s.created) + 1)
	s.created = append(s.created, run)
	return nil
}

func (s *runStoreSpy) ValidateRun(context.Context, string, time.Time) (*models.ChallengeRun, error) {
	return nil, errors.New("boom")
}

func TestChallengeServiceWithTestDouble(t *testing.T) {
	spy := &runStoreSpy{}
	svc := NewChallengeService(spy)
	svc.NewCode = func() string { return "FIXED" }
	start, done := timesAt(time.Minute)

	run, err := svc.Report(context.Background(), CompletionReport{
		OfferID: 7, UserID: sptr(" "), StartedAt: start, CompletedAt: done, Success: true,
	})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	if len(spy.created) != 1 || *run.QRCode != "FIXED" || run.UserID != nil {
		t.Fatalf("unexpected run: %+v", run)
	}

	_, err = svc.Validate(context.Background(), "FIXED")
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("store failure should surface as an internal error, got %v", err)
	}
}

// validateOnlyStore fails the test on anything but ValidateRun, and consumes
// each code on its first call the way the conditional update does.
type validateOnlyStore struct {
	t        *testing.T
	mu       sync.Mutex
	calls    []string
	at       []time.Time
	consumed map[string]bool
}

func (s *validateOnlyStore) OfferExists(context.Context, uint) (bool, error) {
	s.t.Errorf("Validate must not look up offers")
	return false, errors.New("unexpected OfferExists")
}

func (s *validateOnlyStore) CreateRun(context.Context, *models.ChallengeRun) error {
	s.t.Errorf("Validate must not create runs")
	return errors.New("unexpected CreateRun")
}

func (s *validateOnlyStore) ValidateRun(_ context.Context, code string, at time.Time) (*models.ChallengeRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, code)
	s.at = append(s.at, at)
	if s.consumed[code] {
		return nil, store.ErrNotFound
	}
	s.consumed[code] = true
	return &models.ChallengeRun{ID: 1, OfferID: 7, QRCode: &code, Success: true, ValidatedAt: &at}, nil
}

func TestValidateIsOneConditionalStoreCall(t *testing.T) {
	st := &validateOnlyStore{t: t, consumed: map[string]bool{}}
	svc := NewChallengeService(st)
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	svc.Now = func() time.Time { return now }

	run, err := svc.Validate(context.Background(), "  ROS-ONE  ")
	if err != nil {
		t.Fatalf("first Validate: %v", err)
	}
	if run.ValidatedAt == nil || !run.ValidatedAt.Equal(now) {
		t.Errorf("validated_at = %v, want %v", run.ValidatedAt, now)
	}
	if _, err := svc.Validate(context.Background(), "ROS-ONE"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Validate: got %v, want ErrNotFound", err)
	}

	if len(st.calls) != 2 || st.calls[0] != "ROS-ONE" || st.calls[1] != "ROS-ONE" {
		t.Fatalf("ValidateRun calls = %q, want one per Validate with the trimmed code", st.calls)
	}
	if st.at[0].Location() != time.UTC {
		t.Errorf("validation time passed in %v, want UTC", st.at[0].Location())
	}

	if _, err := svc.Validate(context.Background(), "   "); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("blank code: got %v, want ErrInvalidArgument", err)
	}
	if len(st.calls) != 2 {
		t.Errorf("blank code reached the store")
	}
}
