package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordLogin(t *testing.T) {
	okBefore := testutil.ToFloat64(LoginTotal.WithLabelValues("user", OutcomeSuccess))
	failBefore := testutil.ToFloat64(LoginTotal.WithLabelValues("user", OutcomeFailure))

	RecordLogin("user", true)
	RecordLogin("user", false)
	RecordLogin("user", false)

	if got := testutil.ToFloat64(LoginTotal.WithLabelValues("user", OutcomeSuccess)) - okBefore; got != 1 {
		t.Errorf("success delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(LoginTotal.WithLabelValues("user", OutcomeFailure)) - failBefore; got != 2 {
		t.Errorf("failure delta = %v, want 2", got)
	}
}

func TestRecordPayment(t *testing.T) {
	before := testutil.ToFloat64(PaymentsTotal.WithLabelValues(OutcomeDeclined))
	RecordPayment(OutcomeDeclined)
	if got := testutil.ToFloat64(PaymentsTotal.WithLabelValues(OutcomeDeclined)) - before; got != 1 {
		t.Errorf("declined delta = %v, want 1", got)
	}
}
