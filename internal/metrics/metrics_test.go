package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordHTTPRequest(t *testing.T) {
	// Reset metrics
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/api/v1/generate/content", "200", 2.5)

	counter := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/generate/content", "200"))
	if counter != 1.0 {
		t.Errorf("Expected counter to be 1.0, got %f", counter)
	}
}

func TestRecordGeneration(t *testing.T) {
	GenerationsTotal.Reset()
	GenerationDuration.Reset()

	RecordGeneration("marketing_content", "PRO", "success", 3.2)
	RecordGeneration("marketing_content", "PRO", "success", 1.1)
	RecordGeneration("social_post", "BASIC", "error", 0.4)

	proSuccess := testutil.ToFloat64(GenerationsTotal.WithLabelValues("marketing_content", "PRO", "success"))
	if proSuccess != 2.0 {
		t.Errorf("Expected PRO success counter to be 2.0, got %f", proSuccess)
	}

	basicError := testutil.ToFloat64(GenerationsTotal.WithLabelValues("social_post", "BASIC", "error"))
	if basicError != 1.0 {
		t.Errorf("Expected BASIC error counter to be 1.0, got %f", basicError)
	}
}

func TestRecordLogin(t *testing.T) {
	LoginsTotal.Reset()

	RecordLogin("success")
	RecordLogin("success")
	RecordLogin("failure")

	success := testutil.ToFloat64(LoginsTotal.WithLabelValues("success"))
	if success != 2.0 {
		t.Errorf("Expected success counter to be 2.0, got %f", success)
	}
}

func TestRecordPlanChange(t *testing.T) {
	PlanChangesTotal.Reset()

	RecordPlanChange("PRO")
	RecordPlanChange("PRO")
	RecordPlanChange("STANDARD")

	pro := testutil.ToFloat64(PlanChangesTotal.WithLabelValues("PRO"))
	if pro != 2.0 {
		t.Errorf("Expected PRO counter to be 2.0, got %f", pro)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	StoreOperationsTotal.Reset()
	StoreOperationDuration.Reset()

	RecordStoreOperation("get_user", "success", 0.002)

	counter := testutil.ToFloat64(StoreOperationsTotal.WithLabelValues("get_user", "success"))
	if counter != 1.0 {
		t.Errorf("Expected counter to be 1.0, got %f", counter)
	}
}

func TestRecordError(t *testing.T) {
	ErrorsTotal.Reset()

	RecordError("advisor", "empty_response")

	counter := testutil.ToFloat64(ErrorsTotal.WithLabelValues("advisor", "empty_response"))
	if counter != 1.0 {
		t.Errorf("Expected counter to be 1.0, got %f", counter)
	}
}
