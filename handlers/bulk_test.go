package handlers

import (
	"testing"

	"github.com/google/uuid"

	"p9e.in/sitestock/pkg/apperr"
)

func TestRunSequentialAllSucceed(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	var seen []uuid.UUID
	res := runSequential(ids, func(id uuid.UUID) *apperr.Error {
		seen = append(seen, id)
		return nil
	})

	if res.Applied != 3 || res.Total != 3 {
		t.Errorf("Applied/Total = %d/%d, want 3/3", res.Applied, res.Total)
	}
	if res.FailedID != nil || res.Error != "" {
		t.Errorf("expected no failure, got %+v", res)
	}
	for i, id := range ids {
		if seen[i] != id {
			t.Fatalf("ids visited out of order at %d", i)
		}
	}
}

func TestRunSequentialStopsAtFirstFailure(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	bad := ids[2]

	calls := 0
	res := runSequential(ids, func(id uuid.UUID) *apperr.Error {
		calls++
		if id == bad {
			return apperr.New(apperr.NotFound, "product not found")
		}
		return nil
	})

	if calls != 3 {
		t.Errorf("expected processing to stop after the failure, got %d calls", calls)
	}
	if res.Applied != 2 {
		t.Errorf("Applied = %d, want 2", res.Applied)
	}
	if res.FailedID == nil || *res.FailedID != bad {
		t.Errorf("FailedID = %v, want %v", res.FailedID, bad)
	}
	if res.Error != "product not found" {
		t.Errorf("Error = %q", res.Error)
	}
}

func TestRunSequentialEmpty(t *testing.T) {
	res := runSequential(nil, func(uuid.UUID) *apperr.Error {
		t.Fatal("fn should not be called for an empty batch")
		return nil
	})
	if res.Applied != 0 || res.Total != 0 || res.FailedID != nil {
		t.Errorf("unexpected result for empty batch: %+v", res)
	}
}

func TestRunSequentialFirstFails(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	res := runSequential(ids, func(uuid.UUID) *apperr.Error {
		return apperr.New(apperr.Unavailable, apperr.UnavailableMessage)
	})
	if res.Applied != 0 {
		t.Errorf("Applied = %d, want 0", res.Applied)
	}
	if res.FailedID == nil || *res.FailedID != ids[0] {
		t.Errorf("FailedID = %v, want first id", res.FailedID)
	}
}
