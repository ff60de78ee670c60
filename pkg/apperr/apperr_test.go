package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestFromDBClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"missing row", gorm.ErrRecordNotFound, NotFound},
		{"wrapped missing row", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), NotFound},
		{"refused dial", errors.New("dial tcp 10.0.0.1:5432: connect: connection refused"), Unavailable},
		{"dns failure", errors.New("lookup db.internal: no such host"), Unavailable},
		{"pgx connect failure", errors.New("failed to connect to `host=db`"), Unavailable},
		{"constraint violation", errors.New(`duplicate key value violates unique constraint "products_sku_key"`), Rejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDB(tt.err)
			if got.Kind != tt.want {
				t.Errorf("FromDB(%v).Kind = %v, want %v", tt.err, got.Kind, tt.want)
			}
		})
	}
}

func TestFromDBUnavailableMessageReplaced(t *testing.T) {
	driverErr := errors.New("dial tcp 10.0.0.1:5432: connect: connection refused")
	got := FromDB(driverErr)
	if got.Message != UnavailableMessage {
		t.Errorf("expected the fixed unavailable message, got %q", got.Message)
	}
	if !errors.Is(got, driverErr) {
		t.Error("expected the driver error preserved in the chain")
	}
}

func TestFromDBRejectedKeepsMessage(t *testing.T) {
	err := errors.New("value too long for type character varying(50)")
	got := FromDB(err)
	if got.Message != err.Error() {
		t.Errorf("rejected message = %q, want driver text", got.Message)
	}
}

func TestFromDBPassesThroughAppErrors(t *testing.T) {
	orig := Validation(map[string]string{"quantity": "Quantity must be greater than 0"})
	got := FromDB(fmt.Errorf("tx: %w", orig))
	if got.Kind != Invalid || got.Fields["quantity"] == "" {
		t.Errorf("expected the wrapped validation error back, got %+v", got)
	}
}

func TestFromDBNil(t *testing.T) {
	if FromDB(nil) != nil {
		t.Error("FromDB(nil) should be nil")
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Unavailable, http.StatusServiceUnavailable},
		{NotFound, http.StatusNotFound},
		{Invalid, http.StatusUnprocessableEntity},
		{Rejected, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if got := (&Error{Kind: tt.kind}).Status(); got != tt.want {
			t.Errorf("Status(%v) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
