package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DjordjeVuckovic/mt-score-prep/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("doc_id is required")

	if err.Error() != "doc_id is required" {
		t.Errorf("expected 'doc_id is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("unknown exporter")
	err := apperr.NewValidationWrap("invalid run file", inner)

	if err.Error() != "invalid run file: unknown exporter" {
		t.Errorf("expected 'invalid run file: unknown exporter', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("missing doc_id")

	wrapped := fmt.Errorf("line 3: %w", original)
	doubleWrapped := fmt.Errorf("read hypotheses: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "missing doc_id" {
		t.Errorf("expected 'missing doc_id', got %q", ve.Message)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("disk full")
	wrapped := fmt.Errorf("export error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}

func TestNotFoundError(t *testing.T) {
	err := fmt.Errorf("build segments: %w", apperr.NewNotFound("document", "en-ja_#9"))

	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatal("errors.As should find NotFoundError")
	}
	if nf.Key != "en-ja_#9" {
		t.Errorf("expected key 'en-ja_#9', got %q", nf.Key)
	}
	if nf.Error() != `document "en-ja_#9" not found` {
		t.Errorf("unexpected message %q", nf.Error())
	}
}
