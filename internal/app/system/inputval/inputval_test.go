package inputval

import (
	"testing"

	"github.com/dalemusser/readalong/internal/app/system/apierr"
)

type sample struct {
	Kind       string `validate:"required"`
	Difficulty string `validate:"required"`
	Topic      string
}

func TestRequired(t *testing.T) {
	tests := []struct {
		name string
		in   sample
		ok   bool
	}{
		{"all present", sample{Kind: "설명", Difficulty: "중"}, true},
		{"optional missing", sample{Kind: "설명", Difficulty: "중", Topic: ""}, true},
		{"kind missing", sample{Difficulty: "중"}, false},
		{"both missing", sample{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Required(tt.in, "kind and difficulty are required")
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if apierr.KindOf(err) != apierr.KindValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if err.Error() != "kind and difficulty are required" {
				t.Errorf("message: got %q", err.Error())
			}
		})
	}
}
