package service

import (
	"strings"
	"testing"

	"github.com/gadgetlab/store-api/internal/core/domain"
)

func TestConfirmationBodyListsProducts(t *testing.T) {
	body, err := confirmationBody([]*domain.Product{
		{Model: "Pixel 9", Price: 4999.90},
		{Model: "Galaxy S25", Price: 5299},
	})
	if err != nil {
		t.Fatalf("confirmationBody returned error: %v", err)
	}

	for _, want := range []string{"Pixel 9", "4999.90", "Galaxy S25", "5299.00", "waiting for payment confirmation"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}
