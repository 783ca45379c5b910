package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nurpe/moto-rental/internal/model"
)

func personWithLicense(t *testing.T, category string) model.DeliveryPerson {
	t.Helper()
	license, err := model.NewLicense("12345678901", category)
	require.NoError(t, err)
	return model.DeliveryPerson{Name: "Rider", License: license}
}

func TestCheckEligibility(t *testing.T) {
	tests := []struct {
		category string
		eligible bool
	}{
		{"A", true},
		{"AB", true},
		{"B", false},
		{"None", false},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			err := CheckEligibility(personWithLicense(t, tt.category))
			if tt.eligible {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrLicenseIneligible)
		})
	}
}
