package settings

import (
	"testing"

	"orrery/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequirements(t *testing.T) {
	ok := []models.StaffingRequirement{
		{GroupMin: 1, GroupMax: 10, LeadHosts: 1, Hosts: 2},
		{GroupMin: 11, GroupMax: 20, LeadHosts: 2, Hosts: 3},
	}
	assert.NoError(t, ValidateRequirements(ok))
	assert.NoError(t, ValidateRequirements(nil))
}

func TestValidateRequirementsRejectsBadBands(t *testing.T) {
	cases := map[string][]models.StaffingRequirement{
		"zero min":      {{GroupMin: 0, GroupMax: 10}},
		"min equal max": {{GroupMin: 5, GroupMax: 5}},
		"min above max": {{GroupMin: 10, GroupMax: 2}},
		"negative hosts": {
			{GroupMin: 1, GroupMax: 10, LeadHosts: -1, Hosts: 2},
		},
		"overlap": {
			{GroupMin: 1, GroupMax: 10, LeadHosts: 1, Hosts: 2},
			{GroupMin: 10, GroupMax: 20, LeadHosts: 2, Hosts: 3},
		},
		"containment overlap": {
			{GroupMin: 1, GroupMax: 30, LeadHosts: 1, Hosts: 2},
			{GroupMin: 5, GroupMax: 10, LeadHosts: 2, Hosts: 3},
		},
	}
	for name, reqs := range cases {
		assert.Error(t, ValidateRequirements(reqs), name)
	}
}

func TestValidDates(t *testing.T) {
	assert.NoError(t, validDates([]string{"2025-12-24", "2026-01-01"}))
	assert.NoError(t, validDates(nil))
	assert.Error(t, validDates([]string{"24/12/2025"}))
	assert.Error(t, validDates([]string{"2025-12-24", "tomorrow"}))
}
