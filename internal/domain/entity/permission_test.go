package entity_test

import (
	"testing"

	"github.com/bnema/moto/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermissionDecision(t *testing.T) {
	tests := []struct {
		in       string
		expected entity.PermissionDecision
		wantErr  bool
	}{
		{"allow", entity.PermissionAllow, false},
		{" Deny ", entity.PermissionDeny, false},
		{"granted", entity.PermissionAllow, false},
		{"denied", entity.PermissionDeny, false},
		{"maybe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := entity.ParsePermissionDecision(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPermissionPolicy_Decide(t *testing.T) {
	policy := entity.PermissionPolicy{
		Default: entity.PermissionDeny,
		Overrides: map[entity.PermissionKind]entity.PermissionDecision{
			entity.PermissionConfirm: entity.PermissionAllow,
			entity.PermissionAlert:   entity.PermissionDeny,
		},
	}

	tests := []struct {
		kind     entity.PermissionKind
		expected bool
	}{
		{entity.PermissionConfirm, true},
		{entity.PermissionGeolocation, false},
		{entity.PermissionAlert, true},
		{entity.PermissionBeforeUnload, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.Allows(tt.kind))
		})
	}
}

func TestPermissionPolicy_EmptyDefaultDenies(t *testing.T) {
	var policy entity.PermissionPolicy
	assert.Equal(t, entity.PermissionDeny, policy.Decide(entity.PermissionMedia))
}

func TestPermissionKindsToStrings(t *testing.T) {
	got := entity.PermissionKindsToStrings([]entity.PermissionKind{entity.PermissionMedia, entity.PermissionPrompt})
	assert.Equal(t, []string{"media", "prompt"}, got)
}
