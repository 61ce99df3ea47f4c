// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPrompt(t *testing.T) {
	got, err := RenderPrompt("  Automotive ", "Supply chain optimization")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "Industry: Automotive\nTrends: Supply chain optimization\n"))
	assert.Contains(t, got, "Suggest 3 AI/ML/GenAI use cases")
	assert.True(t, strings.HasSuffix(got, "\n1. "), "prompt must prime the first list item")
}

func TestRenderPrompt_PrimedLineExtracts(t *testing.T) {
	prompt, err := RenderPrompt("Retail", "Customer experience")
	require.NoError(t, err)

	raw := prompt + "Personalized recommendations\n2. Inventory forecasting"
	assert.Equal(t, []string{"Personalized recommendations", "Inventory forecasting"}, Extract(raw))
}
