// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package usecase

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name  string
		cases []string
		want  []string
	}{
		{"first word of each case", []string{"Improve routing", "Reduce churn"}, []string{"Improve", "Reduce"}},
		{"dedup and empty", []string{"", "Reduce churn", "Reduce costs"}, []string{"Reduce"}},
		{"nil input", nil, []string{}},
		{"punctuation only", []string{"--- ...", "!!"}, []string{}},
		{"leading punctuation skipped", []string{"**Chatbots** for support"}, []string{"Chatbots"}},
		{"underscores and digits are word runes", []string{"gpt_2-based summaries", "3D inspection"}, []string{"gpt_2", "3D"}},
		{"case sensitive", []string{"Churn", "churn"}, []string{"Churn", "churn"}},
		{"unicode letters", []string{"Échantillonnage intelligent"}, []string{"Échantillonnage"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.cases)
			assert.Equal(t, tt.want, got.Keywords())
			assert.Equal(t, len(tt.want), got.Len())
		})
	}
}

func TestDerive_BoundedByTokenizedCases(t *testing.T) {
	inputs := [][]string{
		{},
		{""},
		{"a b", "a c", "?"},
		{"x", "y", "z"},
		{"  ", "Fraud detection", "fraud scoring"},
	}
	for _, cases := range inputs {
		nonEmpty := 0
		for _, c := range cases {
			if _, ok := FirstWord(c); ok {
				nonEmpty++
			}
		}
		assert.LessOrEqual(t, Derive(cases).Len(), nonEmpty)
	}
}

func TestKeywordSet(t *testing.T) {
	var s KeywordSet
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains("x"))

	assert.True(t, s.Add("beta"))
	assert.True(t, s.Add("alpha"))
	assert.False(t, s.Add("beta"))

	assert.True(t, s.Contains("alpha"))
	assert.Equal(t, []string{"beta", "alpha"}, s.Keywords())
	assert.Equal(t, []string{"alpha", "beta"}, s.Sorted())

	kws := s.Keywords()
	kws[0] = "changed"
	assert.Equal(t, []string{"beta", "alpha"}, s.Keywords())
}

func TestFirstWord(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Improve routing", "Improve", true},
		{"  spaced", "spaced", true},
		{"single", "single", true},
		{"", "", false},
		{"...", "", false},
		{"e-commerce", "e", true},
		{"²nd gen", "²nd", true},
		{"e\u0301tude", "e", true},
		{"Ⅻ plan", "Ⅻ", true},
		{"٣ arabic digit", "٣", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := FirstWord(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerive_Concurrent(t *testing.T) {
	inputs := [][]string{
		{"Improve routing", "Reduce churn", "Improve support"},
		{"", "²nd gen", "Ⅻ plan"},
		{"**Chatbots** for support", "e-commerce"},
	}
	want := make([][]string, len(inputs))
	for i, cases := range inputs {
		want[i] = Derive(cases).Keywords()
	}

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan string, workers*len(inputs))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, cases := range inputs {
				if got := Derive(cases).Keywords(); !slices.Equal(got, want[i]) {
					errs <- fmt.Sprintf("input %d: got %v, want %v", i, got, want[i])
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
