package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSearchType(t *testing.T) {
	tests := []struct {
		in   string
		want SearchType
		ok   bool
	}{
		{"TITLE", SearchTypeTitle, true},
		{"CONTENT", SearchTypeContent, true},
		{"TITLE_CONTENT", SearchTypeTitleContent, true},
		{"TAG", SearchTypeTag, true},
		{"title", "", false},
		{"", "", false},
		{"AUTHOR", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseSearchType(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, SearchTypeTitleContent, SearchTypeOrDefault("bogus"))
	assert.Equal(t, SearchTypeTag, SearchTypeOrDefault("TAG"))
}

func TestPageRequest_IsSearch(t *testing.T) {
	assert.False(t, PageRequest{Page: 1, SearchType: SearchTypeTitle, Query: "   "}.IsSearch())
	assert.True(t, PageRequest{Page: 1, Query: " go "}.IsSearch())
}

func TestViewState_CloneDetachesItems(t *testing.T) {
	s := NewViewState()
	s.Items = append(s.Items, []byte(`{"ctntNo":1}`))
	c := s.Clone()
	c.Items[0] = []byte(`{"ctntNo":2}`)
	assert.JSONEq(t, `{"ctntNo":1}`, string(s.Items[0]))
}
