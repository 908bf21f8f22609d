package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceSectionsValueScanRoundTrip(t *testing.T) {
	sections := ResourceSections{
		{Type: "Top Videos", Items: []ResourceItem{
			{Title: "Go Intro", Description: "Learn Go", Link: "https://youtube.example/v1", Channel: "GoDev"},
		}},
		{Type: "GitHub Learning Repos", Items: []ResourceItem{
			{Title: "awesome-go", Stars: 100000},
		}},
	}

	value, err := sections.Value()
	require.NoError(t, err)

	var scanned ResourceSections
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, sections, scanned)
}

func TestResourceSectionsValueNil(t *testing.T) {
	var sections ResourceSections

	value, err := sections.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", value)
}

func TestResourceSectionsScan(t *testing.T) {
	var sections ResourceSections

	// MySQL 驱动通常以 []byte 回传 JSON 列。
	require.NoError(t, sections.Scan([]byte(`[{"type": "Top Books", "items": [{"title": "The Go Book"}]}]`)))
	require.Len(t, sections, 1)
	assert.Equal(t, "Top Books", sections[0].Type)

	require.NoError(t, sections.Scan(nil))
	assert.Nil(t, sections)

	assert.Error(t, sections.Scan(42))
	assert.Error(t, sections.Scan("not json"))
}
