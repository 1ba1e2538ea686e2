package projectdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocuments(t *testing.T) {
	contract := Document{ID: "d1", Name: "Build contract", URL: "u", Type: "contract", Version: "1"}
	permit := Document{ID: "d2", Name: "Permit", URL: "u", Type: "building_permit", Status: "pending"}

	docs := AddDocument(nil, Contracts, contract)
	docs = AddDocument(docs, Permits, permit)
	require.Len(t, docs.Contracts, 1)
	require.Len(t, docs.Permits, 1)

	got, ok := FindDocument(docs, Permits, "d2")
	require.True(t, ok)
	require.Equal(t, permit, got)

	docs = RemoveDocument(docs, Contracts, "d1")
	require.NotNil(t, docs)
	require.Nil(t, docs.Contracts)

	require.Nil(t, RemoveDocument(docs, Permits, "d2"))
}

func TestRemoveDocumentWithoutListReturnsInput(t *testing.T) {
	docs := &Documents{Permits: []Document{{ID: "d2"}}}
	require.Same(t, docs, RemoveDocument(docs, Financial, "x"))
	require.Same(t, docs, RemoveDocument(docs, DocumentCategory("misc"), "x"))
	require.Nil(t, RemoveDocument(nil, Permits, "x"))
}

func TestAddDocumentUnknownCategory(t *testing.T) {
	docs := &Documents{}
	require.Same(t, docs, AddDocument(docs, DocumentCategory("misc"), Document{ID: "x"}))
}

func TestParseDocumentCategory(t *testing.T) {
	c, ok := ParseDocumentCategory("technical")
	require.True(t, ok)
	require.True(t, c.AcceptsType("warranty"))
	require.False(t, c.AcceptsType("invoice"))

	_, ok = ParseDocumentCategory("photos")
	require.False(t, ok)
}

func TestMergeSpecifications(t *testing.T) {
	current := &Specifications{
		Materials: &Materials{PoolShell: "concrete"},
		Safety:    &Safety{Fence: boolPtr(true)},
	}
	updates := &Specifications{Materials: &Materials{PoolShell: "vinyl"}}

	out := MergeSpecifications(current, updates)
	require.Equal(t, "vinyl", out.Materials.PoolShell)
	require.Equal(t, current.Safety, out.Safety)
	require.Equal(t, "concrete", current.Materials.PoolShell)

	require.Equal(t, &Specifications{}, MergeSpecifications(nil, nil))
}
