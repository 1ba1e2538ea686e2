package projectdata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func galleryImage(id string) GalleryImage {
	return GalleryImage{ID: id, URL: "https://cdn.example.com/" + id + ".jpg", Category: CategoryFinished}
}

func TestAddImageToGalleryStartsFromNil(t *testing.T) {
	out := AddImageToGallery(nil, galleryImage("a"))
	require.NotNil(t, out)
	require.Len(t, out.Gallery, 1)
	require.Equal(t, "a", out.Gallery[0].ID)
}

func TestAddImageToGalleryDoesNotMutateInput(t *testing.T) {
	in := &Images{Gallery: []GalleryImage{galleryImage("a")}, Plans: []PlanImage{{ID: "p", URL: "u"}}}
	out := AddImageToGallery(in, galleryImage("b"))

	require.Len(t, in.Gallery, 1)
	require.Len(t, out.Gallery, 2)
	require.Equal(t, in.Plans, out.Plans)
	require.NotSame(t, in, out)
}

func TestAddImageToGalleryAllowsDuplicateIDs(t *testing.T) {
	out := AddImageToGallery(AddImageToGallery(nil, galleryImage("a")), galleryImage("a"))
	require.Len(t, out.Gallery, 2)
}

func TestGalleryRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   *Images
		want *Images
	}{
		{name: "nil collapses", in: nil, want: nil},
		{name: "empty container collapses", in: &Images{}, want: nil},
		{
			name: "existing entries survive",
			in:   &Images{Gallery: []GalleryImage{galleryImage("a"), galleryImage("b")}},
			want: &Images{Gallery: []GalleryImage{galleryImage("a"), galleryImage("b")}},
		},
		{
			name: "other lists keep the container",
			in:   &Images{Progress: []ProgressImage{{ID: "p1", URL: "u"}}},
			want: &Images{Progress: []ProgressImage{{ID: "p1", URL: "u"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added := AddImageToGallery(tt.in, galleryImage("new"))
			require.Equal(t, tt.want, RemoveImageFromGallery(added, "new"))
		})
	}
}

func TestRemoveImageFromGalleryWithoutGalleryReturnsInput(t *testing.T) {
	require.Nil(t, RemoveImageFromGallery(nil, "a"))

	in := &Images{Plans: []PlanImage{{ID: "p", URL: "u"}}}
	require.Same(t, in, RemoveImageFromGallery(in, "a"))
}

func TestRemoveImageFromGalleryUnknownID(t *testing.T) {
	in := &Images{Gallery: []GalleryImage{galleryImage("a")}}
	out := RemoveImageFromGallery(in, "missing")
	require.Equal(t, in, out)
	require.NotSame(t, in, out)
}

func TestProgressImages(t *testing.T) {
	out := AddProgressImage(nil, ProgressImage{ID: "p1", URL: "u", Phase: "excavation"})
	require.Len(t, out.Progress, 1)

	out = AddImageToGallery(out, galleryImage("g"))
	out = RemoveProgressImage(out, "p1")
	require.NotNil(t, out)
	require.Nil(t, out.Progress)
	require.Len(t, out.Gallery, 1)

	require.Nil(t, RemoveImageFromGallery(out, "g"))
}

func TestFindGalleryImage(t *testing.T) {
	in := &Images{Gallery: []GalleryImage{galleryImage("a")}}
	img, ok := FindGalleryImage(in, "a")
	require.True(t, ok)
	require.Equal(t, "a", img.ID)

	_, ok = FindGalleryImage(in, "b")
	require.False(t, ok)
	_, ok = FindGalleryImage(nil, "a")
	require.False(t, ok)
}
