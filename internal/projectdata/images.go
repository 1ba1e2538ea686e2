package projectdata

// Images groups the picture lists of a project.
type Images struct {
	Gallery     []GalleryImage     `json:"gallery,omitempty" validate:"omitempty,dive"`
	BeforeAfter []BeforeAfterImage `json:"beforeAfter,omitempty" validate:"omitempty,dive"`
	Progress    []ProgressImage    `json:"progress,omitempty" validate:"omitempty,dive"`
	Plans       []PlanImage        `json:"plans,omitempty" validate:"omitempty,dive"`
}

// GalleryCategory values accepted for gallery images. "gallery" is the value
// given to uploads that do not pick a category.
const (
	CategoryOverview     = "overview"
	CategoryConstruction = "construction"
	CategoryFinished     = "finished"
	CategoryDetail       = "detail"
	CategoryBefore       = "before"
	CategoryAfter        = "after"
	CategoryGallery      = "gallery"
)

type GalleryImage struct {
	ID         string `json:"id" validate:"required"`
	URL        string `json:"url" validate:"required"`
	Alt        string `json:"alt"`
	Caption    string `json:"caption,omitempty"`
	Category   string `json:"category" validate:"omitempty,oneof=overview construction finished detail before after gallery"`
	Order      int    `json:"order"`
	UploadedAt string `json:"uploadedAt,omitempty"`
	UploadedBy uint   `json:"uploadedBy,omitempty"`
}

type BeforeAfterImage struct {
	ID        string `json:"id" validate:"required"`
	BeforeURL string `json:"beforeUrl" validate:"required"`
	AfterURL  string `json:"afterUrl" validate:"required"`
	Caption   string `json:"caption,omitempty"`
	Order     int    `json:"order"`
}

type ProgressImage struct {
	ID      string `json:"id" validate:"required"`
	URL     string `json:"url" validate:"required"`
	Caption string `json:"caption"`
	Phase   string `json:"phase" validate:"omitempty,oneof=excavation structure plumbing electrical finishing landscaping"`
	Date    string `json:"date"`
	Order   int    `json:"order"`
}

type PlanImage struct {
	ID          string `json:"id" validate:"required"`
	URL         string `json:"url" validate:"required"`
	Type        string `json:"type" validate:"omitempty,oneof=3d_rendering blueprint sketch concept"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

// IsEmpty reports whether no list holds an entry.
func (i *Images) IsEmpty() bool {
	return i == nil || len(i.Gallery)+len(i.BeforeAfter)+len(i.Progress)+len(i.Plans) == 0
}

// AddImageToGallery appends image to the gallery. A nil images value starts
// a new document.
func AddImageToGallery(images *Images, image GalleryImage) *Images {
	out := cloneImages(images)
	out.Gallery = appended(out.Gallery, image)
	return out
}

// RemoveImageFromGallery drops the gallery entry with imageID. It returns
// images itself when there is no gallery to filter. An emptied gallery is
// omitted, and when nothing is left in any list the result is nil.
func RemoveImageFromGallery(images *Images, imageID string) *Images {
	if images == nil || images.Gallery == nil {
		return images
	}
	out := cloneImages(images)
	out.Gallery = without(out.Gallery, func(img GalleryImage) bool { return img.ID == imageID })
	return collapseImages(out)
}

// AddProgressImage appends a construction progress picture.
func AddProgressImage(images *Images, image ProgressImage) *Images {
	out := cloneImages(images)
	out.Progress = appended(out.Progress, image)
	return out
}

// RemoveProgressImage is RemoveImageFromGallery for the progress list.
func RemoveProgressImage(images *Images, imageID string) *Images {
	if images == nil || images.Progress == nil {
		return images
	}
	out := cloneImages(images)
	out.Progress = without(out.Progress, func(img ProgressImage) bool { return img.ID == imageID })
	return collapseImages(out)
}

// FindGalleryImage returns the gallery entry with id, if any.
func FindGalleryImage(images *Images, id string) (GalleryImage, bool) {
	if images == nil {
		return GalleryImage{}, false
	}
	return find(images.Gallery, func(img GalleryImage) bool { return img.ID == id })
}

// FindProgressImage returns the progress entry with id, if any.
func FindProgressImage(images *Images, id string) (ProgressImage, bool) {
	if images == nil {
		return ProgressImage{}, false
	}
	return find(images.Progress, func(img ProgressImage) bool { return img.ID == id })
}

func cloneImages(images *Images) *Images {
	if images == nil {
		return &Images{}
	}
	out := *images
	return &out
}

func collapseImages(images *Images) *Images {
	if len(images.Gallery) == 0 {
		images.Gallery = nil
	}
	if len(images.Progress) == 0 {
		images.Progress = nil
	}
	if images.IsEmpty() {
		return nil
	}
	return images
}
