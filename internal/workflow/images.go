package workflow

import "github.com/foliohq/folio/pkg/client"

// ImageSlot is one entry in an ordered image list: either a reference
// already persisted server-side or a file pending upload. Exactly one of
// Ref and File is set.
type ImageSlot struct {
	Ref  string
	File *client.Upload
}

// Persisted reports whether the slot refers to a stored server-side image.
func (s ImageSlot) Persisted() bool {
	return s.File == nil
}

// ImageList keeps content images in display order as tagged slots, so
// removing by index never desynchronizes kept references from pending
// uploads.
type ImageList struct {
	slots []ImageSlot
}

// NewImageList seeds the list with the references already persisted on the
// entity being edited.
func NewImageList(refs []string) *ImageList {
	l := &ImageList{}
	for _, ref := range refs {
		l.slots = append(l.slots, ImageSlot{Ref: ref})
	}
	return l
}

// AddPending appends a newly selected file awaiting upload.
func (l *ImageList) AddPending(u client.Upload) {
	l.slots = append(l.slots, ImageSlot{File: &u})
}

// RemoveAt drops the slot at index i, whichever kind it is.
func (l *ImageList) RemoveAt(i int) bool {
	if i < 0 || i >= len(l.slots) {
		return false
	}
	l.slots = append(l.slots[:i], l.slots[i+1:]...)
	return true
}

// Len returns the number of slots.
func (l *ImageList) Len() int {
	return len(l.slots)
}

// Slots returns the ordered slots for rendering previews.
func (l *ImageList) Slots() []ImageSlot {
	return l.slots
}

// ExistingRefs returns the persisted references still present, in order.
// This becomes the payload's existingContentImages list on update.
func (l *ImageList) ExistingRefs() []string {
	out := []string{}
	for _, s := range l.slots {
		if s.Persisted() {
			out = append(out, s.Ref)
		}
	}
	return out
}

// PendingUploads returns the files still awaiting upload, in order.
func (l *ImageList) PendingUploads() []client.Upload {
	var out []client.Upload
	for _, s := range l.slots {
		if !s.Persisted() {
			out = append(out, *s.File)
		}
	}
	return out
}
