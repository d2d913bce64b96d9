package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// Upload is a file attached to a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}

type formValue struct {
	name  string
	value string
}

type formFile struct {
	name string
	file Upload
}

// Form accumulates fields and files for a multipart request body, keeping
// insertion order so repeated fields (skillIds[], contentImages[]) arrive
// in the order the user arranged them.
type Form struct {
	values []formValue
	files  []formFile
}

// Set appends a single text field.
func (f *Form) Set(name, value string) {
	f.values = append(f.values, formValue{name: name, value: value})
}

// SetAll appends one text field per value under the same name.
func (f *Form) SetAll(name string, values []string) {
	for _, v := range values {
		f.Set(name, v)
	}
}

// File appends a file part.
func (f *Form) File(name string, u Upload) {
	f.files = append(f.files, formFile{name: name, file: u})
}

// Encode renders the accumulated parts into a multipart body and returns
// it with its content type.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, v := range f.values {
		if err := w.WriteField(v.name, v.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", v.name, err)
		}
	}
	for _, fp := range f.files {
		part, err := w.CreateFormFile(fp.name, fp.file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("create file part %s: %w", fp.name, err)
		}
		if _, err := part.Write(fp.file.Data); err != nil {
			return nil, "", fmt.Errorf("write file part %s: %w", fp.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
