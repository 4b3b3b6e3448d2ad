package files

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
)

// Longest accepted value of a non-file form field.
const maxFieldBytes = 4 << 10

var (
	errTooManyFiles  = errors.New("too many files in upload")
	errBodyTooLarge  = errors.New("upload body too large")
	errMalformedForm = errors.New("malformed upload form")
)

type spooledFile struct {
	filename    string
	contentType string
	size        int64
	path        string
}

// uploadForm is a multipart upload read part by part, with file bodies spooled
// to a temporary directory.
type uploadForm struct {
	files    []spooledFile
	fileName *string
	dir      string
}

// readUploadForm streams the multipart body of r. It stops with errTooManyFiles
// as soon as the file part after maxFiles is seen, so the count rule is decided
// before any size rule. At most maxFileSize+1 bytes of each file are kept; the
// rest is drained and only counted. The returned form is never nil and must be
// cleaned up.
func readUploadForm(r *http.Request, maxFiles int, maxFileSize int64) (*uploadForm, error) {
	form := &uploadForm{}
	mr, err := r.MultipartReader()
	if err != nil {
		return form, fmt.Errorf("%w: %w", errMalformedForm, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			return form, classifyFormErr(err)
		}

		switch {
		case part.FormName() == formFiles && part.FileName() != "":
			if len(form.files) == maxFiles {
				part.Close()
				return form, errTooManyFiles
			}
			f, err := form.spool(part, maxFileSize)
			if err != nil {
				part.Close()
				return form, err
			}
			form.files = append(form.files, f)
		case part.FormName() == formFileName && form.fileName == nil:
			raw, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				part.Close()
				return form, classifyFormErr(err)
			}
			v := string(raw)
			form.fileName = &v
		}
		if err := part.Close(); err != nil {
			return form, classifyFormErr(err)
		}
	}
}

func (f *uploadForm) spool(part *multipart.Part, maxFileSize int64) (spooledFile, error) {
	if f.dir == "" {
		dir, err := os.MkdirTemp("", "filemanager-upload-*")
		if err != nil {
			return spooledFile{}, err
		}
		f.dir = dir
	}
	tmp, err := os.CreateTemp(f.dir, "part-*")
	if err != nil {
		return spooledFile{}, err
	}
	defer tmp.Close()

	kept, err := io.Copy(tmp, io.LimitReader(part, maxFileSize+1))
	if err != nil {
		return spooledFile{}, classifyFormErr(err)
	}
	dropped, err := io.Copy(io.Discard, part)
	if err != nil {
		return spooledFile{}, classifyFormErr(err)
	}

	return spooledFile{
		filename:    part.FileName(),
		contentType: part.Header.Get("Content-Type"),
		size:        kept + dropped,
		path:        tmp.Name(),
	}, nil
}

func classifyFormErr(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return fmt.Errorf("%w: %w", errMalformedForm, err)
}

// uploads converts the spooled files into service uploads.
func (f *uploadForm) uploads() []Upload {
	out := make([]Upload, 0, len(f.files))
	for _, sf := range f.files {
		path := sf.path
		out = append(out, Upload{
			Filename:    sf.filename,
			ContentType: sf.contentType,
			Size:        sf.size,
			Open: func() (io.ReadCloser, error) {
				return os.Open(path)
			},
		})
	}
	return out
}

func (f *uploadForm) cleanup() {
	if f.dir != "" {
		_ = os.RemoveAll(f.dir)
	}
}
