package vision

import (
	"io"
	"net/http"

	dErrors "trustbridge/pkg/domain-errors"
)

const maxUploadBytes = 32 << 20

// DocumentsFromRequest reads the uploaded files under the given multipart
// field. Missing field or empty list is a bad request; MIME filtering is left
// to the caller so skipped files can still be reported.
func DocumentsFromRequest(r *http.Request, field string) ([]Document, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart form")
	}

	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "no file uploaded")
	}

	docs := make([]Document, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read uploaded file")
		}
		data, err := io.ReadAll(file)
		file.Close() //nolint:errcheck
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read uploaded file")
		}
		docs = append(docs, Document{
			Filename: header.Filename,
			MIMEType: header.Header.Get("Content-Type"),
			Bytes:    data,
		})
	}
	return docs, nil
}

// DocumentFromRequest reads exactly one uploaded file under the given field.
func DocumentFromRequest(r *http.Request, field string) (Document, error) {
	docs, err := DocumentsFromRequest(r, field)
	if err != nil {
		return Document{}, err
	}
	return docs[0], nil
}
