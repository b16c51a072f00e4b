package api

import (
	"errors"
	"fmt"
	"net/http"

	"patentq/internal/apperr"
	"patentq/internal/importer"
)

func (a *API) listPatents(w http.ResponseWriter, r *http.Request) {
	all, err := a.patents.List(r.Context())
	if err != nil {
		fail(w, r, err, "Error fetching patents", nil)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (a *API) searchPatents(w http.ResponseWriter, r *http.Request) {
	found, err := a.patents.Search(r.Context(), r.URL.Query().Get("patent_numbers"))
	if err != nil {
		fail(w, r, err, "Error searching patents", nil)
		return
	}
	loggerFrom(r.Context()).Infow("patent search", "user", profileFrom(r.Context()).Email, "found", len(found))
	writeJSON(w, http.StatusOK, found)
}

// uploadPatents imports the first worksheet of the multipart field "file".
func (a *API) uploadPatents(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, a.opts.MaxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		log.Infow("upload without file", "error", err)
		writeJSONError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	rows, err := importer.ReadRows(file)
	if err != nil {
		fail(w, r, err, "Error processing file", nil)
		return
	}
	res, err := a.importer.Import(r.Context(), rows)
	if err != nil {
		fail(w, r, apperr.Wrap(apperr.KindDependency, "import", err), "Error processing file", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  fmt.Sprintf("%d patents processed successfully", res.Processed),
		"warnings": res.Warnings,
	})
}
