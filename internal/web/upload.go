package web

import (
	stderrors "errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/datadash/datadash/internal/dataset"
	"github.com/datadash/datadash/internal/errors"
	"github.com/dustin/go-humanize"
)

// UploadField is the multipart field holding the file.
const UploadField = "file"

// PreviewRows is how many leading rows an upload response echoes back.
const PreviewRows = 5

// UploadResult is the response to a successful upload.
type UploadResult struct {
	Filename string          `json:"filename"`
	Size     int64           `json:"size"`
	Preview  *dataset.Table  `json:"preview"`
	Summary  dataset.Summary `json:"summary"`
}

// IsCSVName reports whether name has a .csv extension, ignoring case.
func IsCSVName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

func (e *Env) upload(w http.ResponseWriter, r *http.Request) {
	limit := e.Config.Chart.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooBig *http.MaxBytesError
		if stderrors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
			e.Metrics.Upload("too_large")
			writeError(w, http.StatusRequestEntityTooLarge, errors.ErrData,
				"upload exceeds the "+humanize.IBytes(uint64(limit))+" limit")
			return
		}
		e.Metrics.Upload("bad_request")
		writeError(w, http.StatusBadRequest, errors.ErrHTTP, "expected a multipart form: "+err.Error())
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		e.Metrics.Upload("bad_request")
		writeError(w, http.StatusBadRequest, errors.ErrHTTP, "missing '"+UploadField+"' field")
		return
	}
	defer file.Close()

	if !IsCSVName(header.Filename) {
		e.Metrics.Upload("wrong_type")
		writeError(w, http.StatusUnsupportedMediaType, errors.ErrData,
			"only .csv files are accepted, got "+filepath.Ext(header.Filename))
		return
	}

	table, err := dataset.ParseCSV(file)
	if err != nil {
		e.Metrics.Upload("invalid")
		writeErr(w, http.StatusBadRequest, err)
		return
	}

	e.Metrics.Upload("ok")
	e.Log.Info("upload %s: %d rows, %d columns (%s)", header.Filename, table.Len(), len(table.Columns), humanize.Bytes(uint64(header.Size)))
	writeJSON(w, http.StatusOK, UploadResult{
		Filename: filepath.Base(header.Filename),
		Size:     header.Size,
		Preview:  table.Head(PreviewRows),
		Summary:  dataset.Describe(table),
	})
}
