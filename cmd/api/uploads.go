package main

import (
	"errors"
	"net/http"

	"github.com/farxc/listagem-empenhos/internal/organizer"
	"github.com/farxc/listagem-empenhos/internal/response"
	"github.com/farxc/listagem-empenhos/internal/store"
)

// Uploaded listings are small, a few thousand rows at most.
const maxUploadBytes = 32 << 20

type UploadResponse = response.APIResponse[*organizer.ProcessResult]
type UploadHistoryResponse = response.APIResponse[[]store.UploadRecord]

// @Summary		Process upload
// @Description	Ingests a spreadsheet (xlsx, xls or csv), organizes it and merges it into the stored dataset. Admin only.
// @Tags			Uploads
// @Accept			multipart/form-data
// @Produce		json
// @Param			file	formData	file					true	"Spreadsheet file"
// @Success		200		{object}	UploadResponse			"Upload processed"
// @Failure		422		{object}	response.ErrorResponse	"Upload rejected"
// @Router			/uploads [post]
func (app *application) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	result, err := app.organizer.ProcessUpload(r.Context(), header.Filename, file, requestUser(r).Username)
	if err != nil {
		var insufficient *organizer.InsufficientColumnsError
		var noKey *organizer.KeyColumnNotFoundError
		if errors.As(err, &insufficient) || errors.As(err, &noKey) {
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to process upload: "+err.Error())
		return
	}

	resp := &UploadResponse{
		Success: true,
		Data:    result,
		Message: "Upload processed",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Get upload history
// @Description	Get a list of the latest upload runs. Admin only.
// @Tags			Uploads
// @Produce		json
// @Param			limit	query		int						false	"Limit the number of results"	default(10)
// @Success		200		{object}	UploadHistoryResponse	"Latest upload runs"
// @Failure		500		{object}	response.ErrorResponse	"Failed to get upload history"
// @Router			/uploads/history [get]
func (app *application) handleUploadHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseIntOrDefault(r.URL.Query().Get("limit"), 10)

	data, err := app.organizer.History(r.Context(), limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get upload history: "+err.Error())
		return
	}

	resp := &UploadHistoryResponse{
		Success: true,
		Data:    data,
		Message: "Latest upload runs",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
