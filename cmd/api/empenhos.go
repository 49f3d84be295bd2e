package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farxc/listagem-empenhos/internal/organizer"
	"github.com/farxc/listagem-empenhos/internal/response"
	"github.com/farxc/listagem-empenhos/internal/store"
)

const empenhosPerPage = 50

// EmpenhoPage is a page of the organized dataset, rows keyed by header.
type EmpenhoPage struct {
	Header []string         `json:"header"`
	Rows   []map[string]any `json:"rows"`
}

type ListEmpenhosResponse = response.APIResponse[*EmpenhoPage]
type ListDepartmentsResponse = response.APIResponse[[]string]

// @Summary		List empenhos
// @Description	Browse the organized dataset with filters and pagination. Non-admin users only see their own department.
// @Tags			Empenhos
// @Produce		json
// @Param			page		query		int						false	"Page number"	default(1)
// @Param			department	query		string					false	"Department name, or Todos"
// @Param			empenho		query		string					false	"Commitment number substring"
// @Param			supplier	query		string					false	"Supplier name substring"
// @Param			start_date	query		string					false	"Emission date lower bound (YYYY-MM-DD)"
// @Param			end_date	query		string					false	"Emission date upper bound (YYYY-MM-DD)"
// @Success		200			{object}	ListEmpenhosResponse	"Successfully retrieved empenhos"
// @Failure		500			{object}	response.ErrorResponse	"Failed to load dataset"
// @Router			/empenhos [get]
func (app *application) handleListEmpenhos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	filter := organizer.Filter{
		Department: q.Get("department"),
		Empenho:    q.Get("empenho"),
		Supplier:   q.Get("supplier"),
	}
	if v := q.Get("start_date"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid start_date format (YYYY-MM-DD expected)")
			return
		}
		filter.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid end_date format (YYYY-MM-DD expected)")
			return
		}
		filter.EndDate = &t
	}

	// Regular users are pinned to their own department regardless of the
	// requested filter.
	if user := requestUser(r); user.Role != store.RoleAdmin {
		filter.Department = user.Department
	}

	table, err := app.organizer.Empenhos(ctx)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load dataset: "+err.Error())
		return
	}

	filtered := organizer.ApplyFilter(table, filter)
	page := parseIntOrDefault(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}
	totalItems := filtered.Nrow()
	totalPages := (totalItems + empenhosPerPage - 1) / empenhosPerPage

	start := (page - 1) * empenhosPerPage
	end := start + empenhosPerPage
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	pageData := &EmpenhoPage{Header: filtered.Header}
	for i := start; i < end; i++ {
		row := make(map[string]any, len(filtered.Header))
		for j, h := range filtered.Header {
			row[h] = filtered.Cell(i, j)
		}
		pageData.Rows = append(pageData.Rows, row)
	}

	resp := &ListEmpenhosResponse{
		Success: true,
		Data:    pageData,
		Message: "Successfully retrieved empenhos",
		Meta: &response.Meta{
			Page:       page,
			PerPage:    empenhosPerPage,
			TotalItems: totalItems,
			TotalPages: totalPages,
		},
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		List departments
// @Description	Get the known department names for filter dropdowns.
// @Tags			Empenhos
// @Produce		json
// @Success		200	{object}	ListDepartmentsResponse	"Department names"
// @Router			/empenhos/departments [get]
func (app *application) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	resp := &ListDepartmentsResponse{
		Success: true,
		Data:    organizer.DepartmentNames(),
		Message: "Department names",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Save annotation
// @Description	Updates the Observação cell of the record with the given commitment number.
// @Tags			Empenhos
// @Accept			json
// @Produce		json
// @Param			empenho		path		string							true	"Commitment number"
// @Param			annotation	body		object{annotation:string}		true	"Annotation text"
// @Success		200			{object}	response.APIResponse[string]	"Annotation saved"
// @Failure		404			{object}	response.ErrorResponse			"Empenho not found"
// @Router			/empenhos/{empenho}/annotation [patch]
func (app *application) handleSaveAnnotation(w http.ResponseWriter, r *http.Request) {
	empenho := chi.URLParam(r, "empenho")

	var input struct {
		Annotation string `json:"annotation"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := app.organizer.SaveAnnotation(r.Context(), empenho, input.Annotation); err != nil {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}

	resp := &response.APIResponse[string]{
		Success: true,
		Message: "Annotation saved",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Export empenhos
// @Description	Downloads the current organized dataset as an xlsx workbook.
// @Tags			Empenhos
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200	{file}		file					"Workbook"
// @Failure		500	{object}	response.ErrorResponse	"Failed to export dataset"
// @Router			/empenhos/export [get]
func (app *application) handleExportEmpenhos(w http.ResponseWriter, r *http.Request) {
	data, err := app.organizer.ExportCurrent(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to export dataset: "+err.Error())
		return
	}

	filename := fmt.Sprintf("empenhos_organizados_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		app.logger.Warn("API", "Failed to stream export: err=%v", err)
	}
}
