package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shashiranjanraj/merchdesk/app/services"
	"github.com/shashiranjanraj/merchdesk/pkg/logger"
	"github.com/shashiranjanraj/merchdesk/pkg/response"
)

type TableController struct {
	service *services.TableService
}

func NewTableController(service *services.TableService) *TableController {
	return &TableController{service: service}
}

// Tables lists the editable table names.
func (c *TableController) Tables(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.service.Tables())
}

// Schema returns a table's columns and primary key.
func (c *TableController) Schema(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	schema, err := c.service.Schema(table)
	if err != nil {
		c.writeError(w, r, err, "Schema query failed")
		return
	}
	response.Success(w, schema)
}

// List returns one page of rows. Page and limit come from the query
// string; limit is clamped server-side.
func (c *TableController) List(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, total, err := c.service.List(table, page, limit)
	if err != nil {
		c.writeError(w, r, err, "Row query failed")
		return
	}

	limit = services.ClampLimit(limit)
	if page < 1 {
		page = 1
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	response.Paginated(w, rows, response.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Show returns a single row by primary key.
func (c *TableController) Show(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	id := chi.URLParam(r, "id")

	row, err := c.service.Get(table, id)
	if err != nil {
		c.writeError(w, r, err, "Row query failed")
		return
	}
	if row == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, row)
}

// Create inserts a new row from the JSON body.
func (c *TableController) Create(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	record, ok := decodeRecord(w, r)
	if !ok {
		return
	}

	if err := c.service.Create(table, record); err != nil {
		c.writeError(w, r, err, "Insert failed")
		return
	}
	response.Created(w, record)
}

// Update applies the JSON body's columns to one row.
func (c *TableController) Update(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	id := chi.URLParam(r, "id")

	record, ok := decodeRecord(w, r)
	if !ok {
		return
	}

	if err := c.service.Update(table, id, record); err != nil {
		c.writeError(w, r, err, "Update failed")
		return
	}
	response.Success(w, map[string]string{"message": "updated"})
}

// Delete removes one row.
func (c *TableController) Delete(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	id := chi.URLParam(r, "id")

	if err := c.service.Delete(table, id); err != nil {
		c.writeError(w, r, err, "Delete failed")
		return
	}
	response.Success(w, map[string]string{"message": "deleted"})
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var record map[string]any
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return nil, false
	}
	return record, true
}

// writeError maps service errors onto HTTP statuses: validation failures
// are the client's fault, constraint violations are a conflict, and
// anything else is a 500 that gets logged.
func (c *TableController) writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidTable),
		errors.Is(err, services.ErrInvalidColumn),
		errors.Is(err, services.ErrEmptyRecord):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConstraint):
		response.Error(w, http.StatusConflict, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("table operation failed", "error", err)
		response.Error(w, http.StatusInternalServerError, fallback)
	}
}
