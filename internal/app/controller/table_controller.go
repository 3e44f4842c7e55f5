package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pesabot/pesabot-backend/internal/app/service"
	apperrors "github.com/pesabot/pesabot-backend/internal/errors"
	"github.com/pesabot/pesabot-backend/internal/middleware"
)

type TableController struct {
	tableService service.TableService
}

func NewTableController(tableService service.TableService) *TableController {
	return &TableController{tableService: tableService}
}

// ListTables returns the names of all browsable tables
// GET /api/v1/admin/tables
func (ctrl *TableController) ListTables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"tables": ctrl.tableService.Tables(),
	})
}

// ListRecords returns one page of a table
// GET /api/v1/admin/tables/:table
func (ctrl *TableController) ListRecords(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	table := c.Param("table")

	query, err := parseListQuery(c)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	result, err := ctrl.tableService.List(table, query)
	if err != nil {
		if errors.Is(err, service.ErrUnknownTable) {
			apperrors.NotFound(c, apperrors.TableUnknown, "Table not found")
			return
		}
		log.Error("Failed to list table", err, map[string]interface{}{
			"table": table,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list table")
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportRecords streams the filtered table as an xlsx workbook
// GET /api/v1/admin/tables/:table/export
func (ctrl *TableController) ExportRecords(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	table := c.Param("table")

	query, err := parseListQuery(c)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		return
	}

	file, err := ctrl.tableService.Export(table, query)
	if err != nil {
		if errors.Is(err, service.ErrUnknownTable) {
			apperrors.NotFound(c, apperrors.TableUnknown, "Table not found")
			return
		}
		log.Error("Failed to export table", err, map[string]interface{}{
			"table": table,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.TableExportFailed, "Failed to export the table")
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", table, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		log.Error("Failed to write export response", err, map[string]interface{}{
			"table": table,
		})
	}
}

// CreateRecord adds a row to a table
// POST /api/v1/admin/tables/:table
func (ctrl *TableController) CreateRecord(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	table := c.Param("table")

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Request body must be a JSON object")
		return
	}

	record, err := ctrl.tableService.Add(table, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTable):
			apperrors.NotFound(c, apperrors.TableUnknown, "Table not found")
		case errors.Is(err, service.ErrInvalidData):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Record data does not match the table schema")
		default:
			log.Error("Failed to create record", err, map[string]interface{}{
				"table": table,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create record")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"record": record,
	})
}

// UpdateRecord applies a partial update to a row
// PUT /api/v1/admin/tables/:table/:id
func (ctrl *TableController) UpdateRecord(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	table := c.Param("table")

	id, ok := parseID(c)
	if !ok {
		return
	}

	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Request body must be a JSON object")
		return
	}

	record, err := ctrl.tableService.Update(table, id, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTable):
			apperrors.NotFound(c, apperrors.TableUnknown, "Table not found")
		case errors.Is(err, service.ErrRecordNotFound):
			apperrors.NotFound(c, apperrors.TableRecordNotFound, "Record not found")
		case errors.Is(err, service.ErrInvalidData):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Record data does not match the table schema")
		default:
			log.Error("Failed to update record", err, map[string]interface{}{
				"table": table,
				"id":    id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update record")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"record": record,
	})
}

// DeleteRecord removes a row
// DELETE /api/v1/admin/tables/:table/:id
func (ctrl *TableController) DeleteRecord(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	table := c.Param("table")

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.tableService.Remove(table, id); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTable):
			apperrors.NotFound(c, apperrors.TableUnknown, "Table not found")
		case errors.Is(err, service.ErrRecordNotFound):
			apperrors.NotFound(c, apperrors.TableRecordNotFound, "Record not found")
		default:
			log.Error("Failed to delete record", err, map[string]interface{}{
				"table": table,
				"id":    id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete record")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

func parseListQuery(c *gin.Context) (service.ListQuery, error) {
	query := service.ListQuery{
		Search: c.Query("search"),
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return query, fmt.Errorf("page must be an integer")
	}
	query.Page = page

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		return query, fmt.Errorf("page_size must be an integer")
	}
	query.PageSize = pageSize

	if from := c.Query("date_from"); from != "" {
		parsed, err := parseDate(from)
		if err != nil {
			return query, fmt.Errorf("date_from must be an RFC3339 timestamp or YYYY-MM-DD date")
		}
		query.DateFrom = &parsed
	}
	if to := c.Query("date_to"); to != "" {
		parsed, err := parseDate(to)
		if err != nil {
			return query, fmt.Errorf("date_to must be an RFC3339 timestamp or YYYY-MM-DD date")
		}
		query.DateTo = &parsed
	}

	return query, nil
}

func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Record id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
