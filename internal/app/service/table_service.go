package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pesabot/pesabot-backend/internal/app/repository"
	"github.com/pesabot/pesabot-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var (
	ErrUnknownTable   = errors.New("table not found")
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidData    = errors.New("record data does not match the table schema")
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListQuery carries the raw browse parameters. Page and PageSize are clamped
// by the service: page to >= 1, pageSize to [1, 100].
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
}

type ListResult struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

type TableService interface {
	Tables() []string
	List(table string, query ListQuery) (*ListResult, error)
	Add(table string, data map[string]interface{}) (interface{}, error)
	Update(table string, id uint, data map[string]interface{}) (interface{}, error)
	Remove(table string, id uint) error
	Export(table string, query ListQuery) (*excelize.File, error)
}

type tableService struct {
	tableRepo repository.TableRepository
}

func NewTableService(tableRepo repository.TableRepository) TableService {
	return &tableService{tableRepo: tableRepo}
}

func (s *tableService) Tables() []string {
	return repository.RegisteredTables()
}

func (s *tableService) List(table string, query ListQuery) (*ListResult, error) {
	desc, ok := repository.LookupTable(table)
	if !ok {
		return nil, ErrUnknownTable
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.tableRepo.List(desc, repository.TableFilter{
		Search:   query.Search,
		DateFrom: query.DateFrom,
		DateTo:   query.DateTo,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *tableService) Add(table string, data map[string]interface{}) (interface{}, error) {
	desc, ok := repository.LookupTable(table)
	if !ok {
		return nil, ErrUnknownTable
	}

	logger.Info("Adding record to table", map[string]interface{}{
		"table": table,
	})

	// Identity and timestamps belong to the store, not the caller.
	delete(data, "id")
	delete(data, "created_at")
	delete(data, "updated_at")

	record := desc.NewRecord()
	if err := decodeInto(data, record); err != nil {
		return nil, err
	}

	if err := s.tableRepo.Insert(desc, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *tableService) Update(table string, id uint, data map[string]interface{}) (interface{}, error) {
	desc, ok := repository.LookupTable(table)
	if !ok {
		return nil, ErrUnknownTable
	}

	logger.Info("Updating record in table", map[string]interface{}{
		"table": table,
		"id":    id,
	})

	record, err := s.tableRepo.FindRecord(desc, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	delete(data, "id")
	delete(data, "created_at")
	delete(data, "updated_at")

	// Partial merge: only the fields present in data are overwritten.
	if err := decodeInto(data, record); err != nil {
		return nil, err
	}

	if err := s.tableRepo.SaveRecord(desc, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *tableService) Remove(table string, id uint) error {
	desc, ok := repository.LookupTable(table)
	if !ok {
		return ErrUnknownTable
	}

	logger.Info("Removing record from table", map[string]interface{}{
		"table": table,
		"id":    id,
	})

	deleted, err := s.tableRepo.DeleteRecord(desc, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecordNotFound
	}

	return nil
}

// decodeInto applies the caller-supplied fields onto record through their
// JSON names, so the store's column mapping stays the single source of truth
// for what is settable.
func decodeInto(data map[string]interface{}, record interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	if err := json.Unmarshal(raw, record); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}
