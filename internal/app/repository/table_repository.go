package repository

import (
	"strings"
	"time"

	"github.com/pesabot/pesabot-backend/pkg/logger"
	"gorm.io/gorm"
)

// TableFilter narrows a table listing. Pagination values are expected to be
// validated by the caller; zero Limit means no limit (used by exports).
type TableFilter struct {
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

type TableRepository interface {
	List(desc TableDescriptor, filter TableFilter) (interface{}, int64, error)
	Insert(desc TableDescriptor, record interface{}) error
	FindRecord(desc TableDescriptor, id uint) (interface{}, error)
	SaveRecord(desc TableDescriptor, record interface{}) error
	DeleteRecord(desc TableDescriptor, id uint) (bool, error)
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

// List returns one page of rows plus the total count for the filter. Rows
// are always ordered newest first.
func (r *tableRepository) List(desc TableDescriptor, filter TableFilter) (interface{}, int64, error) {
	logger.Debug("Listing table rows in database", map[string]interface{}{
		"table":  desc.Name,
		"search": filter.Search,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})

	query := r.db.Model(desc.NewRecord())

	if filter.Search != "" && len(desc.SearchColumns) > 0 {
		like := "%" + strings.ToLower(filter.Search) + "%"
		conditions := make([]string, 0, len(desc.SearchColumns))
		args := make([]interface{}, 0, len(desc.SearchColumns))
		for _, column := range desc.SearchColumns {
			conditions = append(conditions, "LOWER("+column+") LIKE ?")
			args = append(args, like)
		}
		query = query.Where(strings.Join(conditions, " OR "), args...)
	}

	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count table rows in database", err, map[string]interface{}{
			"table": desc.Name,
		})
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	items := desc.NewSlice()
	if err := query.Find(items).Error; err != nil {
		logger.Error("Failed to list table rows in database", err, map[string]interface{}{
			"table": desc.Name,
		})
		return nil, 0, err
	}

	logger.Debug("Table rows listed in database", map[string]interface{}{
		"table": desc.Name,
		"total": total,
	})
	return items, total, nil
}

func (r *tableRepository) Insert(desc TableDescriptor, record interface{}) error {
	logger.Debug("Inserting row into table", map[string]interface{}{
		"table": desc.Name,
	})

	if err := r.db.Create(record).Error; err != nil {
		logger.Error("Failed to insert row into table", err, map[string]interface{}{
			"table": desc.Name,
		})
		return err
	}

	return nil
}

func (r *tableRepository) FindRecord(desc TableDescriptor, id uint) (interface{}, error) {
	logger.Debug("Finding row by ID in table", map[string]interface{}{
		"table": desc.Name,
		"id":    id,
	})

	record := desc.NewRecord()
	if err := r.db.First(record, id).Error; err != nil {
		return nil, err
	}

	return record, nil
}

func (r *tableRepository) SaveRecord(desc TableDescriptor, record interface{}) error {
	logger.Debug("Saving row in table", map[string]interface{}{
		"table": desc.Name,
	})

	if err := r.db.Save(record).Error; err != nil {
		logger.Error("Failed to save row in table", err, map[string]interface{}{
			"table": desc.Name,
		})
		return err
	}

	return nil
}

// DeleteRecord removes the row with the given id; the bool reports whether a
// row was actually deleted.
func (r *tableRepository) DeleteRecord(desc TableDescriptor, id uint) (bool, error) {
	logger.Debug("Deleting row from table", map[string]interface{}{
		"table": desc.Name,
		"id":    id,
	})

	result := r.db.Delete(desc.NewRecord(), id)
	if result.Error != nil {
		logger.Error("Failed to delete row from table", result.Error, map[string]interface{}{
			"table": desc.Name,
			"id":    id,
		})
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
