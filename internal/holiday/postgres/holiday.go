package postgres

import (
	holidayDatamodel "github.com/zeitwerk/zeitwerk/internal/core/datamodel/holiday"
	"github.com/zeitwerk/zeitwerk/internal/holiday"
	"gorm.io/gorm"
)

// HolidayRepository implements the holiday.Repository interface using GORM
type HolidayRepository struct {
	db *gorm.DB
}

// NewHolidayRepository creates a new holiday repository
func NewHolidayRepository(db *gorm.DB) holiday.Repository {
	return &HolidayRepository{db: db}
}

func (r *HolidayRepository) Create(h *holiday.Holiday) error {
	dm := holiday.ToDataModel(h)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	h.ID = dm.ID
	return nil
}

func (r *HolidayRepository) GetByID(id int64) (*holiday.Holiday, error) {
	var dm holidayDatamodel.Holiday
	err := r.db.Where("id = ?", id).First(&dm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, holiday.ErrHolidayNotFound
		}
		return nil, err
	}
	return holiday.FromDataModel(&dm), nil
}

func (r *HolidayRepository) GetAll() ([]*holiday.Holiday, error) {
	var dms []*holidayDatamodel.Holiday
	if err := r.db.Order("holiday_date ASC").Find(&dms).Error; err != nil {
		return nil, err
	}
	return holiday.FromDataModelSlice(dms), nil
}

func (r *HolidayRepository) Update(h *holiday.Holiday) error {
	return r.db.Save(holiday.ToDataModel(h)).Error
}

func (r *HolidayRepository) Delete(id int64) error {
	return r.db.Delete(&holidayDatamodel.Holiday{}, id).Error
}
