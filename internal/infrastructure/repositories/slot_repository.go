package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/you/medbooksvc/domain"
)

// SlotRepositoryImpl implements domain.SlotRepository using GORM
type SlotRepositoryImpl struct {
	db *gorm.DB
}

// DBSlot represents the database model for AvailabilitySlot
type DBSlot struct {
	ID        uint      `gorm:"primaryKey"`
	DoctorID  uint      `gorm:"index"`
	Date      time.Time `gorm:"index"`
	StartTime string    `gorm:"size:8"`
	EndTime   string    `gorm:"size:8"`
	Booked    bool      `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBSlot) TableName() string {
	return "availability_slots"
}

// NewSlotRepository creates a new slot repository
func NewSlotRepository(db *gorm.DB) domain.SlotRepository {
	return &SlotRepositoryImpl{db: db}
}

// Create implements domain.SlotRepository
func (r *SlotRepositoryImpl) Create(ctx context.Context, slot *domain.AvailabilitySlot) error {
	dbSlot := r.domainToDB(slot)
	if err := r.db.WithContext(ctx).Create(dbSlot).Error; err != nil {
		return err
	}
	slot.ID = dbSlot.ID
	slot.CreatedAt = dbSlot.CreatedAt
	slot.UpdatedAt = dbSlot.UpdatedAt
	return nil
}

// FindByID implements domain.SlotRepository
func (r *SlotRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.AvailabilitySlot, error) {
	var dbSlot DBSlot
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbSlot).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSlot), nil
}

// ListByDoctor implements domain.SlotRepository
func (r *SlotRepositoryImpl) ListByDoctor(ctx context.Context, doctorID uint) ([]*domain.AvailabilitySlot, error) {
	var dbSlots []DBSlot
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date, start_time").
		Find(&dbSlots).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(dbSlots), nil
}

// ListOpenByDoctor implements domain.SlotRepository
func (r *SlotRepositoryImpl) ListOpenByDoctor(ctx context.Context, doctorID uint, from time.Time) ([]*domain.AvailabilitySlot, error) {
	var dbSlots []DBSlot
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND booked = ? AND date >= ?", doctorID, false, from).
		Order("date, start_time").
		Find(&dbSlots).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(dbSlots), nil
}

// SetBooked implements domain.SlotRepository. Booking is a conditional
// update so two concurrent claims cannot both win; the loser sees
// ErrSlotTaken. Freeing is unconditional.
func (r *SlotRepositoryImpl) SetBooked(ctx context.Context, id uint, booked bool) error {
	if booked {
		result := r.db.WithContext(ctx).Model(&DBSlot{}).
			Where("id = ? AND booked = ?", id, false).
			Update("booked", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrSlotTaken
		}
		return nil
	}
	return r.db.WithContext(ctx).Model(&DBSlot{}).Where("id = ?", id).
		Update("booked", false).Error
}

// Delete implements domain.SlotRepository
func (r *SlotRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBSlot{}, id).Error
}

func (r *SlotRepositoryImpl) toDomainList(dbSlots []DBSlot) []*domain.AvailabilitySlot {
	slots := make([]*domain.AvailabilitySlot, 0, len(dbSlots))
	for i := range dbSlots {
		slots = append(slots, r.dbToDomain(&dbSlots[i]))
	}
	return slots
}

func (r *SlotRepositoryImpl) domainToDB(slot *domain.AvailabilitySlot) *DBSlot {
	return &DBSlot{
		ID:        slot.ID,
		DoctorID:  slot.DoctorID,
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Booked:    slot.Booked,
	}
}

func (r *SlotRepositoryImpl) dbToDomain(dbSlot *DBSlot) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:        dbSlot.ID,
		DoctorID:  dbSlot.DoctorID,
		Date:      dbSlot.Date,
		StartTime: dbSlot.StartTime,
		EndTime:   dbSlot.EndTime,
		Booked:    dbSlot.Booked,
		CreatedAt: dbSlot.CreatedAt,
		UpdatedAt: dbSlot.UpdatedAt,
	}
}
