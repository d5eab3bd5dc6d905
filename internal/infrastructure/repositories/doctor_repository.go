package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/you/medbooksvc/domain"
)

// DoctorRepositoryImpl implements domain.DoctorRepository using GORM
type DoctorRepositoryImpl struct {
	db *gorm.DB
}

// DBDoctor represents the database model for Doctor (with GORM tags).
// Emails are stored lowercased so the unique index is case-insensitive.
type DBDoctor struct {
	ID                    uint   `gorm:"primaryKey"`
	FirstName             string `gorm:"size:100"`
	LastName              string `gorm:"size:100"`
	Email                 string `gorm:"uniqueIndex;size:255"`
	PasswordHash          string `gorm:"column:password"`
	Specialization        string `gorm:"index;size:64"`
	LicenseNumber         string `gorm:"uniqueIndex;size:64"`
	Hospital              string `gorm:"size:255"`
	Phone                 string `gorm:"size:32"`
	IsVerified            bool   `gorm:"index"`
	IsActive              bool   `gorm:"index"`
	LastLoginAt           *time.Time
	ResetTokenHash        string `gorm:"index;size:64"`
	ResetTokenExpiresAt   *time.Time
	VerificationTokenHash string `gorm:"index;size:64"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBDoctor) TableName() string {
	return "doctors"
}

// NewDoctorRepository creates a new doctor repository
func NewDoctorRepository(db *gorm.DB) domain.DoctorRepository {
	return &DoctorRepositoryImpl{db: db}
}

// Create implements domain.DoctorRepository. Unique-index violations
// are translated to the conflict sentinels so a concurrent duplicate
// registration surfaces the same way a pre-checked one does.
func (r *DoctorRepositoryImpl) Create(ctx context.Context, doctor *domain.Doctor) error {
	dbDoctor := r.domainToDB(doctor)
	if err := r.db.WithContext(ctx).Create(dbDoctor).Error; err != nil {
		return translateDuplicateError(err)
	}
	doctor.ID = dbDoctor.ID
	doctor.Email = dbDoctor.Email
	doctor.CreatedAt = dbDoctor.CreatedAt
	doctor.UpdatedAt = dbDoctor.UpdatedAt
	return nil
}

// translateDuplicateError maps the driver's unique-index violations to
// the conflict sentinels. SQLite reports "UNIQUE constraint failed:
// doctors.email", Postgres "duplicate key value violates unique
// constraint"; both name the offending column or index.
func translateDuplicateError(err error) error {
	msg := err.Error()
	if !errors.Is(err, gorm.ErrDuplicatedKey) &&
		!strings.Contains(msg, "UNIQUE constraint") &&
		!strings.Contains(msg, "duplicate key") {
		return err
	}
	if strings.Contains(msg, "license") {
		return domain.ErrLicenseTaken
	}
	return domain.ErrEmailTaken
}

// FindByEmail implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	var dbDoctor DBDoctor
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&dbDoctor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbDoctor), nil
}

// FindByLicense implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) FindByLicense(ctx context.Context, license string) (*domain.Doctor, error) {
	var dbDoctor DBDoctor
	err := r.db.WithContext(ctx).Where("license_number = ?", license).First(&dbDoctor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbDoctor), nil
}

// FindByID implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Doctor, error) {
	var dbDoctor DBDoctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbDoctor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbDoctor), nil
}

// FindByResetTokenHash implements domain.DoctorRepository. Expiry is the
// caller's concern; this only matches the stored hash.
func (r *DoctorRepositoryImpl) FindByResetTokenHash(ctx context.Context, tokenHash string) (*domain.Doctor, error) {
	var dbDoctor DBDoctor
	err := r.db.WithContext(ctx).Where("reset_token_hash = ?", tokenHash).First(&dbDoctor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbDoctor), nil
}

// FindByVerificationTokenHash implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*domain.Doctor, error) {
	var dbDoctor DBDoctor
	err := r.db.WithContext(ctx).Where("verification_token_hash = ?", tokenHash).First(&dbDoctor).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbDoctor), nil
}

// ListVerified implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) ListVerified(ctx context.Context) ([]*domain.Doctor, error) {
	var dbDoctors []DBDoctor
	err := r.db.WithContext(ctx).
		Where("is_verified = ? AND is_active = ?", true, true).
		Order("last_name, first_name").
		Find(&dbDoctors).Error
	if err != nil {
		return nil, err
	}

	doctors := make([]*domain.Doctor, 0, len(dbDoctors))
	for i := range dbDoctors {
		doctors = append(doctors, r.dbToDomain(&dbDoctors[i]))
	}
	return doctors, nil
}

// Update implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) Update(ctx context.Context, doctor *domain.Doctor) error {
	dbDoctor := r.domainToDB(doctor)
	return r.db.WithContext(ctx).Save(dbDoctor).Error
}

// UpdateLastLogin implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&DBDoctor{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}

// UpdatePassword implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&DBDoctor{}).Where("id = ?", id).
		Update("password", passwordHash).Error
}

// SetResetToken implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) SetResetToken(ctx context.Context, id uint, tokenHash string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Model(&DBDoctor{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token_hash":       tokenHash,
			"reset_token_expires_at": expiresAt,
		}).Error
}

// ClearResetToken implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) ClearResetToken(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBDoctor{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token_hash":       "",
			"reset_token_expires_at": nil,
		}).Error
}

// MarkVerified implements domain.DoctorRepository
func (r *DoctorRepositoryImpl) MarkVerified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBDoctor{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_verified":             true,
			"verification_token_hash": "",
		}).Error
}

// domainToDB converts domain doctor to database doctor
func (r *DoctorRepositoryImpl) domainToDB(doctor *domain.Doctor) *DBDoctor {
	return &DBDoctor{
		ID:                    doctor.ID,
		FirstName:             doctor.FirstName,
		LastName:              doctor.LastName,
		Email:                 strings.ToLower(doctor.Email),
		PasswordHash:          doctor.PasswordHash,
		Specialization:        doctor.Specialization,
		LicenseNumber:         doctor.LicenseNumber,
		Hospital:              doctor.Hospital,
		Phone:                 doctor.Phone,
		IsVerified:            doctor.IsVerified,
		IsActive:              doctor.IsActive,
		LastLoginAt:           doctor.LastLoginAt,
		ResetTokenHash:        doctor.ResetTokenHash,
		ResetTokenExpiresAt:   doctor.ResetTokenExpiresAt,
		VerificationTokenHash: doctor.VerificationTokenHash,
	}
}

// dbToDomain converts database doctor to domain doctor
func (r *DoctorRepositoryImpl) dbToDomain(dbDoctor *DBDoctor) *domain.Doctor {
	return &domain.Doctor{
		ID:                    dbDoctor.ID,
		FirstName:             dbDoctor.FirstName,
		LastName:              dbDoctor.LastName,
		Email:                 dbDoctor.Email,
		PasswordHash:          dbDoctor.PasswordHash,
		Specialization:        dbDoctor.Specialization,
		LicenseNumber:         dbDoctor.LicenseNumber,
		Hospital:              dbDoctor.Hospital,
		Phone:                 dbDoctor.Phone,
		IsVerified:            dbDoctor.IsVerified,
		IsActive:              dbDoctor.IsActive,
		LastLoginAt:           dbDoctor.LastLoginAt,
		ResetTokenHash:        dbDoctor.ResetTokenHash,
		ResetTokenExpiresAt:   dbDoctor.ResetTokenExpiresAt,
		VerificationTokenHash: dbDoctor.VerificationTokenHash,
		CreatedAt:             dbDoctor.CreatedAt,
		UpdatedAt:             dbDoctor.UpdatedAt,
	}
}
