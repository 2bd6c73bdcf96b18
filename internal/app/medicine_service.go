package app

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"medicine_reminder/internal/domain/intake"
	"medicine_reminder/internal/domain/medicine"
	"medicine_reminder/internal/domain/schedule"

	"github.com/sirupsen/logrus"
)

// Custom application-level errors for the medicine service.
var (
	ErrMedicineNameRequired  = fmt.Errorf("medicine name is required")
	ErrMedicineStartRequired = fmt.Errorf("medicine start date is required")
)

// MedicineService owns the medicine CRUD, including the cascade on delete:
// removing a medicine also removes its schedules and its intake logs.
type MedicineService struct {
	medRepo    medicine.Repository
	schedRepo  schedule.Repository
	intakeRepo intake.Repository
	logger     *logrus.Logger
}

func NewMedicineService(mr medicine.Repository, sr schedule.Repository, ir intake.Repository, logger *logrus.Logger) *MedicineService {
	return &MedicineService{
		medRepo:    mr,
		schedRepo:  sr,
		intakeRepo: ir,
		logger:     logger,
	}
}

// MedicineInput carries the caller-supplied medicine fields.
type MedicineInput struct {
	Name            string
	Type            string
	Dosage          string
	QuantityPerDose int
	Instructions    string
	StartDate       time.Time
	EndDate         *time.Time
}

func (s *MedicineService) Create(ctx context.Context, userID int64, in MedicineInput) (*medicine.Medicine, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrMedicineNameRequired
	}
	if in.StartDate.IsZero() {
		return nil, ErrMedicineStartRequired
	}

	medType := medicine.Type(strings.ToUpper(strings.TrimSpace(in.Type)))
	if medType == "" {
		medType = medicine.TypeTablet
	}

	m := &medicine.Medicine{
		UserID:          userID,
		Name:            strings.TrimSpace(in.Name),
		Type:            medType,
		Dosage:          strings.TrimSpace(in.Dosage),
		QuantityPerDose: in.QuantityPerDose,
		StartDate:       in.StartDate,
		IsActive:        true,
	}
	if v := strings.TrimSpace(in.Instructions); v != "" {
		m.Instructions = sql.NullString{String: v, Valid: true}
	}
	if in.EndDate != nil {
		m.EndDate = sql.NullTime{Time: *in.EndDate, Valid: true}
	}

	if err := s.medRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create medicine: %w", err)
	}
	return m, nil
}

func (s *MedicineService) Get(ctx context.Context, userID, id int64) (*medicine.Medicine, error) {
	return s.medRepo.GetByID(ctx, userID, id)
}

func (s *MedicineService) List(ctx context.Context, userID int64) ([]*medicine.Medicine, error) {
	return s.medRepo.ListByUser(ctx, userID)
}

func (s *MedicineService) Update(ctx context.Context, userID, id int64, in MedicineInput) (*medicine.Medicine, error) {
	m, err := s.medRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(in.Name); v != "" {
		m.Name = v
	}
	if v := medicine.Type(strings.ToUpper(strings.TrimSpace(in.Type))); v != "" {
		m.Type = v
	}
	if v := strings.TrimSpace(in.Dosage); v != "" {
		m.Dosage = v
	}
	if in.QuantityPerDose > 0 {
		m.QuantityPerDose = in.QuantityPerDose
	}
	if v := strings.TrimSpace(in.Instructions); v != "" {
		m.Instructions = sql.NullString{String: v, Valid: true}
	}
	if !in.StartDate.IsZero() {
		m.StartDate = in.StartDate
	}
	if in.EndDate != nil {
		m.EndDate = sql.NullTime{Time: *in.EndDate, Valid: true}
	}

	if err := s.medRepo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to update medicine: %w", err)
	}
	return m, nil
}

// Delete removes the medicine and cascades to everything referencing it:
// schedules first, then intake logs, then the medicine row itself. After this
// returns, listSchedules and history for the user never mention the medicine.
func (s *MedicineService) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.medRepo.GetByID(ctx, userID, id); err != nil {
		return err
	}

	if err := s.schedRepo.DeleteByMedicine(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete schedules for medicine %d: %w", id, err)
	}
	if err := s.intakeRepo.DeleteByMedicine(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete intake logs for medicine %d: %w", id, err)
	}
	if err := s.medRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete medicine %d: %w", id, err)
	}

	s.logger.WithFields(logrus.Fields{"user_id": userID, "medicine_id": id}).
		Info("Medicine deleted with its schedules and intake logs")
	return nil
}
