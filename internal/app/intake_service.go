package app

import (
	"context"
	"fmt"
	"time"

	"medicine_reminder/internal/domain/intake"
	"medicine_reminder/internal/domain/medicine"
	"medicine_reminder/internal/domain/user"
	idb "medicine_reminder/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// ErrInvalidStatus rejects mark-intake calls whose status is neither TAKEN
// nor MISSED.
var ErrInvalidStatus = fmt.Errorf("status must be TAKEN or MISSED")

// IntakeService is the write path of the intake ledger plus its direct reads.
// A slot (user, medicine, date, time) gets at most one outcome, ever; the
// storage layer backs that with a hard uniqueness constraint.
type IntakeService struct {
	intakeRepo intake.Repository
	medRepo    medicine.Repository
	userRepo   user.Repository
	dispatcher *Dispatcher
	clock      Clock
	loc        *time.Location
	logger     *logrus.Logger
}

func NewIntakeService(ir intake.Repository, mr medicine.Repository, ur user.Repository, d *Dispatcher, clock Clock, loc *time.Location, logger *logrus.Logger) *IntakeService {
	return &IntakeService{
		intakeRepo: ir,
		medRepo:    mr,
		userRepo:   ur,
		dispatcher: d,
		clock:      clock,
		loc:        loc,
		logger:     logger,
	}
}

// Mark records the outcome of one scheduled dose slot.
//
// Guarantees, in order: status validated; medicine ownership verified;
// duplicate slot rejected with ErrDuplicateIntake (the ledger never
// overwrites); guardian alert dispatched best-effort after a successful
// insert, never affecting the result.
func (s *IntakeService) Mark(ctx context.Context, userID, medicineID int64, date time.Time, hhmm string, status intake.Status) (*intake.Log, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	normalized, err := NormalizeTime(hhmm)
	if err != nil {
		return nil, err
	}

	med, err := s.medRepo.GetByID(ctx, userID, medicineID)
	if err != nil {
		return nil, err
	}

	l := &intake.Log{
		UserID:     userID,
		MedicineID: medicineID,
		Date:       intake.DateKey(date),
		Time:       normalized,
		Status:     status,
	}
	if err := s.intakeRepo.Create(ctx, l); err != nil {
		if err == idb.ErrDuplicateIntake {
			return nil, idb.ErrDuplicateIntake
		}
		return nil, fmt.Errorf("failed to record intake: %w", err)
	}

	s.notifyGuardian(ctx, l, med)
	return l, nil
}

// notifyGuardian sends the guardian alert when the user opted in. Any failure
// here is invisible to the Mark caller.
func (s *IntakeService) notifyGuardian(ctx context.Context, l *intake.Log, med *medicine.Medicine) {
	u, err := s.userRepo.GetByID(ctx, l.UserID)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"user_id": l.UserID}).
			WithError(err).Warn("Guardian alert skipped: user lookup failed")
		return
	}
	if !u.NotifyGuardian || !u.GuardianEmail.Valid {
		return
	}
	s.dispatcher.SendGuardianAlert(ctx, u, med, l.Date, l.Time, l.Status)
}

// Today returns the user's logs dated today in the reference zone's calendar.
func (s *IntakeService) Today(ctx context.Context, userID int64) ([]*intake.Log, error) {
	now := s.clock.Now().In(s.loc)
	return s.intakeRepo.ListByDate(ctx, userID, intake.DateKey(now))
}

// History returns the user's full intake history, newest first.
func (s *IntakeService) History(ctx context.Context, userID int64) ([]*intake.Log, error) {
	return s.intakeRepo.ListByUser(ctx, userID)
}
