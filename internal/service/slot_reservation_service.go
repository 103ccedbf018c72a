package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthsync/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotTaken is returned when another patient already holds the slot
var ErrSlotTaken = errors.New("time slot is already booked")

// reserveSlotScript is a package-level Lua script.
// Redis Go client automatically uses EVALSHA (send SHA hash only) after the
// first call, instead of EVAL (send full script text every time).
//
// Logic:
// 1. SADD the "HH:MM" start time into the day's booked set
// 2. SADD returns 0 when the member already existed -> slot taken, return 0
// 3. Otherwise refresh the set's expiry and return 1
var reserveSlotScript = redis.NewScript(`
	local added = redis.call('SADD', KEYS[1], ARGV[1])
	if added == 0 then
		return 0
	end
	redis.call('EXPIRE', KEYS[1], ARGV[2])
	return 1
`)

const (
	// Redis key prefix for per-day booked slot sets
	RedisBookedSlotKeyPrefix = "slots:booked:"

	// Timeout for individual Redis operations
	redisSlotTimeout = 5 * time.Second

	// Batch size for startup sync - process 500 records at a time to keep
	// pipeline memory bounded
	slotSyncBatchSize = 500

	// Booked sets expire two days after their date; past dates are not
	// booking targets anymore
	slotKeyTTL = 48 * time.Hour
)

// SlotReservationService keeps a Redis set of booked "HH:MM" start times per
// (doctor, hospital, date). Reservation is Redis-first: the atomic SADD is
// the gate that resolves two patients racing for the same slot, the DB row
// is written after, and a failed DB write compensates by releasing the
// reservation.
type SlotReservationService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotReservationService(redisClient *redis.Client, log *logrus.Logger) *SlotReservationService {
	return &SlotReservationService{
		redisClient: redisClient,
		log:         log,
	}
}

// SlotKey builds the booked-set key for one (doctor, hospital, date).
func SlotKey(doctorID uuid.UUID, hospitalID int64, date time.Time) string {
	return fmt.Sprintf("%s%s:%d:%s", RedisBookedSlotKeyPrefix, doctorID, hospitalID, date.Format("2006-01-02"))
}

// Reserve atomically claims a start time. First writer wins; everyone else
// gets ErrSlotTaken.
func (s *SlotReservationService) Reserve(ctx context.Context, doctorID uuid.UUID, hospitalID int64, date time.Time, startTime string) error {
	ctx, cancel := context.WithTimeout(ctx, redisSlotTimeout)
	defer cancel()

	key := SlotKey(doctorID, hospitalID, date)
	ttl := int(slotKeyTTL / time.Second)
	result, err := reserveSlotScript.Run(ctx, s.redisClient, []string{key}, startTime, ttl).Int64()
	if err != nil {
		return fmt.Errorf("reserve slot: %w", err)
	}
	if result == 0 {
		return ErrSlotTaken
	}
	return nil
}

// Release frees a reservation, used to compensate a failed DB write and on
// appointment cancellation.
func (s *SlotReservationService) Release(ctx context.Context, doctorID uuid.UUID, hospitalID int64, date time.Time, startTime string) error {
	ctx, cancel := context.WithTimeout(ctx, redisSlotTimeout)
	defer cancel()

	key := SlotKey(doctorID, hospitalID, date)
	if err := s.redisClient.SRem(ctx, key, startTime).Err(); err != nil {
		s.log.Warnf("Failed to release slot %s %s: %+v", key, startTime, err)
		return err
	}
	return nil
}

// SyncFromDB rebuilds the booked sets for every non-cancelled appointment
// from today onward. Called once at startup so Redis reservations survive a
// restart. The pipeline is created and executed per batch to keep memory
// bounded.
func (s *SlotReservationService) SyncFromDB(ctx context.Context, db *gorm.DB) error {
	today := time.Now().UTC().Format("2006-01-02")
	offset := 0
	total := 0

	for {
		var appointments []entity.Appointment
		err := db.WithContext(ctx).
			Select("doctor_id", "hospital_id", "appointment_date", "appointment_time").
			Where("appointment_date >= ? AND status != ?", today, entity.AppointmentStatusCancelled).
			Order("id ASC").
			Limit(slotSyncBatchSize).
			Offset(offset).
			Find(&appointments).Error
		if err != nil {
			return fmt.Errorf("load appointments batch: %w", err)
		}
		if len(appointments) == 0 {
			break
		}

		pipe := s.redisClient.Pipeline()
		for _, a := range appointments {
			key := SlotKey(a.DoctorID, a.HospitalID, a.AppointmentDate)
			pipe.SAdd(ctx, key, a.AppointmentTime)
			pipe.Expire(ctx, key, slotKeyTTL)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("sync batch to redis: %w", err)
		}

		total += len(appointments)
		offset += slotSyncBatchSize
		if len(appointments) < slotSyncBatchSize {
			break
		}
	}

	s.log.Infof("Synced %d booked slots to Redis", total)
	return nil
}
