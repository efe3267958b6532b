package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/pkg/dbmetrics"
	"github.com/strizhka/barbershop-booking/pkg/psqlbuilder"
)

const (
	bookingsTable = "bookings"

	// Код PostgreSQL для нарушения уникального ограничения
	pqUniqueViolationCode = "23505"
)

var bookingColumns = []string{
	"id",
	"client_id",
	"shop_id",
	"barber_id",
	"service_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"service_name",
	"service_price",
	"barber_name",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository провайдер для работы с записями в БД
type Repository struct {
	db     dbmetrics.DBExecutor
	logger Logger
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db dbmetrics.DBExecutor, logger Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create сохраняет новую запись и возвращает ее с заполненными ID и временными метками
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"client_id", "shop_id", "barber_id", "service_id",
			"booking_date", "start_time", "duration_minutes", "status",
			"service_name", "service_price", "barber_name", "notes",
		).
		Values(
			b.ClientID, b.ShopID, b.BarberID, b.ServiceID,
			b.BookingDate, b.StartTime, b.DurationMinutes, b.Status,
			b.ServiceName, b.ServicePrice, b.BarberName, b.Notes,
		).
		Suffix("RETURNING " + columnsList()).
		ToSql()
	if err != nil {
		r.logger.Error("[BookingRepository.Create] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := executor.QueryRowContext(ctx, query, args...)

	created, err := scanBooking(row)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("[BookingRepository.Create] Slot already taken: barberID=%d date=%s time=%s",
				b.BarberID, b.BookingDate.Format(domain.DateFormat), b.StartTime)
			return nil, ErrSlotTaken
		}

		r.logger.Error("[BookingRepository.Create] Failed to insert booking: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	return created, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(sq.Eq{"id": bookingID}).
		ToSql()
	if err != nil {
		r.logger.Error("[BookingRepository.GetByID] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := executor.QueryRowContext(ctx, query, args...)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}

		r.logger.Error("[BookingRepository.GetByID] Failed to scan booking: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrScanRow, err)
	}

	return b, nil
}

// GetByClientID получает записи клиента, отсортированные от новых к старым
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, includeInactive bool) ([]domain.Booking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(sq.Eq{"client_id": clientID}).
		OrderBy("booking_date DESC", "start_time DESC")

	if !includeInactive {
		builder = builder.Where(sq.Eq{"status": domain.ActiveStatuses})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		r.logger.Error("[BookingRepository.GetByClientID] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("[BookingRepository.GetByClientID] Failed to execute query: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByShopWithFilter получает записи барбершопа с фильтрацией
// Внутри транзакции с фильтром по одной дате добавляется FOR UPDATE,
// чтобы сериализовать конкурирующие бронирования одного барбера
func (r *Repository) GetByShopWithFilter(ctx context.Context, filter domain.ShopBookingsFilter) ([]domain.Booking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(sq.Eq{"shop_id": filter.ShopID}).
		OrderBy("booking_date ASC", "start_time ASC")

	if filter.BarberID != nil {
		builder = builder.Where(sq.Eq{"barber_id": *filter.BarberID})
	}

	if filter.StartDate != nil {
		builder = builder.Where(sq.GtOrEq{"booking_date": *filter.StartDate})
	}

	if filter.EndDate != nil {
		builder = builder.Where(sq.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		builder = builder.Where(sq.Eq{"status": domain.ActiveStatuses})
	}

	if dbmetrics.IsInTransaction(ctx) && isSingleDateFilter(filter) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		r.logger.Error("[BookingRepository.GetByShopWithFilter] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("[BookingRepository.GetByShopWithFilter] Failed to execute query: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus изменяет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": bookingID}).
		Suffix("RETURNING " + columnsList()).
		ToSql()
	if err != nil {
		r.logger.Error("[BookingRepository.UpdateStatus] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := executor.QueryRowContext(ctx, query, args...)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}

		r.logger.Error("[BookingRepository.UpdateStatus] Failed to update booking: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	return b, nil
}

// Cancel переводит запись в отмененный статус с указанием причины
func (r *Repository) Cancel(ctx context.Context, bookingID int64, status domain.BookingStatus, reason *string) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", sq.Expr("NOW()")).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": bookingID}).
		Suffix("RETURNING " + columnsList()).
		ToSql()
	if err != nil {
		r.logger.Error("[BookingRepository.Cancel] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := executor.QueryRowContext(ctx, query, args...)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}

		r.logger.Error("[BookingRepository.Cancel] Failed to cancel booking: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	return b, nil
}

// Reschedule переносит запись на новые дату и время
func (r *Repository) Reschedule(ctx context.Context, bookingID int64, newDate time.Time, newStartTime string) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("booking_date", newDate).
		Set("start_time", newStartTime).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": bookingID}).
		Suffix("RETURNING " + columnsList()).
		ToSql()
	if err != nil {
		r.logger.Error("[BookingRepository.Reschedule] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := executor.QueryRowContext(ctx, query, args...)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}

		if isUniqueViolation(err) {
			r.logger.Warn("[BookingRepository.Reschedule] Slot already taken: bookingID=%d date=%s time=%s",
				bookingID, newDate.Format(domain.DateFormat), newStartTime)
			return nil, ErrSlotTaken
		}

		r.logger.Error("[BookingRepository.Reschedule] Failed to reschedule booking: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	return b, nil
}

// Delete удаляет запись (используется только для служебных операций)
func (r *Repository) Delete(ctx context.Context, bookingID int64) error {
	query, args, err := psqlbuilder.Delete(bookingsTable).
		Where(sq.Eq{"id": bookingID}).
		ToSql()
	if err != nil {
		r.logger.Error("[BookingRepository.Delete] Failed to build query: %v", err)
		return fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("[BookingRepository.Delete] Failed to execute query: %v", err)
		return fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking

	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.ShopID,
		&b.BarberID,
		&b.ServiceID,
		&b.BookingDate,
		&b.StartTime,
		&b.DurationMinutes,
		&b.Status,
		&b.ServiceName,
		&b.ServicePrice,
		&b.BarberName,
		&b.Notes,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanRow, err)
		}

		bookings = append(bookings, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	return bookings, nil
}

func columnsList() string {
	list := bookingColumns[0]
	for _, col := range bookingColumns[1:] {
		list += ", " + col
	}

	return list
}

func isSingleDateFilter(filter domain.ShopBookingsFilter) bool {
	return filter.StartDate != nil && filter.EndDate != nil &&
		filter.StartDate.Equal(*filter.EndDate)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolationCode
	}

	return false
}
