package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/strizhka/barbershop-booking/internal/domain"
	"github.com/strizhka/barbershop-booking/pkg/dbmetrics"
	"github.com/strizhka/barbershop-booking/pkg/psqlbuilder"
)

const (
	configTable = "shop_slots_config"

	pqUniqueViolationCode = "23505"
)

var configColumns = []string{
	"id",
	"shop_id",
	"barber_id",
	"service_id",
	"slot_granularity_minutes",
	"min_lead_time_minutes",
	"advance_booking_days",
	"grid_start_hour",
	"grid_end_hour",
	"grid_snap_minutes",
	"created_at",
	"updated_at",
}

// Repository провайдер для работы с конфигурацией слотов в БД
type Repository struct {
	db     dbmetrics.DBExecutor
	logger Logger
}

// NewRepository создает новый экземпляр репозитория конфигураций
func NewRepository(db dbmetrics.DBExecutor, logger Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// GetConfigWithHierarchy получает наиболее специфичную конфигурацию слотов
// Приоритет: (барбер+услуга) > услуга > барбер > общая для барбершопа
// Возвращает ErrConfigNotFound, если нет ни одного уровня
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, shopID int64, barberID, serviceID *int64) (*domain.ShopSlotsConfig, error) {
	builder := psqlbuilder.Select(configColumns...).
		From(configTable).
		Where(sq.Eq{"shop_id": shopID})

	// Каждый уровень иерархии либо совпадает по ID, либо равен NULL
	if barberID != nil {
		builder = builder.Where(sq.Or{
			sq.Eq{"barber_id": *barberID},
			sq.Eq{"barber_id": nil},
		})
	} else {
		builder = builder.Where(sq.Eq{"barber_id": nil})
	}

	if serviceID != nil {
		builder = builder.Where(sq.Or{
			sq.Eq{"service_id": *serviceID},
			sq.Eq{"service_id": nil},
		})
	} else {
		builder = builder.Where(sq.Eq{"service_id": nil})
	}

	// Строки с заполненными barber_id/service_id специфичнее строк с NULL
	builder = builder.
		OrderBy(
			"(barber_id IS NOT NULL AND service_id IS NOT NULL) DESC",
			"(service_id IS NOT NULL) DESC",
			"(barber_id IS NOT NULL) DESC",
		).
		Limit(1)

	query, args, err := builder.ToSql()
	if err != nil {
		r.logger.Error("[ConfigRepository.GetConfigWithHierarchy] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := executor.QueryRowContext(ctx, query, args...)

	cfg, err := scanConfig(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}

		r.logger.Error("[ConfigRepository.GetConfigWithHierarchy] Failed to scan config: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrScanRow, err)
	}

	return cfg, nil
}

// GetByShopID получает все конфигурации барбершопа, от общей к специфичным
func (r *Repository) GetByShopID(ctx context.Context, shopID int64) ([]domain.ShopSlotsConfig, error) {
	query, args, err := psqlbuilder.Select(configColumns...).
		From(configTable).
		Where(sq.Eq{"shop_id": shopID}).
		OrderBy(
			"(barber_id IS NOT NULL) ASC",
			"(service_id IS NOT NULL) ASC",
			"id ASC",
		).
		ToSql()
	if err != nil {
		r.logger.Error("[ConfigRepository.GetByShopID] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("[ConfigRepository.GetByShopID] Failed to execute query: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}
	defer rows.Close()

	configs := make([]domain.ShopSlotsConfig, 0)

	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanRow, err)
		}

		configs = append(configs, *cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	return configs, nil
}

// Create сохраняет новую конфигурацию слотов
func (r *Repository) Create(ctx context.Context, cfg *domain.ShopSlotsConfig) (*domain.ShopSlotsConfig, error) {
	query, args, err := psqlbuilder.Insert(configTable).
		Columns(
			"shop_id", "barber_id", "service_id",
			"slot_granularity_minutes", "min_lead_time_minutes", "advance_booking_days",
			"grid_start_hour", "grid_end_hour", "grid_snap_minutes",
		).
		Values(
			cfg.ShopID, cfg.BarberID, cfg.ServiceID,
			cfg.SlotGranularityMinutes, cfg.MinLeadTimeMinutes, cfg.AdvanceBookingDays,
			cfg.GridStartHour, cfg.GridEndHour, cfg.GridSnapMinutes,
		).
		Suffix("RETURNING " + columnsList()).
		ToSql()
	if err != nil {
		r.logger.Error("[ConfigRepository.Create] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := executor.QueryRowContext(ctx, query, args...)

	created, err := scanConfig(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConfigAlreadyExists
		}

		r.logger.Error("[ConfigRepository.Create] Failed to insert config: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	return created, nil
}

// Update обновляет параметры конфигурации по ID
func (r *Repository) Update(ctx context.Context, cfg *domain.ShopSlotsConfig) (*domain.ShopSlotsConfig, error) {
	query, args, err := psqlbuilder.Update(configTable).
		Set("slot_granularity_minutes", cfg.SlotGranularityMinutes).
		Set("min_lead_time_minutes", cfg.MinLeadTimeMinutes).
		Set("advance_booking_days", cfg.AdvanceBookingDays).
		Set("grid_start_hour", cfg.GridStartHour).
		Set("grid_end_hour", cfg.GridEndHour).
		Set("grid_snap_minutes", cfg.GridSnapMinutes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": cfg.ID}).
		Suffix("RETURNING " + columnsList()).
		ToSql()
	if err != nil {
		r.logger.Error("[ConfigRepository.Update] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := executor.QueryRowContext(ctx, query, args...)

	updated, err := scanConfig(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConfigNotFound
		}

		r.logger.Error("[ConfigRepository.Update] Failed to update config: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	return updated, nil
}

// Upsert создает конфигурацию или обновляет существующую для того же уровня иерархии
func (r *Repository) Upsert(ctx context.Context, cfg *domain.ShopSlotsConfig) (*domain.ShopSlotsConfig, error) {
	query, args, err := psqlbuilder.Insert(configTable).
		Columns(
			"shop_id", "barber_id", "service_id",
			"slot_granularity_minutes", "min_lead_time_minutes", "advance_booking_days",
			"grid_start_hour", "grid_end_hour", "grid_snap_minutes",
		).
		Values(
			cfg.ShopID, cfg.BarberID, cfg.ServiceID,
			cfg.SlotGranularityMinutes, cfg.MinLeadTimeMinutes, cfg.AdvanceBookingDays,
			cfg.GridStartHour, cfg.GridEndHour, cfg.GridSnapMinutes,
		).
		Suffix(`ON CONFLICT (shop_id, COALESCE(barber_id, 0), COALESCE(service_id, 0)) DO UPDATE SET
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			min_lead_time_minutes = EXCLUDED.min_lead_time_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			grid_start_hour = EXCLUDED.grid_start_hour,
			grid_end_hour = EXCLUDED.grid_end_hour,
			grid_snap_minutes = EXCLUDED.grid_snap_minutes,
			updated_at = NOW()
		RETURNING ` + columnsList()).
		ToSql()
	if err != nil {
		r.logger.Error("[ConfigRepository.Upsert] Failed to build query: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	row := executor.QueryRowContext(ctx, query, args...)

	saved, err := scanConfig(row)
	if err != nil {
		r.logger.Error("[ConfigRepository.Upsert] Failed to upsert config: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	return saved, nil
}

// Delete удаляет конфигурацию по ID
func (r *Repository) Delete(ctx context.Context, configID int64) error {
	query, args, err := psqlbuilder.Delete(configTable).
		Where(sq.Eq{"id": configID}).
		ToSql()
	if err != nil {
		r.logger.Error("[ConfigRepository.Delete] Failed to build query: %v", err)
		return fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("[ConfigRepository.Delete] Failed to execute query: %v", err)
		return fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecuteQuery, err)
	}

	if affected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (*domain.ShopSlotsConfig, error) {
	var cfg domain.ShopSlotsConfig

	err := row.Scan(
		&cfg.ID,
		&cfg.ShopID,
		&cfg.BarberID,
		&cfg.ServiceID,
		&cfg.SlotGranularityMinutes,
		&cfg.MinLeadTimeMinutes,
		&cfg.AdvanceBookingDays,
		&cfg.GridStartHour,
		&cfg.GridEndHour,
		&cfg.GridSnapMinutes,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func columnsList() string {
	list := configColumns[0]
	for _, col := range configColumns[1:] {
		list += ", " + col
	}

	return list
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqUniqueViolationCode
	}

	return false
}
