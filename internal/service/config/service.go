package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/strizhka/barbershop-booking/internal/domain"
	configRepo "github.com/strizhka/barbershop-booking/internal/infra/storage/config"
	staffClient "github.com/strizhka/barbershop-booking/internal/integrations/staffservice"
	"github.com/strizhka/barbershop-booking/internal/service/config/models"
)

// Service сервис для работы с конфигурацией слотов
type Service struct {
	configRepo  ConfigRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:  configRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// GetEffective получает эффективную конфигурацию с учетом иерархии приоритетов
// Публичный метод - используется клиентами перед выбором слота
// Приоритет: барбер+услуга > услуга > барбер > общая
// При отсутствии конфигурации возвращает значения по умолчанию
func (s *Service) GetEffective(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetEffective: fetching config for shop=%d, barber=%v, service=%v",
		req.ShopID, req.BarberID, req.ServiceID)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.ShopID, req.BarberID, req.ServiceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetEffective: no config for shop=%d, returning defaults", req.ShopID)
			return models.FromDomainConfig(defaultConfig(req.ShopID)), nil
		}
		s.logger.Error("GetEffective: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetEffective: successfully fetched config id=%d (level: %s)",
		config.ID, configLevel(config))
	return models.FromDomainConfig(config), nil
}

// GetShopConfigs получает все конфигурации барбершопа
// Доступно только менеджерам барбершопа
func (s *Service) GetShopConfigs(ctx context.Context, shopID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetShopConfigs: fetching configs for shop=%d by user=%d", shopID, userID)

	if err := s.checkManagerAccess(ctx, shopID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetByShopID(ctx, shopID)
	if err != nil {
		s.logger.Error("GetShopConfigs: repository error for shop=%d: %v", shopID, err)
		return nil, fmt.Errorf("%w: GetShopConfigs - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetShopConfigs: successfully fetched %d configs for shop=%d", len(configs), shopID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или обновляет конфигурацию слотов для уровня иерархии
// Доступно только менеджерам барбершопа
// Проверяет существование барбера и услуги, если они указаны
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: saving config for shop=%d, barber=%v, service=%v by user=%d",
		req.ShopID, req.BarberID, req.ServiceID, req.UserID)

	// 1. Валидируем параметры конфигурации
	if err := validateConfigData(req); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа (только менеджер барбершопа)
	if err := s.checkManagerAccess(ctx, req.ShopID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Если указан barberID, проверяем его существование
	if req.BarberID != nil {
		if _, err := s.staffClient.GetBarber(ctx, req.ShopID, *req.BarberID); err != nil {
			if errors.Is(err, staffClient.ErrBarberNotFound) {
				s.logger.Warn("Upsert: barber id=%d not found in shop=%d", *req.BarberID, req.ShopID)
				return nil, ErrBarberNotFound
			}
			s.logger.Error("Upsert: failed to get barber id=%d: %v", *req.BarberID, err)
			return nil, fmt.Errorf("%w: failed to get barber: %v", ErrInternal, err)
		}
	}

	// 4. Если указан serviceID, проверяем его существование
	if req.ServiceID != nil {
		if _, err := s.staffClient.GetService(ctx, req.ShopID, *req.ServiceID); err != nil {
			if errors.Is(err, staffClient.ErrServiceNotFound) {
				s.logger.Warn("Upsert: service id=%d not found in shop=%d", *req.ServiceID, req.ShopID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Upsert: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	// 5. Сохраняем конфигурацию
	saved, err := s.configRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

// Delete удаляет конфигурацию по ID
// Доступно только менеджерам барбершопа
func (s *Service) Delete(ctx context.Context, req *models.DeleteConfigRequest) error {
	s.logger.Info("Delete: deleting config id=%d for shop=%d by user=%d",
		req.ConfigID, req.ShopID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.ShopID, req.UserID); err != nil {
		return err
	}

	if err := s.configRepo.Delete(ctx, req.ConfigID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config id=%d not found", req.ConfigID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error for config id=%d: %v", req.ConfigID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config id=%d", req.ConfigID)
	return nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером барбершопа
func (s *Service) checkManagerAccess(ctx context.Context, shopID int64, userID int64) error {
	shop, err := s.staffClient.GetShop(ctx, shopID)
	if err != nil {
		if errors.Is(err, staffClient.ErrShopNotFound) {
			s.logger.Warn("checkManagerAccess: shop id=%d not found", shopID)
			return ErrShopNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get shop id=%d: %v", shopID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get shop: %v", ErrInternal, err)
	}

	for _, managerID := range shop.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of shop=%d", userID, shopID)
	return ErrAccessDenied
}

// validateConfigData валидирует параметры конфигурации
func validateConfigData(req *models.UpsertConfigRequest) error {
	if req.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		req.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if req.MinLeadTimeMinutes < domain.MinLeadTimeMinutesLimit ||
		req.MinLeadTimeMinutes > domain.MaxLeadTimeMinutesLimit {
		return fmt.Errorf("%w: minLeadTimeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinLeadTimeMinutesLimit, domain.MaxLeadTimeMinutesLimit)
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if req.GridStartHour < 0 || req.GridStartHour > 23 {
		return fmt.Errorf("%w: gridStartHour must be between 0 and 23", ErrInvalidInput)
	}

	if req.GridEndHour <= req.GridStartHour || req.GridEndHour > 24 {
		return fmt.Errorf("%w: gridEndHour must be between gridStartHour+1 and 24", ErrInvalidInput)
	}

	if req.GridSnapMinutes < domain.MinGridSnapMinutes ||
		req.GridSnapMinutes > domain.MaxGridSnapMinutes {
		return fmt.Errorf("%w: gridSnapMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinGridSnapMinutes, domain.MaxGridSnapMinutes)
	}

	return nil
}

// defaultConfig возвращает конфигурацию по умолчанию для барбершопа без настроек
func defaultConfig(shopID int64) *domain.ShopSlotsConfig {
	return &domain.ShopSlotsConfig{
		ShopID:                 shopID,
		SlotGranularityMinutes: domain.DefaultSlotGranularityMinutes,
		MinLeadTimeMinutes:     domain.DefaultMinLeadTimeMinutes,
		AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
		GridStartHour:          domain.DefaultGridStartHour,
		GridEndHour:            domain.DefaultGridEndHour,
		GridSnapMinutes:        domain.DefaultGridSnapMinutes,
	}
}

// configLevel возвращает строковое представление уровня конфигурации для логирования
func configLevel(config *domain.ShopSlotsConfig) string {
	if config.IsServiceWithBarber() {
		return "barber+service"
	}
	if config.IsServiceSpecific() {
		return "service"
	}
	if config.IsBarberSpecific() {
		return "barber"
	}
	return "global"
}
