package repository

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/shenikar/sunshade_report_system/internal/models"
	"github.com/shenikar/sunshade_report_system/internal/service"
	"golang.org/x/sync/singleflight"
)

// loadTimeout ограничивает одну загрузку справочника
const loadTimeout = 30 * time.Second

// AssetSource - источник справочника (Excel или Postgres)
type AssetSource interface {
	Load(ctx context.Context) ([]models.Asset, error)
}

// AssetCatalog держит справочник в памяти на все время жизни процесса.
// После загрузки данные не меняются, поэтому конкурентное чтение безопасно.
type AssetCatalog struct {
	source AssetSource
	group  singleflight.Group

	mu      sync.RWMutex
	loaded  bool
	records []models.Asset
}

func NewAssetCatalog(source AssetSource) service.AssetRepository {
	return &AssetCatalog{source: source}
}

// LoadAssets возвращает копию закэшированного справочника, при первом вызове читает источник.
// Ошибка загрузки не кэшируется: следующий запрос попробует снова.
func (r *AssetCatalog) LoadAssets(ctx context.Context) ([]models.Asset, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(records), nil
}

// FindByManageNumber ищет запись по строковому идентификатору
func (r *AssetCatalog) FindByManageNumber(ctx context.Context, manageNumber string) (*models.Asset, error) {
	records, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return FindByManageNumber(records, manageNumber)
}

func (r *AssetCatalog) load(ctx context.Context) ([]models.Asset, error) {
	r.mu.RLock()
	if r.loaded {
		records := r.records
		r.mu.RUnlock()
		return records, nil
	}
	r.mu.RUnlock()

	// Одновременные первые запросы ждут одну загрузку
	v, err, _ := r.group.Do("assets", func() (any, error) {
		r.mu.RLock()
		if r.loaded {
			records := r.records
			r.mu.RUnlock()
			return records, nil
		}
		r.mu.RUnlock()

		// Загрузка общая для всех ожидающих, поэтому отмена первого запроса ее не прерывает
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		records, err := r.source.Load(loadCtx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.records = records
		r.loaded = true
		r.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Asset), nil
}

// FindByManageNumber - точное совпадение по целому идентификатору.
// При дубликатах возвращается первая запись в порядке датасета.
func FindByManageNumber(records []models.Asset, manageNumber string) (*models.Asset, error) {
	n, err := strconv.Atoi(manageNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", models.ErrLookupFailed, manageNumber)
	}
	for i := range records {
		if records[i].ManageNumber == n {
			asset := records[i]
			return &asset, nil
		}
	}
	return nil, fmt.Errorf("%w: manage number %d", models.ErrAssetNotFound, n)
}
