package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"cresocrm/internal/caching"
	"cresocrm/internal/models"
	"cresocrm/internal/repositories"
)

// dynamicFieldsKey is the envelope key clients use to submit dynamic
// values alongside static columns.
const dynamicFieldsKey = "dynamicFields"

const mergedRecordTTL = 5 * time.Minute

// DistributorService is the aggregation layer: it presents one flat
// record per distributor and splits flat input back into the static row
// and the dynamic value set.
type DistributorService interface {
	GetMerged(ctx context.Context, id int64) (models.FlatRecord, error)
	GetAllMerged(ctx context.Context) ([]models.FlatRecord, error)
	Save(ctx context.Context, id *int64, input models.FlatRecord) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type distributorService struct {
	distributorRepo repositories.DistributorRepository
	fieldRepo       repositories.DynamicFieldRepository
	cacheSvc        caching.CacheService
}

func NewDistributorService(distributorRepo repositories.DistributorRepository, fieldRepo repositories.DynamicFieldRepository, cacheSvc caching.CacheService) DistributorService {
	return &distributorService{
		distributorRepo: distributorRepo,
		fieldRepo:       fieldRepo,
		cacheSvc:        cacheSvc,
	}
}

func (s *distributorService) GetMerged(ctx context.Context, id int64) (models.FlatRecord, error) {
	if cached, err := s.cacheSvc.GetDistributor(ctx, id); err != nil {
		log.Printf("WARN: distributor cache read failed for %d: %v", id, err)
	} else if cached != nil {
		return cached, nil
	}

	record, err := s.loadMerged(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetDistributor(ctx, id, record, mergedRecordTTL); err != nil {
		log.Printf("WARN: distributor cache write failed for %d: %v", id, err)
	}
	return record, nil
}

// GetAllMerged merges every distributor independently; there is no
// cross-record ordering or atomicity guarantee.
func (s *distributorService) GetAllMerged(ctx context.Context) ([]models.FlatRecord, error) {
	if cached, err := s.cacheSvc.GetDistributorList(ctx); err != nil {
		log.Printf("WARN: distributor list cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	distributors, err := s.distributorRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]models.FlatRecord, 0, len(distributors))
	for _, distributor := range distributors {
		values, err := s.fieldRepo.ValuesFor(ctx, distributor.ID)
		if err != nil {
			return nil, err
		}
		records = append(records, MergeRecord(distributor, values))
	}

	if err := s.cacheSvc.SetDistributorList(ctx, records, mergedRecordTTL); err != nil {
		log.Printf("WARN: distributor list cache write failed: %v", err)
	}
	return records, nil
}

// Save partitions flat input into the static payload and the dynamic
// payload and persists both in one transaction. A nil id creates; a
// non-nil id updates. Returns the distributor id either way.
func (s *distributorService) Save(ctx context.Context, id *int64, input models.FlatRecord) (int64, error) {
	static, dynamic, replaceDynamic := partitionInput(input, id != nil)

	savedID, err := s.distributorRepo.Save(ctx, id, static, dynamic, replaceDynamic)
	if err != nil {
		return 0, err
	}

	if err := s.cacheSvc.InvalidateDistributor(ctx, savedID); err != nil {
		log.Printf("WARN: distributor cache invalidation failed for %d: %v", savedID, err)
	}
	return savedID, nil
}

func (s *distributorService) Delete(ctx context.Context, id int64) error {
	if err := s.distributorRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.cacheSvc.InvalidateDistributor(ctx, id); err != nil {
		log.Printf("WARN: distributor cache invalidation failed for %d: %v", id, err)
	}
	return nil
}

func (s *distributorService) loadMerged(ctx context.Context, id int64) (models.FlatRecord, error) {
	distributor, err := s.distributorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	values, err := s.fieldRepo.ValuesFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return MergeRecord(distributor, values), nil
}

// partitionInput splits a flat record into the static column payload and
// the dynamic key/value payload. Keys that are neither a static column
// nor inside the dynamicFields envelope are ignored. On update,
// date_added is write-once and silently dropped. replaceDynamic is true
// only when the dynamicFields key was present at all: an absent envelope
// leaves stored values untouched, an empty one clears them.
func partitionInput(input models.FlatRecord, isUpdate bool) (map[string]interface{}, map[string]string, bool) {
	static := make(map[string]interface{})
	dynamic := make(map[string]string)
	replaceDynamic := false

	for key, value := range input {
		switch {
		case key == dynamicFieldsKey:
			replaceDynamic = true
			if sub, ok := value.(map[string]interface{}); ok {
				for fieldKey, fieldValue := range sub {
					dynamic[fieldKey] = stringifyValue(fieldValue)
				}
			}
		case models.IsStaticColumn(key):
			if isUpdate && key == "date_added" {
				continue
			}
			static[key] = normalizeStaticValue(key, value)
		}
	}
	return static, dynamic, replaceDynamic
}

// normalizeStaticValue coerces aum onto its integer column; JSON numbers
// decode as float64 and clients sometimes submit the value as a string.
// Every other static column is text and passes through untouched.
func normalizeStaticValue(key string, value interface{}) interface{} {
	if key != "aum" {
		return value
	}
	switch v := value.(type) {
	case float64:
		return int64(v)
	case string:
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return value
}

// stringifyValue renders a JSON value the way the store keeps dynamic
// values: as a plain string, with nil meaning unset.
func stringifyValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
