package gateway

import (
	"encoding/json"
	"log/slog"
	"reflect"
	"time"

	"github.com/git-webzoom/assistente-x-hub/internal/features/resources"
	"github.com/git-webzoom/assistente-x-hub/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// EventDispatcher receives mutation events for asynchronous webhook fan-out.
type EventDispatcher interface {
	Dispatch(tenantID uuid.UUID, eventType string, payload any)
}

type ListResult struct {
	Items      any
	Total      int64
	Limit      int
	NextCursor *string
}

// ResourceService executes tenant-scoped CRUD for every registered
// resource. Every storage query is filtered by tenant_id, so a row owned by
// another tenant is indistinguishable from a missing one.
type ResourceService struct {
	registry   ResourceRegistry
	dispatcher EventDispatcher
	logger     *slog.Logger
}

func NewResourceService(registry ResourceRegistry, dispatcher EventDispatcher, logger *slog.Logger) *ResourceService {
	return &ResourceService{
		registry:   registry,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (s *ResourceService) Lookup(resourceName string) (*ResourceDef, bool) {
	def, ok := s.registry[resourceName]
	return def, ok
}

func (s *ResourceService) List(
	tenantID uuid.UUID,
	def *ResourceDef,
	query *ResourceQuery,
) (*ListResult, *ApiError) {
	slice := def.NewSlice()

	dbQuery := storage.GetDb().
		Model(def.NewEntity()).
		Where("tenant_id = ?", tenantID)

	dbQuery = ApplyFilters(dbQuery, query.Filters)

	if query.Cursor != nil {
		dbQuery = dbQuery.Where("created_at < ?", *query.Cursor)
	}

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, s.storageError("count", def.Name, err)
	}

	for _, include := range query.Includes {
		if association, ok := def.Includes[include]; ok {
			dbQuery = dbQuery.Preload(association)
		}
	}

	err := dbQuery.
		Order("created_at DESC").
		Limit(query.Limit).
		Find(slice).Error
	if err != nil {
		return nil, s.storageError("list", def.Name, err)
	}

	items := reflect.ValueOf(slice).Elem()

	var nextCursor *string
	if items.Len() == query.Limit && items.Len() > 0 {
		last := items.Index(items.Len() - 1).Interface().(resources.Entity)
		cursor := last.GetCreatedAt().UTC().Format(time.RFC3339Nano)
		nextCursor = &cursor
	}

	return &ListResult{
		Items:      items.Interface(),
		Total:      total,
		Limit:      query.Limit,
		NextCursor: nextCursor,
	}, nil
}

func (s *ResourceService) Get(
	tenantID uuid.UUID,
	def *ResourceDef,
	id uuid.UUID,
	includes []string,
) (resources.Entity, *ApiError) {
	entity := def.NewEntity()

	dbQuery := storage.GetDb().
		Where("tenant_id = ? AND id = ?", tenantID, id)

	for _, include := range includes {
		if association, ok := def.Includes[include]; ok {
			dbQuery = dbQuery.Preload(association)
		}
	}

	if err := dbQuery.First(entity).Error; err != nil {
		return nil, s.storageError("get", def.Name, err)
	}

	return entity, nil
}

// Create inserts a new row under the caller's tenant. Any id, tenant_id or
// timestamp supplied in the body is overwritten, so a cross-tenant write is
// impossible regardless of payload contents.
func (s *ResourceService) Create(
	tenantID uuid.UUID,
	def *ResourceDef,
	body []byte,
) (resources.Entity, *ApiError) {
	entity := def.NewEntity()

	if err := json.Unmarshal(body, entity); err != nil {
		return nil, NewApiError(400, "Invalid request body")
	}

	entity.SetID(uuid.New())
	entity.SetTenantID(tenantID)
	entity.Stamp(time.Now().UTC())

	// associations are read-only through the gateway; nested objects in the
	// body must not cascade into other tables
	if err := storage.GetDb().Omit(clause.Associations).Create(entity).Error; err != nil {
		return nil, s.storageError("create", def.Name, err)
	}

	s.dispatcher.Dispatch(tenantID, def.EventEntity+".created", entity)

	return entity, nil
}

func (s *ResourceService) Update(
	tenantID uuid.UUID,
	def *ResourceDef,
	id uuid.UUID,
	body []byte,
) (resources.Entity, *ApiError) {
	entity := def.NewEntity()

	err := storage.GetDb().
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(entity).Error
	if err != nil {
		return nil, s.storageError("update", def.Name, err)
	}

	if apiErr := mergeBody(entity, body); apiErr != nil {
		return nil, apiErr
	}

	entity.SetID(id)
	entity.SetTenantID(tenantID)
	entity.Stamp(time.Now().UTC())

	if err := storage.GetDb().Omit(clause.Associations).Save(entity).Error; err != nil {
		return nil, s.storageError("update", def.Name, err)
	}

	s.dispatcher.Dispatch(tenantID, def.EventEntity+".updated", entity)

	return entity, nil
}

func (s *ResourceService) Delete(tenantID uuid.UUID, def *ResourceDef, id uuid.UUID) *ApiError {
	result := storage.GetDb().
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(def.NewEntity())

	if result.Error != nil {
		return s.storageError("delete", def.Name, result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	s.dispatcher.Dispatch(tenantID, def.EventEntity+".deleted", map[string]any{"id": id})

	return nil
}

// mergeBody overlays the caller-supplied fields onto the loaded row.
// Identity and ownership keys are stripped first so they cannot be moved by
// an update.
func mergeBody(entity resources.Entity, body []byte) *ApiError {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return NewApiError(400, "Invalid request body")
	}

	delete(fields, "id")
	delete(fields, "tenant_id")
	delete(fields, "created_at")
	delete(fields, "updated_at")

	merged, err := json.Marshal(fields)
	if err != nil {
		return NewApiError(400, "Invalid request body")
	}

	if err := json.Unmarshal(merged, entity); err != nil {
		return NewApiError(400, "Invalid request body")
	}

	return nil
}

func (s *ResourceService) storageError(operation, resourceName string, err error) *ApiError {
	apiErr := classifyStorageError(err)

	if apiErr.Status == 500 {
		s.logger.Error(
			"storage operation failed",
			slog.String("operation", operation),
			slog.String("resource", resourceName),
			slog.String("error", err.Error()),
		)
	}

	return apiErr
}
