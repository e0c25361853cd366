/*
reference.go - Resource-type reference data

Administrative CRUD over resource-type records. The cached list lives in
the resources slice and is replaced wholesale on fetch; mutations patch
it from the returned entity so the cache never lags the server by more
than one committed operation.
*/
package engine

import "context"

// FetchResourceTypes loads the resource-type reference list.
func (e *Engine) FetchResourceTypes(ctx context.Context) error {
	return run(ctx, e, &e.resources.flags, opFetchResourceTypes,
		func(ctx context.Context) ([]ResourceType, error) {
			return e.api.ListResourceTypes(ctx)
		},
		func(ts []ResourceType) {
			e.resources.types = ts
		})
}

// CreateResourceType creates a resource type and appends it to the
// cached list.
func (e *Engine) CreateResourceType(ctx context.Context, input ResourceTypeInput) (ResourceType, error) {
	var out ResourceType
	err := run(ctx, e, &e.resources.flags, opCreateResourceType,
		func(ctx context.Context) (ResourceType, error) {
			return e.api.CreateResourceType(ctx, input)
		},
		func(t ResourceType) {
			out = t
			e.resources.types = append(e.resources.types, t)
		})
	return out, err
}

// UpdateResourceType updates a resource type and replaces it in the
// cached list by id.
func (e *Engine) UpdateResourceType(ctx context.Context, id int, input ResourceTypeInput) (ResourceType, error) {
	var out ResourceType
	err := run(ctx, e, &e.resources.flags, opUpdateResourceType,
		func(ctx context.Context) (ResourceType, error) {
			return e.api.UpdateResourceType(ctx, id, input)
		},
		func(t ResourceType) {
			out = t
			for i := range e.resources.types {
				if e.resources.types[i].ID == t.ID {
					e.resources.types[i] = t
					return
				}
			}
			e.resources.types = append(e.resources.types, t)
		})
	return out, err
}

// DeleteResourceType deletes a resource type and drops it from the
// cached list.
func (e *Engine) DeleteResourceType(ctx context.Context, id int) error {
	return run(ctx, e, &e.resources.flags, opDeleteResourceType,
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, e.api.DeleteResourceType(ctx, id)
		},
		func(struct{}) {
			kept := e.resources.types[:0]
			for _, t := range e.resources.types {
				if t.ID != id {
					kept = append(kept, t)
				}
			}
			e.resources.types = kept
		})
}
