package driver

import (
	"context"
	"fmt"

	"github.com/streamzip/tap-hubspot/pkg/hubapi"
	"github.com/streamzip/tap-hubspot/types"
)

// fieldTypeSchema maps a CRM property type onto the announced schema type.
func fieldTypeSchema(fieldType string) *types.Property {
	switch fieldType {
	case "bool":
		return types.NullableField("boolean")
	case "datetime":
		// valid unix milliseconds are not returned for this type
		return types.NullableField("string")
	case "number":
		// a value like 'N/A' can be returned for this type
		return types.NullableField("number", "string")
	default:
		return types.NullableField("string")
	}
}

// fieldSchema wraps a property type in the API's value envelope; every entity
// except contacts also carries timestamp/source metadata per property.
func fieldSchema(fieldType string, extras bool) *types.Property {
	properties := map[string]*types.Property{
		"value": fieldTypeSchema(fieldType),
	}
	if extras {
		properties["timestamp"] = fieldTypeSchema("datetime")
		properties["source"] = fieldTypeSchema("string")
		properties["sourceId"] = fieldTypeSchema("string")
	}
	return types.ObjectField(properties)
}

// customSchema fetches the entity's dynamic custom-field definitions and
// turns them into schema properties.
func (h *Hubspot) customSchema(ctx context.Context, entity string, endpoint hubapi.Endpoint) (*types.Property, error) {
	data, err := h.client.Get(ctx, h.client.URL(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s properties: %s", entity, err)
	}

	fields, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected %s properties payload %T", entity, data)
	}

	properties := map[string]*types.Property{}
	for _, field := range fields {
		def, ok := field.(map[string]any)
		if !ok {
			continue
		}
		name, _ := def["name"].(string)
		fieldType, _ := def["type"].(string)
		if name == "" {
			continue
		}
		properties[name] = fieldSchema(fieldType, entity != "contacts")
	}
	return types.ObjectField(properties), nil
}

// propertiesEndpoints maps the entities whose schemas merge dynamic
// custom-field definitions onto their properties endpoint.
var propertiesEndpoints = map[string]hubapi.Endpoint{
	"contacts":  hubapi.ContactsProperties,
	"companies": hubapi.CompaniesProperties,
	"deals":     hubapi.DealsProperties,
}

// loadSchema builds the stream's announced schema: the static base fields
// plus, for contacts/companies/deals, the merged custom property object.
func (h *Hubspot) loadSchema(ctx context.Context, stream string) (*types.TypeSchema, error) {
	base, found := baseSchemas[stream]
	if !found {
		return nil, fmt.Errorf("no schema defined for stream %s", stream)
	}

	schema := types.NewTypeSchema()
	for field, property := range base {
		schema.AddProperty(field, property)
	}

	if endpoint, merge := propertiesEndpoints[stream]; merge {
		custom, err := h.customSchema(ctx, stream, endpoint)
		if err != nil {
			return nil, err
		}
		schema.AddProperty("properties", custom)
	}
	return schema, nil
}

// baseSchemas are the static per-entity field definitions.
var baseSchemas = map[string]map[string]*types.Property{
	"contacts": {
		"vid":           types.NullableField("integer"),
		"canonical-vid": types.NullableField("integer"),
		"portal-id":     types.NullableField("integer"),
		"is-contact":    types.NullableField("boolean"),
		"profile-token": types.NullableField("string"),
		"profile-url":   types.NullableField("string"),
	},
	"companies": {
		"portalId":  types.NullableField("integer"),
		"companyId": types.NullableField("integer"),
		"isDeleted": types.NullableField("boolean"),
	},
	"deals": {
		"portalId":  types.NullableField("integer"),
		"dealId":    types.NullableField("integer"),
		"isDeleted": types.NullableField("boolean"),
	},
	"campaigns": {
		"id":                types.NullableField("integer"),
		"appId":             types.NullableField("integer"),
		"appName":           types.NullableField("string"),
		"contentId":         types.NullableField("integer"),
		"name":              types.NullableField("string"),
		"subject":           types.NullableField("string"),
		"type":              types.NullableField("string"),
		"numIncluded":       types.NullableField("integer"),
		"numQueued":         types.NullableField("integer"),
		"subBusinessUnitId": types.NullableField("integer"),
	},
	"subscription_changes": {
		"timestamp": types.NullableField("string"),
		"portalId":  types.NullableField("integer"),
		"recipient": types.NullableField("string"),
	},
	"email_events": {
		"id":              types.NullableField("string"),
		"created":         types.NullableField("string"),
		"portalId":        types.NullableField("integer"),
		"recipient":       types.NullableField("string"),
		"type":            types.NullableField("string"),
		"emailCampaignId": types.NullableField("integer"),
	},
	"contact_lists": {
		"internalListId": types.NullableField("integer"),
		"listId":         types.NullableField("integer"),
		"name":           types.NullableField("string"),
		"listType":       types.NullableField("string"),
		"createdAt":      types.NullableField("string"),
		"updatedAt":      types.NullableField("string"),
	},
	"forms": {
		"guid":      types.NullableField("string"),
		"name":      types.NullableField("string"),
		"action":    types.NullableField("string"),
		"method":    types.NullableField("string"),
		"createdAt": types.NullableField("string"),
		"updatedAt": types.NullableField("string"),
	},
	"workflows": {
		"id":         types.NullableField("integer"),
		"name":       types.NullableField("string"),
		"type":       types.NullableField("string"),
		"enabled":    types.NullableField("boolean"),
		"insertedAt": types.NullableField("string"),
		"updatedAt":  types.NullableField("string"),
	},
	"keywords": {
		"keyword_guid": types.NullableField("string"),
		"keyword":      types.NullableField("string"),
		"country":      types.NullableField("string"),
		"visits":       types.NullableField("integer"),
		"created_at":   types.NullableField("string"),
	},
	"owners": {
		"portalId":  types.NullableField("integer"),
		"ownerId":   types.NullableField("integer"),
		"type":      types.NullableField("string"),
		"firstName": types.NullableField("string"),
		"lastName":  types.NullableField("string"),
		"email":     types.NullableField("string"),
		"createdAt": types.NullableField("string"),
		"updatedAt": types.NullableField("string"),
	},
}
