package server

import (
	"strings"
	"unicode"

	"github.com/graphql-go/graphql"

	"samplecatalog/src/domain"
	"samplecatalog/src/domain/entities"
	"samplecatalog/src/services/pagination"
	"samplecatalog/src/services/samples"
)

// newSchema wires the GraphQL surface onto the sample service. Everything
// here is translation: argument shapes in, connection/sample shapes out.
func newSchema(service *samples.Service) (graphql.Schema, error) {
	statusEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "Status",
		Values: graphql.EnumValueConfigMap{
			"ALL":       &graphql.EnumValueConfig{Value: string(domain.StatusAll)},
			"AVAILABLE": &graphql.EnumValueConfig{Value: string(domain.StatusAvailable)},
			"ACTIVE":    &graphql.EnumValueConfig{Value: string(domain.StatusActive)},
			"EXPIRED":   &graphql.EnumValueConfig{Value: string(domain.StatusExpired)},
			"PENDING":   &graphql.EnumValueConfig{Value: string(domain.StatusPending)},
		},
	})

	embeddedTypeEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "EmbeddedType",
		Values: graphql.EnumValueConfigMap{
			"ONE":     &graphql.EnumValueConfig{Value: string(entities.EmbeddedTypeOne)},
			"ANOTHER": &graphql.EnumValueConfig{Value: string(entities.EmbeddedTypeAnother)},
		},
	})

	embeddedType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Embedded",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return embeddedSource(p).ID, nil
				},
			},
			"dateCreated": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return embeddedSource(p).Node.DateCreated, nil
				},
			},
			"dateModified": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return embeddedSource(p).Node.DateModified, nil
				},
			},
			"embeddedType": &graphql.Field{
				Type: graphql.NewNonNull(embeddedTypeEnum),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(embeddedSource(p).EmbeddedType), nil
				},
			},
			"value": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return embeddedSource(p).DisplayValue(), nil
				},
			},
		},
	})

	sampleType := graphql.NewObject(graphql.ObjectConfig{
		Name:        "Sample",
		Description: "Sample model",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sampleSource(p).ID, nil
				},
			},
			"dateCreated": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sampleSource(p).Node.DateCreated, nil
				},
			},
			"dateModified": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sampleSource(p).Node.DateModified, nil
				},
			},
			"createdBy": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optionalString(sampleSource(p).Node.CreatedByID), nil
				},
			},
			"updatedBy": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optionalString(sampleSource(p).Node.UpdatedByID), nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sampleSource(p).Name, nil
				},
			},
			"description": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optionalString(sampleSource(p).Description), nil
				},
			},
			"availableDate": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sampleSource(p).DisplayAvailableDate(), nil
				},
			},
			"expirationDate": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if t := sampleSource(p).DisplayExpirationDate(); t != nil {
						return *t, nil
					}
					return nil, nil
				},
			},
			"values": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(embeddedType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sampleSource(p).Values, nil
				},
			},
			"minValue": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Float),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sampleSource(p).MinValue(), nil
				},
			},
		},
	})

	pageInfoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PageInfo",
		Fields: graphql.Fields{
			"hasNextPage": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return pageInfoSource(p).HasNextPage, nil
				},
			},
			"hasPreviousPage": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return pageInfoSource(p).HasPreviousPage, nil
				},
			},
			"startCursor": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optionalString(pageInfoSource(p).StartCursor), nil
				},
			},
			"nextCursor": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return optionalString(pageInfoSource(p).NextCursor), nil
				},
			},
		},
	})

	edgeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Edge",
		Fields: graphql.Fields{
			"cursor": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Edge).Cursor, nil
				},
			},
			"nodeId": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.Edge).NodeID, nil
				},
			},
		},
	})

	connectionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SampleConnection",
		Fields: graphql.Fields{
			"pageInfo": &graphql.Field{
				Type: graphql.NewNonNull(pageInfoType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return connectionSource(p).PageInfo, nil
				},
			},
			"edges": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(edgeType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return connectionSource(p).Edges, nil
				},
			},
			"items": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(sampleType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return connectionSource(p).Items, nil
				},
			},
			"totalCount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(connectionSource(p).TotalCount), nil
				},
			},
		},
	})

	deleteResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DeleteResponse",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.DeleteResponse).ID, nil
				},
			},
			"success": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(domain.DeleteResponse).Success, nil
				},
			},
		},
	})

	newSampleInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "NewSample",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":             &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"name":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"availableDate":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"expirationDate": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	updateSampleInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateSample",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":           &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"availableDate":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"expirationDate": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})

	newEmbeddedInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "NewEmbedded",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":           &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"embeddedType": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(embeddedTypeEnum)},
			"value":        &graphql.InputObjectFieldConfig{Type: graphql.Float},
		},
	})

	updateEmbeddedInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateEmbedded",
		Fields: graphql.InputObjectConfigFieldMap{
			"embeddedType": &graphql.InputObjectFieldConfig{Type: embeddedTypeEnum},
			"value":        &graphql.InputObjectFieldConfig{Type: graphql.Float},
		},
	})

	pageArguments := graphql.FieldConfigArgument{
		"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
		"after":  &graphql.ArgumentConfig{Type: graphql.String},
		"before": &graphql.ArgumentConfig{Type: graphql.String},
		"skip":   &graphql.ArgumentConfig{Type: graphql.Int},
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allSamples": &graphql.Field{
				Type: connectionType,
				Args: pageArguments,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.AllSamples(p.Context, pageArgs(p.Args))
				},
			},
			"searchSamples": &graphql.Field{
				Type: connectionType,
				Args: mergeArgs(graphql.FieldConfigArgument{
					"searchTerm": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"fields":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
				}, pageArguments),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					term, _ := p.Args["searchTerm"].(string)
					return service.SearchSamples(p.Context, term, stringList(p.Args["fields"]), pageArgs(p.Args))
				},
			},
			"samplesByStatus": &graphql.Field{
				Type: connectionType,
				Args: mergeArgs(graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: statusEnum},
				}, pageArguments),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.SamplesByStatus(p.Context, statusArg(p.Args), pageArgs(p.Args))
				},
			},
			"sampleById": &graphql.Field{
				Type: sampleType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.SampleByID(p.Context, p.Args["id"].(string))
				},
			},
			"sampleByNames": &graphql.Field{
				Type: connectionType,
				Args: graphql.FieldConfigArgument{
					"names":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
					"status": &graphql.ArgumentConfig{Type: statusEnum},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.SamplesByNames(p.Context, stringList(p.Args["names"]), statusArg(p.Args))
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createSample": &graphql.Field{
				Type: sampleType,
				Args: graphql.FieldConfigArgument{
					"newSample":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(newSampleInput)},
					"createdById": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := newSampleFromArgs(p.Args["newSample"])
					return service.CreateSample(p.Context, claimsFrom(p.Context), input, optStringArg(p.Args, "createdById"))
				},
			},
			"updateSample": &graphql.Field{
				Type: sampleType,
				Args: graphql.FieldConfigArgument{
					"id":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"updateSample": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateSampleInput)},
					"updatedById":  &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.UpdateSample(p.Context, claimsFrom(p.Context),
						p.Args["id"].(string), patchFromArgs(p.Args["updateSample"]), optStringArg(p.Args, "updatedById"))
				},
			},
			"deleteSample": &graphql.Field{
				Type: deleteResponseType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.DeleteSample(p.Context, claimsFrom(p.Context), p.Args["id"].(string))
				},
			},
			"addValuesToSample": &graphql.Field{
				Type: sampleType,
				Args: graphql.FieldConfigArgument{
					"sampleId":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"newValues":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(newEmbeddedInput)))},
					"createdById": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.AddValuesToSample(p.Context, claimsFrom(p.Context),
						p.Args["sampleId"].(string), newEmbeddedListFromArgs(p.Args["newValues"]), optStringArg(p.Args, "createdById"))
				},
			},
			"updateValueForSample": &graphql.Field{
				Type: sampleType,
				Args: graphql.FieldConfigArgument{
					"sampleId":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"embeddedId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"updateValue": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateEmbeddedInput)},
					"updatedById": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.UpdateValueForSample(p.Context, claimsFrom(p.Context),
						p.Args["sampleId"].(string), p.Args["embeddedId"].(string),
						patchFromArgs(p.Args["updateValue"]), optStringArg(p.Args, "updatedById"))
				},
			},
			"removeValueFromSample": &graphql.Field{
				Type: deleteResponseType,
				Args: graphql.FieldConfigArgument{
					"sampleId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"embeddedId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return service.RemoveValueFromSample(p.Context, claimsFrom(p.Context),
						p.Args["sampleId"].(string), p.Args["embeddedId"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func sampleSource(p graphql.ResolveParams) entities.Sample {
	switch v := p.Source.(type) {
	case entities.Sample:
		return v
	case *entities.Sample:
		return *v
	}
	return entities.Sample{}
}

func embeddedSource(p graphql.ResolveParams) entities.Embedded {
	if v, ok := p.Source.(entities.Embedded); ok {
		return v
	}
	return entities.Embedded{}
}

func connectionSource(p graphql.ResolveParams) domain.SampleConnection {
	if v, ok := p.Source.(domain.SampleConnection); ok {
		return v
	}
	return domain.SampleConnection{}
}

func pageInfoSource(p graphql.ResolveParams) domain.PageInfo {
	if v, ok := p.Source.(domain.PageInfo); ok {
		return v
	}
	return domain.PageInfo{}
}

func optionalString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func mergeArgs(args ...graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	merged := graphql.FieldConfigArgument{}
	for _, set := range args {
		for name, cfg := range set {
			merged[name] = cfg
		}
	}
	return merged
}

func pageArgs(args map[string]interface{}) pagination.PageArgs {
	return pagination.PageArgs{
		Limit:  optIntArg(args, "limit"),
		After:  optStringArg(args, "after"),
		Before: optStringArg(args, "before"),
		Skip:   optIntArg(args, "skip"),
	}
}

func optIntArg(args map[string]interface{}, name string) *int {
	if v, ok := args[name].(int); ok {
		return &v
	}
	return nil
}

func optStringArg(args map[string]interface{}, name string) *string {
	if v, ok := args[name].(string); ok {
		return &v
	}
	return nil
}

func statusArg(args map[string]interface{}) *domain.Status {
	if v, ok := args["status"].(string); ok {
		status := domain.Status(v)
		return &status
	}
	return nil
}

func stringList(raw interface{}) []string {
	values, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func newSampleFromArgs(raw interface{}) entities.NewSample {
	input, _ := raw.(map[string]interface{})
	out := entities.NewSample{}
	if v, ok := input["id"].(string); ok {
		out.ID = &v
	}
	if v, ok := input["name"].(string); ok {
		out.Name = v
	}
	if v, ok := input["description"].(string); ok {
		out.Description = &v
	}
	if v, ok := input["availableDate"].(int); ok {
		ts := int64(v)
		out.AvailableDate = &ts
	}
	if v, ok := input["expirationDate"].(int); ok {
		ts := int64(v)
		out.ExpirationDate = &ts
	}
	return out
}

func newEmbeddedListFromArgs(raw interface{}) []entities.NewEmbedded {
	values, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]entities.NewEmbedded, 0, len(values))
	for _, v := range values {
		input, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		item := entities.NewEmbedded{}
		if id, ok := input["id"].(string); ok {
			item.ID = &id
		}
		if t, ok := input["embeddedType"].(string); ok {
			item.EmbeddedType = entities.EmbeddedType(t)
		}
		if val, ok := input["value"].(float64); ok {
			item.Value = &val
		}
		out = append(out, item)
	}
	return out
}

// patchFromArgs converts a GraphQL input map into a service patch, renaming
// the wire's camelCase fields to the stored snake_case names without knowing
// the field list. Unknown fields stay unknown and fail validation downstream.
func patchFromArgs(raw interface{}) map[string]any {
	input, _ := raw.(map[string]interface{})
	patch := make(map[string]any, len(input))
	for key, value := range input {
		patch[camelToSnake(key)] = value
	}
	return patch
}

func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
