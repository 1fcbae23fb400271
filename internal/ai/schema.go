// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"fmt"
	"slices"

	"pawtune/internal/models"
)

// Schema type names as accepted by the Gemini responseSchema field.
const (
	TypeObject = "OBJECT"
	TypeArray  = "ARRAY"
	TypeString = "STRING"
)

// Schema is a subset of the Gemini response schema. The same value is sent
// to the service and used to check what comes back.
type Schema struct {
	Type             string             `json:"type"`
	Description      string             `json:"description,omitempty"`
	Enum             []string           `json:"enum,omitempty"`
	Properties       map[string]*Schema `json:"properties,omitempty"`
	PropertyOrdering []string           `json:"propertyOrdering,omitempty"`
	Required         []string           `json:"required,omitempty"`
	Items            *Schema            `json:"items,omitempty"`
}

var errMissingField = errors.New("required field missing")

type field struct {
	name   string
	schema *Schema
}

// object builds an OBJECT schema where every listed field is required.
func object(fields ...field) *Schema {
	s := &Schema{Type: TypeObject, Properties: make(map[string]*Schema, len(fields))}
	for _, f := range fields {
		s.Properties[f.name] = f.schema
		s.PropertyOrdering = append(s.PropertyOrdering, f.name)
		s.Required = append(s.Required, f.name)
	}
	return s
}

func str() *Schema { return &Schema{Type: TypeString} }

func strDesc(d string) *Schema { return &Schema{Type: TypeString, Description: d} }

func arrayOf(items *Schema) *Schema { return &Schema{Type: TypeArray, Items: items} }

func track() *Schema {
	return object(
		field{"titleKO", str()},
		field{"titleEN", str()},
		field{"stylePrompt", str()},
		field{"lyrics", str()},
	)
}

func categoryEnum() *Schema {
	var e []string
	for _, c := range []models.Category{
		models.CategoryMissing, models.CategoryRainbow, models.CategoryTogether,
		models.CategoryGrowth, models.CategoryAdoption,
	} {
		e = append(e, string(c))
	}
	return &Schema{Type: TypeString, Enum: e}
}

// GenerationSchema describes models.GenerationResult.
var GenerationSchema = object(
	field{"category", categoryEnum()},
	field{"factSummary", object(
		field{"name", str()},
		field{"subInfo", strDesc("Missing Date, Birthday, or Passing Date")},
		field{"location", str()},
		field{"breedAndFeatures", str()},
		field{"situation", str()},
		field{"ownerMessage", str()},
	)},
	field{"storyType", str()},
	field{"emotionalIntent", str()},
	field{"musicDirection", object(
		field{"genre", str()},
		field{"bpmRange", str()},
		field{"instruments", str()},
		field{"vocalStyle", str()},
	)},
	field{"track1", track()},
	field{"track2", track()},
	field{"youtubePackage", object(
		field{"title", str()},
		field{"descriptionKR", str()},
		field{"descriptionEN", str()},
		field{"tags", arrayOf(str())},
		field{"hashtags", arrayOf(str())},
	)},
	field{"imagePrompts", arrayOf(object(
		field{"section", str()},
		field{"imagePromptEN", str()},
		field{"negativePromptEN", str()},
		field{"aspectRatio", str()},
		field{"styleKeywords", str()},
	))},
)

// Validate checks a decoded JSON value (as produced by encoding/json into
// an any) against the schema. Unknown properties are ignored.
func (s *Schema) Validate(v any) error {
	return s.validate("$", v)
}

func (s *Schema) validate(path string, v any) error {
	switch s.Type {
	case TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return &SchemaError{Path: path, Err: fmt.Errorf("want object, got %s", jsonKind(v))}
		}
		for _, name := range s.Required {
			if val, ok := obj[name]; !ok || val == nil {
				return &SchemaError{Path: path + "." + name, Err: errMissingField}
			}
		}
		for _, name := range s.PropertyOrdering {
			sub := s.Properties[name]
			val, ok := obj[name]
			if !ok || val == nil {
				continue
			}
			if err := sub.validate(path+"."+name, val); err != nil {
				return err
			}
		}
	case TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return &SchemaError{Path: path, Err: fmt.Errorf("want array, got %s", jsonKind(v))}
		}
		if s.Items == nil {
			return nil
		}
		for i, item := range arr {
			if err := s.Items.validate(fmt.Sprintf("%s[%d]", path, i), item); err != nil {
				return err
			}
		}
	case TypeString:
		sv, ok := v.(string)
		if !ok {
			return &SchemaError{Path: path, Err: fmt.Errorf("want string, got %s", jsonKind(v))}
		}
		if len(s.Enum) > 0 && !slices.Contains(s.Enum, sv) {
			return &SchemaError{Path: path, Err: fmt.Errorf("value %q not in %v", sv, s.Enum)}
		}
	}
	return nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
