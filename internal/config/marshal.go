package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const (
	defaultPrefix = "default="
	// TagName is the struct tag name used for configuration field mapping.
	TagName = "config"
)

// Unmarshal unmarshalls configuration data into a struct. v's fields must
// be flat (string/int/bool) with a `config:"section.key"` tag - rvtrace's
// own appConfig never nests, so nested-struct and automatic-tag support
// from the teacher's generic engine isn't carried here.
func (c *Config) Unmarshal(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected pointer to struct, got %T", ErrInvalidStruct, v)
	}

	return c.unmarshalStruct(rv.Elem())
}

// parseTag parses a struct tag and returns section, key, and default value information.
func (c *Config) parseTag(tag string) tagInfo {
	parts := strings.Split(tag, ",")
	path := strings.TrimSpace(parts[0])

	info := tagInfo{}
	if strings.Contains(path, ".") {
		info.Section, info.Key = c.parseDottedPath(path)
	} else {
		info.Section, info.Key = "", strings.ToLower(path)
	}

	for i := 1; i < len(parts); i++ {
		option := strings.TrimSpace(parts[i])
		if strings.HasPrefix(option, defaultPrefix) {
			originalOption := parts[i]
			trimmed := strings.TrimSpace(originalOption)
			if strings.HasPrefix(trimmed, defaultPrefix) {
				prefixIndex := strings.Index(originalOption, defaultPrefix)
				if prefixIndex != -1 {
					valueStart := prefixIndex + len(defaultPrefix)
					info.DefaultValue = originalOption[valueStart:]
					info.HasDefault = true
				}
			}
		} else if option == "required" {
			info.Required = true
		}
	}

	return info
}

// parseDottedPath parses a dotted path like "general.unit" into section and key.
func (c *Config) parseDottedPath(path string) (section, key string) {
	lastDot := strings.LastIndex(path, ".")
	return strings.ToLower(path[:lastDot]), strings.ToLower(path[lastDot+1:])
}

// unmarshalStruct processes a struct and populates it with configuration values.
func (c *Config) unmarshalStruct(rv reflect.Value) error {
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rt.Field(i)
		fieldValue := rv.Field(i)

		if !fieldValue.CanSet() {
			continue // Skip unexported fields
		}

		tag := field.Tag.Get(TagName)
		if tag == "-" || tag == "" {
			continue // Skip fields explicitly marked to ignore or without a mapping
		}

		if err := c.unmarshalSimpleField(field, fieldValue, tag); err != nil {
			return err
		}
	}

	return nil
}

// unmarshalSimpleField unmarshalls a single scalar field from the configuration.
func (c *Config) unmarshalSimpleField(field reflect.StructField, fieldValue reflect.Value, tag string) error {
	tagInfo := c.parseTag(tag)

	var value value
	var exists bool

	if c.sections[tagInfo.Section] != nil {
		value, exists = c.sections[tagInfo.Section][tagInfo.Key]
	}

	if !exists && tagInfo.HasDefault {
		parsedDefault, err := c.parseDefaultValue(tagInfo.DefaultValue, fieldValue.Type())
		if err != nil {
			return &UnmarshalError{
				Field:   field.Name,
				Section: tagInfo.Section,
				Key:     tagInfo.Key,
				Err:     fmt.Errorf("parsing default value: %w", err),
			}
		}
		value = parsedDefault
		exists = true
	}

	if !exists && tagInfo.Required {
		return &UnmarshalError{
			Field:   field.Name,
			Section: tagInfo.Section,
			Key:     tagInfo.Key,
			Err:     fmt.Errorf("%w: %s.%s", ErrRequiredField, tagInfo.Section, tagInfo.Key),
		}
	}

	if !exists {
		return nil // Key doesn't exist and no default, skip
	}

	if err := c.unmarshalField(fieldValue, value); err != nil {
		return &UnmarshalError{
			Field:   field.Name,
			Section: tagInfo.Section,
			Key:     tagInfo.Key,
			Err:     err,
		}
	}
	return nil
}

// unmarshalField sets a struct field value from a configuration value.
func (c *Config) unmarshalField(fieldValue reflect.Value, value value) error {
	fieldType := fieldValue.Type()

	switch fieldType.Kind() {
	case reflect.String:
		if value.vtype != stringType {
			return fmt.Errorf("expected string, got %s: %w", value.vtype, ErrTypeMismatch)
		}
		fieldValue.SetString(value.parsed.(string))

	case reflect.Int, reflect.Int32, reflect.Int64:
		if value.vtype != intType {
			return fmt.Errorf("expected int, got %s: %w", value.vtype, ErrTypeMismatch)
		}
		fieldValue.SetInt(int64(value.parsed.(int)))

	case reflect.Bool:
		if value.vtype != boolType {
			return fmt.Errorf("expected bool, got %s: %w", value.vtype, ErrTypeMismatch)
		}
		fieldValue.SetBool(value.parsed.(bool))

	default:
		return fmt.Errorf("unsupported field type %s: %w", fieldType, ErrUnsupportedType)
	}

	return nil
}

// parseDefaultValue parses a default value string based on the target field type.
func (c *Config) parseDefaultValue(defaultStr string, fieldType reflect.Type) (value, error) {
	switch fieldType.Kind() {
	case reflect.String:
		return value{Raw: defaultStr, parsed: defaultStr, vtype: stringType}, nil

	case reflect.Int, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(defaultStr, 10, 64)
		if err != nil {
			return value{}, fmt.Errorf("invalid int default value %q: %w", defaultStr, err)
		}
		return value{Raw: defaultStr, parsed: int(parsed), vtype: intType}, nil

	case reflect.Bool:
		parsed, err := strconv.ParseBool(defaultStr)
		if err != nil {
			return value{}, fmt.Errorf("invalid bool default value %q: %w", defaultStr, err)
		}
		return value{Raw: defaultStr, parsed: parsed, vtype: boolType}, nil

	default:
		return value{}, fmt.Errorf("unsupported field type for default value: %s", fieldType)
	}
}
