package database

import (
	"encoding/json"
	"fmt"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-playground/validator/v10"

	"github.com/devtrack/backend/errs"
	"github.com/devtrack/backend/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Column maps one key of a PATCH payload to a table column.
type Column struct {
	Key    string // payload key
	Name   string // column name
	Rule   string // validator tag applied to the decoded value, may be empty
	decode func(json.RawMessage) (any, error)
}

func decodeAs[T any](raw json.RawMessage) (any, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func StringColumn(key, name, rule string) Column {
	return Column{Key: key, Name: name, Rule: rule, decode: decodeAs[string]}
}

func IDColumn(key, name string) Column {
	return Column{Key: key, Name: name, Rule: "gt=0", decode: decodeAs[int64]}
}

func DateColumn(key, name string) Column {
	return Column{Key: key, Name: name, decode: func(raw json.RawMessage) (any, error) {
		if string(raw) == "null" {
			return nil, fmt.Errorf("must be a date")
		}
		return decodeAs[models.Date](raw)
	}}
}

// NullableDateColumn accepts null to clear the column.
func NullableDateColumn(key, name string) Column {
	return Column{Key: key, Name: name, decode: decodeAs[*models.Date]}
}

// Allowlist is the set of columns a table accepts in a partial update.
type Allowlist struct {
	table   string
	columns map[string]Column
	keys    []string
}

func NewAllowlist(table string, columns ...Column) Allowlist {
	a := Allowlist{table: table, columns: make(map[string]Column, len(columns))}
	for _, c := range columns {
		a.columns[c.Key] = c
		a.keys = append(a.keys, c.Key)
	}
	return a
}

// Keys returns the accepted payload keys in declaration order.
func (a Allowlist) Keys() []string {
	return append([]string(nil), a.keys...)
}

var DeveloperColumns = NewAllowlist("developers",
	StringColumn("name", "name", "required,max=50"),
	StringColumn("email", "email", "required,email,max=50"),
)

var ProjectColumns = NewAllowlist("projects",
	StringColumn("name", "name", "required,max=50"),
	StringColumn("description", "description", ""),
	StringColumn("estimatedTime", "estimated_time", "required,max=20"),
	StringColumn("repository", "repository", "required,max=120"),
	DateColumn("startDate", "start_date"),
	NullableDateColumn("endDate", "end_date"),
	IDColumn("developerId", "developer_id"),
)

// Changes is a validated sparse update for one table.
type Changes struct {
	table  string
	values map[string]any // payload key -> decoded value
	a      Allowlist
}

// Parse decodes a PATCH payload. Unknown keys, undecodable values and
// values failing the column rule are rejected; an empty payload is too.
func (a Allowlist) Parse(payload map[string]json.RawMessage) (Changes, error) {
	if len(payload) == 0 {
		return Changes{}, errs.NewEmptyChangeSetError()
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make(map[string]any, len(payload))
	for _, key := range keys {
		column, ok := a.columns[key]
		if !ok {
			return Changes{}, errs.NewUnknownFieldError(key, a.keys)
		}

		value, err := column.decode(payload[key])
		if err != nil {
			return Changes{}, errs.NewInvalidFieldError(key, err.Error())
		}
		if column.Rule != "" {
			if err := validate.Var(value, column.Rule); err != nil {
				return Changes{}, errs.NewInvalidFieldError(key, err.Error())
			}
		}
		values[key] = value
	}

	return Changes{table: a.table, values: values, a: a}, nil
}

func (c Changes) Len() int {
	return len(c.values)
}

// Keys returns the payload keys present, sorted.
func (c Changes) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for key := range c.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the decoded value for a payload key.
func (c Changes) Value(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// String returns the value for key when it is present and a string.
func (c Changes) String(key string) (string, bool) {
	v, ok := c.values[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ID returns the value for key when it is present and an id.
func (c Changes) ID(key string) (int64, bool) {
	v, ok := c.values[key]
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// updateByID renders UPDATE <table> SET ... WHERE id = ? RETURNING *.
func (c Changes) updateByID(id int64) sq.UpdateBuilder {
	set := make(map[string]any, len(c.values))
	for key, value := range c.values {
		set[c.a.columns[key].Name] = value
	}
	return sq.Update(c.table).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING *")
}
