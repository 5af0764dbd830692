// Package champion provides the static champion reference table.
// The table is built once per process and is read only afterwards.
package champion

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Placeholder used for champion keys missing from the table.
const Unknown = "Unknown"

// Champion is the reference data of a single champion.
type Champion struct {
	Key   string `json:"key"`
	Id    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Table maps the numeric champion key to the champion.
type Table struct {
	version string
	byKey   map[string]Champion
}

// NewTable builds a table from a list of champions.
func NewTable(version string, champions []Champion) *Table {
	t := &Table{
		version: version,
		byKey:   make(map[string]Champion, len(champions)),
	}
	for _, c := range champions {
		t.byKey[c.Key] = c
	}
	return t
}

// Definition for extracting the champion data of the champion.json file.
type fullChampion struct {
	Version string              `json:"version"`
	Data    map[string]Champion `json:"data"`
}

// Parse builds a table from a Data Dragon champion.json document.
func Parse(raw []byte) (*Table, error) {
	var doc fullChampion
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("couldn't parse the champion json: %w", err)
	}

	if len(doc.Data) == 0 {
		return nil, fmt.Errorf("champion json has no champions")
	}

	champions := make([]Champion, 0, len(doc.Data))
	for _, c := range doc.Data {
		champions = append(champions, c)
	}

	return NewTable(doc.Version, champions), nil
}

// Version is the Data Dragon version the table was built from.
func (t *Table) Version() string {
	return t.version
}

// Len returns the number of champions.
func (t *Table) Len() int {
	return len(t.byKey)
}

// Lookup returns the champion with the given key.
func (t *Table) Lookup(key string) (Champion, bool) {
	c, ok := t.byKey[key]
	return c, ok
}

// LookupId is Lookup for the numeric championId used by the match and mastery APIs.
func (t *Table) LookupId(championId int) (Champion, bool) {
	return t.Lookup(strconv.Itoa(championId))
}

// LookupOrUnknown never fails: unknown keys get placeholder values.
func (t *Table) LookupOrUnknown(key string) Champion {
	if c, ok := t.Lookup(key); ok {
		return c
	}
	return Champion{Key: key, Id: Unknown, Name: Unknown, Title: Unknown}
}
