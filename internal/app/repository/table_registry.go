package repository

import (
	"sort"

	"github.com/pesabot/pesabot-backend/internal/app/model"
)

// TableDescriptor binds a public table name to its typed accessors. The
// table browser only ever operates through a descriptor, so table names
// arriving from requests can never reach the query builder unchecked.
type TableDescriptor struct {
	Name          string
	NewRecord     func() interface{} // pointer to a zero value of the row type
	NewSlice      func() interface{} // pointer to an empty slice of the row type
	SearchColumns []string           // columns covered by the free-text search
}

var tableRegistry = map[string]TableDescriptor{
	"admins": {
		Name:          "admins",
		NewRecord:     func() interface{} { return &model.Admin{} },
		NewSlice:      func() interface{} { return &[]model.Admin{} },
		SearchColumns: []string{"name", "email"},
	},
	"otps": {
		Name:          "otps",
		NewRecord:     func() interface{} { return &model.OTP{} },
		NewSlice:      func() interface{} { return &[]model.OTP{} },
		SearchColumns: []string{"email"},
	},
	"customers": {
		Name:          "customers",
		NewRecord:     func() interface{} { return &model.Customer{} },
		NewSlice:      func() interface{} { return &[]model.Customer{} },
		SearchColumns: []string{"name", "email", "phone_number"},
	},
	"transactions": {
		Name:          "transactions",
		NewRecord:     func() interface{} { return &model.Transaction{} },
		NewSlice:      func() interface{} { return &[]model.Transaction{} },
		SearchColumns: []string{"phone_number"},
	},
}

// LookupTable resolves a public table name against the registry.
func LookupTable(name string) (TableDescriptor, bool) {
	desc, ok := tableRegistry[name]
	return desc, ok
}

// RegisteredTables returns the sorted names of all browsable tables.
func RegisteredTables() []string {
	names := make([]string, 0, len(tableRegistry))
	for name := range tableRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
