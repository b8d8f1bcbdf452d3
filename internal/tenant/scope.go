package tenant

import "gorm.io/gorm"

// Scope restricts a query to one company. Pass the table name when the query
// joins several tenant tables.
func Scope(companyID string, table ...string) func(db *gorm.DB) *gorm.DB {
	column := "company_id"
	if len(table) > 0 && table[0] != "" {
		column = table[0] + ".company_id"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", companyID)
	}
}
