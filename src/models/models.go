package models

// All lists the persisted models in dependency order, for migrations.
func All() []any {
	return []any{
		&User{},
		&ItemRequest{},
		&Item{},
		&Booking{},
		&Comment{},
	}
}
