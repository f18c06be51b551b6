package postgres

import "github.com/google/uuid"

// uuidParse is a thin wrapper so callers can use ", err :=" without
// importing google/uuid directly in every scan helper.
func uuidParse(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// uuidPtrString converts an optional actor id into a query argument: nil
// stays nil (NULL), a set id becomes its string form for the UUID column.
func uuidPtrString(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}
