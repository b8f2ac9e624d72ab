package repository

import (
	libdb "evzone/backend/libs/db"
	"evzone/backend/services/payments-service/internal/models"
)

func buildWhere(filter models.ListFilter) *libdb.Where {
	w := &libdb.Where{}
	w.AddIf(filter.UserID != "", "user_id = ?", filter.UserID)
	w.AddIf(filter.Status != "", "status = ?", filter.Status)
	return w
}

type scanner interface {
	Scan(dest ...interface{}) error
}
