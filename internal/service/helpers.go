package service

import (
	"errors"

	"github.com/douradinams/Douradinams/internal/repository"
)

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrRecordNotFound)
}
