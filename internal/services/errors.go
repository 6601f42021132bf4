package services

import (
	"gigup_backend/internal/repositories"
	"gigup_backend/pkg/apperrors"
)

// passAppError пропускает уже готовую AppError, остальное считается отказом хранилища
func passAppError(err error) error {
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.StorageFailure(err)
}

func translateUserError(err error) error {
	if apperrors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return passAppError(err)
}

func translateGigError(err error) error {
	switch {
	case apperrors.Is(err, repositories.ErrGigNotFound):
		return apperrors.ErrGigNotFound
	case apperrors.Is(err, repositories.ErrGigStatusConflict):
		return apperrors.ErrGigInvalidTransition
	default:
		return passAppError(err)
	}
}

func translateApplicationError(err error) error {
	switch {
	case apperrors.Is(err, repositories.ErrApplicationNotFound):
		return apperrors.ErrApplicationNotFound
	case apperrors.Is(err, repositories.ErrApplicationExists):
		return apperrors.ErrDuplicateApplication
	case apperrors.Is(err, repositories.ErrApplicationNotPending):
		return apperrors.ErrApplicationNotPending
	default:
		return translateGigError(err)
	}
}

func translateContractError(err error) error {
	if apperrors.Is(err, repositories.ErrContractNotFound) {
		return apperrors.ErrContractNotFound
	}
	return translateGigError(err)
}
