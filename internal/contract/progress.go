package contract

import "github.com/alexanderramin/habitquest/internal/app"

type ErrorCode = app.ErrorCode

const (
	ErrInvalidInput          ErrorCode = app.ErrInvalidInput
	ErrNotFound              ErrorCode = app.ErrNotFound
	ErrDependencyUnavailable ErrorCode = app.ErrDependencyUnavailable
)

type EngineError = app.EngineError

type ProgressRequest = app.ProgressRequest

type ProgressResult = app.ProgressResult

type StatusRequest = app.StatusRequest

type HabitDay = app.HabitDay

type HabitUpdate = app.HabitUpdate

type BonusResult = app.BonusResult
