package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	request "venue_backoffice/internal/adapter/http/dto/request"
	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/usecase"
	"venue_backoffice/pkg"
)

const (
	HeaderActorID    = "X-Actor-ID"
	HeaderActorGroup = "X-Actor-Group"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errInvalidActor   = pkg.NewDomainErrorSimple("INVALID_ACTOR", "X-Actor-Group must be administrator, manager or employee", http.StatusBadRequest)
)

type transitionFunc[T any] func(ctx context.Context, id string, in lifecycle.Input) (T, error)

// actorFromRequest reads the calling user from the gateway headers. The
// system group is reserved for scheduled jobs and never accepted here.
func actorFromRequest(c *gin.Context) (entities.Actor, bool) {
	group := entities.UserGroup(strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderActorGroup))))
	if !group.Valid() || group == entities.UserGroupSystem {
		return entities.Actor{}, false
	}
	return entities.Actor{ID: strings.TrimSpace(c.GetHeader(HeaderActorID)), Group: group}, true
}

// bindTransition reads the optional transition body. An empty body is a
// transition without note, amount or metadata.
func bindTransition(c *gin.Context) (lifecycle.Input, bool) {
	actor, ok := actorFromRequest(c)
	if !ok {
		c.JSON(errInvalidActor.HTTPStatus, errInvalidActor.ToHTTPError())
		return lifecycle.Input{}, false
	}
	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
		return lifecycle.Input{}, false
	}
	return payload.ToInput(actor), true
}

func runTransition[T any, R any](c *gin.Context, logger *zap.Logger, fire transitionFunc[T], render func(T) R) {
	in, ok := bindTransition(c)
	if !ok {
		return
	}
	rec, err := fire(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, render(rec))
}

func writeError(c *gin.Context, logger *zap.Logger, err error) {
	appErr := mapLifecycleError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("id", c.Param("id")),
			zap.Error(err))
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func mapLifecycleError(err error) *pkg.AppError {
	var (
		guardErr      *lifecycle.GuardError
		transitionErr *lifecycle.TransitionError
	)
	switch {
	case errors.Is(err, usecase.ErrInvalidID),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidTenantID),
		errors.Is(err, usecase.ErrInvalidAmount),
		errors.Is(err, usecase.ErrInvalidVenueID),
		errors.Is(err, usecase.ErrInvalidPeriod),
		errors.Is(err, usecase.ErrInvalidUtility),
		errors.Is(err, usecase.ErrInvalidReadings),
		errors.Is(err, usecase.ErrInvalidInvoiceLine):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrLeaseClosed):
		return pkg.NewDomainError("LEASE_CLOSED", "Lease no longer accepts utility readings", err, http.StatusConflict)
	case errors.Is(err, lifecycle.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", "Record not found", err, http.StatusNotFound)
	case errors.Is(err, lifecycle.ErrAlreadyExists):
		return pkg.NewDomainError("ALREADY_EXISTS", "Record already exists", err, http.StatusConflict)
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		msg := "Transition not permitted from the current status"
		if errors.As(err, &transitionErr) {
			msg = fmt.Sprintf("Cannot %s from status %s", transitionErr.Action, transitionErr.From)
		}
		return pkg.NewDomainError("INVALID_TRANSITION", msg, err, http.StatusConflict)
	case errors.Is(err, lifecycle.ErrForbidden):
		msg := "Transition not permitted for this user"
		if errors.As(err, &guardErr) {
			msg = guardErr.Reason
		}
		return pkg.NewDomainError("FORBIDDEN", msg, err, http.StatusForbidden)
	case errors.Is(err, lifecycle.ErrGuardDenied):
		msg := "Transition precondition not met"
		if errors.As(err, &guardErr) {
			msg = guardErr.Reason
		}
		return pkg.NewDomainError("PRECONDITION_FAILED", msg, err, http.StatusUnprocessableEntity)
	case errors.Is(err, lifecycle.ErrConflict):
		return pkg.NewDomainError("CONCURRENT_MODIFICATION", "Record was modified concurrently, try again", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred, try again", err, http.StatusInternalServerError)
	}
}
