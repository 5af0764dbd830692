package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"lolstats/api/converters"
	"lolstats/api/dto"
	"lolstats/api/filters"
	"lolstats/api/repositories"
	"lolstats/api/services"
	badgeservice "lolstats/api/services/badges"
	championstatsservice "lolstats/api/services/championstats"
	syncservice "lolstats/api/services/sync"
	"lolstats/pkg/logger"
	"lolstats/pkg/messages"
	"lolstats/pkg/riot"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// abort writes the error envelope.
func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Error: dto.ErrorBody{Code: code, Message: message},
	})
}

// badRequest answers 400 with a stable message.
func badRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, messages.CodeBadRequest, message)
}

// missingParameter answers 400 for a required parameter.
func missingParameter(c *gin.Context, name string) {
	badRequest(c, fmt.Sprintf(messages.MissingParameter, name))
}

// setRetryAfter writes the hint in whole seconds, at least one.
func setRetryAfter(c *gin.Context, d time.Duration) {
	seconds := int(math.Ceil(d.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))
}

// writeError translates any service error into the status code and the error envelope.
// The error text itself is only logged.
func writeError(c *gin.Context, err error) {
	log := logger.Ctx(c.Request.Context(), zerolog.Nop())

	var inProgress *syncservice.InProgressError

	switch {
	case errors.As(err, &inProgress):
		setRetryAfter(c, inProgress.RetryAfter)
		abort(c, http.StatusConflict, messages.CodeInProgress, messages.OperationInProgress)

	case errors.Is(err, syncservice.ErrInvalidIdentity):
		badRequest(c, messages.InvalidParameters)

	case errors.Is(err, filters.ErrInvalidPage):
		badRequest(c, messages.InvalidPage)

	case errors.Is(err, converters.ErrNoMatches),
		errors.Is(err, converters.ErrUnsupportedBody),
		errors.Is(err, converters.ErrMissingMatchId):
		badRequest(c, messages.MissingBody)

	case errors.Is(err, badgeservice.ErrMatchNotFound),
		errors.Is(err, badgeservice.ErrParticipantNotFound),
		errors.Is(err, championstatsservice.ErrChampionNotFound),
		riot.IsNotFound(err):
		abort(c, http.StatusNotFound, messages.CodeNotFound, messages.NotFound)

	case riot.IsRateLimited(err):
		retryAfter, _ := riot.RetryAfter(err)
		log.Warn().Err(err).Dur("retry_after", retryAfter).Msg("upstream rate limited")
		setRetryAfter(c, retryAfter)
		abort(c, http.StatusTooManyRequests, messages.CodeRateLimited, messages.RateLimited)

	case errors.Is(err, services.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Msg("request timed out")
		abort(c, http.StatusGatewayTimeout, messages.CodeTimeout, messages.Timeout)

	case errors.Is(err, repositories.ErrStorageUnavailable):
		log.Error().Err(err).Msg("storage failure")
		abort(c, http.StatusInternalServerError, messages.CodeStorage, messages.StorageUnavailable)

	case isUpstreamError(err):
		log.Error().Err(err).Int("status", riot.StatusCode(err)).Msg("upstream failure")
		abort(c, http.StatusInternalServerError, messages.CodeUnavailable, messages.Unavailable)

	default:
		log.Error().Err(err).Msg("unexpected failure")
		abort(c, http.StatusInternalServerError, messages.CodeInternalError, messages.InternalError)
	}
}

func isUpstreamError(err error) bool {
	var riotErr *riot.Error
	return errors.As(err, &riotErr)
}
