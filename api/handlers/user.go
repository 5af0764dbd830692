package handlers

import (
	"context"
	"net/http"

	"lolstats/api/dto"
	"lolstats/api/filters"
	syncservice "lolstats/api/services/sync"
	"lolstats/pkg/database/models"
	"lolstats/pkg/messages"

	"github.com/gin-gonic/gin"
)

// UserStore reads and writes stored users.
type UserStore interface {
	FindByRiotId(ctx context.Context, gameName, tagLine string) (*models.User, error)
	FindByPuuid(ctx context.Context, puuid string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

// Syncer runs a sync cycle for a player.
type Syncer interface {
	Sync(ctx context.Context, identity syncservice.Identity) (*models.User, error)
}

// UserHandler is the handler for the stored users and their sync.
type UserHandler struct {
	users  UserStore
	syncer Syncer
}

type UserHandlerDependencies struct {
	Users  UserStore
	Syncer Syncer
}

// NewUserHandler creates a new instance of the user handler.
func NewUserHandler(deps *UserHandlerDependencies) *UserHandler {
	return &UserHandler{
		users:  deps.Users,
		syncer: deps.Syncer,
	}
}

// GetUser handles GET /user/get/:gameName/:tagLine, reading the store only.
func (h *UserHandler) GetUser(c *gin.Context) {
	var pp filters.RiotIdURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "gameName/tagLine")
		return
	}

	user, err := h.users.FindByRiotId(c.Request.Context(), pp.GameName, pp.TagLine)
	writeUser(c, user, err)
}

// GetUserByPuuid handles GET /user/get/puuid/:puuid, reading the store only.
func (h *UserHandler) GetUserByPuuid(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "puuid")
		return
	}

	user, err := h.users.FindByPuuid(c.Request.Context(), pp.Puuid)
	writeUser(c, user, err)
}

func writeUser(c *gin.Context, user *models.User, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	if user == nil {
		abort(c, http.StatusNotFound, messages.CodeNotFound, messages.NotFound)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser handles POST /user/update.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var body dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.UpdatedSummoner.Puuid == "" {
		badRequest(c, messages.MissingBody)
		return
	}

	if err := h.users.Upsert(c.Request.Context(), body.UpdatedSummoner); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, body.UpdatedSummoner)
}

// SyncByRiotId handles POST /user/sync/:gameName/:tagLine.
func (h *UserHandler) SyncByRiotId(c *gin.Context) {
	var pp filters.RiotIdURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "gameName/tagLine")
		return
	}

	h.sync(c, syncservice.ByRiotId(pp.GameName, pp.TagLine))
}

// SyncByPuuid handles POST /user/sync/puuid/:puuid.
func (h *UserHandler) SyncByPuuid(c *gin.Context) {
	var pp filters.PuuidURIParams
	if err := c.ShouldBindUri(&pp); err != nil {
		missingParameter(c, "puuid")
		return
	}

	h.sync(c, syncservice.ByPuuid(pp.Puuid))
}

func (h *UserHandler) sync(c *gin.Context, identity syncservice.Identity) {
	user, err := h.syncer.Sync(c.Request.Context(), identity)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
