package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yatube/api-go/cache"
	"github.com/yatube/api-go/models"
	"gorm.io/gorm"
)

const groupCacheTTL = time.Minute

// GroupController exposes groups read-only. Responses are cached as raw JSON
// because groups only change through the seed tool.
type GroupController struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewGroupController(db *gorm.DB, store cache.Store) *GroupController {
	if store == nil {
		store = cache.NopStore{}
	}
	return &GroupController{DB: db, Cache: store}
}

func (gc *GroupController) ListGroups(c *gin.Context) {
	const key = "yatube:groups:all"
	if body, ok := gc.Cache.Get(key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	var groups []models.Group
	if err := gc.DB.Order("id").Find(&groups).Error; err != nil {
		respondError(c, "list groups", err)
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}

	gc.respondCached(c, key, groups)
}

func (gc *GroupController) GetGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	key := "yatube:groups:" + strconv.FormatUint(uint64(id), 10)
	if body, ok := gc.Cache.Get(key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	var group models.Group
	if err := gc.DB.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c)
		} else {
			respondError(c, "load group", err)
		}
		return
	}

	gc.respondCached(c, key, group)
}

func (gc *GroupController) respondCached(c *gin.Context, key string, value interface{}) {
	body, err := json.Marshal(value)
	if err != nil {
		respondError(c, "encode groups", err)
		return
	}

	gc.Cache.Set(key, body, groupCacheTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
