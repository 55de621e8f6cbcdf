package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/internal/service"
	"github.com/yeisme/relicvault/pkg/internal/types"
	"github.com/yeisme/relicvault/pkg/log"
)

// CreateTreasure 登记藏品；带 group_tag 时整组提升录入期间暂存的媒体.
//
//	@Summary	登记藏品
//	@Tags		藏品
//	@Accept		json
//	@Produce	json
//	@Param		body	body	types.CreateTreasureRequest	true	"藏品信息"
//	@Success	201	{object}	types.CreateTreasureResponse
//	@Failure	400	{object}	map[string]string
//	@Router		/api/v1/treasures [post]
func CreateTreasure(c *gin.Context) {
	actor, err := checkActor(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	var req types.CreateTreasureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewTreasureService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		log.Logger().Error().Err(err).Str("actor", actor).Msg("create treasure failed")
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetTreasure 获取藏品详情.
//
//	@Summary	藏品详情
//	@Tags		藏品
//	@Param		id	path	int	true	"藏品 ID"
//	@Success	200	{object}	types.TreasureInfo
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/treasures/{id} [get]
func GetTreasure(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	svc := service.NewTreasureService(c.Request.Context())

	resp, err := svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListTreasures 分页列出藏品.
//
//	@Summary	藏品列表
//	@Tags		藏品
//	@Param		page	query	int	false	"页码(默认1)"
//	@Param		size	query	int	false	"每页条数(默认50, 最大200)"
//	@Success	200	{object}	types.ListTreasuresResponse
//	@Router		/api/v1/treasures [get]
func ListTreasures(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))

	svc := service.NewTreasureService(c.Request.Context())

	resp, err := svc.List(c.Request.Context(), page, size)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteTreasure 删除藏品并级联回收其媒体.
//
//	@Summary	删除藏品（级联回收媒体）
//	@Tags		藏品
//	@Param		id	path	int	true	"藏品 ID"
//	@Success	200	{object}	types.DeleteTreasureResponse
//	@Failure	403	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/treasures/{id} [delete]
func DeleteTreasure(c *gin.Context) {
	actor, err := checkActor(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	svc := service.NewTreasureService(c.Request.Context())

	resp, err := svc.Delete(c.Request.Context(), actor, id, isElevated(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PromoteTreasureMedia 把暂存媒体提升并绑定到藏品.
//
//	@Summary	提升媒体到藏品
//	@Tags		藏品
//	@Accept		json
//	@Produce	json
//	@Param		id		path	int							true	"藏品 ID"
//	@Param		body	body	types.PromoteMediaRequest	true	"资产 ID 或分组标签"
//	@Success	200	{object}	types.PromoteMediaResponse
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Failure	422	{object}	map[string]string
//	@Router		/api/v1/treasures/{id}/media/promote [post]
func PromoteTreasureMedia(c *gin.Context) {
	actor, err := checkActor(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	var req types.PromoteMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewTreasureService(c.Request.Context())

	resp, err := svc.PromoteMedia(c.Request.Context(), actor, id, req, isElevated(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ReplaceTreasureMedia 替换藏品名下某条媒体的内容.
//
//	@Summary	替换藏品媒体
//	@Tags		藏品
//	@Accept		json
//	@Produce	json
//	@Param		id			path	int							true	"藏品 ID"
//	@Param		asset_id	path	string						true	"被替换的资产 ID"
//	@Param		body		body	types.ReplaceMediaRequest	true	"新暂存资产"
//	@Success	200	{object}	types.ReplaceMediaResponse
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Failure	422	{object}	map[string]string
//	@Router		/api/v1/treasures/{id}/media/{asset_id}/replace [post]
func ReplaceTreasureMedia(c *gin.Context) {
	actor, err := checkActor(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	existingID := c.Param("asset_id")
	if existingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing asset_id"})
		return
	}

	var req types.ReplaceMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewTreasureService(c.Request.Context())

	resp, err := svc.ReplaceMedia(c.Request.Context(), actor, id, existingID, req.NewAssetID, isElevated(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListTreasureMedia 列出藏品的已提升媒体.
//
//	@Summary	藏品媒体列表
//	@Tags		藏品
//	@Param		id		path	int		true	"藏品 ID"
//	@Param		kind	query	string	false	"按媒体种类过滤"
//	@Success	200	{object}	types.ListMediaResponse
//	@Router		/api/v1/treasures/{id}/media [get]
func ListTreasureMedia(c *gin.Context) {
	id, ok := pathUint(c, "id")
	if !ok {
		return
	}

	svc := service.NewMediaService(c.Request.Context())

	resp, err := svc.ListSynced(c.Request.Context(), id, c.Query("kind"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
