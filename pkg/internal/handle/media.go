package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/relicvault/pkg/configs"
	"github.com/yeisme/relicvault/pkg/internal/service"
	"github.com/yeisme/relicvault/pkg/internal/types"
	"github.com/yeisme/relicvault/pkg/log"
)

// StageMedia 上传并登记一条暂存媒体.
//
//	@Summary	上传媒体（暂存）
//	@Tags		媒体
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file		formData	file	true	"媒体文件"
//	@Param		kind		formData	string	true	"媒体种类"
//	@Param		group_tag	formData	string	false	"批量提升分组标签"
//	@Success	201	{object}	types.StageMediaResponse
//	@Failure	400	{object}	map[string]string
//	@Failure	507	{object}	map[string]string
//	@Router		/api/v1/media [post]
func StageMedia(c *gin.Context) {
	actor, err := checkActor(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	var form types.StageMediaForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	if limit := configs.GetConfig().Media.MaxUploadBytes; limit > 0 && fileHeader.Size > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload exceeds size limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	svc := service.NewMediaService(c.Request.Context())

	resp, err := svc.Stage(c.Request.Context(), actor, form.Kind, form.GroupTag, fileHeader.Filename, f, fileHeader.Size)
	if err != nil {
		log.Logger().Error().Err(err).Str("actor", actor).Msg("stage media failed")
		writeError(c, err)

		return
	}

	c.JSON(http.StatusCreated, resp)
}

// DetachMedia 回收单条媒体（暂存或已提升）.
//
//	@Summary	删除媒体
//	@Tags		媒体
//	@Param		id	path	string	true	"资产 ID"
//	@Success	200	{object}	types.ReapMediaResponse
//	@Failure	403	{object}	map[string]string
//	@Failure	404	{object}	map[string]string
//	@Router		/api/v1/media/{id} [delete]
func DetachMedia(c *gin.Context) {
	actor, err := checkActor(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	assetID := c.Param("id")
	if assetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing id"})
		return
	}

	svc := service.NewMediaService(c.Request.Context())

	resp, err := svc.Detach(c.Request.Context(), actor, assetID, isElevated(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SweepStagedMedia 手动触发暂存保留期清扫.
//
//	@Summary	清扫过期暂存媒体
//	@Tags		媒体
//	@Accept		json
//	@Produce	json
//	@Param		body	body	types.SweepRequest	false	"清扫条件，缺省用配置的保留窗口"
//	@Success	200	{object}	types.SweepResponse
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/media/sweep [post]
func SweepStagedMedia(c *gin.Context) {
	actor, err := checkActor(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing actor"})
		return
	}

	var req types.SweepRequest

	_ = c.ShouldBindJSON(&req)

	cutoff, _ := req.ParseCutoff() // 零值时 service 回落到配置的保留期

	svc := service.NewMediaService(c.Request.Context())

	resp, err := svc.SweepStaged(c.Request.Context(), actor, cutoff)
	if err != nil {
		log.Logger().Error().Err(err).Msg("manual sweep failed")
		writeError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}
